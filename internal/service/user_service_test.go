package service

import (
	"context"
	"testing"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func newUserFixture() (service.UserService, *memUsers, *recordingPublisher, *entity.User, *entity.User) {
	alice := &entity.User{ID: uuid.New(), Email: "alice@example.com", DisplayName: "Alice", Role: entity.RoleUser, IsActive: true}
	bob := &entity.User{ID: uuid.New(), Email: "bob@example.com", DisplayName: "Bob", Role: entity.RoleUser, IsActive: false}
	users := newMemUsers(alice, bob)
	events := &recordingPublisher{}
	return NewUserService(users, events, zap.NewNop()), users, events, alice, bob
}

func TestGetIdentity(t *testing.T) {
	svc, _, _, alice, bob := newUserFixture()
	ctx := context.Background()

	identity, err := svc.GetIdentity(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", identity.DisplayName)
	assert.True(t, identity.Active)

	_, err = svc.GetIdentity(ctx, bob.ID)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.GetIdentity(ctx, uuid.New())
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, events, alice, _ := newUserFixture()
	ctx := context.Background()

	identity, err := svc.UpdateProfile(ctx, alice.ID, entity.IdentityPatch{DisplayName: strPtr("Alice B.")})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", identity.DisplayName)
	assert.Equal(t, "alice@example.com", identity.Email)

	stored, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", stored.DisplayName)
	assert.Equal(t, []string{service.EventUserProfileUpdate}, events.types())

	// keeping the same address is not a conflict
	_, err = svc.UpdateProfile(ctx, alice.ID, entity.IdentityPatch{Email: strPtr("ALICE@example.com")})
	assert.NoError(t, err)
}

func TestUpdateProfileRejects(t *testing.T) {
	tests := []struct {
		name    string
		patch   entity.IdentityPatch
		wantErr error
	}{
		{name: "empty patch", patch: entity.IdentityPatch{}, wantErr: errs.ErrValidation},
		{name: "blank name", patch: entity.IdentityPatch{DisplayName: strPtr("   ")}, wantErr: errs.ErrValidation},
		{name: "bad email", patch: entity.IdentityPatch{Email: strPtr("not-an-email")}, wantErr: errs.ErrValidation},
		{name: "taken email", patch: entity.IdentityPatch{Email: strPtr("bob@example.com")}, wantErr: errs.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, events, alice, _ := newUserFixture()
			_, err := svc.UpdateProfile(context.Background(), alice.ID, tt.patch)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, events.types())
		})
	}
}

func rolePtr(r entity.Role) *entity.Role { return &r }

func boolPtr(b bool) *bool { return &b }

func TestUpdateAccess(t *testing.T) {
	svc, users, events, alice, bob := newUserFixture()
	ctx := context.Background()

	identity, err := svc.UpdateAccess(ctx, alice.ID, bob.ID, entity.AccessPatch{Role: rolePtr(entity.RoleAdmin), Active: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, identity.Role)
	assert.True(t, identity.Active)

	stored, err := users.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
	assert.True(t, stored.IsActive)
	assert.Equal(t, []string{service.EventUserAccessUpdate}, events.types())

	// an admin keeping their own role is allowed
	_, err = svc.UpdateAccess(ctx, bob.ID, bob.ID, entity.AccessPatch{Role: rolePtr(entity.RoleAdmin)})
	assert.NoError(t, err)
}

func TestUpdateAccessRejects(t *testing.T) {
	tests := []struct {
		name    string
		self    bool
		target  func(alice, bob *entity.User) uuid.UUID
		patch   entity.AccessPatch
		wantErr error
	}{
		{name: "empty patch", patch: entity.AccessPatch{}, wantErr: errs.ErrValidation},
		{name: "unknown role", patch: entity.AccessPatch{Role: rolePtr("owner")}, wantErr: errs.ErrValidation},
		{name: "unknown user", target: func(_, _ *entity.User) uuid.UUID { return uuid.New() }, patch: entity.AccessPatch{Active: boolPtr(true)}, wantErr: errs.ErrNotFound},
		{name: "deactivate self", self: true, patch: entity.AccessPatch{Active: boolPtr(false)}, wantErr: errs.ErrForbidden},
		{name: "demote self", self: true, patch: entity.AccessPatch{Role: rolePtr(entity.RoleUser)}, wantErr: errs.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, events, alice, bob := newUserFixture()
			alice.Role = entity.RoleAdmin
			require.NoError(t, users.Update(context.Background(), alice))

			target := bob.ID
			switch {
			case tt.self:
				target = alice.ID
			case tt.target != nil:
				target = tt.target(alice, bob)
			}

			_, err := svc.UpdateAccess(context.Background(), alice.ID, target, tt.patch)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, events.types())

			stored, err := users.GetByID(context.Background(), alice.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.RoleAdmin, stored.Role)
			assert.True(t, stored.IsActive)
		})
	}
}

func TestListUsers(t *testing.T) {
	svc, _, _, _, _ := newUserFixture()

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
