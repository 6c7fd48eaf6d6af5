package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
)

type fakeAPI struct {
	verify func(ctx context.Context) (*entity.Identity, error)
	login  func(ctx context.Context, creds entity.Credentials) (*entity.Identity, error)
	logout func(ctx context.Context) error
	update func(ctx context.Context, patch entity.IdentityPatch) (*entity.Identity, error)
}

func (f *fakeAPI) VerifySession(ctx context.Context) (*entity.Identity, error) {
	if f.verify == nil {
		return nil, errs.ErrUnauthenticated
	}
	return f.verify(ctx)
}

func (f *fakeAPI) Login(ctx context.Context, creds entity.Credentials) (*entity.Identity, error) {
	if f.login == nil {
		return nil, errs.ErrInvalidCredentials
	}
	return f.login(ctx, creds)
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	if f.logout == nil {
		return nil
	}
	return f.logout(ctx)
}

func (f *fakeAPI) UpdateIdentity(ctx context.Context, patch entity.IdentityPatch) (*entity.Identity, error) {
	if f.update == nil {
		return nil, errs.ErrNotFound
	}
	return f.update(ctx, patch)
}

func testIdentity(role entity.Role) *entity.Identity {
	return &entity.Identity{
		ID:          uuid.New(),
		DisplayName: "Ana",
		Email:       "ana@example.com",
		Role:        role,
		Active:      true,
	}
}

func newTestStore(t *testing.T, api *fakeAPI) *Store {
	return NewStore(api, zaptest.NewLogger(t))
}

func assertInvariant(t *testing.T, snap Snapshot) {
	t.Helper()
	if snap.State == Authenticated {
		assert.NotNil(t, snap.Identity, "authenticated snapshot without identity")
	} else {
		assert.Nil(t, snap.Identity, "%s snapshot with identity", snap.State)
	}
}

func TestNewStoreStartsUnresolvedAndPending(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})

	snap := s.Snapshot()
	assert.Equal(t, Unresolved, snap.State)
	assert.True(t, snap.Pending)
	assert.Nil(t, snap.Identity)
}

func TestInitialize(t *testing.T) {
	admin := testIdentity(entity.RoleAdmin)

	tests := []struct {
		name      string
		verify    func(ctx context.Context) (*entity.Identity, error)
		wantState State
		wantErr   error
	}{
		{
			name:      "valid cookie",
			verify:    func(context.Context) (*entity.Identity, error) { return admin, nil },
			wantState: Authenticated,
		},
		{
			name:      "expired cookie",
			verify:    func(context.Context) (*entity.Identity, error) { return nil, errs.ErrUnauthenticated },
			wantState: Anonymous,
		},
		{
			name: "network failure",
			verify: func(context.Context) (*entity.Identity, error) {
				return nil, errs.Wrap(errs.ErrNetworkFailure, "dial", errors.New("connection refused"))
			},
			wantState: Anonymous,
			wantErr:   errs.ErrNetworkFailure,
		},
		{
			name:      "empty response",
			verify:    func(context.Context) (*entity.Identity, error) { return nil, nil },
			wantState: Anonymous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t, &fakeAPI{verify: tt.verify})

			err := s.Initialize(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			snap := s.Snapshot()
			assert.Equal(t, tt.wantState, snap.State)
			assert.False(t, snap.Pending)
			assertInvariant(t, snap)
		})
	}
}

func TestInitializeCopiesIdentity(t *testing.T) {
	id := testIdentity(entity.RoleUser)
	s := newTestStore(t, &fakeAPI{verify: func(context.Context) (*entity.Identity, error) { return id, nil }})
	require.NoError(t, s.Initialize(context.Background()))

	id.Role = entity.RoleAdmin
	snap := s.Snapshot()
	snap.Identity.DisplayName = "changed"

	again := s.Snapshot()
	assert.Equal(t, entity.RoleUser, again.Identity.Role)
	assert.Equal(t, "Ana", again.Identity.DisplayName)
}

func TestLoginUsesServerRole(t *testing.T) {
	server := testIdentity(entity.RoleAdmin)
	var got entity.Credentials
	s := newTestStore(t, &fakeAPI{
		login: func(_ context.Context, creds entity.Credentials) (*entity.Identity, error) {
			got = creds
			return server, nil
		},
	})
	require.NoError(t, s.Initialize(context.Background()))
	require.Equal(t, Anonymous, s.Snapshot().State)

	intent, err := s.Login(context.Background(), entity.Credentials{Email: "ana@example.com", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, IntentNavigateDefault, intent)
	assert.Equal(t, DefaultView, intent.Target())
	assert.Equal(t, "ana@example.com", got.Email)

	snap := s.Snapshot()
	assert.Equal(t, Authenticated, snap.State)
	assert.False(t, snap.Pending)
	assert.Equal(t, entity.RoleAdmin, snap.Identity.Role)
	assert.Equal(t, server.ID, snap.Identity.ID)
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	s := newTestStore(t, &fakeAPI{
		login: func(context.Context, entity.Credentials) (*entity.Identity, error) {
			return nil, errs.New(errs.ErrInvalidCredentials, "Invalid email or password")
		},
	})
	require.NoError(t, s.Initialize(context.Background()))

	intent, err := s.Login(context.Background(), entity.Credentials{Email: "ana@example.com", Password: "wrong"})
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	assert.Equal(t, IntentNone, intent)
	assert.Equal(t, "Invalid email or password", errs.Message(err))

	snap := s.Snapshot()
	assert.Equal(t, Anonymous, snap.State)
	assert.False(t, snap.Pending)
	assertInvariant(t, snap)
}

func TestLoginRejectedOutsideAnonymous(t *testing.T) {
	t.Run("unresolved", func(t *testing.T) {
		s := newTestStore(t, &fakeAPI{})
		_, err := s.Login(context.Background(), entity.Credentials{})
		assert.ErrorIs(t, err, errs.ErrSessionBusy)
	})

	t.Run("authenticated", func(t *testing.T) {
		id := testIdentity(entity.RoleUser)
		s := newTestStore(t, &fakeAPI{verify: func(context.Context) (*entity.Identity, error) { return id, nil }})
		require.NoError(t, s.Initialize(context.Background()))

		_, err := s.Login(context.Background(), entity.Credentials{})
		assert.ErrorIs(t, err, errs.ErrAlreadyAuthenticated)
		assert.Equal(t, Authenticated, s.Snapshot().State)
	})
}

func TestConcurrentMutationIsRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	s := newTestStore(t, &fakeAPI{
		login: func(context.Context, entity.Credentials) (*entity.Identity, error) {
			close(entered)
			<-release
			return testIdentity(entity.RoleUser), nil
		},
	})
	require.NoError(t, s.Initialize(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := s.Login(context.Background(), entity.Credentials{Email: "ana@example.com", Password: "x"})
		done <- err
	}()
	<-entered

	assert.True(t, s.Snapshot().Pending)

	_, err := s.Logout(context.Background())
	assert.ErrorIs(t, err, errs.ErrSessionBusy)
	assert.ErrorIs(t, s.Initialize(context.Background()), errs.ErrSessionBusy)

	close(release)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	assert.Equal(t, Authenticated, snap.State)
	assert.False(t, snap.Pending)
}

func TestLogoutAlwaysClearsLocalState(t *testing.T) {
	tests := []struct {
		name      string
		remoteErr error
	}{
		{name: "server acknowledged"},
		{name: "server unreachable", remoteErr: errs.ErrNetworkFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := testIdentity(entity.RoleAdmin)
			s := newTestStore(t, &fakeAPI{
				verify: func(context.Context) (*entity.Identity, error) { return id, nil },
				logout: func(context.Context) error { return tt.remoteErr },
			})
			require.NoError(t, s.Initialize(context.Background()))

			intent, err := s.Logout(context.Background())
			if tt.remoteErr != nil {
				assert.ErrorIs(t, err, tt.remoteErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, IntentNavigateLogin, intent)
			assert.Equal(t, LoginView, intent.Target())

			snap := s.Snapshot()
			assert.Equal(t, Anonymous, snap.State)
			assert.False(t, snap.Pending)
			assert.Nil(t, snap.Identity)
		})
	}
}

func TestOutstandingRequestDoesNotTransition(t *testing.T) {
	id := testIdentity(entity.RoleUser)
	s := newTestStore(t, &fakeAPI{
		verify: func(context.Context) (*entity.Identity, error) { return id, nil },
		update: func(ctx context.Context, _ entity.IdentityPatch) (*entity.Identity, error) {
			<-ctx.Done()
			return nil, errs.Wrap(errs.ErrNetworkFailure, "request aborted", ctx.Err())
		},
	})
	require.NoError(t, s.Initialize(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	name := "Bia"
	err := s.UpdateProfile(ctx, entity.IdentityPatch{DisplayName: &name})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	snap := s.Snapshot()
	assert.Equal(t, Authenticated, snap.State)
	assert.Equal(t, "Ana", snap.Identity.DisplayName)
	assert.False(t, snap.Pending)
}

func TestUpdateProfile(t *testing.T) {
	id := testIdentity(entity.RoleUser)
	s := newTestStore(t, &fakeAPI{
		verify: func(context.Context) (*entity.Identity, error) { return id, nil },
		update: func(_ context.Context, patch entity.IdentityPatch) (*entity.Identity, error) {
			next := *id
			next.DisplayName = *patch.DisplayName
			next.Role = entity.RoleUser
			return &next, nil
		},
	})
	require.NoError(t, s.Initialize(context.Background()))

	name := "Bia"
	require.NoError(t, s.UpdateProfile(context.Background(), entity.IdentityPatch{DisplayName: &name}))

	snap := s.Snapshot()
	assert.Equal(t, "Bia", snap.Identity.DisplayName)
	assert.Equal(t, Authenticated, snap.State)

	err := s.UpdateProfile(context.Background(), entity.IdentityPatch{})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateProfileUnauthorizedExpiresSession(t *testing.T) {
	id := testIdentity(entity.RoleUser)
	s := newTestStore(t, &fakeAPI{
		verify: func(context.Context) (*entity.Identity, error) { return id, nil },
		update: func(context.Context, entity.IdentityPatch) (*entity.Identity, error) {
			return nil, errs.ErrUnauthenticated
		},
	})
	require.NoError(t, s.Initialize(context.Background()))

	name := "Bia"
	err := s.UpdateProfile(context.Background(), entity.IdentityPatch{DisplayName: &name})
	require.ErrorIs(t, err, errs.ErrUnauthenticated)
	assert.Equal(t, Anonymous, s.Snapshot().State)
	assertInvariant(t, s.Snapshot())
}

func TestExpireDuringUpdateProfileWins(t *testing.T) {
	id := testIdentity(entity.RoleAdmin)
	var s *Store
	s = newTestStore(t, &fakeAPI{
		verify: func(context.Context) (*entity.Identity, error) { return id, nil },
		update: func(_ context.Context, patch entity.IdentityPatch) (*entity.Identity, error) {
			s.Expire()
			next := *id
			next.DisplayName = *patch.DisplayName
			return &next, nil
		},
	})
	require.NoError(t, s.Initialize(context.Background()))

	name := "Bia"
	err := s.UpdateProfile(context.Background(), entity.IdentityPatch{DisplayName: &name})
	require.ErrorIs(t, err, errs.ErrUnauthenticated)

	snap := s.Snapshot()
	assert.Equal(t, Anonymous, snap.State)
	assert.False(t, snap.Pending)
	assertInvariant(t, snap)
}

func TestReplaceIdentity(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})
	require.NoError(t, s.Initialize(context.Background()))

	err := s.ReplaceIdentity(testIdentity(entity.RoleUser))
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	assert.Equal(t, Anonymous, s.Snapshot().State)

	id := testIdentity(entity.RoleUser)
	s = newTestStore(t, &fakeAPI{verify: func(context.Context) (*entity.Identity, error) { return id, nil }})
	require.NoError(t, s.Initialize(context.Background()))

	next := *id
	next.Email = "new@example.com"
	require.NoError(t, s.ReplaceIdentity(&next))

	snap := s.Snapshot()
	assert.Equal(t, "new@example.com", snap.Identity.Email)
	assert.Equal(t, Authenticated, snap.State)
	assert.False(t, snap.Pending)

	assert.ErrorIs(t, s.ReplaceIdentity(nil), errs.ErrValidation)
}

func TestExpire(t *testing.T) {
	id := testIdentity(entity.RoleUser)
	s := newTestStore(t, &fakeAPI{verify: func(context.Context) (*entity.Identity, error) { return id, nil }})

	s.Expire()
	assert.Equal(t, Unresolved, s.Snapshot().State, "expire must not resolve a pending session")

	require.NoError(t, s.Initialize(context.Background()))
	s.Expire()

	snap := s.Snapshot()
	assert.Equal(t, Anonymous, snap.State)
	assert.Nil(t, snap.Identity)
}

func TestSubscribeReceivesLatestSnapshot(t *testing.T) {
	id := testIdentity(entity.RoleUser)
	s := newTestStore(t, &fakeAPI{verify: func(context.Context) (*entity.Identity, error) { return id, nil }})

	ch, cancel := s.Subscribe()
	defer cancel()

	first := <-ch
	assert.Equal(t, Unresolved, first.State)

	require.NoError(t, s.Initialize(context.Background()))

	latest := <-ch
	assert.Equal(t, Authenticated, latest.State)
	assert.False(t, latest.Pending)

	cancel()
	_, open := <-ch
	assert.False(t, open)
	cancel()
}

func TestInvariantHoldsAcrossTransitions(t *testing.T) {
	id := testIdentity(entity.RoleAdmin)
	s := newTestStore(t, &fakeAPI{
		verify: func(context.Context) (*entity.Identity, error) { return nil, errs.ErrUnauthenticated },
		login:  func(context.Context, entity.Credentials) (*entity.Identity, error) { return id, nil },
	})
	ctx := context.Background()

	steps := []func(){
		func() { _ = s.Initialize(ctx) },
		func() { _, _ = s.Login(ctx, entity.Credentials{Email: "a@b.c", Password: "p"}) },
		func() { _ = s.ReplaceIdentity(testIdentity(entity.RoleUser)) },
		func() { s.Expire() },
		func() { _, _ = s.Login(ctx, entity.Credentials{Email: "a@b.c", Password: "p"}) },
		func() { _, _ = s.Logout(ctx) },
		func() { _, _ = s.Logout(ctx) },
	}
	for _, step := range steps {
		step()
		snap := s.Snapshot()
		assert.False(t, snap.Pending)
		assertInvariant(t, snap)
	}
}
