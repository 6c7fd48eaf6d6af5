package service

import (
	"context"

	"mindtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// UserService defines business logic for user profiles
type UserService interface {
	// GetIdentity retrieves the identity of an active user
	GetIdentity(ctx context.Context, userID uuid.UUID) (*entity.Identity, error)

	// UpdateProfile applies a patch and returns the replacement identity
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch entity.IdentityPatch) (*entity.Identity, error)

	// ListUsers returns all users (admin only)
	ListUsers(ctx context.Context) ([]*entity.Identity, error)

	// UpdateAccess changes the role or active flag of userID on behalf of actorID (admin only)
	UpdateAccess(ctx context.Context, actorID, userID uuid.UUID, patch entity.AccessPatch) (*entity.Identity, error)
}
