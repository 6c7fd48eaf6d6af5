package repository

import (
	"context"

	"mindtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines methods for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update updates profile fields
	Update(ctx context.Context, user *entity.User) error

	// UpdateAccess updates role and active flag
	UpdateAccess(ctx context.Context, user *entity.User) error

	// EmailExists checks if email is already taken
	EmailExists(ctx context.Context, email string) (bool, error)

	// List returns every user, newest first
	List(ctx context.Context) ([]*entity.User, error)
}
