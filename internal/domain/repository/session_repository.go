package repository

import (
	"context"

	"mindtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionRepository is the durable record of login sessions
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *entity.Session) error

	// Delete deletes a session by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired deletes all expired sessions
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionCache is the fast lookup used on every authenticated request
type SessionCache interface {
	Set(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)
	UpdateLastActivity(ctx context.Context, sessionID uuid.UUID) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
}
