package service

import (
	"context"
	"net"
	"time"

	"mindtrack/internal/domain/entity"

	"github.com/google/uuid"
)

// AccessToken is a signed bearer token bound to a session
type AccessToken struct {
	Token     string
	SessionID uuid.UUID
	ExpiresAt time.Time
}

// Principal is the caller resolved from a valid access token.
// Role is the stored user's current role, not the one issued at login.
type Principal struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Role      entity.Role
}

// AuthService defines business logic for authentication
type AuthService interface {
	// Login authenticates user and creates session
	Login(ctx context.Context, creds entity.Credentials, ipAddress *net.IP, userAgent *string) (*entity.User, *AccessToken, error)

	// Logout invalidates user session
	Logout(ctx context.Context, principal Principal) error

	// ValidateAccessToken validates access token against the live session
	ValidateAccessToken(ctx context.Context, accessToken string) (*Principal, error)

	// SweepExpiredSessions removes sessions past their expiry
	SweepExpiredSessions(ctx context.Context) (int64, error)
}
