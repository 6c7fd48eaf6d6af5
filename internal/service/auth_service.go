package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/repository"
	"mindtrack/internal/domain/service"
	"mindtrack/internal/metrics"
	"mindtrack/pkg/hash"
	"mindtrack/pkg/jwt"
	"mindtrack/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// authService implements service.AuthService
type authService struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	sessionCache repository.SessionCache
	tokenManager *jwt.TokenManager
	events       service.EventPublisher
	logger       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	sessionCache repository.SessionCache,
	tokenManager *jwt.TokenManager,
	events service.EventPublisher,
	logger *zap.Logger,
) service.AuthService {
	return &authService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
		tokenManager: tokenManager,
		events:       events,
		logger:       logger.Named("auth"),
	}
}

var errBadCredentials = errs.New(errs.ErrInvalidCredentials, "Invalid email or password")

// Login authenticates user and creates session
func (s *authService) Login(
	ctx context.Context,
	creds entity.Credentials,
	ipAddress *net.IP,
	userAgent *string,
) (*entity.User, *service.AccessToken, error) {
	if err := validation.Struct(creds); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			metrics.Logins.WithLabelValues("unknown_user").Inc()
			return nil, nil, errBadCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := hash.ComparePassword(user.PasswordHash, creds.Password); err != nil {
		if errors.Is(err, hash.ErrMismatch) {
			metrics.Logins.WithLabelValues("bad_password").Inc()
			return nil, nil, errBadCredentials
		}
		return nil, nil, err
	}

	if !user.IsActive {
		metrics.Logins.WithLabelValues("inactive").Inc()
		return nil, nil, errs.New(errs.ErrInvalidCredentials, "Account is deactivated")
	}

	token, err := s.createSession(ctx, user, ipAddress, userAgent)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	metrics.Logins.WithLabelValues("success").Inc()
	publish(ctx, s.events, s.logger, service.EventUserLoggedIn, user.ID, map[string]any{
		"session_id": token.SessionID.String(),
		"role":       string(user.Role),
	})

	return user, token, nil
}

// Logout invalidates user session
func (s *authService) Logout(ctx context.Context, principal service.Principal) error {
	session, err := s.sessionCache.Get(ctx, principal.SessionID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	if session.UserID != principal.UserID {
		return errs.New(errs.ErrForbidden, "session does not belong to user")
	}

	if err := s.sessionCache.Delete(ctx, principal.SessionID); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("failed to delete session from cache: %w", err)
	}

	if err := s.sessionRepo.Delete(ctx, principal.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	publish(ctx, s.events, s.logger, service.EventUserLoggedOut, principal.UserID, map[string]any{
		"session_id": principal.SessionID.String(),
	})
	return nil
}

// ValidateAccessToken validates access token against the live session
func (s *authService) ValidateAccessToken(ctx context.Context, accessToken string) (*service.Principal, error) {
	if accessToken == "" {
		return nil, errs.New(errs.ErrUnauthenticated, "Token is missing")
	}

	claims, err := s.tokenManager.ValidateAccessToken(accessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, errs.Wrap(errs.ErrUnauthenticated, "Token has expired", err)
		}
		return nil, errs.Wrap(errs.ErrUnauthenticated, "Token is invalid", err)
	}

	session, err := s.sessionCache.GetByTokenHash(ctx, jwt.HashToken(accessToken))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.New(errs.ErrUnauthenticated, "Session not found or expired")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.ID != claims.SessionID || session.UserID != claims.UserID {
		return nil, errs.New(errs.ErrUnauthenticated, "Session not found or expired")
	}

	// role and active flag come from the user record, not the token
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.New(errs.ErrUnauthenticated, "User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, errs.New(errs.ErrUnauthenticated, "Account is deactivated")
	}

	if err := s.sessionCache.UpdateLastActivity(ctx, claims.SessionID); err != nil {
		s.logger.Warn("failed to update session activity",
			zap.String("session_id", claims.SessionID.String()),
			zap.Error(err),
		)
	}

	return &service.Principal{
		UserID:    user.ID,
		SessionID: session.ID,
		Role:      user.Role,
	}, nil
}

// SweepExpiredSessions removes sessions past their expiry
func (s *authService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return removed, nil
}

func (s *authService) createSession(
	ctx context.Context,
	user *entity.User,
	ipAddress *net.IP,
	userAgent *string,
) (*service.AccessToken, error) {
	sessionID := uuid.New()

	token, expiresAt, err := s.tokenManager.GenerateAccessToken(user.ID, sessionID, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.Session{
		ID:             sessionID,
		UserID:         user.ID,
		Role:           user.Role,
		TokenHash:      jwt.HashToken(token),
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		ExpiresAt:      expiresAt,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.sessionCache.Set(ctx, session); err != nil {
		if delErr := s.sessionRepo.Delete(ctx, sessionID); delErr != nil {
			s.logger.Error("failed to remove uncached session",
				zap.String("session_id", sessionID.String()),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}

	return &service.AccessToken{
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	}, nil
}
