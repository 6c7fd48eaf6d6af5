package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var _ repository.SessionCache = (*SessionStorage)(nil)

// SessionStorage handles session storage in Redis
type SessionStorage struct {
	client *redis.Client
}

// NewSessionStorage creates a new session storage
func NewSessionStorage(client *redis.Client) *SessionStorage {
	return &SessionStorage{
		client: client,
	}
}

func sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s", sessionID.String())
}

func tokenHashKey(tokenHash string) string {
	return fmt.Sprintf("token:%s", tokenHash)
}

// Set stores a session until it expires, plus a token hash lookup key
func (s *SessionStorage) Set(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.ID), data, ttl)
		pipe.Set(ctx, tokenHashKey(session.TokenHash), session.ID.String(), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (s *SessionStorage) Get(ctx context.Context, sessionID uuid.UUID) (*entity.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.New(errs.ErrNotFound, "session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// GetByTokenHash retrieves the session a token was issued for
func (s *SessionStorage) GetByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	sessionIDStr, err := s.client.Get(ctx, tokenHashKey(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.New(errs.ErrNotFound, "session not found for token")
		}
		return nil, fmt.Errorf("failed to get session ID from token: %w", err)
	}

	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	return s.Get(ctx, sessionID)
}

// UpdateLastActivity updates the last activity timestamp
func (s *SessionStorage) UpdateLastActivity(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	session.UpdateActivity()

	return s.Set(ctx, session)
}

// Delete removes a session and its token hash key
func (s *SessionStorage) Delete(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, sessionKey(sessionID), tokenHashKey(session.TokenHash)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
