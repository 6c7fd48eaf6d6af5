package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published on the user events topic
const (
	EventUserLoggedIn      = "user.logged_in"
	EventUserLoggedOut     = "user.logged_out"
	EventUserProfileUpdate = "user.profile_updated"
	EventUserAccessUpdate  = "user.access_updated"
)

// Event is a domain event about a user
type Event struct {
	ID         uuid.UUID
	Type       string
	UserID     uuid.UUID
	OccurredAt time.Time
	Attributes map[string]any
}

// EventPublisher delivers domain events to other services
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
