package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindtrack/internal/domain/service"
)

// NopPublisher drops every event; used when kafka is disabled
type NopPublisher struct{}

// Publish implements service.EventPublisher
func (NopPublisher) Publish(context.Context, service.Event) error { return nil }

// publish sends an event and only logs failures, so a broker outage never fails a request
func publish(ctx context.Context, events service.EventPublisher, logger *zap.Logger, eventType string, userID uuid.UUID, attrs map[string]any) {
	err := events.Publish(ctx, service.Event{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now(),
		Attributes: attrs,
	})
	if err != nil {
		logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
