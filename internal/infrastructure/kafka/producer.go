package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"mindtrack/internal/config"
	"mindtrack/internal/domain/service"
)

// Message header keys
const (
	HeaderEventType  = "event_type"
	HeaderOccurredAt = "occurred_at"
)

var _ service.EventPublisher = (*Producer)(nil)

// Producer handles publishing events to Kafka
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
	}

	return &Producer{
		writer: writer,
		logger: logger.Named("kafka"),
	}
}

// Publish encodes the event as a protobuf Struct keyed by user ID
func (p *Producer) Publish(ctx context.Context, event service.Event) error {
	message, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	p.logger.Debug("published event",
		zap.String("type", event.Type),
		zap.String("user_id", event.UserID.String()),
	)
	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// EncodeEvent builds the kafka message for an event. The value is a
// protobuf-encoded structpb.Struct; the occurred_at header is a
// protobuf-encoded Timestamp.
func EncodeEvent(event service.Event) (kafka.Message, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	fields := map[string]any{
		"event_id":    event.ID.String(),
		"event_type":  event.Type,
		"user_id":     event.UserID.String(),
		"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if len(event.Attributes) > 0 {
		fields["attributes"] = event.Attributes
	}

	payload, err := structpb.NewStruct(fields)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to build event payload: %w", err)
	}

	value, err := proto.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	ts, err := proto.Marshal(timestamppb.New(event.OccurredAt))
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event timestamp: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.UserID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(event.Type)},
			{Key: HeaderOccurredAt, Value: ts},
		},
	}, nil
}
