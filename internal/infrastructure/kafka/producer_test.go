package kafka

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"mindtrack/internal/domain/service"
)

func TestEncodeEvent(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)

	msg, err := EncodeEvent(service.Event{
		Type:       service.EventUserLoggedIn,
		UserID:     userID,
		OccurredAt: at,
		Attributes: map[string]any{"role": "admin"},
	})
	require.NoError(t, err)

	assert.Equal(t, userID.String(), string(msg.Key))
	assert.Equal(t, at, msg.Time)

	var payload structpb.Struct
	require.NoError(t, proto.Unmarshal(msg.Value, &payload))

	fields := payload.AsMap()
	assert.Equal(t, service.EventUserLoggedIn, fields["event_type"])
	assert.Equal(t, userID.String(), fields["user_id"])
	assert.NotEmpty(t, fields["event_id"])
	assert.Equal(t, map[string]any{"role": "admin"}, fields["attributes"])

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, HeaderEventType, msg.Headers[0].Key)
	assert.Equal(t, service.EventUserLoggedIn, string(msg.Headers[0].Value))

	var ts timestamppb.Timestamp
	require.NoError(t, proto.Unmarshal(msg.Headers[1].Value, &ts))
	assert.True(t, ts.AsTime().Equal(at))
}

func TestEncodeEventRejectsUnsupportedAttributes(t *testing.T) {
	_, err := EncodeEvent(service.Event{
		Type:       service.EventUserLoggedOut,
		UserID:     uuid.New(),
		Attributes: map[string]any{"ch": make(chan int)},
	})
	assert.Error(t, err)
}
