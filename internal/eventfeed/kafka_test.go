package eventfeed

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewKafkaPublisher_NoBrokersIsNop(t *testing.T) {
	p := NewKafkaPublisher(nil, "campus-events")
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), Change{Type: TypeCreated}))
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w, topic: "campus-events", timeout: time.Second}

	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	err := p.Publish(context.Background(), Change{
		Type:    TypeUpdated,
		EventID: "evt-1",
		DateKey: "20250310",
		Event:   map[string]string{"name": "Talk"},
		At:      at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "evt-1", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, TypeUpdated, string(msg.Headers[0].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "event.updated", decoded["type"])
	assert.Equal(t, "20250310", decoded["dateKey"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	boom := errors.New("broker unavailable")
	p := &KafkaPublisher{writer: &recordingWriter{err: boom}, topic: "campus-events", timeout: time.Second}

	err := p.Publish(context.Background(), Change{Type: TypeDeleted, EventID: "evt-1"})
	assert.ErrorIs(t, err, boom)
}
