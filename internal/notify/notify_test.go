package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chorewheel/assign"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)

	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true

	return nil
}

func event() RoundEvent {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	return RoundEvent{
		HouseholdID: "flat-3b",
		RoundID:     "r-1",
		Flow:        1,
		Cost:        25,
		DueAt:       at.Add(7 * 24 * time.Hour),
		CreatedAt:   at,
		Assignments: []assign.Assignment{{UserID: "ana", ChoreID: "trash", Cost: 25}},
	}
}

func TestMessage(t *testing.T) {
	msg, err := Message(event())
	require.NoError(t, err)

	assert.Equal(t, []byte("flat-3b"), msg.Key)
	assert.True(t, msg.Time.Equal(event().CreatedAt))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "r-1", decoded["roundId"])
	assert.Equal(t, "2026-03-08T09:00:00Z", decoded["dueAt"])

	assignments, ok := decoded["assignments"].([]any)
	require.True(t, ok)
	require.Len(t, assignments, 1)
	assert.Equal(t, "trash", assignments[0].(map[string]any)["choreId"])
}

func TestKafkaPublish(t *testing.T) {
	w := &fakeWriter{}
	k := &Kafka{w: w, topic: "rounds"}

	require.NoError(t, k.Publish(context.Background(), event()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "flat-3b", string(w.msgs[0].Key))

	require.NoError(t, k.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublishError(t *testing.T) {
	boom := errors.New("leader not available")
	k := &Kafka{w: &fakeWriter{err: boom}, topic: "rounds"}

	err := k.Publish(context.Background(), event())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "rounds")
}

func TestNewKafka(t *testing.T) {
	_, err := NewKafka(nil, "rounds")
	require.ErrorIs(t, err, ErrNoBrokers)

	k, err := NewKafka([]string{"localhost:9092"}, "rounds")
	require.NoError(t, err)
	kw, ok := k.w.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "rounds", kw.Topic)
	require.NoError(t, k.Close())
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	require.NoError(t, p.Publish(context.Background(), event()))
	require.NoError(t, p.Close())
}
