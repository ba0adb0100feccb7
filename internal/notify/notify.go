// SPDX-License-Identifier: MIT

// Package notify publishes finished assignment rounds to downstream consumers.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/katalvlaran/chorewheel/assign"
)

// ErrNoBrokers is returned by NewKafka without broker addresses.
var ErrNoBrokers = errors.New("notify: no kafka brokers")

// RoundEvent is the payload published after a round is persisted.
type RoundEvent struct {
	HouseholdID string              `json:"householdId"`
	RoundID     string              `json:"roundId"`
	Flow        int64               `json:"flow"`
	Cost        int64               `json:"cost"`
	DueAt       time.Time           `json:"dueAt"`
	CreatedAt   time.Time           `json:"createdAt"`
	Assignments []assign.Assignment `json:"assignments"`
}

// Publisher delivers round events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev RoundEvent) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, RoundEvent) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }

// messageWriter is the subset of *kafka.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes events as JSON, keyed by household ID so one household's
// rounds stay ordered on a single partition.
type Kafka struct {
	w     messageWriter
	topic string
}

// NewKafka builds a synchronous writer for topic on brokers.
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}

	return &Kafka{w: w, topic: topic}, nil
}

// Message encodes ev as the Kafka message Publish would send.
func Message(ev RoundEvent) (kafka.Message, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("notify: encode event: %w", err)
	}

	return kafka.Message{Key: []byte(ev.HouseholdID), Value: b, Time: ev.CreatedAt}, nil
}

// Publish implements Publisher.
func (k *Kafka) Publish(ctx context.Context, ev RoundEvent) error {
	msg, err := Message(ev)
	if err != nil {
		return err
	}
	if err = k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("notify: write to %s: %w", k.topic, err)
	}

	return nil
}

// Close flushes and closes the writer.
func (k *Kafka) Close() error {
	return k.w.Close()
}
