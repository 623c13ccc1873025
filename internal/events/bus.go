package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Topics emitted by the storefront.
const (
	TopicOrderReceived = "order.received"
	TopicCartCleared   = "cart.cleared"
)

// Event is an in-process domain event. Nothing is persisted; subscribers
// get a copy and the producer moves on.
type Event struct {
	ID          string          `json:"id"`
	Topic       string          `json:"topic"`
	AggregateID string          `json:"aggregateId"`
	Payload     json.RawMessage `json:"payload"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// Notifier reacts to emitted events (metrics, logging, future webhooks).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, event Event) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, event Event) error { return f(ctx, event) }

// Bus fans emitted events out to its notifiers synchronously. A nil Bus is
// safe to emit on and does nothing.
type Bus struct {
	Notifiers []Notifier
	now       func() time.Time
}

// NewBus constructs a bus with the given notifiers.
func NewBus(notifiers ...Notifier) *Bus {
	return &Bus{Notifiers: notifiers}
}

// WithClock overrides the event timestamp source. Tests use it.
func (b *Bus) WithClock(now func() time.Time) *Bus {
	b.now = now
	return b
}

// Emit builds the event and hands it to every notifier. Notifier errors are
// joined and returned but never stop the fan-out.
func (b *Bus) Emit(ctx context.Context, topic, aggregateID string, payload any) (Event, error) {
	if b == nil {
		return Event{}, nil
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Event{}, errors.New("events: topic is required")
	}
	encoded, err := encodePayload(payload)
	if err != nil {
		return Event{}, fmt.Errorf("events: encode payload: %w", err)
	}

	now := time.Now
	if b.now != nil {
		now = b.now
	}
	ev := Event{
		ID:          uuid.NewString(),
		Topic:       topic,
		AggregateID: aggregateID,
		Payload:     encoded,
		OccurredAt:  now(),
	}

	var joined error
	for _, notifier := range b.Notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, ev); err != nil {
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return ev, joined
}

func encodePayload(payload any) (json.RawMessage, error) {
	switch v := payload.(type) {
	case nil:
		return json.RawMessage("{}"), nil
	case json.RawMessage:
		if len(v) == 0 {
			return json.RawMessage("{}"), nil
		}
		if !json.Valid(v) {
			return nil, errors.New("payload is not valid json")
		}
		return append(json.RawMessage(nil), v...), nil
	case []byte:
		return encodePayload(json.RawMessage(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return data, nil
	}
}
