package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event[T] binds a topic name to a payload type so publishers and
// subscribers agree on the JSON shape at compile time.
type Event[T any] struct {
	topicName   string
	description string
}

// NewEvent declares a typed event and records it in the topic catalog.
// Events are usually defined as package-level variables next to their
// payload types, so the catalog fills up as packages are linked in.
func NewEvent[T any](name string, description string) Event[T] {
	var zero T
	registerTopic(TopicInfo{
		Name:        name,
		Description: description,
		Payload:     fmt.Sprintf("%T", zero),
	})

	return Event[T]{
		topicName:   name,
		description: description,
	}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Description returns the human-readable purpose of the event.
func (e Event[T]) Description() string {
	return e.description
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s payload: %w", event.Name(), err)
	}

	// Use underlying Publisher interface
	return p.Publish(ctx, Message{
		Topic:   event.Name(),
		Payload: data,
	})
}

// Subscribe registers a typed handler for the event. Messages whose payload
// does not decode into T are reported to the handler's error path via the
// returned error, which the bus logs and nacks.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decoding %s payload: %w", event.Name(), err)
		}
		return handler(ctx, payload)
	})
}
