package events

import "context"

// Handler processes one delivered event. A non-nil error asks the bus to
// redeliver when the transport supports it.
type Handler func(ctx context.Context, event Event) error

// Bus publishes events and delivers them to durable subscribers.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe registers handler for one event type. durable names the
	// consumer so a restarted process resumes where it stopped.
	Subscribe(ctx context.Context, eventType, durable string, handler Handler) error
	Close() error
}
