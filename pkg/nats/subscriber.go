package nats

import (
	"context"
	"fmt"
	"log"

	"eli5-bot/pkg/events"

	"github.com/nats-io/nats.go/jetstream"
)

// Subscribe registers a handler for one event type.
// It uses a persistent consumer (Durable) to ensure no messages are lost.
func (b *Bus) Subscribe(ctx context.Context, eventType, durable string, handler events.Handler) error {
	subject := events.Subject(eventType)

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		Durable:       durable,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := events.Decode(msg.Data())
		if err != nil {
			log.Printf("Error unmarshalling event data: %v", err)
			_ = msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			log.Printf("Handler failed for event %s: %v", msg.Subject(), err)
			_ = msg.Nak() // Retry
			return
		}

		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	b.mu.Lock()
	b.consumers = append(b.consumers, cc)
	b.mu.Unlock()

	log.Printf("Subscribed to %s with durable %s", subject, durable)
	return nil
}

// Close stops every consumer and closes the connection.
func (b *Bus) Close() error {
	b.mu.Lock()
	for _, cc := range b.consumers {
		cc.Stop()
	}
	b.consumers = nil
	b.mu.Unlock()

	if b.nc != nil {
		b.nc.Close()
	}
	return nil
}
