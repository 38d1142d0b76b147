package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// LocalBus is an in-process Bus backed by a watermill Go channel. It is the
// fallback when no NATS server is configured; events do not survive a
// restart.
type LocalBus struct {
	pubSub *gochannel.GoChannel
}

var _ Bus = (*LocalBus)(nil)

func NewLocalBus() *LocalBus {
	return &LocalBus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NopLogger{},
		),
	}
}

func (b *LocalBus) Publish(ctx context.Context, event Event) error {
	data, err := Encode(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	return b.pubSub.Publish(Subject(event.EventType()), msg)
}

func (b *LocalBus) Subscribe(ctx context.Context, eventType, durable string, handler Handler) error {
	messages, err := b.pubSub.Subscribe(ctx, Subject(eventType))
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			event, err := Decode(msg.Payload)
			if err != nil {
				msg.Ack() // malformed, never redeliver
				continue
			}
			if err := handler(ctx, event); err != nil {
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()

	return nil
}

func (b *LocalBus) Close() error {
	return b.pubSub.Close()
}
