package service

import (
	"context"
	"strings"

	"eli5-bot/internal/pkg/logger"
	"eli5-bot/pkg/events"
)

type IActivityConsumer interface {
	Consume(ctx context.Context) error
}

// activityConsumer copies every domain event into the activity audit log.
type activityConsumer struct {
	bus    events.Bus
	audit  logger.ILogger
	logger logger.ILogger
}

func NewActivityConsumer(bus events.Bus, audit logger.ILogger, logger logger.ILogger) IActivityConsumer {
	return &activityConsumer{
		bus:    bus,
		audit:  audit,
		logger: logger,
	}
}

func (c *activityConsumer) Consume(ctx context.Context) error {
	for _, eventType := range events.AllTypes {
		durable := "activity-" + strings.ToLower(strings.ReplaceAll(eventType, "_", "-"))
		if err := c.bus.Subscribe(ctx, eventType, durable, c.handle); err != nil {
			return err
		}
	}
	c.logger.Info("ACTIVITY", "Activity consumer subscribed", map[string]interface{}{
		"types": len(events.AllTypes),
	})
	return nil
}

func (c *activityConsumer) handle(ctx context.Context, event events.Event) error {
	details := map[string]interface{}{
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}
	c.audit.Info("ACTIVITY", event.EventType(), details)
	return nil
}
