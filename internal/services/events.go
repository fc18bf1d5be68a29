package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ProgrammerShajib/fullstack/internal/mq"
	"github.com/ProgrammerShajib/fullstack/types"
)

const eventTypeAttribute = "event"

// EventPublisher delivers user change events.
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, event types.UserEvent) error
}

// MQEventPublisher publishes user events as JSON onto a broker channel.
type MQEventPublisher struct {
	queue   *mq.MQ
	channel string
}

func NewMQEventPublisher(queue *mq.MQ, channel string) *MQEventPublisher {
	return &MQEventPublisher{queue: queue, channel: channel}
}

func (p *MQEventPublisher) PublishUserEvent(ctx context.Context, event types.UserEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode user event: %w", err)
	}
	attrs := map[string]string{eventTypeAttribute: string(event.Type)}
	if _, err := p.queue.Publish(ctx, p.channel, data, attrs); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

// DecodeUserEvent parses a message produced by MQEventPublisher.
func DecodeUserEvent(msg mq.Message) (types.UserEvent, error) {
	var event types.UserEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		return types.UserEvent{}, fmt.Errorf("decode user event %s: %w", msg.ID, err)
	}
	return event, nil
}
