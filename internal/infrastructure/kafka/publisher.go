package kafka

import (
	"context"
	"fmt"

	"github.com/bibbank/bib/pkg/events"
	kafkapkg "github.com/bibbank/bib/pkg/kafka"
)

// DefaultEventsTopic receives every accounting domain event.
const DefaultEventsTopic = "bib.accounting.events"

// Message headers set on published events.
const (
	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
	HeaderEventID       = "event_id"
	HeaderTenantID      = "tenant_id"
)

// messagePublisher is the part of *kafka.Producer the publisher uses.
type messagePublisher interface {
	Publish(ctx context.Context, topic string, messages ...kafkapkg.Message) error
}

var _ events.EntryPublisher = (*OutboxPublisher)(nil)

// OutboxPublisher sends outbox entries to one topic, keyed by aggregate id so
// the events of an aggregate stay in order on one partition.
type OutboxPublisher struct {
	producer messagePublisher
	topic    string
}

func NewOutboxPublisher(producer messagePublisher, topic string) *OutboxPublisher {
	if topic == "" {
		topic = DefaultEventsTopic
	}
	return &OutboxPublisher{producer: producer, topic: topic}
}

func (p *OutboxPublisher) PublishEntries(ctx context.Context, entries []events.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}
	msgs := make([]kafkapkg.Message, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, kafkapkg.Message{
			Key:   []byte(e.AggregateID.String()),
			Value: e.Payload,
			Headers: map[string]string{
				HeaderEventType:     e.EventType,
				HeaderAggregateType: e.AggregateType,
				HeaderEventID:       e.ID.String(),
				HeaderTenantID:      e.TenantID.String(),
			},
		})
	}
	if err := p.producer.Publish(ctx, p.topic, msgs...); err != nil {
		return fmt.Errorf("publish %d accounting events: %w", len(msgs), err)
	}
	return nil
}
