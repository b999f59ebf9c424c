package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry represents a domain event stored in the outbox table.
type OutboxEntry struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	AggregateID   uuid.UUID
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEntry creates an OutboxEntry from a DomainEvent, carrying the
// event's own serialized payload.
func NewOutboxEntry(event DomainEvent) OutboxEntry {
	return OutboxEntry{
		ID:            event.EventID(),
		TenantID:      event.TenantID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       event.Payload(),
		CreatedAt:     event.OccurredAt(),
	}
}

// NewOutboxEntries converts a batch of domain events.
func NewOutboxEntries(evts []DomainEvent) []OutboxEntry {
	entries := make([]OutboxEntry, 0, len(evts))
	for _, e := range evts {
		entries = append(entries, NewOutboxEntry(e))
	}
	return entries
}

// OutboxRepository is the port for outbox persistence.
type OutboxRepository interface {
	Store(ctx context.Context, entries []OutboxEntry) error
	FetchUnpublished(ctx context.Context, batchSize int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// EntryPublisher delivers stored outbox entries to a message broker.
type EntryPublisher interface {
	PublishEntries(ctx context.Context, entries []OutboxEntry) error
}
