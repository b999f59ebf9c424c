package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/pkg/events"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

// nullUUID stores uuid.Nil as SQL NULL.
func nullUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func fromNullUUID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

// notFound turns pgx.ErrNoRows into model.ErrNotFound.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), model.ErrNotFound)
	}
	return fmt.Errorf("query %s: %w", fmt.Sprintf(format, args...), err)
}

const insertOutboxSQL = `
	INSERT INTO outbox (id, tenant_id, aggregate_id, aggregate_type, event_type, payload, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// storeOutbox writes events to the outbox through q, which is normally the
// transaction that persisted the aggregate.
func storeOutbox(ctx context.Context, q pgpkg.Querier, entries []events.OutboxEntry) error {
	for _, e := range entries {
		if _, err := q.Exec(ctx, insertOutboxSQL,
			e.ID, e.TenantID, e.AggregateID, e.AggregateType, e.EventType, e.Payload, e.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert outbox event %s: %w", e.EventType, err)
		}
	}
	return nil
}
