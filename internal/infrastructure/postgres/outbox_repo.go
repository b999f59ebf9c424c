package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/bib/pkg/events"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

var _ events.OutboxRepository = (*OutboxRepo)(nil)

const fetchUnpublishedSQL = `
	SELECT id, tenant_id, aggregate_id, aggregate_type, event_type, payload, created_at
	FROM outbox
	WHERE published_at IS NULL
	ORDER BY created_at, id
	LIMIT $1
	FOR UPDATE SKIP LOCKED
`

// OutboxRepo reads and acknowledges outbox rows for the relay.
type OutboxRepo struct {
	pool *pgxpool.Pool
}

func NewOutboxRepo(pool *pgxpool.Pool) *OutboxRepo {
	return &OutboxRepo{pool: pool}
}

func (r *OutboxRepo) Store(ctx context.Context, entries []events.OutboxEntry) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return storeOutbox(ctx, tx, entries)
	})
}

func (r *OutboxRepo) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	return fetchUnpublished(ctx, r.pool, batchSize)
}

func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return markPublished(ctx, r.pool, ids, at)
}

// Drain locks up to batchSize unpublished rows, hands them to publish and
// marks them published when publish succeeds, all in one transaction.
// Concurrent relays skip each other's rows. It returns the number of rows
// published.
func (r *OutboxRepo) Drain(ctx context.Context, batchSize int, publish func(ctx context.Context, entries []events.OutboxEntry) error) (int, error) {
	var n int
	err := pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		entries, err := fetchUnpublished(ctx, tx, batchSize)
		if err != nil || len(entries) == 0 {
			return err
		}
		if err := publish(ctx, entries); err != nil {
			return fmt.Errorf("publish outbox batch: %w", err)
		}
		ids := make([]uuid.UUID, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		if err := markPublished(ctx, tx, ids, time.Now().UTC()); err != nil {
			return err
		}
		n = len(entries)
		return nil
	})
	return n, err
}

func fetchUnpublished(ctx context.Context, q pgpkg.Querier, batchSize int) ([]events.OutboxEntry, error) {
	rows, err := q.Query(ctx, fetchUnpublishedSQL, batchSize)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []events.OutboxEntry
	for rows.Next() {
		var e events.OutboxEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.AggregateID, &e.AggregateType, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func markPublished(ctx context.Context, q pgpkg.Querier, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := q.Exec(ctx, `UPDATE outbox SET published_at = $2 WHERE id = ANY($1)`, ids, at); err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
