package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/bibbank/bib/pkg/events"
)

// outboxDrainer hands locked batches of unpublished outbox rows to publish.
type outboxDrainer interface {
	Drain(ctx context.Context, batchSize int, publish func(ctx context.Context, entries []events.OutboxEntry) error) (int, error)
}

// OutboxRelay polls the outbox and forwards new rows to the broker.
type OutboxRelay struct {
	outbox    outboxDrainer
	publisher events.EntryPublisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewOutboxRelay(outbox outboxDrainer, publisher events.EntryPublisher, interval time.Duration, batchSize int, logger *slog.Logger) *OutboxRelay {
	return &OutboxRelay{
		outbox:    outbox,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run polls until ctx is cancelled. Failed batches stay in the outbox and
// are retried on the next tick.
func (r *OutboxRelay) Run(ctx context.Context) error {
	r.logger.Info("outbox relay starting", "interval", r.interval, "batch_size", r.batchSize)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
			r.logger.Error("outbox relay failed", "error", err)
		}
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopping")
			return nil
		case <-ticker.C:
		}
	}
}

// Flush publishes full batches until the outbox is drained and returns the
// number of events published.
func (r *OutboxRelay) Flush(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := r.outbox.Drain(ctx, r.batchSize, r.publisher.PublishEntries)
		total += n
		if err != nil {
			return total, err
		}
		if n > 0 {
			r.logger.Debug("published outbox batch", "count", n)
		}
		if n < r.batchSize {
			return total, nil
		}
	}
}
