package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/bib/internal/domain/port"
)

const meterName = "github.com/bibbank/bib/accounting"

var _ port.LedgerMetrics = (*LedgerMetrics)(nil)

// LedgerMetrics records posting and reversal outcomes as OpenTelemetry
// instruments.
type LedgerMetrics struct {
	postings  metric.Int64Counter
	reversals metric.Int64Counter
	duration  metric.Float64Histogram
}

func NewLedgerMetrics(provider metric.MeterProvider) (*LedgerMetrics, error) {
	meter := provider.Meter(meterName)

	postings, err := meter.Int64Counter("accounting.postings",
		metric.WithDescription("Posting requests by outcome"))
	if err != nil {
		return nil, fmt.Errorf("create postings counter: %w", err)
	}
	reversals, err := meter.Int64Counter("accounting.reversals",
		metric.WithDescription("Reversal requests by outcome"))
	if err != nil {
		return nil, fmt.Errorf("create reversals counter: %w", err)
	}
	duration, err := meter.Float64Histogram("accounting.posting.duration",
		metric.WithDescription("Time to post one transaction"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("create posting duration histogram: %w", err)
	}

	return &LedgerMetrics{postings: postings, reversals: reversals, duration: duration}, nil
}

func (m *LedgerMetrics) RecordPosting(ctx context.Context, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.postings.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

func (m *LedgerMetrics) RecordReversal(ctx context.Context, outcome string) {
	m.reversals.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
