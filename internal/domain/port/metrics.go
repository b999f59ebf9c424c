package port

import (
	"context"
	"time"
)

// Outcomes recorded for ledger operations.
const (
	OutcomePosted   = "posted"
	OutcomeSkipped  = "skipped"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// LedgerMetrics records posting and reversal results.
type LedgerMetrics interface {
	RecordPosting(ctx context.Context, outcome string, elapsed time.Duration)
	RecordReversal(ctx context.Context, outcome string)
}
