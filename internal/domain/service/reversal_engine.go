package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
)

// ReversalRequest asks for the compensation of one posted transaction.
type ReversalRequest struct {
	TenantID      uuid.UUID
	TransactionID string
	// ReversalTransactionID is generated when empty.
	ReversalTransactionID string
	ReversalDate          time.Time
	CreatedBy             uuid.UUID
}

// ReversalEngine writes compensating legs for posted transactions.
type ReversalEngine struct {
	guard     *ClosureGuard
	validator *PostingValidator
}

func NewReversalEngine(guard *ClosureGuard, validator *PostingValidator) *ReversalEngine {
	return &ReversalEngine{guard: guard, validator: validator}
}

// NewReversalTransactionID derives a fresh transaction id for the reversal of transactionID.
func NewReversalTransactionID(transactionID string) string {
	return fmt.Sprintf("%s-R-%s", transactionID, uuid.NewString()[:8])
}

// Reverse runs inside tx. It locks the original legs, checks the reversal
// date against closures of the originating office and its ancestors, and
// writes the compensating transaction together with the reversal marks and
// the JournalReversed event.
func (e *ReversalEngine) Reverse(ctx context.Context, tx port.LedgerTx, req ReversalRequest, now time.Time) (model.JournalTransaction, error) {
	if req.TenantID == uuid.Nil || req.TransactionID == "" {
		return model.JournalTransaction{}, fmt.Errorf("%w: tenant and transaction ID are required", model.ErrInvalidInput)
	}
	if req.ReversalDate.IsZero() {
		return model.JournalTransaction{}, fmt.Errorf("%w: reversal date is required", model.ErrInvalidInput)
	}
	reversalID := req.ReversalTransactionID
	if reversalID == "" {
		reversalID = NewReversalTransactionID(req.TransactionID)
	}

	original, err := tx.EntriesForUpdate(ctx, req.TenantID, req.TransactionID)
	if err != nil {
		return model.JournalTransaction{}, fmt.Errorf("load transaction %s: %w", req.TransactionID, err)
	}
	if len(original) == 0 {
		return model.JournalTransaction{}, fmt.Errorf("transaction %s: %w", req.TransactionID, model.ErrNotFound)
	}
	for _, leg := range original {
		if leg.Reversed() {
			return model.JournalTransaction{}, &model.AlreadyReversedError{TransactionID: req.TransactionID, ReversalID: leg.ReversalID()}
		}
	}

	if err := e.guard.CheckPostable(ctx, tx, req.TenantID, original[0].OfficeID(), req.ReversalDate); err != nil {
		return model.JournalTransaction{}, err
	}

	exists, err := tx.TransactionExists(ctx, req.TenantID, reversalID)
	if err != nil {
		return model.JournalTransaction{}, fmt.Errorf("check transaction %s: %w", reversalID, err)
	}
	if exists {
		return model.JournalTransaction{}, fmt.Errorf("%w: %s", model.ErrTransactionAlreadyPosted, reversalID)
	}

	reversal, marked, err := model.NewReversal(original, reversalID, req.ReversalDate, req.CreatedBy, now)
	if err != nil {
		return model.JournalTransaction{}, err
	}
	if err := e.validator.ValidateEntries(reversalID, reversal.Entries()); err != nil {
		return model.JournalTransaction{}, err
	}

	if err := tx.SaveJournalTransaction(ctx, reversal); err != nil {
		return model.JournalTransaction{}, fmt.Errorf("save reversal %s: %w", reversalID, err)
	}
	if err := tx.MarkReversed(ctx, marked); err != nil {
		return model.JournalTransaction{}, fmt.Errorf("mark %s reversed: %w", req.TransactionID, err)
	}
	if err := tx.SaveEvents(ctx, reversal.DomainEvents()); err != nil {
		return model.JournalTransaction{}, fmt.Errorf("save reversal events: %w", err)
	}
	return reversal, nil
}
