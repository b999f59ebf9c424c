package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/valueobject"
)

// PostingValidator is a domain service that validates posting pairs and
// stored legs before they are committed.
type PostingValidator struct{}

func NewPostingValidator() *PostingValidator {
	return &PostingValidator{}
}

// ValidatePostings ensures there is at least one pair and the total moved is positive.
func (v *PostingValidator) ValidatePostings(postings []valueobject.PostingPair) error {
	if len(postings) == 0 {
		return fmt.Errorf("%w: at least one posting pair is required", model.ErrInvalidInput)
	}

	// Each PostingPair is balanced by construction, so only the totals need checking.
	total := decimal.Zero
	for _, p := range postings {
		total = total.Add(p.Amount())
	}
	if !total.IsPositive() {
		return fmt.Errorf("%w: posting total must be positive, got %s", model.ErrInvalidInput, total)
	}
	return nil
}

// ValidateEntries re-checks the legs of a transaction just before they are
// written. Legs built by the aggregate always pass; a failure here means the
// legs were assembled elsewhere and is reported as *model.UnbalancedEntryError.
func (v *PostingValidator) ValidateEntries(transactionID string, entries []model.JournalEntry) error {
	if len(entries) == 0 || len(entries)%2 != 0 {
		return fmt.Errorf("%w: transaction %s has %d legs", model.ErrInvalidInput, transactionID, len(entries))
	}
	for _, e := range entries {
		if e.TransactionID() != transactionID {
			return fmt.Errorf("%w: leg %s belongs to %s, not %s", model.ErrInvalidInput, e.ID(), e.TransactionID(), transactionID)
		}
		if !e.Amount().IsPositive() {
			return fmt.Errorf("%w: leg %d of %s has non-positive amount %s", model.ErrInvalidInput, e.EntrySeq(), transactionID, e.Amount())
		}
	}
	return model.CheckBalanced(transactionID, entries)
}
