package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
)

// ClosureReader is the slice of a ledger transaction the closure guard needs.
type ClosureReader interface {
	LockOffice(ctx context.Context, tenantID, officeID uuid.UUID, mode port.LockMode) (model.Office, error)
	LatestClosure(ctx context.Context, tenantID, officeID uuid.UUID) (model.AccountingClosure, bool, error)
}

// ClosureGuard rejects entries dated inside a closed accounting period of an
// office or any of its ancestors.
type ClosureGuard struct{}

func NewClosureGuard() *ClosureGuard {
	return &ClosureGuard{}
}

// LatestCovering walks from officeID to the head office, share-locking every
// office on the way, and returns the closure with the latest closing date.
// Holding the share locks until commit keeps a concurrent closure of any of
// those offices from slipping in between the check and the write.
func (g *ClosureGuard) LatestCovering(ctx context.Context, r ClosureReader, tenantID, officeID uuid.UUID) (model.AccountingClosure, bool, error) {
	var (
		latest model.AccountingClosure
		found  bool
	)
	visited := make(map[uuid.UUID]struct{})
	for id := officeID; id != uuid.Nil; {
		if _, seen := visited[id]; seen {
			return model.AccountingClosure{}, false, fmt.Errorf("office hierarchy of %s contains a cycle at %s", officeID, id)
		}
		visited[id] = struct{}{}

		office, err := r.LockOffice(ctx, tenantID, id, port.LockShare)
		if err != nil {
			return model.AccountingClosure{}, false, fmt.Errorf("lock office %s: %w", id, err)
		}
		closure, ok, err := r.LatestClosure(ctx, tenantID, id)
		if err != nil {
			return model.AccountingClosure{}, false, fmt.Errorf("latest closure of office %s: %w", id, err)
		}
		if ok && (!found || closure.ClosingDate().After(latest.ClosingDate())) {
			latest, found = closure, true
		}
		id = office.ParentID()
	}
	return latest, found, nil
}

// CheckPostable fails with *model.ClosurePeriodViolationError when entryDate
// is on or before the latest closure covering the office.
func (g *ClosureGuard) CheckPostable(ctx context.Context, r ClosureReader, tenantID, officeID uuid.UUID, entryDate time.Time) error {
	closure, found, err := g.LatestCovering(ctx, r, tenantID, officeID)
	if err != nil {
		return err
	}
	if found && closure.Covers(entryDate) {
		return &model.ClosurePeriodViolationError{
			OfficeID:        officeID,
			ClosureOfficeID: closure.OfficeID(),
			ClosingDate:     closure.ClosingDate(),
			EntryDate:       entryDate,
		}
	}
	return nil
}
