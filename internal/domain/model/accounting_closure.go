package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/domain/event"
	"github.com/bibbank/bib/internal/domain/valueobject"
	"github.com/bibbank/bib/pkg/events"
)

// AccountingClosure freezes an office, and every office below it, for all
// entry dates on or before closingDate. Closures are permanent.
type AccountingClosure struct {
	id           uuid.UUID
	tenantID     uuid.UUID
	officeID     uuid.UUID
	closingDate  time.Time
	comments     string
	createdBy    uuid.UUID
	createdAt    time.Time
	domainEvents []events.DomainEvent
}

// NewAccountingClosure closes office books up to closingDate. latest is the
// office's most recent closure, if any; closures may not move backwards and
// may not be dated after today.
func NewAccountingClosure(
	tenantID, officeID uuid.UUID,
	closingDate time.Time,
	latest *AccountingClosure,
	comments string,
	createdBy uuid.UUID,
	now time.Time,
) (AccountingClosure, error) {
	if tenantID == uuid.Nil {
		return AccountingClosure{}, invalid("tenant ID is required")
	}
	if officeID == uuid.Nil {
		return AccountingClosure{}, invalid("office ID is required")
	}
	if closingDate.IsZero() {
		return AccountingClosure{}, invalid("closing date is required")
	}
	closingDate = valueobject.PostingDate(closingDate)
	if closingDate.After(valueobject.PostingDate(now)) {
		return AccountingClosure{}, fmt.Errorf("%w: %s", ErrClosureInFuture, closingDate.Format(time.DateOnly))
	}
	if latest != nil && closingDate.Before(latest.closingDate) {
		return AccountingClosure{}, fmt.Errorf("%w: %s is before %s",
			ErrClosureNotMonotonic, closingDate.Format(time.DateOnly), latest.closingDate.Format(time.DateOnly))
	}

	c := AccountingClosure{
		id:          uuid.New(),
		tenantID:    tenantID,
		officeID:    officeID,
		closingDate: closingDate,
		comments:    comments,
		createdBy:   createdBy,
		createdAt:   now,
	}
	c.domainEvents = []events.DomainEvent{
		event.NewClosureCreated(tenantID, event.ClosureCreatedData{
			ClosureID:   c.id,
			OfficeID:    officeID,
			ClosingDate: closingDate,
		}, now),
	}
	return c, nil
}

// ReconstructAccountingClosure recreates a closure from persistence.
func ReconstructAccountingClosure(
	id, tenantID, officeID uuid.UUID,
	closingDate time.Time,
	comments string,
	createdBy uuid.UUID,
	createdAt time.Time,
) AccountingClosure {
	return AccountingClosure{
		id:          id,
		tenantID:    tenantID,
		officeID:    officeID,
		closingDate: valueobject.PostingDate(closingDate),
		comments:    comments,
		createdBy:   createdBy,
		createdAt:   createdAt,
	}
}

// Covers reports whether entryDate falls in the closed period.
func (c AccountingClosure) Covers(entryDate time.Time) bool {
	return !valueobject.PostingDate(entryDate).After(c.closingDate)
}

// Accessors
func (c AccountingClosure) ID() uuid.UUID                      { return c.id }
func (c AccountingClosure) TenantID() uuid.UUID                { return c.tenantID }
func (c AccountingClosure) OfficeID() uuid.UUID                { return c.officeID }
func (c AccountingClosure) ClosingDate() time.Time             { return c.closingDate }
func (c AccountingClosure) Comments() string                   { return c.comments }
func (c AccountingClosure) CreatedBy() uuid.UUID               { return c.createdBy }
func (c AccountingClosure) CreatedAt() time.Time               { return c.createdAt }
func (c AccountingClosure) DomainEvents() []events.DomainEvent { return c.domainEvents }
