package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/internal/domain/valueobject"
)

var (
	ErrNotFound                 = errors.New("not found")
	ErrInvalidInput             = errors.New("invalid input")
	ErrTransactionAlreadyPosted = errors.New("transaction already posted")
	ErrReversalNotReversible    = errors.New("reversal entries cannot be reversed")
	ErrGLAccountNotPostable     = errors.New("GL account is not postable")
	ErrClosureNotMonotonic      = errors.New("closure date precedes the latest closure")
	ErrClosureInFuture          = errors.New("closure date is in the future")
	ErrInvalidRole              = errors.New("account role not allowed for product")
	ErrUnsupportedTransaction   = errors.New("transaction type not supported")
	ErrDuplicateGLCode          = errors.New("GL code already exists")
	ErrDuplicateMapping         = errors.New("account mapping already exists")
	ErrInvalidParent            = errors.New("invalid parent")
)

// invalid wraps ErrInvalidInput with a message.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// AccountMappingNotFoundError reports a role with no product-specific or
// default GL account mapping.
type AccountMappingNotFoundError struct {
	ProductType   valueobject.ProductType
	ProductID     uuid.UUID
	Role          valueobject.AccountRole
	PaymentTypeID uuid.UUID
	ChargeID      uuid.UUID
}

func (e *AccountMappingNotFoundError) Error() string {
	msg := fmt.Sprintf("no GL account mapped for role %s on %s product %s", e.Role, e.ProductType, e.ProductID)
	if e.PaymentTypeID != uuid.Nil {
		msg += fmt.Sprintf(" (payment type %s)", e.PaymentTypeID)
	}
	if e.ChargeID != uuid.Nil {
		msg += fmt.Sprintf(" (charge %s)", e.ChargeID)
	}
	return msg
}

// ClosurePeriodViolationError reports a posting dated on or before a closure
// of the office or one of its ancestors.
type ClosurePeriodViolationError struct {
	OfficeID        uuid.UUID
	ClosureOfficeID uuid.UUID
	ClosingDate     time.Time
	EntryDate       time.Time
}

func (e *ClosurePeriodViolationError) Error() string {
	return fmt.Sprintf("entry date %s for office %s falls within the period closed on %s by office %s",
		e.EntryDate.Format(time.DateOnly), e.OfficeID, e.ClosingDate.Format(time.DateOnly), e.ClosureOfficeID)
}

// UnbalancedEntryError reports debit and credit totals that differ for one
// currency and entry date. It indicates a defect in entry generation.
type UnbalancedEntryError struct {
	TransactionID string
	Currency      string
	EntryDate     time.Time
	Debits        decimal.Decimal
	Credits       decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("unbalanced entries for transaction %s (%s on %s): debits %s, credits %s",
		e.TransactionID, e.Currency, e.EntryDate.Format(time.DateOnly), e.Debits, e.Credits)
}

// AlreadyReversedError reports a second reversal of the same transaction.
type AlreadyReversedError struct {
	TransactionID string
	ReversalID    string
}

func (e *AlreadyReversedError) Error() string {
	return fmt.Sprintf("transaction %s already reversed by %s", e.TransactionID, e.ReversalID)
}

var logicalSentinels = []error{
	ErrNotFound, ErrInvalidInput, ErrTransactionAlreadyPosted, ErrReversalNotReversible,
	ErrGLAccountNotPostable, ErrClosureNotMonotonic, ErrClosureInFuture, ErrInvalidRole,
	ErrUnsupportedTransaction, ErrDuplicateGLCode, ErrDuplicateMapping, ErrInvalidParent,
}

// IsLogical reports whether err is a deterministic business failure. Such
// failures are never retried and repeat identically on resubmission.
func IsLogical(err error) bool {
	if err == nil {
		return false
	}
	for _, s := range logicalSentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	var (
		mapping  *AccountMappingNotFoundError
		closure  *ClosurePeriodViolationError
		reversed *AlreadyReversedError
	)
	return errors.As(err, &mapping) || errors.As(err, &closure) || errors.As(err, &reversed)
}
