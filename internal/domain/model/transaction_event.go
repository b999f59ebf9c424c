package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/internal/domain/valueobject"
	"github.com/bibbank/bib/pkg/money"
)

// ChargePayment is the part of a transaction amount that settles one charge.
type ChargePayment struct {
	ChargeID uuid.UUID
	Amount   decimal.Decimal
}

// TaxPayment is one tax component withheld from a savings account.
// CreditGLAccountID, when set, overrides the mapped credit account.
type TaxPayment struct {
	TaxComponentID    uuid.UUID
	Amount            decimal.Decimal
	CreditGLAccountID uuid.UUID
}

// LoanPortions breaks a loan transaction amount down by what it settles.
type LoanPortions struct {
	Principal   decimal.Decimal
	Interest    decimal.Decimal
	Fees        decimal.Decimal
	Penalties   decimal.Decimal
	Overpayment decimal.Decimal
}

// Total sums every portion.
func (p LoanPortions) Total() decimal.Decimal {
	return p.Principal.Add(p.Interest).Add(p.Fees).Add(p.Penalties).Add(p.Overpayment)
}

func (p LoanPortions) amounts() []decimal.Decimal {
	return []decimal.Decimal{p.Principal, p.Interest, p.Fees, p.Penalties, p.Overpayment}
}

func (p LoanPortions) hasNegative() bool {
	for _, d := range p.amounts() {
		if d.IsNegative() {
			return true
		}
	}
	return false
}

// TransactionEvent is a financial event reported by a portfolio module.
// EntryDate is the posting date the ledger attributes the legs to;
// TransactionDate is the business date and is kept for reference only.
type TransactionEvent struct {
	TenantID          uuid.UUID
	OfficeID          uuid.UUID
	TransactionID     string
	ProductType       valueobject.ProductType
	ProductID         uuid.UUID
	Convention        valueobject.AccountingConvention
	TransactionType   valueobject.TransactionType
	Amount            decimal.Decimal
	OverdraftAmount   decimal.Decimal
	Currency          string
	PaymentTypeID     uuid.UUID
	IsReversal        bool
	IsAccountTransfer bool
	FeePayments       []ChargePayment
	PenaltyPayments   []ChargePayment
	TaxPayments       []TaxPayment
	Portions          LoanPortions
	TransactionDate   time.Time
	EntryDate         time.Time
	ReferenceNumber   string
	Description       string
	CreatedBy         uuid.UUID
}

// Validate checks the event is self-consistent. It does not consult mappings
// or closures.
func (e TransactionEvent) Validate() error {
	if e.TenantID == uuid.Nil {
		return invalid("tenant ID is required")
	}
	if e.OfficeID == uuid.Nil {
		return invalid("office ID is required")
	}
	if e.TransactionID == "" {
		return invalid("transaction ID is required")
	}
	if e.EntryDate.IsZero() {
		return invalid("entry date is required")
	}
	currency, err := money.NewCurrency(e.Currency)
	if err != nil {
		return invalid("%v", err)
	}
	if e.Amount.IsNegative() {
		return invalid("amount must not be negative, got %s", e.Amount)
	}
	scaled := func(what string, d decimal.Decimal) error {
		if money.New(d, currency).HasExcessPrecision() {
			return invalid("%s %s has more than %d decimal places for %s", what, d, currency.DecimalPlaces(), currency)
		}
		return nil
	}
	if err := scaled("amount", e.Amount); err != nil {
		return err
	}
	if e.OverdraftAmount.IsNegative() {
		return invalid("overdraft amount must not be negative, got %s", e.OverdraftAmount)
	}
	if e.OverdraftAmount.GreaterThan(e.Amount) {
		return invalid("overdraft amount %s exceeds amount %s", e.OverdraftAmount, e.Amount)
	}
	if err := scaled("overdraft amount", e.OverdraftAmount); err != nil {
		return err
	}
	for _, c := range append(append([]ChargePayment{}, e.FeePayments...), e.PenaltyPayments...) {
		if c.ChargeID == uuid.Nil {
			return invalid("charge payment without charge ID")
		}
		if !c.Amount.IsPositive() {
			return invalid("charge %s amount must be positive, got %s", c.ChargeID, c.Amount)
		}
		if err := scaled("charge amount", c.Amount); err != nil {
			return err
		}
	}
	for _, tp := range e.TaxPayments {
		if tp.Amount.IsNegative() {
			return invalid("tax component %s amount must not be negative, got %s", tp.TaxComponentID, tp.Amount)
		}
		if err := scaled("tax amount", tp.Amount); err != nil {
			return err
		}
	}
	if e.Portions.hasNegative() {
		return invalid("loan portions must not be negative")
	}
	for _, d := range e.Portions.amounts() {
		if err := scaled("loan portion", d); err != nil {
			return err
		}
	}
	return nil
}

// BusinessDate returns TransactionDate, or EntryDate when none was given.
func (e TransactionEvent) BusinessDate() time.Time {
	if e.TransactionDate.IsZero() {
		return valueobject.PostingDate(e.EntryDate)
	}
	return valueobject.PostingDate(e.TransactionDate)
}
