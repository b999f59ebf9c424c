package valueobject

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostingPair is one balanced debit/credit couple produced by the entry
// builder. Immutable value object.
type PostingPair struct {
	debitAccount  uuid.UUID
	creditAccount uuid.UUID
	debitRole     AccountRole
	creditRole    AccountRole
	amount        decimal.Decimal
}

func NewPostingPair(debit, credit uuid.UUID, debitRole, creditRole AccountRole, amount decimal.Decimal) (PostingPair, error) {
	if debit == uuid.Nil {
		return PostingPair{}, fmt.Errorf("debit GL account is required")
	}
	if credit == uuid.Nil {
		return PostingPair{}, fmt.Errorf("credit GL account is required")
	}
	if !amount.IsPositive() {
		return PostingPair{}, fmt.Errorf("posting amount must be positive, got %s", amount.String())
	}
	return PostingPair{
		debitAccount:  debit,
		creditAccount: credit,
		debitRole:     debitRole,
		creditRole:    creditRole,
		amount:        amount,
	}, nil
}

func (p PostingPair) DebitAccount() uuid.UUID  { return p.debitAccount }
func (p PostingPair) CreditAccount() uuid.UUID { return p.creditAccount }
func (p PostingPair) DebitRole() AccountRole   { return p.debitRole }
func (p PostingPair) CreditRole() AccountRole  { return p.creditRole }
func (p PostingPair) Amount() decimal.Decimal  { return p.amount }

func (p PostingPair) String() string {
	return fmt.Sprintf("DR %s(%s) / CR %s(%s): %s", p.debitRole, p.debitAccount, p.creditRole, p.creditAccount, p.amount)
}
