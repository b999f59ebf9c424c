package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/internal/domain/valueobject"
	"github.com/bibbank/bib/pkg/money"
)

// JournalEntry is one immutable debit or credit leg. The only change it ever
// undergoes is being marked reversed, once.
type JournalEntry struct {
	id              uuid.UUID
	tenantID        uuid.UUID
	batchID         uuid.UUID
	officeID        uuid.UUID
	glAccountID     uuid.UUID
	transactionID   string
	entrySeq        int
	pairSeq         int
	entryType       valueobject.EntryType
	amount          decimal.Decimal
	currency        string
	entryDate       time.Time
	businessDate    time.Time
	transactionType valueobject.TransactionType
	productType     valueobject.ProductType
	productID       uuid.UUID
	referenceNumber string
	description     string
	reversed        bool
	reversalID      string
	reversalOf      string
	createdBy       uuid.UUID
	createdAt       time.Time
}

// JournalEntryRecord carries every persisted column of a leg. It is used to
// rebuild entries read back from storage.
type JournalEntryRecord struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	BatchID         uuid.UUID
	OfficeID        uuid.UUID
	GLAccountID     uuid.UUID
	TransactionID   string
	EntrySeq        int
	PairSeq         int
	EntryType       valueobject.EntryType
	Amount          decimal.Decimal
	Currency        string
	EntryDate       time.Time
	BusinessDate    time.Time
	TransactionType valueobject.TransactionType
	ProductType     valueobject.ProductType
	ProductID       uuid.UUID
	ReferenceNumber string
	Description     string
	Reversed        bool
	ReversalID      string
	ReversalOf      string
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
}

// ReconstructJournalEntry recreates a leg from persistence (no validation).
func ReconstructJournalEntry(r JournalEntryRecord) JournalEntry {
	return JournalEntry{
		id:              r.ID,
		tenantID:        r.TenantID,
		batchID:         r.BatchID,
		officeID:        r.OfficeID,
		glAccountID:     r.GLAccountID,
		transactionID:   r.TransactionID,
		entrySeq:        r.EntrySeq,
		pairSeq:         r.PairSeq,
		entryType:       r.EntryType,
		amount:          r.Amount,
		currency:        r.Currency,
		entryDate:       valueobject.PostingDate(r.EntryDate),
		businessDate:    valueobject.PostingDate(r.BusinessDate),
		transactionType: r.TransactionType,
		productType:     r.ProductType,
		productID:       r.ProductID,
		referenceNumber: r.ReferenceNumber,
		description:     r.Description,
		reversed:        r.Reversed,
		reversalID:      r.ReversalID,
		reversalOf:      r.ReversalOf,
		createdBy:       r.CreatedBy,
		createdAt:       r.CreatedAt,
	}
}

// markReversed links the leg to its reversal (returns new copy).
func (e JournalEntry) markReversed(reversalID string) (JournalEntry, error) {
	if e.reversed {
		return JournalEntry{}, &AlreadyReversedError{TransactionID: e.transactionID, ReversalID: e.reversalID}
	}
	updated := e
	updated.reversed = true
	updated.reversalID = reversalID
	return updated, nil
}

// IsReversal reports whether the leg compensates another transaction.
func (e JournalEntry) IsReversal() bool { return e.reversalOf != "" }

// Accessors
func (e JournalEntry) ID() uuid.UUID                                { return e.id }
func (e JournalEntry) TenantID() uuid.UUID                          { return e.tenantID }
func (e JournalEntry) BatchID() uuid.UUID                           { return e.batchID }
func (e JournalEntry) OfficeID() uuid.UUID                          { return e.officeID }
func (e JournalEntry) GLAccountID() uuid.UUID                       { return e.glAccountID }
func (e JournalEntry) TransactionID() string                        { return e.transactionID }
func (e JournalEntry) EntrySeq() int                                { return e.entrySeq }
func (e JournalEntry) PairSeq() int                                 { return e.pairSeq }
func (e JournalEntry) EntryType() valueobject.EntryType             { return e.entryType }
func (e JournalEntry) Amount() decimal.Decimal                      { return e.amount }
func (e JournalEntry) Currency() string                             { return e.currency }
func (e JournalEntry) EntryDate() time.Time                         { return e.entryDate }
func (e JournalEntry) BusinessDate() time.Time                      { return e.businessDate }
func (e JournalEntry) TransactionType() valueobject.TransactionType { return e.transactionType }
func (e JournalEntry) ProductType() valueobject.ProductType         { return e.productType }
func (e JournalEntry) ProductID() uuid.UUID                         { return e.productID }
func (e JournalEntry) ReferenceNumber() string                      { return e.referenceNumber }
func (e JournalEntry) Description() string                          { return e.description }
func (e JournalEntry) Reversed() bool                               { return e.reversed }
func (e JournalEntry) ReversalID() string                           { return e.reversalID }
func (e JournalEntry) ReversalOf() string                           { return e.reversalOf }
func (e JournalEntry) CreatedBy() uuid.UUID                         { return e.createdBy }
func (e JournalEntry) CreatedAt() time.Time                         { return e.createdAt }

type balanceKey struct {
	currency  string
	entryDate time.Time
}

type balanceSides struct {
	currency money.Currency
	debits   []money.Money
	credits  []money.Money
}

// CheckBalanced verifies debits equal credits for every currency and entry
// date among entries.
func CheckBalanced(transactionID string, entries []JournalEntry) error {
	groups := make(map[balanceKey]*balanceSides)
	var order []balanceKey
	for _, e := range entries {
		k := balanceKey{e.currency, e.entryDate}
		g, seen := groups[k]
		if !seen {
			currency, err := money.NewCurrency(e.currency)
			if err != nil {
				return invalid("leg %d of %s: %v", e.entrySeq, transactionID, err)
			}
			g = &balanceSides{currency: currency}
			groups[k] = g
			order = append(order, k)
		}
		leg := money.New(e.amount, g.currency)
		if e.entryType == valueobject.EntryTypeDebit {
			g.debits = append(g.debits, leg)
		} else {
			g.credits = append(g.credits, leg)
		}
	}
	for _, k := range order {
		g := groups[k]
		debits, err := money.Sum(g.currency, g.debits...)
		if err != nil {
			return invalid("transaction %s: %v", transactionID, err)
		}
		credits, err := money.Sum(g.currency, g.credits...)
		if err != nil {
			return invalid("transaction %s: %v", transactionID, err)
		}
		if !debits.Equal(credits) {
			return &UnbalancedEntryError{
				TransactionID: transactionID,
				Currency:      k.currency,
				EntryDate:     k.entryDate,
				Debits:        debits.Amount(),
				Credits:       credits.Amount(),
			}
		}
	}
	return nil
}
