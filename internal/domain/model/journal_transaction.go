package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/internal/domain/event"
	"github.com/bibbank/bib/internal/domain/valueobject"
	"github.com/bibbank/bib/pkg/events"
)

// JournalHeader is the information every leg of one posted transaction shares.
type JournalHeader struct {
	TenantID        uuid.UUID
	OfficeID        uuid.UUID
	TransactionID   string
	TransactionType valueobject.TransactionType
	ProductType     valueobject.ProductType
	ProductID       uuid.UUID
	Currency        string
	EntryDate       time.Time
	BusinessDate    time.Time
	ReferenceNumber string
	Description     string
	CreatedBy       uuid.UUID
}

// JournalTransaction is the aggregate that owns all legs of one business
// event. It is written as a unit and never modified afterwards.
type JournalTransaction struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	officeID      uuid.UUID
	transactionID string
	entryDate     time.Time
	currency      string
	reversalOf    string
	entries       []JournalEntry
	createdAt     time.Time
	domainEvents  []events.DomainEvent
}

// NewJournalTransaction turns balanced posting pairs into legs numbered in
// pair order, debit first.
func NewJournalTransaction(h JournalHeader, pairs []valueobject.PostingPair, now time.Time) (JournalTransaction, error) {
	if h.TenantID == uuid.Nil {
		return JournalTransaction{}, invalid("tenant ID is required")
	}
	if h.OfficeID == uuid.Nil {
		return JournalTransaction{}, invalid("office ID is required")
	}
	if h.TransactionID == "" {
		return JournalTransaction{}, invalid("transaction ID is required")
	}
	if h.EntryDate.IsZero() {
		return JournalTransaction{}, invalid("entry date is required")
	}
	if len(pairs) == 0 {
		return JournalTransaction{}, invalid("at least one posting pair is required")
	}

	jt := JournalTransaction{
		id:            uuid.New(),
		tenantID:      h.TenantID,
		officeID:      h.OfficeID,
		transactionID: h.TransactionID,
		entryDate:     valueobject.PostingDate(h.EntryDate),
		currency:      h.Currency,
		createdAt:     now,
	}
	businessDate := h.BusinessDate
	if businessDate.IsZero() {
		businessDate = h.EntryDate
	}

	total := decimal.Zero
	for i, p := range pairs {
		for j, side := range []struct {
			account uuid.UUID
			typ     valueobject.EntryType
		}{
			{p.DebitAccount(), valueobject.EntryTypeDebit},
			{p.CreditAccount(), valueobject.EntryTypeCredit},
		} {
			jt.entries = append(jt.entries, JournalEntry{
				id:              uuid.New(),
				tenantID:        h.TenantID,
				batchID:         jt.id,
				officeID:        h.OfficeID,
				glAccountID:     side.account,
				transactionID:   h.TransactionID,
				entrySeq:        2*i + j + 1,
				pairSeq:         i + 1,
				entryType:       side.typ,
				amount:          p.Amount(),
				currency:        h.Currency,
				entryDate:       jt.entryDate,
				businessDate:    valueobject.PostingDate(businessDate),
				transactionType: h.TransactionType,
				productType:     h.ProductType,
				productID:       h.ProductID,
				referenceNumber: h.ReferenceNumber,
				description:     h.Description,
				createdBy:       h.CreatedBy,
				createdAt:       now,
			})
		}
		total = total.Add(p.Amount())
	}

	if err := CheckBalanced(h.TransactionID, jt.entries); err != nil {
		return JournalTransaction{}, err
	}

	jt.domainEvents = []events.DomainEvent{
		event.NewJournalPosted(h.TenantID, event.JournalPostedData{
			TransactionID:   h.TransactionID,
			BatchID:         jt.id,
			OfficeID:        h.OfficeID,
			TransactionType: h.TransactionType.String(),
			EntryDate:       jt.entryDate,
			Currency:        h.Currency,
			Amount:          total,
			EntryCount:      len(jt.entries),
		}, now),
	}
	return jt, nil
}

// NewReversal builds the compensating transaction for the stored legs of one
// original transaction. It returns the reversal and the original legs marked
// as reversed. Reversals themselves cannot be reversed.
func NewReversal(
	original []JournalEntry,
	reversalTransactionID string,
	reversalDate time.Time,
	createdBy uuid.UUID,
	now time.Time,
) (JournalTransaction, []JournalEntry, error) {
	if len(original) == 0 {
		return JournalTransaction{}, nil, fmt.Errorf("journal entries: %w", ErrNotFound)
	}
	if reversalTransactionID == "" {
		return JournalTransaction{}, nil, invalid("reversal transaction ID is required")
	}
	if reversalDate.IsZero() {
		return JournalTransaction{}, nil, invalid("reversal date is required")
	}

	first := original[0]
	for _, e := range original {
		if e.transactionID != first.transactionID || e.tenantID != first.tenantID {
			return JournalTransaction{}, nil, invalid("entries span more than one transaction")
		}
		if e.IsReversal() {
			return JournalTransaction{}, nil, fmt.Errorf("%w: %s reverses %s",
				ErrReversalNotReversible, e.transactionID, e.reversalOf)
		}
		if e.reversed {
			return JournalTransaction{}, nil, &AlreadyReversedError{TransactionID: e.transactionID, ReversalID: e.reversalID}
		}
	}
	if err := CheckBalanced(first.transactionID, original); err != nil {
		return JournalTransaction{}, nil, err
	}

	jt := JournalTransaction{
		id:            uuid.New(),
		tenantID:      first.tenantID,
		officeID:      first.officeID,
		transactionID: reversalTransactionID,
		entryDate:     valueobject.PostingDate(reversalDate),
		currency:      first.currency,
		reversalOf:    first.transactionID,
		createdAt:     now,
	}

	reversed := make([]JournalEntry, 0, len(original))
	for i, e := range original {
		jt.entries = append(jt.entries, JournalEntry{
			id:              uuid.New(),
			tenantID:        e.tenantID,
			batchID:         jt.id,
			officeID:        e.officeID,
			glAccountID:     e.glAccountID,
			transactionID:   reversalTransactionID,
			entrySeq:        i + 1,
			pairSeq:         e.pairSeq,
			entryType:       e.entryType.Opposite(),
			amount:          e.amount,
			currency:        e.currency,
			entryDate:       jt.entryDate,
			businessDate:    jt.entryDate,
			transactionType: e.transactionType,
			productType:     e.productType,
			productID:       e.productID,
			referenceNumber: e.referenceNumber,
			description:     "Reversal of " + e.transactionID,
			reversalOf:      e.transactionID,
			createdBy:       createdBy,
			createdAt:       now,
		})

		marked, err := e.markReversed(reversalTransactionID)
		if err != nil {
			return JournalTransaction{}, nil, err
		}
		reversed = append(reversed, marked)
	}

	if err := CheckBalanced(reversalTransactionID, jt.entries); err != nil {
		return JournalTransaction{}, nil, err
	}

	jt.domainEvents = []events.DomainEvent{
		event.NewJournalReversed(first.tenantID, event.JournalReversedData{
			TransactionID:         first.transactionID,
			ReversalTransactionID: reversalTransactionID,
			ReversalBatchID:       jt.id,
			OfficeID:              first.officeID,
			ReversalDate:          jt.entryDate,
			EntryCount:            len(jt.entries),
		}, now),
	}
	return jt, reversed, nil
}

// Accessors
func (jt JournalTransaction) ID() uuid.UUID                      { return jt.id }
func (jt JournalTransaction) TenantID() uuid.UUID                { return jt.tenantID }
func (jt JournalTransaction) OfficeID() uuid.UUID                { return jt.officeID }
func (jt JournalTransaction) TransactionID() string              { return jt.transactionID }
func (jt JournalTransaction) EntryDate() time.Time               { return jt.entryDate }
func (jt JournalTransaction) Currency() string                   { return jt.currency }
func (jt JournalTransaction) ReversalOf() string                 { return jt.reversalOf }
func (jt JournalTransaction) Entries() []JournalEntry            { return jt.entries }
func (jt JournalTransaction) CreatedAt() time.Time               { return jt.createdAt }
func (jt JournalTransaction) DomainEvents() []events.DomainEvent { return jt.domainEvents }
