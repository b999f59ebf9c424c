package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/pkg/events"
)

const (
	AggregateTypeJournalTransaction = "JournalTransaction"
	AggregateTypeAccountingClosure  = "AccountingClosure"
	AggregateTypeGLAccount          = "GLAccount"
)

const (
	TypeJournalPosted     = "accounting.journal.posted"
	TypeJournalReversed   = "accounting.journal.reversed"
	TypeClosureCreated    = "accounting.closure.created"
	TypeGLAccountDisabled = "accounting.glaccount.disabled"
)

// payload marshals an event body. The bodies are plain structs of JSON-safe
// fields, so marshalling cannot fail.
func payload(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

// JournalPostedData is the body of a JournalPosted event.
type JournalPostedData struct {
	TransactionID   string          `json:"transaction_id"`
	BatchID         uuid.UUID       `json:"batch_id"`
	OfficeID        uuid.UUID       `json:"office_id"`
	TransactionType string          `json:"transaction_type"`
	EntryDate       time.Time       `json:"entry_date"`
	Currency        string          `json:"currency"`
	Amount          decimal.Decimal `json:"amount"`
	EntryCount      int             `json:"entry_count"`
	ReversalOf      string          `json:"reversal_of,omitempty"`
}

// JournalPosted is emitted when the legs of a transaction are committed.
type JournalPosted struct {
	events.BaseEvent
	Data JournalPostedData
}

func NewJournalPosted(tenantID uuid.UUID, data JournalPostedData, at time.Time) JournalPosted {
	return JournalPosted{
		BaseEvent: events.NewBaseEvent(TypeJournalPosted, data.BatchID, AggregateTypeJournalTransaction, tenantID, at, payload(data)),
		Data:      data,
	}
}

// JournalReversedData is the body of a JournalReversed event.
type JournalReversedData struct {
	TransactionID         string    `json:"transaction_id"`
	ReversalTransactionID string    `json:"reversal_transaction_id"`
	ReversalBatchID       uuid.UUID `json:"reversal_batch_id"`
	OfficeID              uuid.UUID `json:"office_id"`
	ReversalDate          time.Time `json:"reversal_date"`
	EntryCount            int       `json:"entry_count"`
}

// JournalReversed is emitted when a transaction's legs are compensated.
type JournalReversed struct {
	events.BaseEvent
	Data JournalReversedData
}

func NewJournalReversed(tenantID uuid.UUID, data JournalReversedData, at time.Time) JournalReversed {
	return JournalReversed{
		BaseEvent: events.NewBaseEvent(TypeJournalReversed, data.ReversalBatchID, AggregateTypeJournalTransaction, tenantID, at, payload(data)),
		Data:      data,
	}
}

// ClosureCreatedData is the body of a ClosureCreated event.
type ClosureCreatedData struct {
	ClosureID   uuid.UUID `json:"closure_id"`
	OfficeID    uuid.UUID `json:"office_id"`
	ClosingDate time.Time `json:"closing_date"`
}

// ClosureCreated is emitted when an office's books are closed up to a date.
type ClosureCreated struct {
	events.BaseEvent
	Data ClosureCreatedData
}

func NewClosureCreated(tenantID uuid.UUID, data ClosureCreatedData, at time.Time) ClosureCreated {
	return ClosureCreated{
		BaseEvent: events.NewBaseEvent(TypeClosureCreated, data.ClosureID, AggregateTypeAccountingClosure, tenantID, at, payload(data)),
		Data:      data,
	}
}

// GLAccountDisabledData is the body of a GLAccountDisabled event.
type GLAccountDisabledData struct {
	GLAccountID uuid.UUID `json:"gl_account_id"`
	GLCode      string    `json:"gl_code"`
}

// GLAccountDisabled is emitted when an account stops accepting postings.
type GLAccountDisabled struct {
	events.BaseEvent
	Data GLAccountDisabledData
}

func NewGLAccountDisabled(tenantID uuid.UUID, data GLAccountDisabledData, at time.Time) GLAccountDisabled {
	return GLAccountDisabled{
		BaseEvent: events.NewBaseEvent(TypeGLAccountDisabled, data.GLAccountID, AggregateTypeGLAccount, tenantID, at, payload(data)),
		Data:      data,
	}
}
