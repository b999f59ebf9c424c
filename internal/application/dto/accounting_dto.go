package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChargePaymentDTO is the part of a transaction settling one charge.
type ChargePaymentDTO struct {
	ChargeID uuid.UUID       `json:"charge_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

// TaxPaymentDTO is one withheld tax component.
type TaxPaymentDTO struct {
	TaxComponentID    uuid.UUID       `json:"tax_component_id"`
	Amount            decimal.Decimal `json:"amount"`
	CreditGLAccountID uuid.UUID       `json:"credit_gl_account_id,omitempty"`
}

// LoanPortionsDTO breaks a loan transaction down by what it settles.
type LoanPortionsDTO struct {
	Principal   decimal.Decimal `json:"principal"`
	Interest    decimal.Decimal `json:"interest"`
	Fees        decimal.Decimal `json:"fees"`
	Penalties   decimal.Decimal `json:"penalties"`
	Overpayment decimal.Decimal `json:"overpayment"`
}

// PostTransactionRequest is the input DTO for posting a financial event.
// It is also the JSON payload of posting commands read from Kafka.
type PostTransactionRequest struct {
	TenantID          uuid.UUID          `json:"tenant_id" validate:"required"`
	OfficeID          uuid.UUID          `json:"office_id" validate:"required"`
	TransactionID     string             `json:"transaction_id" validate:"required,max=100"`
	ProductType       string             `json:"product_type" validate:"required,oneof=LOAN SAVINGS SHARE"`
	ProductID         uuid.UUID          `json:"product_id"`
	Convention        string             `json:"convention" validate:"required,oneof=NONE CASH ACCRUAL_PERIODIC ACCRUAL_UPFRONT"`
	TransactionType   string             `json:"transaction_type" validate:"required"`
	Amount            decimal.Decimal    `json:"amount"`
	OverdraftAmount   decimal.Decimal    `json:"overdraft_amount"`
	Currency          string             `json:"currency" validate:"required,len=3"`
	PaymentTypeID     uuid.UUID          `json:"payment_type_id,omitempty"`
	IsReversal        bool               `json:"is_reversal"`
	IsAccountTransfer bool               `json:"is_account_transfer"`
	FeePayments       []ChargePaymentDTO `json:"fee_payments,omitempty" validate:"dive"`
	PenaltyPayments   []ChargePaymentDTO `json:"penalty_payments,omitempty" validate:"dive"`
	TaxPayments       []TaxPaymentDTO    `json:"tax_payments,omitempty" validate:"dive"`
	Portions          LoanPortionsDTO    `json:"portions"`
	TransactionDate   time.Time          `json:"transaction_date"`
	EntryDate         time.Time          `json:"entry_date" validate:"required"`
	ReferenceNumber   string             `json:"reference_number,omitempty" validate:"max=100"`
	Description       string             `json:"description,omitempty" validate:"max=500"`
	CreatedBy         uuid.UUID          `json:"created_by"`
}

// JournalEntryDTO transfers one stored leg.
type JournalEntryDTO struct {
	ID              uuid.UUID       `json:"id"`
	BatchID         uuid.UUID       `json:"batch_id"`
	OfficeID        uuid.UUID       `json:"office_id"`
	GLAccountID     uuid.UUID       `json:"gl_account_id"`
	TransactionID   string          `json:"transaction_id"`
	EntrySeq        int             `json:"entry_seq"`
	PairSeq         int             `json:"pair_seq"`
	EntryType       string          `json:"entry_type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	EntryDate       time.Time       `json:"entry_date"`
	BusinessDate    time.Time       `json:"business_date"`
	TransactionType string          `json:"transaction_type"`
	ProductType     string          `json:"product_type"`
	ProductID       uuid.UUID       `json:"product_id"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Description     string          `json:"description,omitempty"`
	Reversed        bool            `json:"reversed"`
	ReversalID      string          `json:"reversal_id,omitempty"`
	ReversalOf      string          `json:"reversal_of,omitempty"`
	CreatedBy       uuid.UUID       `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PostTransactionResponse is the output DTO for a posting. Posted is false
// when the product's convention keeps no accounts for the event.
type PostTransactionResponse struct {
	TransactionID string            `json:"transaction_id"`
	BatchID       uuid.UUID         `json:"batch_id"`
	Posted        bool              `json:"posted"`
	Entries       []JournalEntryDTO `json:"entries"`
}

// ReverseTransactionRequest is the input DTO for reversing a posted transaction.
type ReverseTransactionRequest struct {
	TenantID              uuid.UUID `validate:"required"`
	TransactionID         string    `validate:"required,max=100"`
	ReversalTransactionID string    `validate:"max=100"`
	ReversalDate          time.Time `validate:"required"`
	CreatedBy             uuid.UUID
}

// ReverseTransactionResponse is the output DTO for a reversal.
type ReverseTransactionResponse struct {
	TransactionID         string
	ReversalTransactionID string
	BatchID               uuid.UUID
	Entries               []JournalEntryDTO
}

// CreateClosureRequest is the input DTO for closing an office's books.
type CreateClosureRequest struct {
	TenantID    uuid.UUID `validate:"required"`
	OfficeID    uuid.UUID `validate:"required"`
	ClosingDate time.Time `validate:"required"`
	Comments    string    `validate:"max=500"`
	CreatedBy   uuid.UUID
}

// ClosureResponse is the output DTO for an accounting closure.
type ClosureResponse struct {
	ID          uuid.UUID
	OfficeID    uuid.UUID
	ClosingDate time.Time
	Comments    string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}

// GetLatestClosureRequest asks for an office's latest closure. With
// IncludeAncestors the closures of parent offices count too.
type GetLatestClosureRequest struct {
	TenantID         uuid.UUID `validate:"required"`
	OfficeID         uuid.UUID `validate:"required"`
	IncludeAncestors bool
}

// GetLatestClosureResponse is the output DTO for GetLatestClosure.
type GetLatestClosureResponse struct {
	Found   bool
	Closure ClosureResponse
}

// ListClosuresRequest is the input DTO for listing an office's closures.
type ListClosuresRequest struct {
	TenantID uuid.UUID `validate:"required"`
	OfficeID uuid.UUID `validate:"required"`
}

// ListClosuresResponse is the output DTO for ListClosures.
type ListClosuresResponse struct {
	Closures []ClosureResponse
}

// CreateGLAccountRequest is the input DTO for adding a GL account.
type CreateGLAccountRequest struct {
	TenantID    uuid.UUID `validate:"required"`
	Name        string    `validate:"required,max=200"`
	GLCode      string    `validate:"required,max=45"`
	Type        string    `validate:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Usage       string    `validate:"required,oneof=DETAIL HEADER"`
	ParentID    uuid.UUID
	Description string `validate:"max=500"`
}

// GLAccountRequest identifies one GL account.
type GLAccountRequest struct {
	TenantID    uuid.UUID `validate:"required"`
	GLAccountID uuid.UUID `validate:"required"`
}

// GLAccountResponse is the output DTO for a GL account.
type GLAccountResponse struct {
	ID          uuid.UUID
	ParentID    uuid.UUID
	Name        string
	GLCode      string
	Type        string
	Usage       string
	Disabled    bool
	Description string
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListGLAccountsRequest is the input DTO for browsing the chart of accounts.
type ListGLAccountsRequest struct {
	TenantID        uuid.UUID `validate:"required"`
	Type            string    `validate:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Usage           string    `validate:"omitempty,oneof=DETAIL HEADER"`
	IncludeDisabled bool
}

// ListGLAccountsResponse is the output DTO for ListGLAccounts.
type ListGLAccountsResponse struct {
	Accounts []GLAccountResponse
}

// CreateAccountMappingRequest maps a role to a GL account. A nil ProductID
// creates the default mapping of the product type.
type CreateAccountMappingRequest struct {
	TenantID      uuid.UUID `validate:"required"`
	ProductType   string    `validate:"required,oneof=LOAN SAVINGS SHARE"`
	ProductID     uuid.UUID
	Role          string    `validate:"required"`
	GLAccountID   uuid.UUID `validate:"required"`
	PaymentTypeID uuid.UUID
	ChargeID      uuid.UUID
}

// AccountMappingResponse is the output DTO for an account mapping.
type AccountMappingResponse struct {
	ID            uuid.UUID
	ProductType   string
	ProductID     uuid.UUID
	Role          string
	GLAccountID   uuid.UUID
	PaymentTypeID uuid.UUID
	ChargeID      uuid.UUID
	CreatedAt     time.Time
}

// CreateOfficeRequest is the input DTO for adding an office.
type CreateOfficeRequest struct {
	TenantID uuid.UUID `validate:"required"`
	Name     string    `validate:"required,max=200"`
	ParentID uuid.UUID
}

// OfficeResponse is the output DTO for an office.
type OfficeResponse struct {
	ID        uuid.UUID
	ParentID  uuid.UUID
	Name      string
	Hierarchy string
	CreatedAt time.Time
}

// PageRequest bounds a list query. A zero Limit selects the default page size.
type PageRequest struct {
	Limit  int `validate:"gte=0,lte=1000"`
	Offset int `validate:"gte=0"`
}

// GetEntriesByTransactionRequest selects the legs of one transaction.
type GetEntriesByTransactionRequest struct {
	TenantID      uuid.UUID `validate:"required"`
	TransactionID string    `validate:"required,max=100"`
	Page          PageRequest
}

// ListEntriesByOfficeRequest selects legs of an office by entry date.
type ListEntriesByOfficeRequest struct {
	TenantID          uuid.UUID `validate:"required"`
	OfficeID          uuid.UUID `validate:"required"`
	From              time.Time `validate:"required"`
	To                time.Time `validate:"required"`
	IncludeSubOffices bool
	Page              PageRequest
}

// ListEntriesByGLAccountRequest selects legs of a GL account by entry date.
type ListEntriesByGLAccountRequest struct {
	TenantID    uuid.UUID `validate:"required"`
	GLAccountID uuid.UUID `validate:"required"`
	From        time.Time `validate:"required"`
	To          time.Time `validate:"required"`
	Page        PageRequest
}

// JournalEntriesResponse is the output DTO for journal queries.
type JournalEntriesResponse struct {
	Entries []JournalEntryDTO
	Total   int
	Limit   int
	Offset  int
}

// SeedOffice names an office and its parent office by name.
type SeedOffice struct {
	Name   string `toml:"name" validate:"required"`
	Parent string `toml:"parent"`
}

// SeedGLAccount describes a GL account; Parent is the parent's GL code.
type SeedGLAccount struct {
	Name        string `toml:"name" validate:"required"`
	GLCode      string `toml:"gl_code" validate:"required"`
	Type        string `toml:"type" validate:"required"`
	Usage       string `toml:"usage" validate:"required"`
	Parent      string `toml:"parent"`
	Description string `toml:"description"`
}

// SeedMapping maps a role to a GL account by GL code.
type SeedMapping struct {
	ProductType   string    `toml:"product_type" validate:"required"`
	ProductID     uuid.UUID `toml:"product_id"`
	Role          string    `toml:"role" validate:"required"`
	GLCode        string    `toml:"gl_code" validate:"required"`
	PaymentTypeID uuid.UUID `toml:"payment_type_id"`
	ChargeID      uuid.UUID `toml:"charge_id"`
}

// SeedChartRequest bootstraps offices, the chart of accounts and mappings
// for a tenant. Rows that already exist are skipped.
type SeedChartRequest struct {
	TenantID   uuid.UUID       `validate:"required"`
	Offices    []SeedOffice    `toml:"office" validate:"dive"`
	GLAccounts []SeedGLAccount `toml:"gl_account" validate:"dive"`
	Mappings   []SeedMapping   `toml:"mapping" validate:"dive"`
}

// SeedChartResponse counts what a seed run created and skipped.
type SeedChartResponse struct {
	OfficesCreated    int
	GLAccountsCreated int
	MappingsCreated   int
	Skipped           int
}
