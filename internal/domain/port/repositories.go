package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/valueobject"
	"github.com/bibbank/bib/pkg/events"
)

// GLAccountFilter narrows ListGLAccounts. Zero fields match everything.
type GLAccountFilter struct {
	Type            valueobject.GLAccountType
	Usage           valueobject.GLAccountUsage
	IncludeDisabled bool
}

// GLAccountRepository defines persistence operations for the chart of accounts.
type GLAccountRepository interface {
	// Save inserts a new account or updates the mutable state of an existing one.
	Save(ctx context.Context, account model.GLAccount) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.GLAccount, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code valueobject.GLCode) (model.GLAccount, error)
	List(ctx context.Context, tenantID uuid.UUID, filter GLAccountFilter) ([]model.GLAccount, error)
}

// AccountMappingRepository defines persistence operations for role mappings.
type AccountMappingRepository interface {
	Save(ctx context.Context, mapping model.AccountMapping) error
	// ListForProduct returns the mappings of productID together with the
	// default mappings of its product type.
	ListForProduct(ctx context.Context, tenantID uuid.UUID, productType valueobject.ProductType, productID uuid.UUID) ([]model.AccountMapping, error)
}

// OfficeRepository defines persistence operations for offices.
type OfficeRepository interface {
	Save(ctx context.Context, office model.Office) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.Office, error)
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (model.Office, error)
}

// ClosureRepository reads closures outside a posting transaction.
type ClosureRepository interface {
	LatestForOffice(ctx context.Context, tenantID, officeID uuid.UUID) (model.AccountingClosure, bool, error)
	ListByOffice(ctx context.Context, tenantID, officeID uuid.UUID) ([]model.AccountingClosure, error)
}

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

// OfficeEntriesQuery selects legs posted by an office within a date range.
type OfficeEntriesQuery struct {
	TenantID          uuid.UUID
	OfficeID          uuid.UUID
	Range             valueobject.DateRange
	IncludeSubOffices bool
	Page              Page
}

// GLAccountEntriesQuery selects legs posted to a GL account within a date range.
type GLAccountEntriesQuery struct {
	TenantID    uuid.UUID
	GLAccountID uuid.UUID
	Range       valueobject.DateRange
	Page        Page
}

// JournalEntryReader serves read-only journal queries.
type JournalEntryReader interface {
	FindByTransactionID(ctx context.Context, tenantID uuid.UUID, transactionID string, page Page) ([]model.JournalEntry, int, error)
	ListByOffice(ctx context.Context, q OfficeEntriesQuery) ([]model.JournalEntry, int, error)
	ListByGLAccount(ctx context.Context, q GLAccountEntriesQuery) ([]model.JournalEntry, int, error)
}

// LockMode selects the row lock taken on an office.
type LockMode int

const (
	// LockShare is held by postings and reversals. Concurrent postings do not block each other.
	LockShare LockMode = iota
	// LockExclusive is held while creating a closure.
	LockExclusive
)

// LedgerTx is the set of operations available inside one ledger transaction.
// Everything done through it commits or rolls back together.
type LedgerTx interface {
	// LockOffice reads the office row and holds the requested lock until commit.
	LockOffice(ctx context.Context, tenantID, officeID uuid.UUID, mode LockMode) (model.Office, error)
	LatestClosure(ctx context.Context, tenantID, officeID uuid.UUID) (model.AccountingClosure, bool, error)
	SaveClosure(ctx context.Context, closure model.AccountingClosure) error

	// TransactionExists reports whether any leg carries transactionID.
	TransactionExists(ctx context.Context, tenantID uuid.UUID, transactionID string) (bool, error)
	SaveJournalTransaction(ctx context.Context, jt model.JournalTransaction) error
	// EntriesForUpdate returns the legs of transactionID in entry order, locked.
	EntriesForUpdate(ctx context.Context, tenantID uuid.UUID, transactionID string) ([]model.JournalEntry, error)
	MarkReversed(ctx context.Context, entries []model.JournalEntry) error

	// SaveEvents writes domain events to the outbox.
	SaveEvents(ctx context.Context, evts []events.DomainEvent) error
}

// LedgerStore runs units of work against the ledger.
type LedgerStore interface {
	// WithinTransaction runs fn in one database transaction. Transient
	// failures retry fn from the start; fn must not keep state across calls.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// MappingSource serves the mapping set of a product to the rule resolver.
// Implementations may cache.
type MappingSource interface {
	MappingsFor(ctx context.Context, tenantID uuid.UUID, productType valueobject.ProductType, productID uuid.UUID) (model.MappingSet, error)
}

// GLAccountSource serves GL accounts to the rule resolver. Implementations may cache.
type GLAccountSource interface {
	GLAccount(ctx context.Context, tenantID, id uuid.UUID) (model.GLAccount, error)
}

// ReferenceCache is told about changes to cached reference data.
type ReferenceCache interface {
	// InvalidateMappings drops the cached mapping set of a product. A nil
	// productID drops every product of the type, since defaults changed.
	InvalidateMappings(tenantID uuid.UUID, productType valueobject.ProductType, productID uuid.UUID)
	InvalidateGLAccount(tenantID, id uuid.UUID)
}
