package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	vo "github.com/bibbank/bib/internal/domain/valueobject"
	"github.com/bibbank/bib/pkg/events"
)

var (
	tenantID  = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	productID = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	now       = time.Date(2013, 3, 15, 10, 0, 0, 0, time.UTC)
	jan1      = time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	mar1      = time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC)
)

var allRoles = []vo.AccountRole{
	vo.RoleSavingsReference, vo.RoleSavingsControl, vo.RoleInterestOnSavings,
	vo.RoleOverdraftPortfolioControl, vo.RoleEscheatLiability, vo.RoleIncomeFromInterest,
	vo.RolePayableDividends, vo.RoleInterestPayable,
	vo.RoleFundSource, vo.RoleLoanPortfolio, vo.RoleInterestOnLoans,
	vo.RoleIncomeFromRecovery, vo.RoleOverpayment,
	vo.RoleSharesReference, vo.RoleSharesSuspense, vo.RoleSharesEquity,
	vo.RoleIncomeFromFees, vo.RoleIncomeFromPenalties, vo.RoleTransfersSuspense,
	vo.RoleLossesWrittenOff, vo.RoleInterestReceivable, vo.RoleFeesReceivable,
	vo.RolePenaltiesReceivable,
}

// fakeChart is an in-memory chart of accounts with one default mapping per
// role of a product type. It implements port.MappingSource and port.GLAccountSource.
type fakeChart struct {
	accounts        map[uuid.UUID]model.GLAccount
	byRole          map[vo.AccountRole]uuid.UUID
	mappings        []model.AccountMapping
	mappingsForFunc func(ctx context.Context, tenantID uuid.UUID, pt vo.ProductType, productID uuid.UUID) (model.MappingSet, error)
	seq             int
}

var (
	_ port.MappingSource   = (*fakeChart)(nil)
	_ port.GLAccountSource = (*fakeChart)(nil)
)

func newFakeChart(t *testing.T, pt vo.ProductType, skip ...vo.AccountRole) *fakeChart {
	t.Helper()
	c := &fakeChart{
		accounts: make(map[uuid.UUID]model.GLAccount),
		byRole:   make(map[vo.AccountRole]uuid.UUID),
	}
	skipped := make(map[vo.AccountRole]bool)
	for _, r := range skip {
		skipped[r] = true
	}
	for _, role := range allRoles {
		if !role.MappableFor(pt) || skipped[role] {
			continue
		}
		acct := c.newAccount(t, string(role))
		c.byRole[role] = acct.ID()
		c.addMapping(t, pt, uuid.Nil, role, acct, uuid.Nil, uuid.Nil)
	}
	return c
}

func (c *fakeChart) newAccount(t *testing.T, name string) model.GLAccount {
	t.Helper()
	c.seq++
	acct, err := model.NewGLAccount(tenantID, name, vo.MustGLCode(fmt.Sprintf("GL-%03d", c.seq)),
		vo.GLAccountTypeAsset, vo.GLAccountUsageDetail, nil, "", now)
	require.NoError(t, err)
	c.accounts[acct.ID()] = acct
	return acct
}

func (c *fakeChart) addMapping(t *testing.T, pt vo.ProductType, product uuid.UUID, role vo.AccountRole, acct model.GLAccount, paymentTypeID, chargeID uuid.UUID) {
	t.Helper()
	m, err := model.NewAccountMapping(tenantID, pt, product, role, acct, paymentTypeID, chargeID, now)
	require.NoError(t, err)
	c.mappings = append(c.mappings, m)
}

func (c *fakeChart) account(role vo.AccountRole) uuid.UUID { return c.byRole[role] }

func (c *fakeChart) MappingsFor(ctx context.Context, tenant uuid.UUID, pt vo.ProductType, product uuid.UUID) (model.MappingSet, error) {
	if c.mappingsForFunc != nil {
		return c.mappingsForFunc(ctx, tenant, pt, product)
	}
	var matched []model.AccountMapping
	for _, m := range c.mappings {
		if m.TenantID() == tenant && m.ProductType() == pt && (m.IsDefault() || m.ProductID() == product) {
			matched = append(matched, m)
		}
	}
	return model.NewMappingSet(pt, product, matched), nil
}

func (c *fakeChart) GLAccount(_ context.Context, tenant, id uuid.UUID) (model.GLAccount, error) {
	acct, ok := c.accounts[id]
	if !ok || acct.TenantID() != tenant {
		return model.GLAccount{}, fmt.Errorf("GL account %s: %w", id, model.ErrNotFound)
	}
	return acct, nil
}

type lockCall struct {
	officeID uuid.UUID
	mode     port.LockMode
}

// fakeLedgerTx implements port.LedgerTx over maps.
type fakeLedgerTx struct {
	offices  map[uuid.UUID]model.Office
	closures map[uuid.UUID]model.AccountingClosure
	entries  map[string][]model.JournalEntry
	saved    []model.JournalTransaction
	events   []events.DomainEvent
	locks    []lockCall

	lockOfficeFunc func(ctx context.Context, tenantID, officeID uuid.UUID, mode port.LockMode) (model.Office, error)
	saveFunc       func(ctx context.Context, jt model.JournalTransaction) error
}

var _ port.LedgerTx = (*fakeLedgerTx)(nil)

func newFakeLedgerTx(offices ...model.Office) *fakeLedgerTx {
	tx := &fakeLedgerTx{
		offices:  make(map[uuid.UUID]model.Office),
		closures: make(map[uuid.UUID]model.AccountingClosure),
		entries:  make(map[string][]model.JournalEntry),
	}
	for _, o := range offices {
		tx.offices[o.ID()] = o
	}
	return tx
}

func (f *fakeLedgerTx) LockOffice(ctx context.Context, tenant, officeID uuid.UUID, mode port.LockMode) (model.Office, error) {
	f.locks = append(f.locks, lockCall{officeID: officeID, mode: mode})
	if f.lockOfficeFunc != nil {
		return f.lockOfficeFunc(ctx, tenant, officeID, mode)
	}
	o, ok := f.offices[officeID]
	if !ok {
		return model.Office{}, fmt.Errorf("office %s: %w", officeID, model.ErrNotFound)
	}
	return o, nil
}

func (f *fakeLedgerTx) LatestClosure(_ context.Context, _, officeID uuid.UUID) (model.AccountingClosure, bool, error) {
	c, ok := f.closures[officeID]
	return c, ok, nil
}

func (f *fakeLedgerTx) SaveClosure(_ context.Context, c model.AccountingClosure) error {
	f.closures[c.OfficeID()] = c
	return nil
}

func (f *fakeLedgerTx) TransactionExists(_ context.Context, _ uuid.UUID, transactionID string) (bool, error) {
	return len(f.entries[transactionID]) > 0, nil
}

func (f *fakeLedgerTx) SaveJournalTransaction(ctx context.Context, jt model.JournalTransaction) error {
	if f.saveFunc != nil {
		return f.saveFunc(ctx, jt)
	}
	f.saved = append(f.saved, jt)
	f.entries[jt.TransactionID()] = append(f.entries[jt.TransactionID()], jt.Entries()...)
	return nil
}

func (f *fakeLedgerTx) EntriesForUpdate(_ context.Context, _ uuid.UUID, transactionID string) ([]model.JournalEntry, error) {
	return f.entries[transactionID], nil
}

func (f *fakeLedgerTx) MarkReversed(_ context.Context, marked []model.JournalEntry) error {
	for _, m := range marked {
		legs := f.entries[m.TransactionID()]
		for i := range legs {
			if legs[i].ID() == m.ID() {
				legs[i] = m
			}
		}
	}
	return nil
}

func (f *fakeLedgerTx) SaveEvents(_ context.Context, evts []events.DomainEvent) error {
	f.events = append(f.events, evts...)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
