package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
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
	tenantID  = uuid.New()
	productID = uuid.New()
	jan1      = time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	mar1      = time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

// --- Chart of accounts ---

// memGLAccounts implements port.GLAccountRepository and port.GLAccountSource.
type memGLAccounts struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]model.GLAccount
	events   []events.DomainEvent
	saveFunc func(ctx context.Context, account model.GLAccount) error
}

var (
	_ port.GLAccountRepository = (*memGLAccounts)(nil)
	_ port.GLAccountSource     = (*memGLAccounts)(nil)
)

func newMemGLAccounts() *memGLAccounts {
	return &memGLAccounts{accounts: make(map[uuid.UUID]model.GLAccount)}
}

func (m *memGLAccounts) Save(ctx context.Context, account model.GLAccount) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID()] = account
	m.events = append(m.events, account.DomainEvents()...)
	return nil
}

func (m *memGLAccounts) FindByID(_ context.Context, tenant, id uuid.UUID) (model.GLAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || a.TenantID() != tenant {
		return model.GLAccount{}, fmt.Errorf("GL account %s: %w", id, model.ErrNotFound)
	}
	return a, nil
}

func (m *memGLAccounts) FindByCode(_ context.Context, tenant uuid.UUID, code vo.GLCode) (model.GLAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.TenantID() == tenant && a.GLCode().Equal(code) {
			return a, nil
		}
	}
	return model.GLAccount{}, fmt.Errorf("GL code %s: %w", code, model.ErrNotFound)
}

func (m *memGLAccounts) List(_ context.Context, tenant uuid.UUID, f port.GLAccountFilter) ([]model.GLAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.GLAccount
	for _, a := range m.accounts {
		switch {
		case a.TenantID() != tenant:
		case f.Type != "" && a.Type() != f.Type:
		case f.Usage != "" && a.Usage() != f.Usage:
		case a.Disabled() && !f.IncludeDisabled:
		default:
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GLCode().String() < out[j].GLCode().String() })
	return out, nil
}

func (m *memGLAccounts) GLAccount(ctx context.Context, tenant, id uuid.UUID) (model.GLAccount, error) {
	return m.FindByID(ctx, tenant, id)
}

// memMappings implements port.AccountMappingRepository and port.MappingSource.
type memMappings struct {
	mu       sync.Mutex
	mappings []model.AccountMapping
}

var (
	_ port.AccountMappingRepository = (*memMappings)(nil)
	_ port.MappingSource            = (*memMappings)(nil)
)

func (m *memMappings) Save(_ context.Context, mapping model.AccountMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.mappings {
		if existing.TenantID() == mapping.TenantID() &&
			existing.ProductType() == mapping.ProductType() &&
			existing.ProductID() == mapping.ProductID() &&
			existing.Role() == mapping.Role() &&
			existing.PaymentTypeID() == mapping.PaymentTypeID() &&
			existing.ChargeID() == mapping.ChargeID() {
			return fmt.Errorf("%w: %s", model.ErrDuplicateMapping, mapping.Role())
		}
	}
	m.mappings = append(m.mappings, mapping)
	return nil
}

func (m *memMappings) ListForProduct(_ context.Context, tenant uuid.UUID, pt vo.ProductType, product uuid.UUID) ([]model.AccountMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AccountMapping
	for _, mp := range m.mappings {
		if mp.TenantID() == tenant && mp.ProductType() == pt && (mp.IsDefault() || mp.ProductID() == product) {
			out = append(out, mp)
		}
	}
	return out, nil
}

func (m *memMappings) MappingsFor(ctx context.Context, tenant uuid.UUID, pt vo.ProductType, product uuid.UUID) (model.MappingSet, error) {
	list, err := m.ListForProduct(ctx, tenant, pt, product)
	if err != nil {
		return model.MappingSet{}, err
	}
	return model.NewMappingSet(pt, product, list), nil
}

type invalidation struct {
	productType vo.ProductType
	productID   uuid.UUID
	glAccountID uuid.UUID
}

// recordingCache implements port.ReferenceCache.
type recordingCache struct {
	mu    sync.Mutex
	calls []invalidation
}

func (c *recordingCache) InvalidateMappings(_ uuid.UUID, pt vo.ProductType, product uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, invalidation{productType: pt, productID: product})
}

func (c *recordingCache) InvalidateGLAccount(_ uuid.UUID, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, invalidation{glAccountID: id})
}

// --- Offices ---

// memOffices implements port.OfficeRepository.
type memOffices struct {
	mu      sync.Mutex
	offices map[uuid.UUID]model.Office
}

var _ port.OfficeRepository = (*memOffices)(nil)

func newMemOffices() *memOffices {
	return &memOffices{offices: make(map[uuid.UUID]model.Office)}
}

func (m *memOffices) Save(_ context.Context, o model.Office) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offices[o.ID()] = o
	return nil
}

func (m *memOffices) FindByID(_ context.Context, tenant, id uuid.UUID) (model.Office, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offices[id]
	if !ok || o.TenantID() != tenant {
		return model.Office{}, fmt.Errorf("office %s: %w", id, model.ErrNotFound)
	}
	return o, nil
}

func (m *memOffices) FindByName(_ context.Context, tenant uuid.UUID, name string) (model.Office, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.offices {
		if o.TenantID() == tenant && o.Name() == name {
			return o, nil
		}
	}
	return model.Office{}, fmt.Errorf("office %q: %w", name, model.ErrNotFound)
}

// --- Ledger ---

type lockCall struct {
	officeID uuid.UUID
	mode     port.LockMode
}

// memLedger implements port.LedgerStore and port.JournalEntryReader. A unit
// of work only becomes visible when fn returns nil.
type memLedger struct {
	mu       sync.Mutex
	offices  *memOffices
	closures []model.AccountingClosure
	entries  []model.JournalEntry
	events   []events.DomainEvent
	locks    []lockCall
	attempts int

	withinFunc func(ctx context.Context, fn func(ctx context.Context, tx port.LedgerTx) error) error
}

var (
	_ port.LedgerStore        = (*memLedger)(nil)
	_ port.JournalEntryReader = (*memLedger)(nil)
)

func newMemLedger(offices *memOffices) *memLedger {
	return &memLedger{offices: offices}
}

func (l *memLedger) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx port.LedgerTx) error) error {
	if l.withinFunc != nil {
		return l.withinFunc(ctx, fn)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts++

	tx := &memTx{l: l, marked: make(map[uuid.UUID]model.JournalEntry)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for i, e := range l.entries {
		if m, ok := tx.marked[e.ID()]; ok {
			l.entries[i] = m
		}
	}
	l.entries = append(l.entries, tx.entries...)
	l.closures = append(l.closures, tx.closures...)
	l.events = append(l.events, tx.events...)
	l.locks = append(l.locks, tx.locks...)
	return nil
}

func (l *memLedger) snapshot() []model.JournalEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.JournalEntry(nil), l.entries...)
}

func (l *memLedger) eventTypes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.EventType())
	}
	return out
}

func paginate(matched []model.JournalEntry, p port.Page) ([]model.JournalEntry, int) {
	total := len(matched)
	if p.Offset >= total {
		return nil, total
	}
	end := p.Offset + p.Limit
	if end > total {
		end = total
	}
	return matched[p.Offset:end], total
}

func (l *memLedger) filter(keep func(model.JournalEntry) bool) []model.JournalEntry {
	var out []model.JournalEntry
	for _, e := range l.snapshot() {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (l *memLedger) FindByTransactionID(_ context.Context, tenant uuid.UUID, transactionID string, p port.Page) ([]model.JournalEntry, int, error) {
	page, total := paginate(l.filter(func(e model.JournalEntry) bool {
		return e.TenantID() == tenant && e.TransactionID() == transactionID
	}), p)
	return page, total, nil
}

func (l *memLedger) ListByOffice(ctx context.Context, q port.OfficeEntriesQuery) ([]model.JournalEntry, int, error) {
	root, err := l.offices.FindByID(ctx, q.TenantID, q.OfficeID)
	if err != nil {
		return nil, 0, err
	}
	page, total := paginate(l.filter(func(e model.JournalEntry) bool {
		if e.TenantID() != q.TenantID || !q.Range.Contains(e.EntryDate()) {
			return false
		}
		if e.OfficeID() == q.OfficeID {
			return true
		}
		if !q.IncludeSubOffices {
			return false
		}
		o, err := l.offices.FindByID(ctx, q.TenantID, e.OfficeID())
		return err == nil && o.IsDescendantOf(root)
	}), q.Page)
	return page, total, nil
}

func (l *memLedger) ListByGLAccount(_ context.Context, q port.GLAccountEntriesQuery) ([]model.JournalEntry, int, error) {
	page, total := paginate(l.filter(func(e model.JournalEntry) bool {
		return e.TenantID() == q.TenantID && e.GLAccountID() == q.GLAccountID && q.Range.Contains(e.EntryDate())
	}), q.Page)
	return page, total, nil
}

// memClosures implements port.ClosureRepository over committed closures.
type memClosures struct{ l *memLedger }

var _ port.ClosureRepository = memClosures{}

func (c memClosures) LatestForOffice(_ context.Context, tenant, officeID uuid.UUID) (model.AccountingClosure, bool, error) {
	list, _ := c.ListByOffice(context.Background(), tenant, officeID)
	if len(list) == 0 {
		return model.AccountingClosure{}, false, nil
	}
	return list[0], true, nil
}

func (c memClosures) ListByOffice(_ context.Context, tenant, officeID uuid.UUID) ([]model.AccountingClosure, error) {
	c.l.mu.Lock()
	defer c.l.mu.Unlock()
	var out []model.AccountingClosure
	for i := len(c.l.closures) - 1; i >= 0; i-- {
		cl := c.l.closures[i]
		if cl.TenantID() == tenant && cl.OfficeID() == officeID {
			out = append(out, cl)
		}
	}
	return out, nil
}

// memTx stages the writes of one unit of work. memLedger.mu is held.
type memTx struct {
	l        *memLedger
	entries  []model.JournalEntry
	closures []model.AccountingClosure
	events   []events.DomainEvent
	locks    []lockCall
	marked   map[uuid.UUID]model.JournalEntry
}

var _ port.LedgerTx = (*memTx)(nil)

func (t *memTx) LockOffice(ctx context.Context, tenant, officeID uuid.UUID, mode port.LockMode) (model.Office, error) {
	t.locks = append(t.locks, lockCall{officeID: officeID, mode: mode})
	return t.l.offices.FindByID(ctx, tenant, officeID)
}

func (t *memTx) LatestClosure(_ context.Context, tenant, officeID uuid.UUID) (model.AccountingClosure, bool, error) {
	all := append(append([]model.AccountingClosure(nil), t.l.closures...), t.closures...)
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].TenantID() == tenant && all[i].OfficeID() == officeID {
			return all[i], true, nil
		}
	}
	return model.AccountingClosure{}, false, nil
}

func (t *memTx) SaveClosure(_ context.Context, c model.AccountingClosure) error {
	t.closures = append(t.closures, c)
	return nil
}

func (t *memTx) TransactionExists(_ context.Context, tenant uuid.UUID, transactionID string) (bool, error) {
	for _, e := range append(append([]model.JournalEntry(nil), t.l.entries...), t.entries...) {
		if e.TenantID() == tenant && e.TransactionID() == transactionID {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) SaveJournalTransaction(_ context.Context, jt model.JournalTransaction) error {
	t.entries = append(t.entries, jt.Entries()...)
	return nil
}

func (t *memTx) EntriesForUpdate(_ context.Context, tenant uuid.UUID, transactionID string) ([]model.JournalEntry, error) {
	var out []model.JournalEntry
	for _, e := range t.l.entries {
		if e.TenantID() == tenant && e.TransactionID() == transactionID {
			if m, ok := t.marked[e.ID()]; ok {
				e = m
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func (t *memTx) MarkReversed(_ context.Context, entries []model.JournalEntry) error {
	for _, e := range entries {
		t.marked[e.ID()] = e
	}
	return nil
}

func (t *memTx) SaveEvents(_ context.Context, evts []events.DomainEvent) error {
	t.events = append(t.events, evts...)
	return nil
}

// --- Metrics ---

// recordingMetrics implements port.LedgerMetrics.
type recordingMetrics struct {
	mu        sync.Mutex
	postings  []string
	reversals []string
}

var _ port.LedgerMetrics = (*recordingMetrics)(nil)

func (m *recordingMetrics) RecordPosting(_ context.Context, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postings = append(m.postings, outcome)
}

func (m *recordingMetrics) RecordReversal(_ context.Context, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reversals = append(m.reversals, outcome)
}

// --- Helpers ---

func newOffice(t *testing.T, offices *memOffices, name string, parent *model.Office) model.Office {
	t.Helper()
	o, err := model.NewOffice(tenantID, name, parent, jan1)
	require.NoError(t, err)
	require.NoError(t, offices.Save(context.Background(), o))
	return o
}

// mapRoles creates one DETAIL account per role and a default mapping for it.
func mapRoles(t *testing.T, accounts *memGLAccounts, mappings *memMappings, pt vo.ProductType, roles ...vo.AccountRole) map[vo.AccountRole]uuid.UUID {
	t.Helper()
	ids := make(map[vo.AccountRole]uuid.UUID, len(roles))
	for i, role := range roles {
		acct, err := model.NewGLAccount(tenantID, string(role), vo.MustGLCode(fmt.Sprintf("%s-%02d", pt, i+1)),
			vo.GLAccountTypeAsset, vo.GLAccountUsageDetail, nil, "", jan1)
		require.NoError(t, err)
		require.NoError(t, accounts.Save(context.Background(), acct))
		m, err := model.NewAccountMapping(tenantID, pt, uuid.Nil, role, acct, uuid.Nil, uuid.Nil, jan1)
		require.NoError(t, err)
		require.NoError(t, mappings.Save(context.Background(), m))
		ids[role] = acct.ID()
	}
	return ids
}
