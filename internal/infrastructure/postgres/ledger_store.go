package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/pkg/events"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

var (
	_ port.LedgerStore = (*LedgerStore)(nil)
	_ port.LedgerTx    = (*ledgerTx)(nil)
)

// LedgerStore runs posting, reversal and closure units of work in one
// read-committed transaction each, retrying transient failures.
type LedgerStore struct {
	pool   *pgxpool.Pool
	policy pgpkg.RetryPolicy
	logger *slog.Logger
}

func NewLedgerStore(pool *pgxpool.Pool, policy pgpkg.RetryPolicy, logger *slog.Logger) *LedgerStore {
	return &LedgerStore{pool: pool, policy: policy, logger: logger}
}

func (s *LedgerStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx port.LedgerTx) error) error {
	return pgpkg.Retry(ctx, s.policy, func(ctx context.Context) error {
		return pgpkg.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
			return fn(ctx, &ledgerTx{tx: tx})
		})
	}, func(attempt int, err error, wait time.Duration) {
		s.logger.WarnContext(ctx, "retrying ledger transaction",
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
	})
}

type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) LockOffice(ctx context.Context, tenantID, officeID uuid.UUID, mode port.LockMode) (model.Office, error) {
	lock := "FOR SHARE"
	if mode == port.LockExclusive {
		lock = "FOR UPDATE"
	}
	o, err := scanOffice(t.tx.QueryRow(ctx,
		`SELECT `+officeColumns+` FROM offices WHERE tenant_id = $1 AND id = $2 `+lock, tenantID, officeID))
	if err != nil {
		return model.Office{}, notFound(err, "office %s", officeID)
	}
	return o, nil
}

func (t *ledgerTx) LatestClosure(ctx context.Context, tenantID, officeID uuid.UUID) (model.AccountingClosure, bool, error) {
	return latestClosure(ctx, t.tx, tenantID, officeID)
}

func (t *ledgerTx) SaveClosure(ctx context.Context, c model.AccountingClosure) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO accounting_closures (`+closureColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID(), c.TenantID(), c.OfficeID(), c.ClosingDate(), c.Comments(), c.CreatedBy(), c.CreatedAt())
	if err != nil {
		return fmt.Errorf("insert closure: %w", err)
	}
	return nil
}

func (t *ledgerTx) TransactionExists(ctx context.Context, tenantID uuid.UUID, transactionID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM journal_entries WHERE tenant_id = $1 AND transaction_id = $2)
	`, tenantID, transactionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check transaction %s: %w", transactionID, err)
	}
	return exists, nil
}

const insertEntrySQL = `
	INSERT INTO journal_entries (
		id, tenant_id, batch_id, office_id, gl_account_id, transaction_id,
		entry_seq, pair_seq, entry_type, amount, currency, entry_date, business_date,
		transaction_type, product_type, product_id, reference_number, description,
		reversed, reversal_id, reversal_of, created_by, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
`

// SaveJournalTransaction inserts every leg in one batch. A unique key hit
// means a concurrent unit of work posted the same transaction id first.
func (t *ledgerTx) SaveJournalTransaction(ctx context.Context, jt model.JournalTransaction) error {
	batch := &pgx.Batch{}
	for _, e := range jt.Entries() {
		batch.Queue(insertEntrySQL,
			e.ID(), e.TenantID(), e.BatchID(), e.OfficeID(), e.GLAccountID(), e.TransactionID(),
			e.EntrySeq(), e.PairSeq(), e.EntryType().String(), e.Amount(), e.Currency(),
			e.EntryDate(), e.BusinessDate(), e.TransactionType().String(), e.ProductType().String(),
			e.ProductID(), e.ReferenceNumber(), e.Description(),
			e.Reversed(), e.ReversalID(), e.ReversalOf(), e.CreatedBy(), e.CreatedAt())
	}

	br := t.tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if pgpkg.IsUniqueViolation(err, "") {
				return fmt.Errorf("%w: %s", model.ErrTransactionAlreadyPosted, jt.TransactionID())
			}
			return fmt.Errorf("insert journal entry %d of %s: %w", i+1, jt.TransactionID(), err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert journal entries of %s: %w", jt.TransactionID(), err)
	}
	return nil
}

func (t *ledgerTx) EntriesForUpdate(ctx context.Context, tenantID uuid.UUID, transactionID string) ([]model.JournalEntry, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT `+entryColumns+` FROM journal_entries je
		WHERE je.tenant_id = $1 AND je.transaction_id = $2
		ORDER BY je.entry_seq
		FOR UPDATE
	`, tenantID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("lock entries of %s: %w", transactionID, err)
	}
	return scanEntries(rows)
}

// MarkReversed flips the reversed flag of each leg. The journal trigger
// rejects any other change to a posted row.
func (t *ledgerTx) MarkReversed(ctx context.Context, entries []model.JournalEntry) error {
	for _, e := range entries {
		tag, err := t.tx.Exec(ctx, `
			UPDATE journal_entries SET reversed = TRUE, reversal_id = $3
			WHERE tenant_id = $1 AND id = $2 AND NOT reversed
		`, e.TenantID(), e.ID(), e.ReversalID())
		if err != nil {
			return fmt.Errorf("mark entry %s reversed: %w", e.ID(), err)
		}
		if tag.RowsAffected() == 0 {
			return &model.AlreadyReversedError{TransactionID: e.TransactionID(), ReversalID: e.ReversalID()}
		}
	}
	return nil
}

func (t *ledgerTx) SaveEvents(ctx context.Context, evts []events.DomainEvent) error {
	return storeOutbox(ctx, t.tx, events.NewOutboxEntries(evts))
}
