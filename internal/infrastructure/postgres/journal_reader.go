package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/valueobject"
)

var _ port.JournalEntryReader = (*JournalReader)(nil)

const entryColumns = `je.id, je.tenant_id, je.batch_id, je.office_id, je.gl_account_id, je.transaction_id,
	je.entry_seq, je.pair_seq, je.entry_type, je.amount, je.currency, je.entry_date, je.business_date,
	je.transaction_type, je.product_type, je.product_id, je.reference_number, je.description,
	je.reversed, je.reversal_id, je.reversal_of, je.created_by, je.created_at`

// JournalReader serves paginated journal queries.
type JournalReader struct {
	pool *pgxpool.Pool
}

func NewJournalReader(pool *pgxpool.Pool) *JournalReader {
	return &JournalReader{pool: pool}
}

func (r *JournalReader) FindByTransactionID(ctx context.Context, tenantID uuid.UUID, transactionID string, page port.Page) ([]model.JournalEntry, int, error) {
	const where = `FROM journal_entries je WHERE je.tenant_id = $1 AND je.transaction_id = $2`
	return r.list(ctx, where, `je.entry_seq`, page, tenantID, transactionID)
}

// ListByOffice matches sub-offices through the materialised hierarchy path.
func (r *JournalReader) ListByOffice(ctx context.Context, q port.OfficeEntriesQuery) ([]model.JournalEntry, int, error) {
	where := `FROM journal_entries je
		WHERE je.tenant_id = $1 AND je.office_id = $2
		AND je.entry_date BETWEEN $3 AND $4`
	if q.IncludeSubOffices {
		where = `FROM journal_entries je
			JOIN offices o ON o.id = je.office_id
			WHERE je.tenant_id = $1
			AND o.hierarchy LIKE (SELECT hierarchy FROM offices WHERE tenant_id = $1 AND id = $2) || '%'
			AND je.entry_date BETWEEN $3 AND $4`
	}
	return r.list(ctx, where, `je.entry_date, je.created_at, je.transaction_id, je.entry_seq`, q.Page,
		q.TenantID, q.OfficeID, q.Range.From(), q.Range.To())
}

func (r *JournalReader) ListByGLAccount(ctx context.Context, q port.GLAccountEntriesQuery) ([]model.JournalEntry, int, error) {
	const where = `FROM journal_entries je
		WHERE je.tenant_id = $1 AND je.gl_account_id = $2
		AND je.entry_date BETWEEN $3 AND $4`
	return r.list(ctx, where, `je.entry_date, je.created_at, je.transaction_id, je.entry_seq`, q.Page,
		q.TenantID, q.GLAccountID, q.Range.From(), q.Range.To())
}

// list counts the matches of fromWhere and returns one page of them.
func (r *JournalReader) list(ctx context.Context, fromWhere, orderBy string, page port.Page, args ...any) ([]model.JournalEntry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) `+fromWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count journal entries: %w", err)
	}
	if total == 0 || page.Offset >= total {
		return nil, total, nil
	}

	n := len(args)
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s %s ORDER BY %s LIMIT $%d OFFSET $%d`, entryColumns, fromWhere, orderBy, n+1, n+2),
		append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query journal entries: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func scanEntries(rows pgx.Rows) ([]model.JournalEntry, error) {
	defer rows.Close()
	var entries []model.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read journal entries: %w", err)
	}
	return entries, nil
}

func scanEntry(row pgx.Row) (model.JournalEntry, error) {
	var (
		rec                                  model.JournalEntryRecord
		entryType, txType, productType, curr string
	)
	err := row.Scan(&rec.ID, &rec.TenantID, &rec.BatchID, &rec.OfficeID, &rec.GLAccountID, &rec.TransactionID,
		&rec.EntrySeq, &rec.PairSeq, &entryType, &rec.Amount, &curr, &rec.EntryDate, &rec.BusinessDate,
		&txType, &productType, &rec.ProductID, &rec.ReferenceNumber, &rec.Description,
		&rec.Reversed, &rec.ReversalID, &rec.ReversalOf, &rec.CreatedBy, &rec.CreatedAt)
	if err != nil {
		return model.JournalEntry{}, err
	}
	rec.EntryType = valueobject.EntryType(entryType)
	rec.TransactionType = valueobject.TransactionType(txType)
	rec.ProductType = valueobject.ProductType(productType)
	rec.Currency = curr
	return model.ReconstructJournalEntry(rec), nil
}
