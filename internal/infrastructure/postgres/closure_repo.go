package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

var _ port.ClosureRepository = (*ClosureRepo)(nil)

const (
	closureColumns = `id, tenant_id, office_id, closing_date, comments, created_by, created_at`

	latestClosureSQL = `
		SELECT ` + closureColumns + ` FROM accounting_closures
		WHERE tenant_id = $1 AND office_id = $2
		ORDER BY closing_date DESC, created_at DESC
		LIMIT 1
	`
)

// ClosureRepo reads closures outside a ledger transaction.
type ClosureRepo struct {
	pool *pgxpool.Pool
}

func NewClosureRepo(pool *pgxpool.Pool) *ClosureRepo {
	return &ClosureRepo{pool: pool}
}

func (r *ClosureRepo) LatestForOffice(ctx context.Context, tenantID, officeID uuid.UUID) (model.AccountingClosure, bool, error) {
	return latestClosure(ctx, r.pool, tenantID, officeID)
}

// ListByOffice returns the office's closures, latest first.
func (r *ClosureRepo) ListByOffice(ctx context.Context, tenantID, officeID uuid.UUID) ([]model.AccountingClosure, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+closureColumns+` FROM accounting_closures
		WHERE tenant_id = $1 AND office_id = $2
		ORDER BY closing_date DESC, created_at DESC
	`, tenantID, officeID)
	if err != nil {
		return nil, fmt.Errorf("query closures: %w", err)
	}
	defer rows.Close()

	var closures []model.AccountingClosure
	for rows.Next() {
		c, err := scanClosure(rows)
		if err != nil {
			return nil, fmt.Errorf("scan closure: %w", err)
		}
		closures = append(closures, c)
	}
	return closures, rows.Err()
}

func latestClosure(ctx context.Context, q pgpkg.Querier, tenantID, officeID uuid.UUID) (model.AccountingClosure, bool, error) {
	c, err := scanClosure(q.QueryRow(ctx, latestClosureSQL, tenantID, officeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AccountingClosure{}, false, nil
	}
	if err != nil {
		return model.AccountingClosure{}, false, fmt.Errorf("query latest closure of office %s: %w", officeID, err)
	}
	return c, true, nil
}

func scanClosure(row pgx.Row) (model.AccountingClosure, error) {
	var (
		id, tenantID, officeID, createdBy uuid.UUID
		closingDate, createdAt            time.Time
		comments                          string
	)
	if err := row.Scan(&id, &tenantID, &officeID, &closingDate, &comments, &createdBy, &createdAt); err != nil {
		return model.AccountingClosure{}, err
	}
	return model.ReconstructAccountingClosure(id, tenantID, officeID, closingDate, comments, createdBy, createdAt), nil
}
