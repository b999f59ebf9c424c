package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/valueobject"
	"github.com/bibbank/bib/pkg/events"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

var (
	_ port.GLAccountRepository = (*GLAccountRepo)(nil)
	_ port.GLAccountSource     = (*GLAccountRepo)(nil)
)

const glAccountColumns = `id, tenant_id, parent_id, name, gl_code, account_type, usage, disabled, description, version, created_at, updated_at`

// GLAccountRepo implements GLAccountRepository using PostgreSQL.
type GLAccountRepo struct {
	pool *pgxpool.Pool
}

func NewGLAccountRepo(pool *pgxpool.Pool) *GLAccountRepo {
	return &GLAccountRepo{pool: pool}
}

// Save inserts or updates the account with optimistic locking on version and
// writes its domain events to the outbox in the same transaction.
func (r *GLAccountRepo) Save(ctx context.Context, account model.GLAccount) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO gl_accounts (`+glAccountColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				disabled = EXCLUDED.disabled,
				description = EXCLUDED.description,
				version = EXCLUDED.version,
				updated_at = EXCLUDED.updated_at
			WHERE gl_accounts.version = EXCLUDED.version - 1
		`, account.ID(), account.TenantID(), nullUUID(account.ParentID()), account.Name(),
			account.GLCode().String(), account.Type().String(), account.Usage().String(),
			account.Disabled(), account.Description(), account.Version(),
			account.CreatedAt(), account.UpdatedAt())
		if err != nil {
			if pgpkg.IsUniqueViolation(err, "gl_accounts_tenant_code_key") {
				return fmt.Errorf("%w: %s", model.ErrDuplicateGLCode, account.GLCode())
			}
			return fmt.Errorf("upsert GL account: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("optimistic concurrency conflict: GL account %s has been modified", account.ID())
		}
		return storeOutbox(ctx, tx, events.NewOutboxEntries(account.DomainEvents()))
	})
}

func (r *GLAccountRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.GLAccount, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+glAccountColumns+` FROM gl_accounts WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	acct, err := scanGLAccount(row)
	if err != nil {
		return model.GLAccount{}, notFound(err, "GL account %s", id)
	}
	return acct, nil
}

// GLAccount serves the rule resolver straight from the table.
func (r *GLAccountRepo) GLAccount(ctx context.Context, tenantID, id uuid.UUID) (model.GLAccount, error) {
	return r.FindByID(ctx, tenantID, id)
}

func (r *GLAccountRepo) FindByCode(ctx context.Context, tenantID uuid.UUID, code valueobject.GLCode) (model.GLAccount, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+glAccountColumns+` FROM gl_accounts WHERE tenant_id = $1 AND gl_code = $2`, tenantID, code.String())
	acct, err := scanGLAccount(row)
	if err != nil {
		return model.GLAccount{}, notFound(err, "GL account %s", code)
	}
	return acct, nil
}

// List returns the tenant's accounts ordered by GL code.
func (r *GLAccountRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.GLAccountFilter) ([]model.GLAccount, error) {
	conds := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if filter.Type != "" {
		args = append(args, filter.Type.String())
		conds = append(conds, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if filter.Usage != "" {
		args = append(args, filter.Usage.String())
		conds = append(conds, fmt.Sprintf("usage = $%d", len(args)))
	}
	if !filter.IncludeDisabled {
		conds = append(conds, "NOT disabled")
	}

	rows, err := r.pool.Query(ctx, `SELECT `+glAccountColumns+` FROM gl_accounts WHERE `+
		strings.Join(conds, " AND ")+` ORDER BY gl_code`, args...)
	if err != nil {
		return nil, fmt.Errorf("query GL accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.GLAccount
	for rows.Next() {
		acct, err := scanGLAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan GL account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

func scanGLAccount(row pgx.Row) (model.GLAccount, error) {
	var (
		id, tenantID         uuid.UUID
		parentID             *uuid.UUID
		name, code           string
		accountType, usage   string
		disabled             bool
		description          string
		version              int
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &tenantID, &parentID, &name, &code, &accountType, &usage,
		&disabled, &description, &version, &createdAt, &updatedAt); err != nil {
		return model.GLAccount{}, err
	}
	glCode, err := valueobject.NewGLCode(code)
	if err != nil {
		return model.GLAccount{}, fmt.Errorf("stored GL code %q: %w", code, err)
	}
	return model.ReconstructGLAccount(id, tenantID, fromNullUUID(parentID), name, glCode,
		valueobject.GLAccountType(accountType), valueobject.GLAccountUsage(usage),
		disabled, description, version, createdAt, updatedAt), nil
}
