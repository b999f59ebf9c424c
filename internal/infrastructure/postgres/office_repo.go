package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

var _ port.OfficeRepository = (*OfficeRepo)(nil)

const officeColumns = `id, tenant_id, parent_id, name, hierarchy, created_at`

// OfficeRepo implements OfficeRepository using PostgreSQL.
type OfficeRepo struct {
	pool *pgxpool.Pool
}

func NewOfficeRepo(pool *pgxpool.Pool) *OfficeRepo {
	return &OfficeRepo{pool: pool}
}

func (r *OfficeRepo) Save(ctx context.Context, o model.Office) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO offices (`+officeColumns+`) VALUES ($1, $2, $3, $4, $5, $6)
	`, o.ID(), o.TenantID(), nullUUID(o.ParentID()), o.Name(), o.Hierarchy(), o.CreatedAt())
	if err != nil {
		if pgpkg.IsUniqueViolation(err, "offices_tenant_name_key") {
			return fmt.Errorf("%w: office %q already exists", model.ErrInvalidInput, o.Name())
		}
		return fmt.Errorf("insert office: %w", err)
	}
	return nil
}

func (r *OfficeRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (model.Office, error) {
	o, err := scanOffice(r.pool.QueryRow(ctx,
		`SELECT `+officeColumns+` FROM offices WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		return model.Office{}, notFound(err, "office %s", id)
	}
	return o, nil
}

func (r *OfficeRepo) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (model.Office, error) {
	o, err := scanOffice(r.pool.QueryRow(ctx,
		`SELECT `+officeColumns+` FROM offices WHERE tenant_id = $1 AND name = $2`, tenantID, name))
	if err != nil {
		return model.Office{}, notFound(err, "office %q", name)
	}
	return o, nil
}

func scanOffice(row pgx.Row) (model.Office, error) {
	var (
		id, tenantID    uuid.UUID
		parentID        *uuid.UUID
		name, hierarchy string
		createdAt       time.Time
	)
	if err := row.Scan(&id, &tenantID, &parentID, &name, &hierarchy, &createdAt); err != nil {
		return model.Office{}, err
	}
	return model.ReconstructOffice(id, tenantID, fromNullUUID(parentID), name, hierarchy, createdAt), nil
}
