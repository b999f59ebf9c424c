package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/valueobject"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

var (
	_ port.AccountMappingRepository = (*MappingRepo)(nil)
	_ port.MappingSource            = (*MappingRepo)(nil)
)

// MappingRepo implements AccountMappingRepository using PostgreSQL.
// Absent product, payment type and charge ids are stored as the nil UUID.
type MappingRepo struct {
	pool *pgxpool.Pool
}

func NewMappingRepo(pool *pgxpool.Pool) *MappingRepo {
	return &MappingRepo{pool: pool}
}

func (r *MappingRepo) Save(ctx context.Context, m model.AccountMapping) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO account_mappings (
			id, tenant_id, product_type, product_id, role,
			gl_account_id, payment_type_id, charge_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, m.ID(), m.TenantID(), m.ProductType().String(), m.ProductID(), m.Role().String(),
		m.GLAccountID(), m.PaymentTypeID(), m.ChargeID(), m.CreatedAt())
	if err != nil {
		if pgpkg.IsUniqueViolation(err, "account_mappings_key") {
			return fmt.Errorf("%w: %s %s", model.ErrDuplicateMapping, m.ProductType(), m.Role())
		}
		return fmt.Errorf("insert account mapping: %w", err)
	}
	return nil
}

func (r *MappingRepo) ListForProduct(ctx context.Context, tenantID uuid.UUID, productType valueobject.ProductType, productID uuid.UUID) ([]model.AccountMapping, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, product_type, product_id, role, gl_account_id, payment_type_id, charge_id, created_at
		FROM account_mappings
		WHERE tenant_id = $1 AND product_type = $2 AND product_id IN ($3, $4)
		ORDER BY created_at
	`, tenantID, productType.String(), productID, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("query account mappings: %w", err)
	}
	defer rows.Close()

	var mappings []model.AccountMapping
	for rows.Next() {
		var (
			id, tenant, product, glAccount, paymentType, charge uuid.UUID
			pt, role                                            string
			createdAt                                           time.Time
		)
		if err := rows.Scan(&id, &tenant, &pt, &product, &role, &glAccount, &paymentType, &charge, &createdAt); err != nil {
			return nil, fmt.Errorf("scan account mapping: %w", err)
		}
		mappings = append(mappings, model.ReconstructAccountMapping(id, tenant,
			valueobject.ProductType(pt), product, valueobject.AccountRole(role),
			glAccount, paymentType, charge, createdAt))
	}
	return mappings, rows.Err()
}

// MappingsFor builds the mapping set of a product from the table.
func (r *MappingRepo) MappingsFor(ctx context.Context, tenantID uuid.UUID, productType valueobject.ProductType, productID uuid.UUID) (model.MappingSet, error) {
	mappings, err := r.ListForProduct(ctx, tenantID, productType, productID)
	if err != nil {
		return model.MappingSet{}, err
	}
	return model.NewMappingSet(productType, productID, mappings), nil
}
