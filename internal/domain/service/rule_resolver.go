package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/valueobject"
)

// ResolveRequest names the role to resolve for one product.
type ResolveRequest struct {
	TenantID      uuid.UUID
	ProductType   valueobject.ProductType
	ProductID     uuid.UUID
	Convention    valueobject.AccountingConvention
	Role          valueobject.AccountRole
	PaymentTypeID uuid.UUID
	ChargeID      uuid.UUID
}

// RuleResolver maps account roles to postable GL accounts.
type RuleResolver struct {
	mappings port.MappingSource
	accounts port.GLAccountSource
}

func NewRuleResolver(mappings port.MappingSource, accounts port.GLAccountSource) *RuleResolver {
	return &RuleResolver{mappings: mappings, accounts: accounts}
}

// Resolve returns the GL account playing req.Role. A role with neither a
// product-specific nor a default mapping fails with
// *model.AccountMappingNotFoundError.
func (r *RuleResolver) Resolve(ctx context.Context, req ResolveRequest) (model.GLAccount, error) {
	if !req.Role.AllowedFor(req.ProductType, req.Convention) {
		return model.GLAccount{}, fmt.Errorf("%w: %s on %s under %s",
			model.ErrInvalidRole, req.Role, req.ProductType, req.Convention)
	}

	set, err := r.mappings.MappingsFor(ctx, req.TenantID, req.ProductType, req.ProductID)
	if err != nil {
		return model.GLAccount{}, fmt.Errorf("load mappings for %s product %s: %w", req.ProductType, req.ProductID, err)
	}

	m, ok := set.Lookup(req.Role, req.PaymentTypeID, req.ChargeID)
	if !ok {
		return model.GLAccount{}, &model.AccountMappingNotFoundError{
			ProductType:   req.ProductType,
			ProductID:     req.ProductID,
			Role:          req.Role,
			PaymentTypeID: req.PaymentTypeID,
			ChargeID:      req.ChargeID,
		}
	}

	return r.ResolveAccount(ctx, req.TenantID, m.GLAccountID())
}

// ResolveAccount loads a GL account by id and checks it accepts postings.
func (r *RuleResolver) ResolveAccount(ctx context.Context, tenantID, glAccountID uuid.UUID) (model.GLAccount, error) {
	acct, err := r.accounts.GLAccount(ctx, tenantID, glAccountID)
	if err != nil {
		return model.GLAccount{}, fmt.Errorf("load GL account %s: %w", glAccountID, err)
	}
	if err := acct.CheckPostable(); err != nil {
		return model.GLAccount{}, err
	}
	return acct, nil
}
