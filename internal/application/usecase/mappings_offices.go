package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/valueobject"
)

// CreateAccountMapping maps an account role of a product, or of every
// product of a type, to a GL account.
type CreateAccountMapping struct {
	mappings port.AccountMappingRepository
	accounts port.GLAccountRepository
	cache    port.ReferenceCache
}

func NewCreateAccountMapping(mappings port.AccountMappingRepository, accounts port.GLAccountRepository, cache port.ReferenceCache) *CreateAccountMapping {
	return &CreateAccountMapping{mappings: mappings, accounts: accounts, cache: cache}
}

func (uc *CreateAccountMapping) Execute(ctx context.Context, req dto.CreateAccountMappingRequest) (dto.AccountMappingResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.AccountMappingResponse{}, err
	}
	productType, err := parseField("product type", req.ProductType, valueobject.ParseProductType)
	if err != nil {
		return dto.AccountMappingResponse{}, err
	}
	role, err := parseField("role", req.Role, valueobject.ParseAccountRole)
	if err != nil {
		return dto.AccountMappingResponse{}, err
	}
	acct, err := uc.accounts.FindByID(ctx, req.TenantID, req.GLAccountID)
	if err != nil {
		return dto.AccountMappingResponse{}, fmt.Errorf("failed to find GL account: %w", err)
	}

	m, err := model.NewAccountMapping(req.TenantID, productType, req.ProductID, role, acct, req.PaymentTypeID, req.ChargeID, time.Now().UTC())
	if err != nil {
		return dto.AccountMappingResponse{}, err
	}
	if err := uc.mappings.Save(ctx, m); err != nil {
		return dto.AccountMappingResponse{}, fmt.Errorf("failed to save mapping: %w", err)
	}
	uc.cache.InvalidateMappings(req.TenantID, productType, req.ProductID)
	return toAccountMappingResponse(m), nil
}

// CreateOffice adds an office under an optional parent office.
type CreateOffice struct {
	offices port.OfficeRepository
}

func NewCreateOffice(offices port.OfficeRepository) *CreateOffice {
	return &CreateOffice{offices: offices}
}

func (uc *CreateOffice) Execute(ctx context.Context, req dto.CreateOfficeRequest) (dto.OfficeResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.OfficeResponse{}, err
	}

	var parent *model.Office
	if req.ParentID != uuid.Nil {
		p, err := uc.offices.FindByID(ctx, req.TenantID, req.ParentID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return dto.OfficeResponse{}, fmt.Errorf("%w: parent office %s does not exist", model.ErrInvalidParent, req.ParentID)
			}
			return dto.OfficeResponse{}, fmt.Errorf("failed to find parent office: %w", err)
		}
		parent = &p
	}

	office, err := model.NewOffice(req.TenantID, req.Name, parent, time.Now().UTC())
	if err != nil {
		return dto.OfficeResponse{}, err
	}
	if err := uc.offices.Save(ctx, office); err != nil {
		return dto.OfficeResponse{}, fmt.Errorf("failed to save office: %w", err)
	}
	return toOfficeResponse(office), nil
}
