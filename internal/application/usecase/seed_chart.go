package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/valueobject"
)

// SeedChart bootstraps a tenant's offices, chart of accounts and mappings.
// Offices are matched by name and accounts by GL code; rows that already
// exist are skipped, so a seed file can be applied repeatedly. Parents must
// be listed before their children.
type SeedChart struct {
	offices  port.OfficeRepository
	accounts port.GLAccountRepository
	mappings port.AccountMappingRepository
	cache    port.ReferenceCache
	logger   *slog.Logger
}

func NewSeedChart(
	offices port.OfficeRepository,
	accounts port.GLAccountRepository,
	mappings port.AccountMappingRepository,
	cache port.ReferenceCache,
	logger *slog.Logger,
) *SeedChart {
	return &SeedChart{offices: offices, accounts: accounts, mappings: mappings, cache: cache, logger: logger}
}

func (uc *SeedChart) Execute(ctx context.Context, req dto.SeedChartRequest) (dto.SeedChartResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.SeedChartResponse{}, err
	}
	var resp dto.SeedChartResponse
	now := time.Now().UTC()

	for _, so := range req.Offices {
		created, err := uc.seedOffice(ctx, req, so, now)
		if err != nil {
			return resp, fmt.Errorf("office %q: %w", so.Name, err)
		}
		count(&resp.OfficesCreated, &resp.Skipped, created)
	}
	for _, sa := range req.GLAccounts {
		created, err := uc.seedGLAccount(ctx, req, sa, now)
		if err != nil {
			return resp, fmt.Errorf("GL account %q: %w", sa.GLCode, err)
		}
		count(&resp.GLAccountsCreated, &resp.Skipped, created)
	}
	for i, sm := range req.Mappings {
		created, err := uc.seedMapping(ctx, req, sm, now)
		if err != nil {
			return resp, fmt.Errorf("mapping %d (%s %s): %w", i+1, sm.ProductType, sm.Role, err)
		}
		count(&resp.MappingsCreated, &resp.Skipped, created)
	}

	uc.logger.InfoContext(ctx, "chart of accounts seeded",
		"tenant_id", req.TenantID,
		"offices", resp.OfficesCreated,
		"gl_accounts", resp.GLAccountsCreated,
		"mappings", resp.MappingsCreated,
		"skipped", resp.Skipped,
	)
	return resp, nil
}

func count(created, skipped *int, ok bool) {
	if ok {
		*created++
	} else {
		*skipped++
	}
}

func (uc *SeedChart) seedOffice(ctx context.Context, req dto.SeedChartRequest, so dto.SeedOffice, now time.Time) (bool, error) {
	if _, err := uc.offices.FindByName(ctx, req.TenantID, so.Name); err == nil {
		return false, nil
	} else if !errors.Is(err, model.ErrNotFound) {
		return false, err
	}

	var parent *model.Office
	if so.Parent != "" {
		p, err := uc.offices.FindByName(ctx, req.TenantID, so.Parent)
		if err != nil {
			return false, fmt.Errorf("parent office %q: %w", so.Parent, err)
		}
		parent = &p
	}
	office, err := model.NewOffice(req.TenantID, so.Name, parent, now)
	if err != nil {
		return false, err
	}
	return true, uc.offices.Save(ctx, office)
}

func (uc *SeedChart) seedGLAccount(ctx context.Context, req dto.SeedChartRequest, sa dto.SeedGLAccount, now time.Time) (bool, error) {
	code, err := parseField("GL code", sa.GLCode, valueobject.NewGLCode)
	if err != nil {
		return false, err
	}
	if _, err := uc.accounts.FindByCode(ctx, req.TenantID, code); err == nil {
		return false, nil
	} else if !errors.Is(err, model.ErrNotFound) {
		return false, err
	}

	accountType, err := parseField("type", sa.Type, valueobject.ParseGLAccountType)
	if err != nil {
		return false, err
	}
	usage, err := parseField("usage", sa.Usage, valueobject.ParseGLAccountUsage)
	if err != nil {
		return false, err
	}
	var parent *model.GLAccount
	if sa.Parent != "" {
		p, err := uc.findByCode(ctx, req, sa.Parent)
		if err != nil {
			return false, fmt.Errorf("parent %q: %w", sa.Parent, err)
		}
		parent = &p
	}

	acct, err := model.NewGLAccount(req.TenantID, sa.Name, code, accountType, usage, parent, sa.Description, now)
	if err != nil {
		return false, err
	}
	return true, uc.accounts.Save(ctx, acct)
}

func (uc *SeedChart) seedMapping(ctx context.Context, req dto.SeedChartRequest, sm dto.SeedMapping, now time.Time) (bool, error) {
	productType, err := parseField("product type", sm.ProductType, valueobject.ParseProductType)
	if err != nil {
		return false, err
	}
	role, err := parseField("role", sm.Role, valueobject.ParseAccountRole)
	if err != nil {
		return false, err
	}
	acct, err := uc.findByCode(ctx, req, sm.GLCode)
	if err != nil {
		return false, fmt.Errorf("GL account %q: %w", sm.GLCode, err)
	}

	m, err := model.NewAccountMapping(req.TenantID, productType, sm.ProductID, role, acct, sm.PaymentTypeID, sm.ChargeID, now)
	if err != nil {
		return false, err
	}
	if err := uc.mappings.Save(ctx, m); err != nil {
		if errors.Is(err, model.ErrDuplicateMapping) {
			return false, nil
		}
		return false, err
	}
	uc.cache.InvalidateMappings(req.TenantID, productType, sm.ProductID)
	return true, nil
}

func (uc *SeedChart) findByCode(ctx context.Context, req dto.SeedChartRequest, raw string) (model.GLAccount, error) {
	code, err := parseField("GL code", raw, valueobject.NewGLCode)
	if err != nil {
		return model.GLAccount{}, err
	}
	return uc.accounts.FindByCode(ctx, req.TenantID, code)
}
