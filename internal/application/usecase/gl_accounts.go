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

// CreateGLAccount adds an account to the chart of accounts.
type CreateGLAccount struct {
	accounts port.GLAccountRepository
}

func NewCreateGLAccount(accounts port.GLAccountRepository) *CreateGLAccount {
	return &CreateGLAccount{accounts: accounts}
}

func (uc *CreateGLAccount) Execute(ctx context.Context, req dto.CreateGLAccountRequest) (dto.GLAccountResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.GLAccountResponse{}, err
	}
	code, err := parseField("GL code", req.GLCode, valueobject.NewGLCode)
	if err != nil {
		return dto.GLAccountResponse{}, err
	}
	accountType, err := parseField("type", req.Type, valueobject.ParseGLAccountType)
	if err != nil {
		return dto.GLAccountResponse{}, err
	}
	usage, err := parseField("usage", req.Usage, valueobject.ParseGLAccountUsage)
	if err != nil {
		return dto.GLAccountResponse{}, err
	}

	var parent *model.GLAccount
	if req.ParentID != uuid.Nil {
		p, err := uc.accounts.FindByID(ctx, req.TenantID, req.ParentID)
		if err != nil {
			return dto.GLAccountResponse{}, fmt.Errorf("parent GL account: %w", err)
		}
		parent = &p
	}

	if _, err := uc.accounts.FindByCode(ctx, req.TenantID, code); err == nil {
		return dto.GLAccountResponse{}, fmt.Errorf("%w: %s", model.ErrDuplicateGLCode, code)
	} else if !errors.Is(err, model.ErrNotFound) {
		return dto.GLAccountResponse{}, fmt.Errorf("failed to check GL code: %w", err)
	}

	acct, err := model.NewGLAccount(req.TenantID, req.Name, code, accountType, usage, parent, req.Description, time.Now().UTC())
	if err != nil {
		return dto.GLAccountResponse{}, err
	}
	if err := uc.accounts.Save(ctx, acct); err != nil {
		return dto.GLAccountResponse{}, fmt.Errorf("failed to save GL account: %w", err)
	}
	return toGLAccountResponse(acct), nil
}

// SetGLAccountDisabled disables or re-enables a GL account. Accounts are
// never deleted.
type SetGLAccountDisabled struct {
	accounts port.GLAccountRepository
	cache    port.ReferenceCache
	disable  bool
}

func NewDisableGLAccount(accounts port.GLAccountRepository, cache port.ReferenceCache) *SetGLAccountDisabled {
	return &SetGLAccountDisabled{accounts: accounts, cache: cache, disable: true}
}

func NewEnableGLAccount(accounts port.GLAccountRepository, cache port.ReferenceCache) *SetGLAccountDisabled {
	return &SetGLAccountDisabled{accounts: accounts, cache: cache}
}

func (uc *SetGLAccountDisabled) Execute(ctx context.Context, req dto.GLAccountRequest) (dto.GLAccountResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.GLAccountResponse{}, err
	}
	acct, err := uc.accounts.FindByID(ctx, req.TenantID, req.GLAccountID)
	if err != nil {
		return dto.GLAccountResponse{}, fmt.Errorf("failed to find GL account: %w", err)
	}

	now := time.Now().UTC()
	if uc.disable {
		acct, err = acct.Disable(now)
	} else {
		acct, err = acct.Enable(now)
	}
	if err != nil {
		return dto.GLAccountResponse{}, err
	}
	if err := uc.accounts.Save(ctx, acct); err != nil {
		return dto.GLAccountResponse{}, fmt.Errorf("failed to save GL account: %w", err)
	}
	uc.cache.InvalidateGLAccount(req.TenantID, req.GLAccountID)
	return toGLAccountResponse(acct), nil
}

// GetGLAccount returns one GL account.
type GetGLAccount struct {
	accounts port.GLAccountRepository
}

func NewGetGLAccount(accounts port.GLAccountRepository) *GetGLAccount {
	return &GetGLAccount{accounts: accounts}
}

func (uc *GetGLAccount) Execute(ctx context.Context, req dto.GLAccountRequest) (dto.GLAccountResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.GLAccountResponse{}, err
	}
	acct, err := uc.accounts.FindByID(ctx, req.TenantID, req.GLAccountID)
	if err != nil {
		return dto.GLAccountResponse{}, fmt.Errorf("failed to find GL account: %w", err)
	}
	return toGLAccountResponse(acct), nil
}

// ListGLAccounts browses the chart of accounts.
type ListGLAccounts struct {
	accounts port.GLAccountRepository
}

func NewListGLAccounts(accounts port.GLAccountRepository) *ListGLAccounts {
	return &ListGLAccounts{accounts: accounts}
}

func (uc *ListGLAccounts) Execute(ctx context.Context, req dto.ListGLAccountsRequest) (dto.ListGLAccountsResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.ListGLAccountsResponse{}, err
	}
	filter := port.GLAccountFilter{
		Type:            valueobject.GLAccountType(req.Type),
		Usage:           valueobject.GLAccountUsage(req.Usage),
		IncludeDisabled: req.IncludeDisabled,
	}
	list, err := uc.accounts.List(ctx, req.TenantID, filter)
	if err != nil {
		return dto.ListGLAccountsResponse{}, fmt.Errorf("failed to list GL accounts: %w", err)
	}
	resp := dto.ListGLAccountsResponse{Accounts: make([]dto.GLAccountResponse, 0, len(list))}
	for _, a := range list {
		resp.Accounts = append(resp.Accounts, toGLAccountResponse(a))
	}
	return resp, nil
}
