package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/service"
	vo "github.com/bibbank/bib/internal/domain/valueobject"
)

func resolveReq(role vo.AccountRole) service.ResolveRequest {
	return service.ResolveRequest{
		TenantID:    tenantID,
		ProductType: vo.ProductTypeSavings,
		ProductID:   productID,
		Convention:  vo.ConventionCash,
		Role:        role,
	}
}

func TestRuleResolver_FallsBackToDefault(t *testing.T) {
	chart := newFakeChart(t, vo.ProductTypeSavings)
	resolver := service.NewRuleResolver(chart, chart)

	acct, err := resolver.Resolve(context.Background(), resolveReq(vo.RoleSavingsControl))
	require.NoError(t, err)
	assert.Equal(t, chart.account(vo.RoleSavingsControl), acct.ID())

	own := chart.newAccount(t, "product control")
	chart.addMapping(t, vo.ProductTypeSavings, productID, vo.RoleSavingsControl, own, uuid.Nil, uuid.Nil)

	acct, err = resolver.Resolve(context.Background(), resolveReq(vo.RoleSavingsControl))
	require.NoError(t, err)
	assert.Equal(t, own.ID(), acct.ID())

	other := resolveReq(vo.RoleSavingsControl)
	other.ProductID = uuid.New()
	acct, err = resolver.Resolve(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, chart.account(vo.RoleSavingsControl), acct.ID())
}

func TestRuleResolver_RoleOutsideConvention(t *testing.T) {
	chart := newFakeChart(t, vo.ProductTypeSavings)
	resolver := service.NewRuleResolver(chart, chart)

	_, err := resolver.Resolve(context.Background(), resolveReq(vo.RoleInterestPayable))
	assert.ErrorIs(t, err, model.ErrInvalidRole)

	req := resolveReq(vo.RoleInterestPayable)
	req.Convention = vo.ConventionAccrualPeriodic
	_, err = resolver.Resolve(context.Background(), req)
	assert.NoError(t, err)

	req = resolveReq(vo.RoleFundSource)
	_, err = resolver.Resolve(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrInvalidRole)
}

func TestRuleResolver_NoMapping(t *testing.T) {
	chart := newFakeChart(t, vo.ProductTypeSavings, vo.RoleEscheatLiability)

	_, err := service.NewRuleResolver(chart, chart).Resolve(context.Background(), resolveReq(vo.RoleEscheatLiability))
	var notFound *model.AccountMappingNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, vo.ProductTypeSavings, notFound.ProductType)
}

func TestRuleResolver_SourceErrors(t *testing.T) {
	chart := newFakeChart(t, vo.ProductTypeSavings)
	chart.mappingsForFunc = func(context.Context, uuid.UUID, vo.ProductType, uuid.UUID) (model.MappingSet, error) {
		return model.MappingSet{}, fmt.Errorf("connection reset")
	}

	_, err := service.NewRuleResolver(chart, chart).Resolve(context.Background(), resolveReq(vo.RoleSavingsControl))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	_, err = service.NewRuleResolver(chart, chart).ResolveAccount(context.Background(), tenantID, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRuleResolver_HeaderAccountNotPostable(t *testing.T) {
	chart := newFakeChart(t, vo.ProductTypeSavings)
	header, err := model.NewGLAccount(tenantID, "Assets", vo.MustGLCode("1"), vo.GLAccountTypeAsset, vo.GLAccountUsageHeader, nil, "", now)
	require.NoError(t, err)
	chart.accounts[header.ID()] = header

	_, err = service.NewRuleResolver(chart, chart).ResolveAccount(context.Background(), tenantID, header.ID())
	assert.ErrorIs(t, err, model.ErrGLAccountNotPostable)
}

func TestRuleResolver_ConcurrentResolve(t *testing.T) {
	chart := newFakeChart(t, vo.ProductTypeSavings)
	resolver := service.NewRuleResolver(chart, chart)
	want := chart.account(vo.RoleSavingsReference)

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acct, err := resolver.Resolve(context.Background(), resolveReq(vo.RoleSavingsReference))
			if err == nil && acct.ID() != want {
				err = fmt.Errorf("resolved %s, want %s", acct.ID(), want)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
