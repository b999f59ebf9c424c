package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	vo "github.com/bibbank/bib/internal/domain/valueobject"
)

func seedRequest(tenant uuid.UUID) dto.SeedChartRequest {
	return dto.SeedChartRequest{
		TenantID: tenant,
		Offices: []dto.SeedOffice{
			{Name: "Head Office"},
			{Name: "North Branch", Parent: "Head Office"},
		},
		GLAccounts: []dto.SeedGLAccount{
			{Name: "Liabilities", GLCode: "2000", Type: "LIABILITY", Usage: "HEADER"},
			{Name: "Savings Control", GLCode: "2100", Type: "LIABILITY", Usage: "DETAIL", Parent: "2000"},
			{Name: "Cash", GLCode: "1100", Type: "ASSET", Usage: "DETAIL"},
		},
		Mappings: []dto.SeedMapping{
			{ProductType: "SAVINGS", Role: "SAVINGS_CONTROL", GLCode: "2100"},
			{ProductType: "SAVINGS", Role: "SAVINGS_REFERENCE", GLCode: "1100"},
		},
	}
}

func TestSeedChart_Idempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	tenant := uuid.New()

	first, err := h.seed.Execute(ctx, seedRequest(tenant))
	require.NoError(t, err)
	assert.Equal(t, dto.SeedChartResponse{OfficesCreated: 2, GLAccountsCreated: 3, MappingsCreated: 2}, first)
	assert.Len(t, h.cache.calls, 2)

	second, err := h.seed.Execute(ctx, seedRequest(tenant))
	require.NoError(t, err)
	assert.Equal(t, dto.SeedChartResponse{Skipped: 7}, second)

	north, err := h.offices.FindByName(ctx, tenant, "North Branch")
	require.NoError(t, err)
	head, err := h.offices.FindByName(ctx, tenant, "Head Office")
	require.NoError(t, err)
	assert.Equal(t, head.ID(), north.ParentID())

	control, err := h.accounts.FindByCode(ctx, tenant, vo.MustGLCode("2100"))
	require.NoError(t, err)
	parent, err := h.accounts.FindByCode(ctx, tenant, vo.MustGLCode("2000"))
	require.NoError(t, err)
	assert.Equal(t, parent.ID(), control.ParentID())

	set, err := h.mappings.MappingsFor(ctx, tenant, vo.ProductTypeSavings, uuid.New())
	require.NoError(t, err)
	m, ok := set.Lookup(vo.RoleSavingsControl, uuid.Nil, uuid.Nil)
	require.True(t, ok)
	assert.Equal(t, control.ID(), m.GLAccountID())
}

func TestSeedChart_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.SeedChartRequest)
		want   error
	}{
		{"unknown parent office", func(r *dto.SeedChartRequest) { r.Offices[1].Parent = "Nowhere" }, model.ErrNotFound},
		{"parent listed after child", func(r *dto.SeedChartRequest) {
			r.GLAccounts[0], r.GLAccounts[1] = r.GLAccounts[1], r.GLAccounts[0]
		}, model.ErrNotFound},
		{"mapping to unknown code", func(r *dto.SeedChartRequest) { r.Mappings[0].GLCode = "9999" }, model.ErrNotFound},
		{"mapping to header", func(r *dto.SeedChartRequest) { r.Mappings[0].GLCode = "2000" }, model.ErrGLAccountNotPostable},
		{"missing gl code", func(r *dto.SeedChartRequest) { r.GLAccounts[2].GLCode = "" }, model.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			req := seedRequest(uuid.New())
			tt.mutate(&req)

			_, err := h.seed.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
