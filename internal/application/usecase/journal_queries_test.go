package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/application/usecase"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	vo "github.com/bibbank/bib/internal/domain/valueobject"
)

func TestJournalQueries_Pagination(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		_, err := h.post.Execute(ctx, savingsRequest(h, fmt.Sprintf("D-%02d", i), vo.TxDeposit, "1"))
		require.NoError(t, err)
	}

	first, err := h.queries.ListEntriesByOffice(ctx, dto.ListEntriesByOfficeRequest{
		TenantID: tenantID, OfficeID: h.branch.ID(), From: mar1, To: mar1,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, first.Total)
	assert.Equal(t, usecase.DefaultPageSize, first.Limit)
	assert.Len(t, first.Entries, usecase.DefaultPageSize)

	rest, err := h.queries.ListEntriesByOffice(ctx, dto.ListEntriesByOfficeRequest{
		TenantID: tenantID, OfficeID: h.branch.ID(), From: mar1, To: mar1,
		Page: dto.PageRequest{Limit: 25, Offset: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, 60, rest.Total)
	assert.Equal(t, 50, rest.Offset)
	assert.Len(t, rest.Entries, 10)

	_, err = h.queries.ListEntriesByOffice(ctx, dto.ListEntriesByOfficeRequest{
		TenantID: tenantID, OfficeID: h.branch.ID(), From: mar1, To: mar1,
		Page: dto.PageRequest{Limit: usecase.MaxPageSize + 1},
	})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestJournalQueries_SubOffices(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := h.post.Execute(ctx, savingsRequest(h, "D-1", vo.TxDeposit, "1"))
	require.NoError(t, err)

	own, err := h.queries.ListEntriesByOffice(ctx, dto.ListEntriesByOfficeRequest{
		TenantID: tenantID, OfficeID: h.head.ID(), From: mar1, To: mar1,
	})
	require.NoError(t, err)
	assert.Zero(t, own.Total)

	tree, err := h.queries.ListEntriesByOffice(ctx, dto.ListEntriesByOfficeRequest{
		TenantID: tenantID, OfficeID: h.head.ID(), From: mar1, To: mar1, IncludeSubOffices: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Total)
}

func TestJournalQueries_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.queries.GetEntriesByTransaction(ctx, dto.GetEntriesByTransactionRequest{TenantID: tenantID, TransactionID: "NOPE"})
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = h.queries.ListEntriesByGLAccount(ctx, dto.ListEntriesByGLAccountRequest{
		TenantID: tenantID, GLAccountID: uuid.New(), From: mar1, To: jan1,
	})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = h.queries.ListEntriesByOffice(ctx, dto.ListEntriesByOfficeRequest{TenantID: tenantID, OfficeID: h.branch.ID()})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestJournalQueries_ReaderFailure(t *testing.T) {
	reader := &stubReader{err: fmt.Errorf("connection refused")}
	q := usecase.NewJournalQueries(reader)

	_, err := q.GetEntriesByTransaction(context.Background(), dto.GetEntriesByTransactionRequest{TenantID: tenantID, TransactionID: "D-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, port.Page{Limit: usecase.DefaultPageSize}, reader.page)
}

type stubReader struct {
	err  error
	page port.Page
}

func (s *stubReader) FindByTransactionID(_ context.Context, _ uuid.UUID, _ string, p port.Page) ([]model.JournalEntry, int, error) {
	s.page = p
	return nil, 0, s.err
}

func (s *stubReader) ListByOffice(_ context.Context, q port.OfficeEntriesQuery) ([]model.JournalEntry, int, error) {
	s.page = q.Page
	return nil, 0, s.err
}

func (s *stubReader) ListByGLAccount(_ context.Context, q port.GLAccountEntriesQuery) ([]model.JournalEntry, int, error) {
	s.page = q.Page
	return nil, 0, s.err
}
