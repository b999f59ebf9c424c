package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/pkg/auth"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

// execFunc adapts a function to Executor.
type execFunc[Req, Resp any] func(context.Context, Req) (Resp, error)

func (f execFunc[Req, Resp]) Execute(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

type mockQueries struct {
	byTransaction func(context.Context, dto.GetEntriesByTransactionRequest) (dto.JournalEntriesResponse, error)
	byOffice      func(context.Context, dto.ListEntriesByOfficeRequest) (dto.JournalEntriesResponse, error)
	byGLAccount   func(context.Context, dto.ListEntriesByGLAccountRequest) (dto.JournalEntriesResponse, error)
}

func (m *mockQueries) GetEntriesByTransaction(ctx context.Context, req dto.GetEntriesByTransactionRequest) (dto.JournalEntriesResponse, error) {
	if m.byTransaction != nil {
		return m.byTransaction(ctx, req)
	}
	return dto.JournalEntriesResponse{}, nil
}

func (m *mockQueries) ListEntriesByOffice(ctx context.Context, req dto.ListEntriesByOfficeRequest) (dto.JournalEntriesResponse, error) {
	if m.byOffice != nil {
		return m.byOffice(ctx, req)
	}
	return dto.JournalEntriesResponse{}, nil
}

func (m *mockQueries) ListEntriesByGLAccount(ctx context.Context, req dto.ListEntriesByGLAccountRequest) (dto.JournalEntriesResponse, error) {
	if m.byGLAccount != nil {
		return m.byGLAccount(ctx, req)
	}
	return dto.JournalEntriesResponse{}, nil
}

var (
	testTenant = uuid.MustParse("6f1c1f5e-8d0b-4a55-9f43-0f0d3c1a2b10")
	testOffice = uuid.MustParse("0a7d5c3e-1111-4c2b-8e9f-6a5b4c3d2e1f")
	testUser   = uuid.MustParse("9b8a7c6d-2222-4e3f-a1b2-c3d4e5f60718")
)

func withClaims(tenantID uuid.UUID, roles ...string) context.Context {
	return auth.ContextWithClaims(context.Background(), &auth.Claims{UserID: testUser, TenantID: tenantID, Roles: roles})
}

func postRequest() *PostTransactionRequest {
	return &PostTransactionRequest{
		TenantID:        testTenant.String(),
		OfficeID:        testOffice.String(),
		TransactionID:   "S-1001",
		ProductType:     "SAVINGS",
		ProductID:       uuid.NewString(),
		Convention:      "CASH",
		TransactionType: "DEPOSIT",
		Amount:          "150.25",
		Currency:        "USD",
		FeePayments:     []*ChargePaymentMsg{{ChargeID: uuid.NewString(), Amount: "2.50"}},
		EntryDate:       "2024-03-01",
	}
}

func TestPostTransaction_MapsRequestAndResponse(t *testing.T) {
	var got dto.PostTransactionRequest
	batch := uuid.New()
	h := NewAccountingHandler(UseCases{
		PostTransaction: execFunc[dto.PostTransactionRequest, dto.PostTransactionResponse](
			func(_ context.Context, req dto.PostTransactionRequest) (dto.PostTransactionResponse, error) {
				got = req
				return dto.PostTransactionResponse{
					TransactionID: req.TransactionID,
					BatchID:       batch,
					Posted:        true,
					Entries: []dto.JournalEntryDTO{
						{ID: uuid.New(), BatchID: batch, EntryType: "DEBIT", Amount: decimal.RequireFromString("150.25"), EntryDate: req.EntryDate, Currency: "USD"},
						{ID: uuid.New(), BatchID: batch, EntryType: "CREDIT", Amount: decimal.RequireFromString("150.25"), EntryDate: req.EntryDate, Currency: "USD"},
					},
				}, nil
			}),
	})

	resp, err := h.PostTransaction(withClaims(testTenant, auth.RolePostingService), postRequest())
	require.NoError(t, err)

	assert.Equal(t, testTenant, got.TenantID)
	assert.Equal(t, testOffice, got.OfficeID)
	assert.Equal(t, testUser, got.CreatedBy)
	assert.True(t, decimal.RequireFromString("150.25").Equal(got.Amount))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got.EntryDate)
	require.Len(t, got.FeePayments, 1)
	assert.True(t, decimal.RequireFromString("2.5").Equal(got.FeePayments[0].Amount))

	assert.True(t, resp.Posted)
	assert.Equal(t, batch.String(), resp.BatchID)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "150.25", resp.Entries[0].Amount)
	assert.Equal(t, "2024-03-01", resp.Entries[1].EntryDate)
}

func TestPostTransaction_SkippedHasNoBatch(t *testing.T) {
	h := NewAccountingHandler(UseCases{
		PostTransaction: execFunc[dto.PostTransactionRequest, dto.PostTransactionResponse](
			func(_ context.Context, req dto.PostTransactionRequest) (dto.PostTransactionResponse, error) {
				return dto.PostTransactionResponse{TransactionID: req.TransactionID}, nil
			}),
	})

	resp, err := h.PostTransaction(context.Background(), postRequest())
	require.NoError(t, err)
	assert.False(t, resp.Posted)
	assert.Empty(t, resp.BatchID)
	assert.Empty(t, resp.Entries)
}

func TestPostTransaction_InvalidArguments(t *testing.T) {
	called := false
	h := NewAccountingHandler(UseCases{
		PostTransaction: execFunc[dto.PostTransactionRequest, dto.PostTransactionResponse](
			func(context.Context, dto.PostTransactionRequest) (dto.PostTransactionResponse, error) {
				called = true
				return dto.PostTransactionResponse{}, nil
			}),
	})

	tests := []struct {
		name   string
		mutate func(*PostTransactionRequest)
	}{
		{"missing tenant", func(r *PostTransactionRequest) { r.TenantID = "" }},
		{"malformed tenant", func(r *PostTransactionRequest) { r.TenantID = "tenant-1" }},
		{"malformed office", func(r *PostTransactionRequest) { r.OfficeID = "head-office" }},
		{"malformed amount", func(r *PostTransactionRequest) { r.Amount = "12,50" }},
		{"malformed entry date", func(r *PostTransactionRequest) { r.EntryDate = "01/03/2024" }},
		{"malformed fee amount", func(r *PostTransactionRequest) { r.FeePayments[0].Amount = "two" }},
		{"malformed portion", func(r *PostTransactionRequest) { r.Portions = &LoanPortionsMsg{Interest: "x"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postRequest()
			tt.mutate(req)
			_, err := h.PostTransaction(context.Background(), req)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
	assert.False(t, called)
}

func TestHandler_RejectsForeignTenant(t *testing.T) {
	h := NewAccountingHandler(UseCases{Queries: &mockQueries{}})

	_, err := h.GetEntriesByTransaction(withClaims(uuid.New()), &GetEntriesByTransactionRequest{
		TenantID:      testTenant.String(),
		TransactionID: "S-1001",
	})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestReverseTransaction_MapsAlreadyReversed(t *testing.T) {
	h := NewAccountingHandler(UseCases{
		ReverseTransaction: execFunc[dto.ReverseTransactionRequest, dto.ReverseTransactionResponse](
			func(_ context.Context, req dto.ReverseTransactionRequest) (dto.ReverseTransactionResponse, error) {
				return dto.ReverseTransactionResponse{}, fmt.Errorf("reverse %s: %w", req.TransactionID,
					&model.AlreadyReversedError{TransactionID: req.TransactionID, ReversalID: "R-1"})
			}),
	})

	_, err := h.ReverseTransaction(context.Background(), &ReverseTransactionRequest{
		TenantID:      testTenant.String(),
		TransactionID: "S-1001",
		ReversalDate:  "2024-03-02",
	})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "already reversed by R-1")
}

func TestGetLatestClosure(t *testing.T) {
	closure := dto.ClosureResponse{ID: uuid.New(), OfficeID: testOffice, ClosingDate: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)}
	found := false
	h := NewAccountingHandler(UseCases{
		GetLatestClosure: execFunc[dto.GetLatestClosureRequest, dto.GetLatestClosureResponse](
			func(_ context.Context, req dto.GetLatestClosureRequest) (dto.GetLatestClosureResponse, error) {
				assert.True(t, req.IncludeAncestors)
				if !found {
					return dto.GetLatestClosureResponse{}, nil
				}
				return dto.GetLatestClosureResponse{Found: true, Closure: closure}, nil
			}),
	})
	req := &GetLatestClosureRequest{TenantID: testTenant.String(), OfficeID: testOffice.String(), IncludeAncestors: true}

	resp, err := h.GetLatestClosure(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Closure)

	found = true
	resp, err = h.GetLatestClosure(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Closure)
	assert.Equal(t, "2024-02-29", resp.Closure.ClosingDate)
}

func TestListEntriesByOffice_PassesPageAndRange(t *testing.T) {
	var got dto.ListEntriesByOfficeRequest
	h := NewAccountingHandler(UseCases{Queries: &mockQueries{
		byOffice: func(_ context.Context, req dto.ListEntriesByOfficeRequest) (dto.JournalEntriesResponse, error) {
			got = req
			return dto.JournalEntriesResponse{Total: 120, Limit: 25, Offset: 50}, nil
		},
	}})

	resp, err := h.ListEntriesByOffice(context.Background(), &ListEntriesByOfficeRequest{
		TenantID:          testTenant.String(),
		OfficeID:          testOffice.String(),
		From:              "2024-01-01",
		To:                "2024-03-31",
		IncludeSubOffices: true,
		Limit:             25,
		Offset:            50,
	})
	require.NoError(t, err)
	assert.Equal(t, dto.PageRequest{Limit: 25, Offset: 50}, got.Page)
	assert.True(t, got.IncludeSubOffices)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), got.To)
	assert.Equal(t, int32(120), resp.Total)
	assert.NotNil(t, resp.Entries)
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"closed period", &model.ClosurePeriodViolationError{OfficeID: testOffice}, codes.FailedPrecondition},
		{"already reversed", &model.AlreadyReversedError{TransactionID: "T"}, codes.FailedPrecondition},
		{"missing mapping", fmt.Errorf("resolve: %w", &model.AccountMappingNotFoundError{}), codes.FailedPrecondition},
		{"reversal of reversal", model.ErrReversalNotReversible, codes.FailedPrecondition},
		{"disabled account", model.ErrGLAccountNotPostable, codes.FailedPrecondition},
		{"closure not monotonic", model.ErrClosureNotMonotonic, codes.FailedPrecondition},
		{"not found", fmt.Errorf("office: %w", model.ErrNotFound), codes.NotFound},
		{"duplicate posting", model.ErrTransactionAlreadyPosted, codes.AlreadyExists},
		{"duplicate code", model.ErrDuplicateGLCode, codes.AlreadyExists},
		{"invalid input", fmt.Errorf("%w: amount", model.ErrInvalidInput), codes.InvalidArgument},
		{"invalid role", model.ErrInvalidRole, codes.InvalidArgument},
		{"unbalanced", &model.UnbalancedEntryError{TransactionID: "T"}, codes.Internal},
		{"retries exhausted", &pgpkg.RetryExhaustedError{Attempts: 5, Err: errors.New("40001")}, codes.Unavailable},
		{"deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"status passes through", status.Error(codes.PermissionDenied, "no"), codes.PermissionDenied},
		{"unknown", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(toStatus(tt.err)))
		})
	}
	assert.NoError(t, toStatus(nil))
}

func TestToStatus_HidesUnknownErrors(t *testing.T) {
	err := toStatus(errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal error", status.Convert(err).Message())
}
