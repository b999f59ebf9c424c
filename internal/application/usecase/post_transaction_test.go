package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/event"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	vo "github.com/bibbank/bib/internal/domain/valueobject"
	"github.com/bibbank/bib/pkg/events"
	"github.com/bibbank/bib/pkg/postgres"
)

func TestPostTransaction_Deposit(t *testing.T) {
	h := newHarness(t)

	resp, err := h.post.Execute(context.Background(), savingsRequest(h, "D-1", vo.TxDeposit, "100.00"))
	require.NoError(t, err)

	assert.True(t, resp.Posted)
	assert.Equal(t, "D-1", resp.TransactionID)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, h.roles[vo.RoleSavingsReference], resp.Entries[0].GLAccountID)
	assert.Equal(t, "DEBIT", resp.Entries[0].EntryType)
	assert.Equal(t, h.roles[vo.RoleSavingsControl], resp.Entries[1].GLAccountID)
	assert.Equal(t, "CREDIT", resp.Entries[1].EntryType)
	for _, e := range resp.Entries {
		assert.Equal(t, resp.BatchID, e.BatchID)
		assert.Equal(t, h.branch.ID(), e.OfficeID)
		assertDecimal(t, "100", e.Amount)
	}

	assert.Len(t, h.ledger.snapshot(), 2)
	assert.Equal(t, []string{event.TypeJournalPosted}, h.ledger.eventTypes())
	assert.Equal(t, []string{port.OutcomePosted}, h.metrics.postings)
	assert.Equal(t, []lockCall{
		{h.branch.ID(), port.LockShare},
		{h.head.ID(), port.LockShare},
	}, h.ledger.locks)
}

func TestPostTransaction_OverdraftWithdrawalPostsTwoPairs(t *testing.T) {
	h := newHarness(t)
	req := savingsRequest(h, "W-OD", vo.TxWithdrawal, "2000")
	req.OverdraftAmount = dec("500")

	resp, err := h.post.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 4)

	assert.Equal(t, h.roles[vo.RoleOverdraftPortfolioControl], resp.Entries[0].GLAccountID)
	assertDecimal(t, "500", resp.Entries[0].Amount)
	assert.Equal(t, h.roles[vo.RoleSavingsControl], resp.Entries[2].GLAccountID)
	assertDecimal(t, "1500", resp.Entries[2].Amount)
	for _, e := range resp.Entries {
		assert.Equal(t, "W-OD", e.TransactionID)
	}
}

func TestPostTransaction_ConventionNoneSkips(t *testing.T) {
	h := newHarness(t)
	req := savingsRequest(h, "D-NONE", vo.TxDeposit, "100")
	req.Convention = string(vo.ConventionNone)

	resp, err := h.post.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Posted)
	assert.Empty(t, resp.Entries)
	assert.Empty(t, h.ledger.snapshot())
	assert.Zero(t, h.ledger.attempts)
	assert.Equal(t, []string{port.OutcomeSkipped}, h.metrics.postings)
}

func TestPostTransaction_DuplicateTransactionID(t *testing.T) {
	h := newHarness(t)
	req := savingsRequest(h, "D-DUP", vo.TxDeposit, "100")

	_, err := h.post.Execute(context.Background(), req)
	require.NoError(t, err)
	_, err = h.post.Execute(context.Background(), req)

	assert.ErrorIs(t, err, model.ErrTransactionAlreadyPosted)
	assert.Len(t, h.ledger.snapshot(), 2)
	assert.Equal(t, []string{port.OutcomePosted, port.OutcomeRejected}, h.metrics.postings)
}

func TestPostTransaction_ClosedPeriodRejected(t *testing.T) {
	h := newHarness(t)
	_, err := h.close.Execute(context.Background(), dto.CreateClosureRequest{
		TenantID:    tenantID,
		OfficeID:    h.head.ID(),
		ClosingDate: mar1,
	})
	require.NoError(t, err)

	_, err = h.post.Execute(context.Background(), savingsRequest(h, "D-CLOSED", vo.TxDeposit, "100"))
	var violation *model.ClosurePeriodViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, h.head.ID(), violation.ClosureOfficeID)
	assert.Empty(t, h.ledger.snapshot())

	req := savingsRequest(h, "D-OPEN", vo.TxDeposit, "100")
	req.EntryDate = mar1.AddDate(0, 0, 1)
	_, err = h.post.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestPostTransaction_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.PostTransactionRequest)
		want   error
	}{
		{"missing currency", func(r *dto.PostTransactionRequest) { r.Currency = "" }, model.ErrInvalidInput},
		{"unknown product type", func(r *dto.PostTransactionRequest) { r.ProductType = "CARD" }, model.ErrInvalidInput},
		{"unknown transaction type", func(r *dto.PostTransactionRequest) { r.TransactionType = "TELEPORT" }, model.ErrInvalidInput},
		{"missing entry date", func(r *dto.PostTransactionRequest) { r.EntryDate = time.Time{} }, model.ErrInvalidInput},
		{"negative amount", func(r *dto.PostTransactionRequest) { r.Amount = dec("-1") }, model.ErrInvalidInput},
		{"loan type on savings", func(r *dto.PostTransactionRequest) { r.TransactionType = "DISBURSEMENT" }, model.ErrUnsupportedTransaction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			req := savingsRequest(h, "D-BAD", vo.TxDeposit, "100")
			tt.mutate(&req)

			_, err := h.post.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, h.ledger.snapshot())
			assert.Equal(t, []string{port.OutcomeRejected}, h.metrics.postings)
		})
	}
}

func TestPostTransaction_MissingMapping(t *testing.T) {
	h := newHarness(t)
	req := savingsRequest(h, "E-1", vo.TxEscheat, "100")

	_, err := h.post.Execute(context.Background(), req)
	var notFound *model.AccountMappingNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, vo.RoleEscheatLiability, notFound.Role)
	assert.Zero(t, h.ledger.attempts)
}

func TestPostTransaction_StoreFailure(t *testing.T) {
	h := newHarness(t)
	cause := &postgres.RetryExhaustedError{Attempts: 3, Err: errors.New("could not serialize access")}
	h.ledger.withinFunc = func(ctx context.Context, fn func(ctx context.Context, tx port.LedgerTx) error) error {
		return cause
	}

	_, err := h.post.Execute(context.Background(), savingsRequest(h, "D-1", vo.TxDeposit, "100"))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{port.OutcomeFailed}, h.metrics.postings)
}

func TestPostTransaction_FailureInsideUnitOfWorkLeavesNoLegs(t *testing.T) {
	h := newHarness(t)
	h.ledger.withinFunc = func(ctx context.Context, fn func(ctx context.Context, tx port.LedgerTx) error) error {
		tx := &failingEventsTx{memTx: &memTx{l: h.ledger, marked: map[uuid.UUID]model.JournalEntry{}}}
		return fn(ctx, tx)
	}

	_, err := h.post.Execute(context.Background(), savingsRequest(h, "D-1", vo.TxDeposit, "100"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save events")
	assert.Empty(t, h.ledger.snapshot())
}

// failingEventsTx fails the outbox write after the legs were staged.
type failingEventsTx struct{ *memTx }

func (f *failingEventsTx) SaveEvents(context.Context, []events.DomainEvent) error {
	return errors.New("outbox unavailable")
}
