package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/service"
)

// ReverseTransaction compensates a posted transaction with opposite legs.
type ReverseTransaction struct {
	store   port.LedgerStore
	engine  *service.ReversalEngine
	metrics port.LedgerMetrics
	logger  *slog.Logger
}

func NewReverseTransaction(store port.LedgerStore, engine *service.ReversalEngine, metrics port.LedgerMetrics, logger *slog.Logger) *ReverseTransaction {
	return &ReverseTransaction{store: store, engine: engine, metrics: metrics, logger: logger}
}

func (uc *ReverseTransaction) Execute(ctx context.Context, req dto.ReverseTransactionRequest) (dto.ReverseTransactionResponse, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.RecordReversal(ctx, outcomeOf(err))
	if err != nil {
		logFailure(ctx, uc.logger, "reversal failed", err,
			"tenant_id", req.TenantID,
			"transaction_id", req.TransactionID,
		)
	}
	return resp, err
}

func (uc *ReverseTransaction) execute(ctx context.Context, req dto.ReverseTransactionRequest) (dto.ReverseTransactionResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.ReverseTransactionResponse{}, err
	}

	// The reversal id is fixed before the first attempt so a retried unit of
	// work writes the same transaction.
	reversalID := req.ReversalTransactionID
	if reversalID == "" {
		reversalID = service.NewReversalTransactionID(req.TransactionID)
	}

	var reversal model.JournalTransaction
	err := uc.store.WithinTransaction(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		jt, err := uc.engine.Reverse(ctx, tx, service.ReversalRequest{
			TenantID:              req.TenantID,
			TransactionID:         req.TransactionID,
			ReversalTransactionID: reversalID,
			ReversalDate:          req.ReversalDate,
			CreatedBy:             req.CreatedBy,
		}, time.Now().UTC())
		if err != nil {
			return err
		}
		reversal = jt
		return nil
	})
	if err != nil {
		return dto.ReverseTransactionResponse{}, err
	}

	return dto.ReverseTransactionResponse{
		TransactionID:         req.TransactionID,
		ReversalTransactionID: reversal.TransactionID(),
		BatchID:               reversal.ID(),
		Entries:               toJournalEntryDTOs(reversal.Entries()),
	}, nil
}
