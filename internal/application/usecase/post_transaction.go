package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/service"
)

// PostTransaction turns a financial event into balanced journal entries.
type PostTransaction struct {
	store     port.LedgerStore
	builder   *service.EntryBuilder
	guard     *service.ClosureGuard
	validator *service.PostingValidator
	metrics   port.LedgerMetrics
	logger    *slog.Logger
}

func NewPostTransaction(
	store port.LedgerStore,
	builder *service.EntryBuilder,
	guard *service.ClosureGuard,
	validator *service.PostingValidator,
	metrics port.LedgerMetrics,
	logger *slog.Logger,
) *PostTransaction {
	return &PostTransaction{
		store:     store,
		builder:   builder,
		guard:     guard,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

func (uc *PostTransaction) Execute(ctx context.Context, req dto.PostTransactionRequest) (dto.PostTransactionResponse, error) {
	start := time.Now()
	resp, err := uc.execute(ctx, req)

	outcome := outcomeOf(err)
	if err == nil && !resp.Posted {
		outcome = port.OutcomeSkipped
	}
	uc.metrics.RecordPosting(ctx, outcome, time.Since(start))
	if err != nil {
		logFailure(ctx, uc.logger, "posting failed", err,
			"tenant_id", req.TenantID,
			"transaction_id", req.TransactionID,
			"office_id", req.OfficeID,
			"transaction_type", req.TransactionType,
		)
	}
	return resp, err
}

func (uc *PostTransaction) execute(ctx context.Context, req dto.PostTransactionRequest) (dto.PostTransactionResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.PostTransactionResponse{}, err
	}
	ev, err := toTransactionEvent(req)
	if err != nil {
		return dto.PostTransactionResponse{}, err
	}

	// Mapping resolution reads cached reference data and stays outside the
	// database transaction.
	pairs, err := uc.builder.Build(ctx, ev)
	if err != nil {
		return dto.PostTransactionResponse{}, fmt.Errorf("build entries for %s: %w", ev.TransactionID, err)
	}
	if len(pairs) == 0 {
		uc.logger.DebugContext(ctx, "no entries for transaction",
			"transaction_id", ev.TransactionID, "convention", ev.Convention, "transaction_type", ev.TransactionType)
		return dto.PostTransactionResponse{TransactionID: ev.TransactionID}, nil
	}
	if err := uc.validator.ValidatePostings(pairs); err != nil {
		return dto.PostTransactionResponse{}, fmt.Errorf("posting validation failed: %w", err)
	}

	header := model.JournalHeader{
		TenantID:        ev.TenantID,
		OfficeID:        ev.OfficeID,
		TransactionID:   ev.TransactionID,
		TransactionType: ev.TransactionType,
		ProductType:     ev.ProductType,
		ProductID:       ev.ProductID,
		Currency:        ev.Currency,
		EntryDate:       ev.EntryDate,
		BusinessDate:    ev.BusinessDate(),
		ReferenceNumber: ev.ReferenceNumber,
		Description:     ev.Description,
		CreatedBy:       ev.CreatedBy,
	}

	var posted model.JournalTransaction
	err = uc.store.WithinTransaction(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		if err := uc.guard.CheckPostable(ctx, tx, ev.TenantID, ev.OfficeID, ev.EntryDate); err != nil {
			return err
		}
		exists, err := tx.TransactionExists(ctx, ev.TenantID, ev.TransactionID)
		if err != nil {
			return fmt.Errorf("check transaction %s: %w", ev.TransactionID, err)
		}
		if exists {
			return fmt.Errorf("%w: %s", model.ErrTransactionAlreadyPosted, ev.TransactionID)
		}

		jt, err := model.NewJournalTransaction(header, pairs, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := uc.validator.ValidateEntries(jt.TransactionID(), jt.Entries()); err != nil {
			return err
		}
		if err := tx.SaveJournalTransaction(ctx, jt); err != nil {
			return fmt.Errorf("failed to save entries: %w", err)
		}
		if err := tx.SaveEvents(ctx, jt.DomainEvents()); err != nil {
			return fmt.Errorf("failed to save events: %w", err)
		}
		posted = jt
		return nil
	})
	if err != nil {
		return dto.PostTransactionResponse{}, err
	}

	return dto.PostTransactionResponse{
		TransactionID: posted.TransactionID(),
		BatchID:       posted.ID(),
		Posted:        true,
		Entries:       toJournalEntryDTOs(posted.Entries()),
	}, nil
}
