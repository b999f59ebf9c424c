package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	kafkapkg "github.com/bibbank/bib/pkg/kafka"
	"github.com/bibbank/bib/pkg/observability"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

// transactionPoster is implemented by usecase.PostTransaction.
type transactionPoster interface {
	Execute(ctx context.Context, req dto.PostTransactionRequest) (dto.PostTransactionResponse, error)
}

// PostingCommandHandler executes posting commands read from Kafka.
type PostingCommandHandler struct {
	post   transactionPoster
	logger *slog.Logger
}

func NewPostingCommandHandler(post transactionPoster, logger *slog.Logger) *PostingCommandHandler {
	return &PostingCommandHandler{post: post, logger: logger}
}

// Handle decodes one JSON PostTransactionRequest and posts it. Malformed and
// logically rejected commands are logged and committed; storage failures are
// marked retryable so the same message is delivered again.
func (h *PostingCommandHandler) Handle(ctx context.Context, msg kafkapkg.Message) error {
	var req dto.PostTransactionRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		h.logger.WarnContext(ctx, "discarding malformed posting command", "key", string(msg.Key), "error", err)
		return nil
	}

	logger := h.logger.With("tenant_id", req.TenantID, "transaction_id", req.TransactionID)
	ctx = observability.ContextWithLogger(ctx, logger)

	resp, err := h.post.Execute(ctx, req)
	switch {
	case err == nil:
		logger.DebugContext(ctx, "posting command applied", "posted", resp.Posted, "entries", len(resp.Entries))
		return nil
	case errors.Is(err, model.ErrTransactionAlreadyPosted):
		// Redelivery of a command that already committed.
		logger.InfoContext(ctx, "posting command already applied")
		return nil
	case model.IsLogical(err):
		return nil
	case isTransient(err):
		return kafkapkg.Retryable(err)
	default:
		return err
	}
}

func isTransient(err error) bool {
	var exhausted *pgpkg.RetryExhaustedError
	return errors.As(err, &exhausted) || pgpkg.IsTransient(err) ||
		errors.Is(err, context.DeadlineExceeded)
}
