package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/pkg/observability"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 1000
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks the struct tags of a request DTO.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", model.ErrInvalidInput, strings.Join(msgs, "; "))
}

// parseField converts one request field, tagging failures as invalid input.
func parseField[T any](name, value string, parse func(string) (T, error)) (T, error) {
	v, err := parse(value)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", model.ErrInvalidInput, name, err)
	}
	return v, nil
}

func toPage(p dto.PageRequest) port.Page {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return port.Page{Limit: limit, Offset: offset}
}

// outcomeOf classifies the result of a ledger operation for metrics.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return port.OutcomePosted
	case model.IsLogical(err):
		return port.OutcomeRejected
	default:
		return port.OutcomeFailed
	}
}

// logFailure logs logical failures at WARN and everything else, including
// unbalanced entries, at ERROR.
func logFailure(ctx context.Context, fallback *slog.Logger, msg string, err error, attrs ...any) {
	logger := observability.LoggerFromContext(ctx, fallback)
	attrs = append(attrs, "error", err)

	var unbalanced *model.UnbalancedEntryError
	switch {
	case errors.As(err, &unbalanced):
		logger.ErrorContext(ctx, msg, append(attrs,
			"currency", unbalanced.Currency,
			"debits", unbalanced.Debits.String(),
			"credits", unbalanced.Credits.String(),
		)...)
	case model.IsLogical(err):
		logger.WarnContext(ctx, msg, attrs...)
	default:
		logger.ErrorContext(ctx, msg, attrs...)
	}
}
