package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/bib/internal/domain/model"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

// toStatus maps a use case error onto a gRPC status. Errors that already
// carry a status pass through unchanged.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var (
		closure   *model.ClosurePeriodViolationError
		reversed  *model.AlreadyReversedError
		mapping   *model.AccountMappingNotFoundError
		unbalance *model.UnbalancedEntryError
		exhausted *pgpkg.RetryExhaustedError
	)
	switch {
	case errors.As(err, &unbalance):
		return status.Error(codes.Internal, err.Error())
	case errors.As(err, &closure), errors.As(err, &reversed), errors.As(err, &mapping),
		errors.Is(err, model.ErrReversalNotReversible),
		errors.Is(err, model.ErrGLAccountNotPostable),
		errors.Is(err, model.ErrClosureNotMonotonic),
		errors.Is(err, model.ErrClosureInFuture):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrTransactionAlreadyPosted),
		errors.Is(err, model.ErrDuplicateGLCode),
		errors.Is(err, model.ErrDuplicateMapping):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidRole),
		errors.Is(err, model.ErrInvalidParent),
		errors.Is(err, model.ErrUnsupportedTransaction):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &exhausted):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
