package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bibbank/bib/internal/domain/model"
	pgpkg "github.com/bibbank/bib/pkg/postgres"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// httpStatus maps an accounting error to an HTTP status code.
func httpStatus(err error) int {
	var (
		closure   *model.ClosurePeriodViolationError
		reversed  *model.AlreadyReversedError
		mapping   *model.AccountMappingNotFoundError
		exhausted *pgpkg.RetryExhaustedError
	)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidRole),
		errors.Is(err, model.ErrInvalidParent),
		errors.Is(err, model.ErrUnsupportedTransaction):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrTransactionAlreadyPosted),
		errors.Is(err, model.ErrDuplicateGLCode),
		errors.Is(err, model.ErrDuplicateMapping),
		errors.As(err, &reversed):
		return http.StatusConflict
	case errors.As(err, &closure), errors.As(err, &mapping),
		errors.Is(err, model.ErrReversalNotReversible),
		errors.Is(err, model.ErrGLAccountNotPostable),
		errors.Is(err, model.ErrClosureNotMonotonic),
		errors.Is(err, model.ErrClosureInFuture):
		return http.StatusUnprocessableEntity
	case errors.As(err, &exhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure writes err with its mapped status. Server errors are not
// echoed to the client.
func writeFailure(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		writeError(w, status, http.StatusText(status))
		return
	}
	writeError(w, status, err.Error())
}
