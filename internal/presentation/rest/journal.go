package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/pkg/auth"
)

// JournalQuerier serves the read side of the journal.
type JournalQuerier interface {
	GetEntriesByTransaction(ctx context.Context, req dto.GetEntriesByTransactionRequest) (dto.JournalEntriesResponse, error)
	ListEntriesByOffice(ctx context.Context, req dto.ListEntriesByOfficeRequest) (dto.JournalEntriesResponse, error)
	ListEntriesByGLAccount(ctx context.Context, req dto.ListEntriesByGLAccountRequest) (dto.JournalEntriesResponse, error)
}

type entriesResponse struct {
	Entries []dto.JournalEntryDTO `json:"entries"`
	Total   int                   `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

func toEntriesResponse(r dto.JournalEntriesResponse) entriesResponse {
	entries := r.Entries
	if entries == nil {
		entries = []dto.JournalEntryDTO{}
	}
	return entriesResponse{Entries: entries, Total: r.Total, Limit: r.Limit, Offset: r.Offset}
}

// JournalHandler exposes journal queries over HTTP. The tenant is taken
// from the caller's token.
type JournalHandler struct {
	queries JournalQuerier
}

func NewJournalHandler(queries JournalQuerier) *JournalHandler {
	return &JournalHandler{queries: queries}
}

func (h *JournalHandler) byTransaction(w http.ResponseWriter, r *http.Request) {
	pg, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	txID := r.URL.Query().Get("transactionId")
	if txID == "" {
		writeError(w, http.StatusBadRequest, "transactionId is required")
		return
	}

	resp, err := h.queries.GetEntriesByTransaction(r.Context(), dto.GetEntriesByTransactionRequest{
		TenantID:      tenantOf(r),
		TransactionID: txID,
		Page:          pg,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntriesResponse(resp))
}

func (h *JournalHandler) byOffice(w http.ResponseWriter, r *http.Request) {
	officeID, err := uuid.Parse(chi.URLParam(r, "officeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid officeID")
		return
	}
	from, to, err := rangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pg, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	subOffices, err := boolParam(r, "includeSubOffices")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.queries.ListEntriesByOffice(r.Context(), dto.ListEntriesByOfficeRequest{
		TenantID:          tenantOf(r),
		OfficeID:          officeID,
		From:              from,
		To:                to,
		IncludeSubOffices: subOffices,
		Page:              pg,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntriesResponse(resp))
}

func (h *JournalHandler) byGLAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "glAccountID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid glAccountID")
		return
	}
	from, to, err := rangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pg, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.queries.ListEntriesByGLAccount(r.Context(), dto.ListEntriesByGLAccountRequest{
		TenantID:    tenantOf(r),
		GLAccountID: accountID,
		From:        from,
		To:          to,
		Page:        pg,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntriesResponse(resp))
}

func tenantOf(r *http.Request) uuid.UUID {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		return claims.TenantID
	}
	return uuid.Nil
}

func rangeParams(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	from, err := time.Parse(time.DateOnly, q.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from must be a YYYY-MM-DD date")
	}
	to, err := time.Parse(time.DateOnly, q.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to must be a YYYY-MM-DD date")
	}
	return from, to, nil
}

// boolParam reads an optional boolean query parameter; absent means false.
func boolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", name)
	}
	return v, nil
}

func pageParams(r *http.Request) (dto.PageRequest, error) {
	var pg dto.PageRequest
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return pg, errors.New("limit must be an integer")
		}
		pg.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return pg, errors.New("offset must be an integer")
		}
		pg.Offset = n
	}
	return pg, nil
}
