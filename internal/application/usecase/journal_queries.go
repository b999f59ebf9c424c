package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/valueobject"
)

// JournalQueries serves read-only journal lookups. Dates are posting dates.
type JournalQueries struct {
	reader port.JournalEntryReader
}

func NewJournalQueries(reader port.JournalEntryReader) *JournalQueries {
	return &JournalQueries{reader: reader}
}

// GetEntriesByTransaction returns the legs of a transaction in entry order.
// A transaction with no legs is ErrNotFound.
func (q *JournalQueries) GetEntriesByTransaction(ctx context.Context, req dto.GetEntriesByTransactionRequest) (dto.JournalEntriesResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.JournalEntriesResponse{}, err
	}
	page := toPage(req.Page)
	entries, total, err := q.reader.FindByTransactionID(ctx, req.TenantID, req.TransactionID, page)
	if err != nil {
		return dto.JournalEntriesResponse{}, fmt.Errorf("failed to get entries of %s: %w", req.TransactionID, err)
	}
	if total == 0 {
		return dto.JournalEntriesResponse{}, fmt.Errorf("%w: transaction %s", model.ErrNotFound, req.TransactionID)
	}
	return entriesResponse(entries, total, page), nil
}

func (q *JournalQueries) ListEntriesByOffice(ctx context.Context, req dto.ListEntriesByOfficeRequest) (dto.JournalEntriesResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.JournalEntriesResponse{}, err
	}
	rng, err := parseRange(req.From, req.To)
	if err != nil {
		return dto.JournalEntriesResponse{}, err
	}
	page := toPage(req.Page)
	entries, total, err := q.reader.ListByOffice(ctx, port.OfficeEntriesQuery{
		TenantID:          req.TenantID,
		OfficeID:          req.OfficeID,
		Range:             rng,
		IncludeSubOffices: req.IncludeSubOffices,
		Page:              page,
	})
	if err != nil {
		return dto.JournalEntriesResponse{}, fmt.Errorf("failed to list entries of office %s: %w", req.OfficeID, err)
	}
	return entriesResponse(entries, total, page), nil
}

func (q *JournalQueries) ListEntriesByGLAccount(ctx context.Context, req dto.ListEntriesByGLAccountRequest) (dto.JournalEntriesResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.JournalEntriesResponse{}, err
	}
	rng, err := parseRange(req.From, req.To)
	if err != nil {
		return dto.JournalEntriesResponse{}, err
	}
	page := toPage(req.Page)
	entries, total, err := q.reader.ListByGLAccount(ctx, port.GLAccountEntriesQuery{
		TenantID:    req.TenantID,
		GLAccountID: req.GLAccountID,
		Range:       rng,
		Page:        page,
	})
	if err != nil {
		return dto.JournalEntriesResponse{}, fmt.Errorf("failed to list entries of GL account %s: %w", req.GLAccountID, err)
	}
	return entriesResponse(entries, total, page), nil
}

func parseRange(from, to time.Time) (valueobject.DateRange, error) {
	rng, err := valueobject.NewDateRange(from, to)
	if err != nil {
		return valueobject.DateRange{}, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	return rng, nil
}

func entriesResponse(entries []model.JournalEntry, total int, page port.Page) dto.JournalEntriesResponse {
	return dto.JournalEntriesResponse{
		Entries: toJournalEntryDTOs(entries),
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}
}
