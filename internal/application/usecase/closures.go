package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/port"
	"github.com/bibbank/bib/internal/domain/service"
)

// CreateClosure freezes an office's books up to a closing date.
type CreateClosure struct {
	store  port.LedgerStore
	logger *slog.Logger
}

func NewCreateClosure(store port.LedgerStore, logger *slog.Logger) *CreateClosure {
	return &CreateClosure{store: store, logger: logger}
}

func (uc *CreateClosure) Execute(ctx context.Context, req dto.CreateClosureRequest) (dto.ClosureResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.ClosureResponse{}, err
	}

	var created model.AccountingClosure
	err := uc.store.WithinTransaction(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		// The exclusive lock waits for postings holding share locks on this
		// office and blocks new ones until commit.
		if _, err := tx.LockOffice(ctx, req.TenantID, req.OfficeID, port.LockExclusive); err != nil {
			return fmt.Errorf("lock office %s: %w", req.OfficeID, err)
		}
		latest, found, err := tx.LatestClosure(ctx, req.TenantID, req.OfficeID)
		if err != nil {
			return fmt.Errorf("latest closure of office %s: %w", req.OfficeID, err)
		}
		var prev *model.AccountingClosure
		if found {
			prev = &latest
		}

		c, err := model.NewAccountingClosure(req.TenantID, req.OfficeID, req.ClosingDate, prev, req.Comments, req.CreatedBy, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := tx.SaveClosure(ctx, c); err != nil {
			return fmt.Errorf("failed to save closure: %w", err)
		}
		if err := tx.SaveEvents(ctx, c.DomainEvents()); err != nil {
			return fmt.Errorf("failed to save events: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		logFailure(ctx, uc.logger, "closure failed", err, "tenant_id", req.TenantID, "office_id", req.OfficeID)
		return dto.ClosureResponse{}, err
	}

	uc.logger.InfoContext(ctx, "accounting closure created",
		"tenant_id", req.TenantID, "office_id", req.OfficeID, "closing_date", created.ClosingDate().Format(time.DateOnly))
	return toClosureResponse(created), nil
}

// repoClosureReader serves the closure guard from repositories without
// taking row locks.
type repoClosureReader struct {
	offices  port.OfficeRepository
	closures port.ClosureRepository
}

var _ service.ClosureReader = repoClosureReader{}

func (r repoClosureReader) LockOffice(ctx context.Context, tenantID, officeID uuid.UUID, _ port.LockMode) (model.Office, error) {
	return r.offices.FindByID(ctx, tenantID, officeID)
}

func (r repoClosureReader) LatestClosure(ctx context.Context, tenantID, officeID uuid.UUID) (model.AccountingClosure, bool, error) {
	return r.closures.LatestForOffice(ctx, tenantID, officeID)
}

// GetLatestClosure reports the closure in force for an office.
type GetLatestClosure struct {
	reader repoClosureReader
	guard  *service.ClosureGuard
}

func NewGetLatestClosure(offices port.OfficeRepository, closures port.ClosureRepository, guard *service.ClosureGuard) *GetLatestClosure {
	return &GetLatestClosure{reader: repoClosureReader{offices: offices, closures: closures}, guard: guard}
}

func (uc *GetLatestClosure) Execute(ctx context.Context, req dto.GetLatestClosureRequest) (dto.GetLatestClosureResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.GetLatestClosureResponse{}, err
	}

	var (
		c     model.AccountingClosure
		found bool
		err   error
	)
	if req.IncludeAncestors {
		c, found, err = uc.guard.LatestCovering(ctx, uc.reader, req.TenantID, req.OfficeID)
	} else {
		if _, err = uc.reader.offices.FindByID(ctx, req.TenantID, req.OfficeID); err == nil {
			c, found, err = uc.reader.LatestClosure(ctx, req.TenantID, req.OfficeID)
		}
	}
	if err != nil {
		return dto.GetLatestClosureResponse{}, fmt.Errorf("failed to get latest closure: %w", err)
	}
	if !found {
		return dto.GetLatestClosureResponse{}, nil
	}
	return dto.GetLatestClosureResponse{Found: true, Closure: toClosureResponse(c)}, nil
}

// ListClosures lists an office's closures, latest first.
type ListClosures struct {
	closures port.ClosureRepository
}

func NewListClosures(closures port.ClosureRepository) *ListClosures {
	return &ListClosures{closures: closures}
}

func (uc *ListClosures) Execute(ctx context.Context, req dto.ListClosuresRequest) (dto.ListClosuresResponse, error) {
	if err := validateRequest(req); err != nil {
		return dto.ListClosuresResponse{}, err
	}
	list, err := uc.closures.ListByOffice(ctx, req.TenantID, req.OfficeID)
	if err != nil {
		return dto.ListClosuresResponse{}, fmt.Errorf("failed to list closures: %w", err)
	}
	resp := dto.ListClosuresResponse{Closures: make([]dto.ClosureResponse, 0, len(list))}
	for _, c := range list {
		resp.Closures = append(resp.Closures, toClosureResponse(c))
	}
	return resp, nil
}
