package grpc

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/pkg/auth"
)

// Executor is the shape shared by the accounting use cases.
type Executor[Req, Resp any] interface {
	Execute(ctx context.Context, req Req) (Resp, error)
}

// JournalQuerier serves the read side of the journal.
type JournalQuerier interface {
	GetEntriesByTransaction(ctx context.Context, req dto.GetEntriesByTransactionRequest) (dto.JournalEntriesResponse, error)
	ListEntriesByOffice(ctx context.Context, req dto.ListEntriesByOfficeRequest) (dto.JournalEntriesResponse, error)
	ListEntriesByGLAccount(ctx context.Context, req dto.ListEntriesByGLAccountRequest) (dto.JournalEntriesResponse, error)
}

// UseCases lists what AccountingHandler delegates to.
type UseCases struct {
	PostTransaction      Executor[dto.PostTransactionRequest, dto.PostTransactionResponse]
	ReverseTransaction   Executor[dto.ReverseTransactionRequest, dto.ReverseTransactionResponse]
	CreateClosure        Executor[dto.CreateClosureRequest, dto.ClosureResponse]
	GetLatestClosure     Executor[dto.GetLatestClosureRequest, dto.GetLatestClosureResponse]
	ListClosures         Executor[dto.ListClosuresRequest, dto.ListClosuresResponse]
	CreateGLAccount      Executor[dto.CreateGLAccountRequest, dto.GLAccountResponse]
	GetGLAccount         Executor[dto.GLAccountRequest, dto.GLAccountResponse]
	DisableGLAccount     Executor[dto.GLAccountRequest, dto.GLAccountResponse]
	EnableGLAccount      Executor[dto.GLAccountRequest, dto.GLAccountResponse]
	ListGLAccounts       Executor[dto.ListGLAccountsRequest, dto.ListGLAccountsResponse]
	CreateAccountMapping Executor[dto.CreateAccountMappingRequest, dto.AccountMappingResponse]
	CreateOffice         Executor[dto.CreateOfficeRequest, dto.OfficeResponse]
	Queries              JournalQuerier
}

// AccountingHandler implements the gRPC AccountingService server.
type AccountingHandler struct {
	UnimplementedAccountingServiceServer
	uc UseCases
}

var _ AccountingServiceServer = (*AccountingHandler)(nil)

func NewAccountingHandler(uc UseCases) *AccountingHandler {
	return &AccountingHandler{uc: uc}
}

// tenant parses the tenant id of a request and checks it against the
// caller's token.
func tenant(ctx context.Context, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, status.Error(codes.InvalidArgument, "tenant_id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid tenant_id: %v", err)
	}
	if err := auth.AuthorizeTenant(ctx, id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// caller returns the user id from the token, or uuid.Nil for calls without one.
func caller(ctx context.Context) uuid.UUID {
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		return claims.UserID
	}
	return uuid.Nil
}

func (h *AccountingHandler) PostTransaction(ctx context.Context, req *PostTransactionRequest) (*PostTransactionResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	in, err := toPostTransactionDTO(req)
	if err != nil {
		return nil, err
	}
	in.TenantID = tenantID
	in.CreatedBy = caller(ctx)

	result, err := h.uc.PostTransaction.Execute(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &PostTransactionResponse{
		TransactionID: result.TransactionID,
		Posted:        result.Posted,
		Entries:       toJournalEntryMsgs(result.Entries),
	}
	if result.Posted {
		resp.BatchID = result.BatchID.String()
	}
	return resp, nil
}

func (h *AccountingHandler) ReverseTransaction(ctx context.Context, req *ReverseTransactionRequest) (*ReverseTransactionResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	reversalDate, err := optionalDate("reversal_date", req.ReversalDate)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.ReverseTransaction.Execute(ctx, dto.ReverseTransactionRequest{
		TenantID:              tenantID,
		TransactionID:         req.TransactionID,
		ReversalTransactionID: req.ReversalTransactionID,
		ReversalDate:          reversalDate,
		CreatedBy:             caller(ctx),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ReverseTransactionResponse{
		TransactionID:         result.TransactionID,
		ReversalTransactionID: result.ReversalTransactionID,
		BatchID:               result.BatchID.String(),
		Entries:               toJournalEntryMsgs(result.Entries),
	}, nil
}

func (h *AccountingHandler) CreateClosure(ctx context.Context, req *CreateClosureRequest) (*CreateClosureResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	officeID, err := optionalUUID("office_id", req.OfficeID)
	if err != nil {
		return nil, err
	}
	closingDate, err := optionalDate("closing_date", req.ClosingDate)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.CreateClosure.Execute(ctx, dto.CreateClosureRequest{
		TenantID:    tenantID,
		OfficeID:    officeID,
		ClosingDate: closingDate,
		Comments:    req.Comments,
		CreatedBy:   caller(ctx),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &CreateClosureResponse{Closure: toClosureMsg(result)}, nil
}

func (h *AccountingHandler) GetLatestClosure(ctx context.Context, req *GetLatestClosureRequest) (*GetLatestClosureResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	officeID, err := optionalUUID("office_id", req.OfficeID)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.GetLatestClosure.Execute(ctx, dto.GetLatestClosureRequest{
		TenantID:         tenantID,
		OfficeID:         officeID,
		IncludeAncestors: req.IncludeAncestors,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &GetLatestClosureResponse{Found: result.Found}
	if result.Found {
		resp.Closure = toClosureMsg(result.Closure)
	}
	return resp, nil
}

func (h *AccountingHandler) ListClosures(ctx context.Context, req *ListClosuresRequest) (*ListClosuresResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	officeID, err := optionalUUID("office_id", req.OfficeID)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.ListClosures.Execute(ctx, dto.ListClosuresRequest{TenantID: tenantID, OfficeID: officeID})
	if err != nil {
		return nil, toStatus(err)
	}
	closures := make([]*ClosureMsg, 0, len(result.Closures))
	for _, c := range result.Closures {
		closures = append(closures, toClosureMsg(c))
	}
	return &ListClosuresResponse{Closures: closures}, nil
}

func (h *AccountingHandler) CreateGLAccount(ctx context.Context, req *CreateGLAccountRequest) (*GLAccountResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	parentID, err := optionalUUID("parent_id", req.ParentID)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.CreateGLAccount.Execute(ctx, dto.CreateGLAccountRequest{
		TenantID:    tenantID,
		Name:        req.Name,
		GLCode:      req.GLCode,
		Type:        req.Type,
		Usage:       req.Usage,
		ParentID:    parentID,
		Description: req.Description,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &GLAccountResponse{Account: toGLAccountMsg(result)}, nil
}

func (h *AccountingHandler) GetGLAccount(ctx context.Context, req *GLAccountRequest) (*GLAccountResponse, error) {
	return h.glAccount(ctx, req, h.uc.GetGLAccount)
}

func (h *AccountingHandler) DisableGLAccount(ctx context.Context, req *GLAccountRequest) (*GLAccountResponse, error) {
	return h.glAccount(ctx, req, h.uc.DisableGLAccount)
}

func (h *AccountingHandler) EnableGLAccount(ctx context.Context, req *GLAccountRequest) (*GLAccountResponse, error) {
	return h.glAccount(ctx, req, h.uc.EnableGLAccount)
}

func (h *AccountingHandler) glAccount(
	ctx context.Context,
	req *GLAccountRequest,
	uc Executor[dto.GLAccountRequest, dto.GLAccountResponse],
) (*GLAccountResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	accountID, err := optionalUUID("gl_account_id", req.GLAccountID)
	if err != nil {
		return nil, err
	}

	result, err := uc.Execute(ctx, dto.GLAccountRequest{TenantID: tenantID, GLAccountID: accountID})
	if err != nil {
		return nil, toStatus(err)
	}
	return &GLAccountResponse{Account: toGLAccountMsg(result)}, nil
}

func (h *AccountingHandler) ListGLAccounts(ctx context.Context, req *ListGLAccountsRequest) (*ListGLAccountsResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.ListGLAccounts.Execute(ctx, dto.ListGLAccountsRequest{
		TenantID:        tenantID,
		Type:            req.Type,
		Usage:           req.Usage,
		IncludeDisabled: req.IncludeDisabled,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	accounts := make([]*GLAccountMsg, 0, len(result.Accounts))
	for _, a := range result.Accounts {
		accounts = append(accounts, toGLAccountMsg(a))
	}
	return &ListGLAccountsResponse{Accounts: accounts}, nil
}

func (h *AccountingHandler) CreateAccountMapping(ctx context.Context, req *CreateAccountMappingRequest) (*CreateAccountMappingResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	in := dto.CreateAccountMappingRequest{
		TenantID:    tenantID,
		ProductType: req.ProductType,
		Role:        req.Role,
	}
	if in.ProductID, err = optionalUUID("product_id", req.ProductID); err != nil {
		return nil, err
	}
	if in.GLAccountID, err = optionalUUID("gl_account_id", req.GLAccountID); err != nil {
		return nil, err
	}
	if in.PaymentTypeID, err = optionalUUID("payment_type_id", req.PaymentTypeID); err != nil {
		return nil, err
	}
	if in.ChargeID, err = optionalUUID("charge_id", req.ChargeID); err != nil {
		return nil, err
	}

	result, err := h.uc.CreateAccountMapping.Execute(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CreateAccountMappingResponse{Mapping: toAccountMappingMsg(result)}, nil
}

func (h *AccountingHandler) CreateOffice(ctx context.Context, req *CreateOfficeRequest) (*CreateOfficeResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	parentID, err := optionalUUID("parent_id", req.ParentID)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.CreateOffice.Execute(ctx, dto.CreateOfficeRequest{TenantID: tenantID, Name: req.Name, ParentID: parentID})
	if err != nil {
		return nil, toStatus(err)
	}
	return &CreateOfficeResponse{Office: toOfficeMsg(result)}, nil
}

func (h *AccountingHandler) GetEntriesByTransaction(ctx context.Context, req *GetEntriesByTransactionRequest) (*JournalEntriesResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Queries.GetEntriesByTransaction(ctx, dto.GetEntriesByTransactionRequest{
		TenantID:      tenantID,
		TransactionID: req.TransactionID,
		Page:          page(req.Limit, req.Offset),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toJournalEntriesResponse(result), nil
}

func (h *AccountingHandler) ListEntriesByOffice(ctx context.Context, req *ListEntriesByOfficeRequest) (*JournalEntriesResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	in := dto.ListEntriesByOfficeRequest{
		TenantID:          tenantID,
		IncludeSubOffices: req.IncludeSubOffices,
		Page:              page(req.Limit, req.Offset),
	}
	if in.OfficeID, err = optionalUUID("office_id", req.OfficeID); err != nil {
		return nil, err
	}
	if in.From, err = optionalDate("from", req.From); err != nil {
		return nil, err
	}
	if in.To, err = optionalDate("to", req.To); err != nil {
		return nil, err
	}

	result, err := h.uc.Queries.ListEntriesByOffice(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}
	return toJournalEntriesResponse(result), nil
}

func (h *AccountingHandler) ListEntriesByGLAccount(ctx context.Context, req *ListEntriesByGLAccountRequest) (*JournalEntriesResponse, error) {
	tenantID, err := tenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	in := dto.ListEntriesByGLAccountRequest{
		TenantID: tenantID,
		Page:     page(req.Limit, req.Offset),
	}
	if in.GLAccountID, err = optionalUUID("gl_account_id", req.GLAccountID); err != nil {
		return nil, err
	}
	if in.From, err = optionalDate("from", req.From); err != nil {
		return nil, err
	}
	if in.To, err = optionalDate("to", req.To); err != nil {
		return nil, err
	}

	result, err := h.uc.Queries.ListEntriesByGLAccount(ctx, in)
	if err != nil {
		return nil, toStatus(err)
	}
	return toJournalEntriesResponse(result), nil
}
