package grpc

// proto.go defines the gRPC server interface for bib/accounting/v1/accounting.proto.
// Messages travel with the JSON codec registered in json_codec.go, so the
// types below are plain structs rather than buf-generated code.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	AccountingService_PostTransaction_FullMethodName         = "/bib.accounting.v1.AccountingService/PostTransaction"
	AccountingService_ReverseTransaction_FullMethodName      = "/bib.accounting.v1.AccountingService/ReverseTransaction"
	AccountingService_CreateClosure_FullMethodName           = "/bib.accounting.v1.AccountingService/CreateClosure"
	AccountingService_GetLatestClosure_FullMethodName        = "/bib.accounting.v1.AccountingService/GetLatestClosure"
	AccountingService_ListClosures_FullMethodName            = "/bib.accounting.v1.AccountingService/ListClosures"
	AccountingService_CreateGLAccount_FullMethodName         = "/bib.accounting.v1.AccountingService/CreateGLAccount"
	AccountingService_GetGLAccount_FullMethodName            = "/bib.accounting.v1.AccountingService/GetGLAccount"
	AccountingService_DisableGLAccount_FullMethodName        = "/bib.accounting.v1.AccountingService/DisableGLAccount"
	AccountingService_EnableGLAccount_FullMethodName         = "/bib.accounting.v1.AccountingService/EnableGLAccount"
	AccountingService_ListGLAccounts_FullMethodName          = "/bib.accounting.v1.AccountingService/ListGLAccounts"
	AccountingService_CreateAccountMapping_FullMethodName    = "/bib.accounting.v1.AccountingService/CreateAccountMapping"
	AccountingService_CreateOffice_FullMethodName            = "/bib.accounting.v1.AccountingService/CreateOffice"
	AccountingService_GetEntriesByTransaction_FullMethodName = "/bib.accounting.v1.AccountingService/GetEntriesByTransaction"
	AccountingService_ListEntriesByOffice_FullMethodName     = "/bib.accounting.v1.AccountingService/ListEntriesByOffice"
	AccountingService_ListEntriesByGLAccount_FullMethodName  = "/bib.accounting.v1.AccountingService/ListEntriesByGLAccount"
)

// Amounts are decimal strings and dates use the YYYY-MM-DD layout.

type ChargePaymentMsg struct {
	ChargeID string `json:"charge_id"`
	Amount   string `json:"amount"`
}

type TaxPaymentMsg struct {
	TaxComponentID    string `json:"tax_component_id"`
	Amount            string `json:"amount"`
	CreditGLAccountID string `json:"credit_gl_account_id,omitempty"`
}

type LoanPortionsMsg struct {
	Principal   string `json:"principal,omitempty"`
	Interest    string `json:"interest,omitempty"`
	Fees        string `json:"fees,omitempty"`
	Penalties   string `json:"penalties,omitempty"`
	Overpayment string `json:"overpayment,omitempty"`
}

type PostTransactionRequest struct {
	TenantID          string              `json:"tenant_id"`
	OfficeID          string              `json:"office_id"`
	TransactionID     string              `json:"transaction_id"`
	ProductType       string              `json:"product_type"`
	ProductID         string              `json:"product_id"`
	Convention        string              `json:"convention"`
	TransactionType   string              `json:"transaction_type"`
	Amount            string              `json:"amount"`
	OverdraftAmount   string              `json:"overdraft_amount,omitempty"`
	Currency          string              `json:"currency"`
	PaymentTypeID     string              `json:"payment_type_id,omitempty"`
	IsReversal        bool                `json:"is_reversal,omitempty"`
	IsAccountTransfer bool                `json:"is_account_transfer,omitempty"`
	FeePayments       []*ChargePaymentMsg `json:"fee_payments,omitempty"`
	PenaltyPayments   []*ChargePaymentMsg `json:"penalty_payments,omitempty"`
	TaxPayments       []*TaxPaymentMsg    `json:"tax_payments,omitempty"`
	Portions          *LoanPortionsMsg    `json:"portions,omitempty"`
	TransactionDate   string              `json:"transaction_date,omitempty"`
	EntryDate         string              `json:"entry_date"`
	ReferenceNumber   string              `json:"reference_number,omitempty"`
	Description       string              `json:"description,omitempty"`
}

type JournalEntryMsg struct {
	ID              string                 `json:"id"`
	BatchID         string                 `json:"batch_id"`
	OfficeID        string                 `json:"office_id"`
	GLAccountID     string                 `json:"gl_account_id"`
	TransactionID   string                 `json:"transaction_id"`
	EntrySeq        int32                  `json:"entry_seq"`
	PairSeq         int32                  `json:"pair_seq"`
	EntryType       string                 `json:"entry_type"`
	Amount          string                 `json:"amount"`
	Currency        string                 `json:"currency"`
	EntryDate       string                 `json:"entry_date"`
	BusinessDate    string                 `json:"business_date"`
	TransactionType string                 `json:"transaction_type"`
	ProductType     string                 `json:"product_type"`
	ProductID       string                 `json:"product_id"`
	ReferenceNumber string                 `json:"reference_number,omitempty"`
	Description     string                 `json:"description,omitempty"`
	Reversed        bool                   `json:"reversed"`
	ReversalID      string                 `json:"reversal_id,omitempty"`
	ReversalOf      string                 `json:"reversal_of,omitempty"`
	CreatedBy       string                 `json:"created_by,omitempty"`
	CreatedAt       *timestamppb.Timestamp `json:"created_at"`
}

type PostTransactionResponse struct {
	TransactionID string             `json:"transaction_id"`
	BatchID       string             `json:"batch_id,omitempty"`
	Posted        bool               `json:"posted"`
	Entries       []*JournalEntryMsg `json:"entries"`
}

type ReverseTransactionRequest struct {
	TenantID              string `json:"tenant_id"`
	TransactionID         string `json:"transaction_id"`
	ReversalTransactionID string `json:"reversal_transaction_id,omitempty"`
	ReversalDate          string `json:"reversal_date"`
}

type ReverseTransactionResponse struct {
	TransactionID         string             `json:"transaction_id"`
	ReversalTransactionID string             `json:"reversal_transaction_id"`
	BatchID               string             `json:"batch_id"`
	Entries               []*JournalEntryMsg `json:"entries"`
}

type ClosureMsg struct {
	ID          string                 `json:"id"`
	OfficeID    string                 `json:"office_id"`
	ClosingDate string                 `json:"closing_date"`
	Comments    string                 `json:"comments,omitempty"`
	CreatedBy   string                 `json:"created_by,omitempty"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at"`
}

type CreateClosureRequest struct {
	TenantID    string `json:"tenant_id"`
	OfficeID    string `json:"office_id"`
	ClosingDate string `json:"closing_date"`
	Comments    string `json:"comments,omitempty"`
}

type CreateClosureResponse struct {
	Closure *ClosureMsg `json:"closure"`
}

type GetLatestClosureRequest struct {
	TenantID         string `json:"tenant_id"`
	OfficeID         string `json:"office_id"`
	IncludeAncestors bool   `json:"include_ancestors,omitempty"`
}

type GetLatestClosureResponse struct {
	Found   bool        `json:"found"`
	Closure *ClosureMsg `json:"closure,omitempty"`
}

type ListClosuresRequest struct {
	TenantID string `json:"tenant_id"`
	OfficeID string `json:"office_id"`
}

type ListClosuresResponse struct {
	Closures []*ClosureMsg `json:"closures"`
}

type GLAccountMsg struct {
	ID          string                 `json:"id"`
	ParentID    string                 `json:"parent_id,omitempty"`
	Name        string                 `json:"name"`
	GLCode      string                 `json:"gl_code"`
	Type        string                 `json:"type"`
	Usage       string                 `json:"usage"`
	Disabled    bool                   `json:"disabled"`
	Description string                 `json:"description,omitempty"`
	Version     int32                  `json:"version"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at"`
	UpdatedAt   *timestamppb.Timestamp `json:"updated_at"`
}

type CreateGLAccountRequest struct {
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	GLCode      string `json:"gl_code"`
	Type        string `json:"type"`
	Usage       string `json:"usage"`
	ParentID    string `json:"parent_id,omitempty"`
	Description string `json:"description,omitempty"`
}

type GLAccountRequest struct {
	TenantID    string `json:"tenant_id"`
	GLAccountID string `json:"gl_account_id"`
}

type GLAccountResponse struct {
	Account *GLAccountMsg `json:"account"`
}

type ListGLAccountsRequest struct {
	TenantID        string `json:"tenant_id"`
	Type            string `json:"type,omitempty"`
	Usage           string `json:"usage,omitempty"`
	IncludeDisabled bool   `json:"include_disabled,omitempty"`
}

type ListGLAccountsResponse struct {
	Accounts []*GLAccountMsg `json:"accounts"`
}

type CreateAccountMappingRequest struct {
	TenantID      string `json:"tenant_id"`
	ProductType   string `json:"product_type"`
	ProductID     string `json:"product_id,omitempty"`
	Role          string `json:"role"`
	GLAccountID   string `json:"gl_account_id"`
	PaymentTypeID string `json:"payment_type_id,omitempty"`
	ChargeID      string `json:"charge_id,omitempty"`
}

type AccountMappingMsg struct {
	ID            string                 `json:"id"`
	ProductType   string                 `json:"product_type"`
	ProductID     string                 `json:"product_id,omitempty"`
	Role          string                 `json:"role"`
	GLAccountID   string                 `json:"gl_account_id"`
	PaymentTypeID string                 `json:"payment_type_id,omitempty"`
	ChargeID      string                 `json:"charge_id,omitempty"`
	CreatedAt     *timestamppb.Timestamp `json:"created_at"`
}

type CreateAccountMappingResponse struct {
	Mapping *AccountMappingMsg `json:"mapping"`
}

type CreateOfficeRequest struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

type OfficeMsg struct {
	ID        string                 `json:"id"`
	ParentID  string                 `json:"parent_id,omitempty"`
	Name      string                 `json:"name"`
	Hierarchy string                 `json:"hierarchy"`
	CreatedAt *timestamppb.Timestamp `json:"created_at"`
}

type CreateOfficeResponse struct {
	Office *OfficeMsg `json:"office"`
}

type GetEntriesByTransactionRequest struct {
	TenantID      string `json:"tenant_id"`
	TransactionID string `json:"transaction_id"`
	Limit         int32  `json:"limit,omitempty"`
	Offset        int32  `json:"offset,omitempty"`
}

type ListEntriesByOfficeRequest struct {
	TenantID          string `json:"tenant_id"`
	OfficeID          string `json:"office_id"`
	From              string `json:"from"`
	To                string `json:"to"`
	IncludeSubOffices bool   `json:"include_sub_offices,omitempty"`
	Limit             int32  `json:"limit,omitempty"`
	Offset            int32  `json:"offset,omitempty"`
}

type ListEntriesByGLAccountRequest struct {
	TenantID    string `json:"tenant_id"`
	GLAccountID string `json:"gl_account_id"`
	From        string `json:"from"`
	To          string `json:"to"`
	Limit       int32  `json:"limit,omitempty"`
	Offset      int32  `json:"offset,omitempty"`
}

type JournalEntriesResponse struct {
	Entries []*JournalEntryMsg `json:"entries"`
	Total   int32              `json:"total"`
	Limit   int32              `json:"limit"`
	Offset  int32              `json:"offset"`
}

// AccountingServiceServer is the server API for bib.accounting.v1.AccountingService.
type AccountingServiceServer interface {
	PostTransaction(context.Context, *PostTransactionRequest) (*PostTransactionResponse, error)
	ReverseTransaction(context.Context, *ReverseTransactionRequest) (*ReverseTransactionResponse, error)
	CreateClosure(context.Context, *CreateClosureRequest) (*CreateClosureResponse, error)
	GetLatestClosure(context.Context, *GetLatestClosureRequest) (*GetLatestClosureResponse, error)
	ListClosures(context.Context, *ListClosuresRequest) (*ListClosuresResponse, error)
	CreateGLAccount(context.Context, *CreateGLAccountRequest) (*GLAccountResponse, error)
	GetGLAccount(context.Context, *GLAccountRequest) (*GLAccountResponse, error)
	DisableGLAccount(context.Context, *GLAccountRequest) (*GLAccountResponse, error)
	EnableGLAccount(context.Context, *GLAccountRequest) (*GLAccountResponse, error)
	ListGLAccounts(context.Context, *ListGLAccountsRequest) (*ListGLAccountsResponse, error)
	CreateAccountMapping(context.Context, *CreateAccountMappingRequest) (*CreateAccountMappingResponse, error)
	CreateOffice(context.Context, *CreateOfficeRequest) (*CreateOfficeResponse, error)
	GetEntriesByTransaction(context.Context, *GetEntriesByTransactionRequest) (*JournalEntriesResponse, error)
	ListEntriesByOffice(context.Context, *ListEntriesByOfficeRequest) (*JournalEntriesResponse, error)
	ListEntriesByGLAccount(context.Context, *ListEntriesByGLAccountRequest) (*JournalEntriesResponse, error)
	mustEmbedUnimplementedAccountingServiceServer()
}

// UnimplementedAccountingServiceServer provides forward-compatible default implementations.
type UnimplementedAccountingServiceServer struct{}

func (UnimplementedAccountingServiceServer) PostTransaction(context.Context, *PostTransactionRequest) (*PostTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PostTransaction not implemented")
}
func (UnimplementedAccountingServiceServer) ReverseTransaction(context.Context, *ReverseTransactionRequest) (*ReverseTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReverseTransaction not implemented")
}
func (UnimplementedAccountingServiceServer) CreateClosure(context.Context, *CreateClosureRequest) (*CreateClosureResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateClosure not implemented")
}
func (UnimplementedAccountingServiceServer) GetLatestClosure(context.Context, *GetLatestClosureRequest) (*GetLatestClosureResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLatestClosure not implemented")
}
func (UnimplementedAccountingServiceServer) ListClosures(context.Context, *ListClosuresRequest) (*ListClosuresResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListClosures not implemented")
}
func (UnimplementedAccountingServiceServer) CreateGLAccount(context.Context, *CreateGLAccountRequest) (*GLAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateGLAccount not implemented")
}
func (UnimplementedAccountingServiceServer) GetGLAccount(context.Context, *GLAccountRequest) (*GLAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetGLAccount not implemented")
}
func (UnimplementedAccountingServiceServer) DisableGLAccount(context.Context, *GLAccountRequest) (*GLAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DisableGLAccount not implemented")
}
func (UnimplementedAccountingServiceServer) EnableGLAccount(context.Context, *GLAccountRequest) (*GLAccountResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EnableGLAccount not implemented")
}
func (UnimplementedAccountingServiceServer) ListGLAccounts(context.Context, *ListGLAccountsRequest) (*ListGLAccountsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListGLAccounts not implemented")
}
func (UnimplementedAccountingServiceServer) CreateAccountMapping(context.Context, *CreateAccountMappingRequest) (*CreateAccountMappingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateAccountMapping not implemented")
}
func (UnimplementedAccountingServiceServer) CreateOffice(context.Context, *CreateOfficeRequest) (*CreateOfficeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateOffice not implemented")
}
func (UnimplementedAccountingServiceServer) GetEntriesByTransaction(context.Context, *GetEntriesByTransactionRequest) (*JournalEntriesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetEntriesByTransaction not implemented")
}
func (UnimplementedAccountingServiceServer) ListEntriesByOffice(context.Context, *ListEntriesByOfficeRequest) (*JournalEntriesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListEntriesByOffice not implemented")
}
func (UnimplementedAccountingServiceServer) ListEntriesByGLAccount(context.Context, *ListEntriesByGLAccountRequest) (*JournalEntriesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListEntriesByGLAccount not implemented")
}
func (UnimplementedAccountingServiceServer) mustEmbedUnimplementedAccountingServiceServer() {}

// RegisterAccountingServiceServer registers the AccountingServiceServer with the gRPC server.
func RegisterAccountingServiceServer(s *grpclib.Server, srv AccountingServiceServer) {
	s.RegisterService(&_AccountingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _AccountingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "bib.accounting.v1.AccountingService",
	HandlerType: (*AccountingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "PostTransaction", Handler: _AccountingService_PostTransaction_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "ReverseTransaction", Handler: _AccountingService_ReverseTransaction_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "CreateClosure", Handler: _AccountingService_CreateClosure_Handler},                     //nolint:revive // gRPC handler registration
		{MethodName: "GetLatestClosure", Handler: _AccountingService_GetLatestClosure_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "ListClosures", Handler: _AccountingService_ListClosures_Handler},                       //nolint:revive // gRPC handler registration
		{MethodName: "CreateGLAccount", Handler: _AccountingService_CreateGLAccount_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "GetGLAccount", Handler: _AccountingService_GetGLAccount_Handler},                       //nolint:revive // gRPC handler registration
		{MethodName: "DisableGLAccount", Handler: _AccountingService_DisableGLAccount_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "EnableGLAccount", Handler: _AccountingService_EnableGLAccount_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "ListGLAccounts", Handler: _AccountingService_ListGLAccounts_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "CreateAccountMapping", Handler: _AccountingService_CreateAccountMapping_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "CreateOffice", Handler: _AccountingService_CreateOffice_Handler},                       //nolint:revive // gRPC handler registration
		{MethodName: "GetEntriesByTransaction", Handler: _AccountingService_GetEntriesByTransaction_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ListEntriesByOffice", Handler: _AccountingService_ListEntriesByOffice_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "ListEntriesByGLAccount", Handler: _AccountingService_ListEntriesByGLAccount_Handler},   //nolint:revive // gRPC handler registration
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "bib/accounting/v1/accounting.proto",
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_PostTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(PostTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).PostTransaction(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_PostTransaction_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).PostTransaction(ctx, req.(*PostTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_ReverseTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReverseTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).ReverseTransaction(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_ReverseTransaction_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).ReverseTransaction(ctx, req.(*ReverseTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_CreateClosure_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateClosureRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).CreateClosure(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_CreateClosure_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).CreateClosure(ctx, req.(*CreateClosureRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_GetLatestClosure_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLatestClosureRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).GetLatestClosure(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_GetLatestClosure_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).GetLatestClosure(ctx, req.(*GetLatestClosureRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_ListClosures_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListClosuresRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).ListClosures(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_ListClosures_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).ListClosures(ctx, req.(*ListClosuresRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_CreateGLAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateGLAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).CreateGLAccount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_CreateGLAccount_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).CreateGLAccount(ctx, req.(*CreateGLAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_GetGLAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GLAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).GetGLAccount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_GetGLAccount_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).GetGLAccount(ctx, req.(*GLAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_DisableGLAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GLAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).DisableGLAccount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_DisableGLAccount_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).DisableGLAccount(ctx, req.(*GLAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_EnableGLAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GLAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).EnableGLAccount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_EnableGLAccount_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).EnableGLAccount(ctx, req.(*GLAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_ListGLAccounts_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListGLAccountsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).ListGLAccounts(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_ListGLAccounts_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).ListGLAccounts(ctx, req.(*ListGLAccountsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_CreateAccountMapping_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateAccountMappingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).CreateAccountMapping(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_CreateAccountMapping_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).CreateAccountMapping(ctx, req.(*CreateAccountMappingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_CreateOffice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateOfficeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).CreateOffice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_CreateOffice_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).CreateOffice(ctx, req.(*CreateOfficeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_GetEntriesByTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetEntriesByTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).GetEntriesByTransaction(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_GetEntriesByTransaction_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).GetEntriesByTransaction(ctx, req.(*GetEntriesByTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_ListEntriesByOffice_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListEntriesByOfficeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).ListEntriesByOffice(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_ListEntriesByOffice_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).ListEntriesByOffice(ctx, req.(*ListEntriesByOfficeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _AccountingService_ListEntriesByGLAccount_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListEntriesByGLAccountRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountingServiceServer).ListEntriesByGLAccount(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: AccountingService_ListEntriesByGLAccount_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AccountingServiceServer).ListEntriesByGLAccount(ctx, req.(*ListEntriesByGLAccountRequest))
	}
	return interceptor(ctx, in, info, handler)
}
