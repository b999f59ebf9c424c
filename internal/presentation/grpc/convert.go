package grpc

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/bibbank/bib/internal/application/dto"
)

// optionalUUID parses s, treating the empty string as uuid.Nil. Use cases
// reject nil ids where they are required.
func optionalUUID(field, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return id, nil
}

func optionalDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return d, nil
}

func optionalAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return d, nil
}

func uuidString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func dateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func page(limit, offset int32) dto.PageRequest {
	return dto.PageRequest{Limit: int(limit), Offset: int(offset)}
}

func toChargePayments(msgs []*ChargePaymentMsg, field string) ([]dto.ChargePaymentDTO, error) {
	out := make([]dto.ChargePaymentDTO, 0, len(msgs))
	for _, m := range msgs {
		if m == nil {
			continue
		}
		chargeID, err := optionalUUID(field+".charge_id", m.ChargeID)
		if err != nil {
			return nil, err
		}
		amount, err := optionalAmount(field+".amount", m.Amount)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.ChargePaymentDTO{ChargeID: chargeID, Amount: amount})
	}
	return out, nil
}

func toTaxPayments(msgs []*TaxPaymentMsg) ([]dto.TaxPaymentDTO, error) {
	out := make([]dto.TaxPaymentDTO, 0, len(msgs))
	for _, m := range msgs {
		if m == nil {
			continue
		}
		componentID, err := optionalUUID("tax_payments.tax_component_id", m.TaxComponentID)
		if err != nil {
			return nil, err
		}
		amount, err := optionalAmount("tax_payments.amount", m.Amount)
		if err != nil {
			return nil, err
		}
		creditID, err := optionalUUID("tax_payments.credit_gl_account_id", m.CreditGLAccountID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.TaxPaymentDTO{TaxComponentID: componentID, Amount: amount, CreditGLAccountID: creditID})
	}
	return out, nil
}

func toPortions(m *LoanPortionsMsg) (dto.LoanPortionsDTO, error) {
	var p dto.LoanPortionsDTO
	if m == nil {
		return p, nil
	}
	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"portions.principal", m.Principal, &p.Principal},
		{"portions.interest", m.Interest, &p.Interest},
		{"portions.fees", m.Fees, &p.Fees},
		{"portions.penalties", m.Penalties, &p.Penalties},
		{"portions.overpayment", m.Overpayment, &p.Overpayment},
	}
	for _, f := range fields {
		v, err := optionalAmount(f.name, f.raw)
		if err != nil {
			return dto.LoanPortionsDTO{}, err
		}
		*f.dst = v
	}
	return p, nil
}

func toPostTransactionDTO(req *PostTransactionRequest) (dto.PostTransactionRequest, error) {
	out := dto.PostTransactionRequest{
		TransactionID:     req.TransactionID,
		ProductType:       req.ProductType,
		Convention:        req.Convention,
		TransactionType:   req.TransactionType,
		Currency:          req.Currency,
		IsReversal:        req.IsReversal,
		IsAccountTransfer: req.IsAccountTransfer,
		ReferenceNumber:   req.ReferenceNumber,
		Description:       req.Description,
	}
	var err error
	if out.OfficeID, err = optionalUUID("office_id", req.OfficeID); err != nil {
		return out, err
	}
	if out.ProductID, err = optionalUUID("product_id", req.ProductID); err != nil {
		return out, err
	}
	if out.PaymentTypeID, err = optionalUUID("payment_type_id", req.PaymentTypeID); err != nil {
		return out, err
	}
	if out.Amount, err = optionalAmount("amount", req.Amount); err != nil {
		return out, err
	}
	if out.OverdraftAmount, err = optionalAmount("overdraft_amount", req.OverdraftAmount); err != nil {
		return out, err
	}
	if out.EntryDate, err = optionalDate("entry_date", req.EntryDate); err != nil {
		return out, err
	}
	if out.TransactionDate, err = optionalDate("transaction_date", req.TransactionDate); err != nil {
		return out, err
	}
	if out.FeePayments, err = toChargePayments(req.FeePayments, "fee_payments"); err != nil {
		return out, err
	}
	if out.PenaltyPayments, err = toChargePayments(req.PenaltyPayments, "penalty_payments"); err != nil {
		return out, err
	}
	if out.TaxPayments, err = toTaxPayments(req.TaxPayments); err != nil {
		return out, err
	}
	if out.Portions, err = toPortions(req.Portions); err != nil {
		return out, err
	}
	return out, nil
}

func toJournalEntryMsg(e dto.JournalEntryDTO) *JournalEntryMsg {
	return &JournalEntryMsg{
		ID:              e.ID.String(),
		BatchID:         e.BatchID.String(),
		OfficeID:        e.OfficeID.String(),
		GLAccountID:     e.GLAccountID.String(),
		TransactionID:   e.TransactionID,
		EntrySeq:        int32(e.EntrySeq), //nolint:gosec // sequence numbers are small
		PairSeq:         int32(e.PairSeq),  //nolint:gosec // sequence numbers are small
		EntryType:       e.EntryType,
		Amount:          e.Amount.String(),
		Currency:        e.Currency,
		EntryDate:       dateString(e.EntryDate),
		BusinessDate:    dateString(e.BusinessDate),
		TransactionType: e.TransactionType,
		ProductType:     e.ProductType,
		ProductID:       uuidString(e.ProductID),
		ReferenceNumber: e.ReferenceNumber,
		Description:     e.Description,
		Reversed:        e.Reversed,
		ReversalID:      e.ReversalID,
		ReversalOf:      e.ReversalOf,
		CreatedBy:       uuidString(e.CreatedBy),
		CreatedAt:       timestamppb.New(e.CreatedAt),
	}
}

func toJournalEntryMsgs(entries []dto.JournalEntryDTO) []*JournalEntryMsg {
	out := make([]*JournalEntryMsg, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJournalEntryMsg(e))
	}
	return out
}

func toJournalEntriesResponse(r dto.JournalEntriesResponse) *JournalEntriesResponse {
	return &JournalEntriesResponse{
		Entries: toJournalEntryMsgs(r.Entries),
		Total:   int32(r.Total),  //nolint:gosec // bounded by the page query
		Limit:   int32(r.Limit),  //nolint:gosec // bounded by MaxPageSize
		Offset:  int32(r.Offset), //nolint:gosec // taken from an int32 request field
	}
}

func toClosureMsg(c dto.ClosureResponse) *ClosureMsg {
	return &ClosureMsg{
		ID:          c.ID.String(),
		OfficeID:    c.OfficeID.String(),
		ClosingDate: dateString(c.ClosingDate),
		Comments:    c.Comments,
		CreatedBy:   uuidString(c.CreatedBy),
		CreatedAt:   timestamppb.New(c.CreatedAt),
	}
}

func toGLAccountMsg(a dto.GLAccountResponse) *GLAccountMsg {
	return &GLAccountMsg{
		ID:          a.ID.String(),
		ParentID:    uuidString(a.ParentID),
		Name:        a.Name,
		GLCode:      a.GLCode,
		Type:        a.Type,
		Usage:       a.Usage,
		Disabled:    a.Disabled,
		Description: a.Description,
		Version:     int32(a.Version), //nolint:gosec // versions are small
		CreatedAt:   timestamppb.New(a.CreatedAt),
		UpdatedAt:   timestamppb.New(a.UpdatedAt),
	}
}

func toAccountMappingMsg(m dto.AccountMappingResponse) *AccountMappingMsg {
	return &AccountMappingMsg{
		ID:            m.ID.String(),
		ProductType:   m.ProductType,
		ProductID:     uuidString(m.ProductID),
		Role:          m.Role,
		GLAccountID:   m.GLAccountID.String(),
		PaymentTypeID: uuidString(m.PaymentTypeID),
		ChargeID:      uuidString(m.ChargeID),
		CreatedAt:     timestamppb.New(m.CreatedAt),
	}
}

func toOfficeMsg(o dto.OfficeResponse) *OfficeMsg {
	return &OfficeMsg{
		ID:        o.ID.String(),
		ParentID:  uuidString(o.ParentID),
		Name:      o.Name,
		Hierarchy: o.Hierarchy,
		CreatedAt: timestamppb.New(o.CreatedAt),
	}
}
