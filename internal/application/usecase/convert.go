package usecase

import (
	"github.com/bibbank/bib/internal/application/dto"
	"github.com/bibbank/bib/internal/domain/model"
	"github.com/bibbank/bib/internal/domain/valueobject"
)

func toTransactionEvent(req dto.PostTransactionRequest) (model.TransactionEvent, error) {
	productType, err := parseField("product type", req.ProductType, valueobject.ParseProductType)
	if err != nil {
		return model.TransactionEvent{}, err
	}
	convention, err := parseField("convention", req.Convention, valueobject.ParseAccountingConvention)
	if err != nil {
		return model.TransactionEvent{}, err
	}
	txType, err := parseField("transaction type", req.TransactionType, valueobject.ParseTransactionType)
	if err != nil {
		return model.TransactionEvent{}, err
	}

	ev := model.TransactionEvent{
		TenantID:          req.TenantID,
		OfficeID:          req.OfficeID,
		TransactionID:     req.TransactionID,
		ProductType:       productType,
		ProductID:         req.ProductID,
		Convention:        convention,
		TransactionType:   txType,
		Amount:            req.Amount,
		OverdraftAmount:   req.OverdraftAmount,
		Currency:          req.Currency,
		PaymentTypeID:     req.PaymentTypeID,
		IsReversal:        req.IsReversal,
		IsAccountTransfer: req.IsAccountTransfer,
		Portions: model.LoanPortions{
			Principal:   req.Portions.Principal,
			Interest:    req.Portions.Interest,
			Fees:        req.Portions.Fees,
			Penalties:   req.Portions.Penalties,
			Overpayment: req.Portions.Overpayment,
		},
		TransactionDate: req.TransactionDate,
		EntryDate:       req.EntryDate,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		CreatedBy:       req.CreatedBy,
	}
	for _, c := range req.FeePayments {
		ev.FeePayments = append(ev.FeePayments, model.ChargePayment{ChargeID: c.ChargeID, Amount: c.Amount})
	}
	for _, c := range req.PenaltyPayments {
		ev.PenaltyPayments = append(ev.PenaltyPayments, model.ChargePayment{ChargeID: c.ChargeID, Amount: c.Amount})
	}
	for _, tp := range req.TaxPayments {
		ev.TaxPayments = append(ev.TaxPayments, model.TaxPayment{
			TaxComponentID:    tp.TaxComponentID,
			Amount:            tp.Amount,
			CreditGLAccountID: tp.CreditGLAccountID,
		})
	}
	return ev, nil
}

func toJournalEntryDTO(e model.JournalEntry) dto.JournalEntryDTO {
	return dto.JournalEntryDTO{
		ID:              e.ID(),
		BatchID:         e.BatchID(),
		OfficeID:        e.OfficeID(),
		GLAccountID:     e.GLAccountID(),
		TransactionID:   e.TransactionID(),
		EntrySeq:        e.EntrySeq(),
		PairSeq:         e.PairSeq(),
		EntryType:       e.EntryType().String(),
		Amount:          e.Amount(),
		Currency:        e.Currency(),
		EntryDate:       e.EntryDate(),
		BusinessDate:    e.BusinessDate(),
		TransactionType: e.TransactionType().String(),
		ProductType:     e.ProductType().String(),
		ProductID:       e.ProductID(),
		ReferenceNumber: e.ReferenceNumber(),
		Description:     e.Description(),
		Reversed:        e.Reversed(),
		ReversalID:      e.ReversalID(),
		ReversalOf:      e.ReversalOf(),
		CreatedBy:       e.CreatedBy(),
		CreatedAt:       e.CreatedAt(),
	}
}

func toJournalEntryDTOs(entries []model.JournalEntry) []dto.JournalEntryDTO {
	out := make([]dto.JournalEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJournalEntryDTO(e))
	}
	return out
}

func toClosureResponse(c model.AccountingClosure) dto.ClosureResponse {
	return dto.ClosureResponse{
		ID:          c.ID(),
		OfficeID:    c.OfficeID(),
		ClosingDate: c.ClosingDate(),
		Comments:    c.Comments(),
		CreatedBy:   c.CreatedBy(),
		CreatedAt:   c.CreatedAt(),
	}
}

func toGLAccountResponse(a model.GLAccount) dto.GLAccountResponse {
	return dto.GLAccountResponse{
		ID:          a.ID(),
		ParentID:    a.ParentID(),
		Name:        a.Name(),
		GLCode:      a.GLCode().String(),
		Type:        a.Type().String(),
		Usage:       a.Usage().String(),
		Disabled:    a.Disabled(),
		Description: a.Description(),
		Version:     a.Version(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func toAccountMappingResponse(m model.AccountMapping) dto.AccountMappingResponse {
	return dto.AccountMappingResponse{
		ID:            m.ID(),
		ProductType:   m.ProductType().String(),
		ProductID:     m.ProductID(),
		Role:          m.Role().String(),
		GLAccountID:   m.GLAccountID(),
		PaymentTypeID: m.PaymentTypeID(),
		ChargeID:      m.ChargeID(),
		CreatedAt:     m.CreatedAt(),
	}
}

func toOfficeResponse(o model.Office) dto.OfficeResponse {
	return dto.OfficeResponse{
		ID:        o.ID(),
		ParentID:  o.ParentID(),
		Name:      o.Name(),
		Hierarchy: o.Hierarchy(),
		CreatedAt: o.CreatedAt(),
	}
}
