package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bibbank/bib/internal/domain/model"
	vo "github.com/bibbank/bib/internal/domain/valueobject"
)

// EntryBuilder derives the balanced posting pairs of a transaction event.
type EntryBuilder struct {
	resolver *RuleResolver
}

func NewEntryBuilder(resolver *RuleResolver) *EntryBuilder {
	return &EntryBuilder{resolver: resolver}
}

// Build validates ev and returns its posting pairs in table order. An event
// that the product's convention does not account for yields no pairs and no
// error.
func (b *EntryBuilder) Build(ctx context.Context, ev model.TransactionEvent) ([]vo.PostingPair, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	drafts, err := draftsFor(ev)
	if err != nil {
		return nil, err
	}

	resolved := make(map[slot]uuid.UUID)
	resolve := func(s slot) (uuid.UUID, error) {
		key := slot{role: s.role, chargeID: s.chargeID, accountID: s.accountID}
		if s.kind == slotCounterpart {
			key.kind = slotCounterpart
		}
		if id, ok := resolved[key]; ok {
			return id, nil
		}
		id, err := b.resolveSlot(ctx, ev, s)
		if err != nil {
			return uuid.Nil, err
		}
		resolved[key] = id
		return id, nil
	}

	pairs := make([]vo.PostingPair, 0, len(drafts))
	for _, d := range drafts {
		debit, err := resolve(d.debit)
		if err != nil {
			return nil, fmt.Errorf("resolve debit %s: %w", d.debit.role, err)
		}
		credit, err := resolve(d.credit)
		if err != nil {
			return nil, fmt.Errorf("resolve credit %s: %w", d.credit.role, err)
		}
		p, err := vo.NewPostingPair(debit, credit, d.debit.role, d.credit.role, d.amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func (b *EntryBuilder) resolveSlot(ctx context.Context, ev model.TransactionEvent, s slot) (uuid.UUID, error) {
	if s.accountID != uuid.Nil {
		acct, err := b.resolver.ResolveAccount(ctx, ev.TenantID, s.accountID)
		if err != nil {
			return uuid.Nil, err
		}
		return acct.ID(), nil
	}

	req := ResolveRequest{
		TenantID:    ev.TenantID,
		ProductType: ev.ProductType,
		ProductID:   ev.ProductID,
		Convention:  ev.Convention,
		Role:        s.role,
		ChargeID:    s.chargeID,
	}
	if s.kind == slotCounterpart {
		req.PaymentTypeID = ev.PaymentTypeID
	}
	acct, err := b.resolver.Resolve(ctx, req)
	if err != nil {
		return uuid.Nil, err
	}
	return acct.ID(), nil
}
