package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/internal/domain/model"
	vo "github.com/bibbank/bib/internal/domain/valueobject"
)

type slotKind int

const (
	slotFixed slotKind = iota
	// slotCustomer is the account holder's side. The overdraft split moves it.
	slotCustomer
	// slotCounterpart is the cash side. Account transfers move it to the
	// suspense account and the payment type narrows its mapping.
	slotCounterpart
	// slotCharge is the income side of a charge settlement.
	slotCharge
)

// slot is one side of a draft pair before it is resolved to a GL account.
type slot struct {
	role      vo.AccountRole
	kind      slotKind
	chargeID  uuid.UUID
	accountID uuid.UUID
}

func fixed(role vo.AccountRole) slot       { return slot{role: role, kind: slotFixed} }
func customer(role vo.AccountRole) slot    { return slot{role: role, kind: slotCustomer} }
func counterpart(role vo.AccountRole) slot { return slot{role: role, kind: slotCounterpart} }
func chargeIncome() slot                   { return slot{role: vo.RoleIncomeFromFees, kind: slotCharge} }

// draft is a balanced pair still expressed in roles.
type draft struct {
	debit  slot
	credit slot
	amount decimal.Decimal
}

func (d draft) with(amount decimal.Decimal) draft {
	d.amount = amount
	return d
}

// rule produces the base drafts of one transaction type.
type rule struct {
	accrualOnly bool
	build       func(ev model.TransactionEvent) ([]draft, error)
}

func simple(debit, credit slot) rule {
	return rule{build: func(ev model.TransactionEvent) ([]draft, error) {
		return []draft{{debit: debit, credit: credit, amount: ev.Amount}}, nil
	}}
}

func byConvention(cash, accrual rule) rule {
	return rule{build: func(ev model.TransactionEvent) ([]draft, error) {
		if ev.Convention.IsAccrual() {
			return accrual.build(ev)
		}
		return cash.build(ev)
	}}
}

func accrualOnly(r rule) rule {
	r.accrualOnly = true
	return r
}

type portion struct {
	name   string
	amount decimal.Decimal
	cash   vo.AccountRole
	accrue vo.AccountRole
}

func loanPortions(p model.LoanPortions) []portion {
	return []portion{
		{"principal", p.Principal, vo.RoleLoanPortfolio, vo.RoleLoanPortfolio},
		{"interest", p.Interest, vo.RoleInterestOnLoans, vo.RoleInterestReceivable},
		{"fees", p.Fees, vo.RoleIncomeFromFees, vo.RoleFeesReceivable},
		{"penalties", p.Penalties, vo.RoleIncomeFromPenalties, vo.RolePenaltiesReceivable},
		{"overpayment", p.Overpayment, vo.RoleOverpayment, vo.RoleOverpayment},
	}
}

func checkPortionTotal(ev model.TransactionEvent) error {
	if total := ev.Portions.Total(); !total.Equal(ev.Amount) {
		return fmt.Errorf("%w: loan portions total %s, amount is %s", model.ErrInvalidInput, total, ev.Amount)
	}
	return nil
}

// portionCredits debits one side and credits each loan portion to the role
// that portion settles under the product's convention.
func portionCredits(debit slot) rule {
	return rule{build: func(ev model.TransactionEvent) ([]draft, error) {
		if err := checkPortionTotal(ev); err != nil {
			return nil, err
		}
		var drafts []draft
		for _, p := range loanPortions(ev.Portions) {
			role := p.cash
			if ev.Convention.IsAccrual() {
				role = p.accrue
			}
			drafts = append(drafts, draft{debit: debit, credit: fixed(role), amount: p.amount})
		}
		return drafts, nil
	}}
}

// loanAccrual books receivable against income per interest, fee and penalty portion.
func loanAccrual() rule {
	return rule{accrualOnly: true, build: func(ev model.TransactionEvent) ([]draft, error) {
		if err := checkPortionTotal(ev); err != nil {
			return nil, err
		}
		if !ev.Portions.Principal.IsZero() || !ev.Portions.Overpayment.IsZero() {
			return nil, fmt.Errorf("%w: accruals carry no principal or overpayment", model.ErrInvalidInput)
		}
		var drafts []draft
		for _, p := range loanPortions(ev.Portions)[1:4] {
			drafts = append(drafts, draft{debit: fixed(p.accrue), credit: fixed(p.cash), amount: p.amount})
		}
		return drafts, nil
	}}
}

// taxWithholding emits one pair per tax component. Without a breakdown the
// whole amount is one component.
func taxWithholding() rule {
	return rule{build: func(ev model.TransactionEvent) ([]draft, error) {
		if len(ev.TaxPayments) == 0 {
			return []draft{{debit: fixed(vo.RoleSavingsControl), credit: fixed(vo.RoleSavingsReference), amount: ev.Amount}}, nil
		}
		total := decimal.Zero
		drafts := make([]draft, 0, len(ev.TaxPayments))
		for _, tp := range ev.TaxPayments {
			credit := fixed(vo.RoleSavingsReference)
			if tp.CreditGLAccountID != uuid.Nil {
				credit.accountID = tp.CreditGLAccountID
			}
			drafts = append(drafts, draft{debit: fixed(vo.RoleSavingsControl), credit: credit, amount: tp.Amount})
			total = total.Add(tp.Amount)
		}
		if !total.Equal(ev.Amount) {
			return nil, fmt.Errorf("%w: tax components total %s, amount is %s", model.ErrInvalidInput, total, ev.Amount)
		}
		return drafts, nil
	}}
}

var (
	savingsTransferIn  = simple(fixed(vo.RoleTransfersSuspense), fixed(vo.RoleSavingsControl))
	savingsChargeRule  = simple(customer(vo.RoleSavingsControl), chargeIncome())
	savingsPostingRule = map[vo.TransactionType]rule{
		vo.TxDeposit:    simple(counterpart(vo.RoleSavingsReference), customer(vo.RoleSavingsControl)),
		vo.TxWithdrawal: simple(customer(vo.RoleSavingsControl), counterpart(vo.RoleSavingsReference)),
		vo.TxInterestPosting: byConvention(
			simple(fixed(vo.RoleInterestOnSavings), customer(vo.RoleSavingsControl)),
			simple(fixed(vo.RoleInterestPayable), customer(vo.RoleSavingsControl)),
		),
		vo.TxAccrualInterestPosting: accrualOnly(simple(fixed(vo.RoleInterestOnSavings), fixed(vo.RoleInterestPayable))),
		vo.TxOverdraftInterest:      simple(customer(vo.RoleSavingsControl), fixed(vo.RoleIncomeFromInterest)),
		vo.TxFeeDeduction:           savingsChargeRule,
		vo.TxOverdraftFee:           savingsChargeRule,
		vo.TxWithdrawalFee:          savingsChargeRule,
		vo.TxAnnualFee:              savingsChargeRule,
		vo.TxPayCharge:              savingsChargeRule,
		vo.TxWithholdTax:            taxWithholding(),
		vo.TxWrittenOff:             simple(fixed(vo.RoleLossesWrittenOff), fixed(vo.RoleOverdraftPortfolioControl)),
		vo.TxInitiateTransfer:       simple(fixed(vo.RoleSavingsControl), fixed(vo.RoleTransfersSuspense)),
		vo.TxApproveTransfer:        savingsTransferIn,
		vo.TxWithdrawTransfer:       savingsTransferIn,
		vo.TxRejectTransfer:         savingsTransferIn,
		vo.TxEscheat:                simple(fixed(vo.RoleSavingsControl), fixed(vo.RoleEscheatLiability)),
		vo.TxDividendPayout:         simple(fixed(vo.RolePayableDividends), fixed(vo.RoleSavingsControl)),
	}

	loanPostingRule = map[vo.TransactionType]rule{
		vo.TxDisbursement:      simple(fixed(vo.RoleLoanPortfolio), counterpart(vo.RoleFundSource)),
		vo.TxRepayment:         portionCredits(counterpart(vo.RoleFundSource)),
		vo.TxWriteOff:          portionCredits(fixed(vo.RoleLossesWrittenOff)),
		vo.TxRecoveryRepayment: simple(counterpart(vo.RoleFundSource), fixed(vo.RoleIncomeFromRecovery)),
		vo.TxAccrual:           loanAccrual(),
	}

	sharePostingRule = map[vo.TransactionType]rule{
		vo.TxSharePurchase:         simple(counterpart(vo.RoleSharesReference), fixed(vo.RoleSharesSuspense)),
		vo.TxSharePurchaseApproved: simple(fixed(vo.RoleSharesSuspense), fixed(vo.RoleSharesEquity)),
		vo.TxSharePurchaseRejected: simple(fixed(vo.RoleSharesSuspense), counterpart(vo.RoleSharesReference)),
		vo.TxShareRedeem:           simple(fixed(vo.RoleSharesEquity), counterpart(vo.RoleSharesReference)),
	}

	postingRules = map[vo.ProductType]map[vo.TransactionType]rule{
		vo.ProductTypeSavings: savingsPostingRule,
		vo.ProductTypeLoan:    loanPostingRule,
		vo.ProductTypeShare:   sharePostingRule,
	}
)

func lookupRule(pt vo.ProductType, tt vo.TransactionType) (rule, error) {
	r, ok := postingRules[pt][tt]
	if !ok {
		return rule{}, fmt.Errorf("%w: %s on %s products", model.ErrUnsupportedTransaction, tt, pt)
	}
	return r, nil
}

// splitOverdraft moves the overdraft part of each customer-side draft onto
// the overdraft portfolio control account. The overdraft is consumed in
// draft order.
func splitOverdraft(ev model.TransactionEvent, drafts []draft) ([]draft, error) {
	remaining := ev.OverdraftAmount
	if !remaining.IsPositive() {
		return drafts, nil
	}
	out := make([]draft, 0, len(drafts)+1)
	for _, d := range drafts {
		isDebit := d.debit.kind == slotCustomer
		if !isDebit && d.credit.kind != slotCustomer || !remaining.IsPositive() {
			out = append(out, d)
			continue
		}
		take := decimal.Min(remaining, d.amount)
		od := d.with(take)
		if isDebit {
			od.debit = fixed(vo.RoleOverdraftPortfolioControl)
		} else {
			od.credit = fixed(vo.RoleOverdraftPortfolioControl)
		}
		out = append(out, od, d.with(d.amount.Sub(take)))
		remaining = remaining.Sub(take)
	}
	if remaining.IsPositive() {
		return nil, fmt.Errorf("%w: overdraft amount %s not applicable to %s",
			model.ErrInvalidInput, ev.OverdraftAmount, ev.TransactionType)
	}
	return out, nil
}

type chargeBalance struct {
	chargeID uuid.UUID
	left     decimal.Decimal
}

// routeCharges assigns the charge side of each draft to a charge income role.
// Penalties take precedence: when any penalty payment is present the whole
// charge side goes to penalty income, otherwise to fee income. Within the
// chosen bucket each charge gets its own pair so a charge-specific mapping can
// apply; any amount not covered by a charge payment stays on the bucket role.
func routeCharges(ev model.TransactionEvent, drafts []draft) ([]draft, error) {
	bucket, role := ev.PenaltyPayments, vo.RoleIncomeFromPenalties
	if len(bucket) == 0 {
		bucket, role = ev.FeePayments, vo.RoleIncomeFromFees
	}
	queue := make([]chargeBalance, 0, len(bucket))
	for _, c := range bucket {
		queue = append(queue, chargeBalance{chargeID: c.ChargeID, left: c.Amount})
	}

	out := make([]draft, 0, len(drafts)+len(queue))
	next := 0
	for _, d := range drafts {
		onDebit := d.debit.kind == slotCharge
		if !onDebit && d.credit.kind != slotCharge {
			out = append(out, d)
			continue
		}
		assign := func(amount decimal.Decimal, chargeID uuid.UUID) {
			part := d.with(amount)
			s := slot{role: role, kind: slotCharge, chargeID: chargeID}
			if onDebit {
				part.debit = s
			} else {
				part.credit = s
			}
			out = append(out, part)
		}
		remaining := d.amount
		for remaining.IsPositive() && next < len(queue) {
			take := decimal.Min(remaining, queue[next].left)
			assign(take, queue[next].chargeID)
			queue[next].left = queue[next].left.Sub(take)
			remaining = remaining.Sub(take)
			if queue[next].left.IsZero() {
				next++
			}
		}
		if remaining.IsPositive() {
			assign(remaining, uuid.Nil)
		}
	}
	for _, c := range queue[next:] {
		if c.left.IsPositive() {
			return nil, fmt.Errorf("%w: charge payments exceed the charged amount %s", model.ErrInvalidInput, ev.Amount)
		}
	}
	return out, nil
}

// routeTransfer books the counterpart side of an account transfer against
// the transfers suspense account.
func routeTransfer(ev model.TransactionEvent, drafts []draft) ([]draft, error) {
	if !ev.IsAccountTransfer {
		return drafts, nil
	}
	if !vo.RoleTransfersSuspense.AllowedFor(ev.ProductType, ev.Convention) {
		return nil, fmt.Errorf("%w: account transfers on %s products", model.ErrUnsupportedTransaction, ev.ProductType)
	}
	out := make([]draft, 0, len(drafts))
	for _, d := range drafts {
		if d.debit.kind == slotCounterpart {
			d.debit = fixed(vo.RoleTransfersSuspense)
		}
		if d.credit.kind == slotCounterpart {
			d.credit = fixed(vo.RoleTransfersSuspense)
		}
		out = append(out, d)
	}
	return out, nil
}

// swapSides turns every draft around for events that undo an earlier
// business transaction.
func swapSides(ev model.TransactionEvent, drafts []draft) ([]draft, error) {
	if !ev.IsReversal {
		return drafts, nil
	}
	out := make([]draft, 0, len(drafts))
	for _, d := range drafts {
		d.debit, d.credit = d.credit, d.debit
		out = append(out, d)
	}
	return out, nil
}

func dropZero(drafts []draft) []draft {
	out := drafts[:0:0]
	for _, d := range drafts {
		if !d.amount.IsZero() {
			out = append(out, d)
		}
	}
	return out
}

type modifier func(ev model.TransactionEvent, drafts []draft) ([]draft, error)

// modifiers run in this order on the base drafts of every rule.
var modifiers = []modifier{splitOverdraft, routeCharges, routeTransfer, swapSides}

// draftsFor expands an event into role-level pairs. It returns no drafts for
// conventions that keep no accounts and for accrual-only types on cash products.
func draftsFor(ev model.TransactionEvent) ([]draft, error) {
	if !ev.Convention.PostsEntries() {
		return nil, nil
	}
	r, err := lookupRule(ev.ProductType, ev.TransactionType)
	if err != nil {
		return nil, err
	}
	if r.accrualOnly && !ev.Convention.IsAccrual() {
		return nil, nil
	}
	drafts, err := r.build(ev)
	if err != nil {
		return nil, err
	}
	for _, m := range modifiers {
		if drafts, err = m(ev, drafts); err != nil {
			return nil, err
		}
	}
	return dropZero(drafts), nil
}
