package valueobject

import "fmt"

// AccountRole is the financial-account role a GL account plays for a product,
// such as the savings control account or the fee income account.
type AccountRole string

const (
	// Savings
	RoleSavingsReference          AccountRole = "SAVINGS_REFERENCE"
	RoleSavingsControl            AccountRole = "SAVINGS_CONTROL"
	RoleInterestOnSavings         AccountRole = "INTEREST_ON_SAVINGS"
	RoleOverdraftPortfolioControl AccountRole = "OVERDRAFT_PORTFOLIO_CONTROL"
	RoleEscheatLiability          AccountRole = "ESCHEAT_LIABILITY"
	RoleIncomeFromInterest        AccountRole = "INCOME_FROM_INTEREST"
	RolePayableDividends          AccountRole = "PAYABLE_DIVIDENDS"
	RoleInterestPayable           AccountRole = "INTEREST_PAYABLE"

	// Loans
	RoleFundSource         AccountRole = "FUND_SOURCE"
	RoleLoanPortfolio      AccountRole = "LOAN_PORTFOLIO"
	RoleInterestOnLoans    AccountRole = "INTEREST_ON_LOANS"
	RoleIncomeFromRecovery AccountRole = "INCOME_FROM_RECOVERY"
	RoleOverpayment        AccountRole = "OVERPAYMENT"

	// Shares
	RoleSharesReference AccountRole = "SHARES_REFERENCE"
	RoleSharesSuspense  AccountRole = "SHARES_SUSPENSE"
	RoleSharesEquity    AccountRole = "SHARES_EQUITY"

	// Shared by several product types
	RoleIncomeFromFees      AccountRole = "INCOME_FROM_FEES"
	RoleIncomeFromPenalties AccountRole = "INCOME_FROM_PENALTIES"
	RoleTransfersSuspense   AccountRole = "TRANSFERS_SUSPENSE"
	RoleLossesWrittenOff    AccountRole = "LOSSES_WRITTEN_OFF"
	RoleInterestReceivable  AccountRole = "INTEREST_RECEIVABLE"
	RoleFeesReceivable      AccountRole = "FEES_RECEIVABLE"
	RolePenaltiesReceivable AccountRole = "PENALTIES_RECEIVABLE"
)

type roleSet map[AccountRole]struct{}

func newRoleSet(roles ...AccountRole) roleSet {
	s := make(roleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

var cashRoles = map[ProductType]roleSet{
	ProductTypeSavings: newRoleSet(
		RoleSavingsReference, RoleSavingsControl, RoleInterestOnSavings,
		RoleIncomeFromFees, RoleIncomeFromPenalties, RoleIncomeFromInterest,
		RoleOverdraftPortfolioControl, RoleTransfersSuspense, RoleEscheatLiability,
		RoleLossesWrittenOff, RolePayableDividends,
	),
	ProductTypeLoan: newRoleSet(
		RoleFundSource, RoleLoanPortfolio, RoleInterestOnLoans,
		RoleIncomeFromFees, RoleIncomeFromPenalties, RoleIncomeFromRecovery,
		RoleLossesWrittenOff, RoleOverpayment, RoleTransfersSuspense,
	),
	ProductTypeShare: newRoleSet(
		RoleSharesReference, RoleSharesSuspense, RoleSharesEquity, RoleIncomeFromFees,
	),
}

var accrualOnlyRoles = map[ProductType]roleSet{
	ProductTypeSavings: newRoleSet(RoleInterestPayable, RoleInterestReceivable, RoleFeesReceivable, RolePenaltiesReceivable),
	ProductTypeLoan:    newRoleSet(RoleInterestReceivable, RoleFeesReceivable, RolePenaltiesReceivable),
	ProductTypeShare:   newRoleSet(),
}

// ParseAccountRole validates that s names a known role for any product type.
func ParseAccountRole(s string) (AccountRole, error) {
	r := AccountRole(s)
	for _, pt := range []ProductType{ProductTypeSavings, ProductTypeLoan, ProductTypeShare} {
		if _, ok := cashRoles[pt][r]; ok {
			return r, nil
		}
		if _, ok := accrualOnlyRoles[pt][r]; ok {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid account role %q", s)
}

// AllowedFor reports whether the role may be mapped for the product type
// under the convention. Accrual-only roles are rejected for cash products.
func (r AccountRole) AllowedFor(pt ProductType, conv AccountingConvention) bool {
	if _, ok := cashRoles[pt][r]; ok {
		return true
	}
	if !conv.IsAccrual() {
		return false
	}
	_, ok := accrualOnlyRoles[pt][r]
	return ok
}

// MappableFor reports whether the role is known for the product type under
// any convention. Mappings are configured ahead of the product's convention.
func (r AccountRole) MappableFor(pt ProductType) bool {
	return r.AllowedFor(pt, ConventionAccrualPeriodic)
}

func (r AccountRole) String() string { return string(r) }
