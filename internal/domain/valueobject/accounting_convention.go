package valueobject

import "fmt"

// AccountingConvention selects how a product recognises income and expense.
type AccountingConvention string

const (
	ConventionNone            AccountingConvention = "NONE"
	ConventionCash            AccountingConvention = "CASH"
	ConventionAccrualPeriodic AccountingConvention = "ACCRUAL_PERIODIC"
	ConventionAccrualUpfront  AccountingConvention = "ACCRUAL_UPFRONT"
)

func ParseAccountingConvention(s string) (AccountingConvention, error) {
	switch c := AccountingConvention(s); c {
	case ConventionNone, ConventionCash, ConventionAccrualPeriodic, ConventionAccrualUpfront:
		return c, nil
	}
	return "", fmt.Errorf("invalid accounting convention %q", s)
}

// IsAccrual reports whether the convention books receivables and payables.
func (c AccountingConvention) IsAccrual() bool {
	return c == ConventionAccrualPeriodic || c == ConventionAccrualUpfront
}

// PostsEntries is false for products that keep no GL accounting.
func (c AccountingConvention) PostsEntries() bool {
	return c == ConventionCash || c.IsAccrual()
}

func (c AccountingConvention) String() string { return string(c) }
