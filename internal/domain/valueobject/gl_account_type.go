package valueobject

import "fmt"

// GLAccountType classifies a GL account in the chart of accounts.
type GLAccountType string

const (
	GLAccountTypeAsset     GLAccountType = "ASSET"
	GLAccountTypeLiability GLAccountType = "LIABILITY"
	GLAccountTypeEquity    GLAccountType = "EQUITY"
	GLAccountTypeIncome    GLAccountType = "INCOME"
	GLAccountTypeExpense   GLAccountType = "EXPENSE"
)

func ParseGLAccountType(s string) (GLAccountType, error) {
	switch t := GLAccountType(s); t {
	case GLAccountTypeAsset, GLAccountTypeLiability, GLAccountTypeEquity, GLAccountTypeIncome, GLAccountTypeExpense:
		return t, nil
	}
	return "", fmt.Errorf("invalid GL account type %q", s)
}

func (t GLAccountType) String() string { return string(t) }

// GLAccountUsage distinguishes postable DETAIL accounts from grouping HEADER accounts.
type GLAccountUsage string

const (
	GLAccountUsageDetail GLAccountUsage = "DETAIL"
	GLAccountUsageHeader GLAccountUsage = "HEADER"
)

func ParseGLAccountUsage(s string) (GLAccountUsage, error) {
	switch u := GLAccountUsage(s); u {
	case GLAccountUsageDetail, GLAccountUsageHeader:
		return u, nil
	}
	return "", fmt.Errorf("invalid GL account usage %q", s)
}

func (u GLAccountUsage) String() string { return string(u) }
