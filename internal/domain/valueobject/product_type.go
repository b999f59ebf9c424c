package valueobject

import "fmt"

// ProductType is the portfolio a financial product belongs to.
type ProductType string

const (
	ProductTypeLoan    ProductType = "LOAN"
	ProductTypeSavings ProductType = "SAVINGS"
	ProductTypeShare   ProductType = "SHARE"
)

func ParseProductType(s string) (ProductType, error) {
	switch p := ProductType(s); p {
	case ProductTypeLoan, ProductTypeSavings, ProductTypeShare:
		return p, nil
	}
	return "", fmt.Errorf("invalid product type %q", s)
}

func (p ProductType) String() string { return string(p) }
