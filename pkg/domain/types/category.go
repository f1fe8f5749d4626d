package types

import "github.com/m-mizutani/goerr/v2"

// Category classifies what kind of follow-up an action is.
type Category string

const (
	CategoryContractBilling Category = "契約・請求"
	CategorySalesTrouble    Category = "営業・トラブル"
	CategoryOther           Category = "その他"
)

// AllCategories returns all valid categories.
func AllCategories() []Category {
	return []Category{
		CategoryContractBilling,
		CategorySalesTrouble,
		CategoryOther,
	}
}

// IsValid checks if the category is a member of the closed set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryContractBilling, CategorySalesTrouble, CategoryOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category.
func ParseCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", goerr.Wrap(ErrInvalidCategory, "unknown category", goerr.V(ValueKey, s))
	}
	return category, nil
}
