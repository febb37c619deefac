package core

import "strings"

// Category classifies a transaction. The set is closed; free-form text
// is resolved through ParseCategory.
type Category string

const (
	CategoryGroceries     Category = "GROCERIES"
	CategoryUtilities     Category = "UTILITIES"
	CategoryRent          Category = "RENT"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryTransport     Category = "TRANSPORT"
	CategoryDining        Category = "DINING"
	CategoryHealthcare    Category = "HEALTHCARE"
	CategoryEducation     Category = "EDUCATION"
	CategoryShopping      Category = "SHOPPING"
	CategoryTravel        Category = "TRAVEL"
	CategorySalary        Category = "SALARY"
	CategoryTransfer      Category = "TRANSFER"
	CategoryOther         Category = "OTHER"
)

var categories = []Category{
	CategoryGroceries,
	CategoryUtilities,
	CategoryRent,
	CategoryEntertainment,
	CategoryTransport,
	CategoryDining,
	CategoryHealthcare,
	CategoryEducation,
	CategoryShopping,
	CategoryTravel,
	CategorySalary,
	CategoryTransfer,
	CategoryOther,
}

// Categories returns the closed category set.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches free-form text against the category set,
// case-insensitively. Unknown text yields ErrInvalidCategory.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
