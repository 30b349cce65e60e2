package models

import "strings"

// Category is one of the fixed expense buckets used for reporting.
type Category string

const (
	CategorySupermarket Category = "Supermarket"
	CategoryClothing    Category = "Clothing"
	CategoryGifts       Category = "Gifts"
	CategoryTransport   Category = "Transport"
	CategoryCard        Category = "Card"
	CategoryOther       Category = "Other"
)

// Categories is the closed category set in display order.
var Categories = []Category{
	CategorySupermarket,
	CategoryClothing,
	CategoryGifts,
	CategoryTransport,
	CategoryCard,
	CategoryOther,
}

// categoryAliases maps lower-cased input labels to canonical categories.
// The Spanish labels are the ones older clients send.
var categoryAliases = map[string]Category{
	"supermarket":  CategorySupermarket,
	"supermercado": CategorySupermarket,
	"clothing":     CategoryClothing,
	"ropa":         CategoryClothing,
	"gifts":        CategoryGifts,
	"regalos":      CategoryGifts,
	"transport":    CategoryTransport,
	"transporte":   CategoryTransport,
	"card":         CategoryCard,
	"tarjeta":      CategoryCard,
	"other":        CategoryOther,
	"otros":        CategoryOther,
}

// ParseCategory resolves a label, canonical or alias and in any case, to
// its Category.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// Valid reports whether c is a canonical member of the category set.
func (c Category) Valid() bool {
	switch c {
	case CategorySupermarket, CategoryClothing, CategoryGifts,
		CategoryTransport, CategoryCard, CategoryOther:
		return true
	}
	return false
}
