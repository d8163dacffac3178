package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryAll is the category selector sentinel meaning "no category filter".
const CategoryAll = "All"

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID          int             `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Category    string          `db:"category" json:"category"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Rating      float64         `db:"rating" json:"rating"` // display only
	Image       string          `db:"image" json:"image"`
}

// LineItem is one cart entry. Quantity is always >= 1 while the item exists.
type LineItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type SortOrder int

const (
	SortNone SortOrder = iota
	SortPriceAsc
	SortPriceDesc
)

func (s SortOrder) String() string {
	switch s {
	case SortPriceAsc:
		return "low-to-high"
	case SortPriceDesc:
		return "high-to-low"
	}
	return "none"
}

// ParseSortOrder never fails: unknown values mean no reordering.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low-to-high", "asc":
		return SortPriceAsc
	case "high-to-low", "desc":
		return SortPriceDesc
	}
	return SortNone
}

type Criteria struct {
	Query    string    `json:"query"`
	Category string    `json:"category"`
	Sort     SortOrder `json:"-"`
}

// AllCategories reports whether the criteria select every category.
func (c Criteria) AllCategories() bool {
	return c.Category == "" || c.Category == CategoryAll
}
