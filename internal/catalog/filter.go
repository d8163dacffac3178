package catalog

import (
	"slices"
	"strings"

	"storefront/internal/domain"
)

// Apply returns the products passing the text and category filters, ordered
// by cr.Sort. The input slice is never modified and the result is never nil.
func Apply(products []domain.Product, cr domain.Criteria) []domain.Product {
	q := strings.ToLower(cr.Query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matchesQuery(p, q) {
			continue
		}
		if !cr.AllCategories() && p.Category != cr.Category {
			continue
		}
		out = append(out, p)
	}

	switch cr.Sort {
	case domain.SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case domain.SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	}
	return out
}

// q must already be lowercased.
func matchesQuery(p domain.Product, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// Categories returns the "All" sentinel followed by each distinct category in
// first-occurrence order.
func Categories(products []domain.Product) []string {
	out := []string{domain.CategoryAll}
	seen := map[string]struct{}{domain.CategoryAll: {}}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
