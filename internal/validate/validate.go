package validate

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

const maxQuery = 50

var reSort = regexp.MustCompile(`^(|none|low-to-high|high-to-low|asc|desc)$`)

func printable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) || !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Q validates a free-text search query: trims, truncates to maxQuery runes and
// rejects control characters. The empty query is valid and means "no text
// filter".
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !printable(s) {
		return "", false
	}
	if r := []rune(s); len(r) > maxQuery {
		s = string(r[:maxQuery])
	}
	return s, true
}

// Category accepts a label only when it is one of the offered categories.
// Blank means All.
func Category(s string, offered []string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.CategoryAll, true
	}
	if !slices.Contains(offered, s) {
		return "", false
	}
	return s, true
}

// Sort validates a sort order name.
func Sort(s string) (domain.SortOrder, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !reSort.MatchString(s) {
		return domain.SortNone, false
	}
	return domain.ParseSortOrder(s), true
}

// ProductID parses a positive product id.
func ProductID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Qty parses a requested quantity. Zero and negatives are allowed (they
// remove the line); large values are clamped.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return ClampQty(n), true
}

// ClampQty caps a requested quantity at cart.MaxQuantity.
func ClampQty(n int) int {
	return min(n, cart.MaxQuantity)
}
