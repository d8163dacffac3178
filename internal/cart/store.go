// Package cart keeps the line items of one shopping cart and derives its
// totals on demand.
package cart

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Resolver looks a product up by id. *catalog.Catalog satisfies it.
type Resolver interface {
	Lookup(id int) (domain.Product, bool)
}

// MaxQuantity caps a single line. Add and SetQuantity saturate at it.
const MaxQuantity = 99

// Store holds line items in insertion order, at most one per product and
// never with a quantity below 1. It is not safe for concurrent use.
type Store struct {
	items []domain.LineItem
}

func New() *Store { return &Store{} }

func (s *Store) index(productID int) int {
	for i, it := range s.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add creates the line with quantity 1 or increments an existing one, up to
// MaxQuantity. Ids are not validated here.
func (s *Store) Add(productID int) {
	if i := s.index(productID); i >= 0 {
		if s.items[i].Quantity < MaxQuantity {
			s.items[i].Quantity++
		}
		return
	}
	s.items = append(s.items, domain.LineItem{ProductID: productID, Quantity: 1})
}

// SetQuantity sets the quantity of a line; qty <= 0 removes it and values
// above MaxQuantity are clamped.
func (s *Store) SetQuantity(productID, qty int) {
	if qty <= 0 {
		s.Remove(productID)
		return
	}
	qty = min(qty, MaxQuantity)
	if i := s.index(productID); i >= 0 {
		s.items[i].Quantity = qty
		return
	}
	s.items = append(s.items, domain.LineItem{ProductID: productID, Quantity: qty})
}

func (s *Store) Remove(productID int) {
	if i := s.index(productID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

func (s *Store) Clear() { s.items = nil }

// Quantity returns 0 for products not in the cart.
func (s *Store) Quantity(productID int) int {
	if i := s.index(productID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// Items returns a copy of the line items.
func (s *Store) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) TotalItems() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice sums quantity x price. Lines whose product cannot be resolved
// contribute zero.
func (s *Store) TotalPrice(r Resolver) decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		p, ok := r.Lookup(it.ProductID)
		if !ok {
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Line is a line item joined with its product for display.
type Line struct {
	Product  domain.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Lines resolves every line item, skipping unresolvable ones.
func (s *Store) Lines(r Resolver) []Line {
	out := make([]Line, 0, len(s.items))
	for _, it := range s.items {
		p, ok := r.Lookup(it.ProductID)
		if !ok {
			continue
		}
		out = append(out, Line{
			Product:  p,
			Quantity: it.Quantity,
			Subtotal: p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return out
}

// Summary is the derived cart view. Unavailable counts the units on lines
// whose product could not be resolved; they are in TotalItems but not Lines.
type Summary struct {
	TotalItems  int             `json:"totalItems"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Lines       []Line          `json:"lines"`
	Unavailable int             `json:"unavailable"`
}

func (s *Store) Summary(r Resolver) Summary {
	lines := s.Lines(r)
	shown := 0
	for _, l := range lines {
		shown += l.Quantity
	}
	total := s.TotalItems()
	return Summary{
		TotalItems:  total,
		TotalPrice:  s.TotalPrice(r),
		Lines:       lines,
		Unavailable: total - shown,
	}
}
