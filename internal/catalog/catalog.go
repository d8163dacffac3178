// Package catalog holds the read-only product collection and the filter
// pipeline that derives the visible product list from it.
package catalog

import (
	"fmt"

	"storefront/internal/domain"
)

// Catalog is immutable after New. Products keeps load order.
type Catalog struct {
	products []domain.Product
	byID     map[int]int
}

// New copies products into a catalog, rejecting duplicate ids.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Products returns a copy of the full collection in load order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int { return len(c.products) }

// Lookup resolves a product by id.
func (c *Catalog) Lookup(id int) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Get is Lookup with an error for callers that surface "not found".
func (c *Catalog) Get(id int) (domain.Product, error) {
	p, ok := c.Lookup(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return p, nil
}

// Filter applies criteria to the full collection.
func (c *Catalog) Filter(cr domain.Criteria) []domain.Product {
	return Apply(c.products, cr)
}

func (c *Catalog) Categories() []string {
	return Categories(c.products)
}
