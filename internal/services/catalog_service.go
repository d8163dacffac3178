package services

import (
	"fmt"

	"storefront/internal/catalog"
	"storefront/internal/domain"
)

// ProductSource provisions the catalog once at startup.
type ProductSource interface {
	All() ([]domain.Product, error)
}

type CatalogService struct {
	Catalog *catalog.Catalog
}

// NewCatalogService loads every product from src into an immutable catalog.
func NewCatalogService(src ProductSource) (*CatalogService, error) {
	ps, err := src.All()
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	c, err := catalog.New(ps)
	if err != nil {
		return nil, err
	}
	return &CatalogService{Catalog: c}, nil
}

func (s *CatalogService) ListCategories() []string {
	return s.Catalog.Categories()
}

func (s *CatalogService) GetProduct(id int) (domain.Product, error) {
	return s.Catalog.Get(id)
}

// Search filters the full catalog; it never depends on earlier results.
func (s *CatalogService) Search(cr domain.Criteria) []domain.Product {
	return s.Catalog.Filter(cr)
}
