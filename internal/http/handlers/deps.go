package handlers

import (
	"storefront/internal/services"
)

type Deps struct {
	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	APIHandler     *APIHandler
	Sessions       *services.SessionStore
}

func NewDeps(catalogSvc *services.CatalogService, sessions *services.SessionStore) *Deps {
	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc, Sessions: sessions},
		CartHandler:    &CartHandler{Sessions: sessions},
		APIHandler:     &APIHandler{Catalog: catalogSvc, Sessions: sessions},
		Sessions:       sessions,
	}
}
