package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CatalogHandler struct {
	Catalog  *services.CatalogService
	Sessions *services.SessionStore
}

// criteriaEvents turns the q/category/sort query parameters that are present
// into session events. Categories must be among those offered. It reports the
// name of the first invalid field.
func criteriaEvents(c *fiber.Ctx, offered []string) ([]func(*services.Session), string) {
	var events []func(*services.Session)
	args := c.Context().QueryArgs()

	if args.Has("q") {
		q, ok := validate.Q(c.Query("q"))
		if !ok {
			return nil, "q"
		}
		events = append(events, func(s *services.Session) { s.Search(q) })
	}
	if args.Has("category") {
		cat, ok := validate.Category(c.Query("category"), offered)
		if !ok {
			return nil, "category"
		}
		events = append(events, func(s *services.Session) { s.FilterByCategory(cat) })
	}
	if args.Has("sort") {
		order, ok := validate.Sort(c.Query("sort"))
		if !ok {
			return nil, "sort"
		}
		events = append(events, func(s *services.Session) { s.SortByPrice(order) })
	}
	return events, ""
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	events, bad := criteriaEvents(c, h.Catalog.ListCategories())
	if bad != "" {
		log.Security(c, "validation.fail", map[string]any{"field": bad})
		var v services.View
		h.Sessions.Do(sid(c), func(s *services.Session) { v = s.View() })
		c.Status(fiber.StatusBadRequest)
		return render(c, "catalog", fiber.Map{"View": v, "Err": "Invalid " + bad, "Empty": emptyMessage})
	}

	var v services.View
	h.Sessions.Do(sid(c), func(s *services.Session) {
		for _, ev := range events {
			ev(s)
		}
		v = s.View()
	})
	return render(c, "catalog", fiber.Map{
		"View":  v,
		"Count": len(v.Products),
		"Empty": emptyMessage,
	})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "This item is no longer available")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return notFound(c, "This item is no longer available")
	}
	var items int
	h.Sessions.Do(sid(c), func(s *services.Session) { items = s.CartSummary().TotalItems })
	return render(c, "product", fiber.Map{"P": p, "CartItems": items})
}
