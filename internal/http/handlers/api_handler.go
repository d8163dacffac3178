package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

// APIHandler is the JSON mirror of the catalog page and cart drawer.
type APIHandler struct {
	Catalog  *services.CatalogService
	Sessions *services.SessionStore
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	log.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// Products applies any q/category/sort parameters to the session criteria and
// returns the visible products.
func (h *APIHandler) Products(c *fiber.Ctx) error {
	events, bad := criteriaEvents(c, h.Catalog.ListCategories())
	if bad != "" {
		return badRequest(c, bad, "invalid "+bad)
	}
	var (
		products []domain.Product
		cr       domain.Criteria
	)
	h.Sessions.Do(sid(c), func(s *services.Session) {
		for _, ev := range events {
			ev(s)
		}
		products = s.Visible()
		cr = s.Criteria()
	})
	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
		"query":    cr.Query,
		"category": cr.Category,
		"sort":     cr.Sort.String(),
	})
}

func (h *APIHandler) Product(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}

func (h *APIHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.Catalog.ListCategories()})
}

func (h *APIHandler) View(c *fiber.Ctx) error {
	var v services.View
	h.Sessions.Do(sid(c), func(s *services.Session) { v = s.View() })
	return c.JSON(v)
}

func (h *APIHandler) summary(c *fiber.Ctx) error {
	var sum cart.Summary
	h.Sessions.Do(sid(c), func(s *services.Session) { sum = s.CartSummary() })
	return c.JSON(sum)
}

func (h *APIHandler) Cart(c *fiber.Ctx) error { return h.summary(c) }

type addItemReq struct {
	ProductID int `json:"productId"`
}

func (h *APIHandler) AddItem(c *fiber.Ctx) error {
	var req addItemReq
	if err := c.BodyParser(&req); err != nil || req.ProductID < 1 {
		return badRequest(c, "productId", "productId must be a positive integer")
	}
	h.Sessions.Do(sid(c), func(s *services.Session) { s.AddToCart(req.ProductID) })
	log.Audit(c, "cart.add", map[string]any{"product": req.ProductID})
	c.Status(fiber.StatusCreated)
	return h.summary(c)
}

type setQtyReq struct {
	Quantity *int `json:"quantity"`
}

func (h *APIHandler) SetQuantity(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	var req setQtyReq
	if err := c.BodyParser(&req); err != nil || req.Quantity == nil {
		return badRequest(c, "quantity", "quantity is required")
	}
	qty := validate.ClampQty(*req.Quantity)
	h.Sessions.Do(sid(c), func(s *services.Session) { s.SetQuantity(id, qty) })
	log.Audit(c, "cart.quantity", map[string]any{"product": id, "qty": qty})
	return h.summary(c)
}

func (h *APIHandler) RemoveItem(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	h.Sessions.Do(sid(c), func(s *services.Session) { s.RemoveFromCart(id) })
	log.Audit(c, "cart.remove", map[string]any{"product": id})
	return h.summary(c)
}
