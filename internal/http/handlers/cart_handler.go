package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type CartHandler struct {
	Sessions *services.SessionStore
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	var v services.View
	h.Sessions.Do(sid(c), func(s *services.Session) { v = s.View() })
	return render(c, "cart", fiber.Map{"Cart": v.Cart})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	h.Sessions.Do(sid(c), func(s *services.Session) { s.AddToCart(id) })
	log.Audit(c, "cart.add", map[string]any{"product": id})

	return c.Redirect(sameOriginBack(c))
}

// sameOriginBack returns the Referer's path when it points at this host, "/"
// otherwise.
func sameOriginBack(c *fiber.Ctx) string {
	ref := c.Get(fiber.HeaderReferer)
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || u.Opaque != "" || u.User != nil {
		return "/"
	}
	if u.Host != "" && u.Host != string(c.Request().Host()) {
		return "/"
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return "/"
	}
	p := u.EscapedPath()
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(u.Path, "\\") {
		return "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "qty"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid quantity")
	}
	h.Sessions.Do(sid(c), func(s *services.Session) { s.SetQuantity(id, qty) })
	log.Audit(c, "cart.quantity", map[string]any{"product": id, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	h.Sessions.Do(sid(c), func(s *services.Session) { s.RemoveFromCart(id) })
	log.Audit(c, "cart.remove", map[string]any{"product": id})
	return c.Redirect("/cart")
}
