package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const emptyMessage = "No products found matching your criteria."

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("csrf").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}

// Money formats a price for templates.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
