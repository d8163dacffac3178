package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sidCookie = "sid"

// SessionID makes sure every request carries a session id cookie and exposes
// it to handlers and the logger through Locals.
func SessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     sidCookie,
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Secure:   false,
			})
		}
		c.Locals("sid", sid)
		return c.Next()
	}
}

func sid(c *fiber.Ctx) string {
	s, _ := c.Locals("sid").(string)
	return s
}
