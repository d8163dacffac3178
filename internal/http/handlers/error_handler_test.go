package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"storefront/internal/config"
)

// friendly error surface, no internal leakage
func TestErrorHandlerFriendlyMessage(t *testing.T) {
	cfg := config.Config{Env: "test", TemplatesDir: "../../../web/templates"}
	app := fiber.New(fiber.Config{Views: NewEngine(cfg), ErrorHandler: errorHandler})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	})
	app.Get("/api/v1/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	})

	for _, path := range []string{"/err", "/api/v1/err"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("test request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, resp.StatusCode)
		}
		b, _ := io.ReadAll(resp.Body)
		s := string(b)
		if !strings.Contains(s, "Something went wrong") {
			t.Fatalf("%s: friendly message missing; body=%s", path, s)
		}
		if strings.Contains(s, "db timeout") || strings.Contains(s, "secret") {
			t.Fatalf("%s: internal details leaked; body=%s", path, s)
		}
	}
}

func TestMoney(t *testing.T) {
	if got := Money(mustDec("199.98")); got != "$199.98" {
		t.Fatalf("got %q", got)
	}
	if got := Money(mustDec("5")); got != "$5.00" {
		t.Fatalf("got %q", got)
	}
}

func mustDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
