package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	"storefront/internal/repos"
	"storefront/internal/services"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{
		Env:          "test",
		DBDSN:        ":memory:",
		TemplatesDir: "../../../web/templates",
		RateLimit:    1000,
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	catalogSvc, err := services.NewCatalogService(repos.NewProductRepo(db))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	sessions := services.NewSessionStore(catalogSvc.Catalog, 0)
	return handlers.NewApp(cfg, handlers.NewDeps(catalogSvc, sessions))
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// client keeps the session cookie between requests.
type client struct {
	t   *testing.T
	app *fiber.App
	sid string
}

func (cl *client) do(method, path, body string) *http.Response {
	cl.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cl.sid})
	}
	resp, err := cl.app.Test(req)
	if err != nil {
		cl.t.Fatalf("%s %s: %v", method, path, err)
	}
	if sid := extractCookie(resp, "sid"); sid != "" {
		cl.sid = sid
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
