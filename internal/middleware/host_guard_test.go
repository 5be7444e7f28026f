package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/tableside/tableside-api/internal/middleware"
)

func hostGuardApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.HostGuard("admin.tableside.io"))
	app.Get("/api/admin/menu/items", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/api/public/tavern/menu", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestHostGuardRedirectsVanityDomain(t *testing.T) {
	app := hostGuardApp()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/menu/items?page=2", nil)
	req.Host = "tavern.example.com"
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusPermanentRedirect, resp.StatusCode)
	require.Equal(t, "https://admin.tableside.io/api/admin/menu/items?page=2", resp.Header.Get("Location"))
}

func TestHostGuardPassesCanonicalHost(t *testing.T) {
	app := hostGuardApp()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/menu/items", nil)
	req.Host = "admin.tableside.io"
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHostGuardIgnoresPublicRoutes(t *testing.T) {
	app := hostGuardApp()

	req := httptest.NewRequest(http.MethodGet, "/api/public/tavern/menu", nil)
	req.Host = "tavern.example.com"
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
