package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/tableside/tableside-api/internal/middleware"
	"github.com/tableside/tableside-api/internal/rbac"
)

func performPath(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func perform(t *testing.T, app *fiber.App) *http.Response {
	return performPath(t, app, "/")
}

func appWithRole(role string, resource rbac.Resource, action rbac.Action) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("user_role", role)
		}
		return c.Next()
	})
	app.Get("/", middleware.RequirePermission(resource, action), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestRequirePermissionAllows(t *testing.T) {
	app := appWithRole("staff", rbac.ResourceMenu, rbac.ActionRead)
	resp := perform(t, app)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestRequirePermissionDenies(t *testing.T) {
	app := appWithRole("staff", rbac.ResourceUsers, rbac.ActionCreate)
	resp := perform(t, app)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequirePermissionUnknownRoleDenied(t *testing.T) {
	app := appWithRole("intern", rbac.ResourceMenu, rbac.ActionRead)
	resp := perform(t, app)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequirePermissionMissingIdentity(t *testing.T) {
	app := appWithRole("", rbac.ResourceMenu, rbac.ActionRead)
	resp := perform(t, app)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
