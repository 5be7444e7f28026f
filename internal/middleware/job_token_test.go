package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/tableside/tableside-api/internal/middleware"
)

func jobTokenApp(secret string) *fiber.App {
	app := fiber.New()
	app.Post("/jobs/ping", middleware.JobToken(secret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	return app
}

func TestJobTokenAccepts(t *testing.T) {
	app := jobTokenApp("job-secret")

	req := httptest.NewRequest(http.MethodPost, "/jobs/ping", nil)
	req.Header.Set("X-Job-Token", "job-secret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
}

func TestJobTokenRejectsWrongToken(t *testing.T) {
	app := jobTokenApp("job-secret")

	req := httptest.NewRequest(http.MethodPost, "/jobs/ping", nil)
	req.Header.Set("X-Job-Token", "guess")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJobTokenDisabledWhenUnset(t *testing.T) {
	app := jobTokenApp("")

	req := httptest.NewRequest(http.MethodPost, "/jobs/ping", nil)
	req.Header.Set("X-Job-Token", "anything")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
