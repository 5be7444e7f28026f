package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// newApp returns a fiber app whose routes run behind a stubbed identity, the
// shape the JWT middleware produces on real requests.
func newApp(role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		c.Locals("tenant_id", uint(1))
		c.Locals("user_role", role)
		c.Locals("user_email", "owner@example.com")
		c.Locals("user_name", "Olive Owner")
		return c.Next()
	})
	return app
}

func decodeResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// validationFailure produces a genuine validator error for mocks to return.
func validationFailure(t *testing.T) error {
	t.Helper()
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(struct {
		Name string `validate:"required"`
	}{})
	require.Error(t, err)
	return err
}
