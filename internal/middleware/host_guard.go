package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// HostGuard permanently redirects admin requests arriving on a tenant vanity
// domain to the canonical admin host, preserving path and query string.
func HostGuard(canonicalHost string) fiber.Handler {
	canonical := strings.ToLower(strings.TrimSpace(canonicalHost))

	return func(c *fiber.Ctx) error {
		if canonical == "" || !strings.HasPrefix(c.Path(), "/api/admin") {
			return c.Next()
		}

		host := strings.ToLower(strings.TrimSpace(c.Hostname()))
		if host == "" || host == canonical {
			return c.Next()
		}

		target := "https://" + canonical + c.Path()
		if query := string(c.Request().URI().QueryString()); query != "" {
			target += "?" + query
		}
		return c.Redirect(target, fiber.StatusPermanentRedirect)
	}
}
