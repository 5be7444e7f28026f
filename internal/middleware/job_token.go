package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tableside/tableside-api/internal/utils"
)

// JobToken guards the scheduled-job trigger endpoints with a static shared
// secret carried in the X-Job-Token header.
func JobToken(token string) fiber.Handler {
	expected := strings.TrimSpace(token)

	return func(c *fiber.Ctx) error {
		if expected == "" {
			return utils.SendError(c, fiber.StatusForbidden, "job endpoints disabled")
		}

		presented := strings.TrimSpace(c.Get("X-Job-Token"))
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid job token")
		}
		return c.Next()
	}
}
