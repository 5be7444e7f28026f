package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tableside/tableside-api/internal/rbac"
	"github.com/tableside/tableside-api/internal/utils"
)

// RequirePermission gates a route on the static role/resource/action table.
// Missing identity is a 401; a known identity without the permission is a
// 403. Unknown roles fall through to deny.
func RequirePermission(resource rbac.Resource, action rbac.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleValue := c.Locals("user_role")
		role, _ := roleValue.(string)
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		if !rbac.HasPermission(rbac.Role(role), resource, action) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
