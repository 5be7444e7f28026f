package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/utils"
)

// AuthHandler serves the credential exchange endpoint.
type AuthHandler struct {
	users  service.AdminUserService
	logger zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users service.AdminUserService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		logger: logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	resp, err := h.users.Login(c.Context(), payload)
	if err != nil {
		return sendServiceError(c, err, "login failed")
	}
	return utils.SendJSON(c, fiber.StatusOK, resp)
}
