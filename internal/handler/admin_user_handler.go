package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/middleware"
	"github.com/tableside/tableside-api/internal/rbac"
	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/utils"
)

// AdminUserHandler manages admin user accounts.
type AdminUserHandler struct {
	users  service.AdminUserService
	logger zerolog.Logger
}

// NewAdminUserHandler constructs the handler.
func NewAdminUserHandler(users service.AdminUserService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		users:  users,
		logger: logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Get("", middleware.RequirePermission(rbac.ResourceUsers, rbac.ActionRead), h.list)
	router.Post("", middleware.RequirePermission(rbac.ResourceUsers, rbac.ActionCreate), h.create)
	router.Put("/:id", middleware.RequirePermission(rbac.ResourceUsers, rbac.ActionUpdate), h.update)
	router.Delete("/:id", middleware.RequirePermission(rbac.ResourceUsers, rbac.ActionDelete), h.delete)
}

func (h *AdminUserHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	users, err := h.users.List(c.Context(), actorFromContext(c), page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		return sendServiceError(c, err, "failed to list users")
	}
	return utils.SendJSON(c, fiber.StatusOK, users)
}

func (h *AdminUserHandler) create(c *fiber.Ctx) error {
	var payload dto.UserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to create user")
	}
	return utils.SendJSON(c, fiber.StatusCreated, user)
}

func (h *AdminUserHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.UserUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err, "failed to update user")
	}
	return utils.SendJSON(c, fiber.StatusOK, user)
}

func (h *AdminUserHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.users.Delete(c.Context(), actorFromContext(c), id); err != nil {
		return sendServiceError(c, err, "failed to delete user")
	}
	return utils.SendSuccess(c)
}
