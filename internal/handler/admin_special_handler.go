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

// AdminSpecialHandler manages specials and recurring special days.
type AdminSpecialHandler struct {
	specials service.AdminSpecialService
	logger   zerolog.Logger
}

// NewAdminSpecialHandler constructs the handler.
func NewAdminSpecialHandler(specials service.AdminSpecialService, logger zerolog.Logger) *AdminSpecialHandler {
	return &AdminSpecialHandler{
		specials: specials,
		logger:   logger.With().Str("component", "admin_special_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminSpecialHandler) Register(router fiber.Router) {
	router.Get("", middleware.RequirePermission(rbac.ResourceSpecials, rbac.ActionRead), h.list)
	router.Post("", middleware.RequirePermission(rbac.ResourceSpecials, rbac.ActionCreate), h.create)
	router.Put("/:id", middleware.RequirePermission(rbac.ResourceSpecials, rbac.ActionUpdate), h.update)
	router.Delete("/:id", middleware.RequirePermission(rbac.ResourceSpecials, rbac.ActionDelete), h.delete)

	days := router.Group("/days")
	days.Get("", middleware.RequirePermission(rbac.ResourceSpecialDays, rbac.ActionRead), h.listDays)
	days.Post("", middleware.RequirePermission(rbac.ResourceSpecialDays, rbac.ActionCreate), h.createDay)
	days.Delete("/:id", middleware.RequirePermission(rbac.ResourceSpecialDays, rbac.ActionDelete), h.deleteDay)
}

func (h *AdminSpecialHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	specials, err := h.specials.List(c.Context(), actorFromContext(c), page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list specials")
		return sendServiceError(c, err, "failed to list specials")
	}
	return utils.SendJSON(c, fiber.StatusOK, specials)
}

func (h *AdminSpecialHandler) create(c *fiber.Ctx) error {
	var payload dto.SpecialRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	special, err := h.specials.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to create special")
	}
	return utils.SendJSON(c, fiber.StatusCreated, special)
}

func (h *AdminSpecialHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.SpecialRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	special, err := h.specials.Update(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err, "failed to update special")
	}
	return utils.SendJSON(c, fiber.StatusOK, special)
}

func (h *AdminSpecialHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.specials.Delete(c.Context(), actorFromContext(c), id); err != nil {
		return sendServiceError(c, err, "failed to delete special")
	}
	return utils.SendSuccess(c)
}

func (h *AdminSpecialHandler) listDays(c *fiber.Ctx) error {
	days, err := h.specials.ListDays(c.Context(), actorFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list special days")
		return sendServiceError(c, err, "failed to list special days")
	}
	return utils.SendJSON(c, fiber.StatusOK, days)
}

func (h *AdminSpecialHandler) createDay(c *fiber.Ctx) error {
	var payload dto.SpecialDayRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	day, err := h.specials.CreateDay(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to create special day")
	}
	return utils.SendJSON(c, fiber.StatusCreated, day)
}

func (h *AdminSpecialHandler) deleteDay(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.specials.DeleteDay(c.Context(), actorFromContext(c), id); err != nil {
		return sendServiceError(c, err, "failed to delete special day")
	}
	return utils.SendSuccess(c)
}
