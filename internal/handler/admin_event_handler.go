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

// AdminEventHandler manages events and event types.
type AdminEventHandler struct {
	events service.AdminEventService
	logger zerolog.Logger
}

// NewAdminEventHandler constructs the handler.
func NewAdminEventHandler(events service.AdminEventService, logger zerolog.Logger) *AdminEventHandler {
	return &AdminEventHandler{
		events: events,
		logger: logger.With().Str("component", "admin_event_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminEventHandler) Register(router fiber.Router) {
	router.Get("", middleware.RequirePermission(rbac.ResourceEvents, rbac.ActionRead), h.list)
	router.Post("", middleware.RequirePermission(rbac.ResourceEvents, rbac.ActionCreate), h.create)
	router.Put("/:id", middleware.RequirePermission(rbac.ResourceEvents, rbac.ActionUpdate), h.update)
	router.Delete("/:id", middleware.RequirePermission(rbac.ResourceEvents, rbac.ActionDelete), h.delete)

	types := router.Group("/types")
	types.Get("", middleware.RequirePermission(rbac.ResourceEvents, rbac.ActionRead), h.listTypes)
	types.Post("", middleware.RequirePermission(rbac.ResourceEvents, rbac.ActionCreate), h.createType)
	types.Put("/:id", middleware.RequirePermission(rbac.ResourceEvents, rbac.ActionUpdate), h.updateType)
	types.Delete("/:id", middleware.RequirePermission(rbac.ResourceEvents, rbac.ActionDelete), h.deactivateType)
}

func (h *AdminEventHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	events, err := h.events.List(c.Context(), actorFromContext(c), c.Query("category"), page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list events")
		return sendServiceError(c, err, "failed to list events")
	}
	return utils.SendJSON(c, fiber.StatusOK, events)
}

func (h *AdminEventHandler) create(c *fiber.Ctx) error {
	var payload dto.EventRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := h.events.Create(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to create event")
	}
	return utils.SendJSON(c, fiber.StatusCreated, event)
}

func (h *AdminEventHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.EventRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := h.events.Update(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err, "failed to update event")
	}
	return utils.SendJSON(c, fiber.StatusOK, event)
}

func (h *AdminEventHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.events.Delete(c.Context(), actorFromContext(c), id); err != nil {
		return sendServiceError(c, err, "failed to delete event")
	}
	return utils.SendSuccess(c)
}

func (h *AdminEventHandler) listTypes(c *fiber.Ctx) error {
	types, err := h.events.ListTypes(c.Context(), actorFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list event types")
		return sendServiceError(c, err, "failed to list event types")
	}
	return utils.SendJSON(c, fiber.StatusOK, types)
}

func (h *AdminEventHandler) createType(c *fiber.Ctx) error {
	var payload dto.EventTypeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	eventType, err := h.events.CreateType(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to create event type")
	}
	return utils.SendJSON(c, fiber.StatusCreated, eventType)
}

func (h *AdminEventHandler) updateType(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.EventTypeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	eventType, err := h.events.UpdateType(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err, "failed to update event type")
	}
	return utils.SendJSON(c, fiber.StatusOK, eventType)
}

func (h *AdminEventHandler) deactivateType(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.events.DeactivateType(c.Context(), actorFromContext(c), id); err != nil {
		return sendServiceError(c, err, "failed to deactivate event type")
	}
	return utils.SendSuccess(c)
}
