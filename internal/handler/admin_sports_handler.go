package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/middleware"
	"github.com/tableside/tableside-api/internal/rbac"
	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/utils"
)

// AdminSportsHandler exposes the cached team schedule and the sync that
// mirrors it into the events calendar.
type AdminSportsHandler struct {
	sync     service.ScheduleSyncService
	schedule service.ScheduleProvider
	team     string
	logger   zerolog.Logger
}

// NewAdminSportsHandler constructs the handler. team is the configured slug
// passed through to the schedule source.
func NewAdminSportsHandler(sync service.ScheduleSyncService, schedule service.ScheduleProvider, team string, logger zerolog.Logger) *AdminSportsHandler {
	return &AdminSportsHandler{
		sync:     sync,
		schedule: schedule,
		team:     team,
		logger:   logger.With().Str("component", "admin_sports_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminSportsHandler) Register(router fiber.Router) {
	router.Get("/schedule", middleware.RequirePermission(rbac.ResourceSports, rbac.ActionRead), h.getSchedule)
	router.Post("/sync", middleware.RequirePermission(rbac.ResourceSports, rbac.ActionSync), h.syncSchedule)
}

func (h *AdminSportsHandler) getSchedule(c *fiber.Ctx) error {
	games, err := h.schedule.Schedule(c.Context(), h.team)
	if err != nil {
		h.logger.Error().Err(err).Str("team", h.team).Msg("failed to load schedule")
		return utils.SendError(c, fiber.StatusBadGateway, "schedule source unavailable")
	}
	return utils.SendJSON(c, fiber.StatusOK, games)
}

func (h *AdminSportsHandler) syncSchedule(c *fiber.Ctx) error {
	result, err := h.sync.Sync(c.Context(), actorFromContext(c), h.team)
	if err != nil {
		h.logger.Error().Err(err).Str("team", h.team).Msg("schedule sync failed")
		return utils.SendError(c, fiber.StatusBadGateway, "schedule sync failed")
	}
	return utils.SendJSON(c, fiber.StatusOK, result)
}
