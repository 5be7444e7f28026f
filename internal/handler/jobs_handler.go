package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/utils"
)

// JobsHandler exposes the maintenance sweeps behind the shared job token,
// so external schedulers can trigger them out of band.
type JobsHandler struct {
	pings  service.HealthPingService
	sync   service.ScheduleSyncService
	team   string
	logger zerolog.Logger
}

// NewJobsHandler constructs the handler.
func NewJobsHandler(pings service.HealthPingService, sync service.ScheduleSyncService, team string, logger zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		pings:  pings,
		sync:   sync,
		team:   team,
		logger: logger.With().Str("component", "jobs_handler").Logger(),
	}
}

// Register attaches routes. The caller wraps the router with the job token
// guard.
func (h *JobsHandler) Register(router fiber.Router) {
	router.Post("/ping-sweep", h.pingSweep)
	router.Post("/schedule-sync", h.scheduleSync)
}

func (h *JobsHandler) pingSweep(c *fiber.Ctx) error {
	result, err := h.pings.Sweep(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("ping sweep failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "ping sweep failed")
	}
	return utils.SendJSON(c, fiber.StatusOK, result)
}

func (h *JobsHandler) scheduleSync(c *fiber.Ctx) error {
	result, err := h.sync.SyncAll(c.Context(), h.team)
	if err != nil {
		h.logger.Error().Err(err).Msg("schedule sync failed")
		return utils.SendError(c, fiber.StatusBadGateway, "schedule sync failed")
	}
	return utils.SendJSON(c, fiber.StatusOK, result)
}
