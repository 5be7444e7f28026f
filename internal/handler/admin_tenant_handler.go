package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/middleware"
	"github.com/tableside/tableside-api/internal/rbac"
	"github.com/tableside/tableside-api/internal/repository"
	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/utils"
)

// AdminTenantHandler manages the current tenant's settings, custom
// domains and recent domain health checks.
type AdminTenantHandler struct {
	tenants service.AdminTenantService
	pings   repository.PingRepository
	logger  zerolog.Logger
}

// NewAdminTenantHandler constructs the handler.
func NewAdminTenantHandler(tenants service.AdminTenantService, pings repository.PingRepository, logger zerolog.Logger) *AdminTenantHandler {
	return &AdminTenantHandler{
		tenants: tenants,
		pings:   pings,
		logger:  logger.With().Str("component", "admin_tenant_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminTenantHandler) Register(router fiber.Router) {
	router.Get("", middleware.RequirePermission(rbac.ResourceTenant, rbac.ActionRead), h.get)
	router.Put("/settings", middleware.RequirePermission(rbac.ResourceTenant, rbac.ActionUpdate), h.updateSettings)

	domains := router.Group("/domains")
	domains.Post("", middleware.RequirePermission(rbac.ResourceTenant, rbac.ActionUpdate), h.addDomain)
	domains.Put("/:id", middleware.RequirePermission(rbac.ResourceTenant, rbac.ActionUpdate), h.updateDomain)
	domains.Delete("/:id", middleware.RequirePermission(rbac.ResourceTenant, rbac.ActionUpdate), h.deleteDomain)
	domains.Get("/pings", middleware.RequirePermission(rbac.ResourceTenant, rbac.ActionRead), h.recentPings)
}

func (h *AdminTenantHandler) get(c *fiber.Ctx) error {
	tenant, err := h.tenants.Get(c.Context(), actorFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load tenant")
		return sendServiceError(c, err, "failed to load tenant")
	}
	return utils.SendJSON(c, fiber.StatusOK, tenant)
}

func (h *AdminTenantHandler) updateSettings(c *fiber.Ctx) error {
	var payload dto.TenantSettingsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	tenant, err := h.tenants.UpdateSettings(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to update tenant settings")
	}
	return utils.SendJSON(c, fiber.StatusOK, tenant)
}

func (h *AdminTenantHandler) addDomain(c *fiber.Ctx) error {
	var payload dto.TenantDomainRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	domain, err := h.tenants.AddDomain(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to add domain")
	}
	return utils.SendJSON(c, fiber.StatusCreated, domain)
}

func (h *AdminTenantHandler) updateDomain(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.TenantDomainRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	domain, err := h.tenants.UpdateDomain(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err, "failed to update domain")
	}
	return utils.SendJSON(c, fiber.StatusOK, domain)
}

func (h *AdminTenantHandler) deleteDomain(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.tenants.DeleteDomain(c.Context(), actorFromContext(c), id); err != nil {
		return sendServiceError(c, err, "failed to delete domain")
	}
	return utils.SendSuccess(c)
}

func (h *AdminTenantHandler) recentPings(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	actor := actorFromContext(c)
	pings, err := h.pings.ListRecent(c.Context(), actor.TenantID, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list domain pings")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list domain pings")
	}

	results := make([]dto.PingResultResponse, 0, len(pings))
	for _, ping := range pings {
		results = append(results, dto.PingResultResponse{
			DomainID:   ping.DomainID,
			Hostname:   ping.Hostname,
			StatusCode: ping.StatusCode,
			LatencyMs:  ping.LatencyMs,
			OK:         ping.OK,
			CheckedAt:  ping.CheckedAt,
		})
	}
	return utils.SendJSON(c, fiber.StatusOK, results)
}
