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

// AdminAuditHandler exposes the read side of the audit log.
type AdminAuditHandler struct {
	audit  service.AuditService
	logger zerolog.Logger
}

// NewAdminAuditHandler constructs the handler.
func NewAdminAuditHandler(audit service.AuditService, logger zerolog.Logger) *AdminAuditHandler {
	return &AdminAuditHandler{
		audit:  audit,
		logger: logger.With().Str("component", "admin_audit_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminAuditHandler) Register(router fiber.Router) {
	router.Get("", middleware.RequirePermission(rbac.ResourceAudit, rbac.ActionRead), h.list)
}

func (h *AdminAuditHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	actorID, err := parseQueryInt(c, "actor_id")
	if err != nil || actorID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor id")
	}

	req := dto.AuditListRequest{
		Page:          page,
		PageSize:      pageSize,
		Category:      c.Query("category"),
		ResourceType:  c.Query("resource_type"),
		Action:        c.Query("action"),
		ActorID:       uint(actorID),
		IncludeFailed: c.QueryBool("include_failed"),
	}

	actor := actorFromContext(c)
	entries, err := h.audit.List(c.Context(), actor.TenantID, req)
	if err != nil {
		return sendServiceError(c, err, "failed to list audit entries")
	}
	return utils.SendJSON(c, fiber.StatusOK, entries)
}
