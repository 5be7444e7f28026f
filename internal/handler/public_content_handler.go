package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/utils"
)

// PublicContentHandler serves the unauthenticated read side: menu, active
// specials and upcoming events per tenant slug.
type PublicContentHandler struct {
	content service.PublicContentService
	logger  zerolog.Logger
}

// NewPublicContentHandler constructs the handler.
func NewPublicContentHandler(content service.PublicContentService, logger zerolog.Logger) *PublicContentHandler {
	return &PublicContentHandler{
		content: content,
		logger:  logger.With().Str("component", "public_content_handler").Logger(),
	}
}

// Register attaches routes under the tenant slug segment.
func (h *PublicContentHandler) Register(router fiber.Router) {
	router.Get("/:tenantSlug/menu", h.menu)
	router.Get("/:tenantSlug/specials", h.specials)
	router.Get("/:tenantSlug/events", h.events)
}

func (h *PublicContentHandler) menu(c *fiber.Ctx) error {
	menu, err := h.content.Menu(c.Context(), c.Params("tenantSlug"))
	if err != nil {
		return h.sendError(c, err, "failed to load menu")
	}
	return utils.SendJSON(c, fiber.StatusOK, menu)
}

func (h *PublicContentHandler) specials(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	specials, err := h.content.ActiveSpecials(c.Context(), c.Params("tenantSlug"), page, pageSize)
	if err != nil {
		return h.sendError(c, err, "failed to load specials")
	}
	return utils.SendJSON(c, fiber.StatusOK, specials)
}

func (h *PublicContentHandler) events(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	events, err := h.content.UpcomingEvents(c.Context(), c.Params("tenantSlug"), page, pageSize)
	if err != nil {
		return h.sendError(c, err, "failed to load events")
	}
	return utils.SendJSON(c, fiber.StatusOK, events)
}

func (h *PublicContentHandler) sendError(c *fiber.Ctx, err error, fallback string) error {
	if !errors.Is(err, service.ErrTenantNotFound) {
		h.logger.Error().Err(err).Str("tenant", c.Params("tenantSlug")).Msg(fallback)
	}
	return sendServiceError(c, err, fallback)
}
