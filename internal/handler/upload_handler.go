package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/middleware"
	"github.com/tableside/tableside-api/internal/rbac"
	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/utils"
)

// UploadHandler accepts image uploads for menu items, specials and events.
type UploadHandler struct {
	uploads service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(uploads service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register attaches routes.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("", middleware.RequirePermission(rbac.ResourceUploads, rbac.ActionCreate), h.upload)
}

func (h *UploadHandler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file field is required")
	}

	result, err := h.uploads.Upload(c.Context(), actorFromContext(c), file)
	if err != nil {
		h.logger.Error().Err(err).Str("file", file.Filename).Msg("upload failed")
		return sendServiceError(c, err, "upload failed")
	}
	return utils.SendJSON(c, fiber.StatusCreated, result)
}
