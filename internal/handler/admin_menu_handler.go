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

// AdminMenuHandler manages menu categories and items.
type AdminMenuHandler struct {
	menu   service.AdminMenuService
	logger zerolog.Logger
}

// NewAdminMenuHandler constructs the handler.
func NewAdminMenuHandler(menu service.AdminMenuService, logger zerolog.Logger) *AdminMenuHandler {
	return &AdminMenuHandler{
		menu:   menu,
		logger: logger.With().Str("component", "admin_menu_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminMenuHandler) Register(router fiber.Router) {
	categories := router.Group("/categories")
	categories.Get("", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionRead), h.listCategories)
	categories.Post("", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionCreate), h.createCategory)
	categories.Post("/reorder", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionReorder), h.reorderCategories)
	categories.Put("/:id", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionUpdate), h.updateCategory)
	categories.Delete("/:id", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionDelete), h.deleteCategory)

	items := router.Group("/items")
	items.Get("", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionRead), h.listItems)
	items.Post("", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionCreate), h.createItem)
	items.Post("/reorder", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionReorder), h.reorderItems)
	items.Put("/:id", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionUpdate), h.updateItem)
	items.Delete("/:id", middleware.RequirePermission(rbac.ResourceMenu, rbac.ActionDelete), h.deleteItem)
}

func (h *AdminMenuHandler) listCategories(c *fiber.Ctx) error {
	categories, err := h.menu.ListCategories(c.Context(), actorFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list menu categories")
		return sendServiceError(c, err, "failed to list menu categories")
	}
	return utils.SendJSON(c, fiber.StatusOK, categories)
}

func (h *AdminMenuHandler) createCategory(c *fiber.Ctx) error {
	var payload dto.MenuCategoryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	category, err := h.menu.CreateCategory(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to create menu category")
	}
	return utils.SendJSON(c, fiber.StatusCreated, category)
}

func (h *AdminMenuHandler) updateCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.MenuCategoryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	category, err := h.menu.UpdateCategory(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err, "failed to update menu category")
	}
	return utils.SendJSON(c, fiber.StatusOK, category)
}

func (h *AdminMenuHandler) deleteCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.menu.DeleteCategory(c.Context(), actorFromContext(c), id); err != nil {
		return sendServiceError(c, err, "failed to delete menu category")
	}
	return utils.SendSuccess(c)
}

func (h *AdminMenuHandler) reorderCategories(c *fiber.Ctx) error {
	var payload dto.ReorderRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.menu.ReorderCategories(c.Context(), actorFromContext(c), payload); err != nil {
		return sendServiceError(c, err, "failed to record category reorder")
	}
	return utils.SendSuccess(c)
}

func (h *AdminMenuHandler) listItems(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	items, err := h.menu.ListItems(c.Context(), actorFromContext(c), c.Query("category"), page, pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list menu items")
		return sendServiceError(c, err, "failed to list menu items")
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *AdminMenuHandler) createItem(c *fiber.Ctx) error {
	var payload dto.MenuItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.menu.CreateItem(c.Context(), actorFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to create menu item")
	}
	return utils.SendJSON(c, fiber.StatusCreated, item)
}

func (h *AdminMenuHandler) updateItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload dto.MenuItemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.menu.UpdateItem(c.Context(), actorFromContext(c), id, payload)
	if err != nil {
		return sendServiceError(c, err, "failed to update menu item")
	}
	return utils.SendJSON(c, fiber.StatusOK, item)
}

func (h *AdminMenuHandler) deleteItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.menu.DeleteItem(c.Context(), actorFromContext(c), id); err != nil {
		return sendServiceError(c, err, "failed to delete menu item")
	}
	return utils.SendSuccess(c)
}

func (h *AdminMenuHandler) reorderItems(c *fiber.Ctx) error {
	var payload dto.ReorderRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.menu.ReorderItems(c.Context(), actorFromContext(c), payload); err != nil {
		return sendServiceError(c, err, "failed to record item reorder")
	}
	return utils.SendSuccess(c)
}
