package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/repository"
)

// Sentinel errors for menu management.
var (
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrMenuCategoryNotFound = errors.New("menu category not found")
	ErrCategoryInUse        = errors.New("menu category still has items")
)

// AdminMenuService exposes admin menu management use cases.
type AdminMenuService interface {
	CreateCategory(ctx context.Context, actor Actor, payload dto.MenuCategoryRequest) (dto.MenuCategoryResponse, error)
	ListCategories(ctx context.Context, actor Actor) ([]dto.MenuCategoryResponse, error)
	UpdateCategory(ctx context.Context, actor Actor, id uint, payload dto.MenuCategoryRequest) (dto.MenuCategoryResponse, error)
	DeleteCategory(ctx context.Context, actor Actor, id uint) error
	ReorderCategories(ctx context.Context, actor Actor, payload dto.ReorderRequest) error

	CreateItem(ctx context.Context, actor Actor, payload dto.MenuItemRequest) (dto.MenuItemResponse, error)
	ListItems(ctx context.Context, actor Actor, category string, page, pageSize int) (dto.MenuItemListResponse, error)
	UpdateItem(ctx context.Context, actor Actor, id uint, payload dto.MenuItemRequest) (dto.MenuItemResponse, error)
	DeleteItem(ctx context.Context, actor Actor, id uint) error
	ReorderItems(ctx context.Context, actor Actor, payload dto.ReorderRequest) error
}

type adminMenuService struct {
	repo      repository.MenuRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewAdminMenuService constructs the menu admin service.
func NewAdminMenuService(repo repository.MenuRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AdminMenuService {
	return &adminMenuService{
		repo:      repo,
		validator: validate,
		audit:     audit,
		logger:    logger.With().Str("component", "admin_menu_service").Logger(),
	}
}

func (s *adminMenuService) CreateCategory(ctx context.Context, actor Actor, payload dto.MenuCategoryRequest) (dto.MenuCategoryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MenuCategoryResponse{}, err
	}

	category := models.MenuCategory{
		TenantID:    actor.TenantID,
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		SortOrder:   payload.SortOrder,
		IsActive:    boolOrDefault(payload.IsActive, true),
	}

	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return dto.MenuCategoryResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "create",
		ResourceType: "menu_category",
		ResourceID:   &category.ID,
		Changes: map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"sort_order":  category.SortOrder,
			"is_active":   category.IsActive,
		},
	})

	return toMenuCategoryResponse(category), nil
}

func (s *adminMenuService) ListCategories(ctx context.Context, actor Actor) ([]dto.MenuCategoryResponse, error) {
	categories, err := s.repo.ListCategories(ctx, actor.TenantID, false)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MenuCategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toMenuCategoryResponse(category))
	}
	return responses, nil
}

func (s *adminMenuService) UpdateCategory(ctx context.Context, actor Actor, id uint, payload dto.MenuCategoryRequest) (dto.MenuCategoryResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MenuCategoryResponse{}, err
	}

	category, err := s.repo.GetCategoryByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MenuCategoryResponse{}, ErrMenuCategoryNotFound
		}
		return dto.MenuCategoryResponse{}, err
	}

	previous := map[string]interface{}{
		"name":        category.Name,
		"description": category.Description,
		"sort_order":  category.SortOrder,
		"is_active":   category.IsActive,
	}

	category.Name = strings.TrimSpace(payload.Name)
	category.Description = strings.TrimSpace(payload.Description)
	category.SortOrder = payload.SortOrder
	category.IsActive = boolOrDefault(payload.IsActive, category.IsActive)

	if err := s.repo.UpdateCategory(ctx, &category); err != nil {
		return dto.MenuCategoryResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "update",
		ResourceType: "menu_category",
		ResourceID:   &category.ID,
		Changes: map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"sort_order":  category.SortOrder,
			"is_active":   category.IsActive,
		},
		Previous: previous,
	})

	return toMenuCategoryResponse(category), nil
}

// DeleteCategory hard-deletes a category unless menu items still reference it
// by name.
func (s *adminMenuService) DeleteCategory(ctx context.Context, actor Actor, id uint) error {
	category, err := s.repo.GetCategoryByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuCategoryNotFound
		}
		return err
	}

	count, err := s.repo.CountItemsInCategory(ctx, actor.TenantID, category.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d item(s) still assigned to %q", ErrCategoryInUse, count, category.Name)
	}

	if err := s.repo.DeleteCategory(ctx, actor.TenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuCategoryNotFound
		}
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "delete",
		ResourceType: "menu_category",
		ResourceID:   &id,
		Previous: map[string]interface{}{
			"name": category.Name,
		},
	})

	return nil
}

// ReorderCategories records a consolidated reorder audit entry. Per-category
// sort orders are persisted by the individual update calls; this endpoint is
// a summary of the move, not a source of truth for current order.
func (s *adminMenuService) ReorderCategories(ctx context.Context, actor Actor, payload dto.ReorderRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "reorder",
		ResourceType: "menu_category",
		Changes: map[string]interface{}{
			"old_order": payload.OldOrder,
			"new_order": payload.NewOrder,
		},
	})
	return nil
}

// validateItem merges tag-driven field errors with the leniently decoded
// price so one response carries every problem.
func (s *adminMenuService) validateItem(payload dto.MenuItemRequest) error {
	var details []string
	if err := s.validator.Struct(payload); err != nil {
		details = ValidationDetails(err)
	}
	details = append(details, payload.Price.Problems("price")...)
	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}

func (s *adminMenuService) CreateItem(ctx context.Context, actor Actor, payload dto.MenuItemRequest) (dto.MenuItemResponse, error) {
	if err := s.validateItem(payload); err != nil {
		return dto.MenuItemResponse{}, err
	}

	item := models.MenuItem{
		TenantID:    actor.TenantID,
		Category:    strings.TrimSpace(payload.Category),
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		Price:       payload.Price.Value(),
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		SortOrder:   payload.SortOrder,
		IsActive:    boolOrDefault(payload.IsActive, true),
	}

	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return dto.MenuItemResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "create",
		ResourceType: "menu_item",
		ResourceID:   &item.ID,
		Changes: map[string]interface{}{
			"category":  item.Category,
			"name":      item.Name,
			"price":     item.Price,
			"image_url": item.ImageURL,
			"is_active": item.IsActive,
		},
	})

	return toMenuItemResponse(item), nil
}

func (s *adminMenuService) ListItems(ctx context.Context, actor Actor, category string, page, pageSize int) (dto.MenuItemListResponse, error) {
	filter := repository.MenuItemFilter{
		TenantID: actor.TenantID,
		Category: strings.TrimSpace(category),
		Page:     normalizePage(page),
		PageSize: clampPageSize(pageSize),
	}

	items, total, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return dto.MenuItemListResponse{}, err
	}

	responses := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toMenuItemResponse(item))
	}

	return dto.MenuItemListResponse{
		Items: responses,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *adminMenuService) UpdateItem(ctx context.Context, actor Actor, id uint, payload dto.MenuItemRequest) (dto.MenuItemResponse, error) {
	if err := s.validateItem(payload); err != nil {
		return dto.MenuItemResponse{}, err
	}

	item, err := s.repo.GetItemByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MenuItemResponse{}, ErrMenuItemNotFound
		}
		return dto.MenuItemResponse{}, err
	}

	previous := map[string]interface{}{
		"category":   item.Category,
		"name":       item.Name,
		"price":      item.Price,
		"sort_order": item.SortOrder,
		"is_active":  item.IsActive,
	}

	item.Category = strings.TrimSpace(payload.Category)
	item.Name = strings.TrimSpace(payload.Name)
	item.Description = strings.TrimSpace(payload.Description)
	item.Price = payload.Price.Value()
	item.ImageURL = strings.TrimSpace(payload.ImageURL)
	item.SortOrder = payload.SortOrder
	item.IsActive = boolOrDefault(payload.IsActive, item.IsActive)

	if err := s.repo.UpdateItem(ctx, &item); err != nil {
		return dto.MenuItemResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "update",
		ResourceType: "menu_item",
		ResourceID:   &item.ID,
		Changes: map[string]interface{}{
			"category":   item.Category,
			"name":       item.Name,
			"price":      item.Price,
			"sort_order": item.SortOrder,
			"is_active":  item.IsActive,
		},
		Previous: previous,
	})

	return toMenuItemResponse(item), nil
}

func (s *adminMenuService) DeleteItem(ctx context.Context, actor Actor, id uint) error {
	item, err := s.repo.GetItemByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuItemNotFound
		}
		return err
	}

	if err := s.repo.DeleteItem(ctx, actor.TenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuItemNotFound
		}
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "delete",
		ResourceType: "menu_item",
		ResourceID:   &id,
		Previous: map[string]interface{}{
			"category": item.Category,
			"name":     item.Name,
			"price":    item.Price,
		},
	})

	return nil
}

// ReorderItems mirrors ReorderCategories: one consolidated audit entry, no
// independent persistence step.
func (s *adminMenuService) ReorderItems(ctx context.Context, actor Actor, payload dto.ReorderRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "reorder",
		ResourceType: "menu_item",
		Changes: map[string]interface{}{
			"category":  strings.TrimSpace(payload.Category),
			"old_order": payload.OldOrder,
			"new_order": payload.NewOrder,
		},
	})
	return nil
}

// recordAudit is best-effort: a failed audit write never reverses or blocks
// the primary mutation.
func (s *adminMenuService) recordAudit(ctx context.Context, actor Actor, event AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, actor, event); err != nil {
		s.logger.Warn().Err(err).Str("action", event.Action).Msg("failed to record menu audit entry")
	}
}

func toMenuCategoryResponse(category models.MenuCategory) dto.MenuCategoryResponse {
	return dto.MenuCategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		SortOrder:   category.SortOrder,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func toMenuItemResponse(item models.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:          item.ID,
		Category:    item.Category,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		SortOrder:   item.SortOrder,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
