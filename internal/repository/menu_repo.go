package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/models"
)

// MenuItemFilter narrows menu item queries.
type MenuItemFilter struct {
	TenantID   uint
	Category   string
	Search     string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// MenuRepository persists menu categories and items for a tenant.
type MenuRepository interface {
	CreateCategory(ctx context.Context, category *models.MenuCategory) error
	GetCategoryByID(ctx context.Context, tenantID, id uint) (models.MenuCategory, error)
	ListCategories(ctx context.Context, tenantID uint, activeOnly bool) ([]models.MenuCategory, error)
	UpdateCategory(ctx context.Context, category *models.MenuCategory) error
	DeleteCategory(ctx context.Context, tenantID, id uint) error
	CountItemsInCategory(ctx context.Context, tenantID uint, category string) (int64, error)

	CreateItem(ctx context.Context, item *models.MenuItem) error
	GetItemByID(ctx context.Context, tenantID, id uint) (models.MenuItem, error)
	ListItems(ctx context.Context, filter MenuItemFilter) ([]models.MenuItem, int64, error)
	UpdateItem(ctx context.Context, item *models.MenuItem) error
	DeleteItem(ctx context.Context, tenantID, id uint) error
}

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository constructs the menu repository.
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *models.MenuCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *menuRepository) GetCategoryByID(ctx context.Context, tenantID, id uint) (models.MenuCategory, error) {
	var category models.MenuCategory
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&category).Error
	return category, err
}

func (r *menuRepository) ListCategories(ctx context.Context, tenantID uint, activeOnly bool) ([]models.MenuCategory, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.MenuCategory
	err := query.Order("sort_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

func (r *menuRepository) UpdateCategory(ctx context.Context, category *models.MenuCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *menuRepository) DeleteCategory(ctx context.Context, tenantID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.MenuCategory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepository) CountItemsInCategory(ctx context.Context, tenantID uint, category string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MenuItem{}).
		Where("tenant_id = ? AND category = ?", tenantID, category).
		Count(&count).Error
	return count, err
}

func (r *menuRepository) CreateItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) GetItemByID(ctx context.Context, tenantID, id uint) (models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error
	return item, err
}

func (r *menuRepository) ListItems(ctx context.Context, filter MenuItemFilter) ([]models.MenuItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItem{}).
		Where("tenant_id = ?", filter.TenantID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var items []models.MenuItem
	if err := query.Order("sort_order ASC, name ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *menuRepository) UpdateItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuRepository) DeleteItem(ctx context.Context, tenantID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
