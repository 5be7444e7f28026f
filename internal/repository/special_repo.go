package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/models"
)

// SpecialFilter narrows special queries.
type SpecialFilter struct {
	TenantID   uint
	ActiveOnly bool
	Window     *time.Time
	Page       int
	PageSize   int
}

// SpecialRepository persists specials and special days for a tenant.
type SpecialRepository interface {
	Create(ctx context.Context, special *models.Special) error
	GetByID(ctx context.Context, tenantID, id uint) (models.Special, error)
	List(ctx context.Context, filter SpecialFilter) ([]models.Special, int64, error)
	Update(ctx context.Context, special *models.Special) error
	Delete(ctx context.Context, tenantID, id uint) error

	CreateDay(ctx context.Context, day *models.SpecialDay) error
	GetDayByDate(ctx context.Context, tenantID uint, date time.Time) (models.SpecialDay, error)
	ListDays(ctx context.Context, tenantID uint, from time.Time) ([]models.SpecialDay, error)
	UpdateDay(ctx context.Context, day *models.SpecialDay) error
	DeleteDay(ctx context.Context, tenantID, id uint) error
}

type specialRepository struct {
	db *gorm.DB
}

// NewSpecialRepository constructs the special repository.
func NewSpecialRepository(db *gorm.DB) SpecialRepository {
	return &specialRepository{db: db}
}

func (r *specialRepository) Create(ctx context.Context, special *models.Special) error {
	return r.db.WithContext(ctx).Create(special).Error
}

func (r *specialRepository) GetByID(ctx context.Context, tenantID, id uint) (models.Special, error) {
	var special models.Special
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&special).Error
	return special, err
}

func (r *specialRepository) List(ctx context.Context, filter SpecialFilter) ([]models.Special, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Special{}).
		Where("tenant_id = ?", filter.TenantID)

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Window != nil {
		query = query.Where("start_date <= ? AND end_date >= ?", *filter.Window, *filter.Window)
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

	var specials []models.Special
	if err := query.Order("start_date ASC, id ASC").Find(&specials).Error; err != nil {
		return nil, 0, err
	}

	return specials, total, nil
}

func (r *specialRepository) Update(ctx context.Context, special *models.Special) error {
	return r.db.WithContext(ctx).Save(special).Error
}

func (r *specialRepository) Delete(ctx context.Context, tenantID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.Special{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *specialRepository) CreateDay(ctx context.Context, day *models.SpecialDay) error {
	return r.db.WithContext(ctx).Create(day).Error
}

func (r *specialRepository) GetDayByDate(ctx context.Context, tenantID uint, date time.Time) (models.SpecialDay, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var day models.SpecialDay
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, dayStart, dayEnd).
		First(&day).Error
	return day, err
}

func (r *specialRepository) ListDays(ctx context.Context, tenantID uint, from time.Time) ([]models.SpecialDay, error) {
	var days []models.SpecialDay
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND date >= ?", tenantID, from).
		Order("date ASC").
		Find(&days).Error
	return days, err
}

func (r *specialRepository) UpdateDay(ctx context.Context, day *models.SpecialDay) error {
	return r.db.WithContext(ctx).Save(day).Error
}

func (r *specialRepository) DeleteDay(ctx context.Context, tenantID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.SpecialDay{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
