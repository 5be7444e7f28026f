package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/models"
)

// EventFilter narrows event queries.
type EventFilter struct {
	TenantID   uint
	Category   string
	ActiveOnly bool
	From       *time.Time
	Page       int
	PageSize   int
}

// EventRepository persists events and event types for a tenant.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, tenantID, id uint) (models.Event, error)
	List(ctx context.Context, filter EventFilter) ([]models.Event, int64, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, tenantID, id uint) error
	ExistsOnDay(ctx context.Context, tenantID uint, category, titlePattern string, day time.Time) (bool, error)

	CreateType(ctx context.Context, eventType *models.EventType) error
	GetTypeByID(ctx context.Context, tenantID, id uint) (models.EventType, error)
	GetTypeByName(ctx context.Context, tenantID uint, name string) (models.EventType, error)
	ListTypes(ctx context.Context, tenantID uint, activeOnly bool) ([]models.EventType, error)
	UpdateType(ctx context.Context, eventType *models.EventType) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository constructs the event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, tenantID, id uint) (models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&event).Error
	return event, err
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("tenant_id = ?", filter.TenantID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
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

	var events []models.Event
	if err := query.Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, tenantID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsOnDay reports whether an event in the given category whose title
// matches the pattern already falls within the calendar day.
func (r *eventRepository) ExistsOnDay(ctx context.Context, tenantID uint, category, titlePattern string, day time.Time) (bool, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("tenant_id = ? AND category = ? AND title LIKE ? AND date >= ? AND date < ?",
			tenantID, category, titlePattern, dayStart, dayEnd).
		Count(&count).Error
	return count > 0, err
}

func (r *eventRepository) CreateType(ctx context.Context, eventType *models.EventType) error {
	return r.db.WithContext(ctx).Create(eventType).Error
}

func (r *eventRepository) GetTypeByID(ctx context.Context, tenantID, id uint) (models.EventType, error) {
	var eventType models.EventType
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&eventType).Error
	return eventType, err
}

func (r *eventRepository) GetTypeByName(ctx context.Context, tenantID uint, name string) (models.EventType, error) {
	var eventType models.EventType
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		First(&eventType).Error
	return eventType, err
}

func (r *eventRepository) ListTypes(ctx context.Context, tenantID uint, activeOnly bool) ([]models.EventType, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var types []models.EventType
	err := query.Order("sort_order ASC, name ASC").Find(&types).Error
	return types, err
}

func (r *eventRepository) UpdateType(ctx context.Context, eventType *models.EventType) error {
	return r.db.WithContext(ctx).Save(eventType).Error
}
