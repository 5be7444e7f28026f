package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/models"
)

// PingRepository persists health-check observations.
type PingRepository interface {
	Create(ctx context.Context, ping *models.DomainPing) error
	ListRecent(ctx context.Context, tenantID uint, limit int) ([]models.DomainPing, error)
}

type pingRepository struct {
	db *gorm.DB
}

// NewPingRepository constructs the ping repository.
func NewPingRepository(db *gorm.DB) PingRepository {
	return &pingRepository{db: db}
}

func (r *pingRepository) Create(ctx context.Context, ping *models.DomainPing) error {
	return r.db.WithContext(ctx).Create(ping).Error
}

func (r *pingRepository) ListRecent(ctx context.Context, tenantID uint, limit int) ([]models.DomainPing, error) {
	if limit <= 0 {
		limit = 50
	}

	var pings []models.DomainPing
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("checked_at DESC, id DESC").
		Limit(limit).
		Find(&pings).Error
	return pings, err
}
