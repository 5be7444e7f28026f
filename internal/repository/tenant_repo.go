package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/models"
)

// TenantRepository persists tenants and their domains.
type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uint) (models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (models.Tenant, error)
	ListActive(ctx context.Context) ([]models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error

	CreateDomain(ctx context.Context, domain *models.TenantDomain) error
	GetDomainByID(ctx context.Context, tenantID, id uint) (models.TenantDomain, error)
	ListDomains(ctx context.Context, tenantID uint) ([]models.TenantDomain, error)
	ListActiveDomains(ctx context.Context) ([]models.TenantDomain, error)
	UpdateDomain(ctx context.Context, domain *models.TenantDomain) error
	DeleteDomain(ctx context.Context, tenantID, id uint) error
}

type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository constructs the tenant repository.
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

func (r *tenantRepository) GetByID(ctx context.Context, id uint) (models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).Preload("Domains").First(&tenant, id).Error
	return tenant, err
}

func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.WithContext(ctx).Preload("Domains").
		Where("slug = ?", slug).
		First(&tenant).Error
	return tenant, err
}

func (r *tenantRepository) ListActive(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&tenants).Error
	return tenants, err
}

func (r *tenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}

func (r *tenantRepository) CreateDomain(ctx context.Context, domain *models.TenantDomain) error {
	return r.db.WithContext(ctx).Create(domain).Error
}

func (r *tenantRepository) GetDomainByID(ctx context.Context, tenantID, id uint) (models.TenantDomain, error) {
	var domain models.TenantDomain
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&domain).Error
	return domain, err
}

func (r *tenantRepository) ListDomains(ctx context.Context, tenantID uint) ([]models.TenantDomain, error) {
	var domains []models.TenantDomain
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("is_primary DESC, hostname ASC").
		Find(&domains).Error
	return domains, err
}

// ListActiveDomains returns every active domain across active tenants, the
// working set for the health-ping sweep.
func (r *tenantRepository) ListActiveDomains(ctx context.Context) ([]models.TenantDomain, error) {
	var domains []models.TenantDomain
	err := r.db.WithContext(ctx).
		Joins("JOIN tenants ON tenants.id = tenant_domains.tenant_id AND tenants.is_active = ?", true).
		Where("tenant_domains.is_active = ?", true).
		Order("tenant_domains.hostname ASC").
		Find(&domains).Error
	return domains, err
}

func (r *tenantRepository) UpdateDomain(ctx context.Context, domain *models.TenantDomain) error {
	return r.db.WithContext(ctx).Save(domain).Error
}

func (r *tenantRepository) DeleteDomain(ctx context.Context, tenantID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.TenantDomain{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
