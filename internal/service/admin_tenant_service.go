package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/repository"
)

// Sentinel errors for tenant management.
var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrDomainNotFound = errors.New("domain not found")
	ErrInvalidTheme   = errors.New("theme document failed schema validation")
)

// themeSchema constrains the free-form theme document tenants may store.
const themeSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "primary_color":   {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
    "secondary_color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
    "font_family":     {"type": "string", "maxLength": 128},
    "logo_url":        {"type": "string", "maxLength": 512},
    "hero_image_url":  {"type": "string", "maxLength": 512},
    "show_specials":   {"type": "boolean"},
    "show_events":     {"type": "boolean"},
    "footer_text":     {"type": "string", "maxLength": 1000}
  },
  "additionalProperties": false
}`

// AdminTenantService manages tenant settings and domains.
type AdminTenantService interface {
	Get(ctx context.Context, actor Actor) (dto.TenantResponse, error)
	UpdateSettings(ctx context.Context, actor Actor, payload dto.TenantSettingsRequest) (dto.TenantResponse, error)
	AddDomain(ctx context.Context, actor Actor, payload dto.TenantDomainRequest) (dto.TenantDomainResponse, error)
	UpdateDomain(ctx context.Context, actor Actor, id uint, payload dto.TenantDomainRequest) (dto.TenantDomainResponse, error)
	DeleteDomain(ctx context.Context, actor Actor, id uint) error
}

type adminTenantService struct {
	repo      repository.TenantRepository
	validator *validator.Validate
	audit     AuditRecorder
	schema    *jsonschema.Schema
	logger    zerolog.Logger
}

// NewAdminTenantService constructs the tenant admin service. Panics when the
// embedded theme schema does not compile, which is a programming error.
func NewAdminTenantService(repo repository.TenantRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AdminTenantService {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("theme.json", strings.NewReader(themeSchema)); err != nil {
		panic(fmt.Sprintf("theme schema resource: %v", err))
	}
	schema := compiler.MustCompile("theme.json")

	return &adminTenantService{
		repo:      repo,
		validator: validate,
		audit:     audit,
		schema:    schema,
		logger:    logger.With().Str("component", "admin_tenant_service").Logger(),
	}
}

func (s *adminTenantService) Get(ctx context.Context, actor Actor) (dto.TenantResponse, error) {
	tenant, err := s.repo.GetByID(ctx, actor.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TenantResponse{}, ErrTenantNotFound
		}
		return dto.TenantResponse{}, err
	}
	return toTenantResponse(tenant), nil
}

func (s *adminTenantService) UpdateSettings(ctx context.Context, actor Actor, payload dto.TenantSettingsRequest) (dto.TenantResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TenantResponse{}, err
	}
	if payload.Theme != nil {
		if err := s.schema.Validate(payload.Theme); err != nil {
			return dto.TenantResponse{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
		}
	}

	tenant, err := s.repo.GetByID(ctx, actor.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TenantResponse{}, ErrTenantNotFound
		}
		return dto.TenantResponse{}, err
	}

	previous := map[string]interface{}{
		"name":  tenant.Name,
		"theme": map[string]interface{}(tenant.Theme),
	}

	if name := strings.TrimSpace(payload.Name); name != "" {
		tenant.Name = name
	}
	if payload.Theme != nil {
		tenant.Theme = datatypes.JSONMap(payload.Theme)
	}

	if err := s.repo.Update(ctx, &tenant); err != nil {
		return dto.TenantResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "update",
		ResourceType: "tenant",
		ResourceID:   &tenant.ID,
		Changes: map[string]interface{}{
			"name":  tenant.Name,
			"theme": payload.Theme,
		},
		Previous: previous,
	})

	return toTenantResponse(tenant), nil
}

func (s *adminTenantService) AddDomain(ctx context.Context, actor Actor, payload dto.TenantDomainRequest) (dto.TenantDomainResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TenantDomainResponse{}, err
	}

	domain := models.TenantDomain{
		TenantID:  actor.TenantID,
		Hostname:  strings.ToLower(strings.TrimSpace(payload.Hostname)),
		IsPrimary: payload.IsPrimary,
		IsActive:  boolOrDefault(payload.IsActive, true),
	}

	if err := s.repo.CreateDomain(ctx, &domain); err != nil {
		return dto.TenantDomainResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "create",
		ResourceType: "tenant_domain",
		ResourceID:   &domain.ID,
		Changes: map[string]interface{}{
			"hostname":   domain.Hostname,
			"is_primary": domain.IsPrimary,
		},
	})

	return toTenantDomainResponse(domain), nil
}

func (s *adminTenantService) UpdateDomain(ctx context.Context, actor Actor, id uint, payload dto.TenantDomainRequest) (dto.TenantDomainResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TenantDomainResponse{}, err
	}

	domain, err := s.repo.GetDomainByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TenantDomainResponse{}, ErrDomainNotFound
		}
		return dto.TenantDomainResponse{}, err
	}

	previous := map[string]interface{}{
		"hostname":   domain.Hostname,
		"is_primary": domain.IsPrimary,
		"is_active":  domain.IsActive,
	}

	domain.Hostname = strings.ToLower(strings.TrimSpace(payload.Hostname))
	domain.IsPrimary = payload.IsPrimary
	domain.IsActive = boolOrDefault(payload.IsActive, domain.IsActive)

	if err := s.repo.UpdateDomain(ctx, &domain); err != nil {
		return dto.TenantDomainResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "update",
		ResourceType: "tenant_domain",
		ResourceID:   &domain.ID,
		Changes: map[string]interface{}{
			"hostname":   domain.Hostname,
			"is_primary": domain.IsPrimary,
			"is_active":  domain.IsActive,
		},
		Previous: previous,
	})

	return toTenantDomainResponse(domain), nil
}

func (s *adminTenantService) DeleteDomain(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.DeleteDomain(ctx, actor.TenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDomainNotFound
		}
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "delete",
		ResourceType: "tenant_domain",
		ResourceID:   &id,
	})

	return nil
}

func (s *adminTenantService) recordAudit(ctx context.Context, actor Actor, event AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, actor, event); err != nil {
		s.logger.Warn().Err(err).Str("action", event.Action).Msg("failed to record tenant audit entry")
	}
}

func toTenantResponse(tenant models.Tenant) dto.TenantResponse {
	domains := make([]dto.TenantDomainResponse, 0, len(tenant.Domains))
	for _, domain := range tenant.Domains {
		domains = append(domains, toTenantDomainResponse(domain))
	}
	return dto.TenantResponse{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Slug:      tenant.Slug,
		Theme:     map[string]interface{}(tenant.Theme),
		IsActive:  tenant.IsActive,
		Domains:   domains,
		CreatedAt: tenant.CreatedAt,
	}
}

func toTenantDomainResponse(domain models.TenantDomain) dto.TenantDomainResponse {
	return dto.TenantDomainResponse{
		ID:        domain.ID,
		Hostname:  domain.Hostname,
		IsPrimary: domain.IsPrimary,
		IsActive:  domain.IsActive,
		CreatedAt: domain.CreatedAt,
	}
}
