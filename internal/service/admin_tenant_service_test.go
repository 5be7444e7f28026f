package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/repository"
)

func newTenantService(t *testing.T, audit AuditRecorder) (AdminTenantService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Tenant{Name: "Tableside Tavern", Slug: "tavern", IsActive: true}).Error)
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAdminTenantService(repository.NewTenantRepository(db), validate, audit, testLogger()), db
}

func TestAdminTenantServiceUpdateTheme(t *testing.T) {
	audit := &memoryAuditRecorder{}
	svc, _ := newTenantService(t, audit)
	actor := testActor()

	tenant, err := svc.UpdateSettings(context.Background(), actor, dto.TenantSettingsRequest{
		Theme: map[string]interface{}{
			"primary_color": "#aa3322",
			"show_specials": true,
		},
	})
	require.NoError(t, err)
	require.Equal(t, "#aa3322", tenant.Theme["primary_color"])

	require.Len(t, audit.events, 1)
	require.Equal(t, "tenant", audit.events[0].ResourceType)
}

func TestAdminTenantServiceRejectsInvalidTheme(t *testing.T) {
	svc, _ := newTenantService(t, nil)
	actor := testActor()

	_, err := svc.UpdateSettings(context.Background(), actor, dto.TenantSettingsRequest{
		Theme: map[string]interface{}{"primary_color": "red"},
	})
	require.ErrorIs(t, err, ErrInvalidTheme)

	_, err = svc.UpdateSettings(context.Background(), actor, dto.TenantSettingsRequest{
		Theme: map[string]interface{}{"unknown_key": "value"},
	})
	require.ErrorIs(t, err, ErrInvalidTheme)
}

func TestAdminTenantServiceDomainLifecycle(t *testing.T) {
	svc, _ := newTenantService(t, nil)
	actor := testActor()

	domain, err := svc.AddDomain(context.Background(), actor, dto.TenantDomainRequest{
		Hostname:  "tavern.example.com",
		IsPrimary: true,
	})
	require.NoError(t, err)
	require.NotZero(t, domain.ID)

	updated, err := svc.UpdateDomain(context.Background(), actor, domain.ID, dto.TenantDomainRequest{
		Hostname: "new.example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "new.example.com", updated.Hostname)

	require.NoError(t, svc.DeleteDomain(context.Background(), actor, domain.ID))
	err = svc.DeleteDomain(context.Background(), actor, domain.ID)
	require.ErrorIs(t, err, ErrDomainNotFound)
}

func TestAdminTenantServiceRejectsBareHostname(t *testing.T) {
	svc, _ := newTenantService(t, nil)

	_, err := svc.AddDomain(context.Background(), testActor(), dto.TenantDomainRequest{
		Hostname: "not a hostname",
	})
	require.Error(t, err)
}
