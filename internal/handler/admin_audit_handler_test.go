package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/handler"
	"github.com/tableside/tableside-api/internal/service"
)

type mockAuditService struct {
	listResp     dto.AuditListResponse
	err          error
	lastTenantID uint
	lastReq      dto.AuditListRequest
}

func (m *mockAuditService) Record(_ context.Context, _ service.Actor, _ service.AuditEvent) error {
	return nil
}

func (m *mockAuditService) RecordFailure(_ context.Context, _ service.Actor, _ service.AuditEvent) error {
	return nil
}

func (m *mockAuditService) List(_ context.Context, tenantID uint, req dto.AuditListRequest) (dto.AuditListResponse, error) {
	m.lastTenantID = tenantID
	m.lastReq = req
	return m.listResp, m.err
}

func auditApp(role string, svc service.AuditService) *fiber.App {
	app := newApp(role)
	handler.NewAdminAuditHandler(svc, testLogger()).Register(app.Group("/api/admin/audit"))
	return app
}

func TestAdminAuditHandler_PassesFilters(t *testing.T) {
	svc := &mockAuditService{listResp: dto.AuditListResponse{
		Items: []dto.AuditEntryResponse{{ID: 11, Action: "create"}},
	}}
	app := auditApp("owner", svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/admin/audit?page=3&page_size=10&category=menu&action=create&actor_id=5&include_failed=true", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, uint(1), svc.lastTenantID)
	require.Equal(t, 3, svc.lastReq.Page)
	require.Equal(t, 10, svc.lastReq.PageSize)
	require.Equal(t, "menu", svc.lastReq.Category)
	require.Equal(t, "create", svc.lastReq.Action)
	require.Equal(t, uint(5), svc.lastReq.ActorID)
	require.True(t, svc.lastReq.IncludeFailed)
}

func TestAdminAuditHandler_UnknownCategoryBadRequest(t *testing.T) {
	svc := &mockAuditService{err: service.ErrUnknownAuditCategory}
	app := auditApp("owner", svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/audit?category=nonsense", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminAuditHandler_StaffForbidden(t *testing.T) {
	svc := &mockAuditService{}
	app := auditApp("staff", svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/audit", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
