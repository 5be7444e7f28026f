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

type mockPublicService struct {
	menu     dto.PublicMenuResponse
	specials dto.SpecialListResponse
	events   dto.EventListResponse
	err      error
	lastSlug string
}

func (m *mockPublicService) Menu(_ context.Context, slug string) (dto.PublicMenuResponse, error) {
	m.lastSlug = slug
	return m.menu, m.err
}

func (m *mockPublicService) ActiveSpecials(_ context.Context, slug string, _, _ int) (dto.SpecialListResponse, error) {
	m.lastSlug = slug
	return m.specials, m.err
}

func (m *mockPublicService) UpcomingEvents(_ context.Context, slug string, _, _ int) (dto.EventListResponse, error) {
	m.lastSlug = slug
	return m.events, m.err
}

func publicApp(svc service.PublicContentService) *fiber.App {
	app := fiber.New()
	handler.NewPublicContentHandler(svc, testLogger()).Register(app.Group("/api/public"))
	return app
}

func TestPublicContentHandler_MenuBySlug(t *testing.T) {
	svc := &mockPublicService{menu: dto.PublicMenuResponse{Tenant: "Harbor Grill"}}
	app := publicApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/public/harbor-grill/menu", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "harbor-grill", svc.lastSlug)

	var body dto.PublicMenuResponse
	decodeResponse(t, resp, &body)
	require.Equal(t, "Harbor Grill", body.Tenant)
}

func TestPublicContentHandler_UnknownTenant(t *testing.T) {
	svc := &mockPublicService{err: service.ErrTenantNotFound}
	app := publicApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/public/ghost/specials", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPublicContentHandler_EventsInvalidPage(t *testing.T) {
	svc := &mockPublicService{}
	app := publicApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/public/harbor-grill/events?page=bad", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
