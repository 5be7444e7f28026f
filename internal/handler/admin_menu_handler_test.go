package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/handler"
	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/utils"
)

type mockMenuService struct {
	categories []dto.MenuCategoryResponse
	items      dto.MenuItemListResponse
	err        error

	lastActor    service.Actor
	lastCategory string
	lastPage     int
	lastPageSize int
	reordered    bool
}

func (m *mockMenuService) CreateCategory(_ context.Context, actor service.Actor, _ dto.MenuCategoryRequest) (dto.MenuCategoryResponse, error) {
	m.lastActor = actor
	if m.err != nil {
		return dto.MenuCategoryResponse{}, m.err
	}
	return dto.MenuCategoryResponse{ID: 1, Name: "Mains"}, nil
}

func (m *mockMenuService) ListCategories(_ context.Context, actor service.Actor) ([]dto.MenuCategoryResponse, error) {
	m.lastActor = actor
	return m.categories, m.err
}

func (m *mockMenuService) UpdateCategory(_ context.Context, _ service.Actor, _ uint, _ dto.MenuCategoryRequest) (dto.MenuCategoryResponse, error) {
	if m.err != nil {
		return dto.MenuCategoryResponse{}, m.err
	}
	return dto.MenuCategoryResponse{ID: 1, Name: "Mains"}, nil
}

func (m *mockMenuService) DeleteCategory(_ context.Context, _ service.Actor, _ uint) error {
	return m.err
}

func (m *mockMenuService) ReorderCategories(_ context.Context, _ service.Actor, _ dto.ReorderRequest) error {
	m.reordered = true
	return m.err
}

func (m *mockMenuService) CreateItem(_ context.Context, _ service.Actor, _ dto.MenuItemRequest) (dto.MenuItemResponse, error) {
	if m.err != nil {
		return dto.MenuItemResponse{}, m.err
	}
	return dto.MenuItemResponse{ID: 2, Name: "Burger"}, nil
}

func (m *mockMenuService) ListItems(_ context.Context, actor service.Actor, category string, page, pageSize int) (dto.MenuItemListResponse, error) {
	m.lastActor = actor
	m.lastCategory = category
	m.lastPage = page
	m.lastPageSize = pageSize
	return m.items, m.err
}

func (m *mockMenuService) UpdateItem(_ context.Context, _ service.Actor, _ uint, _ dto.MenuItemRequest) (dto.MenuItemResponse, error) {
	if m.err != nil {
		return dto.MenuItemResponse{}, m.err
	}
	return dto.MenuItemResponse{ID: 2, Name: "Burger"}, nil
}

func (m *mockMenuService) DeleteItem(_ context.Context, _ service.Actor, _ uint) error {
	return m.err
}

func (m *mockMenuService) ReorderItems(_ context.Context, _ service.Actor, _ dto.ReorderRequest) error {
	m.reordered = true
	return m.err
}

func menuApp(role string, svc service.AdminMenuService) *fiber.App {
	app := newApp(role)
	handler.NewAdminMenuHandler(svc, testLogger()).Register(app.Group("/api/admin/menu"))
	return app
}

func TestAdminMenuHandler_ListItemsPassesFilters(t *testing.T) {
	svc := &mockMenuService{items: dto.MenuItemListResponse{
		Items: []dto.MenuItemResponse{{ID: 2, Name: "Burger"}},
	}}
	app := menuApp("owner", svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/menu/items?category=Mains&page=2&page_size=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, "Mains", svc.lastCategory)
	require.Equal(t, 2, svc.lastPage)
	require.Equal(t, 5, svc.lastPageSize)
	require.Equal(t, uint(1), svc.lastActor.TenantID)

	var body dto.MenuItemListResponse
	decodeResponse(t, resp, &body)
	require.Len(t, body.Items, 1)
}

func TestAdminMenuHandler_CreateCategory(t *testing.T) {
	svc := &mockMenuService{}
	app := menuApp("owner", svc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/menu/categories", strings.NewReader(`{"name":"Mains"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAdminMenuHandler_ValidationErrorsReturnEveryDetail(t *testing.T) {
	svc := &mockMenuService{err: validationFailure(t)}
	app := menuApp("owner", svc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/menu/categories", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body utils.ErrorResponse
	decodeResponse(t, resp, &body)
	require.NotEmpty(t, body.Details)
}

func TestAdminMenuHandler_DeleteCategoryConflict(t *testing.T) {
	svc := &mockMenuService{err: service.ErrCategoryInUse}
	app := menuApp("owner", svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/menu/categories/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdminMenuHandler_NotFoundMapsTo404(t *testing.T) {
	svc := &mockMenuService{err: service.ErrMenuItemNotFound}
	app := menuApp("owner", svc)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/menu/items/99", strings.NewReader(`{"name":"Burger"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminMenuHandler_StaffCannotMutate(t *testing.T) {
	svc := &mockMenuService{}
	app := menuApp("staff", svc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/menu/categories", strings.NewReader(`{"name":"Mains"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	read := httptest.NewRequest(http.MethodGet, "/api/admin/menu/categories", nil)
	resp, err = app.Test(read)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminMenuHandler_InvalidIDRejected(t *testing.T) {
	svc := &mockMenuService{}
	app := menuApp("owner", svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/menu/items/zero", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminMenuHandler_ReorderReturnsSuccess(t *testing.T) {
	svc := &mockMenuService{}
	app := menuApp("manager", svc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/menu/items/reorder", strings.NewReader(`{"old_order":[1,2,3],"new_order":[3,1,2]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.reordered)
}
