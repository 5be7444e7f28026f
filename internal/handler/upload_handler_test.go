package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/handler"
	"github.com/tableside/tableside-api/internal/service"
)

type mockUploadService struct {
	resp      dto.UploadResponse
	err       error
	lastActor service.Actor
	lastName  string
}

func (m *mockUploadService) Upload(_ context.Context, actor service.Actor, file *multipart.FileHeader) (dto.UploadResponse, error) {
	m.lastActor = actor
	m.lastName = file.Filename
	return m.resp, m.err
}

func uploadApp(role string, svc service.UploadService) *fiber.App {
	app := newApp(role)
	handler.NewUploadHandler(svc, testLogger()).Register(app.Group("/api/admin/uploads"))
	return app
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandler_AcceptsFile(t *testing.T) {
	svc := &mockUploadService{resp: dto.UploadResponse{ID: 9, URL: "https://cdn.example.com/menu-photo.png"}}
	app := uploadApp("manager", svc)

	resp, err := app.Test(multipartRequest(t, "file", "menu-photo.png", []byte("fake image bytes")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "menu-photo.png", svc.lastName)
	require.Equal(t, uint(1), svc.lastActor.TenantID)
}

func TestUploadHandler_MissingFileField(t *testing.T) {
	svc := &mockUploadService{}
	app := uploadApp("manager", svc)

	resp, err := app.Test(multipartRequest(t, "document", "menu-photo.png", []byte("bytes")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadHandler_RejectedTypeBadRequest(t *testing.T) {
	svc := &mockUploadService{err: service.ErrUploadTypeNotAllowed}
	app := uploadApp("manager", svc)

	resp, err := app.Test(multipartRequest(t, "file", "notes.pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadHandler_StaffForbidden(t *testing.T) {
	svc := &mockUploadService{}
	app := uploadApp("staff", svc)

	resp, err := app.Test(multipartRequest(t, "file", "menu-photo.png", []byte("bytes")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
