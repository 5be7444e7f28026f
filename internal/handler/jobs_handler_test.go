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
	"github.com/tableside/tableside-api/internal/middleware"
)

type mockPingService struct {
	resp dto.PingSweepResponse
	err  error
	runs int
}

func (m *mockPingService) Sweep(_ context.Context) (dto.PingSweepResponse, error) {
	m.runs++
	return m.resp, m.err
}

func jobsApp(token string, pings *mockPingService, sync *mockSyncService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/jobs", middleware.JobToken(token))
	handler.NewJobsHandler(pings, sync, "home-team", testLogger()).Register(group)
	return app
}

func TestJobsHandler_PingSweepWithToken(t *testing.T) {
	pings := &mockPingService{resp: dto.PingSweepResponse{Checked: 4, Failed: 1}}
	app := jobsApp("sekret", pings, &mockSyncService{})

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/ping-sweep", nil)
	req.Header.Set("X-Job-Token", "sekret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, pings.runs)

	var body dto.PingSweepResponse
	decodeResponse(t, resp, &body)
	require.Equal(t, 4, body.Checked)
}

func TestJobsHandler_ScheduleSyncCoversAllTenants(t *testing.T) {
	sync := &mockSyncService{resp: dto.ScheduleSyncResponse{Synced: 2}}
	app := jobsApp("sekret", &mockPingService{}, sync)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/schedule-sync", nil)
	req.Header.Set("X-Job-Token", "sekret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, sync.allRuns)
	require.Equal(t, "home-team", sync.lastTeam)
}

func TestJobsHandler_WrongTokenRejected(t *testing.T) {
	pings := &mockPingService{}
	app := jobsApp("sekret", pings, &mockSyncService{})

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/ping-sweep", nil)
	req.Header.Set("X-Job-Token", "guess")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Zero(t, pings.runs)
}
