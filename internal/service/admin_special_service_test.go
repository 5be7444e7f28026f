package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/repository"
)

func newSpecialService(t *testing.T, audit AuditRecorder) AdminSpecialService {
	t.Helper()
	db := openTestDB(t)
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAdminSpecialService(repository.NewSpecialRepository(db), validate, audit, testLogger())
}

func TestAdminSpecialServiceCreateAndList(t *testing.T) {
	audit := &memoryAuditRecorder{}
	svc := newSpecialService(t, audit)
	actor := testActor()

	special, err := svc.Create(context.Background(), actor, dto.SpecialRequest{
		Name:      "Taco Tuesday",
		StartDate: "2026-09-01",
		EndDate:   "2026-12-31",
	})
	require.NoError(t, err)
	require.NotZero(t, special.ID)
	require.True(t, special.IsActive)

	list, err := svc.List(context.Background(), actor, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	require.Len(t, audit.events, 1)
	require.Equal(t, "special", audit.events[0].ResourceType)
}

func TestAdminSpecialServiceRejectsInvertedWindow(t *testing.T) {
	svc := newSpecialService(t, nil)

	_, err := svc.Create(context.Background(), testActor(), dto.SpecialRequest{
		Name:      "Backwards",
		StartDate: "2026-10-01",
		EndDate:   "2026-09-01",
	})
	require.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestAdminSpecialServiceRejectsMalformedDate(t *testing.T) {
	svc := newSpecialService(t, nil)

	_, err := svc.Create(context.Background(), testActor(), dto.SpecialRequest{
		Name:      "Bad Date",
		StartDate: "01/10/2026",
		EndDate:   "2026-10-31",
	})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestAdminSpecialServiceDuplicateDayConflict(t *testing.T) {
	svc := newSpecialService(t, nil)
	actor := testActor()

	_, err := svc.CreateDay(context.Background(), actor, dto.SpecialDayRequest{
		Date:     "2026-12-25",
		Reason:   "Christmas",
		IsClosed: true,
	})
	require.NoError(t, err)

	_, err = svc.CreateDay(context.Background(), actor, dto.SpecialDayRequest{
		Date:   "2026-12-25",
		Reason: "Also Christmas",
	})
	require.ErrorIs(t, err, ErrDuplicateDay)
}

func TestAdminSpecialServiceDuplicateDayScopedToTenant(t *testing.T) {
	svc := newSpecialService(t, nil)

	_, err := svc.CreateDay(context.Background(), Actor{ID: 1, TenantID: 1, Role: "owner"}, dto.SpecialDayRequest{
		Date: "2026-12-25", IsClosed: true,
	})
	require.NoError(t, err)

	_, err = svc.CreateDay(context.Background(), Actor{ID: 2, TenantID: 2, Role: "owner"}, dto.SpecialDayRequest{
		Date: "2026-12-25", IsClosed: true,
	})
	require.NoError(t, err)
}

func TestAdminSpecialServiceDeleteDay(t *testing.T) {
	audit := &memoryAuditRecorder{}
	svc := newSpecialService(t, audit)
	actor := testActor()

	day, err := svc.CreateDay(context.Background(), actor, dto.SpecialDayRequest{
		Date: "2027-01-01", Reason: "New Year", IsClosed: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDay(context.Background(), actor, day.ID))

	err = svc.DeleteDay(context.Background(), actor, day.ID)
	require.ErrorIs(t, err, ErrSpecialDayNotFound)
}
