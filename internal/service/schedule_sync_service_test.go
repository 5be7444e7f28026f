package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/repository"
	"github.com/tableside/tableside-api/internal/sports"
)

type fixedScheduleProvider struct {
	games []sports.Game
	err   error
}

func (f *fixedScheduleProvider) Schedule(ctx context.Context, team string) ([]sports.Game, error) {
	return f.games, f.err
}

func TestScheduleSyncCreatesEventsAndType(t *testing.T) {
	db := openTestDB(t)
	events := repository.NewEventRepository(db)
	audit := &memoryAuditRecorder{}
	provider := &fixedScheduleProvider{games: []sports.Game{
		{Opponent: "Riverside FC", Date: time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC), Home: true, TV: "ESPN"},
		{Opponent: "Harbor City", Date: time.Date(2026, 9, 19, 16, 30, 0, 0, time.UTC), Home: false},
	}}
	svc := NewScheduleSyncService(events, repository.NewTenantRepository(db), provider, audit, testLogger())

	report, err := svc.Sync(context.Background(), testActor(), "home-team")
	require.NoError(t, err)
	require.Equal(t, 2, report.Synced)
	require.Zero(t, report.Skipped)
	require.Zero(t, report.Failed)

	eventType, err := events.GetTypeByName(context.Background(), 1, "Sports")
	require.NoError(t, err)
	require.True(t, eventType.IsActive)

	list, _, err := events.List(context.Background(), repository.EventFilter{TenantID: 1, Category: "Sports"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Contains(t, list[0].Title, "Riverside FC")

	require.Len(t, audit.events, 1)
	require.Equal(t, "sync", audit.events[0].Action)
	require.Equal(t, "sports_schedule", audit.events[0].ResourceType)
}

func TestScheduleSyncIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	events := repository.NewEventRepository(db)
	provider := &fixedScheduleProvider{games: []sports.Game{
		{Opponent: "Riverside FC", Date: time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC), Home: true},
	}}
	svc := NewScheduleSyncService(events, repository.NewTenantRepository(db), provider, nil, testLogger())

	first, err := svc.Sync(context.Background(), testActor(), "home-team")
	require.NoError(t, err)
	require.Equal(t, 1, first.Synced)

	second, err := svc.Sync(context.Background(), testActor(), "home-team")
	require.NoError(t, err)
	require.Zero(t, second.Synced)
	require.Equal(t, 1, second.Skipped)
	require.Equal(t, "already exists", second.Details[0].Reason)

	list, _, err := events.List(context.Background(), repository.EventFilter{TenantID: 1, Category: "Sports"})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestScheduleSyncPropagatesFetchError(t *testing.T) {
	db := openTestDB(t)
	events := repository.NewEventRepository(db)
	audit := &memoryAuditRecorder{}
	provider := &fixedScheduleProvider{err: errors.New("upstream unavailable")}
	svc := NewScheduleSyncService(events, repository.NewTenantRepository(db), provider, audit, testLogger())

	_, err := svc.Sync(context.Background(), testActor(), "home-team")
	require.Error(t, err)

	// aborted run leaves a failure entry, never a success one
	require.Empty(t, audit.events)
	require.Len(t, audit.failures, 1)
	require.Equal(t, "sync", audit.failures[0].Action)
	require.Equal(t, "upstream unavailable", audit.failures[0].Metadata["error"])
}

func TestScheduleSyncFailureVisibleOnlyWithIncludeFailed(t *testing.T) {
	db := openTestDB(t)
	events := repository.NewEventRepository(db)
	auditSvc := NewAuditService(repository.NewAuditLogRepository(db), nil, "", testLogger())
	provider := &fixedScheduleProvider{err: errors.New("upstream unavailable")}
	svc := NewScheduleSyncService(events, repository.NewTenantRepository(db), provider, auditSvc, testLogger())

	actor := testActor()
	_, err := svc.Sync(context.Background(), actor, "home-team")
	require.Error(t, err)

	list, err := auditSvc.List(context.Background(), actor.TenantID, dto.AuditListRequest{Category: "sports"})
	require.NoError(t, err)
	require.Empty(t, list.Items)

	list, err = auditSvc.List(context.Background(), actor.TenantID, dto.AuditListRequest{Category: "sports", IncludeFailed: true})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.False(t, list.Items[0].Success)
}

func TestScheduleSyncAllCoversActiveTenants(t *testing.T) {
	db := openTestDB(t)
	events := repository.NewEventRepository(db)
	tenants := repository.NewTenantRepository(db)
	require.NoError(t, tenants.Create(context.Background(), &models.Tenant{Name: "First", Slug: "first", IsActive: true}))
	require.NoError(t, tenants.Create(context.Background(), &models.Tenant{Name: "Second", Slug: "second", IsActive: true}))
	require.NoError(t, tenants.Create(context.Background(), &models.Tenant{Name: "Dormant", Slug: "dormant", IsActive: false}))

	provider := &fixedScheduleProvider{games: []sports.Game{
		{Opponent: "Riverside FC", Date: time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC), Home: true},
	}}
	svc := NewScheduleSyncService(events, tenants, provider, nil, testLogger())

	report, err := svc.SyncAll(context.Background(), "home-team")
	require.NoError(t, err)
	require.Equal(t, 2, report.Synced)

	list, _, err := events.List(context.Background(), repository.EventFilter{TenantID: 2, Category: "Sports"})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestScheduleSyncSameOpponentDifferentDays(t *testing.T) {
	db := openTestDB(t)
	events := repository.NewEventRepository(db)
	provider := &fixedScheduleProvider{games: []sports.Game{
		{Opponent: "Riverside FC", Date: time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC), Home: true},
		{Opponent: "Riverside FC", Date: time.Date(2026, 10, 3, 19, 0, 0, 0, time.UTC), Home: false},
	}}
	svc := NewScheduleSyncService(events, repository.NewTenantRepository(db), provider, nil, testLogger())

	report, err := svc.Sync(context.Background(), testActor(), "home-team")
	require.NoError(t, err)
	require.Equal(t, 2, report.Synced)
}
