package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/observability"
	"github.com/tableside/tableside-api/internal/repository"
	"github.com/tableside/tableside-api/internal/sports"
)

// sportsCategory is the event type game events are filed under, created on
// first use.
const sportsCategory = "Sports"

// ScheduleProvider yields the current team schedule, normally backed by the
// TTL cache around the external API client.
type ScheduleProvider interface {
	Schedule(ctx context.Context, team string) ([]sports.Game, error)
}

// ScheduleSyncService merges the external team schedule into a tenant's
// events. Idempotent: a game whose event already exists for that opponent on
// that calendar day is skipped, and one game's failure never aborts the rest.
type ScheduleSyncService interface {
	Sync(ctx context.Context, actor Actor, team string) (dto.ScheduleSyncResponse, error)
	SyncAll(ctx context.Context, team string) (dto.ScheduleSyncResponse, error)
}

type scheduleSyncService struct {
	events   repository.EventRepository
	tenants  repository.TenantRepository
	provider ScheduleProvider
	audit    AuditRecorder
	logger   zerolog.Logger
}

// NewScheduleSyncService constructs the schedule sync service.
func NewScheduleSyncService(events repository.EventRepository, tenants repository.TenantRepository, provider ScheduleProvider, audit AuditRecorder, logger zerolog.Logger) ScheduleSyncService {
	return &scheduleSyncService{
		events:   events,
		tenants:  tenants,
		provider: provider,
		audit:    audit,
		logger:   logger.With().Str("component", "schedule_sync_service").Logger(),
	}
}

func (s *scheduleSyncService) Sync(ctx context.Context, actor Actor, team string) (dto.ScheduleSyncResponse, error) {
	games, err := s.provider.Schedule(ctx, team)
	if err != nil {
		s.recordFailedSync(ctx, actor, team, err)
		return dto.ScheduleSyncResponse{}, fmt.Errorf("fetch schedule: %w", err)
	}

	if err := s.ensureSportsType(ctx, actor.TenantID); err != nil {
		s.recordFailedSync(ctx, actor, team, err)
		return dto.ScheduleSyncResponse{}, err
	}

	report := dto.ScheduleSyncResponse{Details: make([]dto.ScheduleSyncDetail, 0, len(games))}
	for _, game := range games {
		detail := dto.ScheduleSyncDetail{
			Opponent: game.Opponent,
			Date:     game.Date.Format(dateLayout),
		}

		exists, err := s.events.ExistsOnDay(ctx, actor.TenantID, sportsCategory, "%"+game.Opponent+"%", game.Date)
		if err != nil {
			detail.Status = "failed"
			detail.Reason = err.Error()
			report.Failed++
			report.Details = append(report.Details, detail)
			continue
		}
		if exists {
			detail.Status = "skipped"
			detail.Reason = "already exists"
			report.Skipped++
			report.Details = append(report.Details, detail)
			continue
		}

		event := models.Event{
			TenantID:    actor.TenantID,
			Category:    sportsCategory,
			Title:       gameTitle(game),
			Description: gameDescription(game),
			Date:        game.Date,
			IsActive:    true,
		}
		if err := s.events.Create(ctx, &event); err != nil {
			detail.Status = "failed"
			detail.Reason = err.Error()
			report.Failed++
			report.Details = append(report.Details, detail)
			continue
		}

		detail.Status = "synced"
		detail.EventID = &event.ID
		report.Synced++
		report.Details = append(report.Details, detail)
	}

	observability.ScheduleSyncGames().WithLabelValues("synced").Add(float64(report.Synced))
	observability.ScheduleSyncGames().WithLabelValues("skipped").Add(float64(report.Skipped))
	observability.ScheduleSyncGames().WithLabelValues("failed").Add(float64(report.Failed))

	s.recordAudit(ctx, actor, report, team)
	return report, nil
}

// SyncAll runs the merge for every active tenant under a synthetic scheduler
// identity. One tenant's failure does not abort the rest; the returned report
// aggregates across tenants.
func (s *scheduleSyncService) SyncAll(ctx context.Context, team string) (dto.ScheduleSyncResponse, error) {
	tenants, err := s.tenants.ListActive(ctx)
	if err != nil {
		return dto.ScheduleSyncResponse{}, fmt.Errorf("list active tenants: %w", err)
	}

	total := dto.ScheduleSyncResponse{}
	for _, tenant := range tenants {
		actor := Actor{TenantID: tenant.ID, Role: "superadmin", Name: "scheduler"}
		report, err := s.Sync(ctx, actor, team)
		if err != nil {
			s.logger.Error().Err(err).Uint("tenant_id", tenant.ID).Msg("schedule sync failed for tenant")
			continue
		}
		total.Synced += report.Synced
		total.Skipped += report.Skipped
		total.Failed += report.Failed
		total.Details = append(total.Details, report.Details...)
	}
	return total, nil
}

// ensureSportsType creates the Sports event type the first time a sync runs
// for a tenant.
func (s *scheduleSyncService) ensureSportsType(ctx context.Context, tenantID uint) error {
	_, err := s.events.GetTypeByName(ctx, tenantID, sportsCategory)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.events.CreateType(ctx, &models.EventType{
		TenantID: tenantID,
		Name:     sportsCategory,
		IsActive: true,
	})
}

func (s *scheduleSyncService) recordAudit(ctx context.Context, actor Actor, report dto.ScheduleSyncResponse, team string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, actor, AuditEvent{
		Action:       "sync",
		ResourceType: "sports_schedule",
		Changes: map[string]interface{}{
			"synced":  report.Synced,
			"skipped": report.Skipped,
			"failed":  report.Failed,
		},
		Metadata: map[string]interface{}{
			"team": team,
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to record schedule sync audit entry")
	}
}

// recordFailedSync leaves a success=false trail entry when a run aborts
// before any game is merged. Visible only through the include_failed filter.
func (s *scheduleSyncService) recordFailedSync(ctx context.Context, actor Actor, team string, cause error) {
	if s.audit == nil {
		return
	}
	err := s.audit.RecordFailure(ctx, actor, AuditEvent{
		Action:       "sync",
		ResourceType: "sports_schedule",
		Metadata: map[string]interface{}{
			"team":  team,
			"error": cause.Error(),
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to record schedule sync failure entry")
	}
}

func gameTitle(game sports.Game) string {
	if game.Home {
		return fmt.Sprintf("Game Day: vs %s", game.Opponent)
	}
	return fmt.Sprintf("Game Day: at %s", game.Opponent)
}

func gameDescription(game sports.Game) string {
	description := fmt.Sprintf("Watch the game against %s here", game.Opponent)
	if game.TV != "" {
		description += fmt.Sprintf(" on %s", game.TV)
	}
	return description + "."
}
