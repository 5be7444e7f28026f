package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/repository"
)

// ErrUnknownAuditCategory marks a list request for a category outside the
// known category set.
var ErrUnknownAuditCategory = errors.New("unknown audit category")

// Actor is the snapshot of the authenticated identity captured on every
// audit entry.
type Actor struct {
	ID       uint
	TenantID uint
	Role     string
	Email    string
	Name     string
}

// AuditEvent carries the caller-supplied part of one audit entry. Timestamp
// and success flag are assigned by the recorder, never by the caller.
type AuditEvent struct {
	Action       string
	ResourceType string
	ResourceID   *uint
	Changes      map[string]interface{}
	Previous     map[string]interface{}
	Metadata     map[string]interface{}
}

// AuditRecorder is the write side of the audit trail. Writes are advisory:
// callers log failures and carry on, they never roll back the mutation.
type AuditRecorder interface {
	Record(ctx context.Context, actor Actor, event AuditEvent) error
	RecordFailure(ctx context.Context, actor Actor, event AuditEvent) error
}

// AuditService exposes the audit trail.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, tenantID uint, req dto.AuditListRequest) (dto.AuditListResponse, error)
}

// categoryResourceTypes maps a display category onto the concrete resource
// type strings it covers.
var categoryResourceTypes = map[string][]string{
	"company":  {"tenant", "tenant_domain", "user"},
	"menu":     {"menu_item", "menu_category"},
	"specials": {"special", "special_day"},
	"events":   {"event", "event_type"},
	"sports":   {"sports_schedule"},
	"uploads":  {"upload"},
}

type auditService struct {
	repo        repository.AuditLogRepository
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
}

// NewAuditService constructs the audit service. The NATS connection is
// optional; when present, created entries are fanned out for live activity
// feeds.
func NewAuditService(repo repository.AuditLogRepository, natsConn *nats.Conn, natsSubject string, logger zerolog.Logger) AuditService {
	subject := strings.TrimSpace(natsSubject)
	if subject == "" {
		subject = "tableside.audit"
	}
	return &auditService{
		repo:        repo,
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) Record(ctx context.Context, actor Actor, event AuditEvent) error {
	return s.write(ctx, actor, event, true)
}

func (s *auditService) RecordFailure(ctx context.Context, actor Actor, event AuditEvent) error {
	return s.write(ctx, actor, event, false)
}

func (s *auditService) write(ctx context.Context, actor Actor, event AuditEvent, success bool) error {
	action := strings.ToLower(strings.TrimSpace(event.Action))
	resourceType := strings.ToLower(strings.TrimSpace(event.ResourceType))
	if action == "" {
		return fmt.Errorf("audit action is required")
	}
	if resourceType == "" {
		return fmt.Errorf("audit resource type is required")
	}

	entry := models.AuditEntry{
		TenantID:     actor.TenantID,
		ActorID:      actor.ID,
		ActorRole:    strings.ToLower(strings.TrimSpace(actor.Role)),
		ActorEmail:   strings.TrimSpace(actor.Email),
		ActorName:    strings.TrimSpace(actor.Name),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   event.ResourceID,
		Changes:      toJSONMap(event.Changes),
		Previous:     toJSONMap(event.Previous),
		Metadata:     toJSONMap(event.Metadata),
		Success:      success,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		s.logger.Error().Err(err).
			Str("action", action).
			Str("resource_type", resourceType).
			Msg("failed to persist audit entry")
		return err
	}

	s.publish(entry)
	return nil
}

// publish fans the entry out over NATS, best effort.
func (s *auditService) publish(entry models.AuditEntry) {
	if s.nats == nil {
		return
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode audit entry for fanout")
		return
	}
	if err := s.nats.Publish(s.natsSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish audit entry")
	}
}

func (s *auditService) List(ctx context.Context, tenantID uint, req dto.AuditListRequest) (dto.AuditListResponse, error) {
	filter := repository.AuditFilter{
		TenantID:      tenantID,
		Action:        strings.ToLower(strings.TrimSpace(req.Action)),
		IncludeFailed: req.IncludeFailed,
		Page:          normalizePage(req.Page),
		PageSize:      clampPageSize(req.PageSize),
	}

	if category := strings.ToLower(strings.TrimSpace(req.Category)); category != "" {
		types, ok := categoryResourceTypes[category]
		if !ok {
			return dto.AuditListResponse{}, fmt.Errorf("%w %q", ErrUnknownAuditCategory, category)
		}
		filter.ResourceTypes = types
	}
	if resourceType := strings.ToLower(strings.TrimSpace(req.ResourceType)); resourceType != "" {
		filter.ResourceTypes = []string{resourceType}
	}
	if req.ActorID > 0 {
		actorID := req.ActorID
		filter.ActorID = &actorID
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AuditListResponse{}, err
	}

	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toAuditEntryResponse(entry))
	}

	return dto.AuditListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func toAuditEntryResponse(entry models.AuditEntry) dto.AuditEntryResponse {
	return dto.AuditEntryResponse{
		ID:           entry.ID,
		ActorID:      entry.ActorID,
		ActorRole:    entry.ActorRole,
		ActorEmail:   entry.ActorEmail,
		ActorName:    entry.ActorName,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Changes:      map[string]interface{}(entry.Changes),
		Previous:     map[string]interface{}(entry.Previous),
		Metadata:     map[string]interface{}(entry.Metadata),
		Success:      entry.Success,
		CreatedAt:    entry.CreatedAt,
	}
}

func toJSONMap(values map[string]interface{}) datatypes.JSONMap {
	if len(values) == 0 {
		return nil
	}
	out := datatypes.JSONMap{}
	for key, value := range values {
		out[key] = value
	}
	return out
}
