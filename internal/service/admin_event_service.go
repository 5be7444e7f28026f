package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/repository"
)

// Sentinel errors for event management.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventTypeNotFound = errors.New("event type not found")
)

// AdminEventService exposes admin event and event-type use cases. Events are
// hard-deleted; event types are only ever deactivated.
type AdminEventService interface {
	Create(ctx context.Context, actor Actor, payload dto.EventRequest) (dto.EventResponse, error)
	List(ctx context.Context, actor Actor, category string, page, pageSize int) (dto.EventListResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.EventRequest) (dto.EventResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error

	CreateType(ctx context.Context, actor Actor, payload dto.EventTypeRequest) (dto.EventTypeResponse, error)
	ListTypes(ctx context.Context, actor Actor) ([]dto.EventTypeResponse, error)
	UpdateType(ctx context.Context, actor Actor, id uint, payload dto.EventTypeRequest) (dto.EventTypeResponse, error)
	DeactivateType(ctx context.Context, actor Actor, id uint) error
}

type adminEventService struct {
	repo      repository.EventRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewAdminEventService constructs the event admin service.
func NewAdminEventService(repo repository.EventRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AdminEventService {
	return &adminEventService{
		repo:      repo,
		validator: validate,
		audit:     audit,
		logger:    logger.With().Str("component", "admin_event_service").Logger(),
	}
}

func (s *adminEventService) Create(ctx context.Context, actor Actor, payload dto.EventRequest) (dto.EventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventResponse{}, err
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		return dto.EventResponse{}, err
	}

	event := models.Event{
		TenantID:    actor.TenantID,
		Category:    strings.TrimSpace(payload.Category),
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Date:        date,
		StartTime:   strings.TrimSpace(payload.StartTime),
		EndTime:     strings.TrimSpace(payload.EndTime),
		ImageURL:    strings.TrimSpace(payload.ImageURL),
		IsActive:    boolOrDefault(payload.IsActive, true),
	}

	if err := s.repo.Create(ctx, &event); err != nil {
		return dto.EventResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "create",
		ResourceType: "event",
		ResourceID:   &event.ID,
		Changes: map[string]interface{}{
			"category":  event.Category,
			"title":     event.Title,
			"date":      payload.Date,
			"is_active": event.IsActive,
		},
	})

	return toEventResponse(event), nil
}

func (s *adminEventService) List(ctx context.Context, actor Actor, category string, page, pageSize int) (dto.EventListResponse, error) {
	filter := repository.EventFilter{
		TenantID: actor.TenantID,
		Category: strings.TrimSpace(category),
		Page:     normalizePage(page),
		PageSize: clampPageSize(pageSize),
	}

	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.EventListResponse{}, err
	}

	items := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, toEventResponse(event))
	}

	return dto.EventListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *adminEventService) Update(ctx context.Context, actor Actor, id uint, payload dto.EventRequest) (dto.EventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventResponse{}, err
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		return dto.EventResponse{}, err
	}

	event, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventResponse{}, ErrEventNotFound
		}
		return dto.EventResponse{}, err
	}

	previous := map[string]interface{}{
		"category":  event.Category,
		"title":     event.Title,
		"date":      event.Date.Format(dateLayout),
		"is_active": event.IsActive,
	}

	event.Category = strings.TrimSpace(payload.Category)
	event.Title = strings.TrimSpace(payload.Title)
	event.Description = strings.TrimSpace(payload.Description)
	event.Date = date
	event.StartTime = strings.TrimSpace(payload.StartTime)
	event.EndTime = strings.TrimSpace(payload.EndTime)
	event.ImageURL = strings.TrimSpace(payload.ImageURL)
	event.IsActive = boolOrDefault(payload.IsActive, event.IsActive)

	if err := s.repo.Update(ctx, &event); err != nil {
		return dto.EventResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "update",
		ResourceType: "event",
		ResourceID:   &event.ID,
		Changes: map[string]interface{}{
			"category":  event.Category,
			"title":     event.Title,
			"date":      payload.Date,
			"is_active": event.IsActive,
		},
		Previous: previous,
	})

	return toEventResponse(event), nil
}

func (s *adminEventService) Delete(ctx context.Context, actor Actor, id uint) error {
	event, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, actor.TenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "delete",
		ResourceType: "event",
		ResourceID:   &id,
		Previous: map[string]interface{}{
			"title": event.Title,
			"date":  event.Date.Format(dateLayout),
		},
	})

	return nil
}

func (s *adminEventService) CreateType(ctx context.Context, actor Actor, payload dto.EventTypeRequest) (dto.EventTypeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventTypeResponse{}, err
	}

	eventType := models.EventType{
		TenantID:  actor.TenantID,
		Name:      strings.TrimSpace(payload.Name),
		SortOrder: payload.SortOrder,
		IsActive:  boolOrDefault(payload.IsActive, true),
	}

	if err := s.repo.CreateType(ctx, &eventType); err != nil {
		return dto.EventTypeResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "create",
		ResourceType: "event_type",
		ResourceID:   &eventType.ID,
		Changes: map[string]interface{}{
			"name":      eventType.Name,
			"is_active": eventType.IsActive,
		},
	})

	return toEventTypeResponse(eventType), nil
}

func (s *adminEventService) ListTypes(ctx context.Context, actor Actor) ([]dto.EventTypeResponse, error) {
	types, err := s.repo.ListTypes(ctx, actor.TenantID, false)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventTypeResponse, 0, len(types))
	for _, eventType := range types {
		responses = append(responses, toEventTypeResponse(eventType))
	}
	return responses, nil
}

func (s *adminEventService) UpdateType(ctx context.Context, actor Actor, id uint, payload dto.EventTypeRequest) (dto.EventTypeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventTypeResponse{}, err
	}

	eventType, err := s.repo.GetTypeByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventTypeResponse{}, ErrEventTypeNotFound
		}
		return dto.EventTypeResponse{}, err
	}

	previous := map[string]interface{}{
		"name":      eventType.Name,
		"is_active": eventType.IsActive,
	}

	eventType.Name = strings.TrimSpace(payload.Name)
	eventType.SortOrder = payload.SortOrder
	eventType.IsActive = boolOrDefault(payload.IsActive, eventType.IsActive)

	if err := s.repo.UpdateType(ctx, &eventType); err != nil {
		return dto.EventTypeResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "update",
		ResourceType: "event_type",
		ResourceID:   &eventType.ID,
		Changes: map[string]interface{}{
			"name":      eventType.Name,
			"is_active": eventType.IsActive,
		},
		Previous: previous,
	})

	return toEventTypeResponse(eventType), nil
}

// DeactivateType soft-deletes: the row stays, IsActive flips to false.
func (s *adminEventService) DeactivateType(ctx context.Context, actor Actor, id uint) error {
	eventType, err := s.repo.GetTypeByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventTypeNotFound
		}
		return err
	}

	if !eventType.IsActive {
		return nil
	}

	eventType.IsActive = false
	if err := s.repo.UpdateType(ctx, &eventType); err != nil {
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "delete",
		ResourceType: "event_type",
		ResourceID:   &id,
		Changes: map[string]interface{}{
			"is_active": false,
		},
		Previous: map[string]interface{}{
			"name":      eventType.Name,
			"is_active": true,
		},
	})

	return nil
}

func (s *adminEventService) recordAudit(ctx context.Context, actor Actor, event AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, actor, event); err != nil {
		s.logger.Warn().Err(err).Str("action", event.Action).Msg("failed to record event audit entry")
	}
}

func toEventResponse(event models.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          event.ID,
		Category:    event.Category,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		ImageURL:    event.ImageURL,
		IsActive:    event.IsActive,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func toEventTypeResponse(eventType models.EventType) dto.EventTypeResponse {
	return dto.EventTypeResponse{
		ID:        eventType.ID,
		Name:      eventType.Name,
		SortOrder: eventType.SortOrder,
		IsActive:  eventType.IsActive,
		CreatedAt: eventType.CreatedAt,
	}
}
