package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/repository"
)

// Sentinel errors for specials management.
var (
	ErrSpecialNotFound    = errors.New("special not found")
	ErrSpecialDayNotFound = errors.New("special day not found")
	ErrDuplicateDay       = errors.New("a special day already exists for that date")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
)

// AdminSpecialService exposes admin specials and special-day use cases.
type AdminSpecialService interface {
	Create(ctx context.Context, actor Actor, payload dto.SpecialRequest) (dto.SpecialResponse, error)
	List(ctx context.Context, actor Actor, page, pageSize int) (dto.SpecialListResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.SpecialRequest) (dto.SpecialResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error

	CreateDay(ctx context.Context, actor Actor, payload dto.SpecialDayRequest) (dto.SpecialDayResponse, error)
	ListDays(ctx context.Context, actor Actor) ([]dto.SpecialDayResponse, error)
	DeleteDay(ctx context.Context, actor Actor, id uint) error
}

type adminSpecialService struct {
	repo      repository.SpecialRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewAdminSpecialService constructs the specials admin service.
func NewAdminSpecialService(repo repository.SpecialRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AdminSpecialService {
	return &adminSpecialService{
		repo:      repo,
		validator: validate,
		audit:     audit,
		logger:    logger.With().Str("component", "admin_special_service").Logger(),
	}
}

func (s *adminSpecialService) Create(ctx context.Context, actor Actor, payload dto.SpecialRequest) (dto.SpecialResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SpecialResponse{}, err
	}
	startDate, endDate, err := parseSpecialWindow(payload)
	if err != nil {
		return dto.SpecialResponse{}, err
	}

	special := models.Special{
		TenantID:    actor.TenantID,
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		StartDate:   startDate,
		EndDate:     endDate,
		IsRecurring: payload.IsRecurring,
		IsActive:    boolOrDefault(payload.IsActive, true),
	}

	if err := s.repo.Create(ctx, &special); err != nil {
		return dto.SpecialResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "create",
		ResourceType: "special",
		ResourceID:   &special.ID,
		Changes: map[string]interface{}{
			"name":         special.Name,
			"description":  special.Description,
			"start_date":   payload.StartDate,
			"end_date":     payload.EndDate,
			"is_recurring": special.IsRecurring,
			"is_active":    special.IsActive,
		},
	})

	return toSpecialResponse(special), nil
}

func (s *adminSpecialService) List(ctx context.Context, actor Actor, page, pageSize int) (dto.SpecialListResponse, error) {
	filter := repository.SpecialFilter{
		TenantID: actor.TenantID,
		Page:     normalizePage(page),
		PageSize: clampPageSize(pageSize),
	}

	specials, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.SpecialListResponse{}, err
	}

	items := make([]dto.SpecialResponse, 0, len(specials))
	for _, special := range specials {
		items = append(items, toSpecialResponse(special))
	}

	return dto.SpecialListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *adminSpecialService) Update(ctx context.Context, actor Actor, id uint, payload dto.SpecialRequest) (dto.SpecialResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SpecialResponse{}, err
	}
	startDate, endDate, err := parseSpecialWindow(payload)
	if err != nil {
		return dto.SpecialResponse{}, err
	}

	special, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SpecialResponse{}, ErrSpecialNotFound
		}
		return dto.SpecialResponse{}, err
	}

	previous := map[string]interface{}{
		"name":       special.Name,
		"start_date": special.StartDate.Format(dateLayout),
		"end_date":   special.EndDate.Format(dateLayout),
		"is_active":  special.IsActive,
	}

	special.Name = strings.TrimSpace(payload.Name)
	special.Description = strings.TrimSpace(payload.Description)
	special.StartDate = startDate
	special.EndDate = endDate
	special.IsRecurring = payload.IsRecurring
	special.IsActive = boolOrDefault(payload.IsActive, special.IsActive)

	if err := s.repo.Update(ctx, &special); err != nil {
		return dto.SpecialResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "update",
		ResourceType: "special",
		ResourceID:   &special.ID,
		Changes: map[string]interface{}{
			"name":       special.Name,
			"start_date": payload.StartDate,
			"end_date":   payload.EndDate,
			"is_active":  special.IsActive,
		},
		Previous: previous,
	})

	return toSpecialResponse(special), nil
}

func (s *adminSpecialService) Delete(ctx context.Context, actor Actor, id uint) error {
	special, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpecialNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, actor.TenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpecialNotFound
		}
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "delete",
		ResourceType: "special",
		ResourceID:   &id,
		Previous: map[string]interface{}{
			"name":       special.Name,
			"start_date": special.StartDate.Format(dateLayout),
			"end_date":   special.EndDate.Format(dateLayout),
		},
	})

	return nil
}

// CreateDay enforces at most one special day per tenant and calendar date.
func (s *adminSpecialService) CreateDay(ctx context.Context, actor Actor, payload dto.SpecialDayRequest) (dto.SpecialDayResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SpecialDayResponse{}, err
	}

	date, err := parseDate(payload.Date)
	if err != nil {
		return dto.SpecialDayResponse{}, err
	}

	if existing, err := s.repo.GetDayByDate(ctx, actor.TenantID, date); err == nil {
		return dto.SpecialDayResponse{}, fmt.Errorf("%w: %s", ErrDuplicateDay, existing.Date.Format(dateLayout))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SpecialDayResponse{}, err
	}

	day := models.SpecialDay{
		TenantID: actor.TenantID,
		Date:     date,
		Reason:   strings.TrimSpace(payload.Reason),
		OpensAt:  strings.TrimSpace(payload.OpensAt),
		ClosesAt: strings.TrimSpace(payload.ClosesAt),
		IsClosed: payload.IsClosed,
	}

	if err := s.repo.CreateDay(ctx, &day); err != nil {
		return dto.SpecialDayResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "create",
		ResourceType: "special_day",
		ResourceID:   &day.ID,
		Changes: map[string]interface{}{
			"date":      payload.Date,
			"reason":    day.Reason,
			"is_closed": day.IsClosed,
		},
	})

	return toSpecialDayResponse(day), nil
}

func (s *adminSpecialService) ListDays(ctx context.Context, actor Actor) ([]dto.SpecialDayResponse, error) {
	days, err := s.repo.ListDays(ctx, actor.TenantID, startOfDay(nowUTC()))
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SpecialDayResponse, 0, len(days))
	for _, day := range days {
		responses = append(responses, toSpecialDayResponse(day))
	}
	return responses, nil
}

func (s *adminSpecialService) DeleteDay(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.DeleteDay(ctx, actor.TenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSpecialDayNotFound
		}
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "delete",
		ResourceType: "special_day",
		ResourceID:   &id,
	})

	return nil
}

func (s *adminSpecialService) recordAudit(ctx context.Context, actor Actor, event AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, actor, event); err != nil {
		s.logger.Warn().Err(err).Str("action", event.Action).Msg("failed to record specials audit entry")
	}
}

func parseSpecialWindow(payload dto.SpecialRequest) (start, end time.Time, err error) {
	start, err = parseDate(payload.StartDate)
	if err != nil {
		return start, end, err
	}
	end, err = parseDate(payload.EndDate)
	if err != nil {
		return start, end, err
	}
	if end.Before(start) {
		return start, end, ErrInvalidDateRange
	}
	return start, end, nil
}

func toSpecialResponse(special models.Special) dto.SpecialResponse {
	return dto.SpecialResponse{
		ID:          special.ID,
		Name:        special.Name,
		Description: special.Description,
		StartDate:   special.StartDate,
		EndDate:     special.EndDate,
		IsRecurring: special.IsRecurring,
		IsActive:    special.IsActive,
		CreatedAt:   special.CreatedAt,
		UpdatedAt:   special.UpdatedAt,
	}
}

func toSpecialDayResponse(day models.SpecialDay) dto.SpecialDayResponse {
	return dto.SpecialDayResponse{
		ID:        day.ID,
		Date:      day.Date,
		Reason:    day.Reason,
		OpensAt:   day.OpensAt,
		ClosesAt:  day.ClosesAt,
		IsClosed:  day.IsClosed,
		CreatedAt: day.CreatedAt,
	}
}
