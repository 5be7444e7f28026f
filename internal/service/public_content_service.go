package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/observability"
	"github.com/tableside/tableside-api/internal/repository"
)

// PublicContentService serves the unauthenticated site surface: menu,
// active specials and upcoming events for one tenant, cached in redis.
type PublicContentService interface {
	Menu(ctx context.Context, tenantSlug string) (dto.PublicMenuResponse, error)
	ActiveSpecials(ctx context.Context, tenantSlug string, page, pageSize int) (dto.SpecialListResponse, error)
	UpcomingEvents(ctx context.Context, tenantSlug string, page, pageSize int) (dto.EventListResponse, error)
}

type publicContentService struct {
	tenants  repository.TenantRepository
	menu     repository.MenuRepository
	specials repository.SpecialRepository
	events   repository.EventRepository
	cache    *redis.Client
	ttl      time.Duration
	policy   *bluemonday.Policy
	logger   zerolog.Logger
}

// NewPublicContentService constructs the public read service.
func NewPublicContentService(
	tenants repository.TenantRepository,
	menu repository.MenuRepository,
	specials repository.SpecialRepository,
	events repository.EventRepository,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) PublicContentService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("p", "strong", "em", "ul", "ol", "li", "br")
	return &publicContentService{
		tenants:  tenants,
		menu:     menu,
		specials: specials,
		events:   events,
		cache:    cache,
		ttl:      ttl,
		policy:   policy,
		logger:   logger.With().Str("component", "public_content_service").Logger(),
	}
}

func (s *publicContentService) Menu(ctx context.Context, tenantSlug string) (dto.PublicMenuResponse, error) {
	cacheKey := fmt.Sprintf("public:menu:v1:%s", tenantSlug)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		var response dto.PublicMenuResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			response.CacheHit = true
			observability.PublicCacheRequests().WithLabelValues("hit").Inc()
			return response, nil
		}
	}

	tenant, err := s.tenants.GetBySlug(ctx, tenantSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PublicMenuResponse{}, ErrTenantNotFound
		}
		return dto.PublicMenuResponse{}, err
	}

	categories, err := s.menu.ListCategories(ctx, tenant.ID, true)
	if err != nil {
		return dto.PublicMenuResponse{}, err
	}

	response := dto.PublicMenuResponse{Tenant: tenant.Name, Categories: make([]dto.PublicMenuCategory, 0, len(categories))}
	for _, category := range categories {
		items, _, err := s.menu.ListItems(ctx, repository.MenuItemFilter{
			TenantID:   tenant.ID,
			Category:   category.Name,
			ActiveOnly: true,
		})
		if err != nil {
			return dto.PublicMenuResponse{}, err
		}

		publicItems := make([]dto.MenuItemResponse, 0, len(items))
		for _, item := range items {
			publicItem := toMenuItemResponse(item)
			publicItem.Description = s.policy.Sanitize(publicItem.Description)
			publicItems = append(publicItems, publicItem)
		}

		response.Categories = append(response.Categories, dto.PublicMenuCategory{
			Name:        category.Name,
			Description: s.policy.Sanitize(category.Description),
			Items:       publicItems,
		})
	}

	s.writeCache(ctx, cacheKey, response)
	observability.PublicCacheRequests().WithLabelValues("miss").Inc()
	return response, nil
}

func (s *publicContentService) ActiveSpecials(ctx context.Context, tenantSlug string, page, pageSize int) (dto.SpecialListResponse, error) {
	tenant, err := s.tenants.GetBySlug(ctx, tenantSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SpecialListResponse{}, ErrTenantNotFound
		}
		return dto.SpecialListResponse{}, err
	}

	page = normalizePage(page)
	pageSize = clampPageSize(pageSize)

	cacheKey := fmt.Sprintf("public:specials:v1:%s:%d:%d", tenantSlug, page, pageSize)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		var response dto.SpecialListResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			response.CacheHit = true
			observability.PublicCacheRequests().WithLabelValues("hit").Inc()
			return response, nil
		}
	}

	now := nowUTC()
	specials, total, err := s.specials.List(ctx, repository.SpecialFilter{
		TenantID:   tenant.ID,
		ActiveOnly: true,
		Window:     &now,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return dto.SpecialListResponse{}, err
	}

	items := make([]dto.SpecialResponse, 0, len(specials))
	for _, special := range specials {
		response := toSpecialResponse(special)
		response.Description = s.policy.Sanitize(response.Description)
		items = append(items, response)
	}

	response := dto.SpecialListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, pageSize),
		},
	}

	s.writeCache(ctx, cacheKey, response)
	observability.PublicCacheRequests().WithLabelValues("miss").Inc()
	return response, nil
}

func (s *publicContentService) UpcomingEvents(ctx context.Context, tenantSlug string, page, pageSize int) (dto.EventListResponse, error) {
	tenant, err := s.tenants.GetBySlug(ctx, tenantSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventListResponse{}, ErrTenantNotFound
		}
		return dto.EventListResponse{}, err
	}

	page = normalizePage(page)
	pageSize = clampPageSize(pageSize)

	cacheKey := fmt.Sprintf("public:events:v1:%s:%d:%d", tenantSlug, page, pageSize)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		var response dto.EventListResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			response.CacheHit = true
			observability.PublicCacheRequests().WithLabelValues("hit").Inc()
			return response, nil
		}
	}

	from := startOfDay(nowUTC())
	events, total, err := s.events.List(ctx, repository.EventFilter{
		TenantID:   tenant.ID,
		ActiveOnly: true,
		From:       &from,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		return dto.EventListResponse{}, err
	}

	items := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		response := toEventResponse(event)
		response.Description = s.policy.Sanitize(response.Description)
		items = append(items, response)
	}

	response := dto.EventListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, pageSize),
		},
	}

	s.writeCache(ctx, cacheKey, response)
	observability.PublicCacheRequests().WithLabelValues("miss").Inc()
	return response, nil
}

func (s *publicContentService) readCache(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil || cached == "" {
		return nil, false
	}
	return []byte(cached), true
}

func (s *publicContentService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to write public content cache")
	}
}
