package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/models"
	"github.com/tableside/tableside-api/internal/rbac"
	"github.com/tableside/tableside-api/internal/repository"
)

// Sentinel errors for user management.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownRole        = errors.New("unknown role")
	ErrInsufficientRank   = errors.New("actor role does not outrank target role")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AdminUserService manages user accounts. Role and active-flag changes
// require the acting role to strictly outrank both the target's current role
// and any role being assigned.
type AdminUserService interface {
	Create(ctx context.Context, actor Actor, payload dto.UserCreateRequest) (dto.UserResponse, error)
	List(ctx context.Context, actor Actor, page, pageSize int) (dto.UserListResponse, error)
	Update(ctx context.Context, actor Actor, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, actor Actor, id uint) error
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type adminUserService struct {
	repo      repository.UserRepository
	validator *validator.Validate
	audit     AuditRecorder
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAdminUserService constructs the user admin service.
func NewAdminUserService(repo repository.UserRepository, validate *validator.Validate, audit AuditRecorder, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) AdminUserService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &adminUserService{
		repo:      repo,
		validator: validate,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "admin_user_service").Logger(),
	}
}

func (s *adminUserService) Create(ctx context.Context, actor Actor, payload dto.UserCreateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	role := rbac.ParseRole(payload.Role)
	if role == "" {
		return dto.UserResponse{}, ErrUnknownRole
	}
	if !rbac.Outranks(rbac.ParseRole(actor.Role), role) {
		return dto.UserResponse{}, ErrInsufficientRank
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return dto.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, err
	}

	user := models.User{
		TenantID:     actor.TenantID,
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		Role:         string(role),
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "create",
		ResourceType: "user",
		ResourceID:   &user.ID,
		Changes: map[string]interface{}{
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})

	return toUserResponse(user), nil
}

func (s *adminUserService) List(ctx context.Context, actor Actor, page, pageSize int) (dto.UserListResponse, error) {
	filter := repository.UserFilter{
		TenantID: actor.TenantID,
		Page:     normalizePage(page),
		PageSize: clampPageSize(pageSize),
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.UserListResponse{}, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}

	return dto.UserListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *adminUserService) Update(ctx context.Context, actor Actor, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	actorRole := rbac.ParseRole(actor.Role)
	if !rbac.Outranks(actorRole, rbac.ParseRole(user.Role)) {
		return dto.UserResponse{}, ErrInsufficientRank
	}

	previous := map[string]interface{}{
		"name":      user.Name,
		"role":      user.Role,
		"is_active": user.IsActive,
	}

	if name := strings.TrimSpace(payload.Name); name != "" {
		user.Name = name
	}
	if payload.Role != "" {
		newRole := rbac.ParseRole(payload.Role)
		if newRole == "" {
			return dto.UserResponse{}, ErrUnknownRole
		}
		if !rbac.Outranks(actorRole, newRole) {
			return dto.UserResponse{}, ErrInsufficientRank
		}
		user.Role = string(newRole)
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.repo.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "update",
		ResourceType: "user",
		ResourceID:   &user.ID,
		Changes: map[string]interface{}{
			"name":      user.Name,
			"role":      user.Role,
			"is_active": user.IsActive,
		},
		Previous: previous,
	})

	return toUserResponse(user), nil
}

func (s *adminUserService) Delete(ctx context.Context, actor Actor, id uint) error {
	user, err := s.repo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !rbac.Outranks(rbac.ParseRole(actor.Role), rbac.ParseRole(user.Role)) {
		return ErrInsufficientRank
	}

	if err := s.repo.Delete(ctx, actor.TenantID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.recordAudit(ctx, actor, AuditEvent{
		Action:       "delete",
		ResourceType: "user",
		ResourceID:   &id,
		Previous: map[string]interface{}{
			"email": user.Email,
			"role":  user.Role,
		},
	})

	return nil
}

// Login verifies credentials and issues a signed access token carrying the
// actor snapshot claims.
func (s *adminUserService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}
	if !user.IsActive {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"tenant_id": user.TenantID,
		"role":      user.Role,
		"email":     user.Email,
		"name":      user.Name,
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *adminUserService) recordAudit(ctx context.Context, actor Actor, event AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, actor, event); err != nil {
		s.logger.Warn().Err(err).Str("action", event.Action).Msg("failed to record user audit entry")
	}
}

func toUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
