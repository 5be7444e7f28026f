package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/tableside/tableside-api/internal/dto"
	"github.com/tableside/tableside-api/internal/repository"
)

func newUserService(t *testing.T, audit AuditRecorder) AdminUserService {
	t.Helper()
	db := openTestDB(t)
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewAdminUserService(repository.NewUserRepository(db), validate, audit, "test-secret", time.Hour, testLogger())
}

func ownerActor() Actor {
	return Actor{ID: 1, TenantID: 1, Role: "owner", Email: "owner@example.com", Name: "Owner"}
}

func TestAdminUserServiceCreateEnforcesRank(t *testing.T) {
	svc := newUserService(t, nil)

	// A manager may provision staff but not peers or superiors.
	manager := Actor{ID: 3, TenantID: 1, Role: "manager"}
	_, err := svc.Create(context.Background(), manager, dto.UserCreateRequest{
		Name: "New Manager", Email: "peer@example.com", Role: "manager", Password: "longenoughpw",
	})
	require.ErrorIs(t, err, ErrInsufficientRank)

	_, err = svc.Create(context.Background(), manager, dto.UserCreateRequest{
		Name: "New Staff", Email: "staff@example.com", Role: "staff", Password: "longenoughpw",
	})
	require.NoError(t, err)
}

func TestAdminUserServiceCreateRejectsUnknownRole(t *testing.T) {
	svc := newUserService(t, nil)

	_, err := svc.Create(context.Background(), ownerActor(), dto.UserCreateRequest{
		Name: "Oddball", Email: "odd@example.com", Role: "wizard", Password: "longenoughpw",
	})
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestAdminUserServiceDuplicateEmail(t *testing.T) {
	svc := newUserService(t, nil)
	actor := ownerActor()

	_, err := svc.Create(context.Background(), actor, dto.UserCreateRequest{
		Name: "First", Email: "shared@example.com", Role: "staff", Password: "longenoughpw",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), actor, dto.UserCreateRequest{
		Name: "Second", Email: "Shared@Example.com", Role: "staff", Password: "longenoughpw",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAdminUserServiceUpdateCannotEscalate(t *testing.T) {
	svc := newUserService(t, nil)
	actor := ownerActor()

	created, err := svc.Create(context.Background(), actor, dto.UserCreateRequest{
		Name: "Helper", Email: "helper@example.com", Role: "staff", Password: "longenoughpw",
	})
	require.NoError(t, err)

	// A manager cannot promote anyone to manager or above.
	manager := Actor{ID: 5, TenantID: 1, Role: "manager"}
	_, err = svc.Update(context.Background(), manager, created.ID, dto.UserUpdateRequest{Role: "owner"})
	require.ErrorIs(t, err, ErrInsufficientRank)

	updated, err := svc.Update(context.Background(), actor, created.ID, dto.UserUpdateRequest{Role: "manager"})
	require.NoError(t, err)
	require.Equal(t, "manager", updated.Role)
}

func TestAdminUserServiceLogin(t *testing.T) {
	svc := newUserService(t, nil)
	actor := ownerActor()

	created, err := svc.Create(context.Background(), actor, dto.UserCreateRequest{
		Name: "Login User", Email: "login@example.com", Role: "staff", Password: "longenoughpw",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "login@example.com", Password: "longenoughpw",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, resp.User.ID)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "staff", claims["role"])
	require.Equal(t, "login@example.com", claims["email"])
	require.Equal(t, float64(actor.TenantID), claims["tenant_id"])
}

func TestAdminUserServiceLoginRejectsBadPassword(t *testing.T) {
	svc := newUserService(t, nil)

	_, err := svc.Create(context.Background(), ownerActor(), dto.UserCreateRequest{
		Name: "Login User", Email: "login@example.com", Role: "staff", Password: "longenoughpw",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "login@example.com", Password: "wrongpassword",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminUserServiceLoginRejectsInactive(t *testing.T) {
	svc := newUserService(t, nil)
	actor := ownerActor()

	created, err := svc.Create(context.Background(), actor, dto.UserCreateRequest{
		Name: "Dormant", Email: "dormant@example.com", Role: "staff", Password: "longenoughpw",
	})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(context.Background(), actor, created.ID, dto.UserUpdateRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "dormant@example.com", Password: "longenoughpw",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
