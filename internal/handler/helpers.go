package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tableside/tableside-api/internal/service"
	"github.com/tableside/tableside-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(parsed), nil
}

// actorFromContext reconstructs the authenticated actor snapshot that the
// JWT middleware bound to the request.
func actorFromContext(c *fiber.Ctx) service.Actor {
	actor := service.Actor{}
	if v, ok := c.Locals("user_id").(uint); ok {
		actor.ID = v
	}
	if v, ok := c.Locals("tenant_id").(uint); ok {
		actor.TenantID = v
	}
	if v, ok := c.Locals("user_role").(string); ok {
		actor.Role = v
	}
	if v, ok := c.Locals("user_email").(string); ok {
		actor.Email = v
	}
	if v, ok := c.Locals("user_name").(string); ok {
		actor.Name = v
	}
	return actor
}

func isValidationError(err error) bool {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		return true
	}
	var combined *service.ValidationError
	return errors.As(err, &combined)
}

// notFoundErrors map to 404, conflictErrors to 409. Everything else that is
// not a validation failure is a 500.
var notFoundErrors = []error{
	service.ErrMenuItemNotFound,
	service.ErrMenuCategoryNotFound,
	service.ErrSpecialNotFound,
	service.ErrSpecialDayNotFound,
	service.ErrEventNotFound,
	service.ErrEventTypeNotFound,
	service.ErrUserNotFound,
	service.ErrTenantNotFound,
	service.ErrDomainNotFound,
}

var conflictErrors = []error{
	service.ErrCategoryInUse,
	service.ErrDuplicateDay,
	service.ErrEmailTaken,
}

var badRequestErrors = []error{
	service.ErrInvalidDate,
	service.ErrInvalidDateRange,
	service.ErrUnknownRole,
	service.ErrInvalidTheme,
	service.ErrUploadTooLarge,
	service.ErrUploadTypeNotAllowed,
	service.ErrUnknownAuditCategory,
}

// sendServiceError maps a service failure onto the response envelope:
// validation failures carry every field message, sentinel errors carry their
// canonical status, and anything unrecognised is a 500 with a generic body.
func sendServiceError(c *fiber.Ctx, err error, fallback string) error {
	if isValidationError(err) {
		return utils.SendValidationError(c, service.ValidationDetails(err))
	}
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			return utils.SendError(c, fiber.StatusNotFound, sentinel.Error())
		}
	}
	for _, sentinel := range conflictErrors {
		if errors.Is(err, sentinel) {
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		}
	}
	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	if errors.Is(err, service.ErrInsufficientRank) {
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}
	return utils.SendError(c, fiber.StatusInternalServerError, fallback)
}
