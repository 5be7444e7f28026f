package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the common error envelope returned by every endpoint.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// SuccessResponse acknowledges a mutation that returns no resource body.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// SendJSON sends a resource payload with the provided status code.
func SendJSON(c *fiber.Ctx, status int, payload interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(payload)
}

// SendSuccess sends the bare `{"success": true}` acknowledgement.
func SendSuccess(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponse{Success: true})
}

// SendError sends an error envelope with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// SendValidationError sends a 400 carrying every collected field error.
func SendValidationError(c *fiber.Ctx, details []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "validation failed",
		Details: details,
	})
}
