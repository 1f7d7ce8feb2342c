package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hvmartinez/coordsim/internal/core/domain"
	"github.com/hvmartinez/coordsim/internal/core/usecases"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: invalid_radius, undefined_ratio, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// classificationStatus maps a domain classification error onto an HTTP
// status and error code. Invalid inputs are the caller's fault; a ratio
// matching no interval means the table itself is broken, which is ours.
func classificationStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrZeroAnionRadius),
		errors.Is(err, domain.ErrNonPositiveRadius):
		return 400, usecases.ErrorReason(err)
	case errors.Is(err, usecases.ErrInvalidSweepRange):
		return 400, "bad_request"
	case errors.Is(err, domain.ErrNoMatchingInterval):
		return 500, usecases.ErrorReason(err)
	default:
		return 500, "internal_error"
	}
}

// errClassification renders a domain classification error.
func errClassification(c *fiber.Ctx, err error) error {
	status, code := classificationStatus(err)
	return newError(c, status, code, err.Error())
}
