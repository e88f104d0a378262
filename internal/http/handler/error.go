package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sahaya/internal/http/middleware"
	"sahaya/internal/service"
	"sahaya/internal/validation"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []validation.FieldError `json:"details,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

func writeValidationError(c *fiber.Ctx, err error) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    "VALIDATION_ERROR",
			Message: "request validation failed",
			Details: validation.Details(err),
		},
	}
	return c.Status(fiber.StatusBadRequest).JSON(res)
}

// serviceErrors maps service sentinels to status, code and a safe message.
// Order matters: the first match wins.
var serviceErrors = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{service.ErrUnsupportedType, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "only PDF, JPG and PNG files are allowed"},
	{service.ErrTooLarge, fiber.StatusRequestEntityTooLarge, "TOO_LARGE", "file exceeds the upload limit"},
	{service.ErrContentRequired, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required"},
	{service.ErrMissingFields, fiber.StatusBadRequest, "MISSING_FIELDS", "please fill all fields"},
	{service.ErrInvalidSchedule, fiber.StatusBadRequest, "INVALID_SCHEDULE", "date must be YYYY-MM-DD and time HH:MM"},
	{service.ErrEmptyInput, fiber.StatusBadRequest, "EMPTY_INPUT", "please enter an application ID"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "resource not found"},
	{service.ErrUploadInProgress, fiber.StatusConflict, "UPLOAD_IN_PROGRESS", "an upload for this document is already in progress"},
	{service.ErrPersistenceFailed, fiber.StatusServiceUnavailable, "PERSISTENCE_FAILED", "changes could not be saved"},
}

// writeServiceError translates an error returned by a service.
func writeServiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrInvalidInput) {
		return writeValidationError(c, err)
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, m.message)
		}
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
