package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"legalapi/internal/http/middleware"
	"legalapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
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

// mapServiceError translates service-layer sentinels into HTTP responses.
// Errors outside the taxonomy are treated as a dependency failure.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "id is required")
	case errors.Is(err, service.ErrDuplicateID):
		return writeError(c, fiber.StatusConflict, "DUPLICATE_ID", "document id already exists")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrVersionNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "version not found")
	case errors.Is(err, service.ErrUnknownDocument):
		return writeError(c, fiber.StatusNotFound, "UNKNOWN_DOCUMENT", "document does not exist")
	case errors.Is(err, service.ErrUnknownVersion):
		return writeError(c, fiber.StatusNotFound, "UNKNOWN_VERSION", "version does not exist")
	case errors.Is(err, service.ErrBundleMismatch):
		return writeError(c, fiber.StatusBadRequest, "BUNDLE_MISMATCH", "version belongs to a different document")
	case errors.Is(err, service.ErrNoPublishedVersion):
		return writeError(c, fiber.StatusConflict, "NO_PUBLISHED_VERSION", "document has no published version")
	case errors.Is(err, service.ErrVersionFrozen):
		return writeError(c, fiber.StatusConflict, "VERSION_FROZEN", "version has recorded acceptances and cannot change")
	case errors.Is(err, service.ErrDocumentInUse):
		return writeError(c, fiber.StatusConflict, "DOCUMENT_IN_USE", "document has recorded acceptances and cannot be deleted")
	case errors.Is(err, service.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	default:
		return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "insufficient permissions")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
