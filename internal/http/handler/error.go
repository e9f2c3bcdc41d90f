package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pressroom/internal/auth"
	"pressroom/internal/http/middleware"
	"pressroom/internal/logging"
	"pressroom/internal/service"
)

// errorPayload is the body of every failed response.
type errorPayload struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
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

// writeError writes a standardized JSON error response. message must be
// safe to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromCtx(c),
	})
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{service.ErrNoFile, fiber.StatusBadRequest, "NO_FILE"},
	{service.ErrUnsupportedMediaType, fiber.StatusBadRequest, "UNSUPPORTED_MEDIA_TYPE"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{auth.ErrInvalidToken, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{service.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrTooManyAttempts, fiber.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"},
	{service.ErrRemoteStore, fiber.StatusBadGateway, "REMOTE_STORE_ERROR"},
}

// ErrorHandler returns the Fiber global error handler. Handlers return
// service errors unchanged and this is the one place they become HTTP
// statuses.
func ErrorHandler() fiber.ErrorHandler {
	logger := logging.Component("http")

	return func(c *fiber.Ctx, err error) error {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(errorPayload{
				Error:     "validation failed",
				Code:      "VALIDATION_ERROR",
				Fields:    ve.Fields,
				RequestID: requestIDFromCtx(c),
			})
		}

		for _, m := range errorMappings {
			if errors.Is(err, m.target) {
				return writeError(c, m.status, m.code, m.target.Error())
			}
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", fe.Message)
			case fiber.StatusUnauthorized:
				return writeError(c, fe.Code, "UNAUTHORIZED", fe.Message)
			case fiber.StatusForbidden:
				return writeError(c, fe.Code, "FORBIDDEN", fe.Message)
			case fiber.StatusNotFound:
				return writeError(c, fe.Code, "NOT_FOUND", "resource not found")
			case fiber.StatusMethodNotAllowed:
				return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", "method not allowed")
			case fiber.StatusRequestEntityTooLarge:
				return writeError(c, fe.Code, "PAYLOAD_TOO_LARGE", "request body too large")
			}
			if fe.Code < fiber.StatusInternalServerError {
				return writeError(c, fe.Code, "BAD_REQUEST", fe.Message)
			}
		}

		logger.Error().
			Err(err).
			Str("event", "request_failed").
			Str("request_id", requestIDFromCtx(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("unhandled error")
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
