package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"pressroom/internal/logging"
)

// Recover turns a panicking handler into an ordinary error for the app's
// ErrorHandler and logs the panic value with the request id.
func Recover() fiber.Handler {
	logger := logging.Component("http")
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			rid, _ := c.Locals(RequestIDLocalKey).(string)
			logger.Error().
				Str("event", "panic_recovered").
				Str("request_id", rid).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Interface("panic", e).
				Msg("handler panicked")
		},
	})
}
