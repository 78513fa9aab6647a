package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"programpro_backend/internals/configs"
)

// RecoveryMiddleware turns a panic into a 500 handled by the app ErrorHandler.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: !configs.IsProduction(),
	})
}
