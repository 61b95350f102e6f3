// file: internals/middlewares/setup.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"ekonomvote_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the app-wide chain: recovery first so everything
// downstream is covered, then logging, CORS and the global limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
