// file: internals/features/admins/route/admin_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/features/admins/controller"
	"ekonomvote_backend/internals/helpers/clockx"
	"ekonomvote_backend/internals/middlewares"
)

// AdminAuthRoutes: panel login, rate limited, mounted without auth.
func AdminAuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controller.NewAdminController(db, validator.New(), clockx.System)

	app.Post("/api/auth/login", middlewares.LoginRateLimiter(), ctl.Login)
}

// AdminManageRoutes: operator account management, admin only.
func AdminManageRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAdminController(db, validator.New(), clockx.System)

	r.Post("/admins", ctl.Create)
}
