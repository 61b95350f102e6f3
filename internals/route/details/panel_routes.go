// file: internals/route/details/panel_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminRoute "ekonomvote_backend/internals/features/admins/route"
	auditRoute "ekonomvote_backend/internals/features/audit/route"
)

func PanelAuthRoutes(app *fiber.App, db *gorm.DB) {
	adminRoute.AdminAuthRoutes(app, db)
}

func PanelAdminRoutes(r fiber.Router, db *gorm.DB) {
	adminRoute.AdminManageRoutes(r, db)
	auditRoute.AuditAdminRoutes(r, db)
}
