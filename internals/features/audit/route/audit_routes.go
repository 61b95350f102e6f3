// file: internals/features/audit/route/audit_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/features/audit/controller"
)

// AuditAdminRoutes: read-only audit trail for the panel.
func AuditAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewActionLogController(db)

	r.Get("/action-logs", ctl.List)
}
