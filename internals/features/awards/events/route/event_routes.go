// file: internals/features/awards/events/route/event_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/features/awards/events/controller"
	"ekonomvote_backend/internals/helpers/clockx"
)

// EventPublicRoutes: event schedules with derived status.
func EventPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewEventController(db, validator.New(), clockx.System)

	events := r.Group("/events")
	events.Get("/:id", ctl.GetByID)
	events.Get("/", ctl.List)
}

// EventAdminRoutes: event lifecycle management, audited.
func EventAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewEventController(db, validator.New(), clockx.System)

	events := r.Group("/events")
	events.Post("/", ctl.Create)
	events.Put("/:id", ctl.Update)
	events.Post("/:id/advance", ctl.Advance)
	events.Delete("/:id", ctl.Delete)
}
