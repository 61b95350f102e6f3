// file: internals/features/election/votings/route/voting_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/features/election/votings/controller"
	"ekonomvote_backend/internals/helpers/clockx"
)

// VotingPublicRoutes: read-only voting data for any caller.
func VotingPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewVotingController(db, validator.New(), clockx.System)

	votings := r.Group("/votings")
	votings.Get("/current", ctl.Current)
	votings.Get("/:id", ctl.GetByID)
	votings.Get("/", ctl.List)
}

// VotingAdminRoutes: schedule management, audited.
func VotingAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewVotingController(db, validator.New(), clockx.System)

	votings := r.Group("/votings")
	votings.Post("/", ctl.Create)
	votings.Put("/:id", ctl.Update)
	votings.Delete("/:id", ctl.Delete)
}
