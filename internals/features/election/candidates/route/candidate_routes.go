// file: internals/features/election/candidates/route/candidate_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/features/election/candidates/controller"
	"ekonomvote_backend/internals/helpers/clockx"
)

// CandidatePublicRoutes: candidate data and programs for the ballot UI.
func CandidatePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCandidateController(db, validator.New(), clockx.System)

	candidates := r.Group("/candidates")
	candidates.Get("/:id", ctl.GetByID)
	candidates.Get("/", ctl.List)

	r.Get("/votings/:voting_id/registrations", ctl.ListByVoting)
	r.Get("/registrations/:id/program", ctl.GetProgram)
}

// CandidateAdminRoutes: candidate and registration management, audited.
func CandidateAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCandidateController(db, validator.New(), clockx.System)

	candidates := r.Group("/candidates")
	candidates.Post("/", ctl.Create)
	candidates.Put("/:id", ctl.Update)
	candidates.Post("/:id/portrait", ctl.UploadPortrait)

	registrations := r.Group("/registrations")
	registrations.Post("/", ctl.Register)
	registrations.Patch("/:id/eligibility", ctl.SetEligibility)
	registrations.Delete("/:id", ctl.Unregister)
	registrations.Put("/:id/program", ctl.UpsertProgram)
}
