// file: internals/features/awards/votes/route/award_vote_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/features/awards/votes/controller"
	"ekonomvote_backend/internals/helpers/clockx"
	"ekonomvote_backend/internals/middlewares"
)

// AwardVoteUserRoutes: one-vote-per-award casting for signed-in voters.
func AwardVoteUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAwardVoteController(db, validator.New(), clockx.System)

	r.Post("/award-votes", middlewares.VoteRateLimiter(), ctl.Cast)
}

// AwardVoteAdminRoutes: per-round standings for the panel.
func AwardVoteAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAwardVoteController(db, validator.New(), clockx.System)

	r.Get("/rounds/:round_id/standings", ctl.Standings)
}
