// file: internals/features/election/votes/route/vote_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/features/election/votes/controller"
	"ekonomvote_backend/internals/helpers/clockx"
	"ekonomvote_backend/internals/middlewares"
)

// VoteUserRoutes: ballot casting and own-status lookup for signed-in voters.
func VoteUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewVoteController(db, validator.New(), clockx.System)

	votes := r.Group("/votes")
	votes.Post("/", middlewares.VoteRateLimiter(), ctl.Cast)
	votes.Get("/:voting_id/status", ctl.HasVoted)
}

// VoteAdminRoutes: tallies and timelines for the panel.
func VoteAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewVoteController(db, validator.New(), clockx.System)

	votes := r.Group("/votes")
	votes.Get("/:voting_id/results", ctl.Results)
	votes.Get("/:voting_id/timeline", ctl.Timeline)
}
