// file: internals/route/details/election_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	candidateRoute "ekonomvote_backend/internals/features/election/candidates/route"
	voteRoute "ekonomvote_backend/internals/features/election/votes/route"
	votingRoute "ekonomvote_backend/internals/features/election/votings/route"
)

func ElectionPublicRoutes(r fiber.Router, db *gorm.DB) {
	votingRoute.VotingPublicRoutes(r, db)
	candidateRoute.CandidatePublicRoutes(r, db)
}

func ElectionUserRoutes(r fiber.Router, db *gorm.DB) {
	voteRoute.VoteUserRoutes(r, db)
}

func ElectionAdminRoutes(r fiber.Router, db *gorm.DB) {
	votingRoute.VotingAdminRoutes(r, db)
	candidateRoute.CandidateAdminRoutes(r, db)
	voteRoute.VoteAdminRoutes(r, db)
}
