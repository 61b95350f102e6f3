// file: internals/route/details/awards_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalogRoute "ekonomvote_backend/internals/features/awards/catalog/route"
	eventRoute "ekonomvote_backend/internals/features/awards/events/route"
	awardVoteRoute "ekonomvote_backend/internals/features/awards/votes/route"
)

func AwardsPublicRoutes(r fiber.Router, db *gorm.DB) {
	catalogRoute.CatalogPublicRoutes(r, db)
	eventRoute.EventPublicRoutes(r, db)
}

func AwardsUserRoutes(r fiber.Router, db *gorm.DB) {
	awardVoteRoute.AwardVoteUserRoutes(r, db)
}

func AwardsAdminRoutes(r fiber.Router, db *gorm.DB) {
	catalogRoute.CatalogAdminRoutes(r, db)
	eventRoute.EventAdminRoutes(r, db)
	awardVoteRoute.AwardVoteAdminRoutes(r, db)
}
