// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/constants"
	authMiddleware "ekonomvote_backend/internals/middlewares/auth"
	routeDetails "ekonomvote_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up panel auth routes...")
	routeDetails.PanelAuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC: read-only views, no token required
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// USER: signed-in voters (JWT from the OAuth layer)
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMiddleware.AuthMiddleware(),
	)

	// ADMIN: panel operators only
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("the admin panel"), constants.RoleAdmin),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting election routes...")
	routeDetails.ElectionPublicRoutes(public, db)
	routeDetails.ElectionUserRoutes(user, db)
	routeDetails.ElectionAdminRoutes(admin, db)

	log.Println("[INFO] Mounting awards routes...")
	routeDetails.AwardsPublicRoutes(public, db)
	routeDetails.AwardsUserRoutes(user, db)
	routeDetails.AwardsAdminRoutes(admin, db)

	log.Println("[INFO] Mounting panel routes...")
	routeDetails.PanelAdminRoutes(admin, db)
}
