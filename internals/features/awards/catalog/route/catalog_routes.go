// file: internals/features/awards/catalog/route/catalog_routes.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/features/awards/catalog/controller"
)

// CatalogPublicRoutes: award categories and teacher profiles.
func CatalogPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCatalogController(db, validator.New())

	r.Get("/awards", ctl.ListAwards)
	r.Get("/teachers", ctl.ListTeachers)
}

// CatalogAdminRoutes: catalog management, audited.
func CatalogAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewCatalogController(db, validator.New())

	awards := r.Group("/awards")
	awards.Post("/", ctl.CreateAward)
	awards.Put("/:id", ctl.UpdateAward)

	teachers := r.Group("/teachers")
	teachers.Post("/", ctl.CreateTeacher)
	teachers.Put("/:id", ctl.UpdateTeacher)
	teachers.Post("/:id/portrait", ctl.UploadTeacherPortrait)
}
