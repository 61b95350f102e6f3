// file: internals/features/admins/controller/admin_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "ekonomvote_backend/internals/helpers"
	"ekonomvote_backend/internals/helpers/clockx"

	s "ekonomvote_backend/internals/features/admins/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type AdminController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *s.AdminService
}

func NewAdminController(db *gorm.DB, v *validator.Validate, clock clockx.Clock) *AdminController {
	return &AdminController{
		DB:       db,
		Validate: v,
		Service:  s.NewAdminService(db, clock),
	}
}

type loginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createAdminRequest struct {
	Login    string `json:"login"    validate:"required,max=1024"`
	Password string `json:"password" validate:"required"`
}

/* =========================
   Login (public, rate limited)
   ========================= */

func (ctl *AdminController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	admin, tokens, err := ctl.Service.Login(c.UserContext(), req.Login, req.Password)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, "invalid login or password")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    tokens.AccessToken,
		Expires:  time.Now().Add(2 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"admin_id":      admin.AdminID,
		"admin_login":   admin.AdminLogin,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

/* =========================
   Create admin (admin)
   ========================= */

func (ctl *AdminController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req createAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	admin, err := ctl.Service.Create(c.UserContext(), actorID, req.Login, req.Password)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Admin created", fiber.Map{
		"admin_id":    admin.AdminID,
		"admin_login": admin.AdminLogin,
	})
}
