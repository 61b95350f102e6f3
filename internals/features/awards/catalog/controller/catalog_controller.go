// file: internals/features/awards/catalog/controller/catalog_controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditModel "ekonomvote_backend/internals/features/audit/model"
	auditSvc "ekonomvote_backend/internals/features/audit/service"
	helper "ekonomvote_backend/internals/helpers"

	d "ekonomvote_backend/internals/features/awards/catalog/dto"
	m "ekonomvote_backend/internals/features/awards/catalog/model"
)

const teacherPortraitDir = "uploads/teachers"

/* =========================
   Controller & Constructor
   ========================= */

type CatalogController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCatalogController(db *gorm.DB, v *validator.Validate) *CatalogController {
	return &CatalogController{DB: db, Validate: v}
}

/* =========================
   Awards (admin)
   ========================= */

func (ctl *CatalogController) CreateAward(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.AwardRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	award := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(award).Error; err != nil {
			return err
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionCreate, "Award", award.AwardID, nil)
	}); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Award created", d.FromAwardModel(award))
}

func (ctl *CatalogController) UpdateAward(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	awardID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid award id")
	}

	var req d.AwardRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var award m.AwardModel
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("award_id = ?", awardID).First(&award).Error; err != nil {
			return err
		}
		before := award
		award.AwardName = req.AwardName
		award.AwardInfo = req.AwardInfo
		if err := tx.Save(&award).Error; err != nil {
			return err
		}
		diffs := auditSvc.Diff(before, award)
		delete(diffs, "award_updated_at")
		if len(diffs) == 0 {
			return nil
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionUpdate, "Award", awardID, diffs)
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "award not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Award updated", d.FromAwardModel(&award))
}

func (ctl *CatalogController) ListAwards(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.AwardModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var awards []m.AwardModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("award_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&awards).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", d.FromAwardModels(awards),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   Teachers (admin)
   ========================= */

func (ctl *CatalogController) CreateTeacher(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	teacher := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(teacher).Error; err != nil {
			return err
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionCreate, "Teacher", teacher.TeacherID, nil)
	}); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Teacher created", d.FromTeacherModel(teacher))
}

func (ctl *CatalogController) UpdateTeacher(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	teacherID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid teacher id")
	}

	var req d.TeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var teacher m.TeacherModel
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("teacher_id = ?", teacherID).First(&teacher).Error; err != nil {
			return err
		}
		before := teacher
		teacher.TeacherFirstName = req.TeacherFirstName
		teacher.TeacherSecondName = req.TeacherSecondName
		teacher.TeacherLastName = req.TeacherLastName
		teacher.TeacherInfo = req.TeacherInfo
		if err := tx.Save(&teacher).Error; err != nil {
			return err
		}
		diffs := auditSvc.Diff(before, teacher)
		delete(diffs, "teacher_updated_at")
		if len(diffs) == 0 {
			return nil
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionUpdate, "Teacher", teacherID, diffs)
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "teacher not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Teacher updated", d.FromTeacherModel(&teacher))
}

func (ctl *CatalogController) ListTeachers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.TeacherModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var teachers []m.TeacherModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("teacher_last_name ASC, teacher_first_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&teachers).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", d.FromTeacherModels(teachers),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// UploadTeacherPortrait mirrors the candidate portrait contract for teachers.
func (ctl *CatalogController) UploadTeacherPortrait(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	teacherID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid teacher id")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "image file is required")
	}
	img, err := helper.ValidatePortrait(fileHeader)
	if err != nil {
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}
	encoded, err := helper.EncodePortraitWebP(img)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var teacher m.TeacherModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("teacher_id = ?", teacherID).
		First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "teacher not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	if err := os.MkdirAll(teacherPortraitDir, 0o755); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	fileName := fmt.Sprintf("%s.webp", teacherID)
	if err := os.WriteFile(filepath.Join(teacherPortraitDir, fileName), encoded, 0o644); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	imageURL := "/" + teacherPortraitDir + "/" + fileName

	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		before := teacher
		teacher.TeacherImageURL = &imageURL
		if err := tx.Save(&teacher).Error; err != nil {
			return err
		}
		diffs := auditSvc.Diff(before, teacher)
		delete(diffs, "teacher_updated_at")
		return auditSvc.Append(tx, actorID, auditModel.ActionUpdate, "Teacher", teacherID, diffs)
	}); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Portrait uploaded", d.FromTeacherModel(&teacher))
}
