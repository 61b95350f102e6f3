// file: internals/features/election/candidates/controller/candidate_controller.go
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

	"ekonomvote_backend/internals/features/audit/model"
	auditSvc "ekonomvote_backend/internals/features/audit/service"
	helper "ekonomvote_backend/internals/helpers"
	"ekonomvote_backend/internals/helpers/clockx"

	d "ekonomvote_backend/internals/features/election/candidates/dto"
	m "ekonomvote_backend/internals/features/election/candidates/model"
	s "ekonomvote_backend/internals/features/election/candidates/service"
)

const portraitDir = "uploads/candidates"

/* =========================
   Controller & Constructor
   ========================= */

type CandidateController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *s.RegistrationService
}

func NewCandidateController(db *gorm.DB, v *validator.Validate, clock clockx.Clock) *CandidateController {
	return &CandidateController{
		DB:       db,
		Validate: v,
		Service:  s.NewRegistrationService(db, clock),
	}
}

/* =========================
   Candidate CRUD (admin)
   ========================= */

func (ctl *CandidateController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	candidate := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(candidate).Error; err != nil {
			return err
		}
		return auditSvc.Append(tx, actorID, model.ActionCreate, "Candidate", candidate.CandidateID, nil)
	}); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Candidate created", d.FromCandidateModel(candidate))
}

func (ctl *CandidateController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	candidateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid candidate id")
	}

	var req d.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var candidate m.CandidateModel
	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidate_id = ?", candidateID).First(&candidate).Error; err != nil {
			return err
		}
		before := candidate
		candidate.CandidateFirstName = req.CandidateFirstName
		candidate.CandidateSecondName = req.CandidateSecondName
		candidate.CandidateLastName = req.CandidateLastName
		candidate.CandidateSchoolClass = req.CandidateSchoolClass
		if err := tx.Save(&candidate).Error; err != nil {
			return err
		}
		diffs := auditSvc.Diff(before, candidate)
		delete(diffs, "candidate_updated_at")
		if len(diffs) == 0 {
			return nil
		}
		return auditSvc.Append(tx, actorID, model.ActionUpdate, "Candidate", candidateID, diffs)
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "candidate not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Candidate updated", d.FromCandidateModel(&candidate))
}

func (ctl *CandidateController) GetByID(c *fiber.Ctx) error {
	candidateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid candidate id")
	}

	var candidate m.CandidateModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("candidate_id = ?", candidateID).
		First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "candidate not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", d.FromCandidateModel(&candidate))
}

func (ctl *CandidateController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.CandidateModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var candidates []m.CandidateModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("candidate_last_name ASC, candidate_first_name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&candidates).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", d.FromCandidateModels(candidates),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   Portrait upload (admin)
   ========================= */

// UploadPortrait accepts a multipart "image" field, validates the 400x400
// and size contract, re-encodes to webp and stores it under uploads/.
func (ctl *CandidateController) UploadPortrait(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	candidateID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid candidate id")
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

	var candidate m.CandidateModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("candidate_id = ?", candidateID).
		First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "candidate not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	if err := os.MkdirAll(portraitDir, 0o755); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	fileName := fmt.Sprintf("%s.webp", candidateID)
	if err := os.WriteFile(filepath.Join(portraitDir, fileName), encoded, 0o644); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	imageURL := "/" + portraitDir + "/" + fileName

	if err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		before := candidate
		candidate.CandidateImageURL = &imageURL
		if err := tx.Save(&candidate).Error; err != nil {
			return err
		}
		diffs := auditSvc.Diff(before, candidate)
		delete(diffs, "candidate_updated_at")
		return auditSvc.Append(tx, actorID, model.ActionUpdate, "Candidate", candidateID, diffs)
	}); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Portrait uploaded", d.FromCandidateModel(&candidate))
}

/* =========================
   Registrations (admin)
   ========================= */

func (ctl *CandidateController) Register(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.RegisterCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	reg := req.ToModel()
	if err := ctl.Service.Register(c.UserContext(), actorID, reg); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Candidate registered", d.FromRegistrationModel(reg))
}

func (ctl *CandidateController) SetEligibility(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	registrationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid registration id")
	}

	var req d.SetEligibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := ctl.Service.SetEligibility(c.UserContext(), actorID, registrationID, req.IsEligible); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Eligibility updated", fiber.Map{
		"candidate_registration_id": registrationID,
		"is_eligible":               req.IsEligible,
	})
}

func (ctl *CandidateController) Unregister(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	registrationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid registration id")
	}

	if err := ctl.Service.Unregister(c.UserContext(), actorID, registrationID); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Registration removed", fiber.Map{"candidate_registration_id": registrationID})
}

// ListByVoting returns the registrations of one voting with candidate data,
// eligible first then by name.
func (ctl *CandidateController) ListByVoting(c *fiber.Ctx) error {
	votingID, err := helper.ParseUUIDParam(c, "voting_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid voting id")
	}

	type row struct {
		m.CandidateRegistrationModel
		m.CandidateModel
	}
	var rows []row
	if err := ctl.DB.WithContext(c.UserContext()).
		Table("candidate_registrations").
		Select("candidate_registrations.*, candidates.*").
		Joins("JOIN candidates ON candidates.candidate_id = candidate_registrations.candidate_registration_candidate_id").
		Where("candidate_registrations.candidate_registration_voting_id = ?", votingID).
		Order("candidate_registrations.candidate_registration_is_eligible DESC, candidates.candidate_last_name ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	out := make([]fiber.Map, 0, len(rows))
	for i := range rows {
		out = append(out, fiber.Map{
			"registration": d.FromRegistrationModel(&rows[i].CandidateRegistrationModel),
			"candidate":    d.FromCandidateModel(&rows[i].CandidateModel),
		})
	}
	return helper.JsonOK(c, "ok", out)
}

/* =========================
   Electoral program
   ========================= */

func (ctl *CandidateController) UpsertProgram(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	registrationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid registration id")
	}

	var req d.UpsertProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	program, err := ctl.Service.UpsertProgram(c.UserContext(), actorID, registrationID, req.Info)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Program saved", d.FromProgramModel(program))
}

func (ctl *CandidateController) GetProgram(c *fiber.Ctx) error {
	registrationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid registration id")
	}

	var program m.ElectoralProgramModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("electoral_program_registration_id = ?", registrationID).
		First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "program not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", d.FromProgramModel(&program))
}
