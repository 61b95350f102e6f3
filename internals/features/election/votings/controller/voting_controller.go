// file: internals/features/election/votings/controller/voting_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "ekonomvote_backend/internals/helpers"
	"ekonomvote_backend/internals/helpers/clockx"

	d "ekonomvote_backend/internals/features/election/votings/dto"
	m "ekonomvote_backend/internals/features/election/votings/model"
	s "ekonomvote_backend/internals/features/election/votings/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type VotingController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *s.VotingService
}

func NewVotingController(db *gorm.DB, v *validator.Validate, clock clockx.Clock) *VotingController {
	return &VotingController{
		DB:       db,
		Validate: v,
		Service:  s.NewVotingService(db, clock),
	}
}

/* =========================
   Create (admin)
   ========================= */

func (ctl *VotingController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.CreateVotingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	voting := req.ToModel()
	if err := ctl.Service.Create(c.UserContext(), actorID, voting); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Voting created", d.FromModel(voting))
}

/* =========================
   Update (admin)
   ========================= */

func (ctl *VotingController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	votingID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid voting id")
	}

	var req d.UpdateVotingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	updated, err := ctl.Service.Update(c.UserContext(), actorID, votingID,
		req.VotingPlannedStart.UTC(), req.VotingPlannedEnd.UTC(), req.VotingVotesPerUser)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Voting updated", d.FromModel(updated))
}

/* =========================
   Delete (admin, cascade)
   ========================= */

func (ctl *VotingController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	votingID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid voting id")
	}

	if err := ctl.Service.DeleteCascade(c.UserContext(), actorID, votingID); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Voting deleted", fiber.Map{"voting_id": votingID})
}

/* =========================
   Read side
   ========================= */

func (ctl *VotingController) GetByID(c *fiber.Ctx) error {
	votingID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid voting id")
	}

	var voting m.VotingModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("voting_id = ?", votingID).
		First(&voting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "voting not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", d.FromModel(&voting))
}

// Current returns the upcoming-or-running voting, or null.
func (ctl *VotingController) Current(c *fiber.Ctx) error {
	voting, err := ctl.Service.Current(c.UserContext())
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	if voting == nil {
		return helper.JsonOK(c, "no voting scheduled", nil)
	}
	return helper.JsonOK(c, "ok", d.FromModel(voting))
}

// List returns votings ordered by start, newest window first.
func (ctl *VotingController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.VotingModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var votings []m.VotingModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("voting_planned_start DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&votings).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", d.FromModels(votings),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
