// file: internals/features/awards/votes/controller/award_vote_controller.go
package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "ekonomvote_backend/internals/helpers"
	"ekonomvote_backend/internals/helpers/clockx"

	s "ekonomvote_backend/internals/features/awards/votes/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type AwardVoteController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Ledger   *s.AwardLedger
}

func NewAwardVoteController(db *gorm.DB, v *validator.Validate, clock clockx.Clock) *AwardVoteController {
	return &AwardVoteController{
		DB:       db,
		Validate: v,
		Ledger:   s.NewAwardLedger(db, clock),
	}
}

type castAwardVoteRequest struct {
	CandidatureID uuid.UUID `json:"candidature_id" validate:"required"`
}

/* =========================
   Cast (voter)
   ========================= */

// Cast records one vote for one candidature. A user gets one vote per
// (award, round) pair; repeats come back as domain errors.
func (ctl *AwardVoteController) Cast(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req castAwardVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := ctl.Ledger.CastVote(c.UserContext(), userID, req.CandidatureID); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Vote recorded", fiber.Map{"candidature_id": req.CandidatureID})
}

/* =========================
   Standings (admin)
   ========================= */

func (ctl *AwardVoteController) Standings(c *fiber.Ctx) error {
	roundID, err := helper.ParseUUIDParam(c, "round_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid round id")
	}

	standings, err := ctl.Ledger.Standings(c.UserContext(), roundID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "ok", standings)
}
