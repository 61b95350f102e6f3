// file: internals/features/election/votes/controller/vote_controller.go
package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "ekonomvote_backend/internals/helpers"
	"ekonomvote_backend/internals/helpers/clockx"

	d "ekonomvote_backend/internals/features/election/votes/dto"
	s "ekonomvote_backend/internals/features/election/votes/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type VoteController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Ledger   *s.VoteLedger
}

func NewVoteController(db *gorm.DB, v *validator.Validate, clock clockx.Clock) *VoteController {
	return &VoteController{
		DB:       db,
		Validate: v,
		Ledger:   s.NewVoteLedger(db, clock),
	}
}

/* =========================
   Cast (voter)
   ========================= */

// Cast records the caller's full ballot in one transaction. Partial ballots
// are rejected, so either every vote lands or none do.
func (ctl *VoteController) Cast(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.CastVotesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := ctl.Ledger.CastVotes(c.UserContext(), userID, req.VotingID, req.RegistrationIDs); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Votes recorded", fiber.Map{
		"voting_id":  req.VotingID,
		"vote_count": len(req.RegistrationIDs),
	})
}

/* =========================
   Status (voter)
   ========================= */

func (ctl *VoteController) HasVoted(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	votingID, err := helper.ParseUUIDParam(c, "voting_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid voting id")
	}

	voted, err := ctl.Ledger.HasVoted(c.UserContext(), userID, votingID)
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", d.HasVotedResponse{VotingID: votingID, HasVoted: voted})
}

/* =========================
   Results & timeline (admin)
   ========================= */

func (ctl *VoteController) Results(c *fiber.Ctx) error {
	votingID, err := helper.ParseUUIDParam(c, "voting_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid voting id")
	}

	results, err := ctl.Ledger.Results(c.UserContext(), votingID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "ok", results)
}

func (ctl *VoteController) Timeline(c *fiber.Ctx) error {
	votingID, err := helper.ParseUUIDParam(c, "voting_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid voting id")
	}

	points, err := ctl.Ledger.Timeline(c.UserContext(), votingID)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "ok", points)
}
