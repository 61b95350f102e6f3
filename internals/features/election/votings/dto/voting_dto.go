// file: internals/features/election/votings/dto/voting_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"ekonomvote_backend/internals/features/election/votings/model"
)

/* =========================================================
   Requests
   ========================================================= */

type CreateVotingRequest struct {
	VotingPlannedStart time.Time `json:"voting_planned_start" validate:"required"`
	VotingPlannedEnd   time.Time `json:"voting_planned_end"   validate:"required"`
	VotingVotesPerUser int       `json:"voting_votes_per_user" validate:"required,min=1"`
}

func (r *CreateVotingRequest) ToModel() *model.VotingModel {
	return &model.VotingModel{
		VotingPlannedStart: r.VotingPlannedStart.UTC(),
		VotingPlannedEnd:   r.VotingPlannedEnd.UTC(),
		VotingVotesPerUser: r.VotingVotesPerUser,
	}
}

type UpdateVotingRequest struct {
	VotingPlannedStart time.Time `json:"voting_planned_start" validate:"required"`
	VotingPlannedEnd   time.Time `json:"voting_planned_end"   validate:"required"`
	VotingVotesPerUser int       `json:"voting_votes_per_user" validate:"required,min=1"`
}

/* =========================================================
   Responses
   ========================================================= */

type VotingResponse struct {
	VotingID           uuid.UUID `json:"voting_id"`
	VotingPlannedStart time.Time `json:"voting_planned_start"`
	VotingPlannedEnd   time.Time `json:"voting_planned_end"`
	VotingVotesPerUser int       `json:"voting_votes_per_user"`
	VotingCreatedAt    time.Time `json:"voting_created_at"`
	VotingUpdatedAt    time.Time `json:"voting_updated_at"`
}

func FromModel(m *model.VotingModel) VotingResponse {
	return VotingResponse{
		VotingID:           m.VotingID,
		VotingPlannedStart: m.VotingPlannedStart,
		VotingPlannedEnd:   m.VotingPlannedEnd,
		VotingVotesPerUser: m.VotingVotesPerUser,
		VotingCreatedAt:    m.VotingCreatedAt,
		VotingUpdatedAt:    m.VotingUpdatedAt,
	}
}

func FromModels(ms []model.VotingModel) []VotingResponse {
	out := make([]VotingResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
