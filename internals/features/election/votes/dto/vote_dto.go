// file: internals/features/election/votes/dto/vote_dto.go
package dto

import (
	"github.com/google/uuid"
)

// CastVotesRequest is the whole ballot of one user for one voting.
// The registration list must match the voting's votes_per_user exactly.
type CastVotesRequest struct {
	VotingID        uuid.UUID   `json:"voting_id"        validate:"required"`
	RegistrationIDs []uuid.UUID `json:"registration_ids" validate:"required,min=1,dive,required"`
}

type HasVotedResponse struct {
	VotingID uuid.UUID `json:"voting_id"`
	HasVoted bool      `json:"has_voted"`
}
