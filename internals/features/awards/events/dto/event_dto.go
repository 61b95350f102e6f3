// file: internals/features/awards/events/dto/event_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"ekonomvote_backend/internals/features/awards/events/model"
	"ekonomvote_backend/internals/features/awards/events/service"
)

/* =========================================================
   Requests
   ========================================================= */

type RoundBoundsRequest struct {
	PlannedStart time.Time `json:"planned_start" validate:"required"`
	PlannedEnd   time.Time `json:"planned_end"   validate:"required"`
	MaxWinners   int       `json:"max_winners"   validate:"omitempty,min=1"`
}

func (r *RoundBoundsRequest) ToBounds() service.RoundBounds {
	return service.RoundBounds{
		PlannedStart: r.PlannedStart.UTC(),
		PlannedEnd:   r.PlannedEnd.UTC(),
		MaxWinners:   r.MaxWinners,
	}
}

type CreateEventRequest struct {
	WithNominations bool                `json:"with_nominations"`
	Final           RoundBoundsRequest  `json:"final"      validate:"required"`
	Nomination      *RoundBoundsRequest `json:"nomination" validate:"omitempty"`
}

type UpdateEventRequest struct {
	WithNominations bool                `json:"with_nominations"`
	Final           RoundBoundsRequest  `json:"final"      validate:"required"`
	Nomination      *RoundBoundsRequest `json:"nomination" validate:"omitempty"`
}

/* =========================================================
   Responses
   ========================================================= */

type RoundResponse struct {
	VotingRoundID uuid.UUID             `json:"voting_round_id"`
	RoundType     model.VotingRoundType `json:"round_type"`
	PlannedStart  time.Time             `json:"planned_start"`
	PlannedEnd    time.Time             `json:"planned_end"`
	MaxWinners    int                   `json:"max_winners"`
}

func FromRoundModel(m *model.VotingRoundModel) RoundResponse {
	return RoundResponse{
		VotingRoundID: m.VotingRoundID,
		RoundType:     m.VotingRoundType,
		PlannedStart:  m.VotingRoundPlannedStart,
		PlannedEnd:    m.VotingRoundPlannedEnd,
		MaxWinners:    m.VotingRoundMaxWinners,
	}
}

type EventResponse struct {
	VotingEventID   uuid.UUID         `json:"voting_event_id"`
	WithNominations bool              `json:"with_nominations"`
	Status          model.EventStatus `json:"status"`
	Rounds          []RoundResponse   `json:"rounds"`
	CreatedAt       time.Time         `json:"created_at"`
}

func FromEventModel(m *model.VotingEventModel, rounds []model.VotingRoundModel, status model.EventStatus) EventResponse {
	out := EventResponse{
		VotingEventID:   m.VotingEventID,
		WithNominations: m.VotingEventWithNominations,
		Status:          status,
		Rounds:          make([]RoundResponse, 0, len(rounds)),
		CreatedAt:       m.VotingEventCreatedAt,
	}
	for i := range rounds {
		out.Rounds = append(out.Rounds, FromRoundModel(&rounds[i]))
	}
	return out
}
