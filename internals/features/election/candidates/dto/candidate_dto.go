// file: internals/features/election/candidates/dto/candidate_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ekonomvote_backend/internals/features/election/candidates/model"
)

/* =========================================================
   Requests: candidate
   ========================================================= */

type CreateCandidateRequest struct {
	CandidateFirstName   string `json:"candidate_first_name"   validate:"required,max=150"`
	CandidateSecondName  string `json:"candidate_second_name"  validate:"omitempty,max=150"`
	CandidateLastName    string `json:"candidate_last_name"    validate:"required,max=150"`
	CandidateSchoolClass string `json:"candidate_school_class" validate:"required,max=20"`
}

func (r *CreateCandidateRequest) Normalize() {
	r.CandidateFirstName = strings.TrimSpace(r.CandidateFirstName)
	r.CandidateSecondName = strings.TrimSpace(r.CandidateSecondName)
	r.CandidateLastName = strings.TrimSpace(r.CandidateLastName)
	r.CandidateSchoolClass = strings.TrimSpace(r.CandidateSchoolClass)
}

func (r *CreateCandidateRequest) ToModel() *model.CandidateModel {
	return &model.CandidateModel{
		CandidateFirstName:   r.CandidateFirstName,
		CandidateSecondName:  r.CandidateSecondName,
		CandidateLastName:    r.CandidateLastName,
		CandidateSchoolClass: r.CandidateSchoolClass,
	}
}

/* =========================================================
   Requests: registration & program
   ========================================================= */

type RegisterCandidateRequest struct {
	CandidateID uuid.UUID `json:"candidate_id" validate:"required"`
	VotingID    uuid.UUID `json:"voting_id"    validate:"required"`
	IsEligible  *bool     `json:"is_eligible"  validate:"omitempty"`
}

func (r *RegisterCandidateRequest) ToModel() *model.CandidateRegistrationModel {
	reg := &model.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: r.CandidateID,
		CandidateRegistrationVotingID:    r.VotingID,
	}
	if r.IsEligible != nil {
		reg.CandidateRegistrationIsEligible = *r.IsEligible
	}
	return reg
}

type SetEligibilityRequest struct {
	IsEligible bool `json:"is_eligible"`
}

type UpsertProgramRequest struct {
	Info string `json:"info" validate:"required"`
}

/* =========================================================
   Responses
   ========================================================= */

type CandidateResponse struct {
	CandidateID          uuid.UUID `json:"candidate_id"`
	CandidateFirstName   string    `json:"candidate_first_name"`
	CandidateSecondName  string    `json:"candidate_second_name"`
	CandidateLastName    string    `json:"candidate_last_name"`
	CandidateSchoolClass string    `json:"candidate_school_class"`
	CandidateImageURL    *string   `json:"candidate_image_url,omitempty"`
	CandidateCreatedAt   time.Time `json:"candidate_created_at"`
}

func FromCandidateModel(m *model.CandidateModel) CandidateResponse {
	return CandidateResponse{
		CandidateID:          m.CandidateID,
		CandidateFirstName:   m.CandidateFirstName,
		CandidateSecondName:  m.CandidateSecondName,
		CandidateLastName:    m.CandidateLastName,
		CandidateSchoolClass: m.CandidateSchoolClass,
		CandidateImageURL:    m.CandidateImageURL,
		CandidateCreatedAt:   m.CandidateCreatedAt,
	}
}

func FromCandidateModels(ms []model.CandidateModel) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromCandidateModel(&ms[i]))
	}
	return out
}

type RegistrationResponse struct {
	CandidateRegistrationID uuid.UUID `json:"candidate_registration_id"`
	CandidateID             uuid.UUID `json:"candidate_id"`
	VotingID                uuid.UUID `json:"voting_id"`
	IsEligible              bool      `json:"is_eligible"`
	CreatedAt               time.Time `json:"created_at"`
}

func FromRegistrationModel(m *model.CandidateRegistrationModel) RegistrationResponse {
	return RegistrationResponse{
		CandidateRegistrationID: m.CandidateRegistrationID,
		CandidateID:             m.CandidateRegistrationCandidateID,
		VotingID:                m.CandidateRegistrationVotingID,
		IsEligible:              m.CandidateRegistrationIsEligible,
		CreatedAt:               m.CandidateRegistrationCreatedAt,
	}
}

type ProgramResponse struct {
	ElectoralProgramID uuid.UUID `json:"electoral_program_id"`
	RegistrationID     uuid.UUID `json:"registration_id"`
	Info               string    `json:"info"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func FromProgramModel(m *model.ElectoralProgramModel) ProgramResponse {
	return ProgramResponse{
		ElectoralProgramID: m.ElectoralProgramID,
		RegistrationID:     m.ElectoralProgramRegistrationID,
		Info:               m.ElectoralProgramInfo,
		UpdatedAt:          m.ElectoralProgramUpdatedAt,
	}
}
