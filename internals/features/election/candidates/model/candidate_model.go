// file: internals/features/election/candidates/model/candidate_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Candidate ===================== */

type CandidateModel struct {
	CandidateID          uuid.UUID `gorm:"type:uuid;primaryKey;column:candidate_id" json:"candidate_id"`
	CandidateFirstName   string    `gorm:"type:varchar(150);not null;column:candidate_first_name"             json:"candidate_first_name"`
	CandidateSecondName  string    `gorm:"type:varchar(150);not null;default:'';column:candidate_second_name" json:"candidate_second_name"`
	CandidateLastName    string    `gorm:"type:varchar(150);not null;column:candidate_last_name"              json:"candidate_last_name"`
	CandidateSchoolClass string    `gorm:"type:varchar(20);not null;column:candidate_school_class"            json:"candidate_school_class"`
	CandidateImageURL    *string   `gorm:"type:text;column:candidate_image_url"                               json:"candidate_image_url,omitempty"`

	CandidateCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:candidate_created_at" json:"candidate_created_at"`
	CandidateUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:candidate_updated_at" json:"candidate_updated_at"`
}

func (CandidateModel) TableName() string { return "candidates" }

func (m *CandidateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CandidateID == uuid.Nil {
		m.CandidateID = uuid.New()
	}
	return nil
}

/* ===================== Registration (candidature) ===================== */

// CandidateRegistrationModel scopes one candidate to one voting and carries
// the eligibility flag checked at vote time. Unique per (candidate, voting).
type CandidateRegistrationModel struct {
	CandidateRegistrationID          uuid.UUID `gorm:"type:uuid;primaryKey;column:candidate_registration_id" json:"candidate_registration_id"`
	CandidateRegistrationCandidateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_candidate_per_voting;column:candidate_registration_candidate_id" json:"candidate_registration_candidate_id"`
	CandidateRegistrationVotingID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_candidate_per_voting;column:candidate_registration_voting_id"    json:"candidate_registration_voting_id"`
	CandidateRegistrationIsEligible  bool      `gorm:"not null;default:false;column:candidate_registration_is_eligible" json:"candidate_registration_is_eligible"`

	CandidateRegistrationCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:candidate_registration_created_at" json:"candidate_registration_created_at"`
	CandidateRegistrationUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:candidate_registration_updated_at" json:"candidate_registration_updated_at"`
}

func (CandidateRegistrationModel) TableName() string { return "candidate_registrations" }

func (m *CandidateRegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if m.CandidateRegistrationID == uuid.Nil {
		m.CandidateRegistrationID = uuid.New()
	}
	return nil
}

/* ===================== Electoral program ===================== */

// ElectoralProgramModel is the 1:1 free-text program of one registration.
// Info arrives sanitized from the DTO layer, never raw.
type ElectoralProgramModel struct {
	ElectoralProgramID             uuid.UUID `gorm:"type:uuid;primaryKey;column:electoral_program_id" json:"electoral_program_id"`
	ElectoralProgramRegistrationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_program_per_registration;column:electoral_program_registration_id" json:"electoral_program_registration_id"`
	ElectoralProgramInfo           string    `gorm:"type:text;not null;column:electoral_program_info" json:"electoral_program_info"`

	ElectoralProgramCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:electoral_program_created_at" json:"electoral_program_created_at"`
	ElectoralProgramUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:electoral_program_updated_at" json:"electoral_program_updated_at"`
}

func (ElectoralProgramModel) TableName() string { return "electoral_programs" }

func (m *ElectoralProgramModel) BeforeCreate(tx *gorm.DB) error {
	if m.ElectoralProgramID == uuid.Nil {
		m.ElectoralProgramID = uuid.New()
	}
	return nil
}
