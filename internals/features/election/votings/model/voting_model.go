// file: internals/features/election/votings/model/voting_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Model ===================== */

// VotingModel is one scheduled student-council election. Times are stored
// in UTC; presentation-layer localization is the caller's problem.
type VotingModel struct {
	VotingID           uuid.UUID `gorm:"type:uuid;primaryKey;column:voting_id" json:"voting_id"`
	VotingPlannedStart time.Time `gorm:"type:timestamptz;not null;column:voting_planned_start"           json:"voting_planned_start"`
	VotingPlannedEnd   time.Time `gorm:"type:timestamptz;not null;column:voting_planned_end"             json:"voting_planned_end"`

	// How many distinct candidates one user must vote for, all at once.
	VotingVotesPerUser int `gorm:"type:smallint;not null;default:1;column:voting_votes_per_user" json:"voting_votes_per_user"`

	VotingCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:voting_created_at" json:"voting_created_at"`
	VotingUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:voting_updated_at" json:"voting_updated_at"`
}

func (VotingModel) TableName() string { return "votings" }

func (m *VotingModel) BeforeCreate(tx *gorm.DB) error {
	if m.VotingID == uuid.Nil {
		m.VotingID = uuid.New()
	}
	return nil
}

// HasStarted reports whether the voting schedule is frozen.
func (m *VotingModel) HasStarted(now time.Time) bool {
	return !now.Before(m.VotingPlannedStart)
}

// HasEnded reports whether the voting window is fully in the past.
func (m *VotingModel) HasEnded(now time.Time) bool {
	return now.After(m.VotingPlannedEnd)
}
