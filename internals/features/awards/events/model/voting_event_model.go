// file: internals/features/awards/events/model/voting_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums ===================== */

type VotingRoundType string

const (
	RoundNomination VotingRoundType = "N"
	RoundFinal      VotingRoundType = "F"
)

// Derived event status; never stored.
type EventStatus string

const (
	EventPlanned EventStatus = "PLANNED"
	EventActive  EventStatus = "ACTIVE"
	EventEnded   EventStatus = "ENDED"
)

/* ===================== VotingEvent ===================== */

// VotingEventModel is one awards edition. WithNominations is fixed at
// creation; flipping it afterwards would invalidate the round structure.
type VotingEventModel struct {
	VotingEventID              uuid.UUID `gorm:"type:uuid;primaryKey;column:voting_event_id" json:"voting_event_id"`
	VotingEventWithNominations bool      `gorm:"not null;default:false;column:voting_event_with_nominations"           json:"voting_event_with_nominations"`

	VotingEventCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:voting_event_created_at" json:"voting_event_created_at"`
	VotingEventUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:voting_event_updated_at" json:"voting_event_updated_at"`
}

func (VotingEventModel) TableName() string { return "voting_events" }

func (m *VotingEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.VotingEventID == uuid.Nil {
		m.VotingEventID = uuid.New()
	}
	return nil
}

/* ===================== VotingRound ===================== */

// VotingRoundModel is a nomination or final phase of one event. At most one
// round of each type per event.
type VotingRoundModel struct {
	VotingRoundID           uuid.UUID       `gorm:"type:uuid;primaryKey;column:voting_round_id" json:"voting_round_id"`
	VotingRoundEventID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_round_type_per_event;column:voting_round_event_id" json:"voting_round_event_id"`
	VotingRoundType         VotingRoundType `gorm:"type:varchar(1);not null;default:'F';uniqueIndex:uq_round_type_per_event;column:voting_round_type" json:"voting_round_type"`
	VotingRoundPlannedStart time.Time       `gorm:"type:timestamptz;not null;column:voting_round_planned_start" json:"voting_round_planned_start"`
	VotingRoundPlannedEnd   time.Time       `gorm:"type:timestamptz;not null;column:voting_round_planned_end"   json:"voting_round_planned_end"`

	// How many teachers per award advance out of this round. FINAL is
	// always 1; NOMINATION needs at least 2.
	VotingRoundMaxWinners int `gorm:"type:smallint;not null;default:1;column:voting_round_max_winners" json:"voting_round_max_winners"`

	VotingRoundCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:voting_round_created_at" json:"voting_round_created_at"`
	VotingRoundUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:voting_round_updated_at" json:"voting_round_updated_at"`
}

func (VotingRoundModel) TableName() string { return "voting_rounds" }

func (m *VotingRoundModel) BeforeCreate(tx *gorm.DB) error {
	if m.VotingRoundID == uuid.Nil {
		m.VotingRoundID = uuid.New()
	}
	return nil
}

/* ===================== Candidature ===================== */

// CandidatureModel puts one teacher up for one award in one round.
// Unique per (teacher, award, round).
type CandidatureModel struct {
	CandidatureID         uuid.UUID `gorm:"type:uuid;primaryKey;column:candidature_id" json:"candidature_id"`
	CandidatureAwardID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_candidature_axis;column:candidature_award_id"   json:"candidature_award_id"`
	CandidatureTeacherID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_candidature_axis;column:candidature_teacher_id" json:"candidature_teacher_id"`
	CandidatureRoundID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_candidature_axis;column:candidature_round_id"   json:"candidature_round_id"`
	CandidatureIsEligible bool      `gorm:"not null;default:true;column:candidature_is_eligible" json:"candidature_is_eligible"`

	CandidatureCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:candidature_created_at" json:"candidature_created_at"`
}

func (CandidatureModel) TableName() string { return "candidatures" }

func (m *CandidatureModel) BeforeCreate(tx *gorm.DB) error {
	if m.CandidatureID == uuid.Nil {
		m.CandidatureID = uuid.New()
	}
	return nil
}
