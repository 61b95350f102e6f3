// file: internals/features/election/votes/model/vote_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
)

/* ===================== Vote ===================== */

// VoteModel is one cast ballot entry. Rows are written exactly once by the
// ledger and never touched again; the BeforeUpdate hook backs up the DB
// trigger so even application code cannot re-save one.
type VoteModel struct {
	VoteID             uuid.UUID `gorm:"type:uuid;primaryKey;column:vote_id" json:"vote_id"`
	VoteRegistrationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_vote_user_registration;column:vote_registration_id" json:"vote_registration_id"`
	VoteUserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_vote_user_registration;index:idx_votes_user;column:vote_user_id" json:"vote_user_id"`

	VoteCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:vote_created_at" json:"vote_created_at"`
}

func (VoteModel) TableName() string { return "votes" }

func (m *VoteModel) BeforeCreate(tx *gorm.DB) error {
	if m.VoteID == uuid.Nil {
		m.VoteID = uuid.New()
	}
	return nil
}

func (m *VoteModel) BeforeUpdate(tx *gorm.DB) error {
	return apperr.New(apperr.KindVoteImmutable, "votes cannot be modified once cast")
}
