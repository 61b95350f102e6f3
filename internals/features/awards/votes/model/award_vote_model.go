// file: internals/features/awards/votes/model/award_vote_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
)

// AwardVoteModel is one ballot in the awards election. The unique index
// stops double votes on the same candidature; one-vote-per-(user, award,
// round) is the ledger's job because it spans a join.
type AwardVoteModel struct {
	AwardVoteID            uuid.UUID `gorm:"type:uuid;primaryKey;column:award_vote_id" json:"award_vote_id"`
	AwardVoteCandidatureID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_award_vote_user_candidature;column:award_vote_candidature_id" json:"award_vote_candidature_id"`
	AwardVoteUserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_award_vote_user_candidature;index:idx_award_votes_user;column:award_vote_user_id" json:"award_vote_user_id"`

	AwardVoteCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:award_vote_created_at" json:"award_vote_created_at"`
}

func (AwardVoteModel) TableName() string { return "award_votes" }

func (m *AwardVoteModel) BeforeCreate(tx *gorm.DB) error {
	if m.AwardVoteID == uuid.Nil {
		m.AwardVoteID = uuid.New()
	}
	return nil
}

func (m *AwardVoteModel) BeforeUpdate(tx *gorm.DB) error {
	return apperr.New(apperr.KindVoteImmutable, "award votes cannot be modified once cast")
}
