// file: internals/features/awards/votes/service/award_ledger.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
	"ekonomvote_backend/internals/helpers/clockx"
	"ekonomvote_backend/internals/helpers/dbx"

	eventModel "ekonomvote_backend/internals/features/awards/events/model"
	electionSvc "ekonomvote_backend/internals/features/election/votes/service"
	"ekonomvote_backend/internals/features/awards/votes/model"
)

/* =========================
   Ledger & Constructor
   ========================= */

// AwardLedger owns the cast path for the awards election: one vote per
// call, one vote per (user, award, round), repeated by the caller per
// category. An advisory lock on the (user, round) pair covers the
// check-then-insert sequence.
type AwardLedger struct {
	DB    *gorm.DB
	Clock clockx.Clock
}

func NewAwardLedger(db *gorm.DB, clock clockx.Clock) *AwardLedger {
	if clock == nil {
		clock = clockx.System
	}
	return &AwardLedger{DB: db, Clock: clock}
}

/* =========================
   CastVote
   ========================= */

func (l *AwardLedger) CastVote(ctx context.Context, userID, candidatureID uuid.UUID) error {
	return l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidature eventModel.CandidatureModel
		if err := tx.
			Where("candidature_id = ?", candidatureID).
			First(&candidature).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "candidature %s does not exist", candidatureID)
			}
			return err
		}

		// Serialize on the (user, round) pair; concurrent casts by the same
		// user on this round queue up here, other users stay parallel.
		if err := dbx.LockUserScope(tx, userID, candidature.CandidatureRoundID); err != nil {
			return err
		}

		var round eventModel.VotingRoundModel
		if err := tx.
			Where("voting_round_id = ?", candidature.CandidatureRoundID).
			First(&round).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "round %s does not exist", candidature.CandidatureRoundID)
			}
			return err
		}

		now := l.Clock.Now()
		switch electionSvc.CheckWindow(round.VotingRoundPlannedStart, round.VotingRoundPlannedEnd, now) {
		case electionSvc.StatusNotYetOpen:
			return apperr.New(apperr.KindVotingNotStarted, "round has not started yet")
		case electionSvc.StatusClosed:
			return apperr.New(apperr.KindVotingEnded, "round has already ended")
		}
		if !candidature.CandidatureIsEligible {
			return apperr.New(apperr.KindIneligibleTarget, "candidature %s is not eligible for votes", candidatureID)
		}

		// Same candidature twice.
		var dup int64
		if err := tx.Model(&model.AwardVoteModel{}).
			Where("award_vote_user_id = ? AND award_vote_candidature_id = ?", userID, candidatureID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return apperr.New(apperr.KindDuplicateVote, "already voted for this candidature")
		}

		// Second uniqueness axis: one vote per (user, award, round).
		var inCategory int64
		if err := tx.Model(&model.AwardVoteModel{}).
			Joins("JOIN candidatures ON candidatures.candidature_id = award_votes.award_vote_candidature_id").
			Where("award_votes.award_vote_user_id = ? AND candidatures.candidature_award_id = ? AND candidatures.candidature_round_id = ?",
				userID, candidature.CandidatureAwardID, candidature.CandidatureRoundID).
			Count(&inCategory).Error; err != nil {
			return err
		}
		if inCategory > 0 {
			return apperr.New(apperr.KindQuotaExceeded, "already voted in this award category this round")
		}

		vote := model.AwardVoteModel{
			AwardVoteCandidatureID: candidatureID,
			AwardVoteUserID:        userID,
			AwardVoteCreatedAt:     now,
		}
		if err := tx.Create(&vote).Error; err != nil {
			if dbx.IsUniqueViolation(err) {
				return apperr.New(apperr.KindDuplicateVote, "already voted for this candidature")
			}
			return err
		}
		return nil
	})
}

/* =========================
   Standings (read-only)
   ========================= */

type CandidatureStanding struct {
	CandidatureID uuid.UUID `json:"candidature_id"`
	AwardID       uuid.UUID `json:"award_id"`
	TeacherID     uuid.UUID `json:"teacher_id"`
	VotesCount    int64     `json:"votes_count"`
}

// Standings returns per-candidature vote totals for one round.
func (l *AwardLedger) Standings(ctx context.Context, roundID uuid.UUID) ([]CandidatureStanding, error) {
	var rows []CandidatureStanding
	err := l.DB.WithContext(ctx).
		Table("candidatures").
		Select(`candidatures.candidature_id AS candidature_id,
			candidatures.candidature_award_id AS award_id,
			candidatures.candidature_teacher_id AS teacher_id,
			COUNT(award_votes.award_vote_id) AS votes_count`).
		Joins("LEFT JOIN award_votes ON award_votes.award_vote_candidature_id = candidatures.candidature_id").
		Where("candidatures.candidature_round_id = ?", roundID).
		Group("candidatures.candidature_id, candidatures.candidature_award_id, candidatures.candidature_teacher_id").
		Order("votes_count DESC").
		Scan(&rows).Error
	return rows, err
}
