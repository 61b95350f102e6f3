// file: internals/features/awards/events/service/advance_service.go
package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
	"ekonomvote_backend/internals/configs"
	"ekonomvote_backend/internals/helpers/dbx"

	auditModel "ekonomvote_backend/internals/features/audit/model"
	auditSvc "ekonomvote_backend/internals/features/audit/service"
	"ekonomvote_backend/internals/features/awards/events/model"
)

/* =========================
   Tie-break policy
   ========================= */

type TieBreak string

const (
	// TieBreakEarliestVote prefers the teacher whose first vote arrived
	// earlier when vote counts are equal.
	TieBreakEarliestVote TieBreak = "earliest_vote"
	// TieBreakIncludeTies advances everyone tied with the last qualifying
	// place, possibly exceeding max_winners.
	TieBreakIncludeTies TieBreak = "include_ties"
)

// AdvanceTieBreak reads the configured policy; stakeholders have not
// settled on one, so it stays an env knob rather than a literal.
func AdvanceTieBreak() TieBreak {
	if configs.GetEnv("AWARDS_ADVANCE_TIE_BREAK", string(TieBreakEarliestVote)) == string(TieBreakIncludeTies) {
		return TieBreakIncludeTies
	}
	return TieBreakEarliestVote
}

/* =========================
   AdvanceRound
   ========================= */

type standingRow struct {
	CandidatureID uuid.UUID
	AwardID       uuid.UUID
	TeacherID     uuid.UUID
	VotesCount    int64
	FirstVoteAt   *time.Time
	CreatedAt     time.Time
}

// AdvanceRound copies the top max_winners teachers per award from the
// NOMINATION round into FINAL candidatures. It is an explicit administrative
// action: it refuses while the nomination window is still open and refuses
// a FINAL round that already holds candidatures.
func (s *EventService) AdvanceRound(ctx context.Context, actorID, eventID uuid.UUID, tieBreak TieBreak) (int, error) {
	advanced := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.VotingEventModel
		if err := dbx.LockForUpdate(tx).
			Where("voting_event_id = ?", eventID).
			First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "voting event %s does not exist", eventID)
			}
			return err
		}
		if !event.VotingEventWithNominations {
			return apperr.New(apperr.KindValidationFailed, "event has no nomination round to advance from")
		}

		var nomination, final model.VotingRoundModel
		if err := tx.
			Where("voting_round_event_id = ? AND voting_round_type = ?", eventID, model.RoundNomination).
			First(&nomination).Error; err != nil {
			return apperr.New(apperr.KindTargetNotFound, "nomination round of event %s does not exist", eventID)
		}
		if err := tx.
			Where("voting_round_event_id = ? AND voting_round_type = ?", eventID, model.RoundFinal).
			First(&final).Error; err != nil {
			return apperr.New(apperr.KindTargetNotFound, "final round of event %s does not exist", eventID)
		}

		now := s.Clock.Now()
		if !now.After(nomination.VotingRoundPlannedEnd) {
			return apperr.New(apperr.KindVotingNotStarted, "nomination round has not ended yet")
		}

		var finalCount int64
		if err := tx.Model(&model.CandidatureModel{}).
			Where("candidature_round_id = ?", final.VotingRoundID).
			Count(&finalCount).Error; err != nil {
			return err
		}
		if finalCount > 0 {
			return apperr.New(apperr.KindAlreadyPopulated, "final round already holds candidatures")
		}

		var rows []standingRow
		if err := tx.
			Table("candidatures").
			Select(`candidatures.candidature_id AS candidature_id,
				candidatures.candidature_award_id AS award_id,
				candidatures.candidature_teacher_id AS teacher_id,
				COUNT(award_votes.award_vote_id) AS votes_count,
				MIN(award_votes.award_vote_created_at) AS first_vote_at,
				candidatures.candidature_created_at AS created_at`).
			Joins("LEFT JOIN award_votes ON award_votes.award_vote_candidature_id = candidatures.candidature_id").
			Where("candidatures.candidature_round_id = ? AND candidatures.candidature_is_eligible = ?", nomination.VotingRoundID, true).
			Group("candidatures.candidature_id, candidatures.candidature_award_id, candidatures.candidature_teacher_id, candidatures.candidature_created_at").
			Scan(&rows).Error; err != nil {
			return err
		}

		winners := pickWinners(rows, nomination.VotingRoundMaxWinners, tieBreak)
		if len(winners) == 0 {
			return nil
		}

		candidatures := make([]model.CandidatureModel, 0, len(winners))
		for _, w := range winners {
			candidatures = append(candidatures, model.CandidatureModel{
				CandidatureAwardID:    w.AwardID,
				CandidatureTeacherID:  w.TeacherID,
				CandidatureRoundID:    final.VotingRoundID,
				CandidatureIsEligible: true,
			})
		}
		if err := tx.CreateInBatches(&candidatures, 500).Error; err != nil {
			if dbx.IsUniqueViolation(err) {
				return apperr.New(apperr.KindAlreadyPopulated, "final round already holds candidatures")
			}
			return err
		}
		advanced = len(candidatures)
		return auditSvc.Append(tx, actorID, auditModel.ActionUpdate, targetTypeVotingEvent, eventID,
			map[string]auditSvc.FieldDiff{"advanced_candidatures": {Old: 0, New: advanced}})
	})
	if err != nil {
		return 0, err
	}
	return advanced, nil
}

// pickWinners sorts each award's standings by votes, breaking ties by the
// configured rule, and keeps the qualifying teachers.
func pickWinners(rows []standingRow, maxWinners int, tieBreak TieBreak) []standingRow {
	byAward := map[uuid.UUID][]standingRow{}
	for _, r := range rows {
		byAward[r.AwardID] = append(byAward[r.AwardID], r)
	}

	var winners []standingRow
	for _, standings := range byAward {
		sort.SliceStable(standings, func(i, j int) bool {
			if standings[i].VotesCount != standings[j].VotesCount {
				return standings[i].VotesCount > standings[j].VotesCount
			}
			fi, fj := standings[i].FirstVoteAt, standings[j].FirstVoteAt
			switch {
			case fi != nil && fj != nil && !fi.Equal(*fj):
				return fi.Before(*fj)
			case fi != nil && fj == nil:
				return true
			case fi == nil && fj != nil:
				return false
			}
			return standings[i].CreatedAt.Before(standings[j].CreatedAt)
		})

		cut := maxWinners
		if cut > len(standings) {
			cut = len(standings)
		}
		if tieBreak == TieBreakIncludeTies && cut > 0 && cut < len(standings) {
			lastCount := standings[cut-1].VotesCount
			for cut < len(standings) && standings[cut].VotesCount == lastCount {
				cut++
			}
		}
		winners = append(winners, standings[:cut]...)
	}
	return winners
}
