// file: internals/features/election/votes/service/ledger.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
	"ekonomvote_backend/internals/helpers/clockx"
	"ekonomvote_backend/internals/helpers/dbx"

	regModel "ekonomvote_backend/internals/features/election/candidates/model"
	votingModel "ekonomvote_backend/internals/features/election/votings/model"
	voteModel "ekonomvote_backend/internals/features/election/votes/model"
)

/* =========================
   Ledger & Constructor
   ========================= */

// VoteLedger owns the cast path for the general election. Every cast runs
// in one transaction holding an advisory lock on the (user, voting) pair,
// so two requests from the same user serialize and the check-then-insert
// sequence cannot interleave.
type VoteLedger struct {
	DB    *gorm.DB
	Clock clockx.Clock
}

func NewVoteLedger(db *gorm.DB, clock clockx.Clock) *VoteLedger {
	if clock == nil {
		clock = clockx.System
	}
	return &VoteLedger{DB: db, Clock: clock}
}

/* =========================
   CastVotes (transactional batch)
   ========================= */

// CastVotes persists the user's full ballot for one voting: exactly
// votes_per_user distinct, eligible registrations, all inside the voting
// window, all-or-nothing. Any failure leaves zero rows behind.
func (l *VoteLedger) CastVotes(ctx context.Context, userID, votingID uuid.UUID, registrationIDs []uuid.UUID) error {
	return l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize on the (user, voting) pair for the duration of the
		// check-then-insert sequence. Other users stay fully parallel.
		if err := dbx.LockUserScope(tx, userID, votingID); err != nil {
			return err
		}

		var voting votingModel.VotingModel
		if err := tx.
			Where("voting_id = ?", votingID).
			First(&voting).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "voting %s does not exist", votingID)
			}
			return err
		}

		now := l.Clock.Now()
		switch CheckWindow(voting.VotingPlannedStart, voting.VotingPlannedEnd, now) {
		case StatusNotYetOpen:
			return apperr.New(apperr.KindVotingNotStarted, "voting has not started yet")
		case StatusClosed:
			return apperr.New(apperr.KindVotingEnded, "voting has already ended")
		}

		// Duplicates inside the submitted ballot itself.
		seen := make(map[uuid.UUID]struct{}, len(registrationIDs))
		var failures apperr.List
		for _, id := range registrationIDs {
			if _, dup := seen[id]; dup {
				failures = append(failures, apperr.New(apperr.KindDuplicateVote,
					"registration %s appears more than once in the ballot", id))
			}
			seen[id] = struct{}{}
		}
		if len(failures) > 0 {
			return failures
		}

		// Resolve every target and validate ownership + eligibility.
		var regs []regModel.CandidateRegistrationModel
		if err := tx.
			Where("candidate_registration_id IN ?", registrationIDs).
			Find(&regs).Error; err != nil {
			return err
		}
		byID := make(map[uuid.UUID]regModel.CandidateRegistrationModel, len(regs))
		for _, r := range regs {
			byID[r.CandidateRegistrationID] = r
		}
		for _, id := range registrationIDs {
			reg, ok := byID[id]
			if !ok {
				failures = append(failures, apperr.New(apperr.KindTargetNotFound,
					"registration %s does not exist", id))
				continue
			}
			if reg.CandidateRegistrationVotingID != votingID {
				failures = append(failures, apperr.New(apperr.KindTargetNotInVoting,
					"registration %s does not belong to voting %s", id, votingID))
				continue
			}
			if !reg.CandidateRegistrationIsEligible {
				failures = append(failures, apperr.New(apperr.KindIneligibleTarget,
					"registration %s is not eligible for votes", id))
			}
		}
		if len(failures) > 0 {
			return failures
		}

		// Prior votes by this user on any of the submitted targets.
		var dupCount int64
		if err := tx.Model(&voteModel.VoteModel{}).
			Where("vote_user_id = ? AND vote_registration_id IN ?", userID, registrationIDs).
			Count(&dupCount).Error; err != nil {
			return err
		}
		if dupCount > 0 {
			return apperr.New(apperr.KindDuplicateVote, "ballot contains a candidate already voted for")
		}

		// Aggregate quota across the whole voting, then the formset rule:
		// the ballot must carry exactly votes_per_user entries.
		var existing int64
		if err := tx.Model(&voteModel.VoteModel{}).
			Joins("JOIN candidate_registrations ON candidate_registrations.candidate_registration_id = votes.vote_registration_id").
			Where("votes.vote_user_id = ? AND candidate_registrations.candidate_registration_voting_id = ?", userID, votingID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing+int64(len(registrationIDs)) > int64(voting.VotingVotesPerUser) {
			return apperr.New(apperr.KindQuotaExceeded,
				"user already cast %d of %d allowed votes", existing, voting.VotingVotesPerUser)
		}
		if len(registrationIDs) != voting.VotingVotesPerUser {
			return apperr.New(apperr.KindIncompleteBallot,
				"ballot must contain exactly %d votes, got %d", voting.VotingVotesPerUser, len(registrationIDs))
		}

		votes := make([]voteModel.VoteModel, 0, len(registrationIDs))
		for _, id := range registrationIDs {
			votes = append(votes, voteModel.VoteModel{
				VoteRegistrationID: id,
				VoteUserID:         userID,
				VoteCreatedAt:      now,
			})
		}
		if err := tx.Create(&votes).Error; err != nil {
			// A concurrent writer on another voting row can still race us
			// to the (user, registration) unique index.
			if dbx.IsUniqueViolation(err) {
				return apperr.New(apperr.KindDuplicateVote, "vote already recorded for one of the targets")
			}
			return err
		}
		return nil
	})
}

/* =========================
   Read side
   ========================= */

// HasVoted reports whether the user already cast any vote in the voting.
func (l *VoteLedger) HasVoted(ctx context.Context, userID, votingID uuid.UUID) (bool, error) {
	var n int64
	err := l.DB.WithContext(ctx).Model(&voteModel.VoteModel{}).
		Joins("JOIN candidate_registrations ON candidate_registrations.candidate_registration_id = votes.vote_registration_id").
		Where("votes.vote_user_id = ? AND candidate_registrations.candidate_registration_voting_id = ?", userID, votingID).
		Count(&n).Error
	return n > 0, err
}
