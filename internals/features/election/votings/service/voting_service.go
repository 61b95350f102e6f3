// file: internals/features/election/votings/service/voting_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
	"ekonomvote_backend/internals/helpers/clockx"
	"ekonomvote_backend/internals/helpers/dbx"

	auditModel "ekonomvote_backend/internals/features/audit/model"
	auditSvc "ekonomvote_backend/internals/features/audit/service"
	regModel "ekonomvote_backend/internals/features/election/candidates/model"
	votingModel "ekonomvote_backend/internals/features/election/votings/model"
	voteModel "ekonomvote_backend/internals/features/election/votes/model"
)

const targetTypeVoting = "Voting"

/* =========================
   Service & Constructor
   ========================= */

type VotingService struct {
	DB    *gorm.DB
	Clock clockx.Clock
}

func NewVotingService(db *gorm.DB, clock clockx.Clock) *VotingService {
	if clock == nil {
		clock = clockx.System
	}
	return &VotingService{DB: db, Clock: clock}
}

/* =========================
   Schedule validation
   ========================= */

// ValidateSchedule applies the creation/update window rules: start strictly
// in the future, start strictly before end.
func ValidateSchedule(start, end, now time.Time) error {
	if !start.After(now) {
		return apperr.New(apperr.KindInvalidWindow, "planned start must be in the future")
	}
	if !start.Before(end) {
		return apperr.New(apperr.KindInvalidWindow, "planned start must be before planned end")
	}
	return nil
}

/* =========================
   Create / Update / Delete
   ========================= */

func (s *VotingService) Create(ctx context.Context, actorID uuid.UUID, voting *votingModel.VotingModel) error {
	now := s.Clock.Now()
	if err := ValidateSchedule(voting.VotingPlannedStart, voting.VotingPlannedEnd, now); err != nil {
		return err
	}
	if voting.VotingVotesPerUser < 1 {
		return apperr.New(apperr.KindValidationFailed, "votes per user must be at least 1")
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(voting).Error; err != nil {
			return err
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionCreate, targetTypeVoting, voting.VotingID, nil)
	})
}

// Update reschedules a voting that has not started yet. A voting whose
// window opened is frozen.
func (s *VotingService) Update(ctx context.Context, actorID, votingID uuid.UUID, start, end time.Time, votesPerUser int) (*votingModel.VotingModel, error) {
	var updated votingModel.VotingModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing votingModel.VotingModel
		if err := dbx.LockForUpdate(tx).
			Where("voting_id = ?", votingID).
			First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "voting %s does not exist", votingID)
			}
			return err
		}

		now := s.Clock.Now()
		if existing.HasStarted(now) {
			return apperr.New(apperr.KindImmutableField, "a voting that already started cannot be edited")
		}
		if err := ValidateSchedule(start, end, now); err != nil {
			return err
		}
		if votesPerUser < 1 {
			return apperr.New(apperr.KindValidationFailed, "votes per user must be at least 1")
		}

		before := existing
		existing.VotingPlannedStart = start
		existing.VotingPlannedEnd = end
		existing.VotingVotesPerUser = votesPerUser
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		diffs := auditSvc.Diff(before, existing)
		delete(diffs, "voting_updated_at")
		if err := auditSvc.Append(tx, actorID, auditModel.ActionUpdate, targetTypeVoting, votingID, diffs); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCascade is the explicit admin "destroy everything" action: the
// voting, its registrations, their programs and all votes go in one
// transaction, children first.
func (s *VotingService) DeleteCascade(ctx context.Context, actorID, votingID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing votingModel.VotingModel
		if err := dbx.LockForUpdate(tx).
			Where("voting_id = ?", votingID).
			First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "voting %s does not exist", votingID)
			}
			return err
		}

		regIDs := tx.Model(&regModel.CandidateRegistrationModel{}).
			Select("candidate_registration_id").
			Where("candidate_registration_voting_id = ?", votingID)

		if err := tx.
			Where("vote_registration_id IN (?)", regIDs).
			Delete(&voteModel.VoteModel{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("electoral_program_registration_id IN (?)", regIDs).
			Delete(&regModel.ElectoralProgramModel{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("candidate_registration_voting_id = ?", votingID).
			Delete(&regModel.CandidateRegistrationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionDelete, targetTypeVoting, votingID, nil)
	})
}

/* =========================
   Listing helpers
   ========================= */

// Current returns the upcoming-or-running voting with the earliest start,
// or nil when none is scheduled.
func (s *VotingService) Current(ctx context.Context) (*votingModel.VotingModel, error) {
	var v votingModel.VotingModel
	err := s.DB.WithContext(ctx).
		Where("voting_planned_end > ?", s.Clock.Now()).
		Order("voting_planned_start").
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
