// file: internals/features/election/candidates/service/registration_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
	"ekonomvote_backend/internals/configs"
	helper "ekonomvote_backend/internals/helpers"
	"ekonomvote_backend/internals/helpers/clockx"
	"ekonomvote_backend/internals/helpers/dbx"

	auditModel "ekonomvote_backend/internals/features/audit/model"
	auditSvc "ekonomvote_backend/internals/features/audit/service"
	candModel "ekonomvote_backend/internals/features/election/candidates/model"
	votingModel "ekonomvote_backend/internals/features/election/votings/model"
	voteModel "ekonomvote_backend/internals/features/election/votes/model"
)

const (
	targetTypeRegistration = "CandidateRegistration"
	targetTypeProgram      = "ElectoralProgram"
)

/* =========================
   Service & Constructor
   ========================= */

type RegistrationService struct {
	DB    *gorm.DB
	Clock clockx.Clock
}

func NewRegistrationService(db *gorm.DB, clock clockx.Clock) *RegistrationService {
	if clock == nil {
		clock = clockx.System
	}
	return &RegistrationService{DB: db, Clock: clock}
}

/* =========================
   Register candidate
   ========================= */

// Register creates a candidature for a voting that has not started yet,
// honoring the per-voting registration cap. The voting row is locked so a
// concurrent Register cannot slip past the cap.
func (s *RegistrationService) Register(ctx context.Context, actorID uuid.UUID, reg *candModel.CandidateRegistrationModel) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var voting votingModel.VotingModel
		if err := dbx.LockForUpdate(tx).
			Where("voting_id = ?", reg.CandidateRegistrationVotingID).
			First(&voting).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "voting %s does not exist", reg.CandidateRegistrationVotingID)
			}
			return err
		}

		now := s.Clock.Now()
		if voting.HasStarted(now) {
			return apperr.New(apperr.KindImmutableField,
				"candidates cannot be registered after the voting has started")
		}

		limit := configs.MaxRegistrationsPerVoting()
		var count int64
		if err := tx.Model(&candModel.CandidateRegistrationModel{}).
			Where("candidate_registration_voting_id = ?", voting.VotingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(limit) {
			return apperr.New(apperr.KindRegistrationLimitReached,
				"a voting cannot hold more than %d registrations", limit)
		}

		if err := tx.Create(reg).Error; err != nil {
			if dbx.IsUniqueViolation(err) {
				return apperr.New(apperr.KindDuplicateRegistration,
					"this candidate is already registered in the voting")
			}
			return err
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionCreate, targetTypeRegistration, reg.CandidateRegistrationID, nil)
	})
}

// SetEligibility flips the gate checked at vote time.
func (s *RegistrationService) SetEligibility(ctx context.Context, actorID, registrationID uuid.UUID, eligible bool) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reg candModel.CandidateRegistrationModel
		if err := tx.
			Where("candidate_registration_id = ?", registrationID).
			First(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "registration %s does not exist", registrationID)
			}
			return err
		}
		if reg.CandidateRegistrationIsEligible == eligible {
			return nil
		}
		before := reg
		reg.CandidateRegistrationIsEligible = eligible
		if err := tx.Save(&reg).Error; err != nil {
			return err
		}
		diffs := auditSvc.Diff(before, reg)
		delete(diffs, "candidate_registration_updated_at")
		return auditSvc.Append(tx, actorID, auditModel.ActionUpdate, targetTypeRegistration, registrationID, diffs)
	})
}

// Unregister removes a registration before the voting starts, cascading to
// its program and votes (votes can only exist if an admin reopened the
// window, but the cascade stays exhaustive).
func (s *RegistrationService) Unregister(ctx context.Context, actorID, registrationID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reg candModel.CandidateRegistrationModel
		if err := tx.
			Where("candidate_registration_id = ?", registrationID).
			First(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "registration %s does not exist", registrationID)
			}
			return err
		}
		if err := tx.
			Where("vote_registration_id = ?", registrationID).
			Delete(&voteModel.VoteModel{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("electoral_program_registration_id = ?", registrationID).
			Delete(&candModel.ElectoralProgramModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&reg).Error; err != nil {
			return err
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionDelete, targetTypeRegistration, registrationID, nil)
	})
}

/* =========================
   Electoral program
   ========================= */

// UpsertProgram writes the sanitized program text of one registration.
// Programs are required and non-empty after sanitization.
func (s *RegistrationService) UpsertProgram(ctx context.Context, actorID, registrationID uuid.UUID, rawInfo string) (*candModel.ElectoralProgramModel, error) {
	clean := helper.SanitizeProgramHTML(rawInfo)
	if strings.TrimSpace(clean) == "" {
		return nil, apperr.New(apperr.KindValidationFailed, "electoral program content is required")
	}

	var out candModel.ElectoralProgramModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reg candModel.CandidateRegistrationModel
		if err := tx.
			Where("candidate_registration_id = ?", registrationID).
			First(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "registration %s does not exist", registrationID)
			}
			return err
		}

		var existing candModel.ElectoralProgramModel
		err := tx.Where("electoral_program_registration_id = ?", registrationID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = candModel.ElectoralProgramModel{
				ElectoralProgramRegistrationID: registrationID,
				ElectoralProgramInfo:           clean,
			}
			if err := tx.Create(&out).Error; err != nil {
				return err
			}
			return auditSvc.Append(tx, actorID, auditModel.ActionCreate, targetTypeProgram, out.ElectoralProgramID, nil)
		case err != nil:
			return err
		default:
			before := existing
			existing.ElectoralProgramInfo = clean
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			diffs := auditSvc.Diff(before, existing)
			delete(diffs, "electoral_program_updated_at")
			out = existing
			return auditSvc.Append(tx, actorID, auditModel.ActionUpdate, targetTypeProgram, existing.ElectoralProgramID, diffs)
		}
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
