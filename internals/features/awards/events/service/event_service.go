// file: internals/features/awards/events/service/event_service.go
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
	catalogModel "ekonomvote_backend/internals/features/awards/catalog/model"
	"ekonomvote_backend/internals/features/awards/events/model"
	awardVoteModel "ekonomvote_backend/internals/features/awards/votes/model"
)

const targetTypeVotingEvent = "VotingEvent"

/* =========================
   Service & Constructor
   ========================= */

type EventService struct {
	DB    *gorm.DB
	Clock clockx.Clock
}

func NewEventService(db *gorm.DB, clock clockx.Clock) *EventService {
	if clock == nil {
		clock = clockx.System
	}
	return &EventService{DB: db, Clock: clock}
}

/* =========================
   Round validation
   ========================= */

type RoundBounds struct {
	PlannedStart time.Time
	PlannedEnd   time.Time
	MaxWinners   int
}

// validateRound applies the round rules in their fixed order: future start,
// start before end, then the per-type winner counts.
func validateRound(roundType model.VotingRoundType, b RoundBounds, now time.Time) error {
	if !b.PlannedStart.After(now) {
		return apperr.New(apperr.KindInvalidWindow, "round start must be in the future")
	}
	if !b.PlannedStart.Before(b.PlannedEnd) {
		return apperr.New(apperr.KindInvalidWindow, "round start must be before round end")
	}
	switch roundType {
	case model.RoundNomination:
		if b.MaxWinners < 2 {
			return apperr.New(apperr.KindValidationFailed, "a nomination round needs at least 2 winners")
		}
	case model.RoundFinal:
		if b.MaxWinners != 1 {
			return apperr.New(apperr.KindValidationFailed, "a final round has exactly 1 winner")
		}
	}
	return nil
}

// validateRoundOrdering: with nominations enabled, the nomination phase must
// be fully over before the final starts.
func validateRoundOrdering(nomination, final RoundBounds) error {
	if !nomination.PlannedStart.Before(final.PlannedStart) {
		return apperr.New(apperr.KindInvalidWindow, "nomination round must start before the final round")
	}
	if nomination.PlannedEnd.After(final.PlannedStart) {
		return apperr.New(apperr.KindInvalidWindow, "nomination round must end before the final round starts")
	}
	return nil
}

/* =========================
   CreateEvent
   ========================= */

// CreateEvent creates the event, its FINAL round and, when nominations are
// enabled, the NOMINATION round, then populates the first chronological
// round with one candidature per (award x teacher). All in one transaction;
// any single failure leaves no rows at all.
func (s *EventService) CreateEvent(ctx context.Context, actorID uuid.UUID, withNominations bool, final RoundBounds, nomination *RoundBounds) (*model.VotingEventModel, error) {
	now := s.Clock.Now()

	final.MaxWinners = 1
	if err := validateRound(model.RoundFinal, final, now); err != nil {
		return nil, err
	}
	if withNominations {
		if nomination == nil {
			return nil, apperr.New(apperr.KindValidationFailed, "nomination round bounds are required")
		}
		if err := validateRound(model.RoundNomination, *nomination, now); err != nil {
			return nil, err
		}
		if err := validateRoundOrdering(*nomination, final); err != nil {
			return nil, err
		}
	}

	var event model.VotingEventModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event = model.VotingEventModel{VotingEventWithNominations: withNominations}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		finalRound := model.VotingRoundModel{
			VotingRoundEventID:      event.VotingEventID,
			VotingRoundType:         model.RoundFinal,
			VotingRoundPlannedStart: final.PlannedStart,
			VotingRoundPlannedEnd:   final.PlannedEnd,
			VotingRoundMaxWinners:   1,
		}
		if err := tx.Create(&finalRound).Error; err != nil {
			return err
		}

		firstRound := finalRound
		if withNominations {
			nominationRound := model.VotingRoundModel{
				VotingRoundEventID:      event.VotingEventID,
				VotingRoundType:         model.RoundNomination,
				VotingRoundPlannedStart: nomination.PlannedStart,
				VotingRoundPlannedEnd:   nomination.PlannedEnd,
				VotingRoundMaxWinners:   nomination.MaxWinners,
			}
			if err := tx.Create(&nominationRound).Error; err != nil {
				return err
			}
			firstRound = nominationRound
		}

		if err := s.populateRound(tx, firstRound.VotingRoundID); err != nil {
			return err
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionCreate, targetTypeVotingEvent, event.VotingEventID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// populateRound fans out the award x teacher cross product into the round.
// Refused outright when the round already holds candidatures; a silent skip
// would mask a double-create.
func (s *EventService) populateRound(tx *gorm.DB, roundID uuid.UUID) error {
	var existing int64
	if err := tx.Model(&model.CandidatureModel{}).
		Where("candidature_round_id = ?", roundID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return apperr.New(apperr.KindAlreadyPopulated, "round %s already holds candidatures", roundID)
	}

	var awards []catalogModel.AwardModel
	if err := tx.Find(&awards).Error; err != nil {
		return err
	}
	var teachers []catalogModel.TeacherModel
	if err := tx.Find(&teachers).Error; err != nil {
		return err
	}

	candidatures := make([]model.CandidatureModel, 0, len(awards)*len(teachers))
	for _, a := range awards {
		for _, t := range teachers {
			candidatures = append(candidatures, model.CandidatureModel{
				CandidatureAwardID:    a.AwardID,
				CandidatureTeacherID:  t.TeacherID,
				CandidatureRoundID:    roundID,
				CandidatureIsEligible: true,
			})
		}
	}
	if len(candidatures) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&candidatures, 500).Error; err != nil {
		if dbx.IsUniqueViolation(err) {
			return apperr.New(apperr.KindAlreadyPopulated, "round %s already holds candidatures", roundID)
		}
		return err
	}
	return nil
}

/* =========================
   UpdateEvent
   ========================= */

type UpdateEventParams struct {
	// WithNominations must match the stored value; changing it is refused.
	WithNominations bool
	Final           RoundBounds
	Nomination      *RoundBounds
}

// UpdateEvent reschedules the rounds of an event. The event row is locked
// so a concurrent populate/advance cannot interleave with the reschedule.
func (s *EventService) UpdateEvent(ctx context.Context, actorID, eventID uuid.UUID, p UpdateEventParams) (*model.VotingEventModel, error) {
	var event model.VotingEventModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := dbx.LockForUpdate(tx).
			Where("voting_event_id = ?", eventID).
			First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "voting event %s does not exist", eventID)
			}
			return err
		}
		if event.VotingEventWithNominations != p.WithNominations {
			return apperr.New(apperr.KindImmutableField, "with_nominations cannot be changed after creation")
		}

		now := s.Clock.Now()
		p.Final.MaxWinners = 1
		if err := validateRound(model.RoundFinal, p.Final, now); err != nil {
			return err
		}
		if event.VotingEventWithNominations {
			if p.Nomination == nil {
				return apperr.New(apperr.KindValidationFailed, "nomination round bounds are required")
			}
			if err := validateRound(model.RoundNomination, *p.Nomination, now); err != nil {
				return err
			}
			if err := validateRoundOrdering(*p.Nomination, p.Final); err != nil {
				return err
			}
		}

		if err := s.updateRound(tx, actorID, eventID, model.RoundFinal, p.Final, now); err != nil {
			return err
		}
		if event.VotingEventWithNominations {
			if err := s.updateRound(tx, actorID, eventID, model.RoundNomination, *p.Nomination, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) updateRound(tx *gorm.DB, actorID, eventID uuid.UUID, roundType model.VotingRoundType, b RoundBounds, now time.Time) error {
	var round model.VotingRoundModel
	if err := tx.
		Where("voting_round_event_id = ? AND voting_round_type = ?", eventID, roundType).
		First(&round).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindTargetNotFound, "round %s of event %s does not exist", roundType, eventID)
		}
		return err
	}
	if !now.Before(round.VotingRoundPlannedStart) {
		return apperr.New(apperr.KindImmutableField, "a round that already started cannot be rescheduled")
	}

	before := round
	round.VotingRoundPlannedStart = b.PlannedStart
	round.VotingRoundPlannedEnd = b.PlannedEnd
	if roundType == model.RoundNomination {
		round.VotingRoundMaxWinners = b.MaxWinners
	}
	if err := tx.Save(&round).Error; err != nil {
		return err
	}
	diffs := auditSvc.Diff(before, round)
	delete(diffs, "voting_round_updated_at")
	return auditSvc.Append(tx, actorID, auditModel.ActionUpdate, targetTypeVotingEvent, eventID, diffs)
}

/* =========================
   Derived status
   ========================= */

// Status derives PLANNED/ACTIVE/ENDED from the rounds' combined window.
func Status(rounds []model.VotingRoundModel, now time.Time) model.EventStatus {
	if len(rounds) == 0 {
		return model.EventPlanned
	}
	first := rounds[0].VotingRoundPlannedStart
	last := rounds[0].VotingRoundPlannedEnd
	for _, r := range rounds[1:] {
		if r.VotingRoundPlannedStart.Before(first) {
			first = r.VotingRoundPlannedStart
		}
		if r.VotingRoundPlannedEnd.After(last) {
			last = r.VotingRoundPlannedEnd
		}
	}
	switch {
	case now.Before(first):
		return model.EventPlanned
	case now.After(last):
		return model.EventEnded
	default:
		return model.EventActive
	}
}

// EventStatus loads the rounds of one event and derives its status.
func (s *EventService) EventStatus(ctx context.Context, eventID uuid.UUID) (model.EventStatus, error) {
	var rounds []model.VotingRoundModel
	if err := s.DB.WithContext(ctx).
		Where("voting_round_event_id = ?", eventID).
		Find(&rounds).Error; err != nil {
		return "", err
	}
	if len(rounds) == 0 {
		return "", apperr.New(apperr.KindTargetNotFound, "voting event %s has no rounds", eventID)
	}
	return Status(rounds, s.Clock.Now()), nil
}

/* =========================
   DeleteCascade
   ========================= */

// DeleteCascade destroys an event with its rounds, candidatures and votes,
// children first, in one transaction.
func (s *EventService) DeleteCascade(ctx context.Context, actorID, eventID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.VotingEventModel
		if err := dbx.LockForUpdate(tx).
			Where("voting_event_id = ?", eventID).
			First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.KindTargetNotFound, "voting event %s does not exist", eventID)
			}
			return err
		}

		roundIDs := tx.Model(&model.VotingRoundModel{}).
			Select("voting_round_id").
			Where("voting_round_event_id = ?", eventID)
		candidatureIDs := tx.Model(&model.CandidatureModel{}).
			Select("candidature_id").
			Where("candidature_round_id IN (?)", roundIDs)

		if err := tx.
			Where("award_vote_candidature_id IN (?)", candidatureIDs).
			Delete(&awardVoteModel.AwardVoteModel{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("candidature_round_id IN (?)", roundIDs).
			Delete(&model.CandidatureModel{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("voting_round_event_id = ?", eventID).
			Delete(&model.VotingRoundModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&event).Error; err != nil {
			return err
		}
		return auditSvc.Append(tx, actorID, auditModel.ActionDelete, targetTypeVotingEvent, eventID, nil)
	})
}
