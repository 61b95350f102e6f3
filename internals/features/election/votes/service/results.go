// file: internals/features/election/votes/service/results.go
package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
	votingModel "ekonomvote_backend/internals/features/election/votings/model"
)

/* =========================
   Results (read-only)
   ========================= */

type CandidateResult struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	FirstName      string    `json:"first_name"`
	SecondName     string    `json:"second_name"`
	LastName       string    `json:"last_name"`
	VotesCount     int64     `json:"votes_count"`
	Percentage     float64   `json:"percentage"`
}

// Results returns per-candidate totals and percentages for one voting,
// eligible registrations only, ordered by candidate name.
func (l *VoteLedger) Results(ctx context.Context, votingID uuid.UUID) ([]CandidateResult, error) {
	var voting votingModel.VotingModel
	if err := l.DB.WithContext(ctx).
		Where("voting_id = ?", votingID).
		First(&voting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindTargetNotFound, "voting %s does not exist", votingID)
		}
		return nil, err
	}

	var rows []CandidateResult
	err := l.DB.WithContext(ctx).
		Table("candidate_registrations").
		Select(`candidate_registrations.candidate_registration_id AS registration_id,
			candidates.candidate_first_name AS first_name,
			candidates.candidate_second_name AS second_name,
			candidates.candidate_last_name AS last_name,
			COUNT(votes.vote_id) AS votes_count`).
		Joins("JOIN candidates ON candidates.candidate_id = candidate_registrations.candidate_registration_candidate_id").
		Joins("LEFT JOIN votes ON votes.vote_registration_id = candidate_registrations.candidate_registration_id").
		Where("candidate_registrations.candidate_registration_voting_id = ? AND candidate_registrations.candidate_registration_is_eligible = ?", votingID, true).
		Group("candidate_registrations.candidate_registration_id, candidates.candidate_first_name, candidates.candidate_second_name, candidates.candidate_last_name").
		Order("candidates.candidate_first_name, candidates.candidate_last_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var total int64
	for i := range rows {
		total += rows[i].VotesCount
	}
	if total > 0 {
		for i := range rows {
			pct := float64(rows[i].VotesCount) / float64(total) * 100
			rows[i].Percentage = math.Round(pct*100) / 100
		}
	}
	return rows, nil
}

/* =========================
   Timeline (read-only)
   ========================= */

type TimelinePoint struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	CastAt         time.Time `json:"cast_at"`
}

// Timeline returns the chronological sequence of votes in one voting,
// anonymized to (registration, timestamp) pairs for charting.
func (l *VoteLedger) Timeline(ctx context.Context, votingID uuid.UUID) ([]TimelinePoint, error) {
	var points []TimelinePoint
	err := l.DB.WithContext(ctx).
		Table("votes").
		Select("votes.vote_registration_id AS registration_id, votes.vote_created_at AS cast_at").
		Joins("JOIN candidate_registrations ON candidate_registrations.candidate_registration_id = votes.vote_registration_id").
		Where("candidate_registrations.candidate_registration_voting_id = ?", votingID).
		Order("votes.vote_created_at").
		Scan(&points).Error
	return points, err
}
