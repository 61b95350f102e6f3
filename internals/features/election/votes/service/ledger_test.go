// file: internals/features/election/votes/service/ledger_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"ekonomvote_backend/internals/apperr"
	"ekonomvote_backend/internals/helpers/clockx"

	regModel "ekonomvote_backend/internals/features/election/candidates/model"
	voteModel "ekonomvote_backend/internals/features/election/votes/model"
	votingModel "ekonomvote_backend/internals/features/election/votings/model"
)

var baseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&votingModel.VotingModel{},
		&regModel.CandidateModel{},
		&regModel.CandidateRegistrationModel{},
		&regModel.ElectoralProgramModel{},
		&voteModel.VoteModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedVoting(t *testing.T, db *gorm.DB, start, end time.Time, votesPerUser int) *votingModel.VotingModel {
	t.Helper()
	v := &votingModel.VotingModel{
		VotingPlannedStart: start,
		VotingPlannedEnd:   end,
		VotingVotesPerUser: votesPerUser,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed voting: %v", err)
	}
	return v
}

func seedRegistration(t *testing.T, db *gorm.DB, votingID uuid.UUID, eligible bool) *regModel.CandidateRegistrationModel {
	t.Helper()
	cand := &regModel.CandidateModel{
		CandidateFirstName:   "Jan",
		CandidateLastName:    "Kowalski",
		CandidateSchoolClass: "3A",
	}
	if err := db.Create(cand).Error; err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	reg := &regModel.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: cand.CandidateID,
		CandidateRegistrationVotingID:    votingID,
		CandidateRegistrationIsEligible:  eligible,
	}
	if err := db.Create(reg).Error; err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	return reg
}

func countVotes(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&voteModel.VoteModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	return n
}

func TestCastVotesHappyPath(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

	voting := seedVoting(t, db, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 2)
	r1 := seedRegistration(t, db, voting.VotingID, true)
	r2 := seedRegistration(t, db, voting.VotingID, true)
	userID := uuid.New()

	err := ledger.CastVotes(context.Background(), userID, voting.VotingID,
		[]uuid.UUID{r1.CandidateRegistrationID, r2.CandidateRegistrationID})
	if err != nil {
		t.Fatalf("CastVotes: %v", err)
	}
	if n := countVotes(t, db); n != 2 {
		t.Fatalf("want 2 votes, got %d", n)
	}

	voted, err := ledger.HasVoted(context.Background(), userID, voting.VotingID)
	if err != nil {
		t.Fatalf("HasVoted: %v", err)
	}
	if !voted {
		t.Fatal("HasVoted = false after a successful cast")
	}
}

func TestCastVotesWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantKind apperr.Kind
	}{
		{"before start", baseTime.Add(time.Hour), baseTime.Add(2 * time.Hour), apperr.KindVotingNotStarted},
		{"after end", baseTime.Add(-2 * time.Hour), baseTime.Add(-time.Hour), apperr.KindVotingEnded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

			voting := seedVoting(t, db, tt.start, tt.end, 1)
			reg := seedRegistration(t, db, voting.VotingID, true)

			err := ledger.CastVotes(context.Background(), uuid.New(), voting.VotingID,
				[]uuid.UUID{reg.CandidateRegistrationID})
			if got := apperr.KindOf(err); got != tt.wantKind {
				t.Fatalf("kind = %q, want %q", got, tt.wantKind)
			}
			if n := countVotes(t, db); n != 0 {
				t.Fatalf("window rejection left %d votes behind", n)
			}
		})
	}
}

func TestCastVotesVotingNotFound(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

	err := ledger.CastVotes(context.Background(), uuid.New(), uuid.New(), []uuid.UUID{uuid.New()})
	if got := apperr.KindOf(err); got != apperr.KindTargetNotFound {
		t.Fatalf("kind = %q, want %q", got, apperr.KindTargetNotFound)
	}
}

func TestCastVotesTargetValidation(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

	voting := seedVoting(t, db, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 3)
	other := seedVoting(t, db, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 1)

	missing := uuid.New()
	foreign := seedRegistration(t, db, other.VotingID, true)
	ineligible := seedRegistration(t, db, voting.VotingID, false)

	err := ledger.CastVotes(context.Background(), uuid.New(), voting.VotingID,
		[]uuid.UUID{missing, foreign.CandidateRegistrationID, ineligible.CandidateRegistrationID})
	if err == nil {
		t.Fatal("want error, got nil")
	}

	// Every bad target is reported, not just the first.
	all := apperr.Flatten(err)
	if len(all) != 3 {
		t.Fatalf("want 3 failures, got %d: %v", len(all), err)
	}
	kinds := map[apperr.Kind]int{}
	for _, e := range all {
		kinds[e.Kind]++
	}
	if kinds[apperr.KindTargetNotFound] != 1 || kinds[apperr.KindTargetNotInVoting] != 1 || kinds[apperr.KindIneligibleTarget] != 1 {
		t.Fatalf("unexpected kind distribution: %v", kinds)
	}
	if n := countVotes(t, db); n != 0 {
		t.Fatalf("failed cast left %d votes behind", n)
	}
}

func TestCastVotesDuplicateInBallot(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

	voting := seedVoting(t, db, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 2)
	reg := seedRegistration(t, db, voting.VotingID, true)

	err := ledger.CastVotes(context.Background(), uuid.New(), voting.VotingID,
		[]uuid.UUID{reg.CandidateRegistrationID, reg.CandidateRegistrationID})
	if got := apperr.KindOf(err); got != apperr.KindDuplicateVote {
		t.Fatalf("kind = %q, want %q", got, apperr.KindDuplicateVote)
	}
}

func TestCastVotesSecondCastRejected(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

	voting := seedVoting(t, db, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 1)
	reg := seedRegistration(t, db, voting.VotingID, true)
	userID := uuid.New()

	if err := ledger.CastVotes(context.Background(), userID, voting.VotingID,
		[]uuid.UUID{reg.CandidateRegistrationID}); err != nil {
		t.Fatalf("first cast: %v", err)
	}

	err := ledger.CastVotes(context.Background(), userID, voting.VotingID,
		[]uuid.UUID{reg.CandidateRegistrationID})
	if got := apperr.KindOf(err); got != apperr.KindDuplicateVote {
		t.Fatalf("kind = %q, want %q", got, apperr.KindDuplicateVote)
	}
	if n := countVotes(t, db); n != 1 {
		t.Fatalf("want 1 vote after rejection, got %d", n)
	}
}

func TestCastVotesQuotaExceeded(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

	voting := seedVoting(t, db, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 1)
	r1 := seedRegistration(t, db, voting.VotingID, true)
	r2 := seedRegistration(t, db, voting.VotingID, true)
	userID := uuid.New()

	if err := ledger.CastVotes(context.Background(), userID, voting.VotingID,
		[]uuid.UUID{r1.CandidateRegistrationID}); err != nil {
		t.Fatalf("first cast: %v", err)
	}

	// A fresh target cannot sneak the user past the aggregate quota.
	err := ledger.CastVotes(context.Background(), userID, voting.VotingID,
		[]uuid.UUID{r2.CandidateRegistrationID})
	if got := apperr.KindOf(err); got != apperr.KindQuotaExceeded {
		t.Fatalf("kind = %q, want %q", got, apperr.KindQuotaExceeded)
	}
	if n := countVotes(t, db); n != 1 {
		t.Fatalf("want 1 vote after rejection, got %d", n)
	}
}

func TestCastVotesIncompleteBallot(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

	voting := seedVoting(t, db, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 2)
	reg := seedRegistration(t, db, voting.VotingID, true)

	err := ledger.CastVotes(context.Background(), uuid.New(), voting.VotingID,
		[]uuid.UUID{reg.CandidateRegistrationID})
	if got := apperr.KindOf(err); got != apperr.KindIncompleteBallot {
		t.Fatalf("kind = %q, want %q", got, apperr.KindIncompleteBallot)
	}
	if n := countVotes(t, db); n != 0 {
		t.Fatalf("incomplete ballot left %d votes behind", n)
	}
}

func TestVoteImmutable(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

	voting := seedVoting(t, db, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 1)
	reg := seedRegistration(t, db, voting.VotingID, true)
	userID := uuid.New()

	if err := ledger.CastVotes(context.Background(), userID, voting.VotingID,
		[]uuid.UUID{reg.CandidateRegistrationID}); err != nil {
		t.Fatalf("cast: %v", err)
	}

	var vote voteModel.VoteModel
	if err := db.First(&vote).Error; err != nil {
		t.Fatalf("load vote: %v", err)
	}
	vote.VoteUserID = uuid.New()
	err := db.Save(&vote).Error
	if got := apperr.KindOf(err); got != apperr.KindVoteImmutable {
		t.Fatalf("kind = %q, want %q", got, apperr.KindVoteImmutable)
	}
}

func TestResultsAndTimeline(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVoteLedger(db, clockx.Fixed(baseTime))

	voting := seedVoting(t, db, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 1)
	r1 := seedRegistration(t, db, voting.VotingID, true)
	r2 := seedRegistration(t, db, voting.VotingID, true)
	ineligible := seedRegistration(t, db, voting.VotingID, false)
	_ = ineligible

	for i := 0; i < 3; i++ {
		if err := ledger.CastVotes(context.Background(), uuid.New(), voting.VotingID,
			[]uuid.UUID{r1.CandidateRegistrationID}); err != nil {
			t.Fatalf("cast %d: %v", i, err)
		}
	}
	if err := ledger.CastVotes(context.Background(), uuid.New(), voting.VotingID,
		[]uuid.UUID{r2.CandidateRegistrationID}); err != nil {
		t.Fatalf("cast r2: %v", err)
	}

	results, err := ledger.Results(context.Background(), voting.VotingID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 eligible rows, got %d", len(results))
	}
	byReg := map[uuid.UUID]CandidateResult{}
	for _, r := range results {
		byReg[r.RegistrationID] = r
	}
	if got := byReg[r1.CandidateRegistrationID]; got.VotesCount != 3 || got.Percentage != 75.0 {
		t.Fatalf("r1 = %+v, want 3 votes / 75%%", got)
	}
	if got := byReg[r2.CandidateRegistrationID]; got.VotesCount != 1 || got.Percentage != 25.0 {
		t.Fatalf("r2 = %+v, want 1 vote / 25%%", got)
	}

	points, err := ledger.Timeline(context.Background(), voting.VotingID)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("want 4 timeline points, got %d", len(points))
	}
}
