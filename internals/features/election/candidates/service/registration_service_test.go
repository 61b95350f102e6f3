// file: internals/features/election/candidates/service/registration_service_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"ekonomvote_backend/internals/apperr"
	"ekonomvote_backend/internals/helpers/clockx"

	auditModel "ekonomvote_backend/internals/features/audit/model"
	candModel "ekonomvote_backend/internals/features/election/candidates/model"
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
		&candModel.CandidateModel{},
		&candModel.CandidateRegistrationModel{},
		&candModel.ElectoralProgramModel{},
		&voteModel.VoteModel{},
		&auditModel.ActionLogModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedFutureVoting(t *testing.T, db *gorm.DB) *votingModel.VotingModel {
	t.Helper()
	v := &votingModel.VotingModel{
		VotingPlannedStart: baseTime.Add(time.Hour),
		VotingPlannedEnd:   baseTime.Add(2 * time.Hour),
		VotingVotesPerUser: 1,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed voting: %v", err)
	}
	return v
}

func seedCandidate(t *testing.T, db *gorm.DB) *candModel.CandidateModel {
	t.Helper()
	c := &candModel.CandidateModel{
		CandidateFirstName:   "Jan",
		CandidateLastName:    "Kowalski",
		CandidateSchoolClass: "3A",
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	return c
}

func TestRegisterCandidate(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, clockx.Fixed(baseTime))

	voting := seedFutureVoting(t, db)
	cand := seedCandidate(t, db)

	reg := &candModel.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: cand.CandidateID,
		CandidateRegistrationVotingID:    voting.VotingID,
	}
	if err := svc.Register(context.Background(), uuid.New(), reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.CandidateRegistrationIsEligible {
		t.Fatal("new registrations must start ineligible")
	}

	// Same candidate in the same voting again.
	dup := &candModel.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: cand.CandidateID,
		CandidateRegistrationVotingID:    voting.VotingID,
	}
	err := svc.Register(context.Background(), uuid.New(), dup)
	if got := apperr.KindOf(err); got != apperr.KindDuplicateRegistration {
		t.Fatalf("kind = %q, want %q", got, apperr.KindDuplicateRegistration)
	}
}

func TestRegisterAfterStartRefused(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, clockx.Fixed(baseTime))

	started := &votingModel.VotingModel{
		VotingPlannedStart: baseTime.Add(-time.Hour),
		VotingPlannedEnd:   baseTime.Add(time.Hour),
		VotingVotesPerUser: 1,
	}
	if err := db.Create(started).Error; err != nil {
		t.Fatalf("seed voting: %v", err)
	}
	cand := seedCandidate(t, db)

	err := svc.Register(context.Background(), uuid.New(), &candModel.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: cand.CandidateID,
		CandidateRegistrationVotingID:    started.VotingID,
	})
	if got := apperr.KindOf(err); got != apperr.KindImmutableField {
		t.Fatalf("kind = %q, want %q", got, apperr.KindImmutableField)
	}
}

func TestRegisterCapEnforced(t *testing.T) {
	t.Setenv("ELECTION_MAX_REGISTRATIONS", "2")

	db := newTestDB(t)
	svc := NewRegistrationService(db, clockx.Fixed(baseTime))
	voting := seedFutureVoting(t, db)

	for i := 0; i < 2; i++ {
		cand := seedCandidate(t, db)
		if err := svc.Register(context.Background(), uuid.New(), &candModel.CandidateRegistrationModel{
			CandidateRegistrationCandidateID: cand.CandidateID,
			CandidateRegistrationVotingID:    voting.VotingID,
		}); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}

	over := seedCandidate(t, db)
	err := svc.Register(context.Background(), uuid.New(), &candModel.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: over.CandidateID,
		CandidateRegistrationVotingID:    voting.VotingID,
	})
	if got := apperr.KindOf(err); got != apperr.KindRegistrationLimitReached {
		t.Fatalf("kind = %q, want %q", got, apperr.KindRegistrationLimitReached)
	}
}

func TestSetEligibilityAudited(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, clockx.Fixed(baseTime))

	voting := seedFutureVoting(t, db)
	cand := seedCandidate(t, db)
	reg := &candModel.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: cand.CandidateID,
		CandidateRegistrationVotingID:    voting.VotingID,
	}
	if err := svc.Register(context.Background(), uuid.New(), reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.SetEligibility(context.Background(), uuid.New(), reg.CandidateRegistrationID, true); err != nil {
		t.Fatalf("SetEligibility: %v", err)
	}

	var got candModel.CandidateRegistrationModel
	if err := db.First(&got, "candidate_registration_id = ?", reg.CandidateRegistrationID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.CandidateRegistrationIsEligible {
		t.Fatal("eligibility flag not persisted")
	}

	var logRow auditModel.ActionLogModel
	if err := db.Where("action_log_action_type = ?", auditModel.ActionUpdate).First(&logRow).Error; err != nil {
		t.Fatalf("eligibility flip not audited: %v", err)
	}
	if !strings.Contains(string(logRow.ActionLogFieldDiffs), "candidate_registration_is_eligible") {
		t.Fatalf("diff does not mention the flag: %s", logRow.ActionLogFieldDiffs)
	}

	// No-op flips leave no extra audit rows.
	if err := svc.SetEligibility(context.Background(), uuid.New(), reg.CandidateRegistrationID, true); err != nil {
		t.Fatalf("SetEligibility no-op: %v", err)
	}
	var updates int64
	if err := db.Model(&auditModel.ActionLogModel{}).
		Where("action_log_action_type = ?", auditModel.ActionUpdate).
		Count(&updates).Error; err != nil {
		t.Fatalf("count updates: %v", err)
	}
	if updates != 1 {
		t.Fatalf("want 1 update audit row, got %d", updates)
	}
}

func TestUnregisterCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, clockx.Fixed(baseTime))

	voting := seedFutureVoting(t, db)
	cand := seedCandidate(t, db)
	reg := &candModel.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: cand.CandidateID,
		CandidateRegistrationVotingID:    voting.VotingID,
	}
	if err := svc.Register(context.Background(), uuid.New(), reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.UpsertProgram(context.Background(), uuid.New(), reg.CandidateRegistrationID, "<p>my program</p>"); err != nil {
		t.Fatalf("UpsertProgram: %v", err)
	}

	if err := svc.Unregister(context.Background(), uuid.New(), reg.CandidateRegistrationID); err != nil {
		t.Fatalf("Unregister: %v", err)
	}

	var regs, programs int64
	if err := db.Model(&candModel.CandidateRegistrationModel{}).Count(&regs).Error; err != nil {
		t.Fatalf("count registrations: %v", err)
	}
	if err := db.Model(&candModel.ElectoralProgramModel{}).Count(&programs).Error; err != nil {
		t.Fatalf("count programs: %v", err)
	}
	if regs != 0 || programs != 0 {
		t.Fatalf("cascade left regs=%d programs=%d", regs, programs)
	}
}

func TestUpsertProgram(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, clockx.Fixed(baseTime))

	voting := seedFutureVoting(t, db)
	cand := seedCandidate(t, db)
	reg := &candModel.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: cand.CandidateID,
		CandidateRegistrationVotingID:    voting.VotingID,
	}
	if err := svc.Register(context.Background(), uuid.New(), reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Script tags are stripped, allowed markup survives.
	program, err := svc.UpsertProgram(context.Background(), uuid.New(), reg.CandidateRegistrationID,
		`<p>plan</p><script>alert("x")</script>`)
	if err != nil {
		t.Fatalf("UpsertProgram: %v", err)
	}
	if strings.Contains(program.ElectoralProgramInfo, "script") {
		t.Fatalf("script tag survived sanitization: %s", program.ElectoralProgramInfo)
	}
	if !strings.Contains(program.ElectoralProgramInfo, "<p>plan</p>") {
		t.Fatalf("allowed markup lost: %s", program.ElectoralProgramInfo)
	}

	// Second write updates in place, still one row per registration.
	updated, err := svc.UpsertProgram(context.Background(), uuid.New(), reg.CandidateRegistrationID, "<p>new plan</p>")
	if err != nil {
		t.Fatalf("UpsertProgram update: %v", err)
	}
	if updated.ElectoralProgramID != program.ElectoralProgramID {
		t.Fatal("update created a second program row")
	}

	// Content that sanitizes to nothing is rejected.
	_, err = svc.UpsertProgram(context.Background(), uuid.New(), reg.CandidateRegistrationID, `<script>only</script>`)
	if got := apperr.KindOf(err); got != apperr.KindValidationFailed {
		t.Fatalf("kind = %q, want %q", got, apperr.KindValidationFailed)
	}
}
