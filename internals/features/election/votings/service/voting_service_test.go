// file: internals/features/election/votings/service/voting_service_test.go
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

	auditModel "ekonomvote_backend/internals/features/audit/model"
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
		&auditModel.ActionLogModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func countAuditRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&auditModel.ActionLogModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	return n
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valid window", baseTime.Add(time.Hour), baseTime.Add(2 * time.Hour), false},
		{"start in the past", baseTime.Add(-time.Hour), baseTime.Add(time.Hour), true},
		{"start equals now", baseTime, baseTime.Add(time.Hour), true},
		{"start after end", baseTime.Add(2 * time.Hour), baseTime.Add(time.Hour), true},
		{"start equals end", baseTime.Add(time.Hour), baseTime.Add(time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.start, tt.end, baseTime)
			if tt.wantErr && apperr.KindOf(err) != apperr.KindInvalidWindow {
				t.Fatalf("want INVALID_WINDOW, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("want nil, got %v", err)
			}
		})
	}
}

func TestCreateVoting(t *testing.T) {
	db := newTestDB(t)
	svc := NewVotingService(db, clockx.Fixed(baseTime))

	voting := &votingModel.VotingModel{
		VotingPlannedStart: baseTime.Add(time.Hour),
		VotingPlannedEnd:   baseTime.Add(2 * time.Hour),
		VotingVotesPerUser: 3,
	}
	if err := svc.Create(context.Background(), uuid.New(), voting); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if voting.VotingID == uuid.Nil {
		t.Fatal("voting id not assigned")
	}
	if n := countAuditRows(t, db); n != 1 {
		t.Fatalf("want 1 audit row, got %d", n)
	}
}

func TestCreateVotingInvalid(t *testing.T) {
	db := newTestDB(t)
	svc := NewVotingService(db, clockx.Fixed(baseTime))

	tests := []struct {
		name     string
		voting   votingModel.VotingModel
		wantKind apperr.Kind
	}{
		{
			"past start",
			votingModel.VotingModel{
				VotingPlannedStart: baseTime.Add(-time.Hour),
				VotingPlannedEnd:   baseTime.Add(time.Hour),
				VotingVotesPerUser: 1,
			},
			apperr.KindInvalidWindow,
		},
		{
			"zero votes per user",
			votingModel.VotingModel{
				VotingPlannedStart: baseTime.Add(time.Hour),
				VotingPlannedEnd:   baseTime.Add(2 * time.Hour),
				VotingVotesPerUser: 0,
			},
			apperr.KindValidationFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.voting
			err := svc.Create(context.Background(), uuid.New(), &v)
			if got := apperr.KindOf(err); got != tt.wantKind {
				t.Fatalf("kind = %q, want %q", got, tt.wantKind)
			}
		})
	}
	if n := countAuditRows(t, db); n != 0 {
		t.Fatalf("failed creates left %d audit rows", n)
	}
}

func TestUpdateVoting(t *testing.T) {
	db := newTestDB(t)
	svc := NewVotingService(db, clockx.Fixed(baseTime))

	voting := &votingModel.VotingModel{
		VotingPlannedStart: baseTime.Add(time.Hour),
		VotingPlannedEnd:   baseTime.Add(2 * time.Hour),
		VotingVotesPerUser: 1,
	}
	if err := svc.Create(context.Background(), uuid.New(), voting); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), uuid.New(), voting.VotingID,
		baseTime.Add(3*time.Hour), baseTime.Add(4*time.Hour), 2)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.VotingVotesPerUser != 2 {
		t.Fatalf("votes per user = %d, want 2", updated.VotingVotesPerUser)
	}
	// create + update
	if n := countAuditRows(t, db); n != 2 {
		t.Fatalf("want 2 audit rows, got %d", n)
	}
}

func TestUpdateVotingAfterStartRefused(t *testing.T) {
	db := newTestDB(t)

	// Seed directly so the window can already be open.
	voting := &votingModel.VotingModel{
		VotingPlannedStart: baseTime.Add(-time.Hour),
		VotingPlannedEnd:   baseTime.Add(time.Hour),
		VotingVotesPerUser: 1,
	}
	if err := db.Create(voting).Error; err != nil {
		t.Fatalf("seed voting: %v", err)
	}

	svc := NewVotingService(db, clockx.Fixed(baseTime))
	_, err := svc.Update(context.Background(), uuid.New(), voting.VotingID,
		baseTime.Add(time.Hour), baseTime.Add(2*time.Hour), 1)
	if got := apperr.KindOf(err); got != apperr.KindImmutableField {
		t.Fatalf("kind = %q, want %q", got, apperr.KindImmutableField)
	}
}

func TestDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	svc := NewVotingService(db, clockx.Fixed(baseTime))

	voting := &votingModel.VotingModel{
		VotingPlannedStart: baseTime.Add(-2 * time.Hour),
		VotingPlannedEnd:   baseTime.Add(-time.Hour),
		VotingVotesPerUser: 1,
	}
	if err := db.Create(voting).Error; err != nil {
		t.Fatalf("seed voting: %v", err)
	}
	cand := &regModel.CandidateModel{CandidateFirstName: "Anna", CandidateLastName: "Nowak", CandidateSchoolClass: "2B"}
	if err := db.Create(cand).Error; err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	reg := &regModel.CandidateRegistrationModel{
		CandidateRegistrationCandidateID: cand.CandidateID,
		CandidateRegistrationVotingID:    voting.VotingID,
		CandidateRegistrationIsEligible:  true,
	}
	if err := db.Create(reg).Error; err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	program := &regModel.ElectoralProgramModel{
		ElectoralProgramRegistrationID: reg.CandidateRegistrationID,
		ElectoralProgramInfo:           "<p>program</p>",
	}
	if err := db.Create(program).Error; err != nil {
		t.Fatalf("seed program: %v", err)
	}
	vote := &voteModel.VoteModel{
		VoteRegistrationID: reg.CandidateRegistrationID,
		VoteUserID:         uuid.New(),
	}
	if err := db.Create(vote).Error; err != nil {
		t.Fatalf("seed vote: %v", err)
	}

	if err := svc.DeleteCascade(context.Background(), uuid.New(), voting.VotingID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	for _, probe := range []struct {
		name  string
		model any
	}{
		{"votings", &votingModel.VotingModel{}},
		{"registrations", &regModel.CandidateRegistrationModel{}},
		{"programs", &regModel.ElectoralProgramModel{}},
		{"votes", &voteModel.VoteModel{}},
	} {
		var n int64
		if err := db.Model(probe.model).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", probe.name, err)
		}
		if n != 0 {
			t.Fatalf("%s not emptied by cascade, %d rows left", probe.name, n)
		}
	}

	// The candidate itself survives; only the voting's tree goes.
	var candidates int64
	if err := db.Model(&regModel.CandidateModel{}).Count(&candidates).Error; err != nil {
		t.Fatalf("count candidates: %v", err)
	}
	if candidates != 1 {
		t.Fatalf("candidate rows = %d, want 1", candidates)
	}

	var logRow auditModel.ActionLogModel
	if err := db.Where("action_log_action_type = ?", auditModel.ActionDelete).First(&logRow).Error; err != nil {
		t.Fatalf("cascade delete not audited: %v", err)
	}
}

func TestCurrentVoting(t *testing.T) {
	db := newTestDB(t)
	svc := NewVotingService(db, clockx.Fixed(baseTime))

	// Past voting is ignored.
	past := &votingModel.VotingModel{
		VotingPlannedStart: baseTime.Add(-3 * time.Hour),
		VotingPlannedEnd:   baseTime.Add(-2 * time.Hour),
		VotingVotesPerUser: 1,
	}
	// Two future windows; the earlier start wins.
	later := &votingModel.VotingModel{
		VotingPlannedStart: baseTime.Add(5 * time.Hour),
		VotingPlannedEnd:   baseTime.Add(6 * time.Hour),
		VotingVotesPerUser: 1,
	}
	sooner := &votingModel.VotingModel{
		VotingPlannedStart: baseTime.Add(time.Hour),
		VotingPlannedEnd:   baseTime.Add(2 * time.Hour),
		VotingVotesPerUser: 1,
	}
	for _, v := range []*votingModel.VotingModel{past, later, sooner} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed voting: %v", err)
		}
	}

	got, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got == nil || got.VotingID != sooner.VotingID {
		t.Fatalf("Current picked the wrong voting: %+v", got)
	}
}

func TestCurrentVotingNoneScheduled(t *testing.T) {
	db := newTestDB(t)
	svc := NewVotingService(db, clockx.Fixed(baseTime))

	got, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil, got %+v", got)
	}
}
