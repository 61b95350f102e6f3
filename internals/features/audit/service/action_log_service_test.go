// file: internals/features/audit/service/action_log_service_test.go
package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"ekonomvote_backend/internals/apperr"
	"ekonomvote_backend/internals/features/audit/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.ActionLogModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestAppendRollsBackWithTx(t *testing.T) {
	db := newTestDB(t)
	boom := errors.New("domain write failed")

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := Append(tx, uuid.New(), model.ActionCreate, "voting", uuid.New(), nil); err != nil {
			t.Fatalf("Append: %v", err)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("transaction err = %v, want %v", err, boom)
	}

	var n int64
	if err := db.Model(&model.ActionLogModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("want 0 entries after rollback, got %d", n)
	}
}

func TestAppendStoresDiffs(t *testing.T) {
	db := newTestDB(t)
	actorID := uuid.New()
	targetID := uuid.New()
	diffs := map[string]FieldDiff{
		"voting_name": {Old: "Council 2025", New: "Council 2026"},
	}

	if err := Append(db, actorID, model.ActionUpdate, "voting", targetID, diffs); err != nil {
		t.Fatalf("Append: %v", err)
	}

	var entry model.ActionLogModel
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if entry.ActionLogActorID != actorID || entry.ActionLogTargetID != targetID {
		t.Fatalf("entry = %+v, wrong actor or target", entry)
	}
	if entry.ActionLogActionType != model.ActionUpdate {
		t.Fatalf("action = %q, want UPDATE", entry.ActionLogActionType)
	}
	var decoded map[string]FieldDiff
	if err := json.Unmarshal(entry.ActionLogFieldDiffs, &decoded); err != nil {
		t.Fatalf("decode diffs: %v", err)
	}
	if decoded["voting_name"].New != "Council 2026" {
		t.Fatalf("diffs = %+v, want voting_name new value", decoded)
	}
}

func TestEntryImmutable(t *testing.T) {
	db := newTestDB(t)
	if err := Append(db, uuid.New(), model.ActionDelete, "candidate", uuid.New(), nil); err != nil {
		t.Fatalf("Append: %v", err)
	}
	var entry model.ActionLogModel
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("load entry: %v", err)
	}
	entry.ActionLogTargetType = "voting"
	err := db.Save(&entry).Error
	if got := apperr.KindOf(err); got != apperr.KindLogImmutable {
		t.Fatalf("kind = %q, want %q", got, apperr.KindLogImmutable)
	}
}

func TestDiff(t *testing.T) {
	type subject struct {
		Name  string `json:"subject_name"`
		Count int    `json:"subject_count"`
		Plain bool
	}
	oldVal := subject{Name: "a", Count: 1, Plain: false}
	newVal := subject{Name: "b", Count: 1, Plain: true}

	got := Diff(oldVal, newVal)
	if len(got) != 2 {
		t.Fatalf("want 2 diffs, got %d: %+v", len(got), got)
	}
	if d, ok := got["subject_name"]; !ok || d.Old != "a" || d.New != "b" {
		t.Fatalf("subject_name diff = %+v", got["subject_name"])
	}
	if _, ok := got["Plain"]; !ok {
		t.Fatalf("untagged field missing: %+v", got)
	}
	if _, ok := got["subject_count"]; ok {
		t.Fatalf("unchanged field reported: %+v", got)
	}

	if len(Diff(&oldVal, &newVal)) != 2 {
		t.Fatalf("pointer inputs should diff like values")
	}
	if len(Diff(oldVal, "not a struct")) != 0 {
		t.Fatalf("mismatched types should diff to nothing")
	}
}
