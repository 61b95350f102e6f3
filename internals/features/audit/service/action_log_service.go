// file: internals/features/audit/service/action_log_service.go
package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/features/audit/model"
)

/* =========================
   Append (inside caller's tx)
   ========================= */

// Append writes one audit entry using the caller's transaction handle.
// When the surrounding domain write rolls back, the entry goes with it;
// when the append fails, the domain write must roll back too. Callers pass
// the tx they mutate with, never the root DB.
func Append(tx *gorm.DB, actorID uuid.UUID, action model.ActionType, targetType string, targetID uuid.UUID, fieldDiffs map[string]FieldDiff) error {
	var diffsJSON datatypes.JSON
	if len(fieldDiffs) > 0 {
		raw, err := json.Marshal(fieldDiffs)
		if err != nil {
			return fmt.Errorf("marshal field diffs: %w", err)
		}
		diffsJSON = datatypes.JSON(raw)
	}
	entry := model.ActionLogModel{
		ActionLogActorID:    actorID,
		ActionLogActionType: action,
		ActionLogTargetType: targetType,
		ActionLogTargetID:   targetID,
		ActionLogFieldDiffs: diffsJSON,
	}
	return tx.Create(&entry).Error
}

/* =========================
   Field diffing
   ========================= */

type FieldDiff struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Diff compares two structs of the same type field by field and returns the
// changed ones keyed by json tag (falling back to the Go name). Unexported
// fields are skipped.
func Diff(oldVal, newVal any) map[string]FieldDiff {
	out := map[string]FieldDiff{}
	ov := reflect.Indirect(reflect.ValueOf(oldVal))
	nv := reflect.Indirect(reflect.ValueOf(newVal))
	if !ov.IsValid() || !nv.IsValid() || ov.Type() != nv.Type() || ov.Kind() != reflect.Struct {
		return out
	}
	t := ov.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		o := ov.Field(i).Interface()
		n := nv.Field(i).Interface()
		if reflect.DeepEqual(o, n) {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok && tag != "" && tag != "-" {
			if comma := strings.IndexByte(tag, ','); comma >= 0 {
				tag = tag[:comma]
			}
			if tag != "" {
				name = tag
			}
		}
		out[name] = FieldDiff{Old: o, New: n}
	}
	return out
}
