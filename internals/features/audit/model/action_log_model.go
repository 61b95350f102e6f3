// file: internals/features/audit/model/action_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ekonomvote_backend/internals/apperr"
)

type ActionType string

const (
	ActionCreate ActionType = "CREATE"
	ActionUpdate ActionType = "UPDATE"
	ActionDelete ActionType = "DELETE"
)

// ActionLogModel is the append-only trail of administrative mutations.
// FieldDiffs holds `{"field": {"old": ..., "new": ...}}` per changed field.
type ActionLogModel struct {
	ActionLogID         uuid.UUID      `gorm:"type:uuid;primaryKey;column:action_log_id" json:"action_log_id"`
	ActionLogActorID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_action_logs_actor;column:action_log_actor_id" json:"action_log_actor_id"`
	ActionLogActionType ActionType     `gorm:"type:varchar(6);not null;column:action_log_action_type"  json:"action_log_action_type"`
	ActionLogTargetType string         `gorm:"type:varchar(64);not null;column:action_log_target_type" json:"action_log_target_type"`
	ActionLogTargetID   uuid.UUID      `gorm:"type:uuid;not null;column:action_log_target_id"          json:"action_log_target_id"`
	ActionLogFieldDiffs datatypes.JSON `gorm:"column:action_log_field_diffs"                           json:"action_log_field_diffs,omitempty"`

	ActionLogCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:action_log_created_at" json:"action_log_created_at"`
}

func (ActionLogModel) TableName() string { return "action_logs" }

func (m *ActionLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.ActionLogID == uuid.Nil {
		m.ActionLogID = uuid.New()
	}
	return nil
}

func (m *ActionLogModel) BeforeUpdate(tx *gorm.DB) error {
	return apperr.New(apperr.KindLogImmutable, "action log entries cannot be modified")
}
