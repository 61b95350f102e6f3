// file: internals/features/awards/catalog/model/catalog_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Award category ===================== */

// AwardModel is one teacher-recognition category ("best mentor" etc.).
type AwardModel struct {
	AwardID   uuid.UUID `gorm:"type:uuid;primaryKey;column:award_id" json:"award_id"`
	AwardName string    `gorm:"type:varchar(2048);not null;column:award_name"                  json:"award_name"`
	AwardInfo string    `gorm:"type:varchar(12000);not null;column:award_info"                 json:"award_info"`

	AwardCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:award_created_at" json:"award_created_at"`
	AwardUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:award_updated_at" json:"award_updated_at"`
}

func (AwardModel) TableName() string { return "awards" }

func (m *AwardModel) BeforeCreate(tx *gorm.DB) error {
	if m.AwardID == uuid.Nil {
		m.AwardID = uuid.New()
	}
	return nil
}

/* ===================== Teacher ===================== */

type TeacherModel struct {
	TeacherID         uuid.UUID `gorm:"type:uuid;primaryKey;column:teacher_id" json:"teacher_id"`
	TeacherFirstName  string    `gorm:"type:varchar(150);not null;column:teacher_first_name"             json:"teacher_first_name"`
	TeacherSecondName string    `gorm:"type:varchar(150);not null;default:'';column:teacher_second_name" json:"teacher_second_name"`
	TeacherLastName   string    `gorm:"type:varchar(150);not null;column:teacher_last_name"              json:"teacher_last_name"`
	TeacherInfo       string    `gorm:"type:text;not null;column:teacher_info"                           json:"teacher_info"`
	TeacherImageURL   *string   `gorm:"type:text;column:teacher_image_url"                               json:"teacher_image_url,omitempty"`

	TeacherCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:teacher_created_at" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:teacher_updated_at" json:"teacher_updated_at"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherID == uuid.Nil {
		m.TeacherID = uuid.New()
	}
	return nil
}
