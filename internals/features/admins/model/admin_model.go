// file: internals/features/admins/model/admin_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminModel is a panel operator account. Voters never get rows here; their
// identity comes from the external OAuth layer.
type AdminModel struct {
	AdminID           uuid.UUID `gorm:"type:uuid;primaryKey;column:admin_id" json:"admin_id"`
	AdminLogin        string    `gorm:"type:varchar(1024);not null;uniqueIndex:uq_admin_login;column:admin_login" json:"admin_login"`
	AdminPasswordHash string    `gorm:"type:varchar(255);not null;column:admin_password_hash" json:"-"`

	AdminCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:admin_created_at" json:"admin_created_at"`
	AdminUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:admin_updated_at" json:"admin_updated_at"`
}

func (AdminModel) TableName() string { return "admins" }

func (m *AdminModel) BeforeCreate(tx *gorm.DB) error {
	if m.AdminID == uuid.Nil {
		m.AdminID = uuid.New()
	}
	return nil
}
