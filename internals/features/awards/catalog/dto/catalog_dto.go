// file: internals/features/awards/catalog/dto/catalog_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ekonomvote_backend/internals/features/awards/catalog/model"
)

/* =========================================================
   Award
   ========================================================= */

type AwardRequest struct {
	AwardName string `json:"award_name" validate:"required,max=2048"`
	AwardInfo string `json:"award_info" validate:"required,max=12000"`
}

func (r *AwardRequest) Normalize() {
	r.AwardName = strings.TrimSpace(r.AwardName)
	r.AwardInfo = strings.TrimSpace(r.AwardInfo)
}

func (r *AwardRequest) ToModel() *model.AwardModel {
	return &model.AwardModel{AwardName: r.AwardName, AwardInfo: r.AwardInfo}
}

type AwardResponse struct {
	AwardID        uuid.UUID `json:"award_id"`
	AwardName      string    `json:"award_name"`
	AwardInfo      string    `json:"award_info"`
	AwardCreatedAt time.Time `json:"award_created_at"`
}

func FromAwardModel(m *model.AwardModel) AwardResponse {
	return AwardResponse{
		AwardID:        m.AwardID,
		AwardName:      m.AwardName,
		AwardInfo:      m.AwardInfo,
		AwardCreatedAt: m.AwardCreatedAt,
	}
}

func FromAwardModels(ms []model.AwardModel) []AwardResponse {
	out := make([]AwardResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromAwardModel(&ms[i]))
	}
	return out
}

/* =========================================================
   Teacher
   ========================================================= */

type TeacherRequest struct {
	TeacherFirstName  string `json:"teacher_first_name"  validate:"required,max=150"`
	TeacherSecondName string `json:"teacher_second_name" validate:"omitempty,max=150"`
	TeacherLastName   string `json:"teacher_last_name"   validate:"required,max=150"`
	TeacherInfo       string `json:"teacher_info"        validate:"required"`
}

func (r *TeacherRequest) Normalize() {
	r.TeacherFirstName = strings.TrimSpace(r.TeacherFirstName)
	r.TeacherSecondName = strings.TrimSpace(r.TeacherSecondName)
	r.TeacherLastName = strings.TrimSpace(r.TeacherLastName)
	r.TeacherInfo = strings.TrimSpace(r.TeacherInfo)
}

func (r *TeacherRequest) ToModel() *model.TeacherModel {
	return &model.TeacherModel{
		TeacherFirstName:  r.TeacherFirstName,
		TeacherSecondName: r.TeacherSecondName,
		TeacherLastName:   r.TeacherLastName,
		TeacherInfo:       r.TeacherInfo,
	}
}

type TeacherResponse struct {
	TeacherID         uuid.UUID `json:"teacher_id"`
	TeacherFirstName  string    `json:"teacher_first_name"`
	TeacherSecondName string    `json:"teacher_second_name"`
	TeacherLastName   string    `json:"teacher_last_name"`
	TeacherInfo       string    `json:"teacher_info"`
	TeacherImageURL   *string   `json:"teacher_image_url,omitempty"`
	TeacherCreatedAt  time.Time `json:"teacher_created_at"`
}

func FromTeacherModel(m *model.TeacherModel) TeacherResponse {
	return TeacherResponse{
		TeacherID:         m.TeacherID,
		TeacherFirstName:  m.TeacherFirstName,
		TeacherSecondName: m.TeacherSecondName,
		TeacherLastName:   m.TeacherLastName,
		TeacherInfo:       m.TeacherInfo,
		TeacherImageURL:   m.TeacherImageURL,
		TeacherCreatedAt:  m.TeacherCreatedAt,
	}
}

func FromTeacherModels(ms []model.TeacherModel) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromTeacherModel(&ms[i]))
	}
	return out
}
