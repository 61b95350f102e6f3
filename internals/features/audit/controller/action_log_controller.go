// file: internals/features/audit/controller/action_log_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "ekonomvote_backend/internals/helpers"

	m "ekonomvote_backend/internals/features/audit/model"
)

/* =========================
   Controller & Constructor
   ========================= */

type ActionLogController struct {
	DB *gorm.DB
}

func NewActionLogController(db *gorm.DB) *ActionLogController {
	return &ActionLogController{DB: db}
}

/* =========================
   List (admin, read only)
   ========================= */

// List pages through the audit trail newest first. Filters: ?actor_id=,
// ?target_type=, ?target_id=, ?action=.
func (ctl *ActionLogController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&m.ActionLogModel{})

	if raw := strings.TrimSpace(c.Query("actor_id")); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid actor_id filter")
		}
		q = q.Where("action_log_actor_id = ?", actorID)
	}
	if raw := strings.TrimSpace(c.Query("target_id")); raw != "" {
		targetID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "invalid target_id filter")
		}
		q = q.Where("action_log_target_id = ?", targetID)
	}
	if raw := strings.TrimSpace(c.Query("target_type")); raw != "" {
		q = q.Where("action_log_target_type = ?", raw)
	}
	if raw := strings.ToUpper(strings.TrimSpace(c.Query("action"))); raw != "" {
		switch m.ActionType(raw) {
		case m.ActionCreate, m.ActionUpdate, m.ActionDelete:
			q = q.Where("action_log_action_type = ?", raw)
		default:
			return helper.JsonError(c, http.StatusBadRequest, "invalid action filter")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var logs []m.ActionLogModel
	if err := q.
		Order("action_log_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&logs).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "ok", logs,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
