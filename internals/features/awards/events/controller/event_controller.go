// file: internals/features/awards/events/controller/event_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "ekonomvote_backend/internals/helpers"
	"ekonomvote_backend/internals/helpers/clockx"

	d "ekonomvote_backend/internals/features/awards/events/dto"
	m "ekonomvote_backend/internals/features/awards/events/model"
	s "ekonomvote_backend/internals/features/awards/events/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type EventController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *s.EventService
	Clock    clockx.Clock
}

func NewEventController(db *gorm.DB, v *validator.Validate, clock clockx.Clock) *EventController {
	if clock == nil {
		clock = clockx.System
	}
	return &EventController{
		DB:       db,
		Validate: v,
		Service:  s.NewEventService(db, clock),
		Clock:    clock,
	}
}

/* =========================
   Create (admin)
   ========================= */

func (ctl *EventController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}

	var req d.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var nomination *s.RoundBounds
	if req.Nomination != nil {
		b := req.Nomination.ToBounds()
		nomination = &b
	}

	event, err := ctl.Service.CreateEvent(c.UserContext(), actorID, req.WithNominations, req.Final.ToBounds(), nomination)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return ctl.respondWithEvent(c, event, helper.JsonCreated, "Voting event created")
}

/* =========================
   Update (admin)
   ========================= */

func (ctl *EventController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid event id")
	}

	var req d.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	params := s.UpdateEventParams{
		WithNominations: req.WithNominations,
		Final:           req.Final.ToBounds(),
	}
	if req.Nomination != nil {
		b := req.Nomination.ToBounds()
		params.Nomination = &b
	}

	event, err := ctl.Service.UpdateEvent(c.UserContext(), actorID, eventID, params)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return ctl.respondWithEvent(c, event, helper.JsonUpdated, "Voting event updated")
}

/* =========================
   Advance (admin)
   ========================= */

// Advance carries the nomination winners into the final round. Tie handling
// follows the configured policy unless overridden via ?tie_break=.
func (ctl *EventController) Advance(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid event id")
	}

	tieBreak := s.AdvanceTieBreak()
	switch c.Query("tie_break") {
	case string(s.TieBreakEarliestVote):
		tieBreak = s.TieBreakEarliestVote
	case string(s.TieBreakIncludeTies):
		tieBreak = s.TieBreakIncludeTies
	}

	advanced, err := ctl.Service.AdvanceRound(c.UserContext(), actorID, eventID, tieBreak)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonOK(c, "Round advanced", fiber.Map{
		"voting_event_id":       eventID,
		"advanced_candidatures": advanced,
	})
}

/* =========================
   Delete (admin, cascade)
   ========================= */

func (ctl *EventController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, http.StatusUnauthorized, err.Error())
	}
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid event id")
	}

	if err := ctl.Service.DeleteCascade(c.UserContext(), actorID, eventID); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Voting event deleted", fiber.Map{"voting_event_id": eventID})
}

/* =========================
   Read side
   ========================= */

func (ctl *EventController) GetByID(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid event id")
	}

	var event m.VotingEventModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("voting_event_id = ?", eventID).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "voting event not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return ctl.respondWithEvent(c, &event, helper.JsonOK, "ok")
}

// List returns events newest first, each with its rounds and derived status.
func (ctl *EventController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.VotingEventModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var events []m.VotingEventModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("voting_event_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&events).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	eventIDs := make([]uuid.UUID, 0, len(events))
	for i := range events {
		eventIDs = append(eventIDs, events[i].VotingEventID)
	}
	var rounds []m.VotingRoundModel
	if len(eventIDs) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).
			Where("voting_round_event_id IN ?", eventIDs).
			Order("voting_round_planned_start ASC").
			Find(&rounds).Error; err != nil {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}
	byEvent := make(map[uuid.UUID][]m.VotingRoundModel, len(events))
	for i := range rounds {
		byEvent[rounds[i].VotingRoundEventID] = append(byEvent[rounds[i].VotingRoundEventID], rounds[i])
	}

	now := ctl.Clock.Now()
	out := make([]d.EventResponse, 0, len(events))
	for i := range events {
		evRounds := byEvent[events[i].VotingEventID]
		out = append(out, d.FromEventModel(&events[i], evRounds, s.Status(evRounds, now)))
	}

	return helper.JsonList(c, "ok", out,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================
   internals
   ========================= */

func (ctl *EventController) respondWithEvent(c *fiber.Ctx, event *m.VotingEventModel, render func(*fiber.Ctx, string, any) error, message string) error {
	var rounds []m.VotingRoundModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("voting_round_event_id = ?", event.VotingEventID).
		Order("voting_round_planned_start ASC").
		Find(&rounds).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	status := s.Status(rounds, ctl.Clock.Now())
	return render(c, message, d.FromEventModel(event, rounds, status))
}
