package event

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uph-campus/campus-events-backend/internal/timeutil"
	"github.com/uph-campus/campus-events-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📌 Request helpers

func actorFrom(c *gin.Context) Actor {
	id, email := middleware.AdminFromContext(c)
	return Actor{AdminID: id, Email: email, IP: middleware.GetIPFromContext(c)}
}

// respondError maps service errors onto status codes. Unknown errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error, what string) {
	var verr *ValidationError
	var cerr *ConflictError
	var perr *timeutil.ParseError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.As(err, &cerr):
		c.JSON(http.StatusConflict, gin.H{"error": cerr.Error(), "conflicts": cerr.Conflicts})
	default:
		log.Printf("❌ %s: %v", what, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + what})
	}
}

// parseMinutesParam accepts a minute count or "HH:MM"; empty yields def.
func parseMinutesParam(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	return timeutil.MinutesOfDay(s)
}

// ===========================
// 📋 List Events - GET /events
//
// ListEvents godoc
// @Summary List events
// @Description Published events for everyone; admins also see unpublished ones
// @Tags Events
// @Produce json
// @Param building query string false "Building code"
// @Param status query string false "Ongoing, Upcoming, Coming Soon or Past"
// @Param from query string false "First day (YYYYMMDD or YYYY-MM-DD)"
// @Param to query string false "Last day (YYYYMMDD or YYYY-MM-DD)"
// @Param q query string false "Search name, organiser, room or building"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /events [get]
func (h *Handler) ListEvents(c *gin.Context) {
	filter, ok := BindListFilter(c)
	if !ok {
		return
	}
	events, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "list events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.Service.Views(events)})
}

// BindListFilter reads the list query parameters; on failure it has already
// written a 400.
func BindListFilter(c *gin.Context) (ListFilter, bool) {
	filter := ListFilter{
		PublishedOnly: !middleware.IsAdmin(c),
		Building:      strings.TrimSpace(c.Query("building")),
		Query:         c.Query("q"),
	}
	if raw := c.Query("status"); raw != "" {
		st, ok := ParseStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + strconv.Quote(raw)})
			return filter, false
		}
		filter.Status = st
	}
	from, to, err := ParseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err, "parse date range")
		return filter, false
	}
	filter.From, filter.To = from, to
	return filter, true
}

// ===========================
// 🔍 Get Event - GET /events/:id
//
// GetEvent godoc
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} View
// @Failure 404 {object} map[string]string
// @Router /events/{id} [get]
func (h *Handler) GetEvent(c *gin.Context) {
	e, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "get event")
		return
	}
	if !e.Published && !middleware.IsAdmin(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, h.Service.View(e))
}

// ===========================
// 🎯 Create Event - POST /events
//
// CreateEvent godoc
// @Summary Create event
// @Description Books a room. Overlapping bookings return 409 unless override is set.
// @Tags Events
// @Accept json
// @Produce json
// @Param body body Draft true "Event"
// @Success 201 {object} View
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	var d Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	e, err := h.Service.Create(c.Request.Context(), d, actorFrom(c))
	if err != nil {
		respondError(c, err, "create event")
		return
	}
	c.JSON(http.StatusCreated, h.Service.View(e))
}

// ===========================
// 🛠 Update Event - PUT /events/:id
//
// UpdateEvent godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param body body Patch true "Fields to change"
// @Success 200 {object} View
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]interface{}
// @Router /events/{id} [put]
func (h *Handler) UpdateEvent(c *gin.Context) {
	var p Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	e, err := h.Service.Update(c.Request.Context(), c.Param("id"), p, actorFrom(c))
	if err != nil {
		respondError(c, err, "update event")
		return
	}
	c.JSON(http.StatusOK, h.Service.View(e))
}

// ===========================
// ❌ Delete Event - DELETE /events/:id
//
// DeleteEvent godoc
// @Summary Delete event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id} [delete]
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), actorFrom(c)); err != nil {
		respondError(c, err, "delete event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted successfully"})
}

type posterReq struct {
	PosterURL string `json:"posterUrl" example:"https://cdn.campus.example/posters/talk.png"`
}

// ===========================
// 🖼 Attach Poster - PUT /events/:id/poster
//
// SetPoster godoc
// @Summary Attach poster URL
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param body body posterReq true "Poster URL, empty to clear"
// @Success 200 {object} View
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /events/{id}/poster [put]
func (h *Handler) SetPoster(c *gin.Context) {
	var req posterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	e, err := h.Service.SetPoster(c.Request.Context(), c.Param("id"), req.PosterURL, actorFrom(c))
	if err != nil {
		respondError(c, err, "attach poster")
		return
	}
	c.JSON(http.StatusOK, h.Service.View(e))
}

// ===========================
// ⚔️ Room Conflict Check - GET /checkRoomConflict
//
// CheckRoomConflict godoc
// @Summary Check room conflicts
// @Description Without start/end the whole day is checked and every booking of the room is returned
// @Tags Events
// @Produce json
// @Param date query string true "Day as epoch ms or YYYY-MM-DD"
// @Param room query string true "Room code"
// @Param start query string false "Start (minutes or HH:MM), default 0"
// @Param end query string false "End (minutes or HH:MM), default 1440"
// @Param exclude query string false "Event ID to ignore (the one being edited)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /checkRoomConflict [get]
func (h *Handler) CheckRoomConflict(c *gin.Context) {
	date, err := timeutil.ParseDay(c.Query("date"))
	if err != nil {
		respondError(c, err, "parse date")
		return
	}
	start, err := parseMinutesParam(c.Query("start"), 0)
	if err != nil {
		respondError(c, err, "parse start")
		return
	}
	end, err := parseMinutesParam(c.Query("end"), timeutil.MinutesPerDay)
	if err != nil {
		respondError(c, err, "parse end")
		return
	}

	cand := Candidate{
		Date:         date,
		Room:         strings.ToUpper(strings.TrimSpace(c.Query("room"))),
		StartMinutes: start,
		EndMinutes:   end,
	}
	conflicts, err := h.Service.FindConflicts(c.Request.Context(), cand, c.Query("exclude"))
	if err != nil {
		respondError(c, err, "check room conflicts")
		return
	}
	if conflicts == nil {
		conflicts = []Event{}
	}
	c.JSON(http.StatusOK, gin.H{
		"hasConflict": len(conflicts) > 0,
		"conflicts":   conflicts,
	})
}

type repairReq struct {
	EventID       string            `json:"eventId"`
	DateTimestamp timeutil.DayValue `json:"dateTimestamp" swaggertype:"integer"`
}

// ===========================
// 🩹 Date Index Repair - POST /eventsByDate
//
// RepairIndex godoc
// @Summary Backfill a date index entry
// @Description Adds the event under its own day; rejected when the day does not match the record
// @Tags Index
// @Accept json
// @Produce json
// @Param body body repairReq true "Event and day"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /eventsByDate [post]
func (h *Handler) RepairIndex(c *gin.Context) {
	var req repairReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	if err := h.Service.RepairIndex(c.Request.Context(), req.EventID, req.DateTimestamp, actorFrom(c)); err != nil {
		respondError(c, err, "repair date index")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "date index updated", "dateKey": req.DateTimestamp.Key()})
}

// ===========================
// 🔁 Date Index Verify - GET /admin/index/verify
//
// VerifyIndex godoc
// @Summary Compare the date index with event records
// @Tags Index
// @Produce json
// @Param apply query bool false "Rewrite the index to match"
// @Success 200 {object} IndexReport
// @Router /admin/index/verify [get]
func (h *Handler) VerifyIndex(c *gin.Context) {
	apply, _ := strconv.ParseBool(c.DefaultQuery("apply", "false"))
	report, err := h.Service.ReconcileIndex(c.Request.Context(), apply, actorFrom(c))
	if err != nil {
		respondError(c, err, "verify date index")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ===========================
// 📊 Dashboard - GET /admin/dashboard
//
// Dashboard godoc
// @Summary Event counts by status
// @Tags Admin
// @Produce json
// @Success 200 {object} Summary
// @Router /admin/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	sum, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err, "load dashboard")
		return
	}
	c.JSON(http.StatusOK, sum)
}

// ===========================
// 🕰 History - GET /admin/history
//
// History godoc
// @Summary Past events, newest first
// @Tags Admin
// @Produce json
// @Param limit query int false "Maximum rows"
// @Success 200 {object} map[string]interface{}
// @Router /admin/history [get]
func (h *Handler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	past, err := h.Service.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "load history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.Service.Views(past)})
}
