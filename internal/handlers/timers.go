package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"countdown_timers/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusDeleted = "deleted"

	errTimerNotFound   = "timer not found"
	errInvalidBodyPref = "invalid body: "
)

// CreateTimerRequest is the timer creation payload. Duration is whole
// seconds and may be sent as a number or a string.
type CreateTimerRequest struct {
	Name         string          `json:"name" example:"Workout"`
	Duration     json.RawMessage `json:"duration" swaggertype:"string" example:"300"`
	Category     string          `json:"category,omitempty" example:"Fitness"`
	HalfwayAlert bool            `json:"halfwayAlert"`
}

// durationText returns the raw duration as typed by the client.
func (r CreateTimerRequest) durationText() string {
	raw := strings.TrimSpace(string(r.Duration))
	var s string
	if err := json.Unmarshal(r.Duration, &s); err == nil {
		return s
	}
	return raw
}

// @Summary      List timers
// @Tags         timers
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, timers"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/timers [get]
// @Security     BearerAuth
func (h *Handler) listTimers(c *gin.Context) {
	timers := h.services.Timers.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"count":  len(timers),
		"timers": newTimerViews(timers),
	})
}

// @Summary      Create timer
// @Description  New timers start paused. A blank category becomes "General".
// @Tags         timers
// @Accept       json
// @Produce      json
// @Param        body  body   CreateTimerRequest  true  "Timer payload"
// @Success      201   {object}  TimerView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/timers [post]
// @Security     BearerAuth
func (h *Handler) createTimer(c *gin.Context) {
	var req CreateTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	rec, err := h.services.Timers.Create(c.Request.Context(), service.CreateParams{
		Name:         req.Name,
		Duration:     req.durationText(),
		Category:     req.Category,
		HalfwayAlert: req.HalfwayAlert,
	})
	if err != nil {
		h.writeServiceError(c, err, "timer_create_failed")
		return
	}
	c.JSON(http.StatusCreated, newTimerView(rec))
}

// @Summary      Get timer
// @Tags         timers
// @Produce      json
// @Param        id   path  string  true  "Timer ID"
// @Success      200  {object}  TimerView
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/timers/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTimer(c *gin.Context) {
	rec, ok := h.services.Timers.Get(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errTimerNotFound})
		return
	}
	c.JSON(http.StatusOK, newTimerView(rec))
}

// @Summary      Start, pause or reset a timer
// @Description  Transitions that do not apply to the timer's state leave it unchanged.
// @Tags         timers
// @Produce      json
// @Param        id      path  string  true  "Timer ID"
// @Param        action  path  string  true  "Action"  Enums(start,pause,reset)
// @Success      200  {object}  map[string]interface{}  "status, changed, timer"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/timers/{id}/{action} [post]
// @Security     BearerAuth
func (h *Handler) timerAction(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	action, err := service.ParseAction(c.Param("action"))
	if err != nil {
		h.writeServiceError(c, err, "timer_action_failed")
		return
	}
	if _, ok := h.services.Timers.Get(ctx, id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errTimerNotFound})
		return
	}
	changed, err := h.services.Timers.Dispatch(ctx, service.TimerTarget(id), action)
	if err != nil {
		h.writeServiceError(c, err, "timer_action_failed", "id", id, "action", action)
		return
	}
	resp := gin.H{"status": string(action), "changed": changed}
	if rec, ok := h.services.Timers.Get(ctx, id); ok {
		resp["timer"] = newTimerView(rec)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Delete timer
// @Tags         timers
// @Produce      json
// @Param        id   path  string  true  "Timer ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/timers/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTimer(c *gin.Context) {
	id := c.Param("id")
	changed, err := h.services.Timers.Dispatch(c.Request.Context(), service.TimerTarget(id), service.ActionDelete)
	if err != nil {
		h.writeServiceError(c, err, "timer_delete_failed", "id", id)
		return
	}
	if changed == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": errTimerNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted, "id": id})
}

// writeServiceError maps service errors onto HTTP codes.
func (h *Handler) writeServiceError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, service.ErrUnknownAction), errors.Is(err, service.ErrBulkDelete):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrControllerClosed):
		h.logAndJSONError(c, http.StatusServiceUnavailable, "timer engine is shutting down", logKey, err, kv...)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "internal error", logKey, err, kv...)
	}
}
