package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"countdown_timers/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusCleared = "cleared"

	errLoadHistory  = "failed to load history"
	errSaveHistory  = "failed to update history"
	errHistoryIndex = "invalid history index"
	errCompletedAt  = "completedAt must be an RFC 3339 timestamp"
)

// @Summary      List completed timers
// @Description  Most recent first.
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history [get]
// @Security     BearerAuth
func (h *Handler) listHistory(c *gin.Context) {
	entries, err := h.services.History.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadHistory, "history_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// @Summary      Delete one history entry
// @Description  index counts from the most recent entry, starting at 0.
// @Description  Pass the entry's completedAt to refuse the delete when new
// @Description  completions have shifted the index since it was listed.
// @Tags         history
// @Produce      json
// @Param        index        path   int     true   "Position in the listed order"
// @Param        completedAt  query  string  false  "Expected completedAt of the entry (RFC 3339)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history/{index} [delete]
// @Security     BearerAuth
func (h *Handler) deleteHistoryEntry(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errHistoryIndex})
		return
	}
	var completedAt time.Time
	if raw := c.Query("completedAt"); raw != "" {
		if completedAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errCompletedAt})
			return
		}
	}
	if err := h.services.History.DeleteAt(c.Request.Context(), index, completedAt); err != nil {
		switch {
		case errors.Is(err, service.ErrHistoryIndex):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		case errors.Is(err, service.ErrHistoryChanged):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveHistory, "history_delete_failed", err, "index", index)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}

// @Summary      Clear history
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history [delete]
// @Security     BearerAuth
func (h *Handler) clearHistory(c *gin.Context) {
	if err := h.services.History.Clear(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveHistory, "history_clear_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusCleared})
}
