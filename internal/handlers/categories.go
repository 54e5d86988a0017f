package handlers

import (
	"net/http"
	"strings"

	"countdown_timers/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	actionToggle = "toggle"

	errCategoryNotFound = "category not found"
)

// @Summary      List categories
// @Description  Categories in first-seen order with their expand state and timers.
// @Tags         categories
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "categories"
// @Router       /api/v1/categories [get]
// @Security     BearerAuth
func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": newCategoryViews(h.services.Categories.Categories(c.Request.Context())),
	})
}

// @Summary      Toggle a category or apply an action to all its timers
// @Tags         categories
// @Produce      json
// @Param        name    path  string  true  "Category name"
// @Param        action  path  string  true  "Action"  Enums(toggle,start,pause,reset)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/categories/{name}/{action} [post]
// @Security     BearerAuth
func (h *Handler) categoryAction(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	if strings.EqualFold(c.Param("action"), actionToggle) {
		expanded, ok := h.services.Categories.ToggleCategory(ctx, name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": errCategoryNotFound})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "expanded": expanded})
		return
	}

	action, err := service.ParseAction(c.Param("action"))
	if err != nil {
		h.writeServiceError(c, err, "category_action_failed")
		return
	}
	changed, err := h.services.Timers.Dispatch(ctx, service.CategoryTarget(name), action)
	if err != nil {
		h.writeServiceError(c, err, "category_action_failed", "category", name, "action", action)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(action), "category": name, "changed": changed})
}
