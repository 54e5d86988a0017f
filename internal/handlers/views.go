package handlers

import (
	"countdown_timers/internal/models"
	"countdown_timers/internal/service"
)

// TimerView is a timer as served to clients, with its elapsed fraction
// for progress bars.
type TimerView struct {
	models.TimerRecord
	Progress float64 `json:"progress" example:"0.5"`
}

// CategoryView is a category group as served to clients.
type CategoryView struct {
	Name     string      `json:"name"`
	Expanded bool        `json:"expanded"`
	Timers   []TimerView `json:"timers"`
}

func newTimerView(rec models.TimerRecord) TimerView {
	return TimerView{TimerRecord: rec, Progress: rec.Progress()}
}

func newTimerViews(timers []models.TimerRecord) []TimerView {
	out := make([]TimerView, 0, len(timers))
	for _, t := range timers {
		out = append(out, newTimerView(t))
	}
	return out
}

func newCategoryViews(groups []service.CategoryGroup) []CategoryView {
	out := make([]CategoryView, 0, len(groups))
	for _, g := range groups {
		out = append(out, CategoryView{Name: g.Name, Expanded: g.Expanded, Timers: newTimerViews(g.Timers)})
	}
	return out
}
