package service

import "countdown_timers/internal/models"

// CategoryGroup is one category with its UI state and member timers.
type CategoryGroup struct {
	Name     string               `json:"name"`
	Expanded bool                 `json:"expanded"`
	Timers   []models.TimerRecord `json:"timers"`
}

// CategoryView derives the category set and expand/collapse flags from the
// timer collection. It is not safe for concurrent use; Controller guards it.
type CategoryView struct {
	order    []string
	expanded map[string]bool
}

// NewCategoryView rebuilds the view from timers with every category
// collapsed. Categories without timers are dropped here and only here.
func NewCategoryView(timers []models.TimerRecord) *CategoryView {
	v := &CategoryView{expanded: make(map[string]bool)}
	for _, t := range timers {
		v.Observe(t.Category)
	}
	return v
}

// Observe adds category as collapsed if it has not been seen.
// It reports whether the category was new.
func (v *CategoryView) Observe(category string) bool {
	if _, ok := v.expanded[category]; ok {
		return false
	}
	v.order = append(v.order, category)
	v.expanded[category] = false
	return true
}

// Toggle flips the expanded flag. ok is false for an unknown category.
func (v *CategoryView) Toggle(category string) (expanded, ok bool) {
	cur, ok := v.expanded[category]
	if !ok {
		return false, false
	}
	v.expanded[category] = !cur
	return !cur, true
}

// Groups pairs each known category with its timers. Empty categories are
// kept until the next reload.
func (v *CategoryView) Groups(timers []models.TimerRecord) []CategoryGroup {
	out := make([]CategoryGroup, 0, len(v.order))
	for _, name := range v.order {
		out = append(out, CategoryGroup{
			Name:     name,
			Expanded: v.expanded[name],
			Timers:   TimersIn(timers, name),
		})
	}
	return out
}

// TimersIn filters timers by exact category match.
func TimersIn(timers []models.TimerRecord, category string) []models.TimerRecord {
	out := []models.TimerRecord{}
	for _, t := range timers {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
