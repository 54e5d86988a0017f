package models

import "strings"

// Status is the lifecycle state of a timer.
type Status string

const (
	StatusPaused    Status = "paused"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// DefaultCategory is assigned when a timer is created with a blank category.
const DefaultCategory = "General"

// TimerRecord is a single countdown timer.
type TimerRecord struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Category         string `json:"category" yaml:"category"`
	Duration         int    `json:"duration" yaml:"duration"`           // seconds, > 0
	RemainingTime    int    `json:"remainingTime" yaml:"remainingTime"` // seconds, 0..Duration
	Status           Status `json:"status" yaml:"status"`               // paused | running | completed
	HalfwayAlert     bool   `json:"halfwayAlert" yaml:"halfwayAlert"`
	HalfwayTriggered bool   `json:"halfwayTriggered" yaml:"halfwayTriggered"`
}

// NormalizeCategory trims the category and falls back to DefaultCategory.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}

// Started returns the timer moved to running. Only paused timers start.
func (t TimerRecord) Started() TimerRecord {
	if t.Status != StatusPaused {
		return t
	}
	t.Status = StatusRunning
	return t
}

// Paused returns the timer moved to paused. Only running timers pause.
func (t TimerRecord) Paused() TimerRecord {
	if t.Status != StatusRunning {
		return t
	}
	t.Status = StatusPaused
	return t
}

// Reset returns the timer rewound to its full duration, paused, with the
// halfway flag cleared. Permitted from any state.
func (t TimerRecord) Reset() TimerRecord {
	t.Status = StatusPaused
	t.RemainingTime = t.Duration
	t.HalfwayTriggered = false
	return t
}

// IsTicking reports whether the countdown engine should advance the timer.
func (t TimerRecord) IsTicking() bool {
	return t.Status == StatusRunning && t.RemainingTime > 0
}

// Progress is the elapsed fraction in [0, 1].
func (t TimerRecord) Progress() float64 {
	if t.Duration <= 0 {
		return 0
	}
	p := float64(t.Duration-t.RemainingTime) / float64(t.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Valid reports whether the record satisfies the model invariants.
func (t TimerRecord) Valid() bool {
	if t.ID == "" || strings.TrimSpace(t.Name) == "" || t.Duration <= 0 {
		return false
	}
	if t.RemainingTime < 0 || t.RemainingTime > t.Duration {
		return false
	}
	switch t.Status {
	case StatusPaused, StatusRunning:
		return true
	case StatusCompleted:
		return t.RemainingTime == 0
	default:
		return false
	}
}
