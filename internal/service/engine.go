package service

import (
	"fmt"
	"time"

	"countdown_timers/internal/models"
)

// EventType identifies a notification raised by the countdown engine.
type EventType string

const (
	EventHalfway   EventType = "halfway"
	EventCompleted EventType = "completed"
)

// Event is delivered to subscribers once per halfway crossing or completion.
type Event struct {
	Type      EventType `json:"type"`
	TimerID   string    `json:"timerId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Remaining int       `json:"remainingTime"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// TickResult is the collection after one tick plus the events it raised.
type TickResult struct {
	Timers  []models.TimerRecord
	Events  []Event
	Changed bool
}

// Tick advances every running timer in snapshot by one second.
//
// The input slice is never written to; the result holds a fresh slice.
// Events are computed from the pre-tick values, so the outcome does not
// depend on iteration order. For a single timer the halfway event, if any,
// precedes its completion event.
func Tick(snapshot []models.TimerRecord, now time.Time) TickResult {
	res := TickResult{Timers: make([]models.TimerRecord, len(snapshot))}
	for i, t := range snapshot {
		if !t.IsTicking() {
			res.Timers[i] = t
			continue
		}
		res.Changed = true

		next := t.RemainingTime - 1
		if t.HalfwayAlert && !t.HalfwayTriggered && float64(next) <= float64(t.Duration)/2 {
			t.HalfwayTriggered = true
			res.Events = append(res.Events, newEvent(EventHalfway, t, next, now))
		}

		if next <= 0 {
			t.Status = models.StatusCompleted
			t.RemainingTime = 0
			res.Events = append(res.Events, newEvent(EventCompleted, t, 0, now))
		} else {
			t.RemainingTime = next
		}
		res.Timers[i] = t
	}
	return res
}

func newEvent(typ EventType, t models.TimerRecord, remaining int, now time.Time) Event {
	ev := Event{
		Type:      typ,
		TimerID:   t.ID,
		Name:      t.Name,
		Category:  t.Category,
		Remaining: remaining,
		At:        now.UTC(),
	}
	switch typ {
	case EventHalfway:
		ev.Message = fmt.Sprintf("Halfway there for %s!", t.Name)
	case EventCompleted:
		ev.Message = fmt.Sprintf("Timer completed: %s", t.Name)
	}
	return ev
}
