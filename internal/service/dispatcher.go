package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"countdown_timers/internal/models"
)

// Action is a user-initiated timer transition.
type Action string

const (
	ActionStart  Action = "start"
	ActionPause  Action = "pause"
	ActionReset  Action = "reset"
	ActionDelete Action = "delete"
)

var (
	ErrUnknownAction = errors.New("unknown timer action")
	ErrBulkDelete    = errors.New("delete applies to a single timer, not a category")
	ErrValidation    = errors.New("invalid timer")
	ErrIDExhausted   = errors.New("could not generate an unused timer id")
)

// ParseAction maps text onto an Action.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionStart, ActionPause, ActionReset, ActionDelete:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Target selects either one timer (TimerID) or every timer in Category.
type Target struct {
	TimerID  string
	Category string
}

func TimerTarget(id string) Target { return Target{TimerID: id} }

func CategoryTarget(category string) Target { return Target{Category: category} }

func (t Target) bulk() bool { return t.TimerID == "" }

func (t Target) matches(r models.TimerRecord) bool {
	if t.bulk() {
		return r.Category == t.Category
	}
	return r.ID == t.TimerID
}

// CreateParams is the raw timer-creation form.
type CreateParams struct {
	Name         string
	Duration     string // whole seconds, as typed
	Category     string
	HalfwayAlert bool
}

// ValidationError describes a rejected creation. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Create validates p and appends a new paused timer.
func (c *Controller) Create(ctx context.Context, p CreateParams) (models.TimerRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.TimerRecord{}, err
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return models.TimerRecord{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	duration, err := strconv.Atoi(strings.TrimSpace(p.Duration))
	if err != nil {
		return models.TimerRecord{}, &ValidationError{Field: "duration", Reason: "must be a whole number of seconds"}
	}
	if duration <= 0 {
		return models.TimerRecord{}, &ValidationError{Field: "duration", Reason: "must be greater than zero"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return models.TimerRecord{}, ErrControllerClosed
	}
	id, err := c.uniqueIDLocked()
	if err != nil {
		return models.TimerRecord{}, err
	}

	rec := models.TimerRecord{
		ID:            id,
		Name:          name,
		Category:      models.NormalizeCategory(p.Category),
		Duration:      duration,
		RemainingTime: duration,
		Status:        models.StatusPaused,
		HalfwayAlert:  p.HalfwayAlert,
	}
	next := make([]models.TimerRecord, 0, len(c.timers)+1)
	next = append(next, c.timers...)
	c.timers = append(next, rec)
	if c.categories.Observe(rec.Category) {
		c.log.Debugw("category_added", "category", rec.Category)
	}
	c.persistTimersLocked()
	c.log.Infow("timer_created", "id", rec.ID, "name", rec.Name, "category", rec.Category, "duration", rec.Duration)
	return rec, nil
}

// Dispatch applies action to the target and returns how many timers changed.
// Transitions that do not apply to a timer's current state are skipped for
// that timer; an unknown ID or empty category changes nothing.
func (c *Controller) Dispatch(ctx context.Context, target Target, action Action) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	action, err := ParseAction(string(action))
	if err != nil {
		return 0, err
	}
	if action == ActionDelete && target.bulk() {
		return 0, ErrBulkDelete
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrControllerClosed
	}

	if action == ActionDelete {
		return c.deleteLocked(target.TimerID), nil
	}

	next := make([]models.TimerRecord, len(c.timers))
	changed := 0
	for i, t := range c.timers {
		next[i] = t
		if !target.matches(t) {
			continue
		}
		if u := apply(action, t); u != t {
			next[i] = u
			changed++
		}
	}
	if changed > 0 {
		c.timers = next
		c.persistTimersLocked()
		c.log.Debugw("timers_dispatched", "action", action, "timer", target.TimerID, "category", target.Category, "changed", changed)
	}
	return changed, nil
}

func apply(action Action, t models.TimerRecord) models.TimerRecord {
	switch action {
	case ActionStart:
		return t.Started()
	case ActionPause:
		return t.Paused()
	case ActionReset:
		return t.Reset()
	default:
		return t
	}
}

// deleteLocked removes a timer. Its category stays in the view until the
// next reload.
func (c *Controller) deleteLocked(id string) int {
	next := make([]models.TimerRecord, 0, len(c.timers))
	for _, t := range c.timers {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(c.timers) {
		return 0
	}
	c.timers = next
	c.persistTimersLocked()
	c.log.Infow("timer_deleted", "id", id)
	return 1
}

// maxIDAttempts bounds uniqueIDLocked against an id source that keeps
// repeating itself.
const maxIDAttempts = 8

func (c *Controller) uniqueIDLocked() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := c.newID()
		taken := false
		for _, t := range c.timers {
			if t.ID == id {
				taken = true
				break
			}
		}
		if !taken && id != "" {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
