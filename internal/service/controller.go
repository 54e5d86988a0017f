package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"countdown_timers/internal/logger"
	"countdown_timers/internal/models"
	"countdown_timers/internal/repository"

	"github.com/google/uuid"
)

// DefaultTickInterval is the nominal countdown step.
const DefaultTickInterval = time.Second

// ErrControllerClosed is returned by mutations after Close.
var ErrControllerClosed = errors.New("timer controller is closed")

// Recorder receives completed timers.
type Recorder interface {
	Record(ctx context.Context, e models.HistoryEntry) error
}

// ControllerOptions tunes a Controller. Zero values pick defaults.
type ControllerOptions struct {
	Clock          func() time.Time
	NewID          func() string
	PersistTimeout time.Duration // per write; DefaultPersistTimeout when zero
}

// Controller owns the timer collection. Ticks and user actions are applied
// one at a time under mu; every change replaces the collection and queues
// a full snapshot for persistence.
type Controller struct {
	mu         sync.Mutex
	timers     []models.TimerRecord
	categories *CategoryView
	closed     bool
	stop       chan struct{}

	repo     repository.TimerRepo
	recorder Recorder
	notifier *Notifier
	persist  *persister
	log      *logger.Logger
	clock    func() time.Time
	newID    func() string
}

// NewController builds an empty controller. Call Load to pull the stored
// collection and Run to start ticking. recorder may be nil.
func NewController(repo repository.TimerRepo, recorder Recorder, log *logger.Logger, opts ControllerOptions) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Controller{
		timers:     []models.TimerRecord{},
		categories: NewCategoryView(nil),
		stop:       make(chan struct{}),
		repo:       repo,
		recorder:   recorder,
		notifier:   NewNotifier(),
		persist:    newPersister(log, opts.PersistTimeout),
		log:        log,
		clock:      opts.Clock,
		newID:      opts.NewID,
	}
}

// Load replaces the in-memory collection with the stored one and rebuilds
// the category view. On error the current collection is kept and the
// controller keeps working from memory.
func (c *Controller) Load(ctx context.Context) error {
	stored, err := c.repo.Load(ctx)
	if err != nil {
		c.log.Errorw("load_timers_failed", "err", err)
		return err
	}

	seen := make(map[string]bool, len(stored))
	timers := make([]models.TimerRecord, 0, len(stored))
	for _, t := range stored {
		if !t.Valid() || seen[t.ID] {
			c.log.Warnw("skip_stored_timer", "id", t.ID, "name", t.Name, "status", t.Status)
			continue
		}
		seen[t.ID] = true
		timers = append(timers, t)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = timers
	c.categories = NewCategoryView(timers)
	c.log.Infow("timers_loaded", "count", len(timers))
	return nil
}

// Run ticks every interval until ctx is cancelled or Close is called.
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-t.C:
			c.Advance(c.clock())
		}
	}
}

// Advance applies one tick at now and returns the events it raised.
// It is a no-op after Close.
func (c *Controller) Advance(now time.Time) []Event {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	res := Tick(c.timers, now)
	if res.Changed {
		c.timers = res.Timers
		c.persistTimersLocked()
	}
	for _, ev := range res.Events {
		if ev.Type == EventCompleted {
			c.recordLocked(ev)
		}
	}
	c.mu.Unlock()

	for _, ev := range res.Events {
		c.announce(ev)
	}
	return res.Events
}

// Subscribe returns a channel of engine events and a func to stop it.
func (c *Controller) Subscribe(buffer int) (<-chan Event, func()) {
	return c.notifier.Subscribe(buffer)
}

// List returns a copy of the collection in insertion order.
func (c *Controller) List(_ context.Context) []models.TimerRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneTimers(c.timers)
}

// Get looks a timer up by ID.
func (c *Controller) Get(_ context.Context, id string) (models.TimerRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.timers {
		if t.ID == id {
			return t, true
		}
	}
	return models.TimerRecord{}, false
}

// Categories returns every known category with its timers.
func (c *Controller) Categories(_ context.Context) []CategoryGroup {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories.Groups(c.timers)
}

// ToggleCategory flips a category's expanded flag.
func (c *Controller) ToggleCategory(_ context.Context, name string) (expanded, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories.Toggle(name)
}

// Sync blocks until every persistence write queued so far has finished.
func (c *Controller) Sync(ctx context.Context) error {
	return c.persist.sync(ctx)
}

// Close stops ticking, drains pending writes and closes subscriber
// channels. No tick is applied once Close has returned.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.stop)
	c.mu.Unlock()

	err := c.persist.close(ctx)
	c.notifier.Close()
	return err
}

func (c *Controller) persistTimersLocked() {
	snapshot := cloneTimers(c.timers)
	c.persist.submit(repository.KeyTimers, func(ctx context.Context) error {
		return c.repo.Save(ctx, snapshot)
	})
}

func (c *Controller) recordLocked(ev Event) {
	if c.recorder == nil {
		return
	}
	entry := models.HistoryEntry{Name: ev.Name, Category: ev.Category, CompletedAt: ev.At}
	c.persist.submit(repository.KeyHistory, func(ctx context.Context) error {
		return c.recorder.Record(ctx, entry)
	})
}

func (c *Controller) announce(ev Event) {
	switch ev.Type {
	case EventHalfway:
		c.log.Debugw("timer_halfway", "id", ev.TimerID, "name", ev.Name, "remaining", ev.Remaining, "msg", ev.Message)
	case EventCompleted:
		c.log.Debugw("timer_completed", "id", ev.TimerID, "name", ev.Name, "category", ev.Category, "msg", ev.Message)
	}
	c.notifier.Publish(ev)
}

func cloneTimers(in []models.TimerRecord) []models.TimerRecord {
	out := make([]models.TimerRecord, len(in))
	copy(out, in)
	return out
}
