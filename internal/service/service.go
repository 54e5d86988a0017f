package service

import (
	"context"
	"time"

	"countdown_timers/internal/logger"
	"countdown_timers/internal/models"
	"countdown_timers/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Timers exposes creation, lookup and actions on individual timers or
// whole categories.
type Timers interface {
	Create(ctx context.Context, p CreateParams) (models.TimerRecord, error)
	Get(ctx context.Context, id string) (models.TimerRecord, bool)
	List(ctx context.Context) []models.TimerRecord
	Dispatch(ctx context.Context, target Target, action Action) (int, error)
}

// Categories exposes the grouped view.
type Categories interface {
	Categories(ctx context.Context) []CategoryGroup
	ToggleCategory(ctx context.Context, name string) (expanded, ok bool)
}

// History exposes the completion log, most recent first.
type History interface {
	List(ctx context.Context) ([]models.HistoryEntry, error)
	DeleteAt(ctx context.Context, index int, completedAt time.Time) error
	Clear(ctx context.Context) error
}

// Engine runs the countdown loop. Stop it with Close, or by cancelling the
// context passed to Run.
type Engine interface {
	Load(ctx context.Context) error
	Run(ctx context.Context, interval time.Duration)
	Subscribe(buffer int) (<-chan Event, func())
	Sync(ctx context.Context) error
	Close(ctx context.Context) error
}

// Service aggregates all sub-services.
type Service struct {
	Timers        Timers
	Categories    Categories
	History       History
	Engine        Engine
	Authorization Authorization
}

// Config carries the tunables NewService passes down.
type Config struct {
	Auth       AuthConfig
	Controller ControllerOptions
}

// NewService wires the repository layer into concrete services. Timers,
// Categories and Engine share one Controller.
func NewService(repos *repository.Repository, log *logger.Logger, cfg Config) *Service {
	if log == nil {
		log = logger.Nop()
	}
	history := NewHistoryService(repos.History)
	ctrl := NewController(repos.Timers, history, log.Named("engine"), cfg.Controller)
	return &Service{
		Timers:        ctrl,
		Categories:    ctrl,
		History:       history,
		Engine:        ctrl,
		Authorization: NewAuthService(repos.Auth, cfg.Auth),
	}
}
