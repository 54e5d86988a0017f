package repository

import (
	"context"
	"database/sql"

	"countdown_timers/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type TimerRepo interface {
	Load(ctx context.Context) ([]models.TimerRecord, error)
	Save(ctx context.Context, timers []models.TimerRecord) error
}

type HistoryRepo interface {
	Load(ctx context.Context) ([]models.HistoryEntry, error)
	Save(ctx context.Context, entries []models.HistoryEntry) error
	Append(ctx context.Context, e models.HistoryEntry) error
	Clear(ctx context.Context) error
}

type Repository struct {
	Timers  TimerRepo
	History HistoryRepo
	// Auth is nil unless a SQL database is attached.
	Auth Authorization
}

// NewRepository builds the typed stores over gw. db may be nil, in which
// case user accounts are unavailable.
func NewRepository(gw Gateway, codec Codec, db *sql.DB) *Repository {
	if codec == nil {
		codec = JSONCodec()
	}
	r := &Repository{
		Timers:  NewTimerStore(gw, codec),
		History: NewHistoryStore(gw, codec),
	}
	if db != nil {
		r.Auth = NewUserRepository(db)
	}
	return r
}
