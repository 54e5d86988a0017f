package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"countdown_timers/internal/models"
	"countdown_timers/internal/repository"
)

var (
	// ErrHistoryIndex is returned by DeleteAt for a position outside the log.
	ErrHistoryIndex = errors.New("history index out of range")
	// ErrHistoryChanged is returned by DeleteAt when the entry at index is
	// not the one the caller expected.
	ErrHistoryChanged = errors.New("history entry at index has changed")
)

// HistoryService owns the completion log. Operations are serialized so a
// delete never interleaves with an append.
type HistoryService struct {
	mu   sync.Mutex
	repo repository.HistoryRepo
}

func NewHistoryService(repo repository.HistoryRepo) *HistoryService {
	return &HistoryService{repo: repo}
}

// Record appends one completion to the log.
func (s *HistoryService) Record(ctx context.Context, e models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Append(ctx, e)
}

// List returns the log most recent first.
func (s *HistoryService) List(ctx context.Context) ([]models.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return reversed(entries), nil
}

// DeleteAt removes the entry at index in the most-recent-first view and
// stores the rest back in append order. A non-zero completedAt must match
// the entry found there; completions recorded since the caller listed the
// log shift every index.
func (s *HistoryService) DeleteAt(ctx context.Context, index int, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return ErrHistoryIndex
	}
	pos := len(entries) - 1 - index
	if !completedAt.IsZero() && !entries[pos].CompletedAt.Equal(completedAt) {
		return ErrHistoryChanged
	}
	kept := make([]models.HistoryEntry, 0, len(entries)-1)
	kept = append(kept, entries[:pos]...)
	kept = append(kept, entries[pos+1:]...)
	return s.repo.Save(ctx, kept)
}

// Clear empties the log. Live timers are not touched.
func (s *HistoryService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Clear(ctx)
}

func reversed(in []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(in))
	for i, e := range in {
		out[len(in)-1-i] = e
	}
	return out
}
