package repository

import (
	"context"
	"fmt"

	"countdown_timers/internal/models"
)

// HistoryStore persists the completion log under KeyHistory in append order.
type HistoryStore struct {
	gw    Gateway
	codec Codec
}

func NewHistoryStore(gw Gateway, codec Codec) *HistoryStore {
	return &HistoryStore{gw: gw, codec: codec}
}

// Load returns the log in append order.
func (s *HistoryStore) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	raw, found, err := s.gw.Load(ctx, KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	out := []models.HistoryEntry{}
	if !found || raw == "" {
		return out, nil
	}
	if err := s.codec.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode history (%s): %w", s.codec.Name(), err)
	}
	if out == nil {
		out = []models.HistoryEntry{}
	}
	for i := range out {
		out[i].CompletedAt = out[i].CompletedAt.UTC()
	}
	return out, nil
}

// Save replaces the log with entries, which must be in append order.
func (s *HistoryStore) Save(ctx context.Context, entries []models.HistoryEntry) error {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	raw, err := s.codec.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history (%s): %w", s.codec.Name(), err)
	}
	if err := s.gw.Save(ctx, KeyHistory, raw); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Append loads the log, adds e at the end and writes it back.
func (s *HistoryStore) Append(ctx context.Context, e models.HistoryEntry) error {
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}
	e.CompletedAt = e.CompletedAt.UTC()
	return s.Save(ctx, append(entries, e))
}

// Clear drops the whole log.
func (s *HistoryStore) Clear(ctx context.Context) error {
	if err := s.gw.Remove(ctx, KeyHistory); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
