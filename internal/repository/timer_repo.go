package repository

import (
	"context"
	"fmt"

	"countdown_timers/internal/models"
)

// TimerStore persists the whole timer collection under KeyTimers.
type TimerStore struct {
	gw    Gateway
	codec Codec
}

func NewTimerStore(gw Gateway, codec Codec) *TimerStore {
	return &TimerStore{gw: gw, codec: codec}
}

// Load returns the saved collection; an absent key yields an empty slice.
func (s *TimerStore) Load(ctx context.Context) ([]models.TimerRecord, error) {
	raw, found, err := s.gw.Load(ctx, KeyTimers)
	if err != nil {
		return nil, fmt.Errorf("load timers: %w", err)
	}
	out := []models.TimerRecord{}
	if !found || raw == "" {
		return out, nil
	}
	if err := s.codec.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode timers (%s): %w", s.codec.Name(), err)
	}
	if out == nil {
		out = []models.TimerRecord{}
	}
	return out, nil
}

// Save replaces the stored collection.
func (s *TimerStore) Save(ctx context.Context, timers []models.TimerRecord) error {
	if timers == nil {
		timers = []models.TimerRecord{}
	}
	raw, err := s.codec.Marshal(timers)
	if err != nil {
		return fmt.Errorf("encode timers (%s): %w", s.codec.Name(), err)
	}
	if err := s.gw.Save(ctx, KeyTimers, raw); err != nil {
		return fmt.Errorf("save timers: %w", err)
	}
	return nil
}
