package models

import "time"

// HistoryEntry records one completed timer. Entries are never edited.
type HistoryEntry struct {
	Name        string    `json:"name" yaml:"name"`
	Category    string    `json:"category" yaml:"category"`
	CompletedAt time.Time `json:"completedAt" yaml:"completedAt"`
}
