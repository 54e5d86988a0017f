package repository

import (
	"context"
	"errors"
)

// Storage namespaces used by the timer engine.
const (
	KeyTimers  = "timers"
	KeyHistory = "timerHistory"
)

// ErrEmptyKey is returned by every gateway for a blank key.
var ErrEmptyKey = errors.New("storage key is empty")

// Gateway is an opaque key-value store holding serialized text.
// Load reports found=false (and no error) for a key that was never saved or
// has been removed.
type Gateway interface {
	Load(ctx context.Context, key string) (value string, found bool, err error)
	Save(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
