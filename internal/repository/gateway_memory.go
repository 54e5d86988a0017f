package repository

import (
	"context"
	"sync"
)

// GatewayMemory keeps values in process memory only. It backs the
// memory-only mode used when durable storage is unavailable.
type GatewayMemory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewGatewayMemory() *GatewayMemory {
	return &GatewayMemory{values: make(map[string]string)}
}

var _ Gateway = (*GatewayMemory)(nil)

func (g *GatewayMemory) Load(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.values[key]
	return v, ok, nil
}

func (g *GatewayMemory) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[key] = value
	return nil
}

func (g *GatewayMemory) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.values, key)
	return nil
}
