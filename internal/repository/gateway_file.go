package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// GatewayFile stores each key as <dir>/<key>.dat. Writes go through a temp
// file, fsync and rename so a crash never leaves a half-written value.
type GatewayFile struct {
	mu  sync.Mutex
	dir string
}

var validFileKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// NewGatewayFile creates dir if needed.
func NewGatewayFile(dir string) (*GatewayFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &GatewayFile{dir: dir}, nil
}

var _ Gateway = (*GatewayFile)(nil)

func (g *GatewayFile) path(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if !validFileKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(g.dir, key+".dat"), nil
}

func (g *GatewayFile) Load(ctx context.Context, key string) (string, bool, error) {
	path, err := g.path(key)
	if err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	return string(raw), true, nil
}

func (g *GatewayFile) Save(ctx context.Context, key, value string) error {
	path, err := g.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return writeAtomic(path, value)
}

func (g *GatewayFile) Remove(ctx context.Context, key string) error {
	path, err := g.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func writeAtomic(path, value string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(value); err != nil {
		return fail("writing value", err)
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
