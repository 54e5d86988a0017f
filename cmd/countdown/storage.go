package main

import (
	"database/sql"
	"fmt"

	"countdown_timers/internal/logger"
	"countdown_timers/internal/repository"
	"countdown_timers/internal/repository/db"
)

// storage is the opened persistence layer for one process.
type storage struct {
	repos   *repository.Repository
	db      *sql.DB
	backend string // effective backend after any fallback
}

// openStorage opens the configured backend. If it cannot be opened the
// process keeps running with an in-memory gateway; nothing survives a
// restart in that mode. The SQL database is also opened for the file and
// memory backends when auth is enabled, since accounts live there.
func openStorage(cfg appConfig, log *logger.Logger) (*storage, error) {
	codec, err := repository.CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}

	s := &storage{backend: cfg.Backend}
	if cfg.Backend == backendSQLite || cfg.AuthEnabled {
		s.db, err = db.InitDB(cfg.DBPath)
		if err != nil {
			if cfg.AuthEnabled {
				return nil, fmt.Errorf("open user database: %w", err)
			}
			log.Errorw("storage_open_failed", "backend", cfg.Backend, "path", cfg.DBPath, "err", err)
		}
	}

	gw, err := openGateway(cfg, s.db)
	if err != nil {
		log.Errorw("storage_unavailable_memory_only", "backend", cfg.Backend, "err", err)
		gw = repository.NewGatewayMemory()
		s.backend = backendMemory
	}

	s.repos = repository.NewRepository(gw, codec, s.db)
	log.Infow("storage_ready", "backend", s.backend, "codec", codec.Name(), "accounts", s.db != nil)
	return s, nil
}

func openGateway(cfg appConfig, conn *sql.DB) (repository.Gateway, error) {
	switch cfg.Backend {
	case backendSQLite:
		if conn == nil {
			return nil, fmt.Errorf("sqlite database %q is not available", cfg.DBPath)
		}
		return repository.NewGatewaySQLite(conn), nil
	case backendFile:
		return repository.NewGatewayFile(cfg.StorageDir)
	case backendMemory:
		return repository.NewGatewayMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func (s *storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
