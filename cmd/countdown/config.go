package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"countdown_timers/internal/logger"
	"countdown_timers/internal/repository"
	"countdown_timers/internal/server"
	"countdown_timers/internal/service"

	"github.com/spf13/viper"
)

const (
	envPrefix = "COUNTDOWN"

	cfgKeyPort         = "port"
	cfgKeyLogLevel     = "log.level"
	cfgKeyDBPath       = "db.path"
	cfgKeyBackend      = "storage.backend"
	cfgKeyStorageDir   = "storage.dir"
	cfgKeyCodec        = "storage.codec"
	cfgKeyTickInterval = "engine.tick_interval"
	cfgKeyAuthEnabled  = "auth.enabled"
	cfgKeySigningKey   = "auth.signing_key"
	cfgKeyTokenTTL     = "auth.token_ttl"

	backendSQLite = "sqlite"
	backendFile   = "file"
	backendMemory = "memory"
)

// appConfig is the resolved process configuration.
type appConfig struct {
	Port         string
	LogLevel     string
	DBPath       string
	Backend      string
	StorageDir   string
	Codec        string
	TickInterval time.Duration
	AuthEnabled  bool
	SigningKey   string
	TokenTTL     time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(cfgKeyPort, server.DefaultPort)
	v.SetDefault(cfgKeyLogLevel, logger.InfoLevel)
	v.SetDefault(cfgKeyDBPath, "countdown.db")
	v.SetDefault(cfgKeyBackend, backendSQLite)
	v.SetDefault(cfgKeyStorageDir, "data")
	v.SetDefault(cfgKeyCodec, repository.CodecJSON)
	v.SetDefault(cfgKeyTickInterval, service.DefaultTickInterval)
	v.SetDefault(cfgKeyAuthEnabled, false)
	v.SetDefault(cfgKeyTokenTTL, time.Hour)
}

// loadConfig reads path, or configs/config.yml when path is empty. A missing
// default config file is not an error; environment variables such as
// COUNTDOWN_STORAGE_BACKEND override file values.
func loadConfig(path string) (appConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return appConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := appConfig{
		Port:         v.GetString(cfgKeyPort),
		LogLevel:     v.GetString(cfgKeyLogLevel),
		DBPath:       v.GetString(cfgKeyDBPath),
		Backend:      strings.ToLower(strings.TrimSpace(v.GetString(cfgKeyBackend))),
		StorageDir:   v.GetString(cfgKeyStorageDir),
		Codec:        v.GetString(cfgKeyCodec),
		TickInterval: v.GetDuration(cfgKeyTickInterval),
		AuthEnabled:  v.GetBool(cfgKeyAuthEnabled),
		SigningKey:   v.GetString(cfgKeySigningKey),
		TokenTTL:     v.GetDuration(cfgKeyTokenTTL),
	}
	return cfg, cfg.validate()
}

func (c appConfig) validate() error {
	switch c.Backend {
	case backendSQLite, backendFile, backendMemory:
	default:
		return fmt.Errorf("unknown %s %q (want sqlite, file or memory)", cfgKeyBackend, c.Backend)
	}
	if _, err := repository.CodecByName(c.Codec); err != nil {
		return err
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", cfgKeyTickInterval, c.TickInterval)
	}
	if c.AuthEnabled && strings.TrimSpace(c.SigningKey) == "" {
		return fmt.Errorf("%s is required when %s is true", cfgKeySigningKey, cfgKeyAuthEnabled)
	}
	return nil
}

func (c appConfig) serviceConfig() service.Config {
	return service.Config{
		Auth: service.AuthConfig{SigningKey: c.SigningKey, TokenTTL: c.TokenTTL},
	}
}
