package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig controls the long-running server started by `reel serve`.
type ServerConfig struct {
	Addr         string        `env:"REEL_ADDR"          envDefault:":8080"`
	TickInterval time.Duration `env:"REEL_TICK_INTERVAL" envDefault:"33ms"`
	LogLevel     string        `env:"REEL_LOG_LEVEL"     envDefault:"info"`
	Metrics      bool          `env:"REEL_METRICS"       envDefault:"true"`

	RedisAddr     string `env:"REEL_REDIS_ADDR"`
	RedisPassword string `env:"REEL_REDIS_PASSWORD"`
	RedisDB       int    `env:"REEL_REDIS_DB"       envDefault:"0"`
	RedisPrefix   string `env:"REEL_REDIS_PREFIX"   envDefault:"reel:"`
	// RedisTTL expires published timelines. Zero keeps them until deleted.
	RedisTTL time.Duration `env:"REEL_REDIS_TTL"`

	LockTTL time.Duration `env:"REEL_LOCK_TTL" envDefault:"30s"`

	PresetsDir   string `env:"REEL_PRESETS_DIR"`
	CountersFile string `env:"REEL_COUNTERS_FILE"`
}

// LoadServerConfig reads the server configuration from the environment.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickInterval <= 0 {
		return ServerConfig{}, fmt.Errorf("REEL_TICK_INTERVAL must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}
