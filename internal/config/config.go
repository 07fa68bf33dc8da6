// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the full server configuration
type Config struct {
	Host string `env:"ROOMSERVER_HOST"`
	Port int    `env:"ROOMSERVER_PORT" envDefault:"8080"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"ROOMSERVER_STORAGE" envDefault:"memory"`

	RedisURL          string        `env:"ROOMSERVER_REDIS_URL" envDefault:"redis://localhost:6379"`
	RedisPoolSize     int           `env:"ROOMSERVER_REDIS_POOL_SIZE" envDefault:"10"`
	RedisMinIdleConns int           `env:"ROOMSERVER_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	RoomTTL           time.Duration `env:"ROOMSERVER_ROOM_TTL" envDefault:"24h"`

	DispatchTimeout time.Duration `env:"ROOMSERVER_DISPATCH_TIMEOUT" envDefault:"5s"`

	ReadTimeout     time.Duration `env:"ROOMSERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"ROOMSERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"ROOMSERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
