package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/partybox-games/roomserver/internal/dependencies/clock"
	"github.com/partybox-games/roomserver/internal/dependencies/random"
	"github.com/partybox-games/roomserver/internal/gamedef"
	"github.com/partybox-games/roomserver/internal/games/venture"
	"github.com/partybox-games/roomserver/internal/services/dispatch"
	"github.com/partybox-games/roomserver/internal/services/room"
	"github.com/partybox-games/roomserver/internal/storage"
	"github.com/partybox-games/roomserver/internal/storage/memory"
	redisstorage "github.com/partybox-games/roomserver/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.RoomStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Engine
	Registry       *gamedef.Registry
	Dispatcher     *dispatch.Dispatcher
	RoomController *room.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.RoomStore
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.RoomStore, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	registry := gamedef.NewRegistry()
	registry.Register(venture.New())

	dispatcher := dispatch.NewDispatcher(store, registry, clk, rnd, logger)
	roomController := room.NewController(store, dispatcher, registry, clk, rnd, logger)

	return &App{
		Store:          store,
		Clock:          clk,
		Random:         rnd,
		Registry:       registry,
		Dispatcher:     dispatcher,
		RoomController: roomController,
	}
}
