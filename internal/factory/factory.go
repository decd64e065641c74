package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jcaldw/trickortreth/internal/dependencies/clock"
	"github.com/jcaldw/trickortreth/internal/dependencies/random"
	"github.com/jcaldw/trickortreth/internal/doorbell"
	"github.com/jcaldw/trickortreth/internal/services/player"
	"github.com/jcaldw/trickortreth/internal/services/queue"
	"github.com/jcaldw/trickortreth/internal/services/roster"
	"github.com/jcaldw/trickortreth/internal/services/visit"
	"github.com/jcaldw/trickortreth/internal/storage"
	"github.com/jcaldw/trickortreth/internal/storage/memory"
	redisstorage "github.com/jcaldw/trickortreth/internal/storage/redis"
	sqlitestorage "github.com/jcaldw/trickortreth/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSqlite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	VisitController  *visit.Controller
	QueueManager     *queue.Manager
	RosterService    *roster.Service
	PlayerService    *player.Service
	DoorbellRegistry *doorbell.Registry
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SqlitePath is the database file path (required if StorageType is "sqlite")
	SqlitePath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
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
	case StorageTypeSqlite:
		if cfg.SqlitePath == "" {
			return nil, errors.New("SqlitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(cfg.SqlitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	visitController := visit.NewController(store, clk, logger)
	queueManager := queue.NewManager(visitController, logger)
	rosterService := roster.NewService(rnd, logger)
	playerService := player.NewService(store, clk, logger)
	doorbellRegistry := doorbell.NewRegistry(logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		VisitController:  visitController,
		QueueManager:     queueManager,
		RosterService:    rosterService,
		PlayerService:    playerService,
		DoorbellRegistry: doorbellRegistry,
	}
}
