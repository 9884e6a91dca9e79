// Package factory wires the application together.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/cipherplay/cipherrps/internal/dependencies/clock"
	"github.com/cipherplay/cipherrps/internal/dependencies/entropy"
	"github.com/cipherplay/cipherrps/internal/dependencies/random"
	"github.com/cipherplay/cipherrps/internal/events"
	"github.com/cipherplay/cipherrps/internal/fhe/enclave"
	"github.com/cipherplay/cipherrps/internal/services/game"
	"github.com/cipherplay/cipherrps/internal/services/house"
	"github.com/cipherplay/cipherrps/internal/services/identity"
	"github.com/cipherplay/cipherrps/internal/services/outcome"
	"github.com/cipherplay/cipherrps/internal/storage"
	"github.com/cipherplay/cipherrps/internal/storage/memory"
	redisstorage "github.com/cipherplay/cipherrps/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Beacon entropy.Beacon

	// Encryption runtime
	Scheme *enclave.Scheme

	// Services
	Encoder         *outcome.Encoder
	HouseService    *house.Service
	IdentityService *identity.Service
	GameController  *game.Controller
	EventsHub       *events.Hub
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
	// SecureHouseEntropy selects a crypto-backed entropy source for the
	// house move instead of the default clock-derived one
	SecureHouseEntropy bool
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
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	scheme, err := enclave.New()
	if err != nil {
		return nil, err
	}

	clk := clock.New()
	rnd := random.New()

	var beacon entropy.Beacon
	if cfg.SecureHouseEntropy {
		beacon = entropy.NewSecure()
	} else {
		beacon = entropy.New()
	}

	return newWithDependencies(store, scheme, clk, rnd, beacon, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	scheme *enclave.Scheme,
	clk clock.Clock,
	rnd random.Random,
	beacon entropy.Beacon,
	logger *slog.Logger,
) *App {
	encoder := outcome.New(scheme, logger)
	houseService := house.New(scheme, clk, beacon, logger)
	identityService := identity.New(store, clk, rnd, logger)
	eventsHub := events.NewHub(logger)
	gameController := game.NewController(store, scheme, encoder, houseService, clk, eventsHub, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Beacon:          beacon,
		Scheme:          scheme,
		Encoder:         encoder,
		HouseService:    houseService,
		IdentityService: identityService,
		GameController:  gameController,
		EventsHub:       eventsHub,
	}
}
