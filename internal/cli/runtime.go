package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/emerald/internal/api"
	"github.com/terraincognita07/emerald/internal/config"
	"github.com/terraincognita07/emerald/internal/db"
	"github.com/terraincognita07/emerald/internal/services"
	"github.com/terraincognita07/emerald/internal/storage"
	"go.uber.org/zap"
)

// Runtime is the storage stack and services one command works against.
type Runtime struct {
	Config   *config.Config
	Logger   *zap.Logger
	Location *time.Location
	Store    *storage.Store
	Settings *services.SettingsService
	Symptoms *services.SymptomService
	Health   *services.HealthLogService
	Tracker  *services.TrackerService
	Stats    *services.StatsService

	closers []func() error
}

// RuntimeOpener builds a Runtime for the configured backend.
type RuntimeOpener func(cfg *config.Config, logger *zap.Logger) (*Runtime, error)

func OpenRuntime(cfg *config.Config, logger *zap.Logger) (*Runtime, error) {
	location, err := cfg.Location()
	if err != nil {
		logger.Warn("falling back to UTC", zap.Error(err))
	}

	medium, closer, err := openMedium(cfg, logger)
	if err != nil {
		return nil, err
	}
	rt, err := NewRuntime(cfg, logger, location, medium)
	if err != nil {
		if closer != nil {
			_ = closer()
		}
		return nil, err
	}
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}
	return rt, nil
}

// NewRuntime wires the store and services over medium.
func NewRuntime(cfg *config.Config, logger *zap.Logger, location *time.Location, medium storage.Medium) (*Runtime, error) {
	store, err := storage.New(medium, storage.Options{
		Prefix: cfg.StoragePrefix,
		Key:    cfg.EncryptionKey,
		Logger: logger.Named("storage"),
	})
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	options := services.StoreOptions{
		Encrypt:  cfg.EncryptLogs,
		Location: location,
		Logger:   logger.Named("services"),
	}
	settings := services.NewSettingsService(store, options)
	symptoms := services.NewSymptomService(store, options)
	tracker := services.NewTrackerService(store, settings, symptoms, options)

	return &Runtime{
		Config:   cfg,
		Logger:   logger,
		Location: location,
		Store:    store,
		Settings: settings,
		Symptoms: symptoms,
		Health:   services.NewHealthLogService(store, options),
		Tracker:  tracker,
		Stats:    services.NewStatsService(tracker, symptoms),
	}, nil
}

func openMedium(cfg *config.Config, logger *zap.Logger) (storage.Medium, func() error, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		database, err := db.OpenSQLite(cfg.DBPath, logger.Named("db"))
		if err != nil {
			return nil, nil, fmt.Errorf("database init failed: %w", err)
		}
		sqlDB, err := database.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("database handle: %w", err)
		}
		return db.NewKVRepository(database), sqlDB.Close, nil
	case config.BackendRedis:
		medium, err := storage.OpenRedisMedium(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis init failed: %w", err)
		}
		return medium, medium.Close, nil
	case config.BackendMemory:
		logger.Warn("memory backend selected, data is lost on exit")
		return storage.NewMemoryMedium(), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w %q", config.ErrUnknownBackend, cfg.StorageBackend)
	}
}

// APIDependencies exposes the runtime to the HTTP handler.
func (rt *Runtime) APIDependencies(now func() time.Time) api.Dependencies {
	return api.Dependencies{
		Tracker:  rt.Tracker,
		Settings: rt.Settings,
		Health:   rt.Health,
		Symptoms: rt.Symptoms,
		Stats:    rt.Stats,
		Store:    rt.Store,
		Location: rt.Location,
		Logger:   rt.Logger.Named("api"),
		Now:      now,
	}
}

func (rt *Runtime) Close() error {
	var errs []error
	for _, closer := range rt.closers {
		errs = append(errs, closer())
	}
	rt.closers = nil
	return errors.Join(errs...)
}
