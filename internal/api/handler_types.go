package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/emerald/internal/services"
	"go.uber.org/zap"
)

var errMissingDependency = errors.New("api handler dependency missing")

// NamespaceClearer removes every entry the application owns.
type NamespaceClearer interface {
	Clear() error
}

type Dependencies struct {
	Tracker  *services.TrackerService
	Settings *services.SettingsService
	Health   *services.HealthLogService
	Symptoms *services.SymptomService
	Stats    *services.StatsService
	Store    NamespaceClearer
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

type Handler struct {
	tracker  *services.TrackerService
	settings *services.SettingsService
	health   *services.HealthLogService
	symptoms *services.SymptomService
	stats    *services.StatsService
	store    NamespaceClearer
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Tracker == nil || deps.Settings == nil || deps.Health == nil || deps.Symptoms == nil || deps.Stats == nil || deps.Store == nil {
		return nil, errMissingDependency
	}
	handler := &Handler{
		tracker:  deps.Tracker,
		settings: deps.Settings,
		health:   deps.Health,
		symptoms: deps.Symptoms,
		stats:    deps.Stats,
		store:    deps.Store,
		location: deps.Location,
		logger:   deps.Logger,
		now:      deps.Now,
	}
	if handler.location == nil {
		handler.location = time.UTC
	}
	if handler.logger == nil {
		handler.logger = zap.NewNop()
	}
	if handler.now == nil {
		handler.now = time.Now
	}
	return handler, nil
}
