// Package modules holds the framework's built-in container modules.
//
// Each module can be registered default-constructed through
// container.ModuleOf, in which case it builds what it binds from the
// container, or through the constructor functions here with a value already
// in hand.
package modules

import (
	"go.uber.org/zap"

	"github.com/km-arc/hhcontainer/framework/config"
	"github.com/km-arc/hhcontainer/framework/container"
	"github.com/km-arc/hhcontainer/framework/logging"
	"github.com/km-arc/hhcontainer/framework/metrics"
	"github.com/km-arc/hhcontainer/framework/routing"
)

// Identifiers bound by the built-in modules.
const (
	ConfigID  = "config"
	LoggerID  = "logger"
	MetricsID = "metrics"
	RouterID  = "router"
)

// ── ConfigModule ──────────────────────────────────────────────────────────────

// ConfigModule binds the application configuration.
//
// Bound identifiers:
//   - "config" → *config.Config (singleton)
type ConfigModule struct {
	// Config is bound as is when set; otherwise it is loaded from EnvFiles.
	Config   *config.Config
	EnvFiles []string
}

// Config returns a module type binding cfg.
func Config(cfg *config.Config) container.ModuleType {
	return func() container.Module { return &ConfigModule{Config: cfg} }
}

func (m *ConfigModule) Provide(c *container.Container) error {
	cfg, files := m.Config, m.EnvFiles
	c.Set(ConfigID, func(*container.Container) (any, error) {
		if cfg != nil {
			return cfg, nil
		}
		return config.Load(files...), nil
	}, container.Singleton)
	return nil
}

// ── LoggingModule ─────────────────────────────────────────────────────────────

// LoggingModule binds the application logger.
//
// Bound identifiers:
//   - "logger" → *zap.Logger (singleton)
//
// Without a preset Logger it is built from "config".
type LoggingModule struct {
	Logger *zap.Logger
}

// Logging returns a module type binding l.
func Logging(l *zap.Logger) container.ModuleType {
	return func() container.Module { return &LoggingModule{Logger: l} }
}

func (m *LoggingModule) Provide(c *container.Container) error {
	preset := m.Logger
	c.Set(LoggerID, func(c *container.Container) (any, error) {
		if preset != nil {
			return preset, nil
		}
		cfg, err := container.Resolve[*config.Config](c, ConfigID)
		if err != nil {
			return nil, err
		}
		return logging.New(cfg.Log)
	}, container.Singleton)
	return nil
}

// ── MetricsModule ─────────────────────────────────────────────────────────────

// MetricsModule binds the Prometheus collector.
//
// Bound identifiers:
//   - "metrics" → *metrics.Collector (singleton)
type MetricsModule struct {
	Collector *metrics.Collector
}

// Metrics returns a module type binding col.
func Metrics(col *metrics.Collector) container.ModuleType {
	return func() container.Module { return &MetricsModule{Collector: col} }
}

func (m *MetricsModule) Provide(c *container.Container) error {
	preset := m.Collector
	c.Set(MetricsID, func(c *container.Container) (any, error) {
		if preset != nil {
			return preset, nil
		}
		cfg, err := container.Resolve[*config.Config](c, ConfigID)
		if err != nil {
			return nil, err
		}
		return metrics.NewCollector(cfg.Metrics.Namespace), nil
	}, container.Singleton)
	return nil
}

// ── RoutingModule ─────────────────────────────────────────────────────────────

// RoutingModule binds the HTTP router.
//
// Bound identifiers:
//   - "router" → *routing.Router (singleton)
//
// The router logs with "logger" when bound, serves "metrics" at the
// configured path when metrics are enabled, and mounts the container
// inspection routes when App.Inspect is set.
type RoutingModule struct{}

func (RoutingModule) Provide(c *container.Container) error {
	c.Set(RouterID, func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, ConfigID)
		if err != nil {
			return nil, err
		}

		var logger *zap.Logger
		if c.Has(LoggerID) {
			if logger, err = container.Resolve[*zap.Logger](c, LoggerID); err != nil {
				return nil, err
			}
		}

		r := routing.New(logger)
		if cfg.Metrics.Enabled && c.Has(MetricsID) {
			col, err := container.Resolve[*metrics.Collector](c, MetricsID)
			if err != nil {
				return nil, err
			}
			r.Handle(cfg.Metrics.Path, col.Handler())
		}
		if cfg.App.Inspect {
			routing.Inspect(r, c)
		}
		return r, nil
	}, container.Singleton)
	return nil
}
