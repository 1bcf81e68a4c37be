package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/hhcontainer/framework/config"
	"github.com/km-arc/hhcontainer/framework/container"
	"github.com/km-arc/hhcontainer/framework/logging"
	"github.com/km-arc/hhcontainer/framework/metrics"
	"github.com/km-arc/hhcontainer/framework/modules"
	"github.com/km-arc/hhcontainer/framework/routing"
)

// Application is the top-level application container.
// It embeds the Container so user code can call app.Set(), app.Register()
// and app.Get() directly.
type Application struct {
	*container.Container

	types  *container.TypeRegistry
	config *config.Config
	logger *zap.Logger
}

// New loads configuration, builds the logger and metrics collector, and
// registers the framework modules (config, logging, metrics, routing).
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	types := container.NewTypeRegistry()
	opts := []container.Option{
		container.WithLogger(logger.Named("container")),
		container.WithTypes(types),
	}
	var col *metrics.Collector
	if cfg.Metrics.Enabled {
		col = metrics.NewCollector(cfg.Metrics.Namespace)
		opts = append(opts, container.WithObserver(col))
	}

	c := container.New(opts...)
	c.Register(modules.Config(cfg))
	c.Register(modules.Logging(logger))
	if col != nil {
		c.Register(modules.Metrics(col))
	}
	c.Register(container.ModuleOf[modules.RoutingModule]())

	return &Application{Container: c, types: types, config: cfg, logger: logger}, nil
}

// Define describes a type the container may build without a binding.
func (a *Application) Define(id string, constructor any, params ...string) error {
	return a.types.Define(id, constructor, params...)
}

// Boot applies every registered module and locks the container. Calling Boot
// on a booted application does nothing.
func (a *Application) Boot() error {
	if a.Locked() {
		return nil
	}
	return a.LockModule()
}

// Config returns the configuration the application was created with.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Router resolves *routing.Router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, modules.RouterID)
}

// Handler boots the application if needed and returns the router.
func (a *Application) Handler() (http.Handler, error) {
	if err := a.Boot(); err != nil {
		return nil, err
	}
	return a.Router()
}

// Run boots the application and serves HTTP on App.Port until SIGINT or
// SIGTERM.
func (a *Application) Run() error {
	h, err := a.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.config.App.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening",
			zap.String("app", a.config.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", a.config.App.Env),
		)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	_ = a.logger.Sync()
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
