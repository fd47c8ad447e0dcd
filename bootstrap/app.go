package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/neysla/component"
	"github.com/kbukum/neysla/config"
	"github.com/kbukum/neysla/httpclient"
	"github.com/kbukum/neysla/logger"
	"github.com/kbukum/neysla/observability"
	"github.com/kbukum/neysla/resource"
	"github.com/kbukum/neysla/version"
)

// App owns the runtime of one neysla invocation: the logger, the transport
// component, telemetry providers and the resource catalog built on top.
type App struct {
	Cfg        *config.Config
	Logger     *logger.Logger
	Components *component.Registry
	// Catalog is nil until the app has started.
	Catalog *resource.Catalog

	http            *httpclient.Component
	transport       httpclient.Transport
	shutdown        observability.ShutdownFunc
	gracefulTimeout time.Duration
	started         bool
}

// NewApp applies defaults to cfg, validates it and initializes logging. The
// HTTP transport component is registered but not started.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	app := &App{
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		transport:       o.transport,
		gracefulTimeout: o.gracefulTimeout,
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	logger.Register("resource", app.Logger.WithComponent("resource"))

	if app.transport == nil {
		app.http = httpclient.NewComponent(cfg.HTTP, httpclient.WithLogger(app.Logger))
		if err := app.Components.Register(app.http); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Start installs telemetry, starts every component and builds the catalog.
func (a *App) Start(ctx context.Context) error {
	if a.started {
		return nil
	}
	start := time.Now()

	shutdown, err := observability.Setup(ctx, a.Cfg.Observability, a.Cfg.Name, version.Version, a.Cfg.Environment)
	if err != nil {
		return fmt.Errorf("observability setup: %w", err)
	}
	a.shutdown = shutdown

	if err := a.Components.StartAll(ctx); err != nil {
		_ = a.shutdown(ctx)
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	transport := a.transport
	if transport == nil {
		transport = a.http.Transport()
	}
	catalog, err := resource.NewCatalog(a.Cfg.Catalog, transport)
	if err != nil {
		_ = a.stop()
		return err
	}
	a.Catalog = catalog
	a.started = true

	a.logSummary(time.Since(start))
	return nil
}

// ReadyCheck verifies that every registered component is healthy.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		detail := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			detail += "(" + h.Message + ")"
		}
		unhealthy = append(unhealthy, detail)
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// RunTask starts the app, runs task and shuts down afterwards. SIGINT and
// SIGTERM cancel the task context.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context, app *App) error) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx, a)
	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Shutdown stops components and flushes telemetry.
func (a *App) Shutdown() error {
	return a.stop()
}

func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			a.Logger.Error("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
		a.shutdown = nil
	}
	a.started = false
	a.Logger.Debug("application stopped")
	return shutdownErr
}

func (a *App) logSummary(elapsed time.Duration) {
	for _, d := range a.Components.Describe() {
		a.Logger.Debug("component ready", logger.Fields(
			logger.FieldComponent, d.Name,
			"type", d.Type,
			"details", d.Details,
		))
	}
	a.Logger.Debug("application started", logger.Fields(
		"resources", a.Catalog.Len(),
		logger.FieldDuration, elapsed.Milliseconds(),
	))
}
