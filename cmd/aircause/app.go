package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"aircause/backend/pkg/config"
	"aircause/backend/pkg/providerfactory"
	"aircause/backend/pkg/providers"
	"aircause/backend/pkg/server"
	"aircause/backend/pkg/telemetry/health"
	"aircause/backend/pkg/telemetry/logging"
	"aircause/backend/pkg/telemetry/metrics"
	"aircause/backend/pkg/telemetry/tracing"
)

// providerCheckName is the readiness check backed by the provider.
const providerCheckName = "provider"

// app owns every long-lived component of a running backend.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	provider providers.Provider
	prober   *providers.Prober
	health   *health.Checker
	server   *server.Server
	watcher  *config.Watcher

	stopWatch context.CancelFunc
}

func newApp(cfg *config.Config, logger *logging.Logger, version health.VersionInfo) (*app, error) {
	a := &app{cfg: cfg, logger: logger}
	log := logger.Slog()

	if cfg.Telemetry.Metrics.Enabled {
		a.metrics = metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.tracer = tracer

	providerName := cfg.Provider.Name
	provider, err := providerfactory.FromConfig(cfg.Provider, func(retry int, cause error) {
		a.metrics.RecordProviderRetry(providerName)
	})
	if err != nil {
		_ = tracer.Shutdown(context.Background())
		return nil, err
	}
	a.provider = provider

	a.health = health.New(cfg.Telemetry.Health.CheckTimeout)
	if cfg.Provider.ProbeSchedule != "" {
		a.prober, err = providers.NewProber(provider, cfg.Provider.ProbeSchedule, cfg.Provider.Timeout, log,
			func(r providers.ProbeResult) {
				a.metrics.UpdateProviderHealth(providerName, r.Err == nil)
			})
		if err != nil {
			a.close(context.Background())
			return nil, err
		}
		a.health.RegisterCheck(providerCheckName, a.prober.Status)
	} else {
		// Without probing, readiness follows the passive health tracked from traffic.
		a.health.RegisterOptionalCheck(providerCheckName, func(context.Context) error {
			if !provider.IsHealthy() {
				return errors.New("provider marked unhealthy after consecutive failures")
			}
			return nil
		})
	}

	a.server, err = server.NewServer(cfg, server.Dependencies{
		Provider: provider,
		Metrics:  a.metrics,
		Tracer:   tracer,
		Health:   a.health,
		Version:  version,
		Logger:   log,
	})
	if err != nil {
		a.close(context.Background())
		return nil, err
	}

	log.Info("backend initialized",
		"provider", providerName,
		"model", cfg.Provider.Model,
		"metrics_enabled", a.metrics != nil,
		"tracing_enabled", tracer.Enabled(),
		"probe_schedule", cfg.Provider.ProbeSchedule,
	)

	return a, nil
}

// watchConfig reloads the log level when the config file changes.
// When applyLevel is false the file's level is ignored, so a --log-level
// flag keeps precedence. The watcher stops when ctx is cancelled or the
// app is closed, whichever comes first.
func (a *app) watchConfig(ctx context.Context, path string, applyLevel bool) {
	log := a.logger.Slog()

	w, err := config.NewWatcher(path, log)
	if err != nil {
		log.Warn("config hot reload disabled", "path", path, "error", err)
		return
	}
	ctx, a.stopWatch = context.WithCancel(ctx)
	a.watcher = w

	go func() {
		err := w.Watch(ctx, func(cfg *config.Config) {
			if !applyLevel {
				log.Info("configuration reloaded, log level pinned by flag")
				return
			}
			if err := a.logger.SetLevel(cfg.Telemetry.Logging.Level); err != nil {
				log.Warn("ignoring reloaded log level", "level", cfg.Telemetry.Logging.Level, "error", err)
				return
			}
			log.Info("configuration reloaded", "log_level", cfg.Telemetry.Logging.Level)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("config watcher stopped", "error", err)
		}
	}()
}

// run serves until ctx is cancelled, then releases every component.
func (a *app) run(ctx context.Context) error {
	if a.prober != nil {
		a.prober.Start()
		go a.prober.RunOnce(ctx)
	}

	err := a.server.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	a.close(shutdownCtx)

	return err
}

func (a *app) close(ctx context.Context) {
	log := a.logger.Slog()

	if a.prober != nil {
		a.prober.Stop(ctx)
	}
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.watcher != nil {
		select {
		case <-a.watcher.Done():
		case <-ctx.Done():
		}
	}
	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			log.Warn("failed to close provider", "error", err)
		}
	}
	if err := a.tracer.Shutdown(ctx); err != nil {
		log.Warn("failed to flush traces", "error", err)
	}
}
