package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/config"
	"github.com/aretw0/reel/internal/logging"
	httpadapter "github.com/aretw0/reel/pkg/adapters/http"
	"github.com/aretw0/reel/pkg/adapters/memory"
	redisadapter "github.com/aretw0/reel/pkg/adapters/redis"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/observability"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/aretw0/reel/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// timelineStore is what the server needs from a sink: storage plus live fan-out.
type timelineStore interface {
	ports.TimelineSink
	ports.TimelineSubscriber
}

// App is a fully wired server: hosted counters, the HTTP API and the frame loop.
type App struct {
	Manager *session.Manager
	API     *httpadapter.Server
	Handler http.Handler

	cfg     config.ServerConfig
	logger  *slog.Logger
	closers []io.Closer
}

// NewApp wires the server described by cfg. Metrics are registered on reg when enabled.
func NewApp(ctx context.Context, cfg config.ServerConfig, logger *slog.Logger, reg *prometheus.Registry) (*App, error) {
	app := &App{cfg: cfg, logger: logger}

	// 1. Timeline storage and locking
	var store timelineStore = memory.NewSink()
	managerOpts := []session.Option{session.WithLogger(logger), session.WithLockTTL(cfg.LockTTL)}
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		store = redisadapter.NewFromClient(client,
			redisadapter.WithPrefix(cfg.RedisPrefix),
			redisadapter.WithTTL(cfg.RedisTTL),
		)
		managerOpts = append(managerOpts, session.WithLocker(redisadapter.NewLocker(client, cfg.RedisPrefix)))
		app.closers = append(app.closers, client)
		logger.Info("Using redis", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
	}
	managerOpts = append(managerOpts, session.WithSink(store))

	// 2. Hooks
	hooks := []domain.LifecycleHooks{logging.DebugHooks(logger)}
	var metricsHandler http.Handler
	if cfg.Metrics && reg != nil {
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			app.Close()
			return nil, err
		}
		hooks = append(hooks, metrics.Hooks())
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
	managerOpts = append(managerOpts, session.WithCounterOptions(reel.WithLifecycleHooks(observability.ChainHooks(hooks...))))
	app.Manager = session.NewManager(managerOpts...)

	// 3. Presets and preloaded counters
	apiOpts := []httpadapter.Option{httpadapter.WithLogger(logger), httpadapter.WithSubscriber(store)}
	var presets ports.PresetSource
	if cfg.PresetsDir != "" {
		src, err := CounterOptions{PresetsDir: cfg.PresetsDir}.presetSource()
		if err != nil {
			app.Close()
			return nil, err
		}
		presets = src
		apiOpts = append(apiOpts, httpadapter.WithPresets(presets))
	}
	if cfg.CountersFile != "" {
		if err := app.preload(ctx, presets); err != nil {
			app.Close()
			return nil, err
		}
	}

	// 4. Routes
	app.API = httpadapter.New(app.Manager, apiOpts...)
	r := chi.NewRouter()
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}
	r.Mount("/", app.API.Handler())
	app.Handler = r

	return app, nil
}

// preload creates every counter declared in the counters file.
func (a *App) preload(ctx context.Context, presets ports.PresetSource) error {
	specs, err := config.LoadCounters(a.cfg.CountersFile)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		var preset *domain.Preset
		if spec.Preset != "" {
			if preset, err = getPreset(ctx, presets, spec.Preset); err != nil {
				return fmt.Errorf("counter %s: %w", spec.ID, err)
			}
		}
		opts, err := spec.Resolve(preset)
		if err != nil {
			return err
		}
		if _, err := a.Manager.Put(ctx, spec.ID, opts); err != nil {
			return fmt.Errorf("counter %s: %w", spec.ID, err)
		}
		a.logger.Info("Counter loaded", "counter", spec.ID)
	}
	return nil
}

// TickLoop advances every running counter on the configured interval and streams the frames.
func (a *App) TickLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Step(ctx)
		}
	}
}

// Step runs a single iteration of the frame loop.
func (a *App) Step(ctx context.Context) {
	if frames := a.Manager.TickAll(ctx); len(frames) > 0 {
		a.API.PublishFrames(frames)
	}
}

// Close releases external connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Serve runs the HTTP server until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, cfg config.ServerConfig) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(level)

	app, err := NewApp(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer app.Close()

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()
	go app.TickLoop(loopCtx)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: app.Handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Reel server listening", "addr", cfg.Addr, "tick", cfg.TickInterval)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		logger.Info("Reel server stopped gracefully")
		return nil
	}
}
