// Package app provides application initialization and lifecycle management
// for the agenda service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/rcmonumento/agenda-go/internal/backup"
	"github.com/rcmonumento/agenda-go/internal/buildinfo"
	"github.com/rcmonumento/agenda-go/internal/config"
	"github.com/rcmonumento/agenda-go/internal/data"
	"github.com/rcmonumento/agenda-go/internal/genai"
	"github.com/rcmonumento/agenda-go/internal/logger"
	"github.com/rcmonumento/agenda-go/internal/metrics"
	"github.com/rcmonumento/agenda-go/internal/planner"
	"github.com/rcmonumento/agenda-go/internal/ratelimit"
	"github.com/rcmonumento/agenda-go/internal/sentry"
	"github.com/rcmonumento/agenda-go/internal/storage"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg      *config.Config
	logger   *logger.Logger
	db       *storage.DB
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	planner  *planner.Planner
	ideas    genai.IdeasGenerator
	backups  *backup.Manager
	limiter  *ratelimit.PerKeyLimiter
	server   *http.Server
}

// Initialize creates and initializes a new application with all
// dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithShipping(cfg.LogLevel, cfg.BetterStackToken, cfg.BetterStackEndpoint)
	log = log.WithField("service", "agenda-go")

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.SentryEnvironment,
		Release:          buildinfo.Version,
		SampleRate:       cfg.SentrySampleRate,
		TracesSampleRate: cfg.SentryTracesSampleRate,
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed, error tracking disabled")
	} else if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error tracking enabled")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := storage.New(ctx, cfg.SQLitePath())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	if err := data.Seed(ctx, db, log); err != nil {
		return nil, fmt.Errorf("seed data: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	var ideas genai.IdeasGenerator
	if cfg.HasLLMProvider() {
		ideas, err = genai.NewIdeasGenerator(ctx, genai.FactoryConfig{
			GeminiAPIKey:     cfg.GeminiAPIKey,
			GroqAPIKey:       cfg.GroqAPIKey,
			GeminiModel:      cfg.GeminiModel,
			GroqModel:        cfg.GroqModel,
			PrimaryProvider:  cfg.LLMPrimaryProvider,
			FallbackProvider: cfg.LLMFallbackProvider,
			Retry:            genai.DefaultRetryConfig,
		})
		if err != nil {
			log.WithError(err).Warn("Ideas generator initialization failed, feature disabled")
			ideas = nil
		} else if ideas != nil {
			log.WithField("provider", ideas.Provider().String()).Info("Ideas generator enabled")
		}
	} else {
		log.Info("No LLM API key configured, ideas generator disabled")
	}

	pln := planner.New(db, ideas, m, log, cfg.Year)
	backups := backup.NewManager(db, cfg.BackupDir(), cfg.BackupRetention, log)

	var limiter *ratelimit.PerKeyLimiter
	if cfg.RateLimitBurst > 0 {
		limiter = ratelimit.NewPerKeyLimiter(ratelimit.PerKeyConfig{
			MaxTokens:     cfg.RateLimitBurst,
			RefillRate:    cfg.RateLimitRefillRate,
			CleanupPeriod: 5 * time.Minute,
		})
	}

	app := &Application{
		cfg:      cfg,
		logger:   log,
		db:       db,
		metrics:  m,
		registry: registry,
		planner:  pln,
		ideas:    ideas,
		backups:  backups,
		limiter:  limiter,
	}

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log, m))

	app.registerRoutes(router)

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("Initialization complete")
	return app, nil
}

// Run starts the HTTP server and background jobs, then blocks until a
// shutdown signal arrives. Background jobs stop before resources close.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs, jobsCtx := errgroup.WithContext(ctx)
	a.startBackgroundJobs(jobsCtx, jobs)

	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Error("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")

	cancel()
	if err := jobs.Wait(); err != nil {
		a.logger.WithError(err).Warn("Background job reported error during shutdown")
	}
	a.logger.Info("All background jobs stopped")

	return a.shutdown()
}

// startBackgroundJobs launches the periodic snapshot job and the content
// gauge updater.
func (a *Application) startBackgroundJobs(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		a.backupLoop(ctx)
		return nil
	})
	g.Go(func() error {
		a.contentMetricsLoop(ctx)
		return nil
	})
}

// backupLoop writes one snapshot on startup, then on the configured
// interval. A zero interval disables the job entirely.
func (a *Application) backupLoop(ctx context.Context) {
	if a.cfg.BackupInterval <= 0 {
		a.logger.Info("Backup job disabled")
		return
	}

	a.runBackup(ctx)

	ticker := time.NewTicker(a.cfg.BackupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runBackup(ctx)
		}
	}
}

func (a *Application) runBackup(ctx context.Context) {
	start := time.Now()
	path, err := a.backups.Run(ctx)
	status := "success"
	if err != nil {
		status = "error"
		a.logger.WithError(err).Error("Snapshot backup failed")
		sentry.CaptureException(err)
	} else {
		a.logger.WithField("path", path).Debug("Snapshot backup written")
	}
	a.metrics.BackupsTotal.WithLabelValues(status).Inc()
	a.metrics.BackupDuration.Observe(time.Since(start).Seconds())
}

// contentMetricsLoop refreshes the stored content gauge every 5 minutes.
func (a *Application) contentMetricsLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	a.recordContentMetrics(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.recordContentMetrics(ctx)
		}
	}
}

func (a *Application) recordContentMetrics(ctx context.Context) {
	programs, err := a.db.GetAllPrograms(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Failed to count content entries")
		return
	}
	total := 0
	for _, p := range programs {
		content, err := a.db.GetProgramContent(ctx, p.ID)
		if err != nil {
			continue
		}
		total += len(content)
	}
	a.metrics.ContentEntriesActive.Set(float64(total))
}

// shutdown stops the HTTP server, then closes resources in dependency
// order.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	if a.limiter != nil {
		a.limiter.Stop()
	}

	if a.ideas != nil {
		if err := a.ideas.Close(); err != nil {
			a.logger.WithError(err).WithField("component", "ideas_generator").Error("Component close error")
		}
	}

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "database").Error("Component close error")
	}

	sentry.Flush(2 * time.Second)

	a.logger.Info("Shutdown complete")
	return nil
}
