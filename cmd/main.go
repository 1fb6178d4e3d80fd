package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/crosstune/internal/adapters/http/api"
	service "github.com/okian/crosstune/internal/app"
	"github.com/okian/crosstune/internal/config"
	"github.com/okian/crosstune/internal/domain/recommend"
	"github.com/okian/crosstune/pkg/logger"
	"github.com/okian/crosstune/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	writeTimeoutSlack         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	if err := logger.Init(); err != nil {
		// logger isn't available yet
		return errors.New("failed to initialize logging: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return errors.New("failed to load config: " + err.Error())
	}
	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		return errors.New("failed to set log format: " + err.Error())
	}

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := newService(cfg, log)
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)

	srv := newHTTPServer(cfg, svc)
	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// The catalog loads while /readyz reports loading. A failed load stops
	// the process rather than serving an empty catalog.
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "catalog load failed", logger.Error(err))
		shutdown(ctx, srv, log)
		return errors.New("failed to start service: " + err.Error())
	}

	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok && err != nil {
			return errors.New("HTTP server failed: " + err.Error())
		}
	}

	log.Info(ctx, "shutting down server...")
	shutdown(ctx, srv, log)
	log.Info(ctx, "server stopped")
	return nil
}

func newService(cfg *config.Config, log logger.Logger) *service.Service {
	return service.New(
		service.WithLogger(log),
		service.WithMoviesPath(cfg.MoviesPath),
		service.WithTracksPath(cfg.TracksPath),
		service.WithVocabularyPath(cfg.VocabularyPath),
		service.WithStrictTitles(cfg.StrictTitles),
		service.WithVectorizeWorkers(cfg.VectorizeWorkers),
		service.WithBounds(recommend.Bounds{
			MinSelection: cfg.MinSelection,
			MaxSelection: cfg.MaxSelection,
			MinK:         cfg.MinK,
			MaxK:         cfg.MaxK,
		}),
		service.WithSampleSeed(cfg.SampleSeed),
		service.WithSampleSize(cfg.SampleSize),
	)
}

func newHTTPServer(cfg *config.Config, svc *service.Service) *http.Server {
	requestTimeout := time.Duration(cfg.RequestTimeoutMS) * time.Millisecond
	apiServer := api.NewServer(svc, svc, svc.Ready,
		api.WithRateLimit(cfg.RateLimitPerMinute),
		api.WithRequestTimeout(requestTimeout),
		api.WithDefaultSampleSize(cfg.SampleSize),
	)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Router(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      requestTimeout + writeTimeoutSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func shutdown(ctx context.Context, srv *http.Server, log logger.Logger) {
	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
