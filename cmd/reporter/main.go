package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delphi/internal/adapters/config"
	"delphi/internal/adapters/errors/noop"
	"delphi/internal/adapters/errors/sentry"
	"delphi/internal/adapters/postgres"
	"delphi/internal/adapters/redis"
	"delphi/internal/adapters/telegram"
	"delphi/internal/metrics"
	repository "delphi/internal/repository/postgres"
	analyticssvc "delphi/internal/services/analytics"
	"delphi/internal/services/report"
	"delphi/pkg/errors"
	"delphi/pkg/logger"
)

func main() {
	interval := flag.Duration("interval", 0, "Send a digest every interval; 0 sends once and exits")
	printOnly := flag.Bool("print", false, "Print the digest to stdout instead of sending it")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s reporter in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	// Initialize metrics
	metrics.Init()
	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Addr, log)
	}

	// Connect to PostgreSQL
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	// Build the analytics engine
	analyticsRepo := repository.NewAnalyticsRepository(pgClient.DB())
	tokenRepo := repository.NewTokenRepository(pgClient.DB())
	service := analyticssvc.NewService(analyticsRepo, tokenRepo, log)

	engine := buildEngine(cfg, service, log)

	notifier := buildNotifier(cfg, *printOnly, log)

	reporter := report.NewService(engine, notifier, report.Config{
		DaysBack:    cfg.Analytics.ReportDaysBack,
		TopTokens:   cfg.Analytics.ReportTopTokens,
		MinMentions: cfg.Analytics.ReportMinMentions,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := reporter.Run(ctx); err != nil {
		_ = errorTracker.CaptureError(ctx, err, map[string]string{"component": "reporter"})
		log.Fatalf("Failed to deliver digest: %v", err)
	}

	if *interval <= 0 {
		log.Info("Digest sent, exiting")
		return
	}

	log.Infow("Running on interval", "interval", interval.String())
	runLoop(ctx, cancel, reporter, *interval, errorTracker, log)
}

// buildEngine wires the result cache in front of the service when redis is
// configured, and falls back to the plain service otherwise
func buildEngine(cfg *config.Config, service *analyticssvc.Service, log *logger.Logger) report.Engine {
	if !cfg.Analytics.CacheEnabled || cfg.Redis.Host == "" {
		log.Info("Result cache disabled")
		return service
	}

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Warnf("Failed to connect to Redis, running uncached: %v", err)
		return service
	}

	log.Info("Result cache enabled")
	return analyticssvc.NewCachedService(service, analyticssvc.CacheConfig{
		Enabled: true,
		TTL:     cfg.Analytics.CacheTTL,
	}, redisClient)
}

// buildNotifier returns the telegram notifier, or a stdout printer in
// -print mode
func buildNotifier(cfg *config.Config, printOnly bool, log *logger.Logger) report.Notifier {
	if printOnly {
		return stdoutNotifier{}
	}

	notifier, err := telegram.NewNotifier(telegram.Config{
		Token:  cfg.Telegram.BotToken,
		ChatID: cfg.Telegram.ChatID,
	})
	if err != nil {
		log.Fatalf("Failed to create telegram notifier: %v", err)
	}
	return notifier
}

// stdoutNotifier prints the digest instead of sending it
type stdoutNotifier struct{}

func (stdoutNotifier) Send(_ context.Context, text string) error {
	_, err := os.Stdout.WriteString(text + "\n")
	return err
}

// runLoop re-sends the digest on a ticker until a shutdown signal arrives
func runLoop(ctx context.Context, cancel context.CancelFunc, reporter *report.Service, interval time.Duration, tracker errors.Tracker, log *logger.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := reporter.Run(ctx); err != nil {
				_ = tracker.CaptureError(ctx, err, map[string]string{"component": "reporter"})
				log.Errorw("Failed to deliver digest", "error", err)
			}
		case sig := <-sigChan:
			log.Infof("Received signal %v, shutting down", sig)
			cancel()
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 2*time.Second)
			_ = tracker.Flush(flushCtx)
			flushCancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// serveMetrics exposes the prometheus endpoint
func serveMetrics(addr string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	log.Infow("Metrics server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Errorw("Metrics server stopped", "error", err)
	}
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}
