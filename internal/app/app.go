// Package app parses the subcommand, wires the dependencies and runs
// the selected mode.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/santiago/autovidriera/internal/catalog"
	"github.com/santiago/autovidriera/internal/config"
	"github.com/santiago/autovidriera/internal/feed"
	"github.com/santiago/autovidriera/internal/handler"
	"github.com/santiago/autovidriera/internal/logger"
	"github.com/santiago/autovidriera/internal/media"
	"github.com/santiago/autovidriera/internal/metrics"
	"github.com/santiago/autovidriera/internal/middleware"
	"github.com/santiago/autovidriera/internal/security"
	"github.com/santiago/autovidriera/internal/storage"
)

// Init loads the configuration from the environment and sets up JSON
// structured logging. When a writer is given, logs go there.
func Init(w io.Writer) (*config.Config, error) {
	// Logging first, so config failures are already structured.
	logger.SetupDefault(w)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run is the application entry point. It resolves the subcommand and
// starts the corresponding mode. Pass os.Args[1:] as args.
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck skips full initialization; it only needs the port.
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("feed_url", cfg.FeedCSVURL),
	)

	switch cmd {
	case CommandLoad:
		return runLoad(cfg, w)
	case CommandServe:
		return runServe(cfg)
	default:
		return runServe(cfg)
	}
}

// buildCatalogService wires the full load pipeline: outbound guard,
// storage client, media resolver, feed fetcher and normalizer, and the
// catalog service on top.
func buildCatalogService(cfg *config.Config, collector *metrics.Collector) (*catalog.Service, error) {
	guard := security.NewOutboundGuard()

	// Both outbound targets are validated up front; a misconfigured
	// URL should fail the start, not the first load.
	if err := guard.ValidateURL(cfg.FeedCSVURL); err != nil {
		return nil, fmt.Errorf("feed URL rejected: %w", err)
	}
	if err := guard.ValidateURL(cfg.StorageURL); err != nil {
		return nil, fmt.Errorf("storage URL rejected: %w", err)
	}

	store := storage.NewClient(
		cfg.StorageURL, cfg.StorageBucket, cfg.StorageAnonKey,
		guard.NewSafeClient(cfg.FetchTimeout), cfg.MediaListLimit,
	)
	var mediaMetrics media.MetricsRecorder
	if collector != nil {
		mediaMetrics = collector
	}
	resolver := media.NewResolver(store, cfg.MediaPolicy, mediaMetrics, slog.Default())

	fetcher := feed.NewFetcher(guard, cfg.FeedCSVURL, cfg.FetchTimeout, cfg.FetchMaxSize)
	normalizer := feed.NewNormalizer(resolver, feed.DefaultAliases(), cfg.ResolveMaxConcurrent, slog.Default())

	var recorder catalog.MetricsRecorder
	if collector != nil {
		recorder = collector
	}

	return catalog.NewService(
		fetcher,
		&normalizerAdapter{inner: normalizer},
		catalog.NewSanitizer(),
		catalog.NewStore(),
		recorder,
		slog.Default(),
	), nil
}

// runServe starts the API server: wires all dependencies, performs the
// initial catalog load and serves HTTP until SIGINT or SIGTERM, then
// shuts down gracefully.
func runServe(cfg *config.Config) error {
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	service, err := buildCatalogService(cfg, collector)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initial load. A feed outage at boot is not fatal: the server
	// comes up with an empty catalog and the feed can recover later.
	if snap, err := service.Refresh(ctx); err != nil {
		slog.Error("initial catalog load failed",
			slog.String("error", err.Error()),
		)
	} else {
		slog.Info("initial catalog load completed",
			slog.Int("vehicle_count", len(snap.Vehicles)),
		)
	}

	if cfg.RefreshInterval > 0 {
		go service.StartPeriodicRefresh(ctx, cfg.RefreshInterval)
	}

	rateLimiter := middleware.NewRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimitGeneral, cfg.RateLimitRefresh),
	)
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Catalog:           service,
		ContactPhone:      cfg.ContactPhone,
		Gatherer:          registry,
		StatusRecorder:    collector,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runLoad performs one catalog load and writes a summary. Exits
// non-zero when the feed cannot be loaded; for pipeline smoke checks.
func runLoad(cfg *config.Config, w io.Writer) error {
	service, err := buildCatalogService(cfg, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.FetchTimeout+time.Minute)
	defer cancel()

	snap, err := service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}

	fmt.Fprintf(w, "loaded %d vehicles (generation %d)\n", len(snap.Vehicles), snap.Generation)
	for _, v := range snap.Vehicles {
		fmt.Fprintf(w, "  %s  %s %s %d  $%d  %d media\n", v.ID, v.Brand, v.Model, v.Year, v.Price, len(v.Media))
	}
	return nil
}

// runHealthcheck probes the local /health endpoint.
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}
