package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shapedtime/vidrelay/internal/api"
	"github.com/shapedtime/vidrelay/internal/cache"
	"github.com/shapedtime/vidrelay/internal/config"
	"github.com/shapedtime/vidrelay/internal/metrics"
	"github.com/shapedtime/vidrelay/internal/source"
	"github.com/shapedtime/vidrelay/internal/store"
	"github.com/shapedtime/vidrelay/internal/transcode"
	"github.com/shapedtime/vidrelay/internal/youtube"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting vidrelay", "config", *configPath)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure required directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		os.Exit(1)
	}

	// Initialize the URL store
	dsn := cfg.Database.Path
	if cfg.Database.Driver == "pgx" {
		dsn = cfg.Database.URL
	}
	db, err := store.Open(cfg.Database.Driver, dsn)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Database initialized", "driver", cfg.Database.Driver)

	urlRepo := store.NewURLRepository(db)

	// Initialize the metadata cache
	metaCache, err := cache.New(cfg.Cache.Path, time.Duration(cfg.Cache.TTL)*time.Second)
	if err != nil {
		slog.Error("Failed to open metadata cache", "error", err)
		os.Exit(1)
	}
	defer metaCache.Close()
	slog.Info("Metadata cache initialized", "path", cfg.Cache.Path)

	// External host clients and resolver
	ytClient := youtube.NewClient(time.Duration(cfg.Streaming.UpstreamTimeout) * time.Second)
	resolver := source.NewResolver(urlRepo, ytClient, metaCache)

	// Transcoding pipeline
	converter := transcode.NewConverter(cfg.Transcode.FFmpegPath, transcode.Options{
		KeyframeInterval: cfg.Transcode.KeyframeInterval,
		Profile:          cfg.Transcode.Profile,
		VideoBitrate:     cfg.Transcode.VideoBitrate,
		Resolution:       cfg.Transcode.Resolution,
		FrameRate:        cfg.Transcode.FrameRate,
		Format:           cfg.Transcode.Format,
	})
	runner := transcode.NewRunner(converter, cfg.Transcode.MaxConcurrent)

	// Metrics
	registry := prometheus.NewRegistry()
	streamMetrics := metrics.New(registry)
	registry.MustRegister(metrics.NewTranscodeCollector(runner))
	metricsServer := metrics.NewServer(cfg.Server.MetricsPort, registry)
	resolver.SetCacheHitCounter(streamMetrics.MetadataCacheHits)

	// API server
	apiServer := api.NewServer(urlRepo, resolver, ytClient, runner, streamMetrics)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: apiServer.Handler(),
	}

	// Start servers in goroutines
	go func() {
		slog.Info("Starting API server", "port", cfg.Server.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("API server error", "error", err)
		}
	}()

	go func() {
		if err := metricsServer.Start(); err != nil {
			slog.Error("Metrics server error", "error", err)
		}
	}()

	slog.Info("vidrelay is ready",
		"stream_url", fmt.Sprintf("http://localhost:%d/stream/{id}", cfg.Server.HTTPPort),
		"metrics_url", fmt.Sprintf("http://localhost:%d/metrics", cfg.Server.MetricsPort),
	)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	slog.Info("Received signal, shutting down", "signal", sig)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("API server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		slog.Error("Metrics server shutdown error", "error", err)
	}

	slog.Info("vidrelay stopped")
}
