package main

import (
	"bus-electrification-service/internal/adapters/directions"
	"bus-electrification-service/internal/adapters/regions"
	"bus-electrification-service/internal/adapters/sessions"
	"bus-electrification-service/internal/api"
	"bus-electrification-service/internal/config"
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/platform/db"
	"bus-electrification-service/internal/platform/logging"
	"bus-electrification-service/internal/platform/metrics"
	"bus-electrification-service/internal/platform/tracing"
	"bus-electrification-service/internal/ports"
	"bus-electrification-service/internal/services"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var version = "dev"

// main is the application composition root.
// It wires concrete adapters (Google Directions, Postgres or CSV regions,
// in-memory sessions) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logging.Init(os.Stderr, cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.OTLPEndpoint, version)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("tracing shutdown failed", "err", err)
		}
	}()

	collector := metrics.NewCollector()

	dacRegions, err := loadRegions(ctx, cfg)
	if err != nil {
		return err
	}
	collector.RegionsLoaded.Set(float64(len(dacRegions)))

	// A missing key is not fatal: sessions still work, evaluation reports 503.
	var provider ports.RoutingProvider
	google, err := directions.NewGoogleDirectionsProvider(cfg.GoogleMapsAPIKey, directions.Options{
		BaseURL: cfg.DirectionsBaseURL,
		Timeout: cfg.DirectionsTimeout,
		Now:     func() time.Time { return time.Now().In(cfg.Location) },
	})
	switch {
	case errors.Is(err, directions.ErrMissingAPIKey):
		slog.Warn("GOOGLE_MAPS_API_KEY not set; route evaluation disabled")
	case err != nil:
		return err
	default:
		provider = google
	}

	evaluator := services.NewEvaluator(provider, services.EvaluatorConfig{
		Regions:     dacRegions,
		MinInterval: cfg.DirectionsMinInterval,
		Metrics:     collector,
	})
	svc := services.NewPlanningService(sessions.NewMemorySessionStore(), evaluator, collector)

	// Timeouts are tuned for sequential directions calls during evaluation.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(svc, collector),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "version", version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loadRegions prefers Postgres, then the CSV file. With neither configured
// the overlap percentage is always 0.
func loadRegions(ctx context.Context, cfg *config.Config) ([]domain.Region, error) {
	var repo ports.RegionRepository
	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		repo = regions.NewSQLRegionRepository(conn)
	case cfg.DACCSVPath != "":
		repo = regions.NewCSVRegionRepository(cfg.DACCSVPath)
	default:
		slog.Warn("no DAC region source configured; designated-area overlap will be 0")
		return nil, nil
	}

	loaded, warnings, err := repo.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		slog.Warn("dac region skipped", "cause", w.Cause)
	}

	slog.Info("dac regions loaded", "count", len(loaded), "skipped", len(warnings))
	return loaded, nil
}
