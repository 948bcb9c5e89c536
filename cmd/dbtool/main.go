package main

import (
	"bus-electrification-service/internal/adapters/regions"
	"bus-electrification-service/internal/config"
	"bus-electrification-service/internal/platform/db"
	"bus-electrification-service/internal/platform/logging"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
)

// dbtool creates the dac_regions table and loads it from a DAC CSV file.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logging.Init(os.Stderr, cfg.LogLevel)

	csvPath := flag.String("csv", config.Get("DAC_CSV_PATH", "data/dac_file.csv"), "DAC CSV file to seed from")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, *csvPath, *schemaOnly); err != nil {
		slog.Error("dbtool failed", "err", err)
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, csvPath string, schemaOnly bool) error {
	slog.Info("initializing database schema")
	if err := regions.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	slog.Info("schema ready")

	if schemaOnly {
		return nil
	}

	slog.Info("seeding dac regions", "csv", csvPath)
	loaded, warnings, err := regions.NewCSVRegionRepository(csvPath).ListRegions(ctx)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	for _, w := range warnings {
		slog.Warn("dac region skipped", "cause", w.Cause)
	}

	n, err := regions.SeedRegions(ctx, conn, loaded)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	slog.Info("seeding complete", "regions", n, "skipped", len(warnings))

	return nil
}
