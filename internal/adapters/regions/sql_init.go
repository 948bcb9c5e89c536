package regions

import (
	"bus-electrification-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/paulmach/orb/encoding/wkt"
)

// InitSchema creates the designated-area table. Geometry is stored as WKT so
// the table works without PostGIS.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS dac_regions (
		geoid TEXT PRIMARY KEY,
		geom_wkt TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("init schema: create dac_regions: %w", err)
	}

	return nil
}

// SeedRegions upserts regions by GEOID in a single transaction.
func SeedRegions(ctx context.Context, db *sql.DB, regions []domain.Region) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed regions: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO dac_regions (geoid, geom_wkt, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (geoid) DO UPDATE
	SET geom_wkt = EXCLUDED.geom_wkt, updated_at = now();
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed regions: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range regions {
		if _, err := stmt.ExecContext(ctx, r.ID, wkt.MarshalString(r.Geometry)); err != nil {
			return 0, fmt.Errorf("seed regions: upsert geoid=%s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed regions: commit tx: %w", err)
	}

	return len(regions), nil
}
