package regions

import (
	"bus-electrification-service/internal/domain"
	"context"
	"database/sql"
	"fmt"
)

// Postgres-backed implementation of the RegionRepository port.
type SQLRegionRepository struct{ DB *sql.DB }

func NewSQLRegionRepository(db *sql.DB) *SQLRegionRepository {
	return &SQLRegionRepository{DB: db}
}

func (s *SQLRegionRepository) ListRegions(ctx context.Context) ([]domain.Region, []domain.Warning, error) {
	query := `
	SELECT geoid, geom_wkt
	FROM dac_regions
	ORDER BY geoid;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("list regions: query: %w", err)
	}
	defer rows.Close()

	var (
		regions  []domain.Region
		warnings []domain.Warning
	)
	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, nil, fmt.Errorf("list regions: scan row: %w", err)
		}

		region, err := parseRegion(id, text)
		if err != nil {
			warnings = append(warnings, regionWarning(fmt.Sprintf("stored region dropped: %v", err)))
			continue
		}
		regions = append(regions, region)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("list regions: iterate rows: %w", err)
	}

	return regions, warnings, nil
}
