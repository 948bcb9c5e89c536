package ports

import (
	"bus-electrification-service/internal/domain"
	"context"
)

// Port: a boundary for retrieving designated-area regions from a data source.
type RegionRepository interface {
	// Return all valid regions. Rows that cannot be turned into a region are
	// reported as warnings, not errors.
	ListRegions(ctx context.Context) ([]domain.Region, []domain.Warning, error)
}
