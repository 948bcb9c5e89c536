package domain

import (
	"bus-electrification-service/internal/lib/geo"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// A designated disadvantaged community area in lng/lat.
// Regions built with NewRegion are validated once; literals are checked on use.
type Region struct {
	ID       string
	Geometry orb.MultiPolygon

	validated bool
}

// NewRegion accepts a polygon or multipolygon and rejects invalid geometry.
func NewRegion(id string, g orb.Geometry) (Region, error) {
	id = strings.TrimSpace(id)

	var mp orb.MultiPolygon
	switch v := g.(type) {
	case orb.Polygon:
		mp = orb.MultiPolygon{v}
	case orb.MultiPolygon:
		mp = v
	default:
		if g == nil {
			return Region{}, fmt.Errorf("region %q: nil geometry: %w", id, ErrInvalidRegion)
		}
		return Region{}, fmt.Errorf("region %q: unsupported geometry %s: %w", id, g.GeoJSONType(), ErrInvalidRegion)
	}

	r := Region{ID: id, Geometry: mp}
	if err := r.Validate(); err != nil {
		return Region{}, err
	}
	r.validated = true
	return r, nil
}

func (r Region) Validate() error {
	if err := geo.ValidateMultiPolygon(r.Geometry); err != nil {
		return fmt.Errorf("region %q: %w: %w", r.ID, ErrInvalidRegion, err)
	}
	return nil
}

// Validated reports whether NewRegion already checked the geometry.
func (r Region) Validated() bool { return r.validated }

func (r Region) Bound() orb.Bound { return r.Geometry.Bound() }
