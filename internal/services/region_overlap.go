package services

import (
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/lib/geo"
	"errors"
	"fmt"

	"github.com/paulmach/orb/planar"
)

type OverlapResult struct {
	// Share of path length inside the regions, in [0, 100].
	Percent float64

	// One entry per skipped region or undecodable path.
	Warnings []string
}

// PercentOverlap measures how much of an encoded path runs through regions.
// Region contributions are summed without de-duplicating overlaps between
// regions; the result is clamped to 100.
func PercentOverlap(encodedPath string, regions []domain.Region) OverlapResult {
	var out OverlapResult

	line, err := geo.DecodePath(encodedPath)
	if err != nil {
		if !errors.Is(err, geo.ErrEmptyPolyline) {
			out.Warnings = append(out.Warnings, err.Error())
		}
		return out
	}
	if len(line) < 2 {
		return out
	}

	total := planar.Length(line)
	if total == 0 {
		return out
	}

	pathBound := line.Bound()

	var inside float64
	for _, r := range regions {
		if !pathBound.Intersects(r.Bound()) {
			continue
		}
		if !r.Validated() {
			if err := r.Validate(); err != nil {
				out.Warnings = append(out.Warnings, fmt.Sprintf("skipped: %v", err))
				continue
			}
		}
		inside += geo.LengthInside(line, r.Geometry)
	}

	out.Percent = min(max(inside/total*100, 0), 100)
	return out
}
