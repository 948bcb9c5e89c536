package services

import (
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/lib/geo"
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func squareRegion(t *testing.T, id string, minLng, minLat, maxLng, maxLat float64) domain.Region {
	t.Helper()
	r, err := domain.NewRegion(id, orb.Polygon{{
		{minLng, minLat}, {maxLng, minLat}, {maxLng, maxLat}, {minLng, maxLat}, {minLng, minLat},
	}})
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	return r
}

func TestPercentOverlap(t *testing.T) {
	region := squareRegion(t, "tract-1", -119, 33, -118, 35)

	tests := []struct {
		name string
		path orb.LineString
		want float64
	}{
		{"inside", orb.LineString{{-118.8, 34.0}, {-118.2, 34.2}}, 100},
		{"half", orb.LineString{{-118.5, 34.0}, {-117.5, 34.0}}, 50},
		{"outside", orb.LineString{{-117.0, 34.0}, {-116.0, 34.5}}, 0},
		{"through", orb.LineString{{-119.5, 34.0}, {-118.5, 34.0}, {-117.5, 34.0}}, 50},
		{"touches corner", orb.LineString{{-118, 35}, {-117, 36}}, 0},
		{"dips to vertex", orb.LineString{{-118.5, 36}, {-118, 35}, {-117.5, 36}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentOverlap(geo.EncodePath(tt.path), []domain.Region{region})
			if math.Abs(got.Percent-tt.want) > 1e-6 {
				t.Errorf("Percent = %v, want %v", got.Percent, tt.want)
			}
			if len(got.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", got.Warnings)
			}
		})
	}
}

func TestPercentOverlapClampsSummedRegions(t *testing.T) {
	regions := []domain.Region{
		squareRegion(t, "a", -119, 33, -118, 35),
		squareRegion(t, "b", -119, 33, -118, 35),
	}
	path := geo.EncodePath(orb.LineString{{-118.8, 34.0}, {-118.2, 34.2}})

	if got := PercentOverlap(path, regions).Percent; got != 100 {
		t.Errorf("Percent = %v, want 100", got)
	}
}

func TestPercentOverlapBadPathIsZero(t *testing.T) {
	regions := []domain.Region{squareRegion(t, "a", -119, 33, -118, 35)}

	if got := PercentOverlap("", regions); got.Percent != 0 || len(got.Warnings) != 0 {
		t.Errorf("empty path = %+v, want zero without warnings", got)
	}

	got := PercentOverlap("_p~iF~ps|U_ulL", regions)
	if got.Percent != 0 {
		t.Errorf("malformed path Percent = %v, want 0", got.Percent)
	}

	single := geo.EncodePath(orb.LineString{{-118.5, 34.0}})
	if got := PercentOverlap(single, regions); got.Percent != 0 {
		t.Errorf("single point Percent = %v, want 0", got.Percent)
	}

	still := geo.EncodePath(orb.LineString{{-118.5, 34.0}, {-118.5, 34.0}})
	if got := PercentOverlap(still, regions); got.Percent != 0 {
		t.Errorf("zero length Percent = %v, want 0", got.Percent)
	}
}

func TestPercentOverlapSkipsInvalidRegion(t *testing.T) {
	bowtie := domain.Region{ID: "bowtie", Geometry: orb.MultiPolygon{{{
		{-119, 33}, {-117, 35}, {-117, 33}, {-119, 34}, {-119, 33},
	}}}}
	good := squareRegion(t, "good", -119, 33, -118, 35)
	path := geo.EncodePath(orb.LineString{{-118.5, 34.0}, {-117.5, 34.0}})

	got := PercentOverlap(path, []domain.Region{bowtie, good})

	if math.Abs(got.Percent-50) > 1e-6 {
		t.Errorf("Percent = %v, want 50", got.Percent)
	}
	if len(got.Warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", got.Warnings)
	}
}

func TestPercentOverlapTrustsConstructedRegions(t *testing.T) {
	region := squareRegion(t, "tract-1", -119, 33, -118, 35)
	if !region.Validated() {
		t.Fatalf("NewRegion result not marked validated")
	}

	// Geometry swapped after construction is not re-checked per path.
	region.Geometry = orb.MultiPolygon{{{
		{-119, 33}, {-117, 35}, {-117, 33}, {-119, 34}, {-119, 33},
	}}}
	path := geo.EncodePath(orb.LineString{{-118.5, 34.0}, {-117.5, 34.0}})

	if got := PercentOverlap(path, []domain.Region{region}); len(got.Warnings) != 0 {
		t.Errorf("warnings = %v, want none for a constructed region", got.Warnings)
	}
}
