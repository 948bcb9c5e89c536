package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

var (
	ErrEmptyGeometry    = errors.New("geometry is empty")
	ErrRingTooShort     = errors.New("ring has fewer than 4 points")
	ErrRingNotClosed    = errors.New("ring is not closed")
	ErrRingZeroArea     = errors.New("ring has zero area")
	ErrRingSelfCrossing = errors.New("ring intersects itself")
	ErrNonFiniteCoord   = errors.New("coordinate is not finite")
)

// ValidateMultiPolygon checks every ring of every polygon. Hole placement
// relative to the shell is not checked.
func ValidateMultiPolygon(mp orb.MultiPolygon) error {
	if len(mp) == 0 {
		return ErrEmptyGeometry
	}
	for i, poly := range mp {
		if err := ValidatePolygon(poly); err != nil {
			return fmt.Errorf("polygon %d: %w", i, err)
		}
	}
	return nil
}

func ValidatePolygon(poly orb.Polygon) error {
	if len(poly) == 0 {
		return ErrEmptyGeometry
	}
	for i, ring := range poly {
		if err := validateRing(ring); err != nil {
			return fmt.Errorf("ring %d: %w", i, err)
		}
	}
	return nil
}

func validateRing(ring orb.Ring) error {
	if len(ring) < 4 {
		return ErrRingTooShort
	}
	for _, p := range ring {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return ErrNonFiniteCoord
		}
	}
	if !ring.Closed() {
		return ErrRingNotClosed
	}

	ring = dropRepeats(ring)
	if len(ring) < 4 {
		return ErrRingTooShort
	}
	if signedArea(ring) == 0 {
		return ErrRingZeroArea
	}

	n := len(ring) - 1
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsTouch(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return ErrRingSelfCrossing
			}
		}
	}

	return nil
}

func signedArea(ring orb.Ring) float64 {
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += cross(ring[i], ring[i+1])
	}
	return sum / 2
}

func dropRepeats(ring orb.Ring) orb.Ring {
	out := make(orb.Ring, 0, len(ring))
	for i, p := range ring {
		if i > 0 && p == ring[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
