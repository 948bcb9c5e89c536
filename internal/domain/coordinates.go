package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Build coordinates from a raw [lat, lng] pair.
// The pair must hold exactly two finite numbers inside WGS84 bounds.
func NewCoordinates(pair []float64) (Coordinates, error) {
	if len(pair) != 2 {
		return Coordinates{}, fmt.Errorf("new coordinates: got %d values, want 2: %w", len(pair), ErrInvalidCoordinates)
	}

	c := Coordinates{Lat: pair[0], Lng: pair[1]}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}

	return c, nil
}

// Validate reports ErrInvalidCoordinates for NaN, infinite or out-of-range values.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return fmt.Errorf("coordinates (%v, %v) are not finite: %w", c.Lat, c.Lng, ErrInvalidCoordinates)
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("coordinates (%v, %v) out of range: %w", c.Lat, c.Lng, ErrInvalidCoordinates)
	}
	return nil
}

// Return coordinates as "lat,lng" for the directions query string.
func (c Coordinates) String() string {
	return fmt.Sprintf("%v,%v", c.Lat, c.Lng)
}
