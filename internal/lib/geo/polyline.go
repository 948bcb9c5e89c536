package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

var ErrEmptyPolyline = errors.New("encoded polyline string is empty")

// DecodePath decodes a Google encoded polyline (lat,lng pairs) into a planar
// line string in lng/lat order.
func DecodePath(encoded string) (orb.LineString, error) {
	if encoded == "" {
		return nil, ErrEmptyPolyline
	}

	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("decode polyline: %d trailing bytes", len(rest))
	}

	line := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 {
			return nil, errors.New("decode polyline: coordinate is not a lat,lng pair")
		}
		line = append(line, orb.Point{c[1], c[0]})
	}

	return line, nil
}

// EncodePath is the inverse of DecodePath.
func EncodePath(line orb.LineString) string {
	coords := make([][]float64, 0, len(line))
	for _, p := range line {
		coords = append(coords, []float64{p.Lat(), p.Lon()})
	}
	return string(polyline.EncodeCoords(coords))
}
