package geo

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const minInterval = 1e-12

// LengthInside returns the planar length of line that lies inside or on the
// boundary of mp. Each segment is split at every ring edge it crosses and
// the pieces whose midpoint falls inside mp are summed.
func LengthInside(line orb.LineString, mp orb.MultiPolygon) float64 {
	if len(line) < 2 || len(mp) == 0 {
		return 0
	}
	if !line.Bound().Intersects(mp.Bound()) {
		return 0
	}

	edges := ringEdges(mp)

	var inside float64
	for i := 0; i < len(line)-1; i++ {
		a, b := line[i], line[i+1]
		segLen := planar.Distance(a, b)
		if segLen == 0 {
			continue
		}

		sb := segmentBound(a, b)
		ts := []float64{0, 1}
		for _, e := range edges {
			if !sb.Intersects(segmentBound(e[0], e[1])) {
				continue
			}
			ts = append(ts, crossings(a, b, e[0], e[1])...)
		}
		sort.Float64s(ts)

		for j := 0; j < len(ts)-1; j++ {
			t0, t1 := ts[j], ts[j+1]
			if t1-t0 <= minInterval {
				continue
			}
			if planar.MultiPolygonContains(mp, lerp(a, b, (t0+t1)/2)) {
				inside += segLen * (t1 - t0)
			}
		}
	}

	return inside
}

func ringEdges(mp orb.MultiPolygon) [][2]orb.Point {
	var edges [][2]orb.Point
	for _, poly := range mp {
		for _, ring := range poly {
			for i := 0; i < len(ring)-1; i++ {
				if ring[i] == ring[i+1] {
					continue
				}
				edges = append(edges, [2]orb.Point{ring[i], ring[i+1]})
			}
		}
	}
	return edges
}
