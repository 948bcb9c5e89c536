package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const parallelTolerance = 1e-12

func sub(a, b orb.Point) orb.Point { return orb.Point{a[0] - b[0], a[1] - b[1]} }

func cross(a, b orb.Point) float64 { return a[0]*b[1] - a[1]*b[0] }

func dot(a, b orb.Point) float64 { return a[0]*b[0] + a[1]*b[1] }

func lerp(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
}

func segmentBound(a, b orb.Point) orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(a[0], b[0]), math.Min(a[1], b[1])},
		Max: orb.Point{math.Max(a[0], b[0]), math.Max(a[1], b[1])},
	}
}

// crossings returns the parameters t in (0,1) along a->b where it meets the
// edge c->d. Collinear overlaps contribute the projections of the edge ends.
func crossings(a, b, c, d orb.Point) []float64 {
	r := sub(b, a)
	s := sub(d, c)
	qp := sub(c, a)

	rr := dot(r, r)
	if rr == 0 {
		return nil
	}

	denom := cross(r, s)
	scale := math.Sqrt(rr) * math.Sqrt(dot(s, s))

	if math.Abs(denom) <= parallelTolerance*scale {
		if math.Abs(cross(qp, r)) > parallelTolerance*math.Sqrt(rr)*math.Sqrt(dot(qp, qp)+rr) {
			return nil
		}
		var out []float64
		for _, p := range []orb.Point{c, d} {
			t := dot(sub(p, a), r) / rr
			if t > 0 && t < 1 {
				out = append(out, t)
			}
		}
		return out
	}

	t := cross(qp, s) / denom
	u := cross(qp, r) / denom
	if t > 0 && t < 1 && u >= 0 && u <= 1 {
		return []float64{t}
	}
	return nil
}

// segmentsTouch reports whether closed segments a->b and c->d share any point.
func segmentsTouch(a, b, c, d orb.Point) bool {
	d1 := cross(sub(d, c), sub(a, c))
	d2 := cross(sub(d, c), sub(b, c))
	d3 := cross(sub(b, a), sub(c, a))
	d4 := cross(sub(b, a), sub(d, a))

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}

// onSegment assumes p is collinear with a->b.
func onSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}
