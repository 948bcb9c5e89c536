package domain

// Outcome of one successful directions call.
type LegResult struct {
	DistanceMiles   float64
	DurationMinutes float64
	PathGeometry    string
}

// Provider-reported leg between two consecutive stops.
type LegDetail struct {
	StartAddress    string
	EndAddress      string
	DistanceMiles   float64
	DurationMinutes float64
}

// FeasibilityResult is one evaluated route. AM or PM is nil when that leg
// could not be computed; a nil leg is unknown, not zero.
// PercentInDesignatedArea is 0 when no AM geometry or regions are available.
type FeasibilityResult struct {
	RouteID                 string
	AM                      *LegResult
	PM                      *LegResult
	PercentInDesignatedArea float64
	SuggestedDepartureTime  *TimeOfDay
	FirstBellTime           *TimeOfDay
	DriveTimeToFirstSchool  *float64
	Legs                    []LegDetail
}

// RoundTripMiles treats a missing leg as zero.
func (r FeasibilityResult) RoundTripMiles() float64 {
	var total float64
	if r.AM != nil {
		total += r.AM.DistanceMiles
	}
	if r.PM != nil {
		total += r.PM.DistanceMiles
	}
	return Round(total, 2)
}

type SkippedRoute struct {
	RouteID string
	Reason  string
}

// Outcome of one evaluation pass over a batch of routes.
type Evaluation struct {
	Results  []FeasibilityResult
	Skipped  []SkippedRoute
	Warnings []Warning
}
