package dto

import "bus-electrification-service/internal/domain"

type WarningResponse struct {
	RouteID string       `json:"route_id,omitempty"`
	Stage   domain.Stage `json:"stage"`
	Cause   string       `json:"cause"`
}

// PathGeometry is the provider's encoded polyline.
type LegResponse struct {
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
	PathGeometry    string  `json:"path_geometry"`
}

type LegDetailResponse struct {
	StartAddress    string  `json:"start_address"`
	EndAddress      string  `json:"end_address"`
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
}

type FeasibilityResponse struct {
	RouteID                 string              `json:"route_id"`
	AM                      *LegResponse        `json:"am"`
	PM                      *LegResponse        `json:"pm"`
	RoundTripMiles          float64             `json:"round_trip_miles"`
	PercentInDesignatedArea float64             `json:"percent_in_designated_area"`
	SuggestedDepartureTime  *domain.TimeOfDay   `json:"suggested_departure_time"`
	FirstBellTime           *domain.TimeOfDay   `json:"first_bell_time"`
	DriveTimeToFirstSchool  *float64            `json:"drive_time_to_first_school_minutes"`
	Legs                    []LegDetailResponse `json:"legs"`
}

type SkippedResponse struct {
	RouteID string `json:"route_id"`
	Reason  string `json:"reason"`
}

type EvaluationResponse struct {
	Results  []FeasibilityResponse `json:"results"`
	Skipped  []SkippedResponse     `json:"skipped"`
	Warnings []WarningResponse     `json:"warnings"`
}

func NewWarningResponses(ws []domain.Warning) []WarningResponse {
	out := make([]WarningResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, WarningResponse{RouteID: w.RouteID, Stage: w.Stage, Cause: w.Cause})
	}
	return out
}

func NewEvaluationResponse(ev domain.Evaluation) EvaluationResponse {
	res := EvaluationResponse{
		Results:  make([]FeasibilityResponse, 0, len(ev.Results)),
		Skipped:  make([]SkippedResponse, 0, len(ev.Skipped)),
		Warnings: NewWarningResponses(ev.Warnings),
	}

	for _, r := range ev.Results {
		legs := make([]LegDetailResponse, 0, len(r.Legs))
		for _, l := range r.Legs {
			legs = append(legs, LegDetailResponse{
				StartAddress:    l.StartAddress,
				EndAddress:      l.EndAddress,
				DistanceMiles:   l.DistanceMiles,
				DurationMinutes: l.DurationMinutes,
			})
		}

		res.Results = append(res.Results, FeasibilityResponse{
			RouteID:                 r.RouteID,
			AM:                      legResponse(r.AM),
			PM:                      legResponse(r.PM),
			RoundTripMiles:          r.RoundTripMiles(),
			PercentInDesignatedArea: r.PercentInDesignatedArea,
			SuggestedDepartureTime:  r.SuggestedDepartureTime,
			FirstBellTime:           r.FirstBellTime,
			DriveTimeToFirstSchool:  r.DriveTimeToFirstSchool,
			Legs:                    legs,
		})
	}

	for _, s := range ev.Skipped {
		res.Skipped = append(res.Skipped, SkippedResponse{RouteID: s.RouteID, Reason: s.Reason})
	}

	return res
}

func legResponse(l *domain.LegResult) *LegResponse {
	if l == nil {
		return nil
	}
	return &LegResponse{
		DistanceMiles:   l.DistanceMiles,
		DurationMinutes: l.DurationMinutes,
		PathGeometry:    l.PathGeometry,
	}
}
