package dto

import "bus-electrification-service/internal/domain"

// PlanRequest runs a one-shot evaluation without creating a session.
type PlanRequest struct {
	Routes      []IdentifiedRouteRequest `json:"routes" validate:"required,min=1,dive"`
	Vehicles    []FleetEntryRequest      `json:"vehicles" validate:"required,min=1,dive"`
	Assignments map[string]string        `json:"assignments"`
}

type PlanEntryResponse struct {
	RouteID                 string             `json:"route_id"`
	ChassisType             domain.ChassisType `json:"chassis_type"`
	RoundTripMiles          float64            `json:"round_trip_miles"`
	PercentInDesignatedArea float64            `json:"percent_in_designated_area"`
	ColdEligible            []string           `json:"cold_eligible"`
	AverageEligible         []string           `json:"average_eligible"`
	WarmEligible            []string           `json:"warm_eligible"`
	TierEligible            []string           `json:"tier_eligible"`
	SuggestedDepartureTime  *domain.TimeOfDay  `json:"suggested_departure_time"`
	Tier                    domain.Tier        `json:"tier"`
	TierLabel               string             `json:"tier_label"`
}

type PlanResponse struct {
	Plan          []PlanEntryResponse `json:"plan"`
	Evaluation    *EvaluationResponse `json:"evaluation,omitempty"`
	FleetWarnings []WarningResponse   `json:"fleet_warnings,omitempty"`
}

func NewPlanEntryResponses(entries []domain.PlanEntry) []PlanEntryResponse {
	out := make([]PlanEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, PlanEntryResponse{
			RouteID:                 e.RouteID,
			ChassisType:             e.ChassisType,
			RoundTripMiles:          e.RoundTripMiles,
			PercentInDesignatedArea: e.PercentInDesignatedArea,
			ColdEligible:            nonNil(e.ColdEligible),
			AverageEligible:         nonNil(e.AverageEligible),
			WarmEligible:            nonNil(e.WarmEligible),
			TierEligible:            nonNil(e.EligibleForTier()),
			SuggestedDepartureTime:  e.SuggestedDepartureTime,
			Tier:                    e.Tier,
			TierLabel:               e.Tier.Label(),
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
