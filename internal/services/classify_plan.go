package services

import (
	"bus-electrification-service/internal/domain"
	"cmp"
	"slices"
	"strings"
)

// BuildPlan matches each evaluated route against the part of the fleet with
// the route's assigned chassis and returns entries ordered by tier rank, then
// route id. Results without a route id are ignored.
func BuildPlan(
	results []domain.FeasibilityResult,
	fleet []domain.VehicleSpec,
	assignments map[string]domain.ChassisType,
) []domain.PlanEntry {
	entries := make([]domain.PlanEntry, 0, len(results))

	for _, r := range results {
		if strings.TrimSpace(r.RouteID) == "" {
			continue
		}

		chassis := domain.ChassisOrDefault(assignments, r.RouteID)
		roundTrip := r.RoundTripMiles()

		e := domain.PlanEntry{
			RouteID:                 r.RouteID,
			ChassisType:             chassis,
			RoundTripMiles:          roundTrip,
			PercentInDesignatedArea: r.PercentInDesignatedArea,
			ColdEligible:            EligibleVehicles(fleet, chassis, domain.BandCold, roundTrip),
			AverageEligible:         EligibleVehicles(fleet, chassis, domain.BandAverage, roundTrip),
			WarmEligible:            EligibleVehicles(fleet, chassis, domain.BandWarm, roundTrip),
			SuggestedDepartureTime:  r.SuggestedDepartureTime,
		}
		e.Tier = Classify(e)

		entries = append(entries, e)
	}

	SortPlan(entries)
	return entries
}

// EligibleVehicles returns the distinct names, in fleet order, of vehicles
// with chassis whose band range covers miles. Unclassifiable vehicles are
// never eligible.
func EligibleVehicles(fleet []domain.VehicleSpec, chassis domain.ChassisType, band domain.WeatherBand, miles float64) []string {
	var names []string
	seen := make(map[string]struct{})

	for _, v := range fleet {
		if v.ChassisType != chassis || v.Ranges == nil {
			continue
		}
		if v.Ranges.For(band) < miles {
			continue
		}
		if _, ok := seen[v.Name]; ok {
			continue
		}
		seen[v.Name] = struct{}{}
		names = append(names, v.Name)
	}

	return names
}

// Classify assigns the first matching tier.
func Classify(e domain.PlanEntry) domain.Tier {
	switch {
	case len(e.ColdEligible) > 0 && e.PercentInDesignatedArea > domain.DesignatedAreaThreshold:
		return domain.TierPreferred
	case len(e.ColdEligible) > 0:
		return domain.TierAllWeather
	case len(e.AverageEligible) > 0:
		return domain.TierMildWeather
	case len(e.WarmEligible) > 0:
		return domain.TierWarmOnly
	}
	return domain.TierNotFeasible
}

func SortPlan(entries []domain.PlanEntry) {
	slices.SortStableFunc(entries, func(a, b domain.PlanEntry) int {
		if c := cmp.Compare(a.Tier.Rank(), b.Tier.Rank()); c != 0 {
			return c
		}
		return strings.Compare(a.RouteID, b.RouteID)
	})
}
