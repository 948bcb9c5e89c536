package services

import (
	"bus-electrification-service/internal/domain"
	"slices"
	"testing"
)

func capacity(v float64) *float64 { return &v }

func vehicle(name string, chassis domain.ChassisType, kwh float64) domain.VehicleSpec {
	return domain.VehicleSpec{
		Name:               name,
		ChassisType:        chassis,
		BatteryCapacityKWh: capacity(kwh),
		Ranges:             domain.ComputeRanges(capacity(kwh), chassis),
	}
}

func result(id string, am, pm, dac float64) domain.FeasibilityResult {
	return domain.FeasibilityResult{
		RouteID:                 id,
		AM:                      &domain.LegResult{DistanceMiles: am},
		PM:                      &domain.LegResult{DistanceMiles: pm},
		PercentInDesignatedArea: dac,
	}
}

func TestBuildPlanColdEligibleVehicle(t *testing.T) {
	// 100 kWh type A: cold 40.0, average 53.3, warm 80.0 miles.
	fleet := []domain.VehicleSpec{vehicle("Lion", domain.ChassisA, 100)}

	tests := []struct {
		name string
		dac  float64
		want domain.Tier
	}{
		{"outside designated area", 12.5, domain.TierAllWeather},
		{"exactly at threshold", 70, domain.TierAllWeather},
		{"mostly designated area", 70.01, domain.TierPreferred},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildPlan([]domain.FeasibilityResult{result("R1", 20, 15, tt.dac)}, fleet, nil)
			if len(plan) != 1 {
				t.Fatalf("len(plan) = %d, want 1", len(plan))
			}
			e := plan[0]
			if e.RoundTripMiles != 35 {
				t.Errorf("RoundTripMiles = %v, want 35", e.RoundTripMiles)
			}
			if !slices.Equal(e.ColdEligible, []string{"Lion"}) {
				t.Errorf("ColdEligible = %v, want [Lion]", e.ColdEligible)
			}
			if e.Tier != tt.want {
				t.Errorf("Tier = %s, want %s", e.Tier, tt.want)
			}
			if e.ChassisType != domain.ChassisA {
				t.Errorf("ChassisType = %s, want default A", e.ChassisType)
			}
		})
	}
}

func TestBuildPlanTiersByBand(t *testing.T) {
	fleet := []domain.VehicleSpec{vehicle("Lion", domain.ChassisA, 100)}

	tests := []struct {
		miles float64
		want  domain.Tier
	}{
		{40.0, domain.TierAllWeather},
		{40.1, domain.TierMildWeather},
		{53.3, domain.TierMildWeather},
		{60, domain.TierWarmOnly},
		{80, domain.TierWarmOnly},
		{80.01, domain.TierNotFeasible},
	}

	for _, tt := range tests {
		plan := BuildPlan([]domain.FeasibilityResult{result("R1", tt.miles, 0, 0)}, fleet, nil)
		if plan[0].Tier != tt.want {
			t.Errorf("%v miles: Tier = %s, want %s", tt.miles, plan[0].Tier, tt.want)
		}
	}
}

func TestEligibleVehiclesFiltersChassisAndDeduplicates(t *testing.T) {
	fleet := []domain.VehicleSpec{
		vehicle("Small C", domain.ChassisC, 100),
		vehicle("Big A", domain.ChassisA, 300),
		vehicle("Big C", domain.ChassisC, 300),
		vehicle("Big C", domain.ChassisC, 300),
		{Name: "Unknown", ChassisType: domain.ChassisC},
	}

	got := EligibleVehicles(fleet, domain.ChassisC, domain.BandCold, 0)
	if !slices.Equal(got, []string{"Small C", "Big C"}) {
		t.Errorf("EligibleVehicles = %v, want [Small C Big C]", got)
	}

	got = EligibleVehicles(fleet, domain.ChassisC, domain.BandCold, 50)
	if !slices.Equal(got, []string{"Big C"}) {
		t.Errorf("EligibleVehicles = %v, want [Big C]", got)
	}
}

func TestBuildPlanUsesAssignedChassis(t *testing.T) {
	fleet := []domain.VehicleSpec{
		vehicle("A bus", domain.ChassisA, 100),
		vehicle("C bus", domain.ChassisC, 100),
	}
	results := []domain.FeasibilityResult{result("R1", 10, 10, 0), result("R2", 10, 10, 0)}
	assignments := map[string]domain.ChassisType{"R2": domain.ChassisC}

	plan := BuildPlan(results, fleet, assignments)

	if !slices.Equal(plan[0].ColdEligible, []string{"A bus"}) || plan[0].ChassisType != domain.ChassisA {
		t.Errorf("R1 = %+v", plan[0])
	}
	if !slices.Equal(plan[1].ColdEligible, []string{"C bus"}) || plan[1].ChassisType != domain.ChassisC {
		t.Errorf("R2 = %+v", plan[1])
	}
}

func TestBuildPlanOrdersByTierThenRouteID(t *testing.T) {
	fleet := []domain.VehicleSpec{vehicle("Lion", domain.ChassisA, 100)}
	results := []domain.FeasibilityResult{
		result("R9", 100, 0, 0),
		result("R3", 10, 10, 0),
		result("", 1, 1, 99),
		result("R1", 10, 10, 90),
		result("R2", 10, 10, 0),
		result("R5", 30, 30, 0),
	}

	plan := BuildPlan(results, fleet, nil)

	var ids []string
	for _, e := range plan {
		ids = append(ids, e.RouteID)
	}
	if want := []string{"R1", "R2", "R3", "R5", "R9"}; !slices.Equal(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestClassifyColdEligibleIsNeverBelowAllWeather(t *testing.T) {
	for _, dac := range []float64{0, 50, 70, 71, 100} {
		tier := Classify(domain.PlanEntry{ColdEligible: []string{"x"}, PercentInDesignatedArea: dac})
		if tier != domain.TierPreferred && tier != domain.TierAllWeather {
			t.Errorf("dac %v: Tier = %s", dac, tier)
		}
	}
}
