package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type ChassisType string

const (
	ChassisA ChassisType = "A"
	ChassisC ChassisType = "C"
)

// DefaultChassis is applied to any route without an explicit chassis assignment.
const DefaultChassis = ChassisA

// Share of nameplate battery capacity treated as usable (battery-health reserve).
const UsableBatteryFraction = 0.8

func ParseChassisType(s string) (ChassisType, error) {
	switch ChassisType(strings.ToUpper(strings.TrimSpace(s))) {
	case ChassisA:
		return ChassisA, nil
	case ChassisC:
		return ChassisC, nil
	}
	return "", fmt.Errorf("parse chassis type %q: %w", s, ErrUnknownChassis)
}

// ChassisOrDefault is the defaulting policy for route chassis assignments.
func ChassisOrDefault(assignments map[string]ChassisType, routeID string) ChassisType {
	if c, ok := assignments[routeID]; ok && (c == ChassisA || c == ChassisC) {
		return c
	}
	return DefaultChassis
}

type WeatherBand string

const (
	BandCold    WeatherBand = "cold"    // below 50°F
	BandAverage WeatherBand = "average" // 50–70°F
	BandWarm    WeatherBand = "warm"    // 70°F and above
)

var WeatherBands = []WeatherBand{BandCold, BandAverage, BandWarm}

// Consumption divisors per chassis, in band order cold, average, warm.
var consumptionDivisors = map[ChassisType][3]float64{
	ChassisA: {2.0, 1.5, 1.0},
	ChassisC: {2.5, 1.8, 1.5},
}

// Usable range in miles per weather band.
type Ranges struct {
	Cold    float64
	Average float64
	Warm    float64
}

func (r Ranges) For(b WeatherBand) float64 {
	switch b {
	case BandCold:
		return r.Cold
	case BandAverage:
		return r.Average
	case BandWarm:
		return r.Warm
	}
	return 0
}

// ComputeRanges maps capacity and chassis to three weather-banded ranges,
// rounded to one decimal. It returns nil when the vehicle cannot be
// classified (missing or non-positive capacity, unknown chassis).
func ComputeRanges(capacityKWh *float64, chassis ChassisType) *Ranges {
	if capacityKWh == nil {
		return nil
	}
	kwh := *capacityKWh
	if math.IsNaN(kwh) || math.IsInf(kwh, 0) || kwh <= 0 {
		return nil
	}

	div, ok := consumptionDivisors[chassis]
	if !ok {
		return nil
	}

	usable := kwh * UsableBatteryFraction
	return &Ranges{
		Cold:    round1(usable / div[0]),
		Average: round1(usable / div[1]),
		Warm:    round1(usable / div[2]),
	}
}

type Powertrain string

const (
	PowertrainElectric Powertrain = "EV"
	PowertrainGas      Powertrain = "Gas"
)

// One row of the caller's fleet description.
type FleetEntry struct {
	Name               string
	Powertrain         Powertrain
	ChassisType        string
	Quantity           int
	BatteryCapacityKWh *float64
}

// An electric vehicle model in the fleet with its derived ranges.
// Ranges is nil when the vehicle cannot be classified.
type VehicleSpec struct {
	Name               string
	ChassisType        ChassisType
	Quantity           int
	BatteryCapacityKWh *float64
	Ranges             *Ranges
}

// NewVehicleSpec validates a fleet entry. Unknown chassis or bad capacity
// still produce a spec (without ranges) alongside the validation error so the
// caller can warn and keep the row.
func NewVehicleSpec(e FleetEntry) (VehicleSpec, error) {
	spec := VehicleSpec{
		Name:     strings.TrimSpace(e.Name),
		Quantity: e.Quantity,
	}
	if e.BatteryCapacityKWh != nil {
		kwh := *e.BatteryCapacityKWh
		spec.BatteryCapacityKWh = &kwh
	}

	var problems []error
	chassis, err := ParseChassisType(e.ChassisType)
	if err != nil {
		spec.ChassisType = ChassisType(strings.TrimSpace(e.ChassisType))
		problems = append(problems, err)
	} else {
		spec.ChassisType = chassis
	}

	if e.BatteryCapacityKWh == nil || !(*e.BatteryCapacityKWh > 0) || math.IsInf(*e.BatteryCapacityKWh, 0) {
		problems = append(problems, ErrInvalidBatteryCapacity)
	}

	spec.Ranges = ComputeRanges(spec.BatteryCapacityKWh, spec.ChassisType)

	if len(problems) > 0 {
		return spec, fmt.Errorf("vehicle %q: %w", spec.Name, errors.Join(problems...))
	}
	return spec, nil
}

// ElectricFleet keeps electric entries only and returns one warning per
// entry that could not be fully validated.
func ElectricFleet(entries []FleetEntry) ([]VehicleSpec, []Warning) {
	specs := make([]VehicleSpec, 0, len(entries))
	var warnings []Warning

	for i, e := range entries {
		if !strings.EqualFold(string(e.Powertrain), string(PowertrainElectric)) {
			continue
		}
		if strings.TrimSpace(e.Name) == "" {
			warnings = append(warnings, Warning{Stage: StageFleet, Cause: fmt.Sprintf("fleet entry %d skipped: missing name", i+1)})
			continue
		}

		spec, err := NewVehicleSpec(e)
		if err != nil {
			warnings = append(warnings, Warning{Stage: StageFleet, Cause: err.Error()})
		}
		specs = append(specs, spec)
	}

	return specs, warnings
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round to n decimal places.
func Round(v float64, n int) float64 {
	p := math.Pow(10, float64(n))
	return math.Round(v*p) / p
}
