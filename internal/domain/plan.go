package domain

type Tier string

const (
	TierPreferred   Tier = "Preferred"
	TierAllWeather  Tier = "AllWeather"
	TierMildWeather Tier = "MildWeather"
	TierWarmOnly    Tier = "WarmOnly"
	TierNotFeasible Tier = "NotFeasible"
)

// DesignatedAreaThreshold is the DAC percentage a route must exceed to be
// eligible for the Preferred tier.
const DesignatedAreaThreshold = 70.0

// Rank orders tiers from most to least desirable.
func (t Tier) Rank() int {
	switch t {
	case TierPreferred:
		return 0
	case TierAllWeather:
		return 1
	case TierMildWeather:
		return 2
	case TierWarmOnly:
		return 3
	}
	return 4
}

// Label is the planner-facing wording of the tier.
func (t Tier) Label() string {
	switch t {
	case TierPreferred:
		return "Preferred - All Weather"
	case TierAllWeather:
		return "OK in All Weather"
	case TierMildWeather:
		return "OK > 50°F Weather"
	case TierWarmOnly:
		return "OK > 70°F Weather"
	}
	return "NOT FEASIBLE (No Bus)"
}

// One route's row in the electrification plan.
type PlanEntry struct {
	RouteID                 string
	ChassisType             ChassisType
	RoundTripMiles          float64
	PercentInDesignatedArea float64
	ColdEligible            []string
	AverageEligible         []string
	WarmEligible            []string
	SuggestedDepartureTime  *TimeOfDay
	Tier                    Tier
}

// EligibleFor returns the vehicle names eligible in band b.
func (e PlanEntry) EligibleFor(b WeatherBand) []string {
	switch b {
	case BandCold:
		return e.ColdEligible
	case BandAverage:
		return e.AverageEligible
	case BandWarm:
		return e.WarmEligible
	}
	return nil
}

// EligibleForTier returns the band list that justifies the entry's tier.
func (e PlanEntry) EligibleForTier() []string {
	switch e.Tier {
	case TierPreferred, TierAllWeather:
		return e.ColdEligible
	case TierMildWeather:
		return e.AverageEligible
	case TierWarmOnly:
		return e.WarmEligible
	}
	return nil
}
