package domain

import "fmt"

// Stage names the part of the planning pass a warning came from.
type Stage string

const (
	StageFleet    Stage = "fleet"
	StageRoute    Stage = "route"
	StageAMLeg    Stage = "am_leg"
	StagePMLeg    Stage = "pm_leg"
	StageOverlap  Stage = "dac_overlap"
	StageRegions  Stage = "dac_regions"
	StageSchedule Stage = "schedule"
	StagePlan     Stage = "plan"
)

// Non-fatal problem surfaced to the caller. RouteID is empty for fleet-level
// warnings.
type Warning struct {
	RouteID string
	Stage   Stage
	Cause   string
}

func (w Warning) String() string {
	if w.RouteID == "" {
		return fmt.Sprintf("%s: %s", w.Stage, w.Cause)
	}
	return fmt.Sprintf("route %s: %s: %s", w.RouteID, w.Stage, w.Cause)
}
