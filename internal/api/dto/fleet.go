package dto

import "bus-electrification-service/internal/domain"

// Gas rows are accepted and ignored. Rows with an unknown chassis or a bad
// capacity are kept without ranges and come back as warnings.
type FleetEntryRequest struct {
	Name               string   `json:"name" validate:"required"`
	Powertrain         string   `json:"powertrain" validate:"required"`
	ChassisType        string   `json:"chassis_type"`
	Quantity           int      `json:"quantity" validate:"gte=0"`
	BatteryCapacityKWh *float64 `json:"battery_capacity_kwh"`
}

type FleetRequest struct {
	Vehicles []FleetEntryRequest `json:"vehicles" validate:"required,min=1,dive"`
}

func FleetEntries(reqs []FleetEntryRequest) []domain.FleetEntry {
	out := make([]domain.FleetEntry, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, domain.FleetEntry{
			Name:               r.Name,
			Powertrain:         domain.Powertrain(r.Powertrain),
			ChassisType:        r.ChassisType,
			Quantity:           r.Quantity,
			BatteryCapacityKWh: r.BatteryCapacityKWh,
		})
	}
	return out
}

type RangesResponse struct {
	ColdMiles    float64 `json:"cold_miles"`
	AverageMiles float64 `json:"average_miles"`
	WarmMiles    float64 `json:"warm_miles"`
}

type VehicleResponse struct {
	Name               string             `json:"name"`
	ChassisType        domain.ChassisType `json:"chassis_type"`
	Quantity           int                `json:"quantity"`
	BatteryCapacityKWh *float64           `json:"battery_capacity_kwh"`
	Ranges             *RangesResponse    `json:"ranges"`
}

type FleetResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Warnings []WarningResponse `json:"warnings"`
}

func NewVehicleResponses(fleet []domain.VehicleSpec) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(fleet))
	for _, v := range fleet {
		res := VehicleResponse{
			Name:               v.Name,
			ChassisType:        v.ChassisType,
			Quantity:           v.Quantity,
			BatteryCapacityKWh: v.BatteryCapacityKWh,
		}
		if v.Ranges != nil {
			res.Ranges = &RangesResponse{
				ColdMiles:    v.Ranges.Cold,
				AverageMiles: v.Ranges.Average,
				WarmMiles:    v.Ranges.Warm,
			}
		}
		out = append(out, res)
	}
	return out
}

type AssignmentsRequest struct {
	Assignments map[string]string `json:"assignments" validate:"required,min=1"`
}

// ChassisAssignments parses every value or fails on the first unknown chassis.
func ChassisAssignments(in map[string]string) (map[string]domain.ChassisType, error) {
	out := make(map[string]domain.ChassisType, len(in))
	for routeID, raw := range in {
		c, err := domain.ParseChassisType(raw)
		if err != nil {
			return nil, err
		}
		out[routeID] = c
	}
	return out, nil
}
