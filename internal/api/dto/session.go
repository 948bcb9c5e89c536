package dto

import (
	"bus-electrification-service/internal/domain"
	"time"
)

type SessionResponse struct {
	ID            string                        `json:"id"`
	State         domain.SessionState           `json:"state"`
	Version       int                           `json:"version"`
	Routes        []RouteResponse               `json:"routes"`
	Fleet         []VehicleResponse             `json:"fleet"`
	FleetWarnings []WarningResponse             `json:"fleet_warnings"`
	Assignments   map[string]domain.ChassisType `json:"assignments"`
	Evaluation    *EvaluationResponse           `json:"evaluation"`
	Plan          []PlanEntryResponse           `json:"plan"`
	CreatedAt     time.Time                     `json:"created_at"`
	UpdatedAt     time.Time                     `json:"updated_at"`
}

func NewSessionResponse(s *domain.PlanningSession) SessionResponse {
	res := SessionResponse{
		ID:            s.ID,
		State:         s.State,
		Version:       s.Version,
		Routes:        make([]RouteResponse, 0, len(s.Routes)),
		Fleet:         NewVehicleResponses(s.Fleet),
		FleetWarnings: NewWarningResponses(s.FleetWarnings),
		Assignments:   s.Assignments,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}

	for _, r := range s.Routes {
		res.Routes = append(res.Routes, NewRouteResponse(r))
	}
	if s.Evaluation != nil {
		ev := NewEvaluationResponse(*s.Evaluation)
		res.Evaluation = &ev
	}
	if s.Plan != nil {
		res.Plan = NewPlanEntryResponses(s.Plan)
	}
	if res.Assignments == nil {
		res.Assignments = map[string]domain.ChassisType{}
	}

	return res
}
