package domain

import (
	"fmt"
	"slices"
	"time"
)

type SessionState string

const (
	SessionCreated   SessionState = "created"
	SessionPopulated SessionState = "populated"
	SessionEvaluated SessionState = "evaluated"
	SessionPlanned   SessionState = "planned"
)

// PlanningSession holds one planner's routes, fleet and computed results.
// Changing routes or fleet bumps Version and drops computed results.
type PlanningSession struct {
	ID            string
	State         SessionState
	Version       int
	Routes        []*Route
	Fleet         []VehicleSpec
	FleetWarnings []Warning
	Assignments   map[string]ChassisType
	Evaluation    *Evaluation
	Plan          []PlanEntry
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewPlanningSession(id string, now time.Time) *PlanningSession {
	return &PlanningSession{
		ID:          id,
		State:       SessionCreated,
		Assignments: make(map[string]ChassisType),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PutRoute adds r or replaces the route with the same id, keeping its position.
func (s *PlanningSession) PutRoute(r *Route, now time.Time) {
	r = r.Clone()
	if i := s.routeIndex(r.ID); i >= 0 {
		s.Routes[i] = r
	} else {
		s.Routes = append(s.Routes, r)
	}
	s.supersede(now)
}

func (s *PlanningSession) DeleteRoute(id string, now time.Time) error {
	i := s.routeIndex(id)
	if i < 0 {
		return fmt.Errorf("delete route %q: %w", id, ErrRouteNotFound)
	}
	s.Routes = slices.Delete(s.Routes, i, i+1)
	delete(s.Assignments, id)
	s.supersede(now)
	return nil
}

func (s *PlanningSession) Route(id string) (*Route, bool) {
	if i := s.routeIndex(id); i >= 0 {
		return s.Routes[i], true
	}
	return nil, false
}

func (s *PlanningSession) SetFleet(fleet []VehicleSpec, warnings []Warning, now time.Time) {
	s.Fleet = slices.Clone(fleet)
	s.FleetWarnings = slices.Clone(warnings)
	s.supersede(now)
}

// ReadyToEvaluate requires at least one route and one electric vehicle.
func (s *PlanningSession) ReadyToEvaluate() error {
	if len(s.Routes) == 0 {
		return ErrNoRoutes
	}
	if len(s.Fleet) == 0 {
		return ErrNoElectricFleet
	}
	return nil
}

// RecordEvaluation stores ev when the session is still at version.
func (s *PlanningSession) RecordEvaluation(ev Evaluation, version int, now time.Time) error {
	if s.Version != version {
		return fmt.Errorf("record evaluation for version %d, session at %d: %w", version, s.Version, ErrSessionChanged)
	}
	s.Evaluation = &ev
	s.Plan = nil
	s.State = SessionEvaluated
	s.UpdatedAt = now
	return nil
}

// AssignChassis records the chassis chosen for a route and drops any plan
// built from older assignments.
func (s *PlanningSession) AssignChassis(routeID string, c ChassisType, now time.Time) error {
	if _, ok := s.Route(routeID); !ok {
		return fmt.Errorf("assign chassis to %q: %w", routeID, ErrRouteNotFound)
	}
	parsed, err := ParseChassisType(string(c))
	if err != nil {
		return fmt.Errorf("assign chassis to %q: %w", routeID, err)
	}
	s.Assignments[routeID] = parsed
	if s.State == SessionPlanned {
		s.Plan = nil
		s.State = SessionEvaluated
	}
	s.UpdatedAt = now
	return nil
}

func (s *PlanningSession) RecordPlan(entries []PlanEntry, now time.Time) error {
	if s.Evaluation == nil {
		return ErrNotEvaluated
	}
	s.Plan = entries
	s.State = SessionPlanned
	s.UpdatedAt = now
	return nil
}

// Reset clears everything but the id.
func (s *PlanningSession) Reset(now time.Time) {
	s.Routes = nil
	s.Fleet = nil
	s.FleetWarnings = nil
	s.Assignments = make(map[string]ChassisType)
	s.Evaluation = nil
	s.Plan = nil
	s.State = SessionCreated
	s.Version++
	s.UpdatedAt = now
}

func (s *PlanningSession) Clone() *PlanningSession {
	out := *s
	out.Routes = make([]*Route, len(s.Routes))
	for i, r := range s.Routes {
		out.Routes[i] = r.Clone()
	}
	out.Fleet = slices.Clone(s.Fleet)
	out.FleetWarnings = slices.Clone(s.FleetWarnings)
	out.Assignments = make(map[string]ChassisType, len(s.Assignments))
	for k, v := range s.Assignments {
		out.Assignments[k] = v
	}
	if s.Evaluation != nil {
		ev := Evaluation{
			Results:  slices.Clone(s.Evaluation.Results),
			Skipped:  slices.Clone(s.Evaluation.Skipped),
			Warnings: slices.Clone(s.Evaluation.Warnings),
		}
		out.Evaluation = &ev
	}
	out.Plan = slices.Clone(s.Plan)
	return &out
}

func (s *PlanningSession) supersede(now time.Time) {
	s.Version++
	s.Evaluation = nil
	s.Plan = nil
	if len(s.Routes) > 0 || len(s.Fleet) > 0 {
		s.State = SessionPopulated
	} else {
		s.State = SessionCreated
	}
	s.UpdatedAt = now
}

func (s *PlanningSession) routeIndex(id string) int {
	return slices.IndexFunc(s.Routes, func(r *Route) bool { return r.ID == id })
}
