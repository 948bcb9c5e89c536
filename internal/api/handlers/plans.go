package handlers

import (
	"bus-electrification-service/internal/api/dto"
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/services"
	"fmt"
	"net/http"
)

type PlanHandler struct {
	Service *services.PlanningService
}

// Plan evaluates and classifies the posted routes in one request without
// creating a session.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	routes := make([]*domain.Route, 0, len(req.Routes))
	seen := make(map[string]bool, len(req.Routes))
	for _, rr := range req.Routes {
		route, err := rr.ToDomain(rr.ID)
		if err != nil {
			writeServiceError(w, r, "plan", err)
			return
		}
		if seen[route.ID] {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("duplicate route id %q", route.ID))
			return
		}
		seen[route.ID] = true
		routes = append(routes, route)
	}

	assignments, err := dto.ChassisAssignments(req.Assignments)
	if err != nil {
		writeServiceError(w, r, "plan", err)
		return
	}

	out, err := h.Service.EvaluateAndPlan(r.Context(), routes, dto.FleetEntries(req.Vehicles), assignments)
	if err != nil {
		writeServiceError(w, r, "plan", err)
		return
	}

	ev := dto.NewEvaluationResponse(out.Evaluation)
	writeJSON(w, r, http.StatusOK, dto.PlanResponse{
		Plan:          dto.NewPlanEntryResponses(out.Plan),
		Evaluation:    &ev,
		FleetWarnings: dto.NewWarningResponses(out.FleetWarnings),
	})
}
