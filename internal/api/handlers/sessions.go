package handlers

import (
	"bus-electrification-service/internal/api/dto"
	"bus-electrification-service/internal/services"
	"net/http"
)

// SessionHandler exposes the planning-session lifecycle.
type SessionHandler struct {
	Service *services.PlanningService
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.CreateSession(r.Context())
	if err != nil {
		writeServiceError(w, r, "create session", err)
		return
	}

	w.Header().Set("Location", "/sessions/"+s.ID)
	writeJSON(w, r, http.StatusCreated, dto.NewSessionResponse(s))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.Session(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get session", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSessionResponse(s))
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete session", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PutFleet replaces the fleet. Only electric vehicles are kept.
func (h *SessionHandler) PutFleet(w http.ResponseWriter, r *http.Request) {
	var req dto.FleetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	warnings, err := h.Service.SetFleet(r.Context(), id, dto.FleetEntries(req.Vehicles))
	if err != nil {
		writeServiceError(w, r, "set fleet", err)
		return
	}

	s, err := h.Service.Session(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "set fleet", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FleetResponse{
		Vehicles: dto.NewVehicleResponses(s.Fleet),
		Warnings: dto.NewWarningResponses(warnings),
	})
}

// PutRoute adds or replaces one route by id.
func (h *SessionHandler) PutRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, err := req.ToDomain(r.PathValue("routeId"))
	if err != nil {
		writeServiceError(w, r, "put route", err)
		return
	}

	if err := h.Service.PutRoute(r.Context(), r.PathValue("id"), route); err != nil {
		writeServiceError(w, r, "put route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(route))
}

func (h *SessionHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteRoute(r.Context(), r.PathValue("id"), r.PathValue("routeId")); err != nil {
		writeServiceError(w, r, "delete route", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Evaluate runs the feasibility pass for every route in the session.
// External calls make this slow; the server write timeout accounts for it.
func (h *SessionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ev, err := h.Service.Evaluate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "evaluate session", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewEvaluationResponse(ev))
}

func (h *SessionHandler) PutAssignments(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignmentsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	assignments, err := dto.ChassisAssignments(req.Assignments)
	if err != nil {
		writeServiceError(w, r, "assign chassis", err)
		return
	}

	id := r.PathValue("id")
	if err := h.Service.AssignChassis(r.Context(), id, assignments); err != nil {
		writeServiceError(w, r, "assign chassis", err)
		return
	}

	s, err := h.Service.Session(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "assign chassis", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSessionResponse(s))
}

// Plan classifies the evaluated routes with the current chassis assignments.
func (h *SessionHandler) Plan(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.Plan(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "plan session", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlanResponse{Plan: dto.NewPlanEntryResponses(entries)})
}

// Reset returns the session to the created state.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Service.Reset(r.Context(), id); err != nil {
		writeServiceError(w, r, "reset session", err)
		return
	}

	s, err := h.Service.Session(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "reset session", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSessionResponse(s))
}
