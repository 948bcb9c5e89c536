package api

import (
	"bus-electrification-service/internal/api/handlers"
	"bus-electrification-service/internal/platform/metrics"
	"bus-electrification-service/internal/services"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.PlanningService, m *metrics.Collector) http.Handler {
	mux := http.NewServeMux()

	health := &handlers.HealthHandler{
		RoutingConfigured: svc.RoutingConfigured,
		RegionsLoaded:     svc.RegionCount(),
	}
	sessions := &handlers.SessionHandler{Service: svc}
	plans := &handlers.PlanHandler{Service: svc}

	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("GET /metrics", m.Handler())

	mux.HandleFunc("POST /sessions", sessions.Create)
	mux.HandleFunc("GET /sessions/{id}", sessions.Get)
	mux.HandleFunc("DELETE /sessions/{id}", sessions.Delete)
	mux.HandleFunc("PUT /sessions/{id}/fleet", sessions.PutFleet)
	mux.HandleFunc("PUT /sessions/{id}/routes/{routeId}", sessions.PutRoute)
	mux.HandleFunc("DELETE /sessions/{id}/routes/{routeId}", sessions.DeleteRoute)
	mux.HandleFunc("POST /sessions/{id}/evaluate", sessions.Evaluate)
	mux.HandleFunc("PUT /sessions/{id}/assignments", sessions.PutAssignments)
	mux.HandleFunc("GET /sessions/{id}/plan", sessions.Plan)
	mux.HandleFunc("POST /sessions/{id}/reset", sessions.Reset)

	mux.HandleFunc("POST /plans", plans.Plan)

	return requestIDMiddleware(loggingMiddleware(m, otelhttp.NewHandler(mux, "http.server")))
}
