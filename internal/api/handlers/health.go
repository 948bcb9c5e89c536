package handlers

import (
	"net/http"
)

type HealthHandler struct {
	// Reports whether evaluations can reach the directions provider.
	RoutingConfigured func() bool
	RegionsLoaded     int
}

// Health is a liveness check that also reports degraded dependencies.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]any{
		"status":         "ok",
		"routing":        h.RoutingConfigured != nil && h.RoutingConfigured(),
		"regions_loaded": h.RegionsLoaded,
	}
	writeJSON(w, r, http.StatusOK, res)
}
