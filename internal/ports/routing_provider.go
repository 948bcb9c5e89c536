package ports

import (
	"bus-electrification-service/internal/domain"
	"context"
)

// Ordered stop sequence for one directions query. Waypoints are visited in
// the given order.
type RouteRequest struct {
	Origin        domain.Coordinates
	Waypoints     []domain.Coordinates
	Destination   domain.Coordinates
	DepartureTime *domain.TimeOfDay
}

// Drive distance, duration and path geometry for a RouteRequest.
type RouteResult struct {
	TotalDistanceMiles   float64
	TotalDurationMinutes float64
	Legs                 []domain.LegDetail
	EncodedPath          string

	// Non-fatal problems, such as dropped waypoints.
	Warnings []string
}

// Contract for retrieving a driving route through an ordered set of stops.
type RoutingProvider interface {
	FetchRoute(ctx context.Context, req RouteRequest) (RouteResult, error)
}
