package directions

import (
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/lib/geo"
	"bus-electrification-service/internal/ports"
	"context"
	"fmt"
	"sync"

	"github.com/paulmach/orb"
)

// MockLeg is a canned answer for one origin/destination pair. A nil Path is
// replaced by the straight line through the requested stops.
type MockLeg struct {
	From, To domain.Coordinates
	Miles    float64
	Minutes  float64
	Path     orb.LineString
	Err      error
}

type MockRoutingProvider struct {
	mu    sync.Mutex
	legs  map[string]MockLeg
	calls []ports.RouteRequest
}

func NewMockRoutingProvider(legs []MockLeg) *MockRoutingProvider {
	m := make(map[string]MockLeg, len(legs))
	for _, l := range legs {
		m[l.From.String()+"|"+l.To.String()] = l
	}
	return &MockRoutingProvider{legs: m}
}

func (p *MockRoutingProvider) FetchRoute(ctx context.Context, req ports.RouteRequest) (ports.RouteResult, error) {
	p.mu.Lock()
	p.calls = append(p.calls, req)
	leg, ok := p.legs[req.Origin.String()+"|"+req.Destination.String()]
	p.mu.Unlock()

	if !ok {
		return ports.RouteResult{}, &ProviderError{
			Status:  "NOT_FOUND",
			Message: fmt.Sprintf("missing pair %q -> %q", req.Origin, req.Destination),
		}
	}
	if leg.Err != nil {
		return ports.RouteResult{}, leg.Err
	}

	path := leg.Path
	if path == nil {
		path = append(path, orb.Point{req.Origin.Lng, req.Origin.Lat})
		for _, wp := range req.Waypoints {
			path = append(path, orb.Point{wp.Lng, wp.Lat})
		}
		path = append(path, orb.Point{req.Destination.Lng, req.Destination.Lat})
	}

	return ports.RouteResult{
		TotalDistanceMiles:   leg.Miles,
		TotalDurationMinutes: leg.Minutes,
		Legs: []domain.LegDetail{{
			StartAddress:    req.Origin.String(),
			EndAddress:      req.Destination.String(),
			DistanceMiles:   domain.Round(leg.Miles, 2),
			DurationMinutes: domain.Round(leg.Minutes, 1),
		}},
		EncodedPath: geo.EncodePath(path),
	}, nil
}

// Calls returns every request received so far, in order.
func (p *MockRoutingProvider) Calls() []ports.RouteRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ports.RouteRequest, len(p.calls))
	copy(out, p.calls)
	return out
}
