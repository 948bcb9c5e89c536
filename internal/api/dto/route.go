package dto

import (
	"bus-electrification-service/internal/domain"
	"fmt"
)

type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

// Sequence is optional; stops without one are appended in request order.
type StopRequest struct {
	PointRequest
	Sequence *int `json:"sequence,omitempty" validate:"omitempty,gte=0"`
}

type RouteRequest struct {
	Depot    *PointRequest     `json:"depot"`
	Pickups  []StopRequest     `json:"pickups" validate:"dive"`
	Dropoffs []StopRequest     `json:"dropoffs" validate:"dive"`
	BellTime *domain.TimeOfDay `json:"bell_time,omitempty"`
}

// Route with its id, as sent to the stateless plan endpoint.
type IdentifiedRouteRequest struct {
	ID string `json:"id" validate:"required"`
	RouteRequest
}

func (p PointRequest) coordinates() (domain.Coordinates, error) {
	if p.Lat == nil || p.Lng == nil {
		return domain.Coordinates{}, fmt.Errorf("lat and lng are required: %w", domain.ErrInvalidCoordinates)
	}
	return domain.NewCoordinates([]float64{*p.Lat, *p.Lng})
}

// ToDomain builds the route aggregate. A bell time requires at least one dropoff.
func (r RouteRequest) ToDomain(id string) (*domain.Route, error) {
	route, err := domain.NewRoute(id)
	if err != nil {
		return nil, err
	}

	if r.Depot != nil {
		loc, err := r.Depot.coordinates()
		if err != nil {
			return nil, fmt.Errorf("depot: %w", err)
		}
		if err := route.SetDepot(loc); err != nil {
			return nil, err
		}
	}

	for i, s := range r.Pickups {
		loc, err := s.coordinates()
		if err != nil {
			return nil, fmt.Errorf("pickup %d: %w", i, err)
		}
		if s.Sequence == nil {
			err = route.AddPickup(loc)
		} else {
			err = route.AddPickupAt(loc, *s.Sequence)
		}
		if err != nil {
			return nil, err
		}
	}

	for i, s := range r.Dropoffs {
		loc, err := s.coordinates()
		if err != nil {
			return nil, fmt.Errorf("dropoff %d: %w", i, err)
		}
		if s.Sequence == nil {
			err = route.AddDropoff(loc)
		} else {
			err = route.AddDropoffAt(loc, *s.Sequence, nil)
		}
		if err != nil {
			return nil, err
		}
	}

	if r.BellTime != nil {
		if err := route.SetBellTime(*r.BellTime); err != nil {
			return nil, err
		}
	}

	return route, nil
}

type StopResponse struct {
	Lat      float64           `json:"lat"`
	Lng      float64           `json:"lng"`
	Role     domain.StopRole   `json:"role"`
	Sequence int               `json:"sequence"`
	BellTime *domain.TimeOfDay `json:"bell_time,omitempty"`
}

type RouteResponse struct {
	ID            string            `json:"id"`
	Depot         *StopResponse     `json:"depot"`
	Pickups       []StopResponse    `json:"pickups"`
	Dropoffs      []StopResponse    `json:"dropoffs"`
	FirstBellTime *domain.TimeOfDay `json:"first_bell_time"`
}

func NewRouteResponse(r *domain.Route) RouteResponse {
	res := RouteResponse{
		ID:            r.ID,
		Pickups:       stopResponses(r.Pickups),
		Dropoffs:      stopResponses(r.Dropoffs),
		FirstBellTime: r.FirstBellTime(),
	}
	if r.Depot != nil {
		d := stopResponse(*r.Depot)
		res.Depot = &d
	}
	return res
}

func stopResponse(s domain.Stop) StopResponse {
	return StopResponse{
		Lat:      s.Location.Lat,
		Lng:      s.Location.Lng,
		Role:     s.Role,
		Sequence: s.Sequence,
		BellTime: s.BellTime,
	}
}

func stopResponses(stops []domain.Stop) []StopResponse {
	out := make([]StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, stopResponse(s))
	}
	return out
}
