package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Route aggregate: one optional depot plus pickups and dropoffs kept
// stable-sorted by sequence. A Route is owned by a single planning session.
type Route struct {
	ID       string
	Depot    *Stop
	Pickups  []Stop
	Dropoffs []Stop
}

func NewRoute(id string) (*Route, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidRouteID
	}
	return &Route{ID: id}, nil
}

// Add or replace the depot. The depot always sits at sequence 0.
func (r *Route) SetDepot(loc Coordinates) error {
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("route %s: set depot: %w", r.ID, err)
	}
	r.Depot = &Stop{Location: loc, Role: RoleDepot, Sequence: 0}
	return nil
}

func (r *Route) RemoveDepot() {
	r.Depot = nil
}

// Append a pickup at the next sequence number.
func (r *Route) AddPickup(loc Coordinates) error {
	return r.AddPickupAt(loc, r.nextSequence())
}

// Insert a pickup with a caller-assigned sequence (bulk import path).
func (r *Route) AddPickupAt(loc Coordinates, seq int) error {
	if err := r.checkStop(loc, seq); err != nil {
		return fmt.Errorf("route %s: add pickup: %w", r.ID, err)
	}
	r.Pickups = insertSorted(r.Pickups, Stop{Location: loc, Role: RolePickup, Sequence: seq})
	return nil
}

// Append a dropoff at the next sequence number.
func (r *Route) AddDropoff(loc Coordinates) error {
	return r.AddDropoffAt(loc, r.nextSequence(), nil)
}

// Insert a dropoff with a caller-assigned sequence. A bell time is accepted
// only when no earlier bell time exists on the route.
func (r *Route) AddDropoffAt(loc Coordinates, seq int, bell *TimeOfDay) error {
	if err := r.checkStop(loc, seq); err != nil {
		return fmt.Errorf("route %s: add dropoff: %w", r.ID, err)
	}

	stop := Stop{Location: loc, Role: RoleDropoff, Sequence: seq}
	if bell != nil && r.FirstBellTime() == nil {
		b := *bell
		stop.BellTime = &b
	}
	r.Dropoffs = insertSorted(r.Dropoffs, stop)
	r.normalizeBellTime()
	return nil
}

// Remove the i-th pickup in sequence order. Remaining sequence values are kept.
func (r *Route) RemovePickup(i int) error {
	if i < 0 || i >= len(r.Pickups) {
		return fmt.Errorf("route %s: remove pickup %d: %w", r.ID, i, ErrStopIndexOutOfRange)
	}
	r.Pickups = slices.Delete(r.Pickups, i, i+1)
	return nil
}

// Remove the i-th dropoff in sequence order. Removing the first dropoff drops
// its bell time with it.
func (r *Route) RemoveDropoff(i int) error {
	if i < 0 || i >= len(r.Dropoffs) {
		return fmt.Errorf("route %s: remove dropoff %d: %w", r.ID, i, ErrStopIndexOutOfRange)
	}
	r.Dropoffs = slices.Delete(r.Dropoffs, i, i+1)
	return nil
}

// Attach the bell time to the first dropoff; any other bell time is cleared.
func (r *Route) SetBellTime(bell TimeOfDay) error {
	if len(r.Dropoffs) == 0 {
		return fmt.Errorf("route %s: set bell time: %w", r.ID, ErrNoDropoffForBellTime)
	}
	for i := range r.Dropoffs {
		r.Dropoffs[i].BellTime = nil
	}
	r.Dropoffs[0].BellTime = &bell
	return nil
}

// Return the bell time of the first dropoff, or nil.
func (r *Route) FirstBellTime() *TimeOfDay {
	for _, d := range r.Dropoffs {
		if d.BellTime != nil {
			b := *d.BellTime
			return &b
		}
	}
	return nil
}

// Routable reports why the route cannot be evaluated, or nil.
func (r *Route) Routable() error {
	if r.Depot == nil {
		return ErrMissingDepot
	}
	if len(r.Dropoffs) == 0 {
		return ErrMissingDropoffs
	}
	return nil
}

func (r *Route) FirstDropoff() (Stop, bool) {
	if len(r.Dropoffs) == 0 {
		return Stop{}, false
	}
	return r.Dropoffs[0], true
}

func (r *Route) LastDropoff() (Stop, bool) {
	if len(r.Dropoffs) == 0 {
		return Stop{}, false
	}
	return r.Dropoffs[len(r.Dropoffs)-1], true
}

// Clone returns a deep copy so callers cannot mutate session-owned state.
func (r *Route) Clone() *Route {
	out := &Route{
		ID:       r.ID,
		Pickups:  cloneStops(r.Pickups),
		Dropoffs: cloneStops(r.Dropoffs),
	}
	if r.Depot != nil {
		d := *r.Depot
		out.Depot = &d
	}
	return out
}

func (r *Route) checkStop(loc Coordinates, seq int) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	if seq < 0 {
		return fmt.Errorf("sequence %d must be non-negative", seq)
	}
	return nil
}

// Next sequence number after every stop currently on the route.
func (r *Route) nextSequence() int {
	next := 1
	for _, s := range r.Pickups {
		next = max(next, s.Sequence+1)
	}
	for _, s := range r.Dropoffs {
		next = max(next, s.Sequence+1)
	}
	return next
}

// Keep the bell time on the earliest dropoff when a dropoff with a lower
// sequence is inserted ahead of it.
func (r *Route) normalizeBellTime() {
	bell := r.FirstBellTime()
	if bell == nil {
		return
	}
	for i := range r.Dropoffs {
		r.Dropoffs[i].BellTime = nil
	}
	r.Dropoffs[0].BellTime = bell
}

func insertSorted(stops []Stop, s Stop) []Stop {
	stops = append(stops, s)
	slices.SortStableFunc(stops, func(a, b Stop) int { return cmp.Compare(a.Sequence, b.Sequence) })
	return stops
}

func cloneStops(stops []Stop) []Stop {
	if stops == nil {
		return nil
	}
	out := make([]Stop, len(stops))
	for i, s := range stops {
		out[i] = s
		if s.BellTime != nil {
			b := *s.BellTime
			out[i].BellTime = &b
		}
	}
	return out
}
