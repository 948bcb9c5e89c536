package domain

import (
	"errors"
	"math"
	"testing"
)

func mustCoords(t *testing.T, lat, lng float64) Coordinates {
	t.Helper()
	c, err := NewCoordinates([]float64{lat, lng})
	if err != nil {
		t.Fatalf("NewCoordinates(%v, %v): %v", lat, lng, err)
	}
	return c
}

func TestNewCoordinatesRejectsMalformedPairs(t *testing.T) {
	bad := [][]float64{
		nil,
		{1},
		{1, 2, 3},
		{math.NaN(), 1},
		{1, math.Inf(1)},
		{91, 0},
		{0, -181},
	}
	for _, pair := range bad {
		if _, err := NewCoordinates(pair); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("NewCoordinates(%v) err = %v, want ErrInvalidCoordinates", pair, err)
		}
	}
}

func TestRouteAppendsAtNextSequence(t *testing.T) {
	r, err := NewRoute("R1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_ = r.SetDepot(mustCoords(t, 34.0, -118.0))
	_ = r.AddPickup(mustCoords(t, 34.1, -118.1))
	_ = r.AddDropoff(mustCoords(t, 34.2, -118.2))
	_ = r.AddPickup(mustCoords(t, 34.3, -118.3))

	if r.Depot.Sequence != 0 {
		t.Errorf("depot sequence = %d, want 0", r.Depot.Sequence)
	}
	if got := []int{r.Pickups[0].Sequence, r.Pickups[1].Sequence}; got[0] != 1 || got[1] != 3 {
		t.Errorf("pickup sequences = %v, want [1 3]", got)
	}
	if r.Dropoffs[0].Sequence != 2 {
		t.Errorf("dropoff sequence = %d, want 2", r.Dropoffs[0].Sequence)
	}
}

func TestRouteMalformedCoordinatesIsNoOp(t *testing.T) {
	r, _ := NewRoute("R1")

	err := r.AddPickup(Coordinates{Lat: math.NaN(), Lng: 1})
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("err = %v, want ErrInvalidCoordinates", err)
	}
	if len(r.Pickups) != 0 {
		t.Errorf("pickups = %d, want 0", len(r.Pickups))
	}

	if err := r.SetDepot(Coordinates{Lat: 100, Lng: 0}); !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("err = %v, want ErrInvalidCoordinates", err)
	}
	if r.Depot != nil {
		t.Errorf("depot should remain unset")
	}
}

func TestRouteStableSortBySequence(t *testing.T) {
	r, _ := NewRoute("R1")
	a := mustCoords(t, 1, 1)
	b := mustCoords(t, 2, 2)
	c := mustCoords(t, 3, 3)

	_ = r.AddPickupAt(a, 5)
	_ = r.AddPickupAt(b, 2)
	_ = r.AddPickupAt(c, 5)

	want := []Coordinates{b, a, c}
	for i, p := range r.Pickups {
		if p.Location != want[i] {
			t.Errorf("pickup[%d] = %v, want %v", i, p.Location, want[i])
		}
	}
}

func TestRouteRemoveKeepsSequenceValues(t *testing.T) {
	r, _ := NewRoute("R1")
	_ = r.AddPickup(mustCoords(t, 1, 1))
	_ = r.AddPickup(mustCoords(t, 2, 2))
	_ = r.AddPickup(mustCoords(t, 3, 3))

	if err := r.RemovePickup(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Pickups) != 2 || r.Pickups[0].Sequence != 1 || r.Pickups[1].Sequence != 3 {
		t.Errorf("pickups after removal = %+v", r.Pickups)
	}

	if err := r.RemovePickup(5); !errors.Is(err, ErrStopIndexOutOfRange) {
		t.Errorf("err = %v, want ErrStopIndexOutOfRange", err)
	}
}

func TestRouteBellTimeOnlyOnFirstDropoff(t *testing.T) {
	r, _ := NewRoute("R1")
	eight, _ := NewTimeOfDay(8, 0)
	nine, _ := NewTimeOfDay(9, 0)

	if err := r.SetBellTime(eight); !errors.Is(err, ErrNoDropoffForBellTime) {
		t.Fatalf("err = %v, want ErrNoDropoffForBellTime", err)
	}

	_ = r.AddDropoffAt(mustCoords(t, 1, 1), 4, &eight)
	_ = r.AddDropoffAt(mustCoords(t, 2, 2), 6, &nine)

	if r.Dropoffs[1].BellTime != nil {
		t.Errorf("second dropoff should not carry a bell time")
	}

	// An earlier dropoff takes over the bell time.
	_ = r.AddDropoffAt(mustCoords(t, 3, 3), 2, nil)
	if r.Dropoffs[0].BellTime == nil || r.Dropoffs[0].BellTime.String() != "08:00" {
		t.Errorf("first dropoff bell = %v, want 08:00", r.Dropoffs[0].BellTime)
	}

	count := 0
	for _, d := range r.Dropoffs {
		if d.BellTime != nil {
			count++
		}
	}
	if count != 1 {
		t.Errorf("bell times on route = %d, want 1", count)
	}

	_ = r.SetBellTime(nine)
	if got := r.FirstBellTime(); got == nil || got.String() != "09:00" {
		t.Errorf("FirstBellTime = %v, want 09:00", got)
	}
}

func TestRouteRoutable(t *testing.T) {
	r, _ := NewRoute("R1")
	if err := r.Routable(); !errors.Is(err, ErrMissingDepot) {
		t.Errorf("err = %v, want ErrMissingDepot", err)
	}

	_ = r.SetDepot(mustCoords(t, 1, 1))
	if err := r.Routable(); !errors.Is(err, ErrMissingDropoffs) {
		t.Errorf("err = %v, want ErrMissingDropoffs", err)
	}

	_ = r.AddDropoff(mustCoords(t, 2, 2))
	if err := r.Routable(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewRouteRequiresID(t *testing.T) {
	if _, err := NewRoute("  "); !errors.Is(err, ErrInvalidRouteID) {
		t.Errorf("err = %v, want ErrInvalidRouteID", err)
	}
}
