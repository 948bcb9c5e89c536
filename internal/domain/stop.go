package domain

type StopRole string

const (
	RoleDepot   StopRole = "Depot"
	RolePickup  StopRole = "Pickup"
	RoleDropoff StopRole = "Dropoff"
)

// Represents a single geographic point on a school-bus route.
// Sequence is the caller-assigned visiting order within the route; BellTime
// is only ever set on the earliest dropoff.
type Stop struct {
	Location Coordinates
	Role     StopRole
	Sequence int
	BellTime *TimeOfDay
}
