package domain

import "errors"

var ErrInvalidCoordinates = errors.New("malformed coordinates")
var ErrInvalidRouteID = errors.New("route id must be non-empty")
var ErrMissingDepot = errors.New("missing depot")
var ErrMissingDropoffs = errors.New("missing dropoffs")
var ErrStopIndexOutOfRange = errors.New("stop index out of range")
var ErrNoDropoffForBellTime = errors.New("bell time requires at least one dropoff")
var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")

// ErrUnknownChassis indicates a chassis type other than A or C. Vehicles with
// an unknown chassis are kept but can never be classified.
var ErrUnknownChassis = errors.New("unknown chassis type")
var ErrInvalidBatteryCapacity = errors.New("battery capacity must be a positive number")

var ErrRouteNotFound = errors.New("route not found")
var ErrSessionNotFound = errors.New("planning session not found")
var ErrNoRoutes = errors.New("no routes to evaluate")
var ErrNoElectricFleet = errors.New("fleet has no electric vehicles")
var ErrNotEvaluated = errors.New("routes have not been evaluated")
var ErrInvalidRegion = errors.New("invalid region geometry")
var ErrSessionChanged = errors.New("planning session changed during evaluation")
