package services

import (
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/platform/obs"
	"bus-electrification-service/internal/ports"
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/time/rate"
)

var ErrRoutingNotConfigured = errors.New("routing provider is not configured")

// DepartureBuffer is added to the AM drive time when suggesting when to
// leave the depot.
const DepartureBuffer = 15 * time.Minute

const (
	SkipMissingDepot    = "missing depot"
	SkipMissingDropoffs = "missing dropoffs"
)

// EvaluatorMetrics receives observations from evaluation passes.
// Implementations must be safe for concurrent use.
type EvaluatorMetrics interface {
	ObserveLeg(stage domain.Stage, ok bool)
	ObserveSkipped(reason string)
	ObservePass(d time.Duration, routes int)
}

type EvaluatorConfig struct {
	Regions []domain.Region

	// Minimum spacing between directions calls. Zero disables throttling.
	MinInterval time.Duration

	// Optional.
	Metrics EvaluatorMetrics
}

// Evaluator computes AM/PM legs, designated-area overlap and a suggested
// departure time for each route, one route at a time.
type Evaluator struct {
	provider ports.RoutingProvider
	regions  []domain.Region
	limiter  *rate.Limiter
	metrics  EvaluatorMetrics
}

func NewEvaluator(provider ports.RoutingProvider, cfg EvaluatorConfig) *Evaluator {
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &Evaluator{
		provider: provider,
		regions:  cfg.Regions,
		limiter:  rate.NewLimiter(limit, 1),
		metrics:  cfg.Metrics,
	}
}

// Configured reports whether Evaluate can run.
func (e *Evaluator) Configured() bool {
	return e != nil && e.provider != nil
}

// Evaluate processes routes in order. Leg failures are reported as warnings
// and never abort the pass. Cancellation is honored between routes; the
// returned Evaluation then holds the routes finished so far.
func (e *Evaluator) Evaluate(ctx context.Context, routes []*domain.Route) (_ domain.Evaluation, err error) {
	defer obs.Time(ctx, "services.Evaluate")(&err)

	if !e.Configured() {
		return domain.Evaluation{}, ErrRoutingNotConfigured
	}

	start := time.Now()
	ev := domain.Evaluation{
		Results: make([]domain.FeasibilityResult, 0, len(routes)),
	}

	// In-flight provider calls finish on their own; the client timeout bounds them.
	legCtx := context.WithoutCancel(ctx)

	for _, r := range routes {
		if err := ctx.Err(); err != nil {
			return ev, fmt.Errorf("evaluate routes: %w", err)
		}
		if r == nil {
			continue
		}

		if reason, skip := skipReason(r); skip {
			ev.Skipped = append(ev.Skipped, domain.SkippedRoute{RouteID: r.ID, Reason: reason})
			if e.metrics != nil {
				e.metrics.ObserveSkipped(reason)
			}
			slog.InfoContext(ctx, "route skipped", "route_id", r.ID, "reason", reason)
			continue
		}

		result, warnings := e.evaluateRoute(legCtx, r)
		ev.Results = append(ev.Results, result)
		ev.Warnings = append(ev.Warnings, warnings...)
	}

	if e.metrics != nil {
		e.metrics.ObservePass(time.Since(start), len(routes))
	}

	return ev, nil
}

func skipReason(r *domain.Route) (string, bool) {
	err := r.Routable()
	switch {
	case err == nil:
		return "", false
	case errors.Is(err, domain.ErrMissingDepot):
		return SkipMissingDepot, true
	case errors.Is(err, domain.ErrMissingDropoffs):
		return SkipMissingDropoffs, true
	}
	return err.Error(), true
}

func (e *Evaluator) evaluateRoute(ctx context.Context, r *domain.Route) (domain.FeasibilityResult, []domain.Warning) {
	result := domain.FeasibilityResult{
		RouteID: r.ID,

		// Copied from the route even when the AM leg fails.
		FirstBellTime: r.FirstBellTime(),
	}

	var warnings []domain.Warning
	warn := func(stage domain.Stage, cause string) {
		warnings = append(warnings, domain.Warning{RouteID: r.ID, Stage: stage, Cause: cause})
		slog.WarnContext(ctx, "route warning", "route_id", r.ID, "stage", stage, "cause", cause)
	}

	am, err := e.fetch(ctx, domain.StageAMLeg, AMRequest(r))
	if err != nil {
		warn(domain.StageAMLeg, err.Error())
	} else {
		for _, w := range am.Warnings {
			warn(domain.StageAMLeg, w)
		}

		result.AM = &domain.LegResult{
			DistanceMiles:   domain.Round(am.TotalDistanceMiles, 2),
			DurationMinutes: domain.Round(am.TotalDurationMinutes, 1),
			PathGeometry:    am.EncodedPath,
		}
		result.Legs = am.Legs

		drive := domain.Round(am.TotalDurationMinutes, 1)
		result.DriveTimeToFirstSchool = &drive

		if result.FirstBellTime != nil {
			dep := SuggestedDeparture(*result.FirstBellTime, am.TotalDurationMinutes)
			result.SuggestedDepartureTime = &dep
		}

		if am.EncodedPath != "" && len(e.regions) > 0 {
			overlap := PercentOverlap(am.EncodedPath, e.regions)
			for _, w := range overlap.Warnings {
				warn(domain.StageOverlap, w)
			}
			result.PercentInDesignatedArea = domain.Round(overlap.Percent, 2)
		}
	}

	pm, err := e.fetch(ctx, domain.StagePMLeg, PMRequest(r))
	if err != nil {
		warn(domain.StagePMLeg, err.Error())
	} else {
		for _, w := range pm.Warnings {
			warn(domain.StagePMLeg, w)
		}

		result.PM = &domain.LegResult{
			DistanceMiles:   domain.Round(pm.TotalDistanceMiles, 2),
			DurationMinutes: domain.Round(pm.TotalDurationMinutes, 1),
			PathGeometry:    pm.EncodedPath,
		}
	}

	return result, warnings
}

func (e *Evaluator) fetch(ctx context.Context, stage domain.Stage, req ports.RouteRequest) (ports.RouteResult, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return ports.RouteResult{}, fmt.Errorf("throttle: %w", err)
	}

	res, err := e.provider.FetchRoute(ctx, req)
	if e.metrics != nil {
		e.metrics.ObserveLeg(stage, err == nil)
	}
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("fetch %s: %w", stage, err)
	}
	return res, nil
}

// AMRequest runs depot -> pickups -> later dropoffs -> first dropoff, with
// the first bell time as the departure hint. The route must be routable.
func AMRequest(r *domain.Route) ports.RouteRequest {
	waypoints := make([]domain.Coordinates, 0, len(r.Pickups)+len(r.Dropoffs)-1)
	for _, s := range r.Pickups {
		waypoints = append(waypoints, s.Location)
	}
	for _, s := range r.Dropoffs[1:] {
		waypoints = append(waypoints, s.Location)
	}

	return ports.RouteRequest{
		Origin:        r.Depot.Location,
		Waypoints:     waypoints,
		Destination:   r.Dropoffs[0].Location,
		DepartureTime: r.FirstBellTime(),
	}
}

// PMRequest runs last dropoff -> remaining stops by descending sequence ->
// depot. It is a reverse-order heuristic, not a solved afternoon route.
func PMRequest(r *domain.Route) ports.RouteRequest {
	last := r.Dropoffs[len(r.Dropoffs)-1]

	stops := make([]domain.Stop, 0, len(r.Dropoffs)-1+len(r.Pickups))
	stops = append(stops, r.Dropoffs[:len(r.Dropoffs)-1]...)
	stops = append(stops, r.Pickups...)
	slices.SortStableFunc(stops, func(a, b domain.Stop) int { return cmp.Compare(b.Sequence, a.Sequence) })

	waypoints := make([]domain.Coordinates, 0, len(stops))
	for _, s := range stops {
		waypoints = append(waypoints, s.Location)
	}

	return ports.RouteRequest{
		Origin:      last.Location,
		Waypoints:   waypoints,
		Destination: r.Depot.Location,
	}
}

// SuggestedDeparture is bell - (drive + DepartureBuffer), floored to the minute.
func SuggestedDeparture(bell domain.TimeOfDay, driveMinutes float64) domain.TimeOfDay {
	drive := time.Duration(driveMinutes * float64(time.Minute))
	return bell.Sub(drive + DepartureBuffer).Truncate(time.Minute)
}
