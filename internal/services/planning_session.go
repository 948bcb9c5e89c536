package services

import (
	"bus-electrification-service/internal/domain"
	"bus-electrification-service/internal/platform/obs"
	"bus-electrification-service/internal/ports"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PlanMetrics receives the tier of every plan entry produced.
type PlanMetrics interface {
	ObservePlanEntry(tier domain.Tier)
}

// PlanningService drives planning sessions through
// created -> populated -> evaluated -> planned.
type PlanningService struct {
	store     ports.SessionStore
	evaluator *Evaluator
	metrics   PlanMetrics
	now       func() time.Time
}

func NewPlanningService(store ports.SessionStore, evaluator *Evaluator, metrics PlanMetrics) *PlanningService {
	return &PlanningService{
		store:     store,
		evaluator: evaluator,
		metrics:   metrics,
		now:       time.Now,
	}
}

// One-shot outcome of evaluating and planning without a session.
type PlanOutcome struct {
	Evaluation    domain.Evaluation
	FleetWarnings []domain.Warning
	Plan          []domain.PlanEntry
}

func (p *PlanningService) CreateSession(ctx context.Context) (*domain.PlanningSession, error) {
	s := domain.NewPlanningSession(uuid.NewString(), p.now())
	if err := p.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s.Clone(), nil
}

func (p *PlanningService) Session(ctx context.Context, id string) (*domain.PlanningSession, error) {
	s, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session %q: %w", id, err)
	}
	return s, nil
}

func (p *PlanningService) DeleteSession(ctx context.Context, id string) error {
	if err := p.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

func (p *PlanningService) PutRoute(ctx context.Context, id string, r *domain.Route) error {
	return p.update(ctx, id, "put route", func(s *domain.PlanningSession) error {
		s.PutRoute(r, p.now())
		return nil
	})
}

func (p *PlanningService) DeleteRoute(ctx context.Context, id, routeID string) error {
	return p.update(ctx, id, "delete route", func(s *domain.PlanningSession) error {
		return s.DeleteRoute(routeID, p.now())
	})
}

// SetFleet keeps the electric entries and returns the per-entry warnings.
func (p *PlanningService) SetFleet(ctx context.Context, id string, entries []domain.FleetEntry) ([]domain.Warning, error) {
	fleet, warnings := domain.ElectricFleet(entries)

	err := p.update(ctx, id, "set fleet", func(s *domain.PlanningSession) error {
		s.SetFleet(fleet, warnings, p.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

// Evaluate runs the feasibility pass on a snapshot of the session and stores
// the result only if the session was not modified meanwhile.
func (p *PlanningService) Evaluate(ctx context.Context, id string) (_ domain.Evaluation, err error) {
	defer obs.Time(ctx, "services.PlanningService.Evaluate")(&err)

	if !p.evaluator.Configured() {
		return domain.Evaluation{}, ErrRoutingNotConfigured
	}

	snap, err := p.store.Get(ctx, id)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("evaluate session %q: %w", id, err)
	}
	if err := snap.ReadyToEvaluate(); err != nil {
		return domain.Evaluation{}, fmt.Errorf("evaluate session %q: %w", id, err)
	}

	ev, err := p.evaluator.Evaluate(ctx, snap.Routes)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("evaluate session %q: %w", id, err)
	}

	err = p.update(ctx, id, "record evaluation", func(s *domain.PlanningSession) error {
		return s.RecordEvaluation(ev, snap.Version, p.now())
	})
	if err != nil {
		return domain.Evaluation{}, err
	}

	return ev, nil
}

// AssignChassis applies all assignments or none.
func (p *PlanningService) AssignChassis(ctx context.Context, id string, assignments map[string]domain.ChassisType) error {
	return p.update(ctx, id, "assign chassis", func(s *domain.PlanningSession) error {
		now := p.now()
		for routeID, c := range assignments {
			if err := s.AssignChassis(routeID, c, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// Plan classifies the evaluated routes with the current assignments.
func (p *PlanningService) Plan(ctx context.Context, id string) ([]domain.PlanEntry, error) {
	var entries []domain.PlanEntry

	err := p.update(ctx, id, "plan", func(s *domain.PlanningSession) error {
		if s.Evaluation == nil {
			return domain.ErrNotEvaluated
		}
		entries = BuildPlan(s.Evaluation.Results, s.Fleet, s.Assignments)
		return s.RecordPlan(entries, p.now())
	})
	if err != nil {
		return nil, err
	}

	p.observe(entries)
	return entries, nil
}

func (p *PlanningService) Reset(ctx context.Context, id string) error {
	return p.update(ctx, id, "reset", func(s *domain.PlanningSession) error {
		s.Reset(p.now())
		return nil
	})
}

// EvaluateAndPlan runs a full pass without storing anything.
func (p *PlanningService) EvaluateAndPlan(
	ctx context.Context,
	routes []*domain.Route,
	entries []domain.FleetEntry,
	assignments map[string]domain.ChassisType,
) (_ PlanOutcome, err error) {
	defer obs.Time(ctx, "services.PlanningService.EvaluateAndPlan")(&err)

	fleet, warnings := domain.ElectricFleet(entries)
	if len(routes) == 0 {
		return PlanOutcome{}, domain.ErrNoRoutes
	}
	if len(fleet) == 0 {
		return PlanOutcome{}, domain.ErrNoElectricFleet
	}

	ev, err := p.evaluator.Evaluate(ctx, routes)
	if err != nil {
		return PlanOutcome{}, fmt.Errorf("evaluate and plan: %w", err)
	}

	plan := BuildPlan(ev.Results, fleet, assignments)
	p.observe(plan)

	return PlanOutcome{Evaluation: ev, FleetWarnings: warnings, Plan: plan}, nil
}

func (p *PlanningService) update(ctx context.Context, id, op string, fn func(s *domain.PlanningSession) error) error {
	if err := p.store.Update(ctx, id, fn); err != nil {
		return fmt.Errorf("%s in session %q: %w", op, id, err)
	}
	return nil
}

func (p *PlanningService) observe(entries []domain.PlanEntry) {
	if p.metrics == nil {
		return
	}
	for _, e := range entries {
		p.metrics.ObservePlanEntry(e.Tier)
	}
}

// RoutingConfigured reports whether evaluations can reach a routing provider.
func (p *PlanningService) RoutingConfigured() bool {
	return p.evaluator.Configured()
}

// RegionCount is the number of designated-area regions used for overlap.
func (p *PlanningService) RegionCount() int {
	if p.evaluator == nil {
		return 0
	}
	return len(p.evaluator.regions)
}
