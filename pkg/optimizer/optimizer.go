package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bakeryops/batchplan/pkg/costing"
	"github.com/bakeryops/batchplan/pkg/demand"
	"github.com/bakeryops/batchplan/pkg/errors"
	"github.com/bakeryops/batchplan/pkg/feasibility"
	"github.com/bakeryops/batchplan/pkg/recipe"
	"github.com/bakeryops/batchplan/pkg/resource"
)

// Instance is one concrete production run of a recipe within a request.
type Instance struct {
	ID       string `json:"id" yaml:"id"`
	RecipeID string `json:"recipeId" yaml:"recipeId"`

	// Due is an optional completion target relative to the run start,
	// consulted by the earliest_due_date heuristic. Zero means none.
	Due time.Duration `json:"due,omitempty" yaml:"due,omitempty"`
}

// Result is the optimizer's output: committed start times plus the usage
// timeline they produce and bookkeeping about the search.
type Result struct {
	Starts          map[string]time.Duration
	Timeline        *feasibility.Timeline
	Score           Score
	Iterations      int
	BudgetExhausted bool
}

// Score is an objective value with its makespan tie-breaker. Higher Primary
// is better; equal Primary prefers the smaller makespan.
type Score struct {
	Primary  float64
	Makespan time.Duration
}

// Better reports whether s beats other.
func (s Score) Better(other Score) bool {
	if s.Primary != other.Primary {
		return s.Primary > other.Primary
	}
	return s.Makespan < other.Makespan
}

// Optimizer searches for start-time assignments that optimize the configured
// objective, using the feasibility timeline as its constraint oracle and the
// costing evaluator as its objective oracle.
type Optimizer struct {
	cfg Config
}

// Option is a functional option for configuring the Optimizer.
type Option func(*Optimizer)

// WithConfig returns an Option that sets the optimizer tuning parameters.
func WithConfig(cfg Config) Option {
	return func(o *Optimizer) {
		o.cfg = cfg
	}
}

// New creates a new Optimizer with the provided options.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize computes a feasible, objective-optimized schedule for the given
// instances. profiles is keyed by recipe id. It fails with
// StructuralInfeasibility when any single instance's own requirement exceeds
// inventory capacity in isolation; every other input admits a schedule.
//
// Given identical inputs and seed the result is reproducible. When the
// context is cancelled or the budget expires mid-search, the best feasible
// schedule found so far is returned with BudgetExhausted set.
func (o *Optimizer) Optimize(ctx context.Context, instances []Instance, profiles map[string]demand.Profile, recipes map[string]recipe.Recipe, inv resource.Inventory) (*Result, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyRequest, "no instances to schedule")
	}
	for _, inst := range instances {
		if _, ok := profiles[inst.RecipeID]; !ok {
			return nil, fmt.Errorf("instance %q references recipe %q with no demand profile", inst.ID, inst.RecipeID)
		}
	}
	if err := checkStructural(instances, profiles, inv); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		optimizeDuration.Observe(time.Since(start).Seconds())
	}()

	eval := newEvaluator(o.cfg.Objective, instances, recipes, inv)

	order := o.constructionOrder(instances, recipes)
	tl := construct(order, profiles, inv)
	score := eval.score(tl)
	constructionRuns.Inc()

	slog.Debug("construction completed",
		"instances", len(order),
		"heuristic", o.cfg.Heuristic.String(),
		"makespan", tl.Makespan(),
		"objective", score.Primary)

	improved, err := o.improve(ctx, order, profiles, inv, eval, tl, score)
	if err != nil {
		return nil, err
	}

	slog.Debug("optimization completed",
		"objective", improved.Score.Primary,
		"makespan", improved.Timeline.Makespan(),
		"iterations", improved.Iterations,
		"budget_exhausted", improved.BudgetExhausted)

	return improved, nil
}

// checkStructural rejects instances whose peak demand exceeds capacity even
// with nothing else scheduled.
func checkStructural(instances []Instance, profiles map[string]demand.Profile, inv resource.Inventory) error {
	offending := make(map[string]any)
	for _, inst := range instances {
		p := profiles[inst.RecipeID]
		for _, rt := range p.ResourceTypes() {
			required := p.PeakUsage(rt)
			if limit := inv.Capacity(rt); required > limit {
				offending[inst.ID] = fmt.Sprintf("needs %d %s, capacity %d", required, rt, limit)
			}
		}
	}
	if len(offending) > 0 {
		return errors.NewWithContext(errors.ErrCodeStructuralInfeasibility,
			fmt.Sprintf("%d instance(s) exceed inventory capacity in isolation", len(offending)),
			offending)
	}
	return nil
}

// evaluator computes objective scores for candidate timelines.
type evaluator struct {
	objective Objective
	instances map[string]string
	recipes   map[string]recipe.Recipe
	inv       resource.Inventory
}

func newEvaluator(objective Objective, instances []Instance, recipes map[string]recipe.Recipe, inv resource.Inventory) *evaluator {
	byID := make(map[string]string, len(instances))
	for _, inst := range instances {
		byID[inst.ID] = inst.RecipeID
	}
	return &evaluator{
		objective: objective,
		instances: byID,
		recipes:   recipes,
		inv:       inv,
	}
}

func (e *evaluator) score(tl *feasibility.Timeline) Score {
	makespan := tl.Makespan()
	s := Score{Makespan: makespan}

	switch e.objective {
	case ObjectiveMinimizeMakespan:
		s.Primary = -makespan.Hours()
	case ObjectiveMaximizeUtilization:
		s.Primary = averageUtilization(tl, e.inv, makespan)
	default: // ObjectiveMaximizeProfit
		summary, err := costing.Evaluate(e.instances, e.recipes, e.inv)
		if err != nil {
			// Unknown recipes are rejected before search starts; score the
			// candidate as unusable rather than panicking mid-iteration.
			s.Primary = 0
			break
		}
		s.Primary = summary.Profit
	}
	return s
}

// averageUtilization is the mean busy-fraction across stocked resource
// types over the realized horizon.
func averageUtilization(tl *feasibility.Timeline, inv resource.Inventory, horizon time.Duration) float64 {
	if horizon <= 0 || len(inv) == 0 {
		return 0
	}
	busy := tl.UsageIntegral()
	types := make([]resource.Type, 0, len(inv))
	for rt := range inv {
		types = append(types, rt)
	}
	// Fixed accumulation order keeps the score bit-stable across runs.
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	var total float64
	for _, rt := range types {
		denom := time.Duration(inv[rt].Capacity) * horizon
		if denom > 0 {
			total += float64(busy[rt]) / float64(denom)
		}
	}
	return total / float64(len(inv))
}
