package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/bakeryops/batchplan/pkg/costing"
	"github.com/bakeryops/batchplan/pkg/demand"
	"github.com/bakeryops/batchplan/pkg/errors"
	"github.com/bakeryops/batchplan/pkg/feasibility"
	"github.com/bakeryops/batchplan/pkg/optimizer"
	"github.com/bakeryops/batchplan/pkg/recipe"
	"github.com/bakeryops/batchplan/pkg/resource"
)

// Planner runs the full planning pipeline for a production request.
type Planner struct {
	version string
	clock   func() time.Time
}

// Option is a functional option for configuring the Planner.
type Option func(*Planner)

// WithVersion stamps results with the given build version.
func WithVersion(v string) Option {
	return func(p *Planner) {
		p.version = v
	}
}

// WithClock overrides the time source used for GeneratedAt. Intended for
// tests.
func WithClock(clock func() time.Time) Option {
	return func(p *Planner) {
		p.clock = clock
	}
}

// New creates a Planner with the provided options.
func New(opts ...Option) *Planner {
	p := &Planner{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan validates the request against the inventory and recipe catalog, runs
// the optimizer, and assembles the schedule result. The returned result is
// complete and feasible even when BudgetExhausted is set. Plan honors ctx
// cancellation: a cancelled run returns the best schedule found so far with
// BudgetExhausted set, not an error, as long as construction finished.
func (p *Planner) Plan(ctx context.Context, req ProductionRequest, recipes []recipe.Recipe, inv resource.Inventory) (*ScheduleResult, error) {
	start := p.clock()
	status := statusError
	defer func() {
		planDuration.Observe(time.Since(start).Seconds())
		plansTotal.WithLabelValues(status).Inc()
	}()

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := recipe.ValidateAll(recipes, inv); err != nil {
		return nil, err
	}
	if len(req.Instances) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyRequest, "production request has no instances")
	}
	if req.Horizon < 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "horizon must not be negative")
	}

	catalog := make(map[string]recipe.Recipe, len(recipes))
	for _, r := range recipes {
		catalog[r.ID] = r
	}

	seen := make(map[string]bool, len(req.Instances))
	for _, inst := range req.Instances {
		if inst.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidRequest, "instance id must not be empty")
		}
		if seen[inst.ID] {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate instance id: %s", inst.ID))
		}
		seen[inst.ID] = true
		if _, ok := catalog[inst.RecipeID]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("instance %s references unknown recipe: %s", inst.ID, inst.RecipeID))
		}
	}

	profiles := make(map[string]demand.Profile, len(catalog))
	for _, inst := range req.Instances {
		if _, ok := profiles[inst.RecipeID]; ok {
			continue
		}
		prof, err := demand.Build(catalog[inst.RecipeID], inv)
		if err != nil {
			return nil, err
		}
		profiles[inst.RecipeID] = prof
	}

	cfg := req.Tuning
	if req.Objective != "" {
		cfg.Objective = req.Objective
	}
	// Validate here rather than leaving it to the optimizer so the result
	// reports the effective (default-filled) objective.
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid tuning config", err)
	}

	opt := optimizer.New(optimizer.WithConfig(cfg))
	res, err := opt.Optimize(ctx, req.Instances, profiles, catalog, inv)
	if err != nil {
		return nil, err
	}

	instMap := make(map[string]string, len(req.Instances))
	for _, inst := range req.Instances {
		instMap[inst.ID] = inst.RecipeID
	}
	cost, err := costing.Evaluate(instMap, catalog, inv)
	if err != nil {
		return nil, err
	}

	makespan := res.Timeline.Makespan()
	horizon := makespan
	if req.Horizon > horizon {
		horizon = req.Horizon
	}

	result := &ScheduleResult{
		RunID:           uuid.New().String(),
		GeneratedAt:     start,
		Version:         p.version,
		Objective:       cfg.Objective,
		Instances:       assembleInstances(req.Instances, catalog, res.Starts),
		Makespan:        makespan,
		Horizon:         horizon,
		Cost:            cost,
		Utilization:     utilization(res.Timeline, inv, horizon),
		Iterations:      res.Iterations,
		BudgetExhausted: res.BudgetExhausted,
	}

	status = statusOK
	slog.Debug("plan complete",
		"runId", result.RunID,
		"objective", string(result.Objective),
		"instances", len(result.Instances),
		"makespan", result.Makespan,
		"profit", result.Cost.Profit,
		"iterations", result.Iterations,
		"budgetExhausted", result.BudgetExhausted,
		"duration", time.Since(start),
	)

	return result, nil
}

// assembleInstances resolves each instance's stages to absolute windows,
// sorted by instance id for stable output.
func assembleInstances(instances []optimizer.Instance, catalog map[string]recipe.Recipe, starts map[string]time.Duration) []InstanceSchedule {
	out := make([]InstanceSchedule, 0, len(instances))
	for _, inst := range instances {
		r := catalog[inst.RecipeID]
		at := starts[inst.ID]
		is := InstanceSchedule{
			InstanceID: inst.ID,
			RecipeID:   inst.RecipeID,
			Start:      at,
			Stages:     make([]ScheduledStage, 0, len(r.Stages)),
		}
		for _, st := range r.Stages {
			is.Stages = append(is.Stages, ScheduledStage{
				Sequence:  st.Sequence,
				Kind:      st.Kind,
				Start:     at + st.Start,
				End:       at + st.End,
				Resources: st.Requires,
			})
		}
		sort.Slice(is.Stages, func(i, j int) bool {
			if is.Stages[i].Start != is.Stages[j].Start {
				return is.Stages[i].Start < is.Stages[j].Start
			}
			return is.Stages[i].Sequence < is.Stages[j].Sequence
		})
		out = append(out, is)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InstanceID < out[j].InstanceID
	})
	return out
}

// utilization reports each resource type's busy unit-time as a fraction of
// its total capacity over the horizon. Types the schedule never touches
// report zero.
func utilization(tl *feasibility.Timeline, inv resource.Inventory, horizon time.Duration) map[resource.Type]float64 {
	busy := tl.UsageIntegral()
	out := make(map[resource.Type]float64, len(inv))
	for t, pool := range inv {
		if horizon <= 0 || pool.Capacity == 0 {
			out[t] = 0
			continue
		}
		out[t] = busy[t].Hours() / (float64(pool.Capacity) * horizon.Hours())
	}
	return out
}
