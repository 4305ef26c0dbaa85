package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/bakeryops/batchplan/pkg/costing"
	"github.com/bakeryops/batchplan/pkg/optimizer"
	"github.com/bakeryops/batchplan/pkg/recipe"
	"github.com/bakeryops/batchplan/pkg/resource"
)

// ProductionRequest is the set of recipe instances to produce in one
// planning run, plus the objective and optimizer tuning for that run.
type ProductionRequest struct {
	// Instances lists the (instanceId, recipeId) pairs to schedule.
	// Multiple instances of the same recipe are independent.
	Instances []optimizer.Instance `json:"instances" yaml:"instances"`

	// Objective selects the optimization goal. Empty means the tuning
	// config's objective (or the default, maximize_profit).
	Objective optimizer.Objective `json:"objective,omitempty" yaml:"objective,omitempty"`

	// Horizon is an advisory upper bound used for utilization
	// normalization. It is not a hard cutoff: schedules may run past it.
	Horizon time.Duration `json:"horizon,omitempty" yaml:"horizon,omitempty"`

	// Tuning holds the optimizer parameters (seed, budgets, heuristic).
	Tuning optimizer.Config `json:"tuning,omitempty" yaml:"tuning,omitempty"`
}

// NewProductionRequest builds a request for n instances of each listed
// recipe id, assigning fresh instance ids.
func NewProductionRequest(n int, recipeIDs ...string) ProductionRequest {
	var req ProductionRequest
	for _, rid := range recipeIDs {
		for i := 0; i < n; i++ {
			req.Instances = append(req.Instances, optimizer.Instance{
				ID:       uuid.New().String(),
				RecipeID: rid,
			})
		}
	}
	return req
}

// ScheduledStage is one stage of one instance resolved to absolute time.
type ScheduledStage struct {
	Sequence int              `json:"sequenceNumber" yaml:"sequenceNumber"`
	Kind     recipe.StageKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Start    time.Duration    `json:"absoluteStart" yaml:"absoluteStart"`
	End      time.Duration    `json:"absoluteEnd" yaml:"absoluteEnd"`
	// Resources lists the capacity claims the stage holds for its window.
	// Units are interchangeable, so a binding is a type and a quantity
	// rather than a named machine.
	Resources []recipe.Requirement `json:"resourceBindings,omitempty" yaml:"resourceBindings,omitempty"`
}

// InstanceSchedule is the planned timeline of a single recipe instance.
type InstanceSchedule struct {
	InstanceID string           `json:"instanceId" yaml:"instanceId"`
	RecipeID   string           `json:"recipeId" yaml:"recipeId"`
	Start      time.Duration    `json:"startTime" yaml:"startTime"`
	Stages     []ScheduledStage `json:"stages" yaml:"stages"`
}

// ScheduleResult is the finalized, validated output of a planning run.
// It is immutable once returned; a new run produces a new result.
type ScheduleResult struct {
	RunID       string              `json:"runId" yaml:"runId"`
	GeneratedAt time.Time           `json:"generatedAt" yaml:"generatedAt"`
	Version     string              `json:"version,omitempty" yaml:"version,omitempty"`
	Objective   optimizer.Objective `json:"objective" yaml:"objective"`

	// Instances holds per-instance start times and absolute stage windows,
	// sorted by instance id for deterministic output.
	Instances []InstanceSchedule `json:"instances" yaml:"instances"`

	// Makespan is the latest absolute stage end across all instances.
	Makespan time.Duration `json:"makespan" yaml:"makespan"`
	// Horizon is the span used for utilization normalization: the larger
	// of the makespan and the request's horizon hint.
	Horizon time.Duration `json:"horizon" yaml:"horizon"`

	Cost costing.Summary `json:"cost" yaml:"cost"`

	// Utilization is each resource type's busy unit-time divided by its
	// capacity over the horizon.
	Utilization map[resource.Type]float64 `json:"utilization" yaml:"utilization"`

	// Iterations is the number of improvement iterations actually run.
	Iterations int `json:"iterations" yaml:"iterations"`
	// BudgetExhausted reports that the iteration/time budget or the
	// caller's deadline expired before the search converged. The result is
	// still the best feasible schedule found.
	BudgetExhausted bool `json:"budgetExhausted,omitempty" yaml:"budgetExhausted,omitempty"`
}

// StartTimes returns the schedule as a mapping from instance id to absolute
// start offset.
func (r *ScheduleResult) StartTimes() map[string]time.Duration {
	out := make(map[string]time.Duration, len(r.Instances))
	for _, inst := range r.Instances {
		out[inst.InstanceID] = inst.Start
	}
	return out
}
