package optimizer

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Objective represents the optimization goal for a planning run. Exactly one
// objective is active per run; ties are broken by makespan, then by instance
// id order for determinism.
type Objective string

// Supported objectives.
const (
	ObjectiveMaximizeProfit      Objective = "maximize_profit"
	ObjectiveMinimizeMakespan    Objective = "minimize_makespan"
	ObjectiveMaximizeUtilization Objective = "maximize_utilization"
)

// String returns the string representation of the objective.
func (o Objective) String() string {
	return string(o)
}

// IsValid reports whether the objective is one of the supported modes.
func (o Objective) IsValid() bool {
	switch o {
	case ObjectiveMaximizeProfit, ObjectiveMinimizeMakespan, ObjectiveMaximizeUtilization:
		return true
	default:
		return false
	}
}

// ParseObjective parses a string into an Objective. The empty string maps to
// the default maximize_profit.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "maximize_profit", "profit":
		return ObjectiveMaximizeProfit, nil
	case "minimize_makespan", "makespan":
		return ObjectiveMinimizeMakespan, nil
	case "maximize_utilization", "utilization":
		return ObjectiveMaximizeUtilization, nil
	default:
		return ObjectiveMaximizeProfit, fmt.Errorf("invalid objective: %s", s)
	}
}

// Objectives returns all supported objectives.
func Objectives() []Objective {
	return []Objective{
		ObjectiveMaximizeProfit,
		ObjectiveMinimizeMakespan,
		ObjectiveMaximizeUtilization,
	}
}

// Heuristic represents the priority rule the construction phase uses to
// order instances before greedy placement.
type Heuristic string

// Supported construction heuristics.
const (
	HeuristicHighestProfitPerHour Heuristic = "highest_profit_per_hour"
	HeuristicLongestDurationFirst Heuristic = "longest_duration_first"
	HeuristicEarliestDueDate      Heuristic = "earliest_due_date"
)

// String returns the string representation of the heuristic.
func (h Heuristic) String() string {
	return string(h)
}

// ParseHeuristic parses a string into a Heuristic. The empty string maps to
// the default highest_profit_per_hour.
func ParseHeuristic(s string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "highest_profit_per_hour", "profit_per_hour":
		return HeuristicHighestProfitPerHour, nil
	case "longest_duration_first", "longest_first":
		return HeuristicLongestDurationFirst, nil
	case "earliest_due_date", "edd":
		return HeuristicEarliestDueDate, nil
	default:
		return HeuristicHighestProfitPerHour, fmt.Errorf("invalid heuristic: %s", s)
	}
}

// Config holds the optimizer tuning parameters for one planning run.
type Config struct {
	// Objective selects the optimization goal.
	Objective Objective `json:"objective" yaml:"objective"`
	// Heuristic selects the construction-phase priority rule.
	Heuristic Heuristic `json:"heuristic" yaml:"heuristic"`
	// Seed fixes the improvement phase's randomness. Identical inputs and
	// seed produce identical schedules.
	Seed int64 `json:"seed" yaml:"seed"`
	// MaxIterations bounds the improvement phase.
	MaxIterations int `json:"maxIterations" yaml:"maxIterations"`
	// Patience stops the improvement phase after this many consecutive
	// iterations without a new best schedule.
	Patience int `json:"patience" yaml:"patience"`
	// Parallelism bounds concurrent candidate evaluations per iteration.
	Parallelism int `json:"parallelism" yaml:"parallelism"`
	// Budget is the wall-clock limit for the improvement phase. Zero means
	// no time limit; the iteration bound still applies.
	Budget time.Duration `json:"budget,omitempty" yaml:"budget,omitempty"`
}

// DefaultConfig returns the optimizer defaults.
func DefaultConfig() Config {
	parallelism := runtime.GOMAXPROCS(0)
	if parallelism > 8 {
		parallelism = 8
	}
	return Config{
		Objective:     ObjectiveMaximizeProfit,
		Heuristic:     HeuristicHighestProfitPerHour,
		Seed:          1,
		MaxIterations: 500,
		Patience:      50,
		Parallelism:   parallelism,
	}
}

// Validate checks the configuration and fills zero values with defaults.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.Objective == "" {
		c.Objective = def.Objective
	}
	if !c.Objective.IsValid() {
		return fmt.Errorf("invalid objective: %s", c.Objective)
	}
	if c.Heuristic == "" {
		c.Heuristic = def.Heuristic
	}
	if _, err := ParseHeuristic(string(c.Heuristic)); err != nil {
		return err
	}
	if c.MaxIterations < 0 || c.Patience < 0 || c.Parallelism < 0 || c.Budget < 0 {
		return fmt.Errorf("negative tuning parameter")
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = def.MaxIterations
	}
	if c.Patience == 0 {
		c.Patience = def.Patience
	}
	if c.Parallelism == 0 {
		c.Parallelism = def.Parallelism
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
	return nil
}
