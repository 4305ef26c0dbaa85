package recipe

import (
	"time"

	"github.com/bakeryops/batchplan/pkg/resource"
)

// StageKind represents the category of work a stage performs. Kinds are
// informational: scheduling is driven entirely by stage windows and
// requirements.
type StageKind string

// Supported stage kinds.
const (
	StagePrep     StageKind = "prep"
	StageMix      StageKind = "mix"
	StageProof    StageKind = "proof"
	StageBake     StageKind = "bake"
	StageCool     StageKind = "cool"
	StageRest     StageKind = "rest"
	StageDecorate StageKind = "decorate"
)

// String returns the string representation of the stage kind.
func (k StageKind) String() string {
	return string(k)
}

// Requirement is a stage's claim on a number of interchangeable units of one
// resource type for the stage's whole window.
//
// Cost optionally overrides the inventory's cost model for this requirement;
// the zero model defers to the inventory.
type Requirement struct {
	Resource resource.Type      `json:"resource" yaml:"resource"`
	Quantity int                `json:"quantity" yaml:"quantity"`
	Cost     resource.CostModel `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// Stage is one step of a recipe's internal timeline. Start and End are
// offsets from the recipe instance's own start time; End must come after
// Start. Stages of the same recipe may overlap.
type Stage struct {
	Kind         StageKind     `json:"kind" yaml:"kind"`
	Sequence     int           `json:"sequence" yaml:"sequence"`
	Start        time.Duration `json:"start" yaml:"start"`
	End          time.Duration `json:"end" yaml:"end"`
	LaborPerHour float64       `json:"laborPerHour,omitempty" yaml:"laborPerHour,omitempty"`
	Requires     []Requirement `json:"requires,omitempty" yaml:"requires,omitempty"`
}

// Duration returns the stage's window length.
func (s Stage) Duration() time.Duration {
	return s.End - s.Start
}

// Ingredient is a priced recipe input. Ingredients do not participate in
// scheduling; they only contribute to cost.
type Ingredient struct {
	Name        string  `json:"name" yaml:"name"`
	Quantity    float64 `json:"quantity" yaml:"quantity"`
	Unit        string  `json:"unit" yaml:"unit"`
	CostPerUnit float64 `json:"costPerUnit,omitempty" yaml:"costPerUnit,omitempty"`
}

// Recipe is the immutable definition of one bakery product: an ordered stage
// timeline plus pricing. Load once, validate once, share freely.
type Recipe struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Servings    int          `json:"servings,omitempty" yaml:"servings,omitempty"`
	Stages      []Stage      `json:"stages" yaml:"stages"`
	Ingredients []Ingredient `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	// SellPrice is the revenue from one produced instance.
	SellPrice float64 `json:"sellPrice" yaml:"sellPrice"`
	// IngredientCost is the flat ingredient cost of one instance. When zero
	// and Ingredients are present, the itemized sum is used instead.
	IngredientCost float64 `json:"ingredientCost,omitempty" yaml:"ingredientCost,omitempty"`
}

// Duration returns the recipe's total relative duration: the latest stage
// end offset.
func (r Recipe) Duration() time.Duration {
	var max time.Duration
	for _, s := range r.Stages {
		if s.End > max {
			max = s.End
		}
	}
	return max
}

// TotalIngredientCost returns the flat IngredientCost when set, otherwise
// the sum of itemized ingredient costs.
func (r Recipe) TotalIngredientCost() float64 {
	if r.IngredientCost != 0 {
		return r.IngredientCost
	}
	var total float64
	for _, ing := range r.Ingredients {
		total += ing.Quantity * ing.CostPerUnit
	}
	return total
}
