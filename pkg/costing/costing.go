package costing

import (
	"fmt"
	"sort"

	"github.com/bakeryops/batchplan/pkg/recipe"
	"github.com/bakeryops/batchplan/pkg/resource"
)

// Summary holds the cost and profit breakdown of a schedule.
type Summary struct {
	IngredientCost float64 `json:"ingredientCost" yaml:"ingredientCost"`
	LaborCost      float64 `json:"laborCost" yaml:"laborCost"`
	ResourceCost   float64 `json:"resourceCost" yaml:"resourceCost"`
	Revenue        float64 `json:"revenue" yaml:"revenue"`
	Profit         float64 `json:"profit" yaml:"profit"`
}

// TotalCost returns the sum of all cost components.
func (s Summary) TotalCost() float64 {
	return s.IngredientCost + s.LaborCost + s.ResourceCost
}

// Evaluate computes the schedule's cost breakdown. instances maps instance
// ids to recipe ids; every referenced recipe must be present in recipes.
//
// Labor is charged per stage as laborPerHour times the stage duration.
// Resource usage is charged per stage requirement: the per-hour rate times
// the held duration plus the flat per-use charge times quantity. A
// requirement's own cost model overrides the inventory's when set.
func Evaluate(instances map[string]string, recipes map[string]recipe.Recipe, inv resource.Inventory) (Summary, error) {
	// Accumulate in instance id order so float rounding is stable across
	// calls with the same inputs.
	ids := make([]string, 0, len(instances))
	for id := range instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var s Summary
	for _, id := range ids {
		recipeID := instances[id]
		r, ok := recipes[recipeID]
		if !ok {
			return Summary{}, fmt.Errorf("instance %q references unknown recipe %q", id, recipeID)
		}

		s.IngredientCost += r.TotalIngredientCost()
		s.Revenue += r.SellPrice

		for _, stage := range r.Stages {
			hours := stage.Duration().Hours()
			s.LaborCost += stage.LaborPerHour * hours

			for _, req := range stage.Requires {
				cost := req.Cost
				if cost.IsZero() {
					cost = inv.CostOf(req.Resource)
				}
				s.ResourceCost += cost.PerHour * hours * float64(req.Quantity)
				s.ResourceCost += cost.PerUse * float64(req.Quantity)
			}
		}
	}

	s.Profit = s.Revenue - s.TotalCost()
	return s, nil
}
