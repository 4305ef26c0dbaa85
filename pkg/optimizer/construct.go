package optimizer

import (
	"sort"

	"github.com/bakeryops/batchplan/pkg/demand"
	"github.com/bakeryops/batchplan/pkg/feasibility"
	"github.com/bakeryops/batchplan/pkg/recipe"
	"github.com/bakeryops/batchplan/pkg/resource"
)

const duelessOffset = 1e9 // hours; far beyond any real due date

// constructionOrder sorts instances by the configured priority heuristic.
// Ties always fall back to instance id so construction is fully
// deterministic.
func (o *Optimizer) constructionOrder(instances []Instance, recipes map[string]recipe.Recipe) []Instance {
	order := make([]Instance, len(instances))
	copy(order, instances)

	key := func(inst Instance) float64 {
		r := recipes[inst.RecipeID]
		hours := r.Duration().Hours()
		switch o.cfg.Heuristic {
		case HeuristicLongestDurationFirst:
			return hours
		case HeuristicEarliestDueDate:
			// Tightest due date first. Instances without one come after all
			// dated work, longest first; the offset keeps their keys below
			// any plausible due date.
			if inst.Due > 0 {
				return -inst.Due.Hours()
			}
			return hours - duelessOffset
		default: // HeuristicHighestProfitPerHour
			if hours <= 0 {
				return 0
			}
			return instanceProfit(r) / hours
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		ki, kj := key(order[i]), key(order[j])
		if ki != kj {
			return ki > kj
		}
		return order[i].ID < order[j].ID
	})
	return order
}

// instanceProfit is the margin of producing one instance of the recipe:
// sell price minus ingredient, labor, and nominal resource cost. Resource
// cost here uses the requirement's own cost model only, since the heuristic
// runs before any inventory rates are consulted.
func instanceProfit(r recipe.Recipe) float64 {
	profit := r.SellPrice - r.TotalIngredientCost()
	for _, s := range r.Stages {
		hours := s.Duration().Hours()
		profit -= s.LaborPerHour * hours
		for _, req := range s.Requires {
			profit -= req.Cost.PerHour * hours * float64(req.Quantity)
			profit -= req.Cost.PerUse * float64(req.Quantity)
		}
	}
	return profit
}

// construct greedily places each instance, in order, at the earliest start
// that keeps the timeline feasible. Candidate starts are the usage
// timeline's event boundaries: only usage-change points can be optimal
// insertion points, which bounds the scan to O(events) per placement.
func construct(order []Instance, profiles map[string]demand.Profile, inv resource.Inventory) *feasibility.Timeline {
	tl := feasibility.NewTimeline(inv)
	for _, inst := range order {
		p := profiles[inst.RecipeID]
		placed := false
		for _, at := range tl.CandidateStarts(p) {
			if tl.CanPlace(p, at) {
				tl.Place(inst.ID, p, at)
				placed = true
				break
			}
		}
		if !placed {
			// Unreachable for structurally feasible instances: the final
			// event boundary has zero usage. Serialize after everything as a
			// safety net.
			tl.Place(inst.ID, p, tl.Makespan())
		}
	}
	return tl
}
