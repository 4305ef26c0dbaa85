package recipe

import (
	"fmt"

	"github.com/bakeryops/batchplan/pkg/errors"
	"github.com/bakeryops/batchplan/pkg/resource"
)

// Validate checks the recipe's structural invariants against the inventory:
// every stage window must be positive, every requirement must reference a
// stocked resource type with quantity of at least one, and sequence numbers
// must be unique.
func (r Recipe) Validate(inv resource.Inventory) error {
	if r.ID == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "recipe is missing an id")
	}
	if len(r.Stages) == 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"recipe has no stages", map[string]any{"recipe": r.ID})
	}

	seen := make(map[int]bool, len(r.Stages))
	for i, s := range r.Stages {
		if s.End <= s.Start {
			return errors.NewWithContext(errors.ErrCodeInvalidStageWindow,
				fmt.Sprintf("stage %d window [%s, %s] has no duration", s.Sequence, s.Start, s.End),
				map[string]any{"recipe": r.ID, "stage": i})
		}
		if s.Start < 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidStageWindow,
				fmt.Sprintf("stage %d starts before the recipe itself", s.Sequence),
				map[string]any{"recipe": r.ID, "stage": i})
		}
		if seen[s.Sequence] {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate stage sequence number %d", s.Sequence),
				map[string]any{"recipe": r.ID})
		}
		seen[s.Sequence] = true
		if s.LaborPerHour < 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("stage %d has negative labor cost", s.Sequence),
				map[string]any{"recipe": r.ID, "stage": i})
		}

		for _, req := range s.Requires {
			if req.Quantity < 1 {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("stage %d requires %d units of %s", s.Sequence, req.Quantity, req.Resource),
					map[string]any{"recipe": r.ID, "stage": i})
			}
			if !inv.Has(req.Resource) {
				return errors.NewWithContext(errors.ErrCodeUnknownResourceType,
					fmt.Sprintf("stage %d references resource type %q absent from the inventory", s.Sequence, req.Resource),
					map[string]any{"recipe": r.ID, "stage": i, "resource": string(req.Resource)})
			}
		}
	}
	return nil
}

// ValidateAll validates every recipe in the collection and returns the first
// failure.
func ValidateAll(recipes []Recipe, inv resource.Inventory) error {
	ids := make(map[string]bool, len(recipes))
	for _, r := range recipes {
		if ids[r.ID] {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"duplicate recipe id", map[string]any{"recipe": r.ID})
		}
		ids[r.ID] = true
		if err := r.Validate(inv); err != nil {
			return err
		}
	}
	return nil
}
