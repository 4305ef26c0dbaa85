package demand

import (
	"fmt"
	"sort"
	"time"

	"github.com/bakeryops/batchplan/pkg/errors"
	"github.com/bakeryops/batchplan/pkg/recipe"
	"github.com/bakeryops/batchplan/pkg/resource"
)

// Event is one change point in a recipe's resource demand: Delta units of
// Resource become active (positive) or release (negative) at offset At from
// the recipe's start.
type Event struct {
	At       time.Duration
	Resource resource.Type
	Delta    int
}

// Profile is a recipe's compiled demand timeline. Events are sorted by
// offset, with releases ordered before acquisitions at equal offsets so that
// a stage ending exactly when another begins never spuriously conflicts.
type Profile struct {
	RecipeID string
	Duration time.Duration
	Events   []Event

	peak map[resource.Type]int
}

// Build compiles the recipe into a demand profile. It fails with
// InvalidStageWindow when any stage has a non-positive window and with
// UnknownResourceType when a requirement references a type the inventory
// does not stock.
func Build(r recipe.Recipe, inv resource.Inventory) (Profile, error) {
	p := Profile{
		RecipeID: r.ID,
		Duration: r.Duration(),
		peak:     make(map[resource.Type]int),
	}

	for i, s := range r.Stages {
		if s.End <= s.Start {
			return Profile{}, errors.NewWithContext(errors.ErrCodeInvalidStageWindow,
				fmt.Sprintf("stage %d window [%s, %s] has no duration", s.Sequence, s.Start, s.End),
				map[string]any{"recipe": r.ID, "stage": i})
		}
		for _, req := range s.Requires {
			if !inv.Has(req.Resource) {
				return Profile{}, errors.NewWithContext(errors.ErrCodeUnknownResourceType,
					fmt.Sprintf("stage %d references resource type %q absent from the inventory", s.Sequence, req.Resource),
					map[string]any{"recipe": r.ID, "stage": i, "resource": string(req.Resource)})
			}
			p.Events = append(p.Events,
				Event{At: s.Start, Resource: req.Resource, Delta: req.Quantity},
				Event{At: s.End, Resource: req.Resource, Delta: -req.Quantity},
			)
		}
	}

	SortEvents(p.Events)

	// Sweep once to record the peak concurrent usage per type. Peaks drive
	// the structural-infeasibility precheck.
	running := make(map[resource.Type]int)
	for _, e := range p.Events {
		running[e.Resource] += e.Delta
		if running[e.Resource] > p.peak[e.Resource] {
			p.peak[e.Resource] = running[e.Resource]
		}
	}

	return p, nil
}

// PeakUsage returns the maximum concurrent demand the recipe places on the
// given resource type at any instant of its own timeline.
func (p Profile) PeakUsage(t resource.Type) int {
	return p.peak[t]
}

// ResourceTypes returns the distinct resource types the profile touches, in
// deterministic order.
func (p Profile) ResourceTypes() []resource.Type {
	seen := make(map[resource.Type]bool)
	var out []resource.Type
	for _, e := range p.Events {
		if !seen[e.Resource] {
			seen[e.Resource] = true
			out = append(out, e.Resource)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortEvents orders events by offset, releases before acquisitions on ties,
// then by resource type and magnitude for determinism.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.At != b.At {
			return a.At < b.At
		}
		if (a.Delta < 0) != (b.Delta < 0) {
			return a.Delta < 0
		}
		if a.Resource != b.Resource {
			return a.Resource < b.Resource
		}
		return a.Delta < b.Delta
	})
}
