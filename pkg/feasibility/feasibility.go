package feasibility

import (
	"fmt"
	"time"

	"github.com/bakeryops/batchplan/pkg/demand"
	"github.com/bakeryops/batchplan/pkg/resource"
)

// Violation describes the first point at which a candidate schedule exceeds
// a resource type's capacity.
type Violation struct {
	Resource  resource.Type `json:"resource" yaml:"resource"`
	At        time.Duration `json:"at" yaml:"at"`
	Requested int           `json:"requested" yaml:"requested"`
	Capacity  int           `json:"capacity" yaml:"capacity"`
}

// String formats the violation for diagnostics. Violation is not an error
// type itself: an infeasible candidate is an expected answer, not a failure.
func (v Violation) String() string {
	return fmt.Sprintf("%s over capacity at %s: requested %d, capacity %d",
		v.Resource, v.At, v.Requested, v.Capacity)
}

// Check sweeps the full candidate schedule and returns nil when every
// resource type stays within capacity at every event boundary, or the first
// violation otherwise. Instances present in starts but absent from profiles
// are rejected as a programming error.
func Check(profiles map[string]demand.Profile, starts map[string]time.Duration, inv resource.Inventory) (*Violation, error) {
	var events []demand.Event
	for id, start := range starts {
		p, ok := profiles[id]
		if !ok {
			return nil, fmt.Errorf("no demand profile for instance %q", id)
		}
		for _, e := range p.Events {
			events = append(events, demand.Event{At: e.At + start, Resource: e.Resource, Delta: e.Delta})
		}
	}
	demand.SortEvents(events)

	running := make(map[resource.Type]int)
	for _, e := range events {
		running[e.Resource] += e.Delta
		if limit := inv.Capacity(e.Resource); running[e.Resource] > limit {
			return &Violation{
				Resource:  e.Resource,
				At:        e.At,
				Requested: running[e.Resource],
				Capacity:  limit,
			}, nil
		}
	}
	return nil, nil
}
