package feasibility

import (
	"sort"
	"time"

	"github.com/bakeryops/batchplan/pkg/demand"
	"github.com/bakeryops/batchplan/pkg/resource"
)

// Timeline is the running resource-usage state of a partially built
// schedule. It is owned by a single optimizer run; there is no process-wide
// shared state. Workers evaluating candidate moves in parallel must each
// read their own Clone, with only the committing goroutine mutating the
// original.
type Timeline struct {
	inv    resource.Inventory
	starts map[string]time.Duration
	// events holds every placed instance's profile events shifted to
	// absolute time, sorted with releases before acquisitions on ties.
	events []demand.Event
}

// NewTimeline creates an empty usage timeline over the given inventory.
func NewTimeline(inv resource.Inventory) *Timeline {
	return &Timeline{
		inv:    inv,
		starts: make(map[string]time.Duration),
	}
}

// Len returns the number of placed instances.
func (tl *Timeline) Len() int {
	return len(tl.starts)
}

// Starts returns a copy of the committed start times.
func (tl *Timeline) Starts() map[string]time.Duration {
	out := make(map[string]time.Duration, len(tl.starts))
	for id, s := range tl.starts {
		out[id] = s
	}
	return out
}

// Start returns the committed start time for the instance, and whether it is
// placed.
func (tl *Timeline) Start(instanceID string) (time.Duration, bool) {
	s, ok := tl.starts[instanceID]
	return s, ok
}

// CanPlace reports whether placing the profile at the given start keeps
// every resource type within capacity. Only the types the candidate touches
// are swept: the already-placed events are feasible by invariant, so a new
// violation must involve the candidate.
func (tl *Timeline) CanPlace(p demand.Profile, at time.Duration) bool {
	touched := make(map[resource.Type]bool)
	for _, e := range p.Events {
		touched[e.Resource] = true
	}

	merged := make([]demand.Event, 0, len(tl.events)+len(p.Events))
	for _, e := range tl.events {
		if touched[e.Resource] {
			merged = append(merged, e)
		}
	}
	for _, e := range p.Events {
		merged = append(merged, demand.Event{At: e.At + at, Resource: e.Resource, Delta: e.Delta})
	}
	demand.SortEvents(merged)

	running := make(map[resource.Type]int)
	for _, e := range merged {
		running[e.Resource] += e.Delta
		if running[e.Resource] > tl.inv.Capacity(e.Resource) {
			return false
		}
	}
	return true
}

// Place commits the instance's profile at the given start time. Feasibility
// is the caller's responsibility; use CanPlace first.
func (tl *Timeline) Place(instanceID string, p demand.Profile, at time.Duration) {
	tl.starts[instanceID] = at
	for _, e := range p.Events {
		tl.events = append(tl.events, demand.Event{At: e.At + at, Resource: e.Resource, Delta: e.Delta})
	}
	demand.SortEvents(tl.events)
}

// Remove withdraws a previously placed instance from the timeline.
func (tl *Timeline) Remove(instanceID string, p demand.Profile) {
	at, ok := tl.starts[instanceID]
	if !ok {
		return
	}
	delete(tl.starts, instanceID)

	// Delete one matching absolute event per profile event.
	remove := make(map[demand.Event]int)
	for _, e := range p.Events {
		remove[demand.Event{At: e.At + at, Resource: e.Resource, Delta: e.Delta}]++
	}
	kept := tl.events[:0]
	for _, e := range tl.events {
		if remove[e] > 0 {
			remove[e]--
			continue
		}
		kept = append(kept, e)
	}
	tl.events = kept
}

// CandidateStarts returns the deterministic set of start times worth probing
// when placing p: time zero, plus every usage-change point shifted back by
// each of p's acquisition offsets. A placement is earliest-feasible only
// when one of p's acquisitions lands exactly on a usage-change point, so
// this set is exhaustive for fixed-shape profiles.
func (tl *Timeline) CandidateStarts(p demand.Profile) []time.Duration {
	offsets := map[time.Duration]bool{0: true}
	for _, e := range p.Events {
		if e.Delta > 0 {
			offsets[e.At] = true
		}
	}

	seen := map[time.Duration]bool{0: true}
	out := []time.Duration{0}
	for _, e := range tl.events {
		for off := range offsets {
			at := e.At - off
			if at >= 0 && !seen[at] {
				seen[at] = true
				out = append(out, at)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Makespan returns the latest event time across all placed instances.
func (tl *Timeline) Makespan() time.Duration {
	var max time.Duration
	for _, e := range tl.events {
		if e.At > max {
			max = e.At
		}
	}
	return max
}

// UsageIntegral returns, per resource type, the unit-weighted busy time:
// the integral of instantaneous usage over the realized horizon. Dividing by
// capacity times horizon yields the utilization fraction.
func (tl *Timeline) UsageIntegral() map[resource.Type]time.Duration {
	out := make(map[resource.Type]time.Duration)
	running := make(map[resource.Type]int)
	var prev time.Duration
	for _, e := range tl.events {
		dt := e.At - prev
		if dt > 0 {
			for t, n := range running {
				if n > 0 {
					out[t] += time.Duration(n) * dt
				}
			}
			prev = e.At
		}
		running[e.Resource] += e.Delta
	}
	return out
}

// Clone returns an independent copy of the timeline sharing the read-only
// inventory.
func (tl *Timeline) Clone() *Timeline {
	out := &Timeline{
		inv:    tl.inv,
		starts: make(map[string]time.Duration, len(tl.starts)),
		events: make([]demand.Event, len(tl.events)),
	}
	for id, s := range tl.starts {
		out.starts[id] = s
	}
	copy(out.events, tl.events)
	return out
}
