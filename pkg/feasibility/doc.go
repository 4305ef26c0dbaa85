// Package feasibility determines whether a candidate schedule respects
// resource capacity at every instant.
//
// The check is a single sweep: all instances' demand-profile events are
// shifted by their start times, merged, and accumulated per resource type.
// Releases sort before acquisitions at equal times, so a stage ending
// exactly when another begins does not spuriously conflict. The Timeline
// type supports the optimizer's incremental "can I add this instance at this
// time" queries without re-sweeping the whole schedule from scratch.
//
// This package is the single source of truth for constraint correctness;
// the optimizer never reimplements capacity logic.
package feasibility
