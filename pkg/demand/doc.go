// Package demand compiles a recipe's stage timeline into a resource-demand
// profile: a sorted event list describing how much of each resource type the
// recipe consumes, relative to its own start time.
//
// A profile is sufficient to reconstruct instantaneous usage with a running
// sweep, which is how the feasibility checker consumes it. Building is pure
// and deterministic; two overlapping stages of the same recipe both
// contribute active demand for the overlap.
package demand
