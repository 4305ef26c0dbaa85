// Package planner orchestrates one planning run: it validates the request,
// compiles demand profiles, drives the optimizer, evaluates cost and profit,
// and assembles the immutable ScheduleResult that persistence and
// visualization collaborators consume.
//
// A planner run is a batch computation. Inputs are read-only and safe to
// share across concurrent runs; every run produces a fresh result rather
// than mutating state in place.
package planner
