// Package optimizer decides when each requested recipe instance starts so
// that no resource capacity is exceeded at any instant and the configured
// objective is optimized.
//
// Exact resource-constrained scheduling is NP-hard, so the engine runs in
// two phases. The construction phase is a serial schedule generation scheme:
// instances are ordered by a priority heuristic and greedily placed at the
// earliest feasible start, probing only the usage timeline's event
// boundaries. The improvement phase is seeded simulated annealing over the
// construction ordering: candidate reorderings are evaluated (in parallel,
// against read-only timeline state) and accepted when they improve the
// objective, or occasionally when they don't, to escape local optima.
//
// The optimizer always returns a feasible schedule when every instance is
// structurally feasible in isolation; strictly serial placement is the floor
// it can never do worse than. Cancellation and budget exhaustion surface the
// best schedule found so far, never a partial or undefined state.
package optimizer
