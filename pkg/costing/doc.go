// Package costing computes the cost and profit of a completed schedule:
// ingredient cost, labor cost, resource-usage cost, revenue, and profit.
//
// Evaluation is a pure function of the schedule plus the static recipe and
// inventory data. Re-running it on the same schedule yields identical
// totals, which is how the optimizer uses it as an objective oracle.
package costing
