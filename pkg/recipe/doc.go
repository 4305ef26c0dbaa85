// Package recipe provides the immutable description of a bakery recipe: its
// stage timeline, per-stage resource and labor requirements, ingredients, and
// pricing.
//
// A recipe's stages carry windows relative to the recipe's own start time.
// Overlapping stages are permitted (proofing one batch while mixing the
// next); sequence numbers are display order only, the relative windows are
// authoritative. Recipes are validated once at build time and treated as
// read-only inputs for the lifetime of a planning run.
package recipe
