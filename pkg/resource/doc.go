// Package resource defines the closed catalog of bakery resource types, their
// cost models, and the inventory of interchangeable physical units the
// scheduling engine plans against.
//
// Resource units of the same type are anonymous capacity: an inventory entry
// of two ovens means two interchangeable ovens, not two named machines.
// Adding a new resource type means extending the Type enumeration and its
// cost model; the scheduling algorithm itself is unaffected.
package resource
