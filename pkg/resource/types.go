package resource

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type represents a category of physical or human bakery resource.
type Type string

// String returns the string representation of the resource Type.
func (t Type) String() string {
	return string(t)
}

// Supported resource types.
const (
	TypeStandMixer      Type = "stand_mixer"
	TypeOven            Type = "oven"
	TypeCookieSheet     Type = "cookie_sheet"
	TypeMixingBowl      Type = "mixing_bowl"
	TypeWorkspace       Type = "workspace"
	TypeChef            Type = "chef"
	TypeProofingCabinet Type = "proofing_cabinet"
)

// Types is the list of all supported resource types.
var Types = []Type{
	TypeStandMixer,
	TypeOven,
	TypeCookieSheet,
	TypeMixingBowl,
	TypeWorkspace,
	TypeChef,
	TypeProofingCabinet,
}

var titleCaser = cases.Title(language.English)

// DisplayName returns the human-readable name for the resource type, e.g.
// "stand_mixer" renders as "Stand Mixer".
func (t Type) DisplayName() string {
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

// ParseType parses a string into a resource Type. Returns the Type and true
// if parsing succeeds, or empty Type and false if the string is invalid.
// Both enum values ("stand_mixer") and display names ("Stand Mixer") are
// accepted.
func ParseType(s string) (Type, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	for _, t := range Types {
		if string(t) == normalized {
			return t, true
		}
	}
	return "", false
}

// CostModel describes how use of a resource is charged. PerHour is applied to
// the duration a requirement holds the resource; PerUse is a flat charge per
// stage activation. Either or both may be zero.
type CostModel struct {
	PerHour float64 `json:"perHour,omitempty" yaml:"perHour,omitempty"`
	PerUse  float64 `json:"perUse,omitempty" yaml:"perUse,omitempty"`
}

// IsZero reports whether the cost model charges nothing.
func (c CostModel) IsZero() bool {
	return c.PerHour == 0 && c.PerUse == 0
}

// Pool describes the available units of a single resource type.
type Pool struct {
	Type     Type      `json:"type" yaml:"type"`
	Capacity int       `json:"capacity" yaml:"capacity"`
	Cost     CostModel `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// Inventory maps each resource type to its pool of interchangeable units.
// Inventories are treated as read-only for the lifetime of a planning run and
// are safe to share across concurrent runs.
type Inventory map[Type]Pool

// NewInventory builds an inventory from the given pools. Later pools with a
// duplicate type overwrite earlier ones.
func NewInventory(pools ...Pool) Inventory {
	inv := make(Inventory, len(pools))
	for _, p := range pools {
		inv[p.Type] = p
	}
	return inv
}

// Capacity returns the unit count for the given type, or 0 when the type is
// not stocked.
func (inv Inventory) Capacity(t Type) int {
	return inv[t].Capacity
}

// Has reports whether the inventory stocks the given type.
func (inv Inventory) Has(t Type) bool {
	_, ok := inv[t]
	return ok
}

// CostOf returns the cost model for the given type. The zero model is
// returned for unstocked types.
func (inv Inventory) CostOf(t Type) CostModel {
	return inv[t].Cost
}

// Validate checks structural invariants: every stocked pool must name a
// supported type and hold at least one unit.
func (inv Inventory) Validate() error {
	for t, p := range inv {
		if _, ok := ParseType(string(t)); !ok {
			return fmt.Errorf("unsupported resource type in inventory: %q", t)
		}
		if p.Capacity < 1 {
			return fmt.Errorf("resource %s: capacity must be at least 1, got %d", t, p.Capacity)
		}
		if p.Type != "" && p.Type != t {
			return fmt.Errorf("resource %s: pool declares mismatched type %s", t, p.Type)
		}
		if p.Cost.PerHour < 0 || p.Cost.PerUse < 0 {
			return fmt.Errorf("resource %s: negative cost model", t)
		}
	}
	return nil
}

// Clone returns an independent copy of the inventory. What-if comparisons
// that mutate capacities must operate on a clone.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for t, p := range inv {
		out[t] = p
	}
	return out
}
