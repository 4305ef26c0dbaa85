package feasibility

import (
	"testing"
	"time"

	"github.com/bakeryops/batchplan/pkg/demand"
	"github.com/bakeryops/batchplan/pkg/recipe"
	"github.com/bakeryops/batchplan/pkg/resource"
)

func testInventory() resource.Inventory {
	return resource.NewInventory(
		resource.Pool{Type: resource.TypeOven, Capacity: 1},
		resource.Pool{Type: resource.TypeStandMixer, Capacity: 1},
		resource.Pool{Type: resource.TypeChef, Capacity: 2},
	)
}

func ovenRecipe(id string, dur time.Duration) recipe.Recipe {
	return recipe.Recipe{
		ID: id,
		Stages: []recipe.Stage{
			{
				Sequence: 1, Start: 0, End: dur,
				Requires: []recipe.Requirement{{Resource: resource.TypeOven, Quantity: 1}},
			},
		},
	}
}

func mustProfile(t *testing.T, r recipe.Recipe, inv resource.Inventory) demand.Profile {
	t.Helper()
	p, err := demand.Build(r, inv)
	if err != nil {
		t.Fatalf("demand.Build(%s): %v", r.ID, err)
	}
	return p
}

func TestCheckFeasible(t *testing.T) {
	inv := testInventory()
	p := mustProfile(t, ovenRecipe("loaf", time.Hour), inv)

	profiles := map[string]demand.Profile{"a": p, "b": p}
	starts := map[string]time.Duration{"a": 0, "b": time.Hour}

	v, err := Check(profiles, starts, inv)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if v != nil {
		t.Errorf("Check() = %v, want feasible", v)
	}
}

func TestCheckViolation(t *testing.T) {
	inv := testInventory()
	p := mustProfile(t, ovenRecipe("loaf", time.Hour), inv)

	profiles := map[string]demand.Profile{"a": p, "b": p}
	starts := map[string]time.Duration{"a": 0, "b": 30 * time.Minute}

	v, err := Check(profiles, starts, inv)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if v == nil {
		t.Fatal("Check() = feasible, want violation")
	}
	if v.Resource != resource.TypeOven {
		t.Errorf("Violation.Resource = %s, want oven", v.Resource)
	}
	if v.At != 30*time.Minute {
		t.Errorf("Violation.At = %v, want 30m", v.At)
	}
	if v.Requested != 2 || v.Capacity != 1 {
		t.Errorf("Violation usage = %d/%d, want 2/1", v.Requested, v.Capacity)
	}
}

func TestCheckBackToBackBoundary(t *testing.T) {
	// A stage ending exactly when another begins must not conflict: the
	// release sorts before the acquisition.
	inv := testInventory()
	p := mustProfile(t, ovenRecipe("loaf", time.Hour), inv)

	starts := map[string]time.Duration{"a": 0, "b": time.Hour, "c": 2 * time.Hour}
	profiles := map[string]demand.Profile{"a": p, "b": p, "c": p}

	v, err := Check(profiles, starts, inv)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if v != nil {
		t.Errorf("Check() back-to-back = %v, want feasible", v)
	}
}

func TestCheckMissingProfile(t *testing.T) {
	inv := testInventory()
	_, err := Check(map[string]demand.Profile{}, map[string]time.Duration{"ghost": 0}, inv)
	if err == nil {
		t.Error("Check() with missing profile = nil error, want failure")
	}
}

// TestCheckSoundness cross-validates the sweep against a brute-force
// discrete-time simulation on a minute grid.
func TestCheckSoundness(t *testing.T) {
	inv := resource.NewInventory(
		resource.Pool{Type: resource.TypeOven, Capacity: 2},
		resource.Pool{Type: resource.TypeChef, Capacity: 2},
		resource.Pool{Type: resource.TypeStandMixer, Capacity: 1},
	)

	r := recipe.Recipe{
		ID: "braid",
		Stages: []recipe.Stage{
			{
				Sequence: 1, Start: 0, End: 45 * time.Minute,
				Requires: []recipe.Requirement{
					{Resource: resource.TypeStandMixer, Quantity: 1},
					{Resource: resource.TypeChef, Quantity: 1},
				},
			},
			{
				Sequence: 2, Start: 30 * time.Minute, End: 90 * time.Minute,
				Requires: []recipe.Requirement{{Resource: resource.TypeOven, Quantity: 1}},
			},
		},
	}
	p := mustProfile(t, r, inv)

	cases := []map[string]time.Duration{
		{"a": 0, "b": 45 * time.Minute},
		{"a": 0, "b": 45 * time.Minute, "c": 90 * time.Minute},
		{"a": 0, "b": 10 * time.Minute, "c": 20 * time.Minute},
	}

	for _, starts := range cases {
		profiles := make(map[string]demand.Profile, len(starts))
		for id := range starts {
			profiles[id] = p
		}

		v, err := Check(profiles, starts, inv)
		if err != nil {
			t.Fatalf("Check() error: %v", err)
		}

		simFeasible := simulate(profiles, starts, inv, time.Minute)
		if (v == nil) != simFeasible {
			t.Errorf("sweep and simulation disagree for starts %v: sweep=%v sim=%v",
				starts, v, simFeasible)
		}
	}
}

// simulate samples usage on a fixed grid, treating intervals as half-open.
func simulate(profiles map[string]demand.Profile, starts map[string]time.Duration, inv resource.Inventory, step time.Duration) bool {
	var horizon time.Duration
	for id, start := range starts {
		if end := start + profiles[id].Duration; end > horizon {
			horizon = end
		}
	}
	for at := time.Duration(0); at < horizon; at += step {
		usage := make(map[resource.Type]int)
		for id, start := range starts {
			for _, e := range profiles[id].Events {
				if e.At+start <= at {
					usage[e.Resource] += e.Delta
				}
			}
		}
		for rt, n := range usage {
			if n > inv.Capacity(rt) {
				return false
			}
		}
	}
	return true
}
