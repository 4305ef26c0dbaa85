package feasibility

import (
	"fmt"
	"testing"
	"time"

	"github.com/bakeryops/batchplan/pkg/demand"
	"github.com/bakeryops/batchplan/pkg/resource"
)

func benchSchedule(b *testing.B, n int) (map[string]demand.Profile, map[string]time.Duration, resource.Inventory) {
	b.Helper()
	inv := resource.NewInventory(
		resource.Pool{Type: resource.TypeOven, Capacity: 4},
		resource.Pool{Type: resource.TypeChef, Capacity: 8},
	)

	r := ovenRecipe("bench", time.Hour)
	p, err := demand.Build(r, inv)
	if err != nil {
		b.Fatalf("demand.Build: %v", err)
	}

	profiles := make(map[string]demand.Profile, n)
	starts := make(map[string]time.Duration, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("i%d", i)
		profiles[id] = p
		// Four ovens: stagger starts so the schedule stays feasible.
		starts[id] = time.Duration(i/4) * time.Hour
	}
	return profiles, starts, inv
}

func BenchmarkCheck(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("instances_%d", n), func(b *testing.B) {
			profiles, starts, inv := benchSchedule(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				v, err := Check(profiles, starts, inv)
				if err != nil {
					b.Fatal(err)
				}
				if v != nil {
					b.Fatalf("unexpected violation: %v", v)
				}
			}
		})
	}
}

func BenchmarkTimelineCanPlace(b *testing.B) {
	profiles, starts, inv := benchSchedule(b, 100)

	tl := NewTimeline(inv)
	for id, p := range profiles {
		tl.Place(id, p, starts[id])
	}
	candidate := profiles["i0"]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tl.CanPlace(candidate, 30*time.Minute)
	}
}
