package recipe

import (
	"testing"
	"time"

	"github.com/bakeryops/batchplan/pkg/errors"
	"github.com/bakeryops/batchplan/pkg/resource"
)

func testInventory() resource.Inventory {
	return resource.NewInventory(
		resource.Pool{Type: resource.TypeOven, Capacity: 2},
		resource.Pool{Type: resource.TypeStandMixer, Capacity: 1},
		resource.Pool{Type: resource.TypeChef, Capacity: 2},
	)
}

func validRecipe() Recipe {
	return Recipe{
		ID:        "sourdough",
		Name:      "Sourdough Loaf",
		SellPrice: 9.5,
		Stages: []Stage{
			{
				Kind: StageMix, Sequence: 1,
				Start: 0, End: 30 * time.Minute,
				LaborPerHour: 18,
				Requires: []Requirement{
					{Resource: resource.TypeStandMixer, Quantity: 1},
					{Resource: resource.TypeChef, Quantity: 1},
				},
			},
			{
				Kind: StageBake, Sequence: 2,
				Start: 30 * time.Minute, End: 90 * time.Minute,
				Requires: []Requirement{
					{Resource: resource.TypeOven, Quantity: 1},
				},
			},
		},
	}
}

func TestRecipeDuration(t *testing.T) {
	r := validRecipe()
	if got := r.Duration(); got != 90*time.Minute {
		t.Errorf("Duration() = %v, want 90m", got)
	}

	// Overlapping stages: duration is still the max end offset.
	r.Stages = append(r.Stages, Stage{
		Kind: StageProof, Sequence: 3,
		Start: 10 * time.Minute, End: 2 * time.Hour,
	})
	if got := r.Duration(); got != 2*time.Hour {
		t.Errorf("Duration() with overlap = %v, want 2h", got)
	}

	var empty Recipe
	if got := empty.Duration(); got != 0 {
		t.Errorf("Duration() of empty recipe = %v, want 0", got)
	}
}

func TestTotalIngredientCost(t *testing.T) {
	r := validRecipe()
	r.Ingredients = []Ingredient{
		{Name: "flour", Quantity: 0.5, Unit: "kg", CostPerUnit: 1.2},
		{Name: "salt", Quantity: 0.01, Unit: "kg", CostPerUnit: 0.8},
	}

	want := 0.5*1.2 + 0.01*0.8
	if got := r.TotalIngredientCost(); got != want {
		t.Errorf("TotalIngredientCost() itemized = %v, want %v", got, want)
	}

	// Flat cost wins when set.
	r.IngredientCost = 2.5
	if got := r.TotalIngredientCost(); got != 2.5 {
		t.Errorf("TotalIngredientCost() flat = %v, want 2.5", got)
	}
}

func TestRecipeValidate(t *testing.T) {
	inv := testInventory()

	tests := []struct {
		name     string
		mutate   func(*Recipe)
		wantCode errors.ErrorCode
	}{
		{
			name:   "valid recipe",
			mutate: func(r *Recipe) {},
		},
		{
			name:     "inverted stage window",
			mutate:   func(r *Recipe) { r.Stages[0].End = -time.Minute },
			wantCode: errors.ErrCodeInvalidStageWindow,
		},
		{
			name:     "zero-length stage window",
			mutate:   func(r *Recipe) { r.Stages[1].End = r.Stages[1].Start },
			wantCode: errors.ErrCodeInvalidStageWindow,
		},
		{
			name:     "negative stage start",
			mutate:   func(r *Recipe) { r.Stages[0].Start = -time.Minute },
			wantCode: errors.ErrCodeInvalidStageWindow,
		},
		{
			name: "unknown resource type",
			mutate: func(r *Recipe) {
				r.Stages[0].Requires[0].Resource = resource.TypeProofingCabinet
			},
			wantCode: errors.ErrCodeUnknownResourceType,
		},
		{
			name:     "zero quantity",
			mutate:   func(r *Recipe) { r.Stages[0].Requires[0].Quantity = 0 },
			wantCode: errors.ErrCodeInvalidRequest,
		},
		{
			name:     "duplicate sequence",
			mutate:   func(r *Recipe) { r.Stages[1].Sequence = 1 },
			wantCode: errors.ErrCodeInvalidRequest,
		},
		{
			name:     "missing id",
			mutate:   func(r *Recipe) { r.ID = "" },
			wantCode: errors.ErrCodeInvalidRequest,
		},
		{
			name:     "no stages",
			mutate:   func(r *Recipe) { r.Stages = nil },
			wantCode: errors.ErrCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(&r)
			err := r.Validate(inv)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.IsCode(err, tt.wantCode) {
				t.Errorf("Validate() code = %s, want %s", errors.CodeOf(err), tt.wantCode)
			}
		})
	}
}

func TestValidateAll(t *testing.T) {
	inv := testInventory()

	a := validRecipe()
	b := validRecipe()
	b.ID = "baguette"
	if err := ValidateAll([]Recipe{a, b}, inv); err != nil {
		t.Fatalf("ValidateAll() unexpected error: %v", err)
	}

	dup := validRecipe()
	err := ValidateAll([]Recipe{a, dup}, inv)
	if !errors.IsCode(err, errors.ErrCodeInvalidRequest) {
		t.Errorf("ValidateAll() duplicate id code = %v, want INVALID_REQUEST", err)
	}
}
