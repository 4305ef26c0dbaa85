package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakeryops/batchplan/pkg/errors"
	"github.com/bakeryops/batchplan/pkg/optimizer"
	"github.com/bakeryops/batchplan/pkg/recipe"
	"github.com/bakeryops/batchplan/pkg/resource"
)

func testInventory() resource.Inventory {
	return resource.NewInventory(
		resource.Pool{Type: resource.TypeOven, Capacity: 1, Cost: resource.CostModel{PerHour: 2}},
		resource.Pool{Type: resource.TypeChef, Capacity: 2, Cost: resource.CostModel{PerHour: 15}},
		resource.Pool{Type: resource.TypeStandMixer, Capacity: 1},
	)
}

func testRecipe(id string) recipe.Recipe {
	return recipe.Recipe{
		ID:             id,
		Name:           id,
		Servings:       12,
		SellPrice:      24,
		IngredientCost: 4,
		Stages: []recipe.Stage{
			{
				Kind: recipe.StageMix, Sequence: 1,
				Start: 0, End: 30 * time.Minute,
				LaborPerHour: 15,
				Requires: []recipe.Requirement{
					{Resource: resource.TypeChef, Quantity: 1},
					{Resource: resource.TypeStandMixer, Quantity: 1},
				},
			},
			{
				Kind: recipe.StageBake, Sequence: 2,
				Start: 30 * time.Minute, End: 90 * time.Minute,
				Requires: []recipe.Requirement{
					{Resource: resource.TypeOven, Quantity: 1},
				},
			},
		},
	}
}

func testRequest(objective optimizer.Objective, instances ...optimizer.Instance) ProductionRequest {
	cfg := optimizer.DefaultConfig()
	cfg.Seed = 7
	cfg.MaxIterations = 100
	return ProductionRequest{
		Instances: instances,
		Objective: objective,
		Tuning:    cfg,
	}
}

func TestPlanAssemblesResult(t *testing.T) {
	inv := testInventory()
	recipes := []recipe.Recipe{testRecipe("sourdough")}
	req := testRequest(optimizer.ObjectiveMinimizeMakespan,
		optimizer.Instance{ID: "a", RecipeID: "sourdough"},
		optimizer.Instance{ID: "b", RecipeID: "sourdough"},
	)

	now := time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC)
	p := New(WithVersion("v1.2.3"), WithClock(func() time.Time { return now }))
	res, err := p.Plan(context.Background(), req, recipes, inv)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, now, res.GeneratedAt)
	assert.Equal(t, "v1.2.3", res.Version)
	assert.Equal(t, optimizer.ObjectiveMinimizeMakespan, res.Objective)
	assert.False(t, res.BudgetExhausted)
	assert.Positive(t, res.Iterations)

	require.Len(t, res.Instances, 2)
	assert.Equal(t, "a", res.Instances[0].InstanceID)
	assert.Equal(t, "b", res.Instances[1].InstanceID)

	// Each instance keeps its full stage shape at an absolute offset.
	for _, inst := range res.Instances {
		require.Len(t, inst.Stages, 2)
		assert.Equal(t, inst.Start, inst.Stages[0].Start)
		assert.Equal(t, inst.Start+30*time.Minute, inst.Stages[0].End)
		assert.Equal(t, inst.Start+30*time.Minute, inst.Stages[1].Start)
		assert.Equal(t, inst.Start+90*time.Minute, inst.Stages[1].End)
		assert.Equal(t, 1, inst.Stages[0].Sequence)
		assert.NotEmpty(t, inst.Stages[0].Resources)
	}

	// One oven serializes the bake windows: the mixes overlap but the
	// makespan is bounded below by 90m + 60m.
	assert.Equal(t, 150*time.Minute, res.Makespan)
	assert.Equal(t, res.Makespan, res.Horizon)
}

func TestPlanCostBreakdown(t *testing.T) {
	inv := testInventory()
	recipes := []recipe.Recipe{testRecipe("sourdough")}
	req := testRequest(optimizer.ObjectiveMaximizeProfit,
		optimizer.Instance{ID: "a", RecipeID: "sourdough"},
	)

	res, err := New().Plan(context.Background(), req, recipes, inv)
	require.NoError(t, err)

	// 30m of chef labor at 15/h.
	assert.InDelta(t, 7.5, res.Cost.LaborCost, 1e-9)
	// 60m of oven at 2/h; mixer and chef pools carry per-hour cost on the
	// chef pool, charged as resource cost for the chef unit too.
	assert.InDelta(t, 2+7.5, res.Cost.ResourceCost, 1e-9)
	assert.InDelta(t, 4, res.Cost.IngredientCost, 1e-9)
	assert.InDelta(t, 24, res.Cost.Revenue, 1e-9)
	assert.InDelta(t, res.Cost.Revenue-res.Cost.TotalCost(), res.Cost.Profit, 1e-9)
}

func TestPlanUtilization(t *testing.T) {
	inv := testInventory()
	recipes := []recipe.Recipe{testRecipe("sourdough")}
	req := testRequest(optimizer.ObjectiveMinimizeMakespan,
		optimizer.Instance{ID: "a", RecipeID: "sourdough"},
	)

	res, err := New().Plan(context.Background(), req, recipes, inv)
	require.NoError(t, err)

	require.Equal(t, 90*time.Minute, res.Horizon)
	// Oven busy 60m of a 90m horizon, capacity 1.
	assert.InDelta(t, 60.0/90.0, res.Utilization[resource.TypeOven], 1e-9)
	// Chef busy 30m, capacity 2.
	assert.InDelta(t, 30.0/(2*90.0), res.Utilization[resource.TypeChef], 1e-9)
	assert.InDelta(t, 30.0/90.0, res.Utilization[resource.TypeStandMixer], 1e-9)
}

func TestPlanHorizonHint(t *testing.T) {
	inv := testInventory()
	recipes := []recipe.Recipe{testRecipe("sourdough")}
	req := testRequest(optimizer.ObjectiveMinimizeMakespan,
		optimizer.Instance{ID: "a", RecipeID: "sourdough"},
	)
	req.Horizon = 3 * time.Hour

	res, err := New().Plan(context.Background(), req, recipes, inv)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, res.Makespan)
	assert.Equal(t, 3*time.Hour, res.Horizon)
	// Utilization normalizes over the hint when it exceeds the makespan.
	assert.InDelta(t, 1.0/3.0, res.Utilization[resource.TypeOven], 1e-9)
}

func TestPlanDeterministic(t *testing.T) {
	inv := testInventory()
	recipes := []recipe.Recipe{testRecipe("sourdough")}
	req := testRequest(optimizer.ObjectiveMaximizeProfit,
		optimizer.Instance{ID: "a", RecipeID: "sourdough"},
		optimizer.Instance{ID: "b", RecipeID: "sourdough"},
		optimizer.Instance{ID: "c", RecipeID: "sourdough"},
	)

	first, err := New().Plan(context.Background(), req, recipes, inv)
	require.NoError(t, err)
	second, err := New().Plan(context.Background(), req, recipes, inv)
	require.NoError(t, err)

	assert.Equal(t, first.Instances, second.Instances)
	assert.Equal(t, first.Makespan, second.Makespan)
	assert.Equal(t, first.Cost, second.Cost)
	assert.Equal(t, first.Iterations, second.Iterations)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestPlanObjectiveDefaulting(t *testing.T) {
	inv := testInventory()
	recipes := []recipe.Recipe{testRecipe("sourdough")}
	p := New()

	t.Run("empty objective defers to tuning", func(t *testing.T) {
		req := testRequest("", optimizer.Instance{ID: "a", RecipeID: "sourdough"})
		req.Tuning.Objective = optimizer.ObjectiveMinimizeMakespan

		res, err := p.Plan(context.Background(), req, recipes, inv)
		require.NoError(t, err)
		assert.Equal(t, optimizer.ObjectiveMinimizeMakespan, res.Objective)
	})

	t.Run("both empty reports the default", func(t *testing.T) {
		req := ProductionRequest{
			Instances: []optimizer.Instance{{ID: "a", RecipeID: "sourdough"}},
		}

		res, err := p.Plan(context.Background(), req, recipes, inv)
		require.NoError(t, err)
		assert.Equal(t, optimizer.ObjectiveMaximizeProfit, res.Objective)
	})

	t.Run("invalid tuning rejected", func(t *testing.T) {
		req := testRequest("", optimizer.Instance{ID: "a", RecipeID: "sourdough"})
		req.Tuning.Budget = -time.Second

		_, err := p.Plan(context.Background(), req, recipes, inv)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	})
}

func TestPlanErrors(t *testing.T) {
	inv := testInventory()
	recipes := []recipe.Recipe{testRecipe("sourdough")}

	tests := []struct {
		name string
		req  ProductionRequest
		code errors.ErrorCode
	}{
		{
			name: "empty request",
			req:  testRequest(optimizer.ObjectiveMaximizeProfit),
			code: errors.ErrCodeEmptyRequest,
		},
		{
			name: "duplicate instance id",
			req: testRequest(optimizer.ObjectiveMaximizeProfit,
				optimizer.Instance{ID: "a", RecipeID: "sourdough"},
				optimizer.Instance{ID: "a", RecipeID: "sourdough"},
			),
			code: errors.ErrCodeInvalidRequest,
		},
		{
			name: "unknown recipe",
			req: testRequest(optimizer.ObjectiveMaximizeProfit,
				optimizer.Instance{ID: "a", RecipeID: "croissant"},
			),
			code: errors.ErrCodeInvalidRequest,
		},
		{
			name: "blank instance id",
			req: testRequest(optimizer.ObjectiveMaximizeProfit,
				optimizer.Instance{ID: "", RecipeID: "sourdough"},
			),
			code: errors.ErrCodeInvalidRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := New().Plan(context.Background(), tc.req, recipes, inv)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.IsCode(err, tc.code), "got %v", err)
		})
	}
}

func TestPlanStructuralInfeasibility(t *testing.T) {
	inv := resource.NewInventory(resource.Pool{Type: resource.TypeChef, Capacity: 2})
	r := recipe.Recipe{
		ID: "banquet", Name: "banquet", SellPrice: 1,
		Stages: []recipe.Stage{{
			Kind: recipe.StagePrep, Sequence: 1,
			Start: 0, End: time.Hour,
			Requires: []recipe.Requirement{{Resource: resource.TypeChef, Quantity: 3}},
		}},
	}
	req := testRequest(optimizer.ObjectiveMaximizeProfit,
		optimizer.Instance{ID: "a", RecipeID: "banquet"},
	)

	res, err := New().Plan(context.Background(), req, []recipe.Recipe{r}, inv)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStructuralInfeasibility), "got %v", err)
}

func TestPlanCancelledContext(t *testing.T) {
	inv := testInventory()
	recipes := []recipe.Recipe{testRecipe("sourdough")}
	req := testRequest(optimizer.ObjectiveMaximizeProfit,
		optimizer.Instance{ID: "a", RecipeID: "sourdough"},
		optimizer.Instance{ID: "b", RecipeID: "sourdough"},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := New().Plan(ctx, req, recipes, inv)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.BudgetExhausted)
	assert.Len(t, res.Instances, 2)
}

func TestNewProductionRequest(t *testing.T) {
	req := NewProductionRequest(2, "sourdough", "baguette")
	require.Len(t, req.Instances, 4)

	ids := make(map[string]bool, len(req.Instances))
	byRecipe := make(map[string]int)
	for _, inst := range req.Instances {
		ids[inst.ID] = true
		byRecipe[inst.RecipeID]++
	}
	assert.Len(t, ids, 4)
	assert.Equal(t, 2, byRecipe["sourdough"])
	assert.Equal(t, 2, byRecipe["baguette"])
}

func TestStartTimes(t *testing.T) {
	res := ScheduleResult{
		Instances: []InstanceSchedule{
			{InstanceID: "a", Start: 0},
			{InstanceID: "b", Start: 90 * time.Minute},
		},
	}
	starts := res.StartTimes()
	assert.Equal(t, map[string]time.Duration{
		"a": 0,
		"b": 90 * time.Minute,
	}, starts)
}
