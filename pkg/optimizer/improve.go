package optimizer

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bakeryops/batchplan/pkg/demand"
	"github.com/bakeryops/batchplan/pkg/feasibility"
	"github.com/bakeryops/batchplan/pkg/resource"
)

const coolingRate = 0.95

// annealValue flattens a score into the scalar the acceptance rule works
// with. The makespan tie-breaker enters as a vanishing penalty so that
// equal-objective moves still drift toward shorter schedules.
func annealValue(s Score) float64 {
	return s.Primary - s.Makespan.Hours()*1e-6
}

type candidateResult struct {
	timeline *feasibility.Timeline
	score    Score
}

// improve runs seeded simulated annealing over the construction ordering.
// Each iteration perturbs the current order into Parallelism candidates,
// evaluates them concurrently against read-only profile data, and lets the
// single committing goroutine accept or reject the best one. The best
// schedule seen is returned; it is never worse than the construction input.
func (o *Optimizer) improve(ctx context.Context, order []Instance, profiles map[string]demand.Profile, inv resource.Inventory, eval *evaluator, tl *feasibility.Timeline, score Score) (*Result, error) {
	cfg := o.cfg
	rng := rand.New(rand.NewSource(cfg.Seed))

	cur := order
	curScore := score
	bestTL := tl
	bestScore := score

	var budgetEnd time.Time
	if cfg.Budget > 0 {
		budgetEnd = time.Now().Add(cfg.Budget)
	}

	progress := rate.Sometimes{Interval: 2 * time.Second}
	iterations := 0
	noImprove := 0
	exhausted := false
	temp := math.Abs(annealValue(curScore))*0.05 + 1.0

	for it := 0; it < cfg.MaxIterations; it++ {
		select {
		case <-ctx.Done():
			exhausted = true
		default:
		}
		if !budgetEnd.IsZero() && time.Now().After(budgetEnd) {
			exhausted = true
		}
		if exhausted || noImprove >= cfg.Patience {
			break
		}
		iterations++

		candidates := make([][]Instance, cfg.Parallelism)
		for i := range candidates {
			candidates[i] = perturb(cur, rng)
		}

		results := make([]candidateResult, len(candidates))
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Parallelism)
		for i, cand := range candidates {
			i, cand := i, cand
			g.Go(func() error {
				ctl := construct(cand, profiles, inv)
				results[i] = candidateResult{timeline: ctl, score: eval.score(ctl)}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		pick := 0
		for i := 1; i < len(results); i++ {
			if results[i].score.Better(results[pick].score) {
				pick = i
			}
		}
		cand := results[pick]

		accepted := cand.score.Better(curScore)
		if !accepted {
			delta := annealValue(cand.score) - annealValue(curScore)
			accepted = temp > 0 && rng.Float64() < math.Exp(delta/temp)
		}
		if accepted {
			cur = candidates[pick]
			curScore = cand.score
			movesAccepted.Inc()
		} else {
			movesRejected.Inc()
		}

		if curScore.Better(bestScore) {
			bestScore = curScore
			bestTL = cand.timeline
			noImprove = 0
		} else {
			noImprove++
		}

		temp *= coolingRate

		progress.Do(func() {
			slog.Debug("improvement progress",
				"iteration", it,
				"best", bestScore.Primary,
				"best_makespan", bestScore.Makespan,
				"temperature", temp)
		})
	}

	return &Result{
		Starts:          bestTL.Starts(),
		Timeline:        bestTL,
		Score:           bestScore,
		Iterations:      iterations,
		BudgetExhausted: exhausted,
	}, nil
}

// perturb returns a copy of the order with one random move applied: either
// swapping two positions or reinserting one instance elsewhere. Stages
// within a recipe are never reordered; only whole instances move.
func perturb(order []Instance, rng *rand.Rand) []Instance {
	out := make([]Instance, len(order))
	copy(out, order)
	if len(out) < 2 {
		return out
	}

	i := rng.Intn(len(out))
	j := rng.Intn(len(out) - 1)
	if j >= i {
		j++
	}

	if rng.Intn(2) == 0 {
		out[i], out[j] = out[j], out[i]
		return out
	}

	// Reinsert element i at position j.
	moved := out[i]
	out = append(out[:i], out[i+1:]...)
	if j > len(out) {
		j = len(out)
	}
	out = append(out[:j], append([]Instance{moved}, out[j:]...)...)
	return out
}
