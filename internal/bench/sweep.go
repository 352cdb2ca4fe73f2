package bench

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"knapsack/internal/construct"
	"knapsack/internal/opt"
)

// AlphaGrid возвращает steps+1 значений alpha: 0, 1/steps, ..., 1.
func AlphaGrid(steps int) []float64 {
	if steps <= 0 {
		return []float64{0}
	}
	out := make([]float64, steps+1)
	for i := range out {
		out[i] = float64(i) / float64(steps)
	}
	return out
}

type AlphaRecord struct {
	Alpha float64
	Record
}

// GreedyRandomizedAlgorithm - жадно-рандомизированное построение с заданным alpha как алгоритм стенда.
func GreedyRandomizedAlgorithm(alpha float64, limit time.Duration) Algorithm {
	cfg := construct.DefaultConfig()
	cfg.Strategy = construct.StrategyGreedyRandomized
	cfg.Alpha = alpha
	cfg.TimeLimit = limit
	return Algorithm{
		Name: fmt.Sprintf("GRC(alpha=%.2f)", alpha),
		Factory: func(seed int64) (opt.Optimizer, error) {
			return Wrap(construct.NewSolver(cfg, rand.New(rand.NewSource(seed))))
		},
	}
}

// SweepAlpha запускает жадно-рандомизированное построение для каждого alpha
// и возвращает записи вместе с лучшей: первой, достигшей наибольшей прибыли.
// При равной лучшей прибыли выбирается меньшее alpha по порядку списка.
func (r Runner) SweepAlpha(ctx context.Context, c Case, alphas []float64, limit time.Duration) ([]AlphaRecord, AlphaRecord, error) {
	if len(alphas) == 0 {
		return nil, AlphaRecord{}, fmt.Errorf("список alpha пуст")
	}
	out := make([]AlphaRecord, 0, len(alphas))
	best := -1
	for _, a := range alphas {
		rec, err := r.RunCase(ctx, c, GreedyRandomizedAlgorithm(a, limit))
		if err != nil {
			return out, AlphaRecord{}, fmt.Errorf("alpha=%.2f: %w", a, err)
		}
		out = append(out, AlphaRecord{Alpha: a, Record: rec})
		if best < 0 || rec.ProfitBest > out[best].ProfitBest {
			best = len(out) - 1
		}
	}
	return out, out[best], nil
}
