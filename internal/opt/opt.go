package opt

import (
	"context"
	"time"

	"knapsack/internal/knapsack"
)

// Optimizer - общий интерфейс всех эвристик, которые умеет запускать стенд.
type Optimizer interface {
	Solve(ctx context.Context, inst *knapsack.Instance) (Result, error)
}

type Result struct {
	Solution    knapsack.Solution
	Profit      int
	Weight      int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// NewResult копирует решение и заполняет оценку.
func NewResult(s knapsack.Solution, ev knapsack.Evaluation, evals, iters int, meta map[string]any) Result {
	return Result{
		Solution:    s.Clone(),
		Profit:      ev.Profit,
		Weight:      ev.Weight,
		Evaluations: evals,
		Iterations:  iters,
		Meta:        meta,
	}
}
