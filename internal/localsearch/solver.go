package localsearch

import (
	"context"
	"math/rand"
	"time"

	"knapsack/internal/construct"
	"knapsack/internal/knapsack"
	"knapsack/internal/opt"
)

// Solver строит начальное решение и улучшает его локальным поиском.
type Solver struct {
	Cfg  Config
	Rng  *rand.Rand
	ctor construct.Constructor
}

// New возвращает новый солвер локального поиска с валидацией конфигурации.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctor, err := construct.New(cfg.Start, rng)
	if err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg, Rng: rng, ctor: ctor}, nil
}

// Solve - построение и улучшение одного решения.
func (s *Solver) Solve(ctx context.Context, inst *knapsack.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return opt.Result{}, err
	}

	built := s.ctor.Construct(inst, construct.Deadline(ctx, s.Cfg.Start.TimeLimit))

	var (
		sol   knapsack.Solution
		ev    knapsack.Evaluation
		evals int
		steps int
	)
	if s.Cfg.HillClimb {
		out := HillClimb(inst, built.Solution, s.Cfg.Policy)
		sol, ev, evals, steps = out.Solution, out.Evaluation, out.Evaluations, out.Steps
	} else {
		st := StepFunc(s.Cfg.Policy)(inst, built.Solution)
		sol, ev, evals = st.Solution, st.Evaluation, st.Evaluations
		if st.State == Improved {
			steps = 1
		}
	}

	res := opt.NewResult(sol, ev, evals, steps, map[string]any{
		"policy":       string(s.Cfg.Policy),
		"hill_climb":   s.Cfg.HillClimb,
		"start":        string(s.Cfg.Start.Strategy),
		"start_profit": built.Profit,
	})
	res.Duration = time.Since(start)
	return res, nil
}
