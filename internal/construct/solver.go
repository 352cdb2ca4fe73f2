package construct

import (
	"context"
	"math/rand"
	"time"

	"knapsack/internal/knapsack"
	"knapsack/internal/opt"
)

// Solver запускает одну конструктивную эвристику как opt.Optimizer.
type Solver struct {
	Cfg  Config
	ctor Constructor
}

// NewSolver возвращает солвер с валидацией конфигурации.
// Используется в фабриках стенда.
func NewSolver(cfg Config, rng *rand.Rand) (*Solver, error) {
	ctor, err := New(cfg, rng)
	if err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg, ctor: ctor}, nil
}

// Solve строит одно решение. Исчерпание бюджета времени ошибкой не считается.
func (s *Solver) Solve(ctx context.Context, inst *knapsack.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}

	built := s.ctor.Construct(inst, Deadline(ctx, s.Cfg.TimeLimit))
	res := opt.NewResult(
		built.Solution,
		knapsack.Evaluation{Profit: built.Profit, Weight: built.Weight},
		0,
		1,
		map[string]any{
			"strategy":   string(s.Cfg.Strategy),
			"alpha":      s.Cfg.Alpha,
			"time_limit": s.Cfg.TimeLimit.String(),
		},
	)
	res.Duration = time.Since(start)
	return res, nil
}
