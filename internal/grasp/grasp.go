package grasp

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"knapsack/internal/construct"
	"knapsack/internal/knapsack"
	"knapsack/internal/localsearch"
	"knapsack/internal/logging"
	"knapsack/internal/opt"
)

// Solver - GRASP: жадно-рандомизированное построение, спуск до локального
// оптимума и сохранение лучшего решения.
type Solver struct {
	Cfg    Config
	Rng    *rand.Rand
	Logger *slog.Logger
}

// New возвращает новый GRASP-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, construct.ErrNilRand
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Run - короткая форма: iterations итераций с параметром alpha, последовательно.
func Run(ctx context.Context, inst *knapsack.Instance, iterations int, alpha float64, limit time.Duration, rng *rand.Rand) (knapsack.Solution, int, error) {
	cfg := DefaultConfig()
	cfg.Iterations = iterations
	cfg.Alpha = alpha
	cfg.ConstructionTimeLimit = limit
	s, err := New(cfg, rng)
	if err != nil {
		return nil, 0, err
	}
	res, err := s.Solve(ctx, inst)
	return res.Solution, res.Profit, err
}

// candidate - итог одной итерации.
type candidate struct {
	iter  int
	sol   knapsack.Solution
	ev    knapsack.Evaluation
	evals int
}

// incumbent - лучшее решение за прогон. Обновляется только при строгом росте прибыли;
// в параллельном режиме равная прибыль уступает меньшему номеру итерации,
// поэтому результат совпадает с последовательным прогоном.
type incumbent struct {
	mu    sync.Mutex
	log   *slog.Logger
	sol   knapsack.Solution
	ev    knapsack.Evaluation
	iter  int
	evals int
	done  int
}

func (in *incumbent) offer(c candidate) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.evals += c.evals
	in.done++
	better := c.ev.Profit > in.ev.Profit
	earlier := c.ev.Profit == in.ev.Profit && in.sol != nil && c.iter < in.iter
	if better || earlier {
		in.sol, in.ev, in.iter = c.sol, c.ev, c.iter
		in.log.Debug("grasp: incumbent improved",
			slog.Int("iteration", c.iter),
			slog.Int("profit", c.ev.Profit),
			slog.Int("weight", c.ev.Weight),
		)
	}
}

// Solve - основной цикл GRASP.
func (s *Solver) Solve(ctx context.Context, inst *knapsack.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, construct.ErrNilRand
	}

	// Сиды итераций выбираются заранее: каждая итерация получает свой генератор,
	// и порядок выполнения не влияет на результат.
	seeds := make([]int64, s.Cfg.Iterations)
	for i := range seeds {
		seeds[i] = s.Rng.Int63()
	}

	best := &incumbent{log: logging.OrDiscard(s.Logger), iter: -1}

	if s.Cfg.Workers == 1 {
		for i := range seeds {
			// Для поддержки отмены через context
			if err := ctx.Err(); err != nil {
				return s.result(inst, best, start, "context"), err
			}
			best.offer(s.iterate(ctx, inst, i, seeds[i]))
		}
	} else {
		p := pool.New().WithMaxGoroutines(s.Cfg.Workers)
		for i := range seeds {
			i := i
			p.Go(func() {
				if ctx.Err() != nil {
					return
				}
				best.offer(s.iterate(ctx, inst, i, seeds[i]))
			})
		}
		p.Wait()
		if err := ctx.Err(); err != nil {
			return s.result(inst, best, start, "context"), err
		}
	}

	return s.result(inst, best, start, ""), nil
}

func (s *Solver) iterate(ctx context.Context, inst *knapsack.Instance, iter int, seed int64) candidate {
	ctor, err := construct.NewGreedyRandomized(s.Cfg.Alpha, rand.New(rand.NewSource(seed)))
	if err != nil {
		// alpha уже проверена в Validate
		panic(fmt.Sprintf("grasp: %v", err))
	}
	built := ctor.Construct(inst, construct.Deadline(ctx, s.Cfg.ConstructionTimeLimit))
	out := localsearch.HillClimb(inst, built.Solution, s.Cfg.Policy)

	return candidate{
		iter:  iter,
		sol:   out.Solution,
		ev:    knapsack.Evaluate(out.Solution, inst),
		evals: out.Evaluations + 1,
	}
}

func (s *Solver) result(inst *knapsack.Instance, best *incumbent, start time.Time, stopped string) opt.Result {
	best.mu.Lock()
	defer best.mu.Unlock()

	sol := best.sol
	if sol == nil {
		sol = knapsack.NewSolution(inst.Len())
	}
	meta := map[string]any{
		"alpha":          s.Cfg.Alpha,
		"iterations":     s.Cfg.Iterations,
		"workers":        s.Cfg.Workers,
		"policy":         string(s.Cfg.Policy),
		"best_iteration": best.iter,
	}
	if stopped != "" {
		meta["stopped"] = stopped
	}
	res := opt.NewResult(sol, knapsack.Evaluate(sol, inst), best.evals, best.done, meta)
	res.Duration = time.Since(start)
	return res
}
