package sa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"knapsack/internal/construct"
	"knapsack/internal/knapsack"
	"knapsack/internal/localsearch"
	"knapsack/internal/opt"
)

// Solver - структура реализации алгоритма имитации отжига
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve - реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *knapsack.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	ctor, err := construct.New(s.Cfg.Start, s.Rng)
	if err != nil {
		return opt.Result{}, err
	}

	n := inst.Len()
	capacity := inst.Capacity()

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerItem * n
	}

	// Текущее решение строится конструктивной эвристикой и далее меняется на месте;
	// суммарные прибыль и вес пересчитываются по приращениям.
	built := ctor.Construct(inst, construct.Deadline(ctx, s.Cfg.Start.TimeLimit))
	curr := built.Solution
	currProfit, currWeight := built.Profit, built.Weight
	currCost := knapsack.Score(currProfit, currWeight, capacity)

	best := curr.Clone()
	bestCost := currCost

	evals := 1
	T := s.Cfg.InitialTemp

	// Окрестность пуста: улучшать нечего.
	if (s.Cfg.Neighborhood == NeighborhoodAdjacent && n < 2) || n < 1 {
		maxIter = 0
	}

	for iter := 0; iter < maxIter && T > s.Cfg.FinalTemp; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := opt.NewResult(best, bestCost, evals, iter, map[string]any{
				"stopped": "context",
				"T":       T,
			})
			res.Duration = time.Since(start)
			return res, err
		}

		var dp, dw, j int
		switch s.Cfg.Neighborhood {
		case NeighborhoodFlip:
			// Окрестность на основе инверсии одного флага
			j = s.Rng.Intn(n)
			dp, dw = flipDelta(inst, curr, j)
		default:
			// Окрестность на основе инверсии пары соседних флагов
			j = s.Rng.Intn(n - 1)
			dp, dw = localsearch.Delta(inst, curr, j)
		}

		candCost := knapsack.Score(currProfit+dp, currWeight+dw, capacity)
		evals++

		// Задача на максимум: delta > 0 - улучшение
		delta := candCost.Profit - currCost.Profit
		accept := false
		if delta >= 0 {
			accept = true
		} else {
			// Критерий Метрополиса:
			// допускает принятие ухудшающих решений
			p := math.Exp(float64(delta) / T)
			if s.Rng.Float64() < p {
				accept = true
			}
		}

		if accept {
			if s.Cfg.Neighborhood == NeighborhoodFlip {
				curr.Flip(j)
			} else {
				localsearch.Apply(curr, j)
			}
			currProfit += dp
			currWeight += dw
			currCost = candCost

			// Обновление глобально лучшего решения
			if currCost.Profit > bestCost.Profit {
				bestCost = currCost
				copy(best, curr)
			}
		}

		// Охлаждение температуры
		T *= s.Cfg.Alpha
	}

	res := opt.NewResult(best, bestCost, evals, maxIter, map[string]any{
		"initial_temp": s.Cfg.InitialTemp,
		"final_temp":   s.Cfg.FinalTemp,
		"alpha":        s.Cfg.Alpha,
		"neighborhood": string(s.Cfg.Neighborhood),
		"start_profit": built.Profit,
	})
	res.Duration = time.Since(start)
	return res, nil
}

// flipDelta - изменение прибыли и веса при инверсии флага j.
func flipDelta(inst *knapsack.Instance, s knapsack.Solution, j int) (int, int) {
	if s[j] {
		return -inst.Profit(j), -inst.Weight(j)
	}
	return inst.Profit(j), inst.Weight(j)
}
