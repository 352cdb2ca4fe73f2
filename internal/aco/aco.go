package aco

import (
	"context"
	"math"
	"math/rand"
	"time"

	"knapsack/internal/construct"
	"knapsack/internal/knapsack"
	"knapsack/internal/opt"
)

// Solver - структура реализации муравьиного алгоритма.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый ACO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve - реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *knapsack.Instance) (opt.Result, error) {
	startTime := time.Now()

	// Валидация входных данных
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, construct.ErrNilRand
	}

	n := inst.Len()

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerItem * n
	}

	// чем выше удельная прибыль - тем лучше
	eta := make([]float64, n)
	totalProfit := 0
	for i := 0; i < n; i++ {
		eta[i] = float64(inst.Profit(i)+1) / float64(inst.Weight(i)+1)
		totalProfit += inst.Profit(i)
	}

	// Феромон на предметах
	tau := make([]float64, n)
	for i := range tau {
		tau[i] = s.Cfg.Tau0
	}

	// Вспомогательные буферы
	sol := knapsack.NewSolution(n)
	available := make([]int, n)   // ещё не выбранные предметы
	weights := make([]float64, n) // веса вероятностного выбора

	best := knapsack.NewSolution(n)
	bestCost := knapsack.Evaluation{}
	evals := 0

	alpha := s.Cfg.Alpha
	beta := s.Cfg.Beta
	rho := s.Cfg.Rho
	Q := s.Cfg.Q

	for iter := 0; iter < maxIter; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := opt.NewResult(best, bestCost, evals, iter, map[string]any{
				"stopped": "context",
			})
			res.Duration = time.Since(startTime)
			return res, err
		}

		// Лучшее решение текущей итерации
		iterBest := knapsack.NewSolution(n)
		iterBestCost := knapsack.Evaluation{}

		// Муравьи пошли
		for a := 0; a < s.Cfg.Ants; a++ {
			cost := constructSolution(
				inst, tau, eta,
				alpha, beta,
				s.Cfg.CandidateK,
				s.Rng,
				sol, available, weights,
			)
			evals++

			// Локальное лучшее за итерацию
			if cost.Better(iterBestCost) {
				iterBestCost = cost
				copy(iterBest, sol)
			}
			// Глобальное лучшее за всё время
			if cost.Better(bestCost) {
				bestCost = cost
				copy(best, sol)
			}
		}

		// Испарение феромона
		ev := 1.0 - rho
		for i := range tau {
			tau[i] *= ev
			if tau[i] < 1e-12 {
				tau[i] = 1e-12
			}
		}

		// Добавление феромона только по лучшему решению итерации
		if totalProfit > 0 {
			dep := Q * float64(iterBestCost.Profit) / float64(totalProfit)
			for _, i := range iterBest.Items() {
				tau[i] += dep
			}
		}
	}

	res := opt.NewResult(best, bestCost, evals, maxIter, map[string]any{
		"ants":        s.Cfg.Ants,
		"alpha":       alpha,
		"beta":        beta,
		"rho":         rho,
		"Q":           Q,
		"tau0":        s.Cfg.Tau0,
		"candidate_k": s.Cfg.CandidateK,
	})
	res.Duration = time.Since(startTime)
	return res, nil
}

// constructSolution строит одно допустимое решение.
// На каждом шаге среди помещающихся предметов выбирается один вероятностно по формуле ACO;
// построение заканчивается, когда не помещается ни один.
func constructSolution(
	inst *knapsack.Instance,
	tau []float64,
	eta []float64,
	alpha float64,
	beta float64,
	candidateK int,
	rng *rand.Rand,
	out knapsack.Solution,
	available []int,
	weights []float64,
) knapsack.Evaluation {
	n := inst.Len()
	for i := 0; i < n; i++ {
		available[i] = i
		out[i] = false
	}
	rem := n
	remaining := inst.Capacity()
	profit, weight := 0, 0

	for rem > 0 {
		// Ограничение списка кандидатов
		k := rem
		if candidateK > 0 && candidateK < rem {
			k = candidateK
			for t := 0; t < k; t++ {
				r := t + rng.Intn(rem-t)
				available[t], available[r] = available[r], available[t]
			}
		}

		// Подсчёт весов вероятностей выбора; непомещающиеся получают 0
		sumW := 0.0
		fits := 0
		for i := 0; i < k; i++ {
			j := available[i]
			w := 0.0
			if inst.Weight(j) <= remaining {
				// Формула ACO
				w = fastPow(tau[j], alpha) * fastPow(eta[j], beta)
				fits++
			}
			weights[i] = w
			sumW += w
		}
		if fits == 0 {
			if k == rem {
				break
			}
			// Среди выбранных кандидатов ничего не помещается:
			// убираем их из рассмотрения
			for i := k - 1; i >= 0; i-- {
				available[i], available[rem-1] = available[rem-1], available[i]
				rem--
			}
			continue
		}

		// Стохастический выбор следующего предмета
		chosenIdx := -1
		if sumW > 0 {
			r := rng.Float64() * sumW
			acc := 0.0
			for i := 0; i < k; i++ {
				if weights[i] == 0 {
					continue
				}
				acc += weights[i]
				chosenIdx = i
				if r <= acc {
					break
				}
			}
		} else {
			pick := rng.Intn(fits)
			for i := 0; i < k; i++ {
				if inst.Weight(available[i]) <= remaining {
					if pick == 0 {
						chosenIdx = i
						break
					}
					pick--
				}
			}
		}

		item := available[chosenIdx]
		out[item] = true
		profit += inst.Profit(item)
		weight += inst.Weight(item)
		remaining -= inst.Weight(item)

		// Удаляем выбранный предмет из списка доступных
		available[chosenIdx], available[rem-1] =
			available[rem-1], available[chosenIdx]
		rem--
	}
	return knapsack.Score(profit, weight, inst.Capacity())
}

// fastPow - оптимизация для частых степеней.
// Таким образом избегаем вызова math.Pow в простых случаях.
func fastPow(x, p float64) float64 {
	if p == 0 {
		return 1.0
	}
	if p == 1 {
		return x
	}
	if p == 2 {
		return x * x
	}
	return math.Pow(x, p)
}
