package pso

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"knapsack/internal/construct"
	"knapsack/internal/knapsack"
	"knapsack/internal/opt"
)

// Solver - структура реализации алгоритма роя частиц
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый PSO-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// particle описывает одну частицу роя.
type particle struct {
	// pos - позиция частицы
	pos []float64
	// vel - скорость частицы
	vel []float64

	// pBestPos - лучшая позиция частицы за всё время
	pBestPos []float64
	// pBestCost - оценка решения в pBestPos
	pBestCost knapsack.Evaluation

	// Вспомогательные буферы
	solScratch knapsack.Solution
	idxScratch []int
}

// Solve - реализация эвристики.
func (s *Solver) Solve(ctx context.Context, inst *knapsack.Instance) (opt.Result, error) {
	start := time.Now()

	// Валидация конфигурации
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

	iters := s.Cfg.Iterations
	if iters <= 0 {
		iters = s.Cfg.IterationsPerItem * n
	}

	// Инициализация частиц
	ps := make([]particle, s.Cfg.Particles)
	for i := range ps {
		ps[i] = particle{
			pos:        make([]float64, n),
			vel:        make([]float64, n),
			pBestPos:   make([]float64, n),
			solScratch: knapsack.NewSolution(n),
			idxScratch: make([]int, n),
		}
	}

	posMin, posMax := s.Cfg.PosMin, s.Cfg.PosMax
	doPosClamp := posMin < posMax

	// Случайная инициализация позиций и скоростей частиц
	for i := range ps {
		for d := 0; d < n; d++ {
			// Инициализация позиции
			if doPosClamp {
				ps[i].pos[d] = posMin + s.Rng.Float64()*(posMax-posMin)
			} else {
				ps[i].pos[d] = s.Rng.Float64()
			}
			// Инициализация скорости
			if s.Cfg.VMax > 0 {
				ps[i].vel[d] = (s.Rng.Float64()*2 - 1) * s.Cfg.VMax
			} else {
				ps[i].vel[d] = (s.Rng.Float64()*2 - 1) * 0.1
			}
		}

		// Оценка начального положения частицы
		ps[i].pBestCost = decodePriorities(inst, ps[i].pos, ps[i].solScratch, ps[i].idxScratch)
		copy(ps[i].pBestPos, ps[i].pos)
	}

	evals := s.Cfg.Particles

	// Вычисление глобально лучшего решения
	gBestPos := make([]float64, n)
	gBest := knapsack.NewSolution(n)
	gBestCost := knapsack.Evaluation{}
	gBestSet := false

	for i := range ps {
		if !gBestSet || ps[i].pBestCost.Better(gBestCost) {
			gBestSet = true
			gBestCost = ps[i].pBestCost
			copy(gBestPos, ps[i].pBestPos)
			copy(gBest, ps[i].solScratch)
		}
	}

	w, c1, c2 := s.Cfg.W, s.Cfg.C1, s.Cfg.C2
	vMax := s.Cfg.VMax

	// Основной цикл
	for iter := 0; iter < iters; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := opt.NewResult(gBest, gBestCost, evals, iter, map[string]any{
				"stopped": "context",
			})
			res.Duration = time.Since(start)
			return res, err
		}

		for i := range ps {
			p := &ps[i]

			// Обновление скорости и позиции частицы
			for d := 0; d < n; d++ {
				r1 := s.Rng.Float64()
				r2 := s.Rng.Float64()

				v := w*p.vel[d] +
					c1*r1*(p.pBestPos[d]-p.pos[d]) +
					c2*r2*(gBestPos[d]-p.pos[d])

				// Ограничение скорости
				if vMax > 0 {
					if v > vMax {
						v = vMax
					} else if v < -vMax {
						v = -vMax
					}
				}
				p.vel[d] = v

				// Обновление позиции
				x := p.pos[d] + v
				if doPosClamp {
					if x < posMin {
						x = posMin
						p.vel[d] = 0
					} else if x > posMax {
						x = posMax
						p.vel[d] = 0
					}
				}
				p.pos[d] = x
			}

			// Оценка нового положения частицы
			cost := decodePriorities(inst, p.pos, p.solScratch, p.idxScratch)
			evals++

			// Обновление личного лучшего решения
			if cost.Better(p.pBestCost) {
				p.pBestCost = cost
				copy(p.pBestPos, p.pos)
			}

			// Обновление глобального лучшего решения
			if cost.Better(gBestCost) {
				gBestCost = cost
				copy(gBestPos, p.pos)
				copy(gBest, p.solScratch)
			}
		}
	}

	res := opt.NewResult(gBest, gBestCost, evals, iters, map[string]any{
		"particles": s.Cfg.Particles,
		"w":         w,
		"c1":        c1,
		"c2":        c2,
		"vmax":      vMax,
		"pos_min":   posMin,
		"pos_max":   posMax,
	})
	res.Duration = time.Since(start)
	return res, nil
}

// decodePriorities переводит вектор приоритетов в допустимое решение:
// предметы просматриваются по убыванию приоритета и берутся, если помещаются.
func decodePriorities(inst *knapsack.Instance, keys []float64, out knapsack.Solution, idxScratch []int) knapsack.Evaluation {
	n := len(keys)
	for i := 0; i < n; i++ {
		idxScratch[i] = i
		out[i] = false
	}
	sort.Slice(idxScratch, func(i, j int) bool {
		a := idxScratch[i]
		b := idxScratch[j]
		ka := keys[a]
		kb := keys[b]
		if ka == kb {
			return a < b
		}
		return ka > kb
	})

	remaining := inst.Capacity()
	profit, weight := 0, 0
	for _, i := range idxScratch {
		if inst.Weight(i) <= remaining {
			out[i] = true
			profit += inst.Profit(i)
			weight += inst.Weight(i)
			remaining -= inst.Weight(i)
		}
	}
	return knapsack.Score(profit, weight, inst.Capacity())
}
