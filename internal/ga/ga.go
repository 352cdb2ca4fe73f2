package ga

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"knapsack/internal/construct"
	"knapsack/internal/knapsack"
	"knapsack/internal/opt"
)

// Solver - генетический алгоритм над битовыми векторами решений.
// Потомки, превысившие вместимость, восстанавливаются удалением предметов
// с наименьшей удельной прибылью.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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
	start := time.Now()

	// Проверка корректности входных данных и конфигурации
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, construct.ErrNilRand
	}

	ctor, err := construct.New(s.Cfg.Start, s.Rng)
	if err != nil {
		return opt.Result{}, err
	}

	n := inst.Len()
	popSize := s.Cfg.Population
	order := construct.RatioOrder(inst)

	// Вспомогательная анонимная функция для создания популяции на общем буфере
	makePop := func() []knapsack.Solution {
		backing := make([]bool, popSize*n)
		pop := make([]knapsack.Solution, popSize)
		for i := 0; i < popSize; i++ {
			pop[i] = backing[i*n : (i+1)*n : (i+1)*n]
		}
		return pop
	}

	// Две популяции: текущая (A) и следующая (B)
	popA := makePop()
	popB := makePop()
	scoresA := make([]int, popSize)
	scoresB := make([]int, popSize)

	// Инициализация начальной популяции
	deadline := construct.Deadline(ctx, s.Cfg.Start.TimeLimit)
	for i := 0; i < popSize; i++ {
		built := ctor.Construct(inst, deadline)
		copy(popA[i], built.Solution)
		scoresA[i] = built.Profit
	}
	evaluations := popSize

	// Поиск лучшего решения в начальной популяции
	best := popA[0].Clone()
	bestCost := knapsack.Evaluate(best, inst)
	for i := 1; i < popSize; i++ {
		if scoresA[i] > bestCost.Profit {
			copy(best, popA[i])
			bestCost = knapsack.Evaluate(best, inst)
		}
	}

	// Временный буфер для второго потомка,
	// если в популяции остаётся нечётное число мест
	scratchChild := knapsack.NewSolution(n)

	// Индексы для сортировки популяции по приспособленности
	idxs := make([]int, popSize)

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := opt.NewResult(best, bestCost, evaluations, gen, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}

		// Сортировка индексов по убыванию прибыли
		for i := range idxs {
			idxs[i] = i
		}
		sort.SliceStable(idxs, func(i, j int) bool {
			return scoresA[idxs[i]] > scoresA[idxs[j]]
		})

		write := 0

		// Элитизм (переносим лучших особей без изменений)
		for e := 0; e < s.Cfg.Elite; e++ {
			src := idxs[e]
			copy(popB[write], popA[src])
			scoresB[write] = scoresA[src]
			write++
		}

		// Генерация остальных особей нового поколения
		for write < popSize {
			// Турнирный отбор
			p1 := tournamentSelect(scoresA, s.Cfg.TournamentSize, s.Rng)
			p2 := tournamentSelect(scoresA, s.Cfg.TournamentSize, s.Rng)

			child1 := popB[write]
			hasSecond := write+1 < popSize
			child2 := scratchChild
			if hasSecond {
				child2 = popB[write+1]
			}

			// Кроссовер
			if n > 0 && s.Rng.Float64() < s.Cfg.CrossoverRate {
				twoPointCrossover(popA[p1], popA[p2], child1, child2, s.Rng)
			} else {
				copy(child1, popA[p1])
				copy(child2, popA[p2])
			}

			// Мутация
			mutateFlip(child1, s.Cfg.MutationRate, s.Rng)
			if hasSecond {
				mutateFlip(child2, s.Cfg.MutationRate, s.Rng)
			}

			// Оценка первого потомка
			ev := repair(child1, inst, order)
			scoresB[write] = ev.Profit
			evaluations++
			if ev.Better(bestCost) {
				bestCost = ev
				copy(best, child1)
			}
			write++

			// Оценка второго потомка
			if hasSecond {
				ev := repair(child2, inst, order)
				scoresB[write] = ev.Profit
				evaluations++
				if ev.Better(bestCost) {
					bestCost = ev
					copy(best, child2)
				}
				write++
			}
		}

		// Смена поколений
		popA, popB = popB, popA
		scoresA, scoresB = scoresB, scoresA
	}

	res := opt.NewResult(best, bestCost, evaluations, s.Cfg.Generations, map[string]any{
		"population":  s.Cfg.Population,
		"generations": s.Cfg.Generations,
		"elite":       s.Cfg.Elite,
	})
	res.Duration = time.Since(start)
	return res, nil
}
