package ts

import (
	"context"
	"math/rand"
	"time"

	"knapsack/internal/construct"
	"knapsack/internal/knapsack"
	"knapsack/internal/localsearch"
	"knapsack/internal/opt"
)

// Solver - табу-поиск по битовому вектору решения.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый TS-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve - основной цикл алгоритма
func (s *Solver) Solve(ctx context.Context, inst *knapsack.Instance) (opt.Result, error) {
	start := time.Now()

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

	ctor, err := construct.New(s.Cfg.Start, s.Rng)
	if err != nil {
		return opt.Result{}, err
	}

	n := inst.Len()
	capacity := inst.Capacity()

	// Число различных ходов
	moves := n
	if s.Cfg.Neighborhood == NeighborhoodAdjacent {
		moves = localsearch.NeighborCount(n)
	}

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerItem * n
	}
	if moves == 0 {
		maxIter = 0
	}

	built := ctor.Construct(inst, construct.Deadline(ctx, s.Cfg.Start.TimeLimit))
	curr := built.Solution
	currProfit, currWeight := built.Profit, built.Weight
	evals := 1

	// Глобально лучшее решение
	best := curr.Clone()
	bestCost := knapsack.Score(currProfit, currWeight, capacity)

	// Табу-список - кольцевой буфер с мапой
	// Ёмкость выбирается с запасом относительно длины табу
	tabu := newTabuList(max(32, (s.Cfg.TabuTenure+s.Cfg.TabuTenureRand)*4))

	neighbors := min(s.Cfg.NeighborsPerIter, moves)

	for iter := 0; iter < maxIter; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := opt.NewResult(best, bestCost, evals, iter, map[string]any{
				"stopped": "context",
			})
			res.Duration = time.Since(start)
			return res, err
		}

		// Лучший допустимый ход и запасной ход без учёта табу,
		// используется если все просмотренные ходы табуированы
		bestMove, fallback := move{j: -1}, move{j: -1}

		for k := 0; k < neighbors; k++ {
			j := s.Rng.Intn(moves)
			dp, dw := s.delta(inst, curr, j)
			cost := knapsack.Score(currProfit+dp, currWeight+dw, capacity)
			evals++

			m := move{j: j, dp: dp, dw: dw, cost: cost}
			if fallback.j < 0 || cost.Better(fallback.cost) {
				fallback = m
			}

			isTabu := tabu.IsTabu(moveKey(j), iter)
			aspiration := cost.Better(bestCost) // критерий аспирации

			// Табуированный ход пропускается,
			// если не выполняется критерий аспирации
			if isTabu && !aspiration {
				continue
			}
			if bestMove.j < 0 || cost.Better(bestMove.cost) {
				bestMove = m
			}
		}

		chosen := bestMove
		if chosen.j < 0 {
			chosen = fallback
		}

		// Применение выбранного хода
		s.apply(curr, chosen.j)
		currProfit += chosen.dp
		currWeight += chosen.dw

		// Ход обратим сам себе, поэтому табуируется та же позиция
		tenure := s.Cfg.TabuTenure
		if s.Cfg.TabuTenureRand > 0 {
			tenure += s.Rng.Intn(s.Cfg.TabuTenureRand + 1)
		}
		tabu.Add(moveKey(chosen.j), iter+tenure)

		// Обновление глобально лучшего решения
		if chosen.cost.Better(bestCost) {
			bestCost = chosen.cost
			copy(best, curr)
		}
	}

	res := opt.NewResult(best, bestCost, evals, maxIter, map[string]any{
		"tabu_tenure":        s.Cfg.TabuTenure,
		"tabu_tenure_rand":   s.Cfg.TabuTenureRand,
		"neighbors_per_iter": s.Cfg.NeighborsPerIter,
		"neighborhood":       string(s.Cfg.Neighborhood),
		"start_profit":       built.Profit,
	})
	res.Duration = time.Since(start)
	return res, nil
}

type move struct {
	j      int
	dp, dw int
	cost   knapsack.Evaluation
}

func (s *Solver) delta(inst *knapsack.Instance, sol knapsack.Solution, j int) (int, int) {
	if s.Cfg.Neighborhood == NeighborhoodAdjacent {
		return localsearch.Delta(inst, sol, j)
	}
	if sol[j] {
		return -inst.Profit(j), -inst.Weight(j)
	}
	return inst.Profit(j), inst.Weight(j)
}

func (s *Solver) apply(sol knapsack.Solution, j int) {
	if s.Cfg.Neighborhood == NeighborhoodAdjacent {
		localsearch.Apply(sol, j)
		return
	}
	sol.Flip(j)
}

// tabuList - структура табу-списка.
// Реализована как кольцевой буфер фиксированного размера
// с map для быстрой проверки табуированности.
type tabuList struct {
	m   map[uint64]int // ключ → итерация истечения табу
	key []uint64       // кольцевой буфер ключей
	exp []int          // соответствующие сроки истечения
	i   int            // текущая позиция в кольце
}

// newTabuList создаёт табу-список заданной ёмкости.
func newTabuList(capacity int) *tabuList {
	if capacity < 8 {
		capacity = 8
	}
	return &tabuList{
		m:   make(map[uint64]int, capacity*2),
		key: make([]uint64, capacity),
		exp: make([]int, capacity),
	}
}

// IsTabu проверяет, является ли ход табуированным на текущей итерации.
func (t *tabuList) IsTabu(k uint64, iter int) bool {
	exp, ok := t.m[k]
	return ok && exp > iter
}

// Add добавляет новый табу-ход с указанием итерации истечения.
func (t *tabuList) Add(k uint64, expiry int) {
	// Удаление старого элемента из кольцевого буфера
	if oldK := t.key[t.i]; oldK != 0 {
		if curExp, ok := t.m[oldK]; ok && curExp == t.exp[t.i] {
			delete(t.m, oldK)
		}
	}

	t.key[t.i] = k
	t.exp[t.i] = expiry
	t.m[k] = expiry

	t.i = (t.i + 1) % len(t.key)
}

// moveKey - ключ хода; 0 зарезервирован под пустую ячейку кольца.
func moveKey(j int) uint64 {
	return uint64(j) + 1
}
