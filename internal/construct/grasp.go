package construct

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"knapsack/internal/knapsack"
)

// GreedyRandomized - жадно-рандомизированное построение GRASP.
// На каждом шаге кандидаты (помещающиеся предметы) сортируются по удельной прибыли,
// из первых ⌈alpha·|C|⌉ равновероятно выбирается один.
// alpha = 0 вырождается в жадный алгоритм, alpha = 1 - в случайный выбор.
type GreedyRandomized struct {
	alpha float64
	rng   *rand.Rand
}

func NewGreedyRandomized(alpha float64, rng *rand.Rand) (*GreedyRandomized, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("alpha должно быть в диапазоне [0,1] (получено %f)", alpha)
	}
	return &GreedyRandomized{alpha: alpha, rng: rng}, nil
}

func (c *GreedyRandomized) Name() string { return string(StrategyGreedyRandomized) }

func (c *GreedyRandomized) Construct(inst *knapsack.Instance, deadline time.Time) Result {
	n := inst.Len()
	res := Result{Solution: knapsack.NewSolution(n)}
	remaining := inst.Capacity()

	// Рабочее множество ещё не размещённых предметов, по возрастанию индекса.
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	cands := make([]int, 0, n)

	for len(items) > 0 && !expired(deadline) {
		cands = cands[:0]
		for _, i := range items {
			if inst.Weight(i) <= remaining {
				cands = append(cands, i)
			}
		}
		if len(cands) == 0 {
			break
		}
		sortByRatio(inst, cands)

		rcl := RCLSize(c.alpha, len(cands))
		pick := cands[c.rng.Intn(rcl)]

		res.Solution[pick] = true
		res.Weight += inst.Weight(pick)
		res.Profit += inst.Profit(pick)
		remaining -= inst.Weight(pick)

		if k := slices.Index(items, pick); k >= 0 {
			items = slices.Delete(items, k, k+1)
		}
	}
	return res
}
