package construct

import (
	"fmt"
	"math/rand"
	"time"

	"knapsack/internal/knapsack"
)

// Random добавляет каждый предмет с вероятностью InclusionProb, если он помещается.
type Random struct {
	inclusionProb float64
	shuffle       bool
	rng           *rand.Rand
}

// NewRandom возвращает случайный конструктор. При shuffle == true предметы
// просматриваются в случайном порядке, иначе - по возрастанию индекса.
func NewRandom(inclusionProb float64, shuffle bool, rng *rand.Rand) (*Random, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if inclusionProb < 0 || inclusionProb > 1 {
		return nil, fmt.Errorf("вероятность включения должна быть в диапазоне [0,1] (получено %f)", inclusionProb)
	}
	return &Random{inclusionProb: inclusionProb, shuffle: shuffle, rng: rng}, nil
}

func (c *Random) Name() string { return string(StrategyRandom) }

func (c *Random) Construct(inst *knapsack.Instance, deadline time.Time) Result {
	n := inst.Len()
	res := Result{Solution: knapsack.NewSolution(n)}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if c.shuffle {
		c.rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	for _, i := range order {
		if expired(deadline) {
			break
		}
		// Жребий бросается для каждого предмета, даже если тот не помещается.
		if c.rng.Float64() < c.inclusionProb && res.Weight+inst.Weight(i) <= inst.Capacity() {
			res.Solution[i] = true
			res.Weight += inst.Weight(i)
			res.Profit += inst.Profit(i)
		}
	}
	return res
}
