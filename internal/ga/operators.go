package ga

import (
	"math/rand"

	"knapsack/internal/knapsack"
)

// tournamentSelect реализует турнирный отбор.
// Возвращается индекс особи с наибольшей прибылью.
func tournamentSelect(scores []int, tournamentSize int, rng *rand.Rand) int {
	best := rng.Intn(len(scores))
	bestScore := scores[best]
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(scores))
		if scores[cand] > bestScore {
			best = cand
			bestScore = scores[cand]
		}
	}
	return best
}

// twoPointCrossover обменивает отрезок [a, b) родителей.
func twoPointCrossover(p1, p2, c1, c2 knapsack.Solution, rng *rand.Rand) {
	n := len(p1)
	a := rng.Intn(n)
	b := rng.Intn(n + 1)
	if a > b {
		a, b = b, a
	}

	copy(c1, p1)
	copy(c2, p2)
	copy(c1[a:b], p2[a:b])
	copy(c2[a:b], p1[a:b])
}

// mutateFlip инвертирует каждый бит с вероятностью rate.
func mutateFlip(s knapsack.Solution, rate float64, rng *rand.Rand) {
	for i := range s {
		if rng.Float64() < rate {
			s.Flip(i)
		}
	}
}

// repair убирает предметы с наименьшей удельной прибылью, пока вес превышает вместимость.
// order - индексы по убыванию удельной прибыли.
func repair(s knapsack.Solution, inst *knapsack.Instance, order []int) knapsack.Evaluation {
	profit, weight := knapsack.Totals(s, inst)
	for k := len(order) - 1; k >= 0 && weight > inst.Capacity(); k-- {
		if i := order[k]; s[i] {
			s[i] = false
			profit -= inst.Profit(i)
			weight -= inst.Weight(i)
		}
	}
	return knapsack.Score(profit, weight, inst.Capacity())
}
