package localsearch

import "knapsack/internal/knapsack"

// NeighborCount возвращает размер окрестности решения длины n: max(0, n-1).
func NeighborCount(n int) int {
	if n < 2 {
		return 0
	}
	return n - 1
}

// Neighbors перечисляет окрестность: j-й сосед получается инверсией
// флагов в позициях j и j+1. Порядок перечисления фиксирован.
func Neighbors(s knapsack.Solution) []knapsack.Solution {
	out := make([]knapsack.Solution, 0, NeighborCount(len(s)))
	for j := 0; j < NeighborCount(len(s)); j++ {
		nb := s.Clone()
		Apply(nb, j)
		out = append(out, nb)
	}
	return out
}

// Apply применяет ход j к решению на месте.
func Apply(s knapsack.Solution, j int) {
	s.Flip(j)
	s.Flip(j + 1)
}

// Delta возвращает изменение суммарных прибыли и веса при ходе j, за O(1).
func Delta(inst *knapsack.Instance, s knapsack.Solution, j int) (dp, dw int) {
	for k := j; k <= j+1; k++ {
		if s[k] {
			dp -= inst.Profit(k)
			dw -= inst.Weight(k)
		} else {
			dp += inst.Profit(k)
			dw += inst.Weight(k)
		}
	}
	return dp, dw
}
