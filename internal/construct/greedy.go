package construct

import (
	"time"

	"knapsack/internal/knapsack"
)

// RatioGreedy просматривает предметы по убыванию удельной прибыли
// и берёт каждый, который ещё помещается.
type RatioGreedy struct{}

func NewRatioGreedy() *RatioGreedy { return &RatioGreedy{} }

func (RatioGreedy) Name() string { return string(StrategyGreedy) }

func (RatioGreedy) Construct(inst *knapsack.Instance, deadline time.Time) Result {
	res := Result{Solution: knapsack.NewSolution(inst.Len())}
	for _, i := range RatioOrder(inst) {
		if expired(deadline) {
			break
		}
		if res.Weight+inst.Weight(i) <= inst.Capacity() {
			res.Solution[i] = true
			res.Weight += inst.Weight(i)
			res.Profit += inst.Profit(i)
		}
	}
	return res
}
