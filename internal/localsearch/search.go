package localsearch

import (
	"fmt"

	"knapsack/internal/knapsack"
)

// State - состояние шага локального поиска.
type State int

const (
	Searching State = iota
	Improved
	Converged
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Improved:
		return "improved"
	case Converged:
		return "converged"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Policy - правило выбора соседа.
type Policy string

const (
	PolicyFirst Policy = "first"
	PolicyBest  Policy = "best"
)

// Step - результат одного шага.
type Step struct {
	Solution    knapsack.Solution
	Evaluation  knapsack.Evaluation
	State       State
	Evaluations int
}

// Outcome - результат спуска до локального оптимума.
type Outcome struct {
	Solution    knapsack.Solution
	Evaluation  knapsack.Evaluation
	Steps       int
	Evaluations int
	// Trace - прибыль до первого шага и после каждого принятого шага.
	Trace []int
}

// FirstImprovement возвращает первого по порядку соседа со строго большей прибылью.
// Если такого нет, возвращается сам s в состоянии Converged.
// Длина s должна совпадать с числом предметов.
func FirstImprovement(inst *knapsack.Instance, s knapsack.Solution) Step {
	return step(inst, s, PolicyFirst)
}

// BestImprovement просматривает всю окрестность и возвращает соседа с наибольшей
// прибылью, если она строго больше текущей; при равенстве побеждает меньший индекс.
func BestImprovement(inst *knapsack.Instance, s knapsack.Solution) Step {
	return step(inst, s, PolicyBest)
}

// StepFunc возвращает одношаговую функцию для политики.
func StepFunc(p Policy) func(*knapsack.Instance, knapsack.Solution) Step {
	if p == PolicyBest {
		return BestImprovement
	}
	return FirstImprovement
}

func step(inst *knapsack.Instance, s knapsack.Solution, p Policy) Step {
	mustMatch(inst, s)
	profit, weight := knapsack.Totals(s, inst)
	cur := knapsack.Score(profit, weight, inst.Capacity())

	move, ev, evals := scan(inst, s, profit, weight, cur, p)
	if move < 0 {
		return Step{Solution: s, Evaluation: cur, State: Converged, Evaluations: evals}
	}
	next := s.Clone()
	Apply(next, move)
	return Step{Solution: next, Evaluation: ev, State: Improved, Evaluations: evals}
}

// HillClimb повторяет шаг политики p до сходимости. Входное решение не изменяется.
// Завершение гарантируется строгим сравнением: прибыль растёт на каждом шаге,
// а множество решений конечно.
func HillClimb(inst *knapsack.Instance, s knapsack.Solution, p Policy) Outcome {
	mustMatch(inst, s)
	cur := s.Clone()
	profit, weight := knapsack.Totals(cur, inst)
	ev := knapsack.Score(profit, weight, inst.Capacity())

	out := Outcome{Trace: []int{ev.Profit}}
	for {
		move, next, evals := scan(inst, cur, profit, weight, ev, p)
		out.Evaluations += evals
		if move < 0 {
			break
		}
		dp, dw := Delta(inst, cur, move)
		Apply(cur, move)
		profit += dp
		weight += dw
		ev = next
		out.Steps++
		out.Trace = append(out.Trace, ev.Profit)
	}
	out.Solution = cur
	out.Evaluation = ev
	return out
}

// scan ищет улучшающий ход; -1 означает, что улучшения нет.
func scan(inst *knapsack.Instance, s knapsack.Solution, profit, weight int, cur knapsack.Evaluation, p Policy) (int, knapsack.Evaluation, int) {
	move := -1
	best := cur
	evals := 0
	for j := 0; j < NeighborCount(len(s)); j++ {
		dp, dw := Delta(inst, s, j)
		nb := knapsack.Score(profit+dp, weight+dw, inst.Capacity())
		evals++
		if nb.Profit > best.Profit {
			move, best = j, nb
			if p == PolicyFirst {
				break
			}
		}
	}
	return move, best, evals
}

func mustMatch(inst *knapsack.Instance, s knapsack.Solution) {
	if err := knapsack.ValidateSolution(s, inst.Len()); err != nil {
		panic(err)
	}
}
