package knapsack

import "fmt"

// Evaluation - оценка решения. При перегрузе Profit принудительно равен 0,
// а Weight сохраняет фактический вес для диагностики.
type Evaluation struct {
	Profit int
	Weight int
}

// Better сообщает, строго ли e лучше o по прибыли.
func (e Evaluation) Better(o Evaluation) bool {
	return e.Profit > o.Profit
}

// Feasible сообщает, укладывается ли вес в вместимость.
func (e Evaluation) Feasible(capacity int) bool {
	return e.Weight <= capacity
}

// Score применяет правило допустимости к «сырым» суммам прибыли и веса.
func Score(profit, weight, capacity int) Evaluation {
	if weight > capacity {
		return Evaluation{Profit: 0, Weight: weight}
	}
	return Evaluation{Profit: profit, Weight: weight}
}

// Evaluate вычисляет оценку решения за O(n). Длина решения должна совпадать с n.
func Evaluate(s Solution, inst *Instance) Evaluation {
	profit, weight := Totals(s, inst)
	return Score(profit, weight, inst.capacity)
}

// Totals возвращает суммарные прибыль и вес выбранных предметов без учёта вместимости.
func Totals(s Solution, inst *Instance) (profit, weight int) {
	for i, in := range s {
		if in {
			profit += inst.profits[i]
			weight += inst.weights[i]
		}
	}
	return profit, weight
}

// Evaluator - оценщик, привязанный к экземпляру; проверяет длину решения.
type Evaluator struct {
	inst *Instance
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

func (e *Evaluator) Evaluate(s Solution) (Evaluation, error) {
	if e == nil || e.inst == nil {
		return Evaluation{}, fmt.Errorf("nil evaluator")
	}
	if err := ValidateSolution(s, e.inst.Len()); err != nil {
		return Evaluation{}, err
	}
	return Evaluate(s, e.inst), nil
}
