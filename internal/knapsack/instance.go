package knapsack

import (
	"fmt"
	"math/rand"
)

// Instance - неизменяемые данные задачи о рюкзаке.
type Instance struct {
	capacity int
	profits  []int
	weights  []int
}

// NewInstance проверяет данные и возвращает экземпляр задачи.
// Срезы копируются, поэтому вызывающий код может их переиспользовать.
func NewInstance(capacity int, profits, weights []int) (*Instance, error) {
	inst := &Instance{
		capacity: capacity,
		profits:  append([]int(nil), profits...),
		weights:  append([]int(nil), weights...),
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// MustInstance - вариант NewInstance для тестов и примеров.
func MustInstance(capacity int, profits, weights []int) *Instance {
	inst, err := NewInstance(capacity, profits, weights)
	if err != nil {
		panic(err)
	}
	return inst
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return fmt.Errorf("%w: instance is nil", ErrInvalidInstance)
	}
	if inst.capacity < 0 {
		return fmt.Errorf("%w: capacity must be >= 0 (got %d)", ErrInvalidInstance, inst.capacity)
	}
	if len(inst.profits) != len(inst.weights) {
		return fmt.Errorf("%w: profits and weights length differ (%d != %d)",
			ErrInvalidInstance, len(inst.profits), len(inst.weights))
	}
	for i := range inst.profits {
		if inst.profits[i] < 0 {
			return fmt.Errorf("%w: profit[%d] must be >= 0 (got %d)", ErrInvalidInstance, i, inst.profits[i])
		}
		if inst.weights[i] < 0 {
			return fmt.Errorf("%w: weight[%d] must be >= 0 (got %d)", ErrInvalidInstance, i, inst.weights[i])
		}
	}
	return nil
}

// Len возвращает число предметов n.
func (inst *Instance) Len() int { return len(inst.profits) }

func (inst *Instance) Capacity() int { return inst.capacity }

func (inst *Instance) Profit(i int) int { return inst.profits[i] }

func (inst *Instance) Weight(i int) int { return inst.weights[i] }

// Profits возвращает копию вектора прибылей.
func (inst *Instance) Profits() []int { return append([]int(nil), inst.profits...) }

// Weights возвращает копию вектора весов.
func (inst *Instance) Weights() []int { return append([]int(nil), inst.weights...) }

// CompareRatio сравнивает предметы a и b по убыванию удельной прибыли:
// отрицательное значение означает, что a идёт раньше b.
// Сравнение выполняется перекрёстным умножением, без деления.
func (inst *Instance) CompareRatio(a, b int) int {
	pa, wa := inst.profits[a], inst.weights[a]
	pb, wb := inst.profits[b], inst.weights[b]

	infA := wa == 0 && pa > 0
	infB := wb == 0 && pb > 0
	switch {
	case infA && infB:
		return 0
	case infA:
		return -1
	case infB:
		return 1
	}

	// Оставшиеся предметы с нулевым весом имеют нулевую прибыль (0/0 → 0).
	if wa == 0 {
		wa = 1
	}
	if wb == 0 {
		wb = 1
	}
	lhs := int64(pa) * int64(wb)
	rhs := int64(pb) * int64(wa)
	switch {
	case lhs > rhs:
		return -1
	case lhs < rhs:
		return 1
	}
	return 0
}

// RandomInstance генерирует экземпляр из n предметов с прибылью и весом в [minV, maxV].
// Вместимость равна capRatio от суммарного веса.
func RandomInstance(n, minV, maxV int, capRatio float64, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n < 0 || minV < 0 || maxV < minV {
		panic("invalid instance bounds")
	}
	if capRatio < 0 {
		panic("invalid capacity ratio")
	}
	profits := make([]int, n)
	weights := make([]int, n)
	span := maxV - minV + 1
	total := 0
	for i := 0; i < n; i++ {
		profits[i] = minV + rng.Intn(span)
		weights[i] = minV + rng.Intn(span)
		total += weights[i]
	}
	inst, err := NewInstance(int(float64(total)*capRatio), profits, weights)
	if err != nil {
		panic(err)
	}
	return inst
}
