package construct

import (
	"cmp"
	"context"
	"errors"
	"math"
	"slices"
	"time"

	"knapsack/internal/knapsack"
)

// ErrNilRand возвращается конструкторами, которым нужен генератор случайных чисел.
var ErrNilRand = errors.New("генератор случайных чисел не инициализирован (nil)")

// Result - построенное решение с его весом и прибылью.
// Вес никогда не превышает вместимость.
type Result struct {
	Solution knapsack.Solution
	Weight   int
	Profit   int
}

// Constructor строит начальное допустимое решение.
// Нулевой deadline означает отсутствие ограничения по времени; по истечении срока
// построение прекращается и возвращается то, что успели собрать.
type Constructor interface {
	Name() string
	Construct(inst *knapsack.Instance, deadline time.Time) Result
}

// Deadline объединяет бюджет времени и дедлайн контекста: побеждает более ранний.
// limit <= 0 означает отсутствие бюджета.
func Deadline(ctx context.Context, limit time.Duration) time.Time {
	var d time.Time
	if limit > 0 {
		d = time.Now().Add(limit)
	}
	if cd, ok := ctx.Deadline(); ok && (d.IsZero() || cd.Before(d)) {
		d = cd
	}
	return d
}

func expired(deadline time.Time) bool {
	return !deadline.IsZero() && !time.Now().Before(deadline)
}

// RatioOrder возвращает индексы предметов по убыванию удельной прибыли;
// при равенстве - по возрастанию индекса.
func RatioOrder(inst *knapsack.Instance) []int {
	order := make([]int, inst.Len())
	for i := range order {
		order[i] = i
	}
	sortByRatio(inst, order)
	return order
}

func sortByRatio(inst *knapsack.Instance, idx []int) {
	slices.SortFunc(idx, func(a, b int) int {
		if c := inst.CompareRatio(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// RCLSize возвращает размер списка кандидатов: max(1, ⌈alpha·m⌉), но не больше m.
func RCLSize(alpha float64, m int) int {
	if m <= 0 {
		return 0
	}
	// Относительная поправка в несколько ulp гасит ошибку округления
	// вида 0.1*30 = 3.0000000000000004 и не задевает значения чуть выше целого.
	x := alpha * float64(m)
	k := int(math.Ceil(x - x*0x1p-50))
	if k < 1 {
		k = 1
	}
	if k > m {
		k = m
	}
	return k
}
