package knapsack

import "fmt"

// Solution - вектор флагов включения; Solution[i] == true ⇔ предмет i в рюкзаке.
type Solution []bool

// NewSolution возвращает пустое решение длины n.
func NewSolution(n int) Solution {
	return make(Solution, n)
}

func (s Solution) Clone() Solution {
	out := make(Solution, len(s))
	copy(out, s)
	return out
}

// Flip инвертирует флаг в позиции i.
func (s Solution) Flip(i int) {
	s[i] = !s[i]
}

// Count возвращает число выбранных предметов.
func (s Solution) Count() int {
	c := 0
	for _, v := range s {
		if v {
			c++
		}
	}
	return c
}

// Items возвращает индексы выбранных предметов по возрастанию.
func (s Solution) Items() []int {
	out := make([]int, 0, s.Count())
	for i, v := range s {
		if v {
			out = append(out, i)
		}
	}
	return out
}

func (s Solution) Equal(o Solution) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// ValidateSolution проверяет, что длина решения совпадает с числом предметов.
func ValidateSolution(s Solution, n int) error {
	if len(s) != n {
		return fmt.Errorf("%w: want %d flags (got %d)", ErrLengthMismatch, n, len(s))
	}
	return nil
}
