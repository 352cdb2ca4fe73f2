package knapsack_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"knapsack/internal/knapsack"
)

func TestNewInstance_Validation(t *testing.T) {
	cases := []struct {
		name     string
		capacity int
		profits  []int
		weights  []int
	}{
		{"negative capacity", -1, []int{1}, []int{1}},
		{"length mismatch", 10, []int{1, 2}, []int{1}},
		{"negative profit", 10, []int{-1}, []int{1}},
		{"negative weight", 10, []int{1}, []int{-3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := knapsack.NewInstance(tc.capacity, tc.profits, tc.weights)
			require.Error(t, err)
			require.True(t, errors.Is(err, knapsack.ErrInvalidInstance))
		})
	}

	inst, err := knapsack.NewInstance(0, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0, inst.Len())
}

func TestNewInstance_CopiesInput(t *testing.T) {
	profits := []int{1, 2}
	weights := []int{3, 4}
	inst := knapsack.MustInstance(5, profits, weights)
	profits[0] = 100
	weights[1] = 100
	require.Equal(t, 1, inst.Profit(0))
	require.Equal(t, 4, inst.Weight(1))

	out := inst.Profits()
	out[1] = 42
	require.Equal(t, 2, inst.Profit(1))
}

func TestCompareRatio_ZeroWeight(t *testing.T) {
	inst := knapsack.MustInstance(10, []int{5, 0, 6}, []int{0, 0, 3})
	require.Negative(t, inst.CompareRatio(0, 2), "infinite ratio sorts first")
	require.Positive(t, inst.CompareRatio(1, 2))
	require.Zero(t, inst.CompareRatio(0, 0))
}

func TestCompareRatio_CrossMultiplication(t *testing.T) {
	// 6.0, 5.0, 4.0, 5.33
	inst := knapsack.MustInstance(10, []int{60, 100, 120, 80}, []int{10, 20, 30, 15})
	require.Negative(t, inst.CompareRatio(0, 3))
	require.Negative(t, inst.CompareRatio(3, 1))
	require.Negative(t, inst.CompareRatio(1, 2))

	tie := knapsack.MustInstance(10, []int{2, 4}, []int{1, 2})
	require.Zero(t, tie.CompareRatio(0, 1))
}

func TestRandomInstance_Deterministic(t *testing.T) {
	a := knapsack.RandomInstance(50, 1, 99, 0.5, rand.New(rand.NewSource(7)))
	b := knapsack.RandomInstance(50, 1, 99, 0.5, rand.New(rand.NewSource(7)))
	require.Equal(t, a.Profits(), b.Profits())
	require.Equal(t, a.Weights(), b.Weights())
	require.Equal(t, a.Capacity(), b.Capacity())

	total := 0
	for _, w := range a.Weights() {
		require.GreaterOrEqual(t, w, 1)
		require.LessOrEqual(t, w, 99)
		total += w
	}
	require.Equal(t, total/2, a.Capacity())
}
