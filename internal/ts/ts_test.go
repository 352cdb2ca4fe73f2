package ts_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"knapsack/internal/knapsack"
	"knapsack/internal/ts"
)

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, ts.DefaultConfig().Validate())

	bad := ts.DefaultConfig()
	bad.Neighborhood = "swap"
	require.Error(t, bad.Validate())

	bad = ts.DefaultConfig()
	bad.Iterations, bad.IterationsPerItem = 0, 0
	require.Error(t, bad.Validate())
}

func TestSolve_Neighborhoods(t *testing.T) {
	inst := knapsack.RandomInstance(25, 1, 99, 0.5, rand.New(rand.NewSource(5)))

	for _, nb := range []ts.Neighborhood{ts.NeighborhoodFlip, ts.NeighborhoodAdjacent} {
		t.Run(string(nb), func(t *testing.T) {
			cfg := ts.DefaultConfig()
			cfg.Neighborhood = nb
			s, err := ts.New(cfg, rand.New(rand.NewSource(7)))
			require.NoError(t, err)

			res, err := s.Solve(context.Background(), inst)
			require.NoError(t, err)
			require.Len(t, res.Solution, inst.Len())
			require.LessOrEqual(t, res.Weight, inst.Capacity())
			require.Equal(t, knapsack.Evaluate(res.Solution, inst).Profit, res.Profit)
			require.GreaterOrEqual(t, res.Profit, res.Meta["start_profit"].(int))
		})
	}
}

func TestSolve_SingleItemAdjacent(t *testing.T) {
	inst := knapsack.MustInstance(5, []int{3}, []int{2})
	cfg := ts.DefaultConfig()
	cfg.Neighborhood = ts.NeighborhoodAdjacent
	cfg.Start.Strategy = "greedy"

	s, err := ts.New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)
	require.Equal(t, 3, res.Profit)
	require.Zero(t, res.Iterations)
}

func TestSolve_Cancelled(t *testing.T) {
	inst := knapsack.RandomInstance(20, 1, 99, 0.5, rand.New(rand.NewSource(2)))
	s, err := ts.New(ts.DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Solve(ctx, inst)
	require.ErrorIs(t, err, context.Canceled)
}
