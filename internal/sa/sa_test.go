package sa_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"knapsack/internal/knapsack"
	"knapsack/internal/sa"
)

func TestSA_BestIsFeasibleAndNotWorseThanStart(t *testing.T) {
	inst := knapsack.RandomInstance(60, 1, 99, 0.4, rand.New(rand.NewSource(1)))
	for _, nb := range []sa.Neighborhood{sa.NeighborhoodAdjacent, sa.NeighborhoodFlip} {
		cfg := sa.DefaultConfig()
		cfg.Neighborhood = nb
		s, err := sa.New(cfg, rand.New(rand.NewSource(2)))
		require.NoError(t, err)

		res, err := s.Solve(context.Background(), inst)
		require.NoError(t, err)
		require.LessOrEqual(t, res.Weight, inst.Capacity())
		require.GreaterOrEqual(t, res.Profit, res.Meta["start_profit"].(int))
		require.Equal(t, knapsack.Evaluate(res.Solution, inst),
			knapsack.Evaluation{Profit: res.Profit, Weight: res.Weight})
	}
}

func TestSA_FlipFindsScenarioOptimum(t *testing.T) {
	inst := knapsack.MustInstance(10, []int{60, 100, 120, 80}, []int{10, 20, 30, 15})
	cfg := sa.DefaultConfig()
	cfg.Neighborhood = sa.NeighborhoodFlip
	cfg.Iterations = 2000
	s, err := sa.New(cfg, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)
	require.Equal(t, 60, res.Profit)
}

func TestSA_TinyInstances(t *testing.T) {
	for _, inst := range []*knapsack.Instance{
		knapsack.MustInstance(3, nil, nil),
		knapsack.MustInstance(3, []int{5}, []int{2}),
	} {
		s, err := sa.New(sa.DefaultConfig(), rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		res, err := s.Solve(context.Background(), inst)
		require.NoError(t, err)
		require.Len(t, res.Solution, inst.Len())
	}
}

func TestSA_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := sa.New(sa.DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	inst := knapsack.RandomInstance(20, 1, 50, 0.5, rand.New(rand.NewSource(1)))
	res, err := s.Solve(ctx, inst)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "context", res.Meta["stopped"])
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, sa.DefaultConfig().Validate())

	mutate := []func(*sa.Config){
		func(c *sa.Config) { c.Iterations, c.IterationsPerItem = 0, 0 },
		func(c *sa.Config) { c.InitialTemp = 0 },
		func(c *sa.Config) { c.FinalTemp = 0 },
		func(c *sa.Config) { c.FinalTemp = c.InitialTemp },
		func(c *sa.Config) { c.Alpha = 1 },
		func(c *sa.Config) { c.Neighborhood = "swap" },
		func(c *sa.Config) { c.Start.Strategy = "none" },
	}
	for _, m := range mutate {
		cfg := sa.DefaultConfig()
		m(&cfg)
		require.Error(t, cfg.Validate())
	}

	_, err := sa.New(sa.DefaultConfig(), nil)
	require.Error(t, err)
}
