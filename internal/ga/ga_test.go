package ga_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"knapsack/internal/construct"
	"knapsack/internal/ga"
	"knapsack/internal/knapsack"
)

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, ga.DefaultConfig().Validate())

	bad := ga.DefaultConfig()
	bad.Elite = bad.Population
	require.Error(t, bad.Validate())

	bad = ga.DefaultConfig()
	bad.Start.Strategy = "magic"
	require.Error(t, bad.Validate())

	_, err := ga.New(ga.DefaultConfig(), nil)
	require.ErrorIs(t, err, construct.ErrNilRand)
}

func TestSolve_FeasibleAndAtLeastGreedy(t *testing.T) {
	inst := knapsack.RandomInstance(12, 1, 50, 0.4, rand.New(rand.NewSource(3)))

	cfg := ga.DefaultConfig()
	cfg.Population = 60
	cfg.Generations = 100
	s, err := ga.New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), inst)
	require.NoError(t, err)
	require.Len(t, res.Solution, inst.Len())
	require.LessOrEqual(t, res.Weight, inst.Capacity())
	require.Equal(t, knapsack.Evaluate(res.Solution, inst), knapsack.Evaluation{Profit: res.Profit, Weight: res.Weight})

	greedy := construct.NewRatioGreedy().Construct(inst, time.Time{})
	require.GreaterOrEqual(t, res.Profit, greedy.Profit)
}

func TestSolve_Deterministic(t *testing.T) {
	inst := knapsack.RandomInstance(30, 1, 99, 0.5, rand.New(rand.NewSource(9)))
	cfg := ga.DefaultConfig()
	cfg.Generations = 20

	run := func() int {
		s, err := ga.New(cfg, rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		res, err := s.Solve(context.Background(), inst)
		require.NoError(t, err)
		return res.Profit
	}
	require.Equal(t, run(), run())
}

func TestSolve_Cancelled(t *testing.T) {
	inst := knapsack.RandomInstance(20, 1, 99, 0.5, rand.New(rand.NewSource(2)))
	s, err := ga.New(ga.DefaultConfig(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Solve(ctx, inst)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "context", res.Meta["stopped"])
	require.LessOrEqual(t, res.Weight, inst.Capacity())
}
