package bench

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"knapsack/internal/construct"
	"knapsack/internal/knapsack"
	"knapsack/internal/opt"
)

func TestMetrics_ObservedByRunner(t *testing.T) {
	m := NewMetrics()
	r := Runner{Runs: 3, BaseSeed: 1, Metrics: m}
	c := Case{Name: "scenario", Instance: knapsack.MustInstance(10, []int{60, 100, 120, 80}, []int{10, 20, 30, 15})}

	cfg := construct.DefaultConfig()
	cfg.Strategy = construct.StrategyRandom
	algo := Algorithm{
		Name: "RANDOM",
		Factory: func(seed int64) (opt.Optimizer, error) {
			return Wrap(construct.NewSolver(cfg, rand.New(rand.NewSource(seed))))
		},
	}
	rec, err := r.RunCase(context.Background(), c, algo)
	require.NoError(t, err)

	require.Equal(t, 3.0, testutil.ToFloat64(m.runs.WithLabelValues("RANDOM", "scenario")))
	require.Equal(t, float64(rec.ProfitBest), testutil.ToFloat64(m.profit.WithLabelValues("RANDOM", "scenario")))
	require.Equal(t, 1, testutil.CollectAndCount(m.duration))

	n, err := testutil.GatherAndCount(m.Gatherer(), "knapsack_bench_runs_total", "knapsack_bench_best_profit")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	path := filepath.Join(t.TempDir(), "bench.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "knapsack_bench_runs_total")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() { m.observe("x", "y", opt.Result{}, 0) })
}
