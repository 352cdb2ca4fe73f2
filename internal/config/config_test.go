package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"knapsack/internal/config"
	"knapsack/internal/construct"
	"knapsack/internal/grasp"
	"knapsack/internal/localsearch"
	"knapsack/internal/sa"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	require.Equal(t, construct.DefaultConfig(), cfg.ConstructConfig())
	require.Equal(t, localsearch.DefaultConfig(), cfg.LocalSearchConfig())
	require.Equal(t, grasp.DefaultConfig(), cfg.GRASPConfig())
	require.Equal(t, sa.NeighborhoodAdjacent, cfg.SAConfig().Neighborhood)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "knapsack.yaml", `
log:
  level: debug
bench:
  runs: 3
  sizes: [5, 15]
grasp:
  iterations: 50
  alpha: 0.3
  construction_time_limit: 250ms
  policy: best
  workers: 4
sa:
  neighborhood: flip
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 3, cfg.Bench.Runs)
	require.Equal(t, []int{5, 15}, cfg.Bench.Sizes)

	g := cfg.GRASPConfig()
	require.Equal(t, 50, g.Iterations)
	require.Equal(t, 0.3, g.Alpha)
	require.Equal(t, 250*time.Millisecond, g.ConstructionTimeLimit)
	require.Equal(t, localsearch.PolicyBest, g.Policy)
	require.Equal(t, 4, g.Workers)

	require.Equal(t, sa.NeighborhoodFlip, cfg.SAConfig().Neighborhood)
	// нетронутые ключи остаются по умолчанию
	require.Equal(t, config.Default().Construct, cfg.Construct)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("KNAPSACK_BENCH_RUNS", "7")
	t.Setenv("KNAPSACK_GRASP_ALPHA", "0.5")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("iterations", 1000, "")
	fs.Float64("alpha", 0.12, "")
	require.NoError(t, fs.Parse([]string{"--iterations=20"}))

	cfg, err := config.Load("",
		config.WithFlag("grasp.iterations", fs.Lookup("iterations")),
		config.WithFlag("grasp.alpha", fs.Lookup("alpha")),
	)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Bench.Runs)
	require.Equal(t, 20, cfg.GRASP.Iterations)
	// незаданный флаг не перекрывает окружение
	require.Equal(t, 0.5, cfg.GRASP.Alpha)

	_, err = config.Load("", config.WithFlag("grasp.workers", fs.Lookup("workers")))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"policy":   "grasp:\n  policy: sideways\n",
		"alpha":    "construct:\n  alpha: 1.5\n",
		"runs":     "bench:\n  runs: 0\n",
		"grasp":    "grasp:\n  iterations: -1\n",
		"temps":    "sa:\n  initial_temp: 1\n  final_temp: 2\n",
		"level":    "log:\n  level: loud\n",
		"strategy": "local_search:\n  start:\n    strategy: magic\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "bad.yaml", body))
			require.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
