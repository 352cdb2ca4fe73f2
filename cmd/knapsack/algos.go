package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"knapsack/internal/aco"
	"knapsack/internal/bench"
	"knapsack/internal/config"
	"knapsack/internal/construct"
	"knapsack/internal/ga"
	"knapsack/internal/grasp"
	"knapsack/internal/knapsack"
	"knapsack/internal/localsearch"
	"knapsack/internal/opt"
	"knapsack/internal/pso"
	"knapsack/internal/sa"
	"knapsack/internal/ts"
)

// Фабрики

func newConstructFactory(cfg construct.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return bench.Wrap(construct.NewSolver(cfg, rand.New(rand.NewSource(seed))))
	}
}

func newLocalSearchFactory(cfg localsearch.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return bench.Wrap(localsearch.New(cfg, rand.New(rand.NewSource(seed))))
	}
}

func newGRASPFactory(cfg grasp.Config, log *slog.Logger) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		solver, err := grasp.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		solver.Logger = log
		return solver, nil
	}
}

func newSAFactory(cfg sa.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return bench.Wrap(sa.New(cfg, rand.New(rand.NewSource(seed))))
	}
}

func newTSFactory(cfg ts.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return bench.Wrap(ts.New(cfg, rand.New(rand.NewSource(seed))))
	}
}

func newGAFactory(cfg ga.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return bench.Wrap(ga.New(cfg, rand.New(rand.NewSource(seed))))
	}
}

func newACOFactory(cfg aco.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return bench.Wrap(aco.New(cfg, rand.New(rand.NewSource(seed))))
	}
}

func newPSOFactory(cfg pso.Config) func(seed int64) (opt.Optimizer, error) {
	return func(seed int64) (opt.Optimizer, error) {
		return bench.Wrap(pso.New(cfg, rand.New(rand.NewSource(seed))))
	}
}

// algorithms - все алгоритмы, доступные стенду, по именам.
func algorithms(cfg config.Config, log *slog.Logger) map[string]bench.Algorithm {
	withStrategy := func(s construct.Strategy) construct.Config {
		c := cfg.ConstructConfig()
		c.Strategy = s
		return c
	}
	withPolicy := func(p localsearch.Policy, climb bool) localsearch.Config {
		c := cfg.LocalSearchConfig()
		c.Policy = p
		c.HillClimb = climb
		return c
	}

	return map[string]bench.Algorithm{
		"RANDOM": {Name: "RANDOM", Factory: newConstructFactory(withStrategy(construct.StrategyRandom))},
		"GREEDY": {Name: "GREEDY", Factory: newConstructFactory(withStrategy(construct.StrategyGreedy))},
		"GRC":    {Name: "GRC", Factory: newConstructFactory(withStrategy(construct.StrategyGreedyRandomized))},
		"FI":     {Name: "FI", Factory: newLocalSearchFactory(withPolicy(localsearch.PolicyFirst, false))},
		"BI":     {Name: "BI", Factory: newLocalSearchFactory(withPolicy(localsearch.PolicyBest, false))},
		"HCFI":   {Name: "HCFI", Factory: newLocalSearchFactory(withPolicy(localsearch.PolicyFirst, true))},
		"HCBI":   {Name: "HCBI", Factory: newLocalSearchFactory(withPolicy(localsearch.PolicyBest, true))},
		"GRASP":  {Name: "GRASP", Factory: newGRASPFactory(cfg.GRASPConfig(), log)},
		"SA":     {Name: "SA", Factory: newSAFactory(cfg.SAConfig())},
		"TS":     {Name: "TS", Factory: newTSFactory(cfg.TSConfig())},
		"GA":     {Name: "GA", Factory: newGAFactory(cfg.GAConfig())},
		"ACO":    {Name: "ACO", Factory: newACOFactory(cfg.ACOConfig())},
		"PSO":    {Name: "PSO", Factory: newPSOFactory(cfg.PSOConfig())},
	}
}

// selectAlgorithms разбирает список имён. Запись GRC=<alpha> задаёт
// жадно-рандомизированное построение с явным alpha.
func selectAlgorithms(list string, available map[string]bench.Algorithm, cfg config.Config) ([]bench.Algorithm, error) {
	var selected []bench.Algorithm
	for _, a := range splitCSV(list) {
		a = strings.ToUpper(a)
		if v, ok := strings.CutPrefix(a, "GRC="); ok {
			alpha, err := strconv.ParseFloat(v, 64)
			if err != nil || alpha < 0 || alpha > 1 {
				return nil, fmt.Errorf("алгоритм %q: alpha должно быть числом в [0,1]", a)
			}
			selected = append(selected, bench.GreedyRandomizedAlgorithm(alpha, cfg.Construct.TimeLimit))
			continue
		}
		al, ok := available[a]
		if !ok {
			return nil, fmt.Errorf("алгоритм не предоставлен в программе %q; доступные: %v", a, keys(available))
		}
		selected = append(selected, al)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("список алгоритмов пуст")
	}
	return selected, nil
}

// loadCases собирает экземпляры из файлов, а при их отсутствии генерирует
// случайные экземпляры заданных размеров.
func loadCases(paths []string, format string, sizes []int, baseInstanceSeed int64) ([]bench.Case, error) {
	if len(paths) > 0 {
		f, err := knapsack.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		cases := make([]bench.Case, 0, len(paths))
		for _, p := range paths {
			inst, err := knapsack.LoadFile(p, f)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
			cases = append(cases, bench.Case{Name: filepath.Base(p), Instance: inst})
		}
		return cases, nil
	}

	if len(sizes) == 0 {
		return nil, fmt.Errorf("не заданы ни файлы экземпляров, ни размеры")
	}
	cases := make([]bench.Case, 0, len(sizes))
	for i, n := range sizes {
		if n <= 0 {
			return nil, fmt.Errorf("размер %d: количество предметов должно быть > 0", n)
		}
		seed := baseInstanceSeed + int64(i)*10_000 + int64(n)
		cases = append(cases, bench.RandomCase(n, seed))
	}
	return cases, nil
}

// helpers

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
