package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"time"

	"knapsack/internal/knapsack"
	"knapsack/internal/logging"
	"knapsack/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

type Case struct {
	Name     string
	Instance *knapsack.Instance
}

// RandomCase генерирует случайный экземпляр с вместимостью в половину суммарного веса.
func RandomCase(items int, seed int64) Case {
	return Case{
		Name:     fmt.Sprintf("rand-%d", items),
		Instance: knapsack.RandomInstance(items, 1, 99, 0.5, randForSeed(seed)),
	}
}

type Record struct {
	Algo     string
	Case     string
	Items    int
	Capacity int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	ProfitBest int
	ProfitMean float64
	ProfitStd  float64

	WeightMean float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout

	Logger  *slog.Logger
	Metrics *Metrics
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	if r.Runs <= 0 {
		return Record{}, fmt.Errorf("количество запусков должно быть > 0 (получено %d)", r.Runs)
	}
	inst := c.Instance
	eval, err := knapsack.NewEvaluator(inst)
	if err != nil {
		return Record{}, err
	}
	log := logging.OrDiscard(r.Logger).With(slog.String("algo", algo.Name), slog.String("case", c.Name))

	profits := make([]int, 0, r.Runs)
	weights := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op, err := algo.Factory(runSeed)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: factory: %w", i, err)
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		ev, err := eval.Evaluate(res.Solution)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: invalid solution: %w", i, err)
		}
		if ev.Profit != res.Profit || ev.Weight != res.Weight {
			return Record{}, fmt.Errorf("run %d: reported profit/weight %d/%d mismatch evaluated %d/%d",
				i, res.Profit, res.Weight, ev.Profit, ev.Weight)
		}
		if res.Weight > inst.Capacity() {
			return Record{}, fmt.Errorf("run %d: infeasible solution weight %d > capacity %d", i, res.Weight, inst.Capacity())
		}

		log.Debug("run finished",
			slog.Int("run", i),
			slog.Int64("seed", runSeed),
			slog.Int("profit", res.Profit),
			slog.Int("weight", res.Weight),
			slog.Duration("duration", dur),
		)
		r.Metrics.observe(algo.Name, c.Name, res, dur)

		profits = append(profits, res.Profit)
		weights = append(weights, res.Weight)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	pStats := CalcIntStats(profits)
	wStats := CalcIntStats(weights)
	tStats := CalcFloatStats(timesMs)

	rec := Record{
		Algo:     algo.Name,
		Case:     c.Name,
		Items:    inst.Len(),
		Capacity: inst.Capacity(),
		Runs:     r.Runs,

		TimeBestMs: tStats.Min,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		ProfitBest: pStats.Max,
		ProfitMean: pStats.Mean,
		ProfitStd:  pStats.Std,

		WeightMean: wStats.Mean,
	}
	log.Info("case finished",
		slog.Int("profit_best", rec.ProfitBest),
		slog.Float64("profit_mean", rec.ProfitMean),
		slog.Float64("time_mean_ms", rec.TimeMeanMs),
	)
	return rec, nil
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "case", "items", "capacity", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"profit_best", "profit_mean", "profit_std",
		"weight_mean",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			r.Case,
			itoa(r.Items),
			itoa(r.Capacity),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.ProfitBest),
			ftoa(r.ProfitMean),
			ftoa(r.ProfitStd),

			ftoa(r.WeightMean),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func WriteAlphaCSV(path string, records []AlphaRecord) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"alpha", "runs", "profit_best", "profit_mean", "profit_std", "weight_mean", "time_mean_ms"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			ftoa(r.Alpha),
			itoa(r.Runs),
			itoa(r.ProfitBest),
			ftoa(r.ProfitMean),
			ftoa(r.ProfitStd),
			ftoa(r.WeightMean),
			ftoa(r.TimeMeanMs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
