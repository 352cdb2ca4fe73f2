package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"knapsack/internal/bench"
	"knapsack/internal/config"
	"knapsack/internal/knapsack"
)

func newAlphaCmd(a *app) *cobra.Command {
	var (
		instances []string
		format    string
		out       string
	)
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "alpha",
		Short: "Подобрать alpha жадно-рандомизированного построения",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd, map[string]string{
				"bench.runs":           "runs",
				"bench.seed":           "seed",
				"bench.sizes":          "sizes",
				"bench.alpha_steps":    "steps",
				"construct.time_limit": "time-limit",
			}); err != nil {
				return err
			}
			bc := a.cfg.Bench

			cases, err := loadCases(instances, format, bc.Sizes, bc.Seed)
			if err != nil {
				return err
			}
			runner := bench.Runner{Runs: bc.Runs, BaseSeed: bc.Seed, Logger: a.log}

			w := cmd.OutOrStdout()
			var all []bench.AlphaRecord
			for _, c := range cases {
				recs, best, err := runner.SweepAlpha(cmd.Context(), c, bench.AlphaGrid(bc.AlphaSteps), a.cfg.Construct.TimeLimit)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s (%d предметов):\n", c.Name, c.Instance.Len())
				for _, r := range recs {
					fmt.Fprintf(w, "  alpha=%.2f прибыль: лучшая=%d средняя=%.2f | вес: средний=%.2f\n",
						r.Alpha, r.ProfitBest, r.ProfitMean, r.WeightMean)
				}
				fmt.Fprintf(w, "  Лучшее alpha=%.2f (прибыль %d)\n", best.Alpha, best.ProfitBest)
				all = append(all, recs...)
			}

			if err := bench.WriteAlphaCSV(out, all); err != nil {
				return fmt.Errorf("ошибка при записи в CSV: %w", err)
			}
			fmt.Fprintln(w, "Saved:", out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&instances, "instance", nil, "файлы экземпляров; если не заданы — случайные экземпляры размеров --sizes")
	f.StringVar(&format, "format", string(knapsack.FormatAuto), "формат файлов: auto | pairs | arrays | json; при n=2 arrays указывается явно")
	f.StringVar(&out, "out", "results/alpha.csv", "путь к выходному CSV-файлу")
	f.Int("runs", d.Bench.Runs, "количество запусков на каждое значение alpha")
	f.Int64("seed", d.Bench.Seed, "базовый сид")
	f.IntSlice("sizes", d.Bench.Sizes, "размеры случайных экземпляров")
	f.Int("steps", d.Bench.AlphaSteps, "количество шагов сетки alpha: 0, 1/steps, ..., 1")
	f.Duration("time-limit", d.Construct.TimeLimit, "бюджет времени одного построения; 0 — без ограничения")
	return cmd
}
