package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"knapsack/internal/bench"
	"knapsack/internal/config"
	"knapsack/internal/knapsack"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		algos     string
		instances []string
		format    string
	)
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Сравнить алгоритмы на наборе экземпляров: N запусков с разными сидами",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd, map[string]string{
				"bench.runs":            "runs",
				"bench.seed":            "seed",
				"bench.per_run_timeout": "per-run-timeout",
				"bench.sizes":           "sizes",
				"bench.out":             "out",
				"bench.metrics_out":     "metrics-out",
				"grasp.iterations":      "grasp-iterations",
				"grasp.workers":         "workers",
			}); err != nil {
				return err
			}
			bc := a.cfg.Bench

			cases, err := loadCases(instances, format, bc.Sizes, bc.Seed)
			if err != nil {
				return err
			}
			selected, err := selectAlgorithms(algos, algorithms(a.cfg, a.log), a.cfg)
			if err != nil {
				return err
			}

			runner := bench.Runner{
				Runs:          bc.Runs,
				BaseSeed:      bc.Seed,
				PerRunTimeout: bc.PerRunTimeout,
				Logger:        a.log,
			}
			if bc.MetricsOut != "" {
				runner.Metrics = bench.NewMetrics()
			}

			out := cmd.OutOrStdout()
			var records []bench.Record
			for _, c := range cases {
				for _, al := range selected {
					fmt.Fprintf(out, "Запущен алгоритм %s; %s, %d предметов, вместимость %d (общее кол-во запусков=%d)...\n",
						al.Name, c.Name, c.Instance.Len(), c.Instance.Capacity(), runner.Runs)

					rec, err := runner.RunCase(cmd.Context(), c, al)
					if err != nil {
						return err
					}
					records = append(records, rec)

					fmt.Fprintf(out, "  Прибыль: лучшая=%d средняя=%.2f стандартное отклонение=%.2f | Вес: средний=%.2f | Время: среднее=%.2fms стандартное отклонение=%.2fms\n",
						rec.ProfitBest, rec.ProfitMean, rec.ProfitStd,
						rec.WeightMean,
						rec.TimeMeanMs, rec.TimeStdMs,
					)
				}
			}

			if err := bench.WriteCSV(bc.Out, records); err != nil {
				return fmt.Errorf("ошибка при записи в CSV: %w", err)
			}
			fmt.Fprintln(out, "Saved:", bc.Out)

			if runner.Metrics != nil {
				if err := runner.Metrics.WriteTextfile(bc.MetricsOut); err != nil {
					return fmt.Errorf("ошибка при записи метрик: %w", err)
				}
				fmt.Fprintln(out, "Saved:", bc.MetricsOut)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&algos, "algos", "RANDOM,GREEDY,GRC,HCFI,HCBI,GRASP", "список алгоритмов через запятую; GRC=<alpha> — построение с явным alpha")
	f.StringSliceVar(&instances, "instance", nil, "файлы экземпляров; если не заданы — случайные экземпляры размеров --sizes")
	f.StringVar(&format, "format", string(knapsack.FormatAuto), "формат файлов: auto | pairs | arrays | json; при n=2 arrays указывается явно")
	f.Int("runs", d.Bench.Runs, "количество запусков каждого алгоритма (с разными сидами)")
	f.Int64("seed", d.Bench.Seed, "базовый сид запусков и генерации экземпляров")
	f.Duration("per-run-timeout", d.Bench.PerRunTimeout, "таймаут одного запуска; 0 — без ограничения")
	f.IntSlice("sizes", d.Bench.Sizes, "размеры случайных экземпляров")
	f.String("out", d.Bench.Out, "путь к выходному CSV-файлу")
	f.String("metrics-out", d.Bench.MetricsOut, "файл метрик Prometheus в текстовом формате; пусто — не писать")
	f.Int("grasp-iterations", d.GRASP.Iterations, "количество итераций GRASP")
	f.Int("workers", d.GRASP.Workers, "количество параллельных итераций GRASP")
	return cmd
}
