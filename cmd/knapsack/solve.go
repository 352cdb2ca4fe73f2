package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"knapsack/internal/bench"
	"knapsack/internal/config"
	"knapsack/internal/knapsack"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		instance string
		format   string
		algo     string
		seed     int64
		size     int
		timeout  time.Duration
	)
	d := config.Default()

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Решить один экземпляр выбранным алгоритмом и вывести отчёт",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd, map[string]string{
				"grasp.iterations": "iterations",
				"grasp.alpha":      "alpha",
				"grasp.workers":    "workers",
				"grasp.policy":     "policy",
			}); err != nil {
				return err
			}

			var inst *knapsack.Instance
			if instance != "" {
				f, err := knapsack.ParseFormat(format)
				if err != nil {
					return err
				}
				if inst, err = knapsack.LoadFile(instance, f); err != nil {
					return err
				}
			} else {
				inst = bench.RandomCase(size, seed).Instance
			}

			selected, err := selectAlgorithms(algo, algorithms(a.cfg, a.log), a.cfg)
			if err != nil {
				return err
			}
			if len(selected) != 1 {
				return fmt.Errorf("solve запускает ровно один алгоритм (получено %d)", len(selected))
			}
			al := selected[0]

			op, err := al.Factory(seed)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel func()
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			res, err := op.Solve(ctx, inst)
			if err != nil && ctx.Err() == nil {
				return err
			}
			if err != nil {
				a.log.Warn("solve interrupted, reporting best found", slog.Any("error", err))
			}
			a.log.Info("solved",
				slog.String("algo", al.Name),
				slog.Int("items", inst.Len()),
				slog.Int("profit", res.Profit),
				slog.Int("weight", res.Weight),
				slog.Int("evaluations", res.Evaluations),
				slog.Duration("duration", res.Duration),
			)
			return knapsack.WriteReport(cmd.OutOrStdout(), inst, res.Solution)
		},
	}

	f := cmd.Flags()
	f.StringVar(&instance, "instance", "", "файл экземпляра; пусто — случайный экземпляр размера --size")
	f.StringVar(&format, "format", string(knapsack.FormatAuto), "формат файла: auto | pairs | arrays | json; при n=2 arrays указывается явно")
	f.StringVar(&algo, "algo", "GRASP", "алгоритм: RANDOM, GREEDY, GRC, GRC=<alpha>, FI, BI, HCFI, HCBI, GRASP, SA, TS, GA, ACO, PSO")
	f.Int64Var(&seed, "seed", 1, "сид генератора случайных чисел")
	f.IntVar(&size, "size", 100, "количество предметов случайного экземпляра")
	f.DurationVar(&timeout, "timeout", 0, "ограничение времени решения; 0 — без ограничения")
	f.Int("iterations", d.GRASP.Iterations, "количество итераций GRASP")
	f.Float64("alpha", d.GRASP.Alpha, "параметр alpha GRASP")
	f.Int("workers", d.GRASP.Workers, "количество параллельных итераций GRASP")
	f.String("policy", d.GRASP.Policy, "политика спуска GRASP: first | best")
	return cmd
}
