package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"knapsack/internal/config"
	"knapsack/internal/logging"
)

// app - общее состояние команд: конфигурация и логгер.
type app struct {
	cfgPath  string
	cfg      config.Config
	log      *slog.Logger
	closeLog func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	d := config.Default()

	root := &cobra.Command{
		Use:          "knapsack",
		Short:        "Конструктивные эвристики, локальный поиск и GRASP для задачи о рюкзаке 0/1",
		SilenceUsage: true,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "файл конфигурации (yaml, toml, json)")
	pf.String("log-level", d.Log.Level, "уровень журнала: debug | info | warn | error")
	pf.String("log-format", d.Log.Format, "формат журнала: text | json")
	pf.String("log-file", d.Log.File, "файл журнала с ротацией; пусто — stderr")

	root.AddCommand(newSolveCmd(a), newBenchCmd(a), newAlphaCmd(a))
	return root
}

// load читает конфигурацию с учётом флагов команды и создаёт логгер.
// binds сопоставляет ключ конфигурации имени флага.
func (a *app) load(cmd *cobra.Command, binds map[string]string) error {
	all := map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
		"log.file":   "log-file",
	}
	for k, v := range binds {
		all[k] = v
	}

	opts := make([]config.Option, 0, len(all))
	for key, name := range all {
		opts = append(opts, config.WithFlag(key, cmd.Flags().Lookup(name)))
	}

	cfg, err := config.Load(a.cfgPath, opts...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log, a.closeLog = logging.New(cfg.Log, cmd.ErrOrStderr())
	a.log.Debug("config loaded", slog.String("path", a.cfgPath))
	return nil
}
