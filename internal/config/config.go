// Package config загружает настройки CLI: файл (yaml/toml/json), переменные
// окружения KNAPSACK_* и флаги командной строки, в порядке возрастания приоритета.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"knapsack/internal/aco"
	"knapsack/internal/construct"
	"knapsack/internal/ga"
	"knapsack/internal/grasp"
	"knapsack/internal/localsearch"
	"knapsack/internal/logging"
	"knapsack/internal/pso"
	"knapsack/internal/sa"
	"knapsack/internal/ts"
)

const EnvPrefix = "KNAPSACK"

type Config struct {
	Log         logging.Config `mapstructure:"log"`
	Bench       Bench          `mapstructure:"bench"`
	Construct   Construct      `mapstructure:"construct"`
	LocalSearch LocalSearch    `mapstructure:"local_search"`
	GRASP       GRASP          `mapstructure:"grasp"`
	SA          SA             `mapstructure:"sa"`
	TS          TS             `mapstructure:"ts"`
	GA          GA             `mapstructure:"ga"`
	ACO         ACO            `mapstructure:"aco"`
	PSO         PSO            `mapstructure:"pso"`
}

type Bench struct {
	Runs          int           `mapstructure:"runs"            validate:"min=1"`
	Seed          int64         `mapstructure:"seed"`
	PerRunTimeout time.Duration `mapstructure:"per_run_timeout" validate:"gte=0"`
	Sizes         []int         `mapstructure:"sizes"           validate:"dive,min=1"`
	AlphaSteps    int           `mapstructure:"alpha_steps"     validate:"min=1"`
	Out           string        `mapstructure:"out"`
	MetricsOut    string        `mapstructure:"metrics_out"`
}

type Construct struct {
	Strategy      string        `mapstructure:"strategy"       validate:"oneof=random greedy grc"`
	Alpha         float64       `mapstructure:"alpha"          validate:"gte=0,lte=1"`
	InclusionProb float64       `mapstructure:"inclusion_prob" validate:"gte=0,lte=1"`
	Shuffle       bool          `mapstructure:"shuffle"`
	TimeLimit     time.Duration `mapstructure:"time_limit"     validate:"gte=0"`
}

type LocalSearch struct {
	Policy    string    `mapstructure:"policy"     validate:"oneof=first best"`
	HillClimb bool      `mapstructure:"hill_climb"`
	Start     Construct `mapstructure:"start"`
}

type GRASP struct {
	Iterations            int           `mapstructure:"iterations"              validate:"gte=0"`
	Alpha                 float64       `mapstructure:"alpha"                   validate:"gte=0,lte=1"`
	ConstructionTimeLimit time.Duration `mapstructure:"construction_time_limit" validate:"gte=0"`
	Policy                string        `mapstructure:"policy"                  validate:"oneof=first best"`
	Workers               int           `mapstructure:"workers"                 validate:"min=1"`
}

type SA struct {
	Iterations        int     `mapstructure:"iterations"          validate:"gte=0"`
	IterationsPerItem int     `mapstructure:"iterations_per_item" validate:"gte=0"`
	InitialTemp       float64 `mapstructure:"initial_temp"        validate:"gt=0"`
	FinalTemp         float64 `mapstructure:"final_temp"          validate:"gt=0"`
	Alpha             float64 `mapstructure:"alpha"               validate:"gt=0,lt=1"`
	Neighborhood      string  `mapstructure:"neighborhood"        validate:"oneof=adjacent flip"`
}

type TS struct {
	Iterations        int    `mapstructure:"iterations"          validate:"gte=0"`
	IterationsPerItem int    `mapstructure:"iterations_per_item" validate:"gte=0"`
	TabuTenure        int    `mapstructure:"tabu_tenure"         validate:"min=1"`
	TabuTenureRand    int    `mapstructure:"tabu_tenure_rand"    validate:"gte=0"`
	NeighborsPerIter  int    `mapstructure:"neighbors_per_iter"  validate:"min=1"`
	Neighborhood      string `mapstructure:"neighborhood"        validate:"oneof=adjacent flip"`
}

type GA struct {
	Population     int     `mapstructure:"population"      validate:"min=2"`
	Generations    int     `mapstructure:"generations"     validate:"min=1"`
	Elite          int     `mapstructure:"elite"           validate:"gte=0,ltfield=Population"`
	TournamentSize int     `mapstructure:"tournament_size" validate:"min=1"`
	CrossoverRate  float64 `mapstructure:"crossover_rate"  validate:"gte=0,lte=1"`
	MutationRate   float64 `mapstructure:"mutation_rate"   validate:"gte=0,lte=1"`
}

type ACO struct {
	Iterations        int     `mapstructure:"iterations"          validate:"gte=0"`
	IterationsPerItem int     `mapstructure:"iterations_per_item" validate:"gte=0"`
	Ants              int     `mapstructure:"ants"                validate:"min=1"`
	Alpha             float64 `mapstructure:"alpha"               validate:"gte=0"`
	Beta              float64 `mapstructure:"beta"                validate:"gte=0"`
	Rho               float64 `mapstructure:"rho"                 validate:"gt=0,lt=1"`
	Q                 float64 `mapstructure:"q"                   validate:"gt=0"`
	Tau0              float64 `mapstructure:"tau0"                validate:"gt=0"`
	CandidateK        int     `mapstructure:"candidate_k"         validate:"gte=0"`
}

type PSO struct {
	Iterations        int     `mapstructure:"iterations"          validate:"gte=0"`
	IterationsPerItem int     `mapstructure:"iterations_per_item" validate:"gte=0"`
	Particles         int     `mapstructure:"particles"           validate:"min=1"`
	W                 float64 `mapstructure:"w"                   validate:"gte=0"`
	C1                float64 `mapstructure:"c1"                  validate:"gte=0"`
	C2                float64 `mapstructure:"c2"                  validate:"gte=0"`
	VMax              float64 `mapstructure:"vmax"`
	PosMin            float64 `mapstructure:"pos_min"`
	PosMax            float64 `mapstructure:"pos_max"`
}

// Default собирает конфигурацию из значений по умолчанию пакетов-солверов.
func Default() Config {
	gc := grasp.DefaultConfig()
	sc := sa.DefaultConfig()
	lc := localsearch.DefaultConfig()
	tc := ts.DefaultConfig()
	gac := ga.DefaultConfig()
	ac := aco.DefaultConfig()
	pc := pso.DefaultConfig()
	return Config{
		Log: logging.DefaultConfig(),
		Bench: Bench{
			Runs:       10,
			Seed:       1,
			Sizes:      []int{10, 50, 100, 500},
			AlphaSteps: 10,
			Out:        "results/bench.csv",
		},
		Construct: fromConstruct(construct.DefaultConfig()),
		LocalSearch: LocalSearch{
			Policy:    string(lc.Policy),
			HillClimb: lc.HillClimb,
			Start:     fromConstruct(lc.Start),
		},
		GRASP: GRASP{
			Iterations:            gc.Iterations,
			Alpha:                 gc.Alpha,
			ConstructionTimeLimit: gc.ConstructionTimeLimit,
			Policy:                string(gc.Policy),
			Workers:               gc.Workers,
		},
		SA: SA{
			Iterations:        sc.Iterations,
			IterationsPerItem: sc.IterationsPerItem,
			InitialTemp:       sc.InitialTemp,
			FinalTemp:         sc.FinalTemp,
			Alpha:             sc.Alpha,
			Neighborhood:      string(sc.Neighborhood),
		},
		TS: TS{
			Iterations:        tc.Iterations,
			IterationsPerItem: tc.IterationsPerItem,
			TabuTenure:        tc.TabuTenure,
			TabuTenureRand:    tc.TabuTenureRand,
			NeighborsPerIter:  tc.NeighborsPerIter,
			Neighborhood:      string(tc.Neighborhood),
		},
		GA: GA{
			Population:     gac.Population,
			Generations:    gac.Generations,
			Elite:          gac.Elite,
			TournamentSize: gac.TournamentSize,
			CrossoverRate:  gac.CrossoverRate,
			MutationRate:   gac.MutationRate,
		},
		ACO: ACO(ac),
		PSO: PSO(pc),
	}
}

// Option привязывает источник значений к загрузчику.
type Option func(v *viper.Viper) error

// WithFlag привязывает флаг к ключу конфигурации. Флаг перекрывает файл и окружение,
// только если он был задан явно.
func WithFlag(key string, f *pflag.Flag) Option {
	return func(v *viper.Viper) error {
		if f == nil {
			return fmt.Errorf("флаг для ключа %q не найден", key)
		}
		return v.BindPFlag(key, f)
	}
}

// Load читает конфигурацию. Пустой path - только значения по умолчанию,
// окружение и флаги.
func Load(path string, opts ...Option) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, o := range opts {
		if err := o(v); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет теги структуры и затем конфигурации солверов.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if err := c.ConstructConfig().Validate(); err != nil {
		return fmt.Errorf("construct: %w", err)
	}
	if err := c.LocalSearchConfig().Validate(); err != nil {
		return fmt.Errorf("local_search: %w", err)
	}
	if err := c.GRASPConfig().Validate(); err != nil {
		return fmt.Errorf("grasp: %w", err)
	}
	if err := c.SAConfig().Validate(); err != nil {
		return fmt.Errorf("sa: %w", err)
	}
	if err := c.TSConfig().Validate(); err != nil {
		return fmt.Errorf("ts: %w", err)
	}
	if err := c.GAConfig().Validate(); err != nil {
		return fmt.Errorf("ga: %w", err)
	}
	if err := c.ACOConfig().Validate(); err != nil {
		return fmt.Errorf("aco: %w", err)
	}
	if err := c.PSOConfig().Validate(); err != nil {
		return fmt.Errorf("pso: %w", err)
	}
	return nil
}

func (c Config) ConstructConfig() construct.Config { return c.Construct.toConstruct() }

func (c Config) LocalSearchConfig() localsearch.Config {
	return localsearch.Config{
		Policy:    localsearch.Policy(c.LocalSearch.Policy),
		HillClimb: c.LocalSearch.HillClimb,
		Start:     c.LocalSearch.Start.toConstruct(),
	}
}

func (c Config) GRASPConfig() grasp.Config {
	return grasp.Config{
		Iterations:            c.GRASP.Iterations,
		Alpha:                 c.GRASP.Alpha,
		ConstructionTimeLimit: c.GRASP.ConstructionTimeLimit,
		Policy:                localsearch.Policy(c.GRASP.Policy),
		Workers:               c.GRASP.Workers,
	}
}

// SAConfig - отжиг стартует с конструктивной эвристики из секции construct.
func (c Config) SAConfig() sa.Config {
	return sa.Config{
		Iterations:        c.SA.Iterations,
		IterationsPerItem: c.SA.IterationsPerItem,
		InitialTemp:       c.SA.InitialTemp,
		FinalTemp:         c.SA.FinalTemp,
		Alpha:             c.SA.Alpha,
		Neighborhood:      sa.Neighborhood(c.SA.Neighborhood),
		Start:             c.Construct.toConstruct(),
	}
}

// TSConfig - табу-поиск стартует со случайного решения секции local_search.start.
func (c Config) TSConfig() ts.Config {
	return ts.Config{
		Iterations:        c.TS.Iterations,
		IterationsPerItem: c.TS.IterationsPerItem,
		TabuTenure:        c.TS.TabuTenure,
		TabuTenureRand:    c.TS.TabuTenureRand,
		NeighborsPerIter:  c.TS.NeighborsPerIter,
		Neighborhood:      ts.Neighborhood(c.TS.Neighborhood),
		Start:             c.LocalSearch.Start.toConstruct(),
	}
}

// GAConfig - особи начальной популяции строятся так же, как старт локального поиска.
func (c Config) GAConfig() ga.Config {
	return ga.Config{
		Population:     c.GA.Population,
		Generations:    c.GA.Generations,
		Elite:          c.GA.Elite,
		TournamentSize: c.GA.TournamentSize,
		CrossoverRate:  c.GA.CrossoverRate,
		MutationRate:   c.GA.MutationRate,
		Start:          c.LocalSearch.Start.toConstruct(),
	}
}

func (c Config) ACOConfig() aco.Config { return aco.Config(c.ACO) }

func (c Config) PSOConfig() pso.Config { return pso.Config(c.PSO) }

func (c Construct) toConstruct() construct.Config {
	return construct.Config{
		Strategy:      construct.Strategy(c.Strategy),
		Alpha:         c.Alpha,
		InclusionProb: c.InclusionProb,
		Shuffle:       c.Shuffle,
		TimeLimit:     c.TimeLimit,
	}
}

func fromConstruct(c construct.Config) Construct {
	return Construct{
		Strategy:      string(c.Strategy),
		Alpha:         c.Alpha,
		InclusionProb: c.InclusionProb,
		Shuffle:       c.Shuffle,
		TimeLimit:     c.TimeLimit,
	}
}

// setDefaults регистрирует все ключи, иначе AutomaticEnv их не увидит при Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)

	v.SetDefault("bench.runs", d.Bench.Runs)
	v.SetDefault("bench.seed", d.Bench.Seed)
	v.SetDefault("bench.per_run_timeout", d.Bench.PerRunTimeout)
	v.SetDefault("bench.sizes", d.Bench.Sizes)
	v.SetDefault("bench.alpha_steps", d.Bench.AlphaSteps)
	v.SetDefault("bench.out", d.Bench.Out)
	v.SetDefault("bench.metrics_out", d.Bench.MetricsOut)

	constructDefaults(v, "construct", d.Construct)

	v.SetDefault("local_search.policy", d.LocalSearch.Policy)
	v.SetDefault("local_search.hill_climb", d.LocalSearch.HillClimb)
	constructDefaults(v, "local_search.start", d.LocalSearch.Start)

	v.SetDefault("grasp.iterations", d.GRASP.Iterations)
	v.SetDefault("grasp.alpha", d.GRASP.Alpha)
	v.SetDefault("grasp.construction_time_limit", d.GRASP.ConstructionTimeLimit)
	v.SetDefault("grasp.policy", d.GRASP.Policy)
	v.SetDefault("grasp.workers", d.GRASP.Workers)

	v.SetDefault("sa.iterations", d.SA.Iterations)
	v.SetDefault("sa.iterations_per_item", d.SA.IterationsPerItem)
	v.SetDefault("sa.initial_temp", d.SA.InitialTemp)
	v.SetDefault("sa.final_temp", d.SA.FinalTemp)
	v.SetDefault("sa.alpha", d.SA.Alpha)
	v.SetDefault("sa.neighborhood", d.SA.Neighborhood)

	v.SetDefault("ts.iterations", d.TS.Iterations)
	v.SetDefault("ts.iterations_per_item", d.TS.IterationsPerItem)
	v.SetDefault("ts.tabu_tenure", d.TS.TabuTenure)
	v.SetDefault("ts.tabu_tenure_rand", d.TS.TabuTenureRand)
	v.SetDefault("ts.neighbors_per_iter", d.TS.NeighborsPerIter)
	v.SetDefault("ts.neighborhood", d.TS.Neighborhood)

	v.SetDefault("ga.population", d.GA.Population)
	v.SetDefault("ga.generations", d.GA.Generations)
	v.SetDefault("ga.elite", d.GA.Elite)
	v.SetDefault("ga.tournament_size", d.GA.TournamentSize)
	v.SetDefault("ga.crossover_rate", d.GA.CrossoverRate)
	v.SetDefault("ga.mutation_rate", d.GA.MutationRate)

	v.SetDefault("aco.iterations", d.ACO.Iterations)
	v.SetDefault("aco.iterations_per_item", d.ACO.IterationsPerItem)
	v.SetDefault("aco.ants", d.ACO.Ants)
	v.SetDefault("aco.alpha", d.ACO.Alpha)
	v.SetDefault("aco.beta", d.ACO.Beta)
	v.SetDefault("aco.rho", d.ACO.Rho)
	v.SetDefault("aco.q", d.ACO.Q)
	v.SetDefault("aco.tau0", d.ACO.Tau0)
	v.SetDefault("aco.candidate_k", d.ACO.CandidateK)

	v.SetDefault("pso.iterations", d.PSO.Iterations)
	v.SetDefault("pso.iterations_per_item", d.PSO.IterationsPerItem)
	v.SetDefault("pso.particles", d.PSO.Particles)
	v.SetDefault("pso.w", d.PSO.W)
	v.SetDefault("pso.c1", d.PSO.C1)
	v.SetDefault("pso.c2", d.PSO.C2)
	v.SetDefault("pso.vmax", d.PSO.VMax)
	v.SetDefault("pso.pos_min", d.PSO.PosMin)
	v.SetDefault("pso.pos_max", d.PSO.PosMax)
}

func constructDefaults(v *viper.Viper, prefix string, c Construct) {
	v.SetDefault(prefix+".strategy", c.Strategy)
	v.SetDefault(prefix+".alpha", c.Alpha)
	v.SetDefault(prefix+".inclusion_prob", c.InclusionProb)
	v.SetDefault(prefix+".shuffle", c.Shuffle)
	v.SetDefault(prefix+".time_limit", c.TimeLimit)
}
