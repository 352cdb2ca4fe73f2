package construct

import (
	"fmt"
	"math/rand"
	"time"
)

// Strategy - тип конструктивной эвристики.
type Strategy string

const (
	StrategyRandom           Strategy = "random"
	StrategyGreedy           Strategy = "greedy"
	StrategyGreedyRandomized Strategy = "grc"
)

type Config struct {
	Strategy Strategy

	// Alpha - параметр жадно-рандомизированного построения.
	Alpha float64

	// InclusionProb и Shuffle - параметры случайного построения.
	InclusionProb float64
	Shuffle       bool

	// TimeLimit - бюджет времени на одно построение; 0 - без ограничения.
	TimeLimit time.Duration
}

func DefaultConfig() Config {
	return Config{
		Strategy:      StrategyGreedyRandomized,
		Alpha:         0.12,
		InclusionProb: 0.5,
		Shuffle:       false,
		TimeLimit:     2 * time.Second,
	}
}

// ShuffledRandomConfig - случайный старт для экспериментов с локальным поиском:
// предметы в случайном порядке, вероятность включения 0.7.
func ShuffledRandomConfig() Config {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyRandom
	cfg.InclusionProb = 0.7
	cfg.Shuffle = true
	return cfg
}

func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyRandom, StrategyGreedy, StrategyGreedyRandomized:
		// ok
	default:
		return fmt.Errorf(
			"неизвестная конструктивная эвристика %q",
			c.Strategy,
		)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf(
			"alpha должно быть в диапазоне [0,1] (получено %f)",
			c.Alpha,
		)
	}
	if c.InclusionProb < 0 || c.InclusionProb > 1 {
		return fmt.Errorf(
			"вероятность включения должна быть в диапазоне [0,1] (получено %f)",
			c.InclusionProb,
		)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf(
			"TimeLimit должно быть >= 0 (получено %s)",
			c.TimeLimit,
		)
	}
	return nil
}

// New создаёт конструктор по конфигурации.
func New(cfg Config, rng *rand.Rand) (Constructor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Strategy {
	case StrategyRandom:
		c, err := NewRandom(cfg.InclusionProb, cfg.Shuffle, rng)
		if err != nil {
			return nil, err
		}
		return c, nil
	case StrategyGreedy:
		return NewRatioGreedy(), nil
	default:
		c, err := NewGreedyRandomized(cfg.Alpha, rng)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
