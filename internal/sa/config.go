package sa

import (
	"fmt"

	"knapsack/internal/construct"
)

// Тип окрестности
type Neighborhood string

const (
	// NeighborhoodAdjacent инвертирует пару соседних флагов (j, j+1).
	NeighborhoodAdjacent Neighborhood = "adjacent"
	// NeighborhoodFlip инвертирует один флаг.
	NeighborhoodFlip Neighborhood = "flip"
)

type Config struct {
	Iterations        int
	IterationsPerItem int

	InitialTemp float64
	FinalTemp   float64
	Alpha       float64

	Neighborhood Neighborhood

	Start construct.Config
}

func DefaultConfig() Config {
	start := construct.DefaultConfig()
	start.Strategy = construct.StrategyRandom

	return Config{
		Iterations:        0,
		IterationsPerItem: 200,

		InitialTemp: 100.0,
		FinalTemp:   0.01,
		Alpha:       0.999,

		Neighborhood: NeighborhoodAdjacent,

		Start: start,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerItem <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerItem > 0",
		)
	}
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.FinalTemp <= 0 {
		return fmt.Errorf(
			"FinalTemp должно быть > 0 (получено %f)",
			c.FinalTemp,
		)
	}
	if c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf(
			"FinalTemp должно быть < InitialTemp (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале (0,1) (получено %f)",
			c.Alpha,
		)
	}
	switch c.Neighborhood {
	case NeighborhoodAdjacent, NeighborhoodFlip:
		// ok
	default:
		return fmt.Errorf(
			"неизвестный тип окрестности %q",
			c.Neighborhood,
		)
	}
	if err := c.Start.Validate(); err != nil {
		return fmt.Errorf("начальное решение: %w", err)
	}
	return nil
}
