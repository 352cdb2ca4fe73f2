package ts

import (
	"fmt"

	"knapsack/internal/construct"
)

// Neighborhood определяет тип окрестности.
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

	TabuTenure int

	TabuTenureRand int

	NeighborsPerIter int

	Neighborhood Neighborhood

	Start construct.Config
}

func DefaultConfig() Config {
	start := construct.DefaultConfig()
	start.Strategy = construct.StrategyRandom

	return Config{
		Iterations:        0,
		IterationsPerItem: 50,

		TabuTenure:     7,
		TabuTenureRand: 3,

		NeighborsPerIter: 40,
		Neighborhood:     NeighborhoodFlip,

		Start: start,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerItem <= 0 {
		return fmt.Errorf(
			"должно быть задано Iterations > 0 или IterationsPerItem > 0",
		)
	}
	if c.TabuTenure <= 0 {
		return fmt.Errorf(
			"TabuTenure должно быть > 0 (получено %d)",
			c.TabuTenure,
		)
	}
	if c.TabuTenureRand < 0 {
		return fmt.Errorf(
			"TabuTenureRand должно быть >= 0 (получено %d)",
			c.TabuTenureRand,
		)
	}
	if c.NeighborsPerIter <= 0 {
		return fmt.Errorf(
			"NeighborsPerIter должно быть > 0 (получено %d)",
			c.NeighborsPerIter,
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
