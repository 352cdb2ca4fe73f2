package localsearch

import (
	"fmt"

	"knapsack/internal/construct"
)

type Config struct {
	Policy Policy

	// HillClimb - повторять шаг до сходимости; иначе выполняется один шаг.
	HillClimb bool

	// Start - конструктивная эвристика для начального решения.
	Start construct.Config
}

func DefaultConfig() Config {
	return Config{
		Policy:    PolicyFirst,
		HillClimb: true,
		Start:     construct.ShuffledRandomConfig(),
	}
}

func (c Config) Validate() error {
	switch c.Policy {
	case PolicyFirst, PolicyBest:
		// ok
	default:
		return fmt.Errorf(
			"неизвестная политика локального поиска %q",
			c.Policy,
		)
	}
	if err := c.Start.Validate(); err != nil {
		return fmt.Errorf("начальное решение: %w", err)
	}
	return nil
}
