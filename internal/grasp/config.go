package grasp

import (
	"fmt"
	"time"

	"knapsack/internal/localsearch"
)

type Config struct {
	Iterations int
	Alpha      float64

	// ConstructionTimeLimit - бюджет одного построения; 0 - без ограничения.
	ConstructionTimeLimit time.Duration

	// Policy - одношаговая политика, которую спуск повторяет до сходимости.
	Policy localsearch.Policy

	// Workers > 1 включает параллельное выполнение итераций.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Iterations:            1000,
		Alpha:                 0.12,
		ConstructionTimeLimit: 2 * time.Second,
		Policy:                localsearch.PolicyFirst,
		Workers:               1,
	}
}

func (c Config) Validate() error {
	// 0 итераций допустимо: результатом будет пустой рюкзак.
	if c.Iterations < 0 {
		return fmt.Errorf(
			"количество итераций должно быть >= 0 (получено %d)",
			c.Iterations,
		)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf(
			"alpha должно быть в диапазоне [0,1] (получено %f)",
			c.Alpha,
		)
	}
	if c.ConstructionTimeLimit < 0 {
		return fmt.Errorf(
			"ConstructionTimeLimit должно быть >= 0 (получено %s)",
			c.ConstructionTimeLimit,
		)
	}
	switch c.Policy {
	case localsearch.PolicyFirst, localsearch.PolicyBest:
		// ok
	default:
		return fmt.Errorf(
			"неизвестная политика локального поиска %q",
			c.Policy,
		)
	}
	if c.Workers < 1 {
		return fmt.Errorf(
			"число воркеров должно быть >= 1 (получено %d)",
			c.Workers,
		)
	}
	return nil
}
