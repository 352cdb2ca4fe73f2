package bench

import (
	"math/rand"
	"path/filepath"
	"strconv"

	"knapsack/internal/opt"
)

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// Wrap приводит результат конструктора солвера к opt.Optimizer,
// не допуская интерфейса с nil-указателем внутри.
func Wrap[T opt.Optimizer](s T, err error) (opt.Optimizer, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
