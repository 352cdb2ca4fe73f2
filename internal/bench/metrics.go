package bench

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"knapsack/internal/opt"
)

// Metrics - метрики прогонов стенда в собственном реестре Prometheus.
type Metrics struct {
	reg      *prometheus.Registry
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	profit   *prometheus.GaugeVec
	evals    *prometheus.CounterVec

	mu   sync.Mutex
	best map[[2]string]int
}

func NewMetrics() *Metrics {
	m := &Metrics{
		reg:  prometheus.NewRegistry(),
		best: make(map[[2]string]int),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "knapsack",
			Subsystem: "bench",
			Name:      "runs_total",
			Help:      "Completed solver runs.",
		}, []string{"algo", "case"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "knapsack",
			Subsystem: "bench",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of one solver run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algo"}),
		profit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "knapsack",
			Subsystem: "bench",
			Name:      "best_profit",
			Help:      "Best profit seen per algorithm and case.",
		}, []string{"algo", "case"}),
		evals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "knapsack",
			Subsystem: "bench",
			Name:      "evaluations_total",
			Help:      "Solution evaluations reported by solvers.",
		}, []string{"algo"}),
	}
	m.reg.MustRegister(m.runs, m.duration, m.profit, m.evals)
	return m
}

func (m *Metrics) Gatherer() prometheus.Gatherer { return m.reg }

// WriteTextfile сохраняет метрики в текстовом формате экспозиции.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Gatherer())
}

func (m *Metrics) observe(algo, caseName string, res opt.Result, dur time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(algo, caseName).Inc()
	m.duration.WithLabelValues(algo).Observe(dur.Seconds())
	m.evals.WithLabelValues(algo).Add(float64(res.Evaluations))

	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{algo, caseName}
	if cur, ok := m.best[key]; !ok || res.Profit > cur {
		m.best[key] = res.Profit
		m.profit.WithLabelValues(algo, caseName).Set(float64(res.Profit))
	}
}
