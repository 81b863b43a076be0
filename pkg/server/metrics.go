package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sandrolain/goroots/pkg/types"
)

// Solve outcome label values.
const (
	outcomeConverged    = "converged"
	outcomeNotConverged = "not_converged"
	outcomeError        = "error"
)

// Metrics holds the collectors exported by the server.
type Metrics struct {
	solves     *prometheus.CounterVec
	iterations *prometheus.HistogramVec
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewMetrics creates the server collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rootfind",
			Name:      "solves_total",
			Help:      "Root searches by method and outcome.",
		}, []string{"method", "outcome"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rootfind",
			Name:      "solve_iterations",
			Help:      "Iterations taken by completed root searches.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		}, []string{"method"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rootfind",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rootfind",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.solves, m.iterations, m.requests, m.latency)
	return m
}

// observeSolve records one finished root search.
func (m *Metrics) observeSolve(method string, res *types.SolveResult, err error) {
	switch {
	case err != nil:
		m.solves.WithLabelValues(method, outcomeError).Inc()
		return
	case res.Converged:
		m.solves.WithLabelValues(method, outcomeConverged).Inc()
	default:
		m.solves.WithLabelValues(method, outcomeNotConverged).Inc()
	}
	m.iterations.WithLabelValues(method).Observe(float64(res.IterationCount))
}
