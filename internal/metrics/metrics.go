// Package metrics exposes an optional Prometheus registry for parahpf's CLI
// (SPEC_FULL.md §2.6). Adapted from the retrieved logistics-platform pack's
// per-service metrics singleton (services/gateway-svc/internal/metrics), cut
// down from request/backend/cache/auth metric families to the handful a
// batch solver run actually produces: one histogram per solve phase, one
// histogram each for breakpoints found and contractions performed, a run
// counter labeled by outcome (ok/error), and a cumulative arc-scan counter.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "parahpf"

// Solver holds the metric families a solve run reports into.
type Solver struct {
	ReadDuration  prometheus.Histogram
	InitDuration  prometheus.Histogram
	SolveDuration prometheus.Histogram

	Breakpoints  prometheus.Histogram
	Contractions prometheus.Histogram

	RunsTotal   *prometheus.CounterVec // label "outcome" in {ok, error}
	ArcsScanned prometheus.Counter
}

var (
	once     sync.Once
	instance *Solver
)

// Init registers the metric families exactly once and returns the shared
// instance; safe to call from multiple goroutines or multiple batch items.
func Init() *Solver {
	once.Do(func() {
		instance = &Solver{
			ReadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace, Name: "read_duration_seconds",
				Help: "Time spent parsing DIMACS-like input.", Buckets: prometheus.DefBuckets,
			}),
			InitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace, Name: "init_duration_seconds",
				Help: "Time spent building the super graph and initial cut problems.", Buckets: prometheus.DefBuckets,
			}),
			SolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace, Name: "solve_duration_seconds",
				Help: "Time spent in the parametric driver.", Buckets: prometheus.DefBuckets,
			}),
			Breakpoints: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace, Name: "breakpoints_found",
				Help: "Number of breakpoints K returned per solve.", Buckets: prometheus.LinearBuckets(0, 4, 10),
			}),
			Contractions: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: namespace, Name: "contractions_performed",
				Help: "Number of graph contractions performed per solve.", Buckets: prometheus.LinearBuckets(0, 4, 10),
			}),
			RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace, Name: "runs_total", Help: "Total solve invocations by outcome.",
			}, []string{"outcome"}),
			ArcsScanned: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: namespace, Name: "arc_scans_total", Help: "Cumulative engine arc scans across all solves.",
			}),
		}
	})
	return instance
}

// Observe records one completed solve's timings and counters.
func (m *Solver) Observe(readSec, initSec, solveSec float64, breakpoints, contractions int, arcScans uint, err error) {
	m.ReadDuration.Observe(readSec)
	m.InitDuration.Observe(initSec)
	m.SolveDuration.Observe(solveSec)
	m.Breakpoints.Observe(float64(breakpoints))
	m.Contractions.Observe(float64(contractions))
	m.ArcsScanned.Add(float64(arcScans))

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
}

// Serve starts a blocking HTTP server exposing /metrics on addr. Intended to
// be run in its own goroutine by the caller.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
