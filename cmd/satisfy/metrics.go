package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/hartsolve/satisfy/internal/sat"
)

// To add a new metric:
// 1. Register it in registerMetrics below.
// 2. Set it from the relevant field of sat.Solver's stats counters.
var (
	conflictsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "satisfy_conflicts_total",
			Help: "Number of conflicts encountered by the most recent solve",
		},
	)

	decisionsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "satisfy_decisions_total",
			Help: "Number of branching decisions made by the most recent solve",
		},
	)

	propagationsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "satisfy_propagations_total",
			Help: "Number of unit propagations performed by the most recent solve",
		},
	)

	restartsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "satisfy_restarts_total",
			Help: "Number of search restarts performed by the most recent solve",
		},
	)

	learntsDeletedTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "satisfy_learnts_deleted_total",
			Help: "Number of learnt clauses dropped by Reduce-DB in the most recent solve",
		},
	)
)

func registerMetrics() {
	prometheus.MustRegister(conflictsTotal)
	prometheus.MustRegister(decisionsTotal)
	prometheus.MustRegister(propagationsTotal)
	prometheus.MustRegister(restartsTotal)
	prometheus.MustRegister(learntsDeletedTotal)
}

// publishMetrics snapshots a solver's plain-int64 counters into the
// registered gauges. The core package exposes no Prometheus dependency of
// its own; this is the one place that bridges the two.
func publishMetrics(s *sat.Solver) {
	stats := s.Stats()
	conflictsTotal.Set(float64(stats.Conflicts))
	decisionsTotal.Set(float64(stats.Decisions))
	propagationsTotal.Set(float64(stats.Propagations))
	restartsTotal.Set(float64(stats.Restarts))
	learntsDeletedTotal.Set(float64(stats.LearntsDeleted))
}

// serveMetrics starts a /metrics HTTP endpoint on addr and blocks until it
// fails or the process exits. Intended to be run in its own goroutine.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logrus.WithField("addr", addr).Info("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logrus.WithError(err).Error("metrics server stopped")
	}
}
