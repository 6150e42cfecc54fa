// Package metrics exposes Prometheus instrumentation for the headless
// simulation loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orrery_ticks_total",
			Help: "Total number of simulation ticks processed.",
		},
	)

	tickDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orrery_tick_duration_seconds",
			Help:    "Wall-clock time spent advancing one tick.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14),
		},
	)

	bodiesTracked = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orrery_bodies_tracked",
			Help: "Number of bodies currently in the scene.",
		},
	)

	simulationElapsedSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orrery_simulation_elapsed_seconds",
			Help: "Simulated time elapsed since start.",
		},
	)

	assetLoadFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orrery_asset_load_failures_total",
			Help: "Total number of failed asset fetch attempts.",
		},
	)

	focusChangesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orrery_focus_changes_total",
			Help: "Total number of focus target switches.",
		},
	)
)

func init() {
	prometheus.MustRegister(ticksTotal)
	prometheus.MustRegister(tickDurationSeconds)
	prometheus.MustRegister(bodiesTracked)
	prometheus.MustRegister(simulationElapsedSeconds)
	prometheus.MustRegister(assetLoadFailuresTotal)
	prometheus.MustRegister(focusChangesTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTick observes one completed tick
func RecordTick(durationSeconds float64) {
	ticksTotal.Inc()
	tickDurationSeconds.Observe(durationSeconds)
}

// SetBodiesTracked updates the body count gauge
func SetBodiesTracked(count int) {
	bodiesTracked.Set(float64(count))
}

// SetSimulationElapsed updates the simulated-time gauge
func SetSimulationElapsed(seconds float64) {
	simulationElapsedSeconds.Set(seconds)
}

// RecordAssetLoadFailure counts one failed asset fetch
func RecordAssetLoadFailure() {
	assetLoadFailuresTotal.Inc()
}

// RecordFocusChange counts one focus switch
func RecordFocusChange() {
	focusChangesTotal.Inc()
}
