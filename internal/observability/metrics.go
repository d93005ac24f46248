// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
// Each instance owns its registry, so tests can build as many as they need.
// A nil *Metrics records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	// Simulation metrics
	SimulationRuns     *prometheus.CounterVec
	SimulationDuration *prometheus.HistogramVec
	StoredResults      prometheus.Gauge

	// Price feed metrics
	PriceFetches       *prometheus.CounterVec
	PriceFetchLatency  prometheus.Histogram
	LastBTCPrice       prometheus.Gauge
	LastPriceTimestamp prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "btc_mining_sim"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		SimulationRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Total number of strategy simulations by strategy and status",
		}, []string{"strategy", "status"}),
		SimulationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "duration_seconds",
			Help:      "Simulation request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		StoredResults: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "stored_results",
			Help:      "Number of simulation results held for retrieval",
		}),

		PriceFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "price",
			Name:      "fetches_total",
			Help:      "Total number of BTC price fetches by status",
		}, []string{"status"}),
		PriceFetchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "price",
			Name:      "fetch_latency_seconds",
			Help:      "BTC price fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		LastBTCPrice: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "price",
			Name:      "btc_usd",
			Help:      "Last fetched BTC price in USD",
		}),
		LastPriceTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "price",
			Name:      "last_success_timestamp",
			Help:      "Unix timestamp of the last successful price fetch",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// RecordSimulation records one strategy run.
func (m *Metrics) RecordSimulation(strategy string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.SimulationRuns.WithLabelValues(strategy, status).Inc()
}

// ObserveSimulation records how long a suite or single run took.
func (m *Metrics) ObserveSimulation(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.SimulationDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// SetStoredResults updates the stored results gauge.
func (m *Metrics) SetStoredResults(n int) {
	if m == nil {
		return
	}
	m.StoredResults.Set(float64(n))
}

// RecordPriceFetch records a price fetch and, on success, the price.
func (m *Metrics) RecordPriceFetch(price float64, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.PriceFetchLatency.Observe(d.Seconds())
	if err != nil {
		m.PriceFetches.WithLabelValues("error").Inc()
		return
	}
	m.PriceFetches.WithLabelValues("ok").Inc()
	m.LastBTCPrice.Set(price)
	m.LastPriceTimestamp.Set(float64(time.Now().Unix()))
}
