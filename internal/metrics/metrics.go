// Package metrics collects and exposes Prometheus metrics for the
// catalog service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface the catalog service and HTTP layer
// depend on.
type Recorder interface {
	RecordLoadSuccess(vehicleCount, rowsDropped int)
	RecordLoadFailure()
	RecordLoadLatency(d time.Duration)
	RecordMediaResolveFailure()
	RecordResolveLatency(d time.Duration)
	RecordHTTPStatus(statusCode int)
}

// Collector implements Recorder on top of Prometheus primitives.
type Collector struct {
	loadSuccess prometheus.Counter
	loadFail    prometheus.Counter
	rowsDropped prometheus.Counter
	vehicles    prometheus.Gauge
	loadLatency prometheus.Histogram
	resolveFail prometheus.Counter
	resolveTime prometheus.Histogram
	httpStatus  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loadSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autovidriera_load_success_total",
			Help: "Total number of successful catalog loads.",
		}),
		loadFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autovidriera_load_fail_total",
			Help: "Total number of failed catalog loads.",
		}),
		rowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autovidriera_rows_dropped_total",
			Help: "Total number of feed rows dropped for missing brand or model.",
		}),
		vehicles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "autovidriera_vehicles",
			Help: "Number of vehicles in the current catalog snapshot.",
		}),
		loadLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "autovidriera_load_latency_seconds",
			Help:    "Catalog load latency in seconds, fetch through publish.",
			Buckets: prometheus.DefBuckets,
		}),
		resolveFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autovidriera_media_resolve_fail_total",
			Help: "Total number of folder hints that resolved to no media.",
		}),
		resolveTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "autovidriera_media_resolve_latency_seconds",
			Help:    "Media resolution latency per vehicle in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autovidriera_http_status_total",
			Help: "API responses by HTTP status code.",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.loadSuccess,
		c.loadFail,
		c.rowsDropped,
		c.vehicles,
		c.loadLatency,
		c.resolveFail,
		c.resolveTime,
		c.httpStatus,
	)

	return c
}

// RecordLoadSuccess records a completed catalog load.
func (c *Collector) RecordLoadSuccess(vehicleCount, rowsDropped int) {
	c.loadSuccess.Inc()
	c.rowsDropped.Add(float64(rowsDropped))
	c.vehicles.Set(float64(vehicleCount))
}

// RecordLoadFailure records a failed catalog load. The vehicles gauge
// drops to zero because a failed load publishes an empty snapshot.
func (c *Collector) RecordLoadFailure() {
	c.loadFail.Inc()
	c.vehicles.Set(0)
}

// RecordLoadLatency records how long one catalog load took.
func (c *Collector) RecordLoadLatency(d time.Duration) {
	c.loadLatency.Observe(d.Seconds())
}

// RecordMediaResolveFailure records a folder hint that yielded no media.
func (c *Collector) RecordMediaResolveFailure() {
	c.resolveFail.Inc()
}

// RecordResolveLatency records one vehicle's media resolution time.
func (c *Collector) RecordResolveLatency(d time.Duration) {
	c.resolveTime.Observe(d.Seconds())
}

// RecordHTTPStatus records one API response status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// SetupMetricsRoute returns the HTTP handler that serves the /metrics
// endpoint for the given gatherer.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
