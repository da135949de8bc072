package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crm_sync"

// Collector groups the sync metrics.
type Collector struct {
	RowsTotal       *prometheus.CounterVec
	BatchesTotal    *prometheus.CounterVec
	ArchivedTotal   *prometheus.CounterVec
	InvalidValues   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LastRun         *prometheus.GaugeVec
}

// NewCollector creates and registers the collectors on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		RowsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Source rows processed, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		BatchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batches submitted to the CRM, by kind, operation and status.",
		}, []string{"kind", "operation", "status"}),
		ArchivedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archived_objects_total",
			Help:      "Child objects archived before recreation.",
		}, []string{"kind"}),
		InvalidValues: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_values_total",
			Help:      "Cells that failed a transform and were sent empty.",
		}, []string{"kind", "target"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "crm_request_duration_seconds",
			Help:      "CRM API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"object_type", "operation", "code"}),
		LastRun: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last finished run, by kind and status.",
		}, []string{"kind", "status"}),
	}
}

// ObserveRows adds n rows with the given outcome.
func (c *Collector) ObserveRows(kind, outcome string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.RowsTotal.WithLabelValues(kind, outcome).Add(float64(n))
}

// ObserveBatch counts one submitted batch.
func (c *Collector) ObserveBatch(kind, operation string, failed bool) {
	if c == nil {
		return
	}
	status := "ok"
	if failed {
		status = "failed"
	}
	c.BatchesTotal.WithLabelValues(kind, operation, status).Inc()
}

// ObserveArchived adds n archived child objects.
func (c *Collector) ObserveArchived(kind string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.ArchivedTotal.WithLabelValues(kind).Add(float64(n))
}

// ObserveInvalidValue counts one malformed cell.
func (c *Collector) ObserveInvalidValue(kind, target string) {
	if c == nil {
		return
	}
	c.InvalidValues.WithLabelValues(kind, target).Inc()
}

// ObserveRequest records a CRM call. code is 0 for transport failures.
func (c *Collector) ObserveRequest(objectType, operation string, code int, d time.Duration) {
	if c == nil {
		return
	}
	c.RequestDuration.WithLabelValues(objectType, operation, strconv.Itoa(code)).Observe(d.Seconds())
}

// ObserveRun stamps the finish time of a run.
func (c *Collector) ObserveRun(kind, status string, at time.Time) {
	if c == nil {
		return
	}
	c.LastRun.WithLabelValues(kind, status).Set(float64(at.Unix()))
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
