package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics
type Collector struct {
	// Workflow metrics
	WorkflowOpsTotal       *prometheus.CounterVec
	WorkflowOpDuration     *prometheus.HistogramVec
	ArticleTransitionTotal *prometheus.CounterVec

	// Audit metrics
	AuditEventsRecorded prometheus.Counter
	AuditEventsDropped  prometheus.Counter
	AuditEventsFailed   *prometheus.CounterVec
	AuditQueueDepth     prometheus.Gauge

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database metrics
	DBConnectionsActive prometheus.Gauge
	DBQueryDuration     *prometheus.HistogramVec
}

// NewCollector creates a metrics collector registered on reg.
// Passing nil registers on the default registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		// Workflow metrics
		WorkflowOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cms_operations_total",
				Help: "Total number of editorial operations by outcome",
			},
			[]string{"operation", "result"},
		),
		WorkflowOpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cms_operation_duration_seconds",
				Help:    "Duration of editorial operations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
			},
			[]string{"operation"},
		),
		ArticleTransitionTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cms_article_transitions_total",
				Help: "Article status transitions",
			},
			[]string{"from", "to"},
		),

		// Audit metrics
		AuditEventsRecorded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cms_audit_events_recorded_total",
				Help: "Audit events accepted by the dispatcher",
			},
		),
		AuditEventsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "cms_audit_events_dropped_total",
				Help: "Audit events dropped because the queue was full",
			},
		),
		AuditEventsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cms_audit_events_failed_total",
				Help: "Audit events that could not be written, by sink",
			},
			[]string{"sink"},
		),
		AuditQueueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "cms_audit_queue_depth",
				Help: "Audit events waiting to be written",
			},
		),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBConnectionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "database_connections_active",
				Help: "Number of active database connections",
			},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "database_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"operation"},
		),
	}
}

// RecordOperation records the outcome and duration of an editorial operation
func (c *Collector) RecordOperation(operation, result string, duration float64) {
	c.WorkflowOpsTotal.WithLabelValues(operation, result).Inc()
	c.WorkflowOpDuration.WithLabelValues(operation).Observe(duration)
}

// RecordTransition records an article status change
func (c *Collector) RecordTransition(from, to string) {
	c.ArticleTransitionTotal.WithLabelValues(from, to).Inc()
}

// RecordAuditAccepted records an event entering the audit queue
func (c *Collector) RecordAuditAccepted() {
	c.AuditEventsRecorded.Inc()
}

// RecordAuditDropped records an event rejected by a full queue
func (c *Collector) RecordAuditDropped() {
	c.AuditEventsDropped.Inc()
}

// RecordAuditFailure records a failed write to sink
func (c *Collector) RecordAuditFailure(sink string) {
	c.AuditEventsFailed.WithLabelValues(sink).Inc()
}

// SetAuditQueueDepth sets the number of queued audit events
func (c *Collector) SetAuditQueueDepth(depth int) {
	c.AuditQueueDepth.Set(float64(depth))
}

// RecordHTTPRequest records an HTTP request
func (c *Collector) RecordHTTPRequest(method, path, status string, duration float64) {
	c.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordDBQuery records a database query
func (c *Collector) RecordDBQuery(operation string, duration float64) {
	c.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}

// SetDBConnections sets the number of active database connections
func (c *Collector) SetDBConnections(count int) {
	c.DBConnectionsActive.Set(float64(count))
}
