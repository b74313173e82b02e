package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Query bus metrics
	Queries       *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	// Graph store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec

	// View size metrics
	ViewNodes *prometheus.HistogramVec
	ViewEdges *prometheus.HistogramVec
}

// NewCollector creates a metrics collector registered on its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	queries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of dispatched queries by outcome",
		},
		[]string{"query", "outcome"},
	)

	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Query handler duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	storeOperations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of graph store operations",
		},
		[]string{"operation", "status"},
	)

	storeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Graph store operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	viewNodes := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_nodes",
			Help:      "Number of nodes in rendered graph views",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"view"},
	)

	viewEdges := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_edges",
			Help:      "Number of edges in rendered graph views",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"view"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		queries,
		queryDuration,
		storeOperations,
		storeDuration,
		viewNodes,
		viewEdges,
	)

	return &Collector{
		registry:        registry,
		HTTPRequests:    httpRequests,
		HTTPDuration:    httpDuration,
		Queries:         queries,
		QueryDuration:   queryDuration,
		StoreOperations: storeOperations,
		StoreDuration:   storeDuration,
		ViewNodes:       viewNodes,
		ViewEdges:       viewEdges,
	}
}

// ObserveHTTP records one served request
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveStore records one graph store operation
func (c *Collector) ObserveStore(operation string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.StoreOperations.WithLabelValues(operation, status).Inc()
	c.StoreDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveView records the size of a rendered view
func (c *Collector) ObserveView(view string, nodes, edges int) {
	c.ViewNodes.WithLabelValues(view).Observe(float64(nodes))
	c.ViewEdges.WithLabelValues(view).Observe(float64(edges))
}

// Timer measures one query execution
type Timer struct {
	observer prometheus.Observer
	start    time.Time
}

// Stop records the elapsed time
func (t *Timer) Stop() {
	t.observer.Observe(time.Since(t.start).Seconds())
}

// StartTimer starts timing a query; only the query_duration metric is timed
func (c *Collector) StartTimer(metric, label string) *Timer {
	return &Timer{
		observer: c.QueryDuration.WithLabelValues(label),
		start:    time.Now(),
	}
}

// Increment bumps a query outcome counter. Metric names follow the query bus:
// query_count, query_success and query_errors.
func (c *Collector) Increment(metric, label string) {
	switch metric {
	case "query_count":
		c.Queries.WithLabelValues(label, "started").Inc()
	case "query_success":
		c.Queries.WithLabelValues(label, "success").Inc()
	case "query_errors":
		c.Queries.WithLabelValues(label, "error").Inc()
	}
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler exposes the collector's registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
