// ABOUTME: Prometheus collectors for the audit API
// ABOUTME: Request, report, cache and login counters served on /metrics

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry. All methods are safe on a nil receiver.
type Metrics struct {
	registry         *prometheus.Registry
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	reportsGenerated *prometheus.CounterVec
	reportCache      *prometheus.CounterVec
	loginAttempts    *prometheus.CounterVec
}

// New creates and registers the collectors, plus the Go runtime and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_http_requests_total",
			Help: "Total HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "audit_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		reportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_reports_generated_total",
			Help: "Audit reports produced by output format.",
		}, []string{"format"}),
		reportCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_report_cache_total",
			Help: "Report cache lookups by result.",
		}, []string{"result"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.reportsGenerated,
		m.reportCache,
		m.loginAttempts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ReportGenerated counts a report by format: json, pdf or preview
func (m *Metrics) ReportGenerated(format string) {
	if m == nil {
		return
	}
	m.reportsGenerated.WithLabelValues(format).Inc()
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.reportCache.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.reportCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) LoginAttempt(success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.loginAttempts.WithLabelValues(outcome).Inc()
}
