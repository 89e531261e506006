package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysisTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	briefingsTotal   prometheus.Counter
	reportsTotal     *prometheus.CounterVec
	exportsTotal     *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mercury",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mercury",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mercury",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	analysisTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mercury",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total completed file analyses by terminal status.",
		},
		[]string{"status"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mercury",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "File analysis duration in seconds by terminal status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)
	briefingsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mercury",
			Subsystem: "briefing",
			Name:      "generated_total",
			Help:      "Total generated briefings.",
		},
	)
	reportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mercury",
			Subsystem: "report",
			Name:      "generated_total",
			Help:      "Total generated reports by type.",
		},
		[]string{"report_type"},
	)
	exportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mercury",
			Subsystem: "export",
			Name:      "renders_total",
			Help:      "Total rendered analysis exports by format.",
		},
		[]string{"format"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysisTotal,
		analysisDuration,
		briefingsTotal,
		reportsTotal,
		exportsTotal,
	)

	return &HTTPServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		analysisTotal:    analysisTotal,
		analysisDuration: analysisDuration,
		briefingsTotal:   briefingsTotal,
		reportsTotal:     reportsTotal,
		exportsTotal:     exportsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses resource IDs so the path label stays low-cardinality.
func normalizePath(path string) string {
	for _, prefix := range []string{"/v1/files/", "/v1/reports/"} {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			if suffix := strings.IndexByte(rest, '/'); suffix >= 0 {
				return prefix + "{id}" + rest[suffix:]
			}
			return prefix + "{id}"
		}
	}
	if rest, ok := strings.CutPrefix(path, "/v1/briefings/"); ok && rest != "archive" {
		return "/v1/briefings/{id}"
	}
	return path
}

func (m *HTTPServerMetrics) RecordAnalysis(status string, duration time.Duration) {
	if status == "" {
		status = "unknown"
	}
	m.analysisTotal.WithLabelValues(status).Inc()
	m.analysisDuration.WithLabelValues(status).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordBriefing() {
	m.briefingsTotal.Inc()
}

func (m *HTTPServerMetrics) RecordReport(reportType string) {
	if reportType == "" {
		reportType = "unknown"
	}
	m.reportsTotal.WithLabelValues(reportType).Inc()
}

func (m *HTTPServerMetrics) RecordExport(format string) {
	if format == "" {
		format = "unknown"
	}
	m.exportsTotal.WithLabelValues(format).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
