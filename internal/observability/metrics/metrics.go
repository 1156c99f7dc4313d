package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics carries the service-local prometheus registry plus the narration
// pipeline instruments.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	normalizationsTotal  *prometheus.CounterVec
	fetchRejectionsTotal *prometheus.CounterVec
	extractionFailures   *prometheus.CounterVec
	narrationDuration    *prometheus.HistogramVec
	audioBytesTotal      prometheus.Counter
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reader",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reader",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reader",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	normalizationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reader",
			Subsystem: "pipeline",
			Name:      "normalizations_total",
			Help:      "Completed normalizations by resulting modality.",
		},
		[]string{"service", "modality"},
	)
	fetchRejectionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reader",
			Subsystem: "pipeline",
			Name:      "fetch_rejections_total",
			Help:      "URL fetches refused or failed, by reason.",
		},
		[]string{"service", "reason"},
	)
	extractionFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reader",
			Subsystem: "pipeline",
			Name:      "extraction_failures_total",
			Help:      "Extractions degraded to placeholder text, by extension.",
		},
		[]string{"service", "ext"},
	)
	narrationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reader",
			Subsystem: "pipeline",
			Name:      "narration_duration_seconds",
			Help:      "End-to-end narration duration by entry point.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"service", "entry"},
	)
	audioBytesTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reader",
			Subsystem: "pipeline",
			Name:      "audio_bytes_total",
			Help:      "Total synthesized audio bytes returned to clients.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		normalizationsTotal,
		fetchRejectionsTotal,
		extractionFailures,
		narrationDuration,
		audioBytesTotal,
	)

	return &Metrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		normalizationsTotal:  normalizationsTotal,
		fetchRejectionsTotal: fetchRejectionsTotal,
		extractionFailures:   extractionFailures,
		narrationDuration:    narrationDuration,
		audioBytesTotal:      audioBytesTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
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
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) RecordNormalization(service, modality string) {
	if modality == "" {
		modality = "unknown"
	}
	m.normalizationsTotal.WithLabelValues(service, modality).Inc()
}

func (m *Metrics) RecordFetchRejection(service, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.fetchRejectionsTotal.WithLabelValues(service, reason).Inc()
}

func (m *Metrics) RecordExtractionFailure(service, ext string) {
	if ext == "" {
		ext = "none"
	}
	m.extractionFailures.WithLabelValues(service, ext).Inc()
}

func (m *Metrics) RecordNarration(service, entry string, duration time.Duration, audioBytes int) {
	m.narrationDuration.WithLabelValues(service, entry).Observe(duration.Seconds())
	if audioBytes > 0 {
		m.audioBytesTotal.Add(float64(audioBytes))
	}
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
