package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the counters below.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
	OutcomeMissing = "missing"
)

// MetricsService encapsulates Prometheus instrumentation. A nil *MetricsService is a valid no-op.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	mutations       *prometheus.CounterVec
	exports         *prometheus.CounterVec
	aiGenerations   *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "state_store_operation_seconds",
		Help:    "Latency of state store reads and writes",
		Buckets: prometheus.DefBuckets,
	}, []string{"driver", "op", "outcome"})

	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_mutations_total",
		Help: "Tracker state mutations by kind",
	}, []string{"kind"})

	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_exports_total",
		Help: "CSV report exports by outcome",
	}, []string{"outcome"})

	aiGenerations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_ai_generations_total",
		Help: "AI evaluation module generations by outcome",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, mutations, exports, aiGenerations, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeDuration:   storeDuration,
		mutations:       mutations,
		exports:         exports,
		aiGenerations:   aiGenerations,
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveStoreOperation tracks a state store read or write.
func (m *MetricsService) ObserveStoreOperation(driver, op, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(driver, op, outcome).Observe(duration.Seconds())
}

// RecordMutation counts one successful tracker mutation.
func (m *MetricsService) RecordMutation(kind string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(kind).Inc()
}

// RecordExport counts one export attempt.
func (m *MetricsService) RecordExport(outcome string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(outcome).Inc()
}

// RecordAIGeneration counts one AI module generation attempt.
func (m *MetricsService) RecordAIGeneration(outcome string) {
	if m == nil {
		return
	}
	m.aiGenerations.WithLabelValues(outcome).Inc()
}
