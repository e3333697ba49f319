// Package monitoring provides Prometheus metrics for the coach service
package monitoring

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestCount    *prometheus.CounterVec

	rankRequests   *prometheus.CounterVec
	feedbackEvents prometheus.Counter
}

// NewMetrics creates and registers the service metrics on a private
// registry, so repeated construction in tests does not panic on
// duplicate registration.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		rankRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coach_rank_requests_total",
				Help: "Total ranking requests by tone of the response",
			},
			[]string{"tone"},
		),
		feedbackEvents: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "coach_feedback_events_total",
				Help: "Total feedback submissions",
			},
		),
	}

	registry.MustRegister(
		m.requestDuration,
		m.requestCount,
		m.rankRequests,
		m.feedbackEvents,
	)

	return m
}

// RecordRequest records request metrics
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	statusStr := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, statusStr).Observe(duration.Seconds())
	m.requestCount.WithLabelValues(method, path, statusStr).Inc()
}

// RecordRank counts one ranking response by tone
func (m *Metrics) RecordRank(tone string) {
	m.rankRequests.WithLabelValues(tone).Inc()
}

// RecordFeedback counts one feedback submission
func (m *Metrics) RecordFeedback() {
	m.feedbackEvents.Inc()
}

// Handler exposes the registry in Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
