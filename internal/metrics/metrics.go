// Package metrics owns the Prometheus collectors exported at /metrics.
package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Quiz selection outcomes.
const (
	OutcomeServed    = "served"
	OutcomeExhausted = "exhausted"
	OutcomeFailed    = "failed"
)

// Metrics groups the service collectors.
type Metrics struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	quizSelections *prometheus.CounterVec
}

// New registers collectors on reg. Pass prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trivia_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trivia_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quizSelections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trivia_quiz_selections_total",
			Help: "Quiz next-question selections by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveQuizSelection counts one selection outcome. Safe on a nil receiver.
func (m *Metrics) ObserveQuizSelection(outcome string) {
	if m == nil {
		return
	}
	m.quizSelections.WithLabelValues(outcome).Inc()
}

// Instrument wraps next, recording request count and latency under route.
func (m *Metrics) Instrument(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := NewStatusWriter(w)

		next.ServeHTTP(sw, r)

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(sw.Status())).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// StatusWriter captures the response status code.
type StatusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

// NewStatusWriter wraps w with a default status of 200.
func NewStatusWriter(w http.ResponseWriter) *StatusWriter {
	if sw, ok := w.(*StatusWriter); ok {
		return sw
	}
	return &StatusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *StatusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Status returns the captured status code.
func (w *StatusWriter) Status() int { return w.status }

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *StatusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Hijack lets WebSocket upgrades pass through the wrapper.
func (w *StatusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}
