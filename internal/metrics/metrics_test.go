package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInstrumentCountsRequests(t *testing.T) {
	m := New(prometheus.NewRegistry())
	handler := m.Instrument("/questions", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/questions", nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/questions", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestObserveQuizSelection(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveQuizSelection(OutcomeServed)
	m.ObserveQuizSelection(OutcomeServed)
	m.ObserveQuizSelection(OutcomeExhausted)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.quizSelections.WithLabelValues(OutcomeServed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.quizSelections.WithLabelValues(OutcomeExhausted)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveQuizSelection(OutcomeServed)

	called := false
	h := m.Instrument("/x", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.True(t, called)
}

func TestStatusWriterKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := NewStatusWriter(rec)
	sw.WriteHeader(http.StatusCreated)
	sw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, sw.Status())
	assert.Same(t, sw, NewStatusWriter(sw))
}
