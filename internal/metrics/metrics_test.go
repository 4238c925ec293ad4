package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}

func TestNew_CountersStartAtZero(t *testing.T) {
	m := New()
	assert.Zero(t, value(t, m.Clicks))

	m.Clicks.Inc()
	m.NotFound.WithLabelValues("body").Inc()
	assert.Equal(t, 1.0, value(t, m.Clicks))
	assert.Equal(t, 1.0, value(t, m.NotFound.WithLabelValues("body")))
}

func TestRecorder(t *testing.T) {
	m := New()
	m.Click()
	m.Click()
	m.ColorChanged()
	m.ElementNotFound("colorButton")

	assert.Equal(t, 2.0, value(t, m.Clicks))
	assert.Equal(t, 1.0, value(t, m.ColorChanges))
	assert.Equal(t, 1.0, value(t, m.NotFound.WithLabelValues("colorButton")))
	assert.Zero(t, value(t, m.NotFound.WithLabelValues("body")))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.ColorChanges.Add(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "colorchanger_color_changes_total 3")
}

func TestNew_Independent(t *testing.T) {
	// separate registries must not collide
	a := New()
	b := New()
	a.Clicks.Inc()
	assert.Zero(t, value(t, b.Clicks))
}
