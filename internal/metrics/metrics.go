package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	Registry      *prometheus.Registry
	Clicks        prometheus.Counter
	ColorChanges  prometheus.Counter
	NotFound      *prometheus.CounterVec
	ActivePages   prometheus.Gauge
	SSEClients    prometheus.Gauge
	WSClients     prometheus.Gauge
	DroppedClicks prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Clicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "colorchanger",
			Name:      "clicks_total",
			Help:      "Clicks dispatched to the color control.",
		}),
		ColorChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "colorchanger",
			Name:      "color_changes_total",
			Help:      "Background colors applied to a document body.",
		}),
		NotFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "colorchanger",
			Name:      "element_not_found_total",
			Help:      "Element lookups that failed, by element id.",
		}, []string{"element"}),
		ActivePages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "colorchanger",
			Name:      "active_pages",
			Help:      "Pages currently hosted.",
		}),
		SSEClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "colorchanger",
			Name:      "sse_clients",
			Help:      "Open server-sent event streams.",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "colorchanger",
			Name:      "ws_clients",
			Help:      "Open websocket connections.",
		}),
		DroppedClicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "colorchanger",
			Name:      "dropped_click_records_total",
			Help:      "Click records dropped because the write buffer was full.",
		}),
	}
	reg.MustRegister(
		m.Clicks,
		m.ColorChanges,
		m.NotFound,
		m.ActivePages,
		m.SSEClients,
		m.WSClients,
		m.DroppedClicks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Click() { m.Clicks.Inc() }

func (m *Metrics) ColorChanged() { m.ColorChanges.Inc() }

func (m *Metrics) ElementNotFound(id string) { m.NotFound.WithLabelValues(id).Inc() }
