// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PollsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parkmap_status_polls_total",
		Help: "Status feed polls by result",
	}, []string{"result"})
	PollDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "parkmap_status_poll_duration_ms",
		Help:    "Status feed fetch duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 5000, 15000},
	})
	LayoutLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parkmap_layout_loads_total",
		Help: "Layout loads by result",
	}, []string{"result"})
	Slots = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parkmap_slots",
		Help: "Rendered slot shapes by classification",
	}, []string{"class"})
)

func init() {
	prometheus.MustRegister(PollsTotal)
	prometheus.MustRegister(PollDurationMs)
	prometheus.MustRegister(LayoutLoadsTotal)
	prometheus.MustRegister(Slots)
}

// Handler serves the registered collectors.
func Handler() http.Handler { return promhttp.Handler() }
