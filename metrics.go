package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments exposed on /metrics.
type Metrics struct {
	CalculationsTotal *prometheus.CounterVec
	FatWarningsTotal  prometheus.Counter
	LiveSessions      prometheus.Gauge
}

// NewMetrics registers the instruments on reg. Main passes the default
// registerer; tests pass a fresh registry so repeated setup doesn't collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CalculationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "macro_calc_calculations_total",
			Help: "Total number of calculation requests by outcome",
		}, []string{"outcome"}),

		FatWarningsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "macro_calc_fat_warnings_total",
			Help: "Total number of goals whose fat target came out under 50 g/day",
		}),

		LiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "macro_calc_live_sessions",
			Help: "Currently open live-recalculation WebSocket sessions",
		}),
	}
}
