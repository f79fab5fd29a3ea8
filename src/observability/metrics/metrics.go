package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "docbridge_"

var (
	registerOnce sync.Once

	exportsTotal   *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
)

// Init registers the export pipeline metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total export requests by outcome",
			},
			[]string{"outcome"},
		)
		exportDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_duration_seconds",
				Help:    "Export pipeline duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		)

		prometheus.MustRegister(exportsTotal, exportDuration)
	})
}

// ObserveExport records one export attempt. Outcome is "success" or the
// error kind of the failing step.
func ObserveExport(outcome string, duration time.Duration) {
	if exportsTotal == nil {
		return
	}
	exportsTotal.WithLabelValues(outcome).Inc()
	exportDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}
