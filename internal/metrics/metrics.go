// Package metrics exposes conversion counters on the default Prometheus
// registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Piqzaa/HTML-to-Twig/internal/report"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultCache = "cache"
)

var (
	conversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "html2twig_conversions_total",
		Help: "Conversions by target and result",
	}, []string{"target", "result"})

	conversionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "html2twig_conversion_duration_seconds",
		Help:    "Conversion duration",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"target"})

	assetsRewritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "html2twig_assets_rewritten_total",
		Help: "Asset references rewritten",
	}, []string{"target"})

	loopsConverted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "html2twig_loops_converted_total",
		Help: "Loops emitted into templates",
	}, []string{"target"})
)

// ObserveConversion records one finished conversion. rep may be nil when
// the conversion failed before producing a report.
func ObserveConversion(target string, d time.Duration, rep *report.Report, err error) {
	if err != nil {
		conversionsTotal.WithLabelValues(target, ResultError).Inc()
		return
	}
	conversionsTotal.WithLabelValues(target, ResultOK).Inc()
	conversionDuration.WithLabelValues(target).Observe(d.Seconds())
	if rep != nil {
		assetsRewritten.WithLabelValues(target).Add(float64(len(rep.Assets)))
		loopsConverted.WithLabelValues(target).Add(float64(len(rep.Loops)))
	}
}

// ObserveCacheHit records a conversion answered from the result cache.
func ObserveCacheHit(target string) {
	conversionsTotal.WithLabelValues(target, ResultCache).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
