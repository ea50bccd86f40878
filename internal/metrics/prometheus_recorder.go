package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	pageDuration  *prom.HistogramVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	pagesBuilt    prom.Gauge
	httpDuration  *prom.HistogramVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		pageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "page_render_duration_seconds",
			Help:      "Duration of rendering a single doc page",
			Buckets:   prom.ExponentialBuckets(0.001, 2, 12),
		}, []string{"version", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Site builds by final status",
		}, []string{"outcome"}),
		pagesBuilt: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pages_built",
			Help:      "Pages written by the last build",
		}),
		httpDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Preview server request duration",
			Buckets:   prom.DefBuckets,
		}, []string{"method", "status"}),
	}
	reg.MustRegister(pr.pageDuration, pr.buildDuration, pr.buildOutcome, pr.pagesBuilt, pr.httpDuration)
	return pr
}

func (p *PrometheusRecorder) ObservePageRender(version string, d time.Duration, result ResultLabel) {
	if p == nil {
		return
	}
	p.pageDuration.WithLabelValues(version, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome ResultLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetPagesBuilt(n int) {
	if p == nil {
		return
	}
	p.pagesBuilt.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}
