// Package metrics records build and preview-server metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics cost
// nothing unless a PrometheusRecorder is injected:
//
//	reg := prometheus.NewRegistry()
//	builder := site.NewBuilder(cfg, site.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
