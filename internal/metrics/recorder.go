package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for site builds and the preview server.
type Recorder interface {
	ObservePageRender(version string, d time.Duration, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome ResultLabel)
	SetPagesBuilt(n int)
	ObserveHTTPRequest(method string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePageRender(string, time.Duration, ResultLabel) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                   {}
func (NoopRecorder) IncBuildOutcome(ResultLabel)                          {}
func (NoopRecorder) SetPagesBuilt(int)                                    {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration)        {}

// ResultFor maps an error onto a result label.
func ResultFor(err error, canceled bool) ResultLabel {
	switch {
	case canceled:
		return ResultCanceled
	case err != nil:
		return ResultFailed
	default:
		return ResultSuccess
	}
}
