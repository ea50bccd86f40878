package preview

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
	"github.com/Freddy-Gong/react-native-website/internal/metrics"
	"github.com/Freddy-Gong/react-native-website/internal/server/middleware"
	"github.com/Freddy-Gong/react-native-website/internal/site"
)

type fakeBuilder struct {
	builds atomic.Int32
	err    error
}

func (f *fakeBuilder) Build(context.Context) (*site.Report, error) {
	f.builds.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &site.Report{Pages: 1}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func outputTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	page := filepath.Join(dir, "docs", "intro", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(page), 0o750))
	require.NoError(t, os.WriteFile(page, []byte("<h1>Intro</h1>"), 0o600))
	return dir
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_ServesSiteAndMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	s := New(&fakeBuilder{}, Options{
		OutputDir:   outputTree(t),
		MetricsPath: "/metrics",
		Recorder:    metrics.NewPrometheusRecorder(reg),
		Gatherer:    reg,
		Logger:      quietLogger(),
	})
	s.rebuild(context.Background())
	h := s.Handler()

	w := get(t, h, "/docs/intro/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<h1>Intro</h1>")
	require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	require.Equal(t, http.StatusNotFound, get(t, h, "/docs/missing/").Code)

	w = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "docsite_http_request_duration_seconds")

	w = get(t, h, "/_status")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "builds=1 good=true\n", w.Body.String())
}

func TestHandler_BaseURL(t *testing.T) {
	s := New(&fakeBuilder{}, Options{OutputDir: outputTree(t), BaseURL: "/cn/", Logger: quietLogger()})
	h := s.Handler()

	require.Equal(t, http.StatusOK, get(t, h, "/cn/docs/intro/").Code)
	require.Equal(t, http.StatusNotFound, get(t, h, "/docs/intro/").Code)
	require.Equal(t, http.StatusNotFound, get(t, h, "/metrics").Code, "metrics disabled without a gatherer")
}

func TestHandler_ReportsBuildFailure(t *testing.T) {
	builder := &fakeBuilder{err: derrors.ContentError("invalid frontmatter").WithContext("path", "docs/a.md").Build()}
	s := New(builder, Options{OutputDir: t.TempDir(), Logger: quietLogger()})
	s.rebuild(context.Background())
	h := s.Handler()

	w := get(t, h, "/docs/a/")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "invalid frontmatter")

	require.Equal(t, http.StatusServiceUnavailable, get(t, h, "/_status").Code)
}

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	req := make(chan struct{}, 1)
	trigger := newDebouncer(20*time.Millisecond, req)
	for range 5 {
		trigger()
	}

	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("debounced trigger never fired")
	}
	select {
	case <-req:
		t.Fatal("triggers were not coalesced")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRun_RebuildsOnChange(t *testing.T) {
	docs := t.TempDir()
	builder := &fakeBuilder{}
	s := New(builder, Options{
		Addr:      "127.0.0.1:0",
		OutputDir: t.TempDir(),
		WatchDirs: []string{docs},
		Debounce:  20 * time.Millisecond,
		Logger:    quietLogger(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return builder.builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(docs, "intro.md"), []byte("# Intro"), 0o600)
		return builder.builds.Load() >= 2
	}, 5*time.Second, 100*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(docs, ".intro.md.swp"), []byte("x"), 0o600))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_PeriodicRebuild(t *testing.T) {
	builder := &fakeBuilder{}
	s := New(builder, Options{
		Addr:            "127.0.0.1:0",
		OutputDir:       t.TempDir(),
		RebuildInterval: 50 * time.Millisecond,
		Logger:          quietLogger(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return builder.builds.Load() >= 3 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestShouldIgnoreEvent(t *testing.T) {
	require.True(t, shouldIgnoreEvent("/tmp/.hidden.md"))
	require.True(t, shouldIgnoreEvent("/tmp/#foo#"))
	require.True(t, shouldIgnoreEvent("/tmp/foo.swp"))
	require.True(t, shouldIgnoreEvent("/tmp/foo.md~"))
	require.True(t, shouldIgnoreEvent("/tmp/.DS_Store"))
	require.False(t, shouldIgnoreEvent("/tmp/visible.md"))
}

func TestAddr(t *testing.T) {
	require.Equal(t, "127.0.0.1:3000", Addr("127.0.0.1", 3000))
	require.Equal(t, "[::1]:80", Addr("::1", 80))
}
