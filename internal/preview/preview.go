// Package preview serves a built site locally and rebuilds it when sources change.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	prom "github.com/prometheus/client_golang/prometheus"

	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
	"github.com/Freddy-Gong/react-native-website/internal/logfields"
	"github.com/Freddy-Gong/react-native-website/internal/metrics"
	"github.com/Freddy-Gong/react-native-website/internal/server/middleware"
	"github.com/Freddy-Gong/react-native-website/internal/site"
)

// Builder rebuilds the site.
type Builder interface {
	Build(ctx context.Context) (*site.Report, error)
}

// Options configures a Server.
type Options struct {
	Addr        string
	OutputDir   string
	BaseURL     string
	MetricsPath string
	// WatchDirs are watched recursively for changes.
	WatchDirs []string
	Debounce  time.Duration
	// RebuildInterval adds timed rebuilds when positive.
	RebuildInterval time.Duration
	Recorder        metrics.Recorder
	// Gatherer backs the metrics endpoint; nil disables it.
	Gatherer prom.Gatherer
	// LiveReload injects a script into served pages that reloads them
	// after each successful rebuild.
	LiveReload bool
	Logger     *slog.Logger
}

// buildStatus tracks the latest build outcome.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
	builds       int
}

func (bs *buildStatus) record(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.builds++
	bs.lastError = err
	if err == nil {
		bs.hasGoodBuild = true
	}
}

func (bs *buildStatus) get() (lastErr error, hasGoodBuild bool, builds int) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.hasGoodBuild, bs.builds
}

// Server is the local preview server.
type Server struct {
	builder Builder
	opts    Options
	logger  *slog.Logger
	errors  *derrors.HTTPErrorAdapter
	status  buildStatus
	// live is nil unless Options.LiveReload is set.
	live *reloadHub

	rebuildReq chan struct{}
	trigger    func()
}

// New creates a Server.
func New(builder Builder, opts Options) *Server {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "/"
	}
	s := &Server{
		builder:    builder,
		opts:       opts,
		logger:     opts.Logger,
		errors:     derrors.NewHTTPErrorAdapter(opts.Logger),
		rebuildReq: make(chan struct{}, 1),
	}
	if opts.LiveReload {
		s.live = newReloadHub(opts.Logger)
	}
	s.trigger = newDebouncer(opts.Debounce, s.rebuildReq)
	return s
}

// Handler returns the HTTP handler serving the site and metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.opts.Gatherer != nil && s.opts.MetricsPath != "" {
		mux.Handle(s.opts.MetricsPath, metrics.HTTPHandler(s.opts.Gatherer))
	}
	mux.HandleFunc("/_status", s.handleStatus)

	files := http.FileServer(http.Dir(s.opts.OutputDir))
	base := strings.TrimSuffix(s.opts.BaseURL, "/")
	var site http.Handler = files
	if base != "" {
		site = http.StripPrefix(base, files)
	}
	if s.live != nil {
		mux.HandleFunc(LiveReloadPath, s.live.serveWS)
		site = injectLiveReload(site)
	}
	mux.Handle(s.opts.BaseURL, s.siteHandler(site))

	chain := middleware.Chain(s.logger, s.errors, s.opts.Recorder)
	return chain(mux)
}

// siteHandler reports the build error instead of serving missing files
// while no build has succeeded.
func (s *Server) siteHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastErr, good, builds := s.status.get(); !good && builds > 0 && lastErr != nil {
			s.errors.WriteErrorResponse(w, r, lastErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	lastErr, good, builds := s.status.get()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if lastErr != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintf(w, "builds=%d good=%t error=%v\n", builds, good, lastErr)
		return
	}
	_, _ = fmt.Fprintf(w, "builds=%d good=%t\n", builds, good)
}

// Run builds the site, serves it and rebuilds on changes until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.rebuild(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "create file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()
	for _, dir := range s.opts.WatchDirs {
		addDirsRecursive(watcher, dir)
	}

	var sched *rebuildScheduler
	if s.opts.RebuildInterval > 0 {
		if sched, err = newRebuildScheduler(s.opts.RebuildInterval, s.rebuildReq); err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		if sched != nil {
			sched.stop()
		}
		return derrors.WrapError(err, derrors.CategoryRuntime, "listen").WithContext("addr", s.opts.Addr).Build()
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()
	s.logger.Info("Preview server listening", slog.String("url", "http://"+ln.Addr().String()+s.opts.BaseURL))

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	workerDone := s.startRebuildWorker(workerCtx)
	if sched != nil {
		sched.start()
		defer sched.stop()
	}
	err = s.loop(ctx, watcher, serveErr)
	stopWorker()

	if s.live != nil {
		s.live.closeAll()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		s.logger.Warn("HTTP server shutdown error", logfields.Error(shutdownErr))
	}
	<-workerDone
	return err
}

func (s *Server) loop(ctx context.Context, watcher *fsnotify.Watcher, serveErr <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shutting down preview server")
			return nil
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return derrors.WrapError(err, derrors.CategoryRuntime, "preview server stopped").Build()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleFileEvent(watcher, ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// startRebuildWorker processes rebuild requests one at a time. A request
// arriving during a build is remembered and runs once the build finishes.
func (s *Server) startRebuildWorker(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.rebuildReq:
				s.rebuild(ctx)
			}
		}
	}()
	return done
}

func (s *Server) rebuild(ctx context.Context) {
	report, err := s.builder.Build(ctx)
	if ctx.Err() != nil {
		return
	}
	s.status.record(err)
	if err != nil {
		s.logger.Warn("Build failed", logfields.Error(err))
		return
	}
	s.logger.Info("Site rebuilt", logfields.Pages(report.Pages), logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	if _, _, builds := s.status.get(); s.live != nil && builds > 1 {
		s.live.broadcast(reloadMessage)
	}
}

// handleFileEvent triggers a rebuild and watches newly created directories.
func (s *Server) handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(watcher, ev.Name)
		}
	}
	s.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	s.trigger()
}

// newDebouncer returns a trigger that sends on req once calls stop for d.
// req is buffered with capacity one, so requests made while a build runs
// collapse into a single pending rebuild.
func newDebouncer(d time.Duration, req chan<- struct{}) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db", base == "4913":
		return true
	}
	return false
}

// Addr formats a listen address.
func Addr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
