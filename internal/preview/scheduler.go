package preview

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
)

// rebuildScheduler queues a rebuild on a fixed interval. Queued requests
// share the channel with file events, so a tick during a build coalesces
// with whatever is already pending.
type rebuildScheduler struct {
	scheduler gocron.Scheduler
}

func newRebuildScheduler(interval time.Duration, req chan<- struct{}) (*rebuildScheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRuntime, "create rebuild scheduler").Build()
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			select {
			case req <- struct{}{}:
			default:
			}
		}),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, derrors.WrapError(err, derrors.CategoryRuntime, "schedule periodic rebuild").
			WithContext("interval", interval.String()).
			Build()
	}
	return &rebuildScheduler{scheduler: s}, nil
}

func (r *rebuildScheduler) start() {
	slog.Debug("Starting rebuild scheduler")
	r.scheduler.Start()
}

func (r *rebuildScheduler) stop() {
	if err := r.scheduler.Shutdown(); err != nil {
		slog.Warn("Rebuild scheduler shutdown error", slog.String("error", err.Error()))
	}
}
