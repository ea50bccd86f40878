package commands

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Freddy-Gong/react-native-website/internal/metrics"
	"github.com/Freddy-Gong/react-native-website/internal/preview"
	"github.com/Freddy-Gong/react-native-website/internal/site"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Host string `help:"Listen host (overrides preview.host)"`
	Port int    `short:"p" help:"Listen port (overrides preview.port)"`

	NoLiveReload bool `name:"no-livereload" help:"Do not reload open pages after a rebuild"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if s.Host != "" {
		cfg.Preview.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Preview.Port = s.Port
	}
	cfg.Build.Development = true

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheusRecorder(reg)

	watch := []string{cfg.DocsDir()}
	if info, statErr := os.Stat(cfg.VersionedDir()); statErr == nil && info.IsDir() {
		watch = append(watch, cfg.VersionedDir())
	}

	ctx, stop := signalContext()
	defer stop()

	srv := preview.New(site.NewBuilder(cfg, site.WithRecorder(recorder)), preview.Options{
		Addr:            preview.Addr(cfg.Preview.Host, cfg.Preview.Port),
		OutputDir:       cfg.OutputDir(),
		BaseURL:         cfg.Site.BaseURL,
		MetricsPath:     cfg.Preview.MetricsPath,
		WatchDirs:       watch,
		Debounce:        cfg.Preview.Debounce,
		RebuildInterval: cfg.Preview.RebuildInterval,
		Recorder:        recorder,
		Gatherer:        reg,
		LiveReload:      !s.NoLiveReload,
		Logger:          g.Logger,
	})
	return srv.Run(ctx)
}
