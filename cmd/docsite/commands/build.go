package commands

import (
	"fmt"
	"path/filepath"

	"github.com/Freddy-Gong/react-native-website/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory (overrides output.directory)"`
	Dev    bool   `name:"dev" help:"Development mode: simulated last-update info"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if b.Output != "" {
		out, absErr := filepath.Abs(b.Output)
		if absErr != nil {
			return absErr
		}
		cfg.Output.Directory = out
	}
	if b.Dev {
		cfg.Build.Development = true
	}

	ctx, stop := signalContext()
	defer stop()

	report, err := site.NewBuilder(cfg).Build(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.stdout(), "Built %d pages across %d versions into %s\n", report.Pages, len(report.Versions), report.Output)
	return nil
}
