package commands

import (
	"bufio"
	"path/filepath"

	"github.com/Freddy-Gong/react-native-website/internal/site"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File string `arg:"" help:"Doc source file (.md or .mdx)" type:"path"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	file, err := filepath.Abs(r.File)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	w := bufio.NewWriter(g.stdout())
	if err := site.NewBuilder(cfg).RenderDocument(ctx, file, w); err != nil {
		return err
	}
	return w.Flush()
}
