package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Freddy-Gong/react-native-website/cmd/docsite/commands"
	"github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
	"github.com/Freddy-Gong/react-native-website/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Logger: slog.Default()}
	parser := kong.Parse(cli,
		kong.Name("docsite"),
		kong.Description("Static documentation site generator for versioned docs trees"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := parser.Run(cli); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
		os.Exit(adapter.Report(os.Stderr, err))
	}
}
