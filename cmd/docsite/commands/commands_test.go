package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	_, err := runOutput(t, args...)
	return err
}

func runOutput(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := &CLI{}
	g := &Global{Out: &out}
	parser, err := kong.New(cli, kong.Name("docsite"), kong.Bind(g), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = ctx.Run(cli)
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")

	require.NoError(t, run(t, "--config", cfgPath, "init"))
	require.FileExists(t, cfgPath)

	err := run(t, "--config", cfgPath, "init")
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryValidation))

	require.NoError(t, run(t, "--config", cfgPath, "init", "--force"))
}

func TestInitCmd_OutputDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", "-o", dir))
	require.FileExists(t, filepath.Join(dir, "docsite.yaml"))
}

func TestBuildCmd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	writeFile(t, cfgPath, "site:\n  url: https://example.com\n  title: Example\n  locale: en\nlogging:\n  format: json\n")
	writeFile(t, filepath.Join(dir, "docs", "intro.md"), "---\ntitle: Intro\n---\n\nHello.\n")

	out := filepath.Join(dir, "public")
	summary, err := runOutput(t, "-c", cfgPath, "build", "-o", out)
	require.NoError(t, err)
	require.Equal(t, "Built 1 pages across 1 versions into "+out+"\n", summary)
	require.FileExists(t, filepath.Join(out, "docs", "intro", "index.html"))
}

func TestBuildCmd_MissingConfig(t *testing.T) {
	err := run(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "build")
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryNotFound))
}

func TestRenderCmd_UnknownFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	writeFile(t, cfgPath, "site:\n  url: https://example.com\n  locale: en\n")
	writeFile(t, filepath.Join(dir, "docs", "intro.md"), "# Intro\n")

	err := run(t, "-c", cfgPath, "render", filepath.Join(dir, "docs", "other.md"))
	require.Error(t, err)
	require.True(t, derrors.HasCategory(err, derrors.CategoryNotFound))
}

func TestRenderCmd_WritesPage(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	writeFile(t, cfgPath, "site:\n  url: https://example.com\n  title: Example\n  locale: en\n")
	writeFile(t, filepath.Join(dir, "docs", "intro.md"), "---\ntitle: Intro\n---\n\nHello.\n")

	page, err := runOutput(t, "-c", cfgPath, "render", filepath.Join(dir, "docs", "intro.md"))
	require.NoError(t, err)
	require.Contains(t, page, "<title>Intro | Example</title>")
}
