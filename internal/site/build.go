package site

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
	"github.com/Freddy-Gong/react-native-website/internal/logfields"
	"github.com/Freddy-Gong/react-native-website/internal/metrics"
)

// Report summarizes a build.
type Report struct {
	Output string
	Pages  int
	// Unchanged counts pages skipped by an in-place build because the
	// existing file already held the same bytes.
	Unchanged int
	Versions  []string
	Start     time.Time
	Duration  time.Duration
}

// Build loads the site and writes every page. Cancellation is checked
// between pages; a failed or canceled build leaves the previous output in
// place when output.clean is set.
func (b *Builder) Build(ctx context.Context) (report *Report, err error) {
	report = &Report{Output: b.cfg.OutputDir(), Start: time.Now()}
	defer func() {
		report.Duration = time.Since(report.Start)
		b.recorder.ObserveBuildDuration(report.Duration)
		b.recorder.IncBuildOutcome(metrics.ResultFor(err, err != nil && ctx.Err() != nil))
		if err == nil {
			b.recorder.SetPagesBuilt(report.Pages)
		}
	}()

	s, err := b.Load(ctx)
	if err != nil {
		return report, canceledOr(ctx, err)
	}
	report.Versions = s.Plugin.VersionNames()

	out, err := b.beginOutput()
	if err != nil {
		return report, err
	}
	for _, d := range s.Docs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			out.abort()
			return report, canceledOr(ctx, ctxErr)
		}
		written, err := b.writeDoc(s, d, out.dir, out.inPlace())
		if err != nil {
			out.abort()
			return report, err
		}
		report.Pages++
		if !written {
			report.Unchanged++
		}
	}
	if err := out.finish(); err != nil {
		return report, err
	}

	slog.Info("Site built",
		logfields.Output(report.Output),
		logfields.Pages(report.Pages),
		slog.Int("unchanged", report.Unchanged),
		slog.Any("versions", report.Versions),
		logfields.DurationMS(float64(time.Since(report.Start).Microseconds())/1000))
	return report, nil
}

// RenderDocument renders the page of one source file to w. relPath is
// relative to the configuration root.
func (b *Builder) RenderDocument(ctx context.Context, relPath string, w io.Writer) error {
	s, err := b.Load(ctx)
	if err != nil {
		return canceledOr(ctx, err)
	}
	source, err := filepath.Abs(b.cfg.Resolve(relPath))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "resolve doc path").Build()
	}
	d, ok := s.Doc(source)
	if !ok {
		return derrors.NotFoundError("no doc is built from this file").
			WithContext("path", relPath).
			UserAction().
			Build()
	}
	return b.renderDoc(s, d, w)
}

func (b *Builder) renderDoc(s *Site, d *Doc, w io.Writer) error {
	start := time.Now()
	page := s.renderer.Compose(&d.Page)
	err := writeLayout(w, b.cfg.Site.Locale, d.Fingerprint, page)
	b.recorder.ObservePageRender(d.Version, time.Since(start), metrics.ResultFor(err, false))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRender, "render page").
			WithContext("path", d.Source).
			Build()
	}
	return nil
}

// writeDoc renders d under root. With skipUnchanged an existing file holding
// identical bytes is left untouched so its modification time survives.
func (b *Builder) writeDoc(s *Site, d *Doc, root string, skipUnchanged bool) (bool, error) {
	target := outputFile(root, b.cfg.Site.BaseURL, d.Permalink())
	var buf bytes.Buffer
	if err := b.renderDoc(s, d, &buf); err != nil {
		return false, err
	}
	if skipUnchanged {
		if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, buf.Bytes()) { // #nosec G304 -- target derived from the output directory
			slog.Debug("Page unchanged", logfields.DocID(d.Page.Meta.ID), logfields.Path(target))
			return false, nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "create page directory").WithContext("path", target).Build()
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil { // #nosec G306 -- published site content
		return false, derrors.WrapError(err, derrors.CategoryFileSystem, "write page file").WithContext("path", target).Build()
	}
	slog.Debug("Wrote page", logfields.DocID(d.Page.Meta.ID), logfields.Permalink(d.Permalink()), logfields.Path(target))
	return true, nil
}

// outputFile maps a permalink to <root>/<permalink without base URL>/index.html.
func outputFile(root, baseURL, permalink string) string {
	rel := strings.TrimPrefix(permalink, strings.TrimSuffix(baseURL, "/"))
	rel = strings.Trim(rel, "/")
	return filepath.Join(root, filepath.FromSlash(rel), "index.html")
}

func canceledOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return derrors.WrapError(ctxErr, derrors.CategoryRuntime, "build canceled").Build()
	}
	return err
}
