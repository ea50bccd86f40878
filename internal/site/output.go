package site

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
	"github.com/Freddy-Gong/react-native-website/internal/logfields"
)

// output is the directory pages are written to during a build.
type output struct {
	final string
	// dir equals final when the build writes in place.
	dir string
}

// beginOutput prepares the write target. With output.clean the site is
// rendered into a sibling staging directory that replaces the output once
// the build succeeds. Without it pages are written over the existing output.
func (b *Builder) beginOutput() (*output, error) {
	final := b.cfg.OutputDir()
	if err := b.checkOutputDir(final); err != nil {
		return nil, err
	}
	if !b.cfg.Output.Clean {
		if err := os.MkdirAll(final, 0o750); err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "create output directory").WithContext("path", final).Build()
		}
		return &output{final: final, dir: final}, nil
	}

	stage := final + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "clear staging directory").WithContext("path", stage).Build()
	}
	if err := os.MkdirAll(stage, 0o750); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "create staging directory").WithContext("path", stage).Build()
	}
	slog.Debug("Initialized staging directory", logfields.Path(stage), logfields.Output(final))
	return &output{final: final, dir: stage}, nil
}

// checkOutputDir refuses output locations that would clobber sources.
func (b *Builder) checkOutputDir(final string) error {
	for _, protected := range []string{b.cfg.Root, b.cfg.DocsDir(), b.cfg.VersionedDir()} {
		if protected == "" {
			continue
		}
		if final == protected || within(protected, final) {
			return derrors.ConfigError("output directory overlaps the docs sources").
				WithContext("output", final).
				WithContext("path", protected).
				UserAction().
				Build()
		}
	}
	return nil
}

// within reports whether child lies inside parent.
func within(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	return err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (o *output) inPlace() bool { return o.dir == o.final }

// finish promotes the staging directory: the old output moves to
// <output>.prev, staging is renamed into place and the backup removed.
func (o *output) finish() error {
	if o.dir == o.final {
		return nil
	}
	prev := o.final + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "remove previous backup").WithContext("path", prev).Build()
	}
	if _, err := os.Stat(o.final); err == nil {
		if err := os.Rename(o.final, prev); err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "back up previous output").WithContext("path", o.final).Build()
		}
	}
	if err := os.MkdirAll(filepath.Dir(o.final), 0o750); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "create output parent").WithContext("path", o.final).Build()
	}
	if err := os.Rename(o.dir, o.final); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "promote staging directory").WithContext("path", o.dir).Build()
	}
	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous output", logfields.Path(prev), logfields.Error(err))
	}
	return nil
}

func (o *output) abort() {
	if o.dir == o.final {
		return
	}
	if err := os.RemoveAll(o.dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", logfields.Path(o.dir), logfields.Error(err))
	}
}
