package site

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Freddy-Gong/react-native-website/internal/config"
	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
	"github.com/Freddy-Gong/react-native-website/internal/lastupdate"
	"github.com/Freddy-Gong/react-native-website/internal/metrics"
)

const baseConfig = `
site:
  url: https://reactnative.cn
  title: Site
docs:
  versions: ["0.63"]
  edit_url: https://github.com/org/site/edit/main/
`

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
}

func fixtureFiles() map[string]string {
	return map[string]string{
		"docs/intro.md": `---
title: Introduction
description: Start here.
sidebar_position: 1
keywords: [react, native]
---
Welcome.

## Overview
`,
		"docs/guides/setup.md": `---
sidebar_position: 2
sidebar_label: Setup
---
# 环境搭建

Install the toolchain.

## Requirements
`,
		"docs/_partial.md":                      "ignored",
		"docs/.hidden/x.md":                     "ignored",
		"docs/notes.txt":                        "ignored",
		"docs/faq.mdx":                          "---\ntitle: FAQ\ncustom_edit_url: null\n---\nQuestions.\n",
		"versioned_docs/version-0.63/intro.md":  "---\ntitle: Introduction\nsidebar_position: 1\n---\nOld welcome.\n",
		"versioned_docs/version-0.63/legacy.md": "---\ntitle: Legacy\nslug: /old/legacy\n---\nLegacy page.\n",
	}
}

func newFixture(t *testing.T, yaml string, files map[string]string) *config.Config {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, files)
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	cfg.Root = root
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestBuilder_Load(t *testing.T) {
	cfg := newFixture(t, baseConfig, fixtureFiles())
	s, err := NewBuilder(cfg, WithLastUpdateSource(lastupdate.Noop{})).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"current", "0.63"}, s.Plugin.VersionNames())

	current := s.DocsIn("current")
	require.Len(t, current, 3)
	intro, setup, faq := current[0], current[1], current[2]

	require.Equal(t, "intro", intro.Page.Meta.ID)
	require.Equal(t, "/docs/next/intro", intro.Permalink())
	require.Equal(t, "Introduction", intro.Page.Meta.Title)
	require.Equal(t, "Start here.", intro.Page.Meta.Description)
	require.Equal(t, []string{"react", "native"}, intro.Page.Front.Keywords)
	require.Equal(t, "https://github.com/org/site/edit/main/docs/intro.md", intro.Page.Meta.EditURL)
	require.Nil(t, intro.Page.Meta.Previous)
	require.Equal(t, "Setup", intro.Page.Meta.Next.Title)
	require.Equal(t, "/docs/next/guides/setup", intro.Page.Meta.Next.Permalink)
	require.Len(t, intro.Page.Headings, 1)

	require.Equal(t, "guides/setup", setup.Page.Meta.UnversionedID)
	require.Equal(t, "环境搭建", setup.Page.Meta.Title)
	require.True(t, setup.Page.Front.HideTitle, "title taken from the content heading")
	require.Equal(t, "Install the toolchain.", setup.Page.Meta.Description)
	require.Equal(t, "Introduction", setup.Page.Meta.Previous.Title)

	require.Equal(t, "faq", faq.Page.Meta.ID)
	require.Empty(t, faq.Page.Meta.EditURL, "custom_edit_url: null disables the link")
	require.Nil(t, faq.Page.Meta.Next)

	released := s.DocsIn("0.63")
	require.Len(t, released, 2)
	require.Equal(t, "version-0.63/intro", released[0].Page.Meta.ID)
	require.Equal(t, "/docs/intro", released[0].Permalink())
	require.Equal(t, "/docs/old/legacy", released[1].Permalink())
	require.Equal(t, "https://github.com/org/site/edit/main/versioned_docs/version-0.63/intro.md", released[0].Page.Meta.EditURL)

	latest, ok := s.Registry.ActiveVersion("default", "/docs/intro")
	require.True(t, ok)
	require.Equal(t, "intro", latest.MainDocID)
	require.Equal(t, "/docs/intro", latest.Docs["intro"])

	d, ok := s.Doc(filepath.Join(cfg.Root, "docs", "guides", "setup.md"))
	require.True(t, ok)
	require.Same(t, setup, d)
}

func TestBuilder_LoadErrors(t *testing.T) {
	t.Run("missing version directory", func(t *testing.T) {
		cfg := newFixture(t, baseConfig, map[string]string{"docs/intro.md": "Hi"})
		_, err := NewBuilder(cfg).Load(context.Background())
		require.True(t, derrors.HasCategory(err, derrors.CategoryNotFound))
	})
	t.Run("duplicate permalink", func(t *testing.T) {
		cfg := newFixture(t, "docs:\n  include_current_version: true\n", map[string]string{
			"docs/a.md": "---\nslug: /same\n---\nA",
			"docs/b.md": "---\nslug: /same\n---\nB",
		})
		_, err := NewBuilder(cfg).Load(context.Background())
		require.True(t, derrors.HasCategory(err, derrors.CategoryContent))
	})
	t.Run("invalid frontmatter", func(t *testing.T) {
		cfg := newFixture(t, "site:\n  title: Site\n", map[string]string{"docs/a.md": "---\ntitle: [\n---\n"})
		_, err := NewBuilder(cfg).Load(context.Background())
		require.True(t, derrors.HasCategory(err, derrors.CategoryContent))
	})
	t.Run("canceled", func(t *testing.T) {
		cfg := newFixture(t, baseConfig, fixtureFiles())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewBuilder(cfg).Load(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

type fakeSource map[string]lastupdate.Info

func (f fakeSource) Lookup(file string) (lastupdate.Info, error) { return f[file], nil }

func TestBuilder_LastUpdate(t *testing.T) {
	files := map[string]string{"docs/intro.md": "Hi"}
	at := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	cfg := newFixture(t, "docs:\n  show_last_update_time: true\n", files)
	source := fakeSource{filepath.Join(cfg.Root, "docs", "intro.md"): {At: at, By: "Alice"}}
	s, err := NewBuilder(cfg, WithLastUpdateSource(source)).Load(context.Background())
	require.NoError(t, err)
	meta := s.Docs[0].Page.Meta
	require.Equal(t, at.Unix(), meta.LastUpdatedAt)
	require.Empty(t, meta.LastUpdatedBy, "author not requested")

	cfg = newFixture(t, "docs:\n  show_last_update_author: true\nbuild:\n  development: true\n", files)
	s, err = NewBuilder(cfg).Load(context.Background())
	require.NoError(t, err)
	meta = s.Docs[0].Page.Meta
	require.Zero(t, meta.LastUpdatedAt)
	require.Equal(t, "Author", meta.LastUpdatedBy)

	cfg = newFixture(t, "site:\n  title: Site\n", files)
	s, err = NewBuilder(cfg, WithLastUpdateSource(source)).Load(context.Background())
	require.NoError(t, err)
	require.Zero(t, s.Docs[0].Page.Meta.LastUpdatedAt)
}

type countingRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	pages    map[string]int
	outcomes []metrics.ResultLabel
	built    int
}

func (r *countingRecorder) ObservePageRender(version string, _ time.Duration, _ metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pages == nil {
		r.pages = map[string]int{}
	}
	r.pages[version]++
}

func (r *countingRecorder) IncBuildOutcome(o metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *countingRecorder) SetPagesBuilt(n int) { r.built = n }

func TestBuilder_Build(t *testing.T) {
	cfg := newFixture(t, baseConfig, fixtureFiles())
	rec := &countingRecorder{}
	b := NewBuilder(cfg, WithRecorder(rec), WithLastUpdateSource(lastupdate.Noop{}))

	report, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, report.Pages)
	require.Equal(t, []string{"current", "0.63"}, report.Versions)
	require.Equal(t, map[string]int{"current": 3, "0.63": 2}, rec.pages)
	require.Equal(t, []metrics.ResultLabel{metrics.ResultSuccess}, rec.outcomes)
	require.Equal(t, 5, rec.built)

	out := cfg.OutputDir()
	for _, rel := range []string{"docs/next/intro", "docs/next/guides/setup", "docs/next/faq", "docs/intro", "docs/old/legacy"} {
		require.FileExists(t, filepath.Join(out, filepath.FromSlash(rel), "index.html"))
	}
	require.NoDirExists(t, out+"_stage")
	require.NoDirExists(t, out+".prev")

	page, err := os.ReadFile(filepath.Join(out, "docs", "next", "intro", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), `<html lang="zh-CN">`)
	require.Contains(t, string(page), "<title>Introduction | Site</title>")
	require.Contains(t, string(page), `<link rel="canonical" href="https://reactnative.cn/docs/next/intro">`)
	require.Contains(t, string(page), `href="/docs/intro"`, "suggests the latest version")

	latest, err := os.ReadFile(filepath.Join(out, "docs", "intro", "index.html"))
	require.NoError(t, err)
	require.NotContains(t, string(latest), "docs/next/intro")

	// A rebuild replaces the previous output.
	require.NoError(t, os.WriteFile(filepath.Join(out, "stale.html"), []byte("old"), 0o600))
	_, err = b.Build(context.Background())
	require.NoError(t, err)
	require.NoFileExists(t, filepath.Join(out, "stale.html"))
}

func TestBuilder_BuildCanceledKeepsOutput(t *testing.T) {
	cfg := newFixture(t, baseConfig, fixtureFiles())
	rec := &countingRecorder{}
	b := NewBuilder(cfg, WithRecorder(rec), WithLastUpdateSource(lastupdate.Noop{}))
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Build(ctx)
	require.True(t, derrors.HasCategory(err, derrors.CategoryRuntime))
	require.Equal(t, metrics.ResultCanceled, rec.outcomes[len(rec.outcomes)-1])
	require.FileExists(t, filepath.Join(cfg.OutputDir(), "docs", "intro", "index.html"))
}

func TestBuilder_BuildInPlace(t *testing.T) {
	cfg := newFixture(t, baseConfig+"output:\n  directory: public\n  clean: false\n", fixtureFiles())
	out := cfg.OutputDir()
	writeTree(t, out, map[string]string{"keep.txt": "kept"})

	b := NewBuilder(cfg, WithLastUpdateSource(lastupdate.Noop{}))
	report, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Zero(t, report.Unchanged)
	require.FileExists(t, filepath.Join(out, "keep.txt"))
	require.FileExists(t, filepath.Join(out, "docs", "intro", "index.html"))

	page, err := os.ReadFile(filepath.Join(out, "docs", "intro", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), `<meta name="docsite:source-fingerprint" content="`)

	// Nothing changed, so no page is rewritten.
	again, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, again.Pages, again.Unchanged)
}

func TestBuilder_RefusesOutputOverSources(t *testing.T) {
	cfg := newFixture(t, baseConfig+"output:\n  directory: .\n  clean: true\n", fixtureFiles())
	_, err := NewBuilder(cfg).Build(context.Background())
	require.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
	require.FileExists(t, filepath.Join(cfg.Root, "docs", "intro.md"))
}

func TestBuilder_RenderDocument(t *testing.T) {
	cfg := newFixture(t, baseConfig, fixtureFiles())
	b := NewBuilder(cfg, WithLastUpdateSource(lastupdate.Noop{}))

	var buf bytes.Buffer
	require.NoError(t, b.RenderDocument(context.Background(), "versioned_docs/version-0.63/legacy.md", &buf))
	require.Contains(t, buf.String(), "<title>Legacy | Site</title>")
	require.Contains(t, buf.String(), "Legacy page.")

	err := b.RenderDocument(context.Background(), "docs/_partial.md", &buf)
	require.True(t, derrors.HasCategory(err, derrors.CategoryNotFound))
}
