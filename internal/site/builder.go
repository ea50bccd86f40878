package site

import (
	"cmp"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Freddy-Gong/react-native-website/internal/config"
	"github.com/Freddy-Gong/react-native-website/internal/docpage"
	"github.com/Freddy-Gong/react-native-website/internal/editlink"
	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
	"github.com/Freddy-Gong/react-native-website/internal/frontmatter"
	"github.com/Freddy-Gong/react-native-website/internal/lastupdate"
	"github.com/Freddy-Gong/react-native-website/internal/logfields"
	"github.com/Freddy-Gong/react-native-website/internal/markdown"
	"github.com/Freddy-Gong/react-native-website/internal/metrics"
	"github.com/Freddy-Gong/react-native-website/internal/versioning"
)

// simulatedUpdate stands in for git history in development builds.
var simulatedUpdate = lastupdate.Info{At: time.Unix(1539502055, 0), By: "Author"}

// Builder loads and writes the site described by a configuration.
type Builder struct {
	cfg        *config.Config
	recorder   metrics.Recorder
	lastUpdate lastupdate.Source
	editLinks  editlink.Resolver
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithLastUpdateSource fixes the last-update source instead of opening the
// enclosing git repository on every load.
func WithLastUpdateSource(s lastupdate.Source) Option {
	return func(b *Builder) { b.lastUpdate = s }
}

// NewBuilder creates a Builder for cfg.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		editLinks: editlink.Resolver{
			BaseURL:            cfg.Docs.EditURL,
			DocsDir:            cfg.Docs.Path,
			VersionedDir:       cfg.Docs.VersionedPath,
			EditCurrentVersion: cfg.Docs.EditCurrentVersion,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Config returns the configuration the builder was created with.
func (b *Builder) Config() *config.Config { return b.cfg }

// Load reads every version's sources and resolves ids, permalinks and
// navigation.
func (b *Builder) Load(ctx context.Context) (*Site, error) {
	cfg := b.cfg
	plugin, err := versioning.NewDocsPlugin(versioning.DocsOptions{
		PluginID:              versioning.DefaultPluginID,
		RoutePath:             routePath(cfg.Site.BaseURL, cfg.Docs.RouteBasePath),
		Versions:              cfg.Docs.Versions,
		IncludeCurrentVersion: cfg.Docs.IncludeCurrent(),
		LastVersion:           cfg.Docs.LastVersion,
		CurrentLabel:          cfg.Docs.CurrentLabel,
		Labels:                cfg.Docs.VersionLabels,
	})
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid docs versions").Build()
	}
	registry := versioning.NewRegistry()
	registry.AddPlugin(plugin)

	source := b.lastUpdate
	if source == nil && b.showsLastUpdate() && !cfg.Build.Development {
		source = lastupdate.OpenOrNoop(cfg.Root)
	}

	md := markdown.NewRenderer(markdown.Options{
		MinHeadingLevel: cfg.Docs.TOCMinLevel,
		MaxHeadingLevel: cfg.Docs.TOCMaxLevel,
		Unsafe:          cfg.Build.UnsafeHTML,
	})

	s := &Site{Registry: registry, Plugin: plugin, bySource: make(map[string]*Doc)}
	permalinks := make(map[string]string)
	for _, name := range plugin.VersionNames() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, _ := plugin.Version(name)
		docs, err := b.loadVersion(md, source, v)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			if err := registry.AddDoc(plugin.ID, v.Name, d.Page.Meta.UnversionedID, d.Permalink()); err != nil {
				return nil, derrors.WrapError(err, derrors.CategoryContent, "conflicting doc ids").
					WithContext("path", d.Source).
					Build()
			}
			if other, dup := permalinks[d.Permalink()]; dup {
				return nil, derrors.ContentError("two docs share a permalink").
					WithContext("permalink", d.Permalink()).
					WithContext("path", d.Source).
					WithContext("other", other).
					Build()
			}
			permalinks[d.Permalink()] = d.Source
			s.bySource[d.Source] = d
		}
		if main := mainDoc(docs, v.Path); main != nil {
			_ = registry.SetMainDoc(plugin.ID, v.Name, main.Page.Meta.UnversionedID)
		}
		s.Docs = append(s.Docs, docs...)
		slog.Debug("Loaded version", logfields.Version(v.Name), logfields.Path(b.cfg.VersionDir(v.Name)), logfields.Pages(len(docs)))
	}

	s.renderer = docpage.NewRenderer(
		docpage.SiteConfig{
			URL:            cfg.Site.URL,
			BaseURL:        cfg.Site.BaseURL,
			Title:          cfg.Site.Title,
			TitleDelimiter: cfg.Site.TitleDelimiter,
		},
		registry,
		docpage.Options{
			Locale:      cfg.Site.Locale,
			Location:    cfg.Location(),
			Development: cfg.Build.Development,
		},
	)
	return s, nil
}

func (b *Builder) loadVersion(md *markdown.Renderer, source lastupdate.Source, v *docpage.Version) ([]*Doc, error) {
	dir := b.cfg.VersionDir(v.Name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, derrors.NotFoundError("version content directory not found").
			WithContext("version", v.Name).
			WithContext("path", dir).
			UserAction().
			Build()
	}
	files, err := discover(dir)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "walk docs directory").
			WithContext("path", dir).
			Build()
	}

	docs := make([]*Doc, 0, len(files))
	for _, rel := range files {
		d, err := b.loadDoc(md, source, v, dir, rel)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	sortDocs(docs)
	linkDocs(docs)
	return docs, nil
}

func (b *Builder) loadDoc(md *markdown.Renderer, source lastupdate.Source, v *docpage.Version, dir, rel string) (*Doc, error) {
	abs := filepath.Join(dir, filepath.FromSlash(rel))
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "read doc").WithContext("path", abs).Build()
	}
	fields, body, err := frontmatter.Parse(data)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryContent, "invalid frontmatter").WithContext("path", abs).Build()
	}
	fingerprint, err := frontmatter.Fingerprint(data)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryContent, "fingerprint doc").WithContext("path", abs).Build()
	}
	rendered, err := md.Render(body)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "render markdown").WithContext("path", abs).Build()
	}

	baseID, unversionedID, id := docIDs(rel, fields.ID, v.Name)
	title, hideTitle := fields.Title, fields.HideTitle
	if title == "" && rendered.Title != "" {
		// The content already shows its own heading.
		title, hideTitle = rendered.Title, true
	}
	if title == "" {
		title = baseID
	}
	description := fields.Description
	if description == "" {
		description = rendered.Excerpt
	}

	toc := make([]docpage.TOCItem, len(rendered.Headings))
	for i, h := range rendered.Headings {
		toc[i] = docpage.TOCItem{Value: h.Text, ID: h.ID, Level: h.Level}
	}

	meta := docpage.PageMetadata{
		ID:            id,
		UnversionedID: unversionedID,
		Title:         title,
		Description:   description,
		Permalink:     docPermalink(v.Path, rel, baseID, fields.Slug),
		EditURL: b.editLinks.Resolve(editlink.Target{
			Version:      v.Name,
			RelPath:      rel,
			CustomURL:    fields.CustomEditURL,
			HasCustomURL: fields.HasCustomEditURL,
		}),
		Version: v.Name,
	}
	meta.LastUpdatedAt, meta.LastUpdatedBy = b.lastUpdateFor(source, abs)

	label := fields.SidebarLabel
	if label == "" {
		label = title
	}
	return &Doc{
		Source:       abs,
		RelPath:      rel,
		Version:      v.Name,
		Fields:       fields,
		SidebarLabel: label,
		Fingerprint:  fingerprint,
		Page: docpage.Document{
			Meta: meta,
			Front: docpage.FrontMatter{
				Image:               fields.Image,
				Keywords:            []string(fields.Keywords),
				HideTitle:           hideTitle,
				HideTableOfContents: fields.HideTableOfContents,
			},
			Headings: toc,
			HTML:     rendered.HTML,
		},
	}, nil
}

func (b *Builder) showsLastUpdate() bool {
	return b.cfg.Docs.ShowLastUpdateTime || b.cfg.Docs.ShowLastUpdateAuthor
}

// lastUpdateFor returns the timestamp and author to show for file, limited to
// what the configuration asks for.
func (b *Builder) lastUpdateFor(source lastupdate.Source, file string) (int64, string) {
	if !b.showsLastUpdate() {
		return 0, ""
	}
	info := simulatedUpdate
	if !b.cfg.Build.Development {
		if source == nil {
			return 0, ""
		}
		var err error
		if info, err = source.Lookup(file); err != nil {
			slog.Warn("Last update lookup failed", logfields.Path(file), logfields.Error(err))
			return 0, ""
		}
	}

	var at int64
	var by string
	if b.cfg.Docs.ShowLastUpdateTime && !info.At.IsZero() {
		at = info.At.Unix()
	}
	if b.cfg.Docs.ShowLastUpdateAuthor {
		by = info.By
	}
	return at, by
}

// sortDocs orders docs by sidebar_position, then by path. Docs without a
// position come last.
func sortDocs(docs []*Doc) {
	slices.SortStableFunc(docs, func(a, b *Doc) int {
		pa, pb := a.Fields.SidebarPosition, b.Fields.SidebarPosition
		switch {
		case pa != nil && pb != nil:
			if c := cmp.Compare(*pa, *pb); c != 0 {
				return c
			}
		case pa != nil:
			return -1
		case pb != nil:
			return 1
		}
		return cmp.Compare(a.RelPath, b.RelPath)
	})
}

// linkDocs sets previous and next links between consecutive docs.
func linkDocs(docs []*Doc) {
	for i, d := range docs {
		if i > 0 {
			prev := docs[i-1]
			d.Page.Meta.Previous = &docpage.NavLink{Title: prev.SidebarLabel, Permalink: prev.Permalink()}
		}
		if i < len(docs)-1 {
			next := docs[i+1]
			d.Page.Meta.Next = &docpage.NavLink{Title: next.SidebarLabel, Permalink: next.Permalink()}
		}
	}
}

// mainDoc is the doc served at the version root, else the first doc.
func mainDoc(docs []*Doc, versionPath string) *Doc {
	for _, d := range docs {
		if d.Permalink() == versionPath {
			return d
		}
	}
	if len(docs) > 0 {
		return docs[0]
	}
	return nil
}
