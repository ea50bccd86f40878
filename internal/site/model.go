package site

import (
	"github.com/Freddy-Gong/react-native-website/internal/docpage"
	"github.com/Freddy-Gong/react-native-website/internal/frontmatter"
	"github.com/Freddy-Gong/react-native-website/internal/versioning"
)

// Doc is one loaded source file.
type Doc struct {
	// Source is the absolute path of the Markdown file.
	Source string
	// RelPath is the slash-separated path relative to the version directory.
	RelPath      string
	Version      string
	Fields       frontmatter.Fields
	SidebarLabel string
	// Fingerprint identifies the source content (frontmatter and body).
	Fingerprint string
	Page        docpage.Document
}

// Permalink is the URL path the doc is served at.
func (d *Doc) Permalink() string { return d.Page.Meta.Permalink }

// Site is the loaded docs tree with its navigation resolved.
type Site struct {
	Registry *versioning.Registry
	Plugin   *versioning.Plugin
	// Docs lists docs grouped by version in display order.
	Docs []*Doc

	renderer *docpage.Renderer
	bySource map[string]*Doc
}

// Doc returns the doc loaded from source, an absolute path.
func (s *Site) Doc(source string) (*Doc, bool) {
	d, ok := s.bySource[source]
	return d, ok
}

// DocsIn returns the docs of one version in sidebar order.
func (s *Site) DocsIn(version string) []*Doc {
	var out []*Doc
	for _, d := range s.Docs {
		if d.Version == version {
			out = append(out, d)
		}
	}
	return out
}
