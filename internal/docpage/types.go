package docpage

import "html/template"

// CurrentVersionName is the name of the unreleased version built from the
// working docs directory.
const CurrentVersionName = "current"

// NavLink points at a neighbouring doc.
type NavLink struct {
	Title     string
	Permalink string
}

// PageMetadata is the per-doc metadata computed by the content loader.
type PageMetadata struct {
	ID            string
	UnversionedID string
	Title         string
	Description   string
	Permalink     string
	EditURL       string
	// LastUpdatedAt is a unix timestamp in seconds; zero means unknown.
	LastUpdatedAt int64
	LastUpdatedBy string
	Version       string
	Previous      *NavLink
	Next          *NavLink
}

// FrontMatter is the subset of frontmatter flags the page reads.
type FrontMatter struct {
	Image               string
	Keywords            []string
	HideTitle           bool
	HideTableOfContents bool
}

// TOCItem is one heading anchor of the rendered content.
type TOCItem struct {
	Value string
	ID    string
	Level int
}

// Content is a rendered doc.
type Content interface {
	Metadata() PageMetadata
	FrontMatter() FrontMatter
	TOC() []TOCItem
	Body() template.HTML
}

// Document is a plain Content implementation.
type Document struct {
	Meta     PageMetadata
	Front    FrontMatter
	Headings []TOCItem
	HTML     template.HTML
}

func (d *Document) Metadata() PageMetadata   { return d.Meta }
func (d *Document) FrontMatter() FrontMatter { return d.Front }
func (d *Document) TOC() []TOCItem           { return d.Headings }
func (d *Document) Body() template.HTML      { return d.HTML }

// SiteConfig is the process-wide site configuration.
type SiteConfig struct {
	URL            string
	BaseURL        string
	Title          string
	TitleDelimiter string
}

// Version describes one version of a docs plugin.
type Version struct {
	Name   string
	Label  string
	Path   string
	IsLast bool
	// MainDocID is the unversioned id of the doc a version links to by default.
	MainDocID string
	// Docs maps unversioned doc ids to permalinks within this version.
	Docs map[string]string
}

// VersionSource resolves versioning state for a page.
type VersionSource interface {
	// ActivePlugin returns the docs plugin serving permalink.
	ActivePlugin(permalink string) (pluginID string, ok bool)
	// Versions lists the versions of a plugin.
	Versions(pluginID string) []Version
	// ActiveVersion returns the version of the plugin serving permalink.
	ActiveVersion(pluginID, permalink string) (Version, bool)
}

// URLResolver turns site-relative paths into URLs.
type URLResolver interface {
	Resolve(path string, absolute bool) string
}
