package docpage

import "html/template"

// TagKind is the element type of a head tag.
type TagKind string

const (
	TagTitle TagKind = "title"
	TagMeta  TagKind = "meta"
	TagLink  TagKind = "link"
)

// HeadTag is one element placed in the document head.
type HeadTag struct {
	Kind     TagKind
	Name     string // meta name attribute
	Property string // meta property attribute
	Content  string
	Rel      string
	Href     string
	Text     string // title text
}

// HeadTags is the ordered set of head elements of a page.
type HeadTags []HeadTag

// Title returns the text of the title tag.
func (h HeadTags) Title() string {
	for _, t := range h {
		if t.Kind == TagTitle {
			return t.Text
		}
	}
	return ""
}

// Meta returns the content of the meta tag whose name or property is key.
func (h HeadTags) Meta(key string) (string, bool) {
	for _, t := range h {
		if t.Kind == TagMeta && (t.Name == key || t.Property == key) {
			return t.Content, true
		}
	}
	return "", false
}

// Link returns the href of the first link tag with the given rel.
func (h HeadTags) Link(rel string) (string, bool) {
	for _, t := range h {
		if t.Kind == TagLink && t.Rel == rel {
			return t.Href, true
		}
	}
	return "", false
}

// VersionBadge labels a page that belongs to a non-latest version.
type VersionBadge struct {
	Label string
}

// VersionSuggestion points readers of an old or unreleased version at the
// latest one.
type VersionSuggestion struct {
	Unreleased      bool
	SiteTitle       string
	ActiveLabel     string
	LatestLabel     string
	LatestPermalink string
}

// Banner is the fixed promotional link shown above every article.
type Banner struct {
	Href   string
	Title  string
	Text   string
	Action string
}

// SponsorBanner is the banner content. It is not configurable.
var SponsorBanner = Banner{
	Href:   "https://datayi.cn/w/Yo1vDOv9",
	Title:  "React 实战教程",
	Text:   "深入学习一线大厂必备前端技能，VIP 教程限时免费领取。",
	Action: "立即查看 >",
}

// LastUpdated is the last-update line of the metadata row.
type LastUpdated struct {
	// Date is the localized date; empty when only the author is known.
	Date      string
	DateTime  string
	By        string
	Simulated bool
}

// Paginator holds the previous/next links of a page.
type Paginator struct {
	Previous *NavLink
	Next     *NavLink
}

// Body is the article body model.
type Body struct {
	// NarrowColumn is set when the TOC column is reserved next to the article.
	NarrowColumn      bool
	VersionSuggestion *VersionSuggestion
	VersionBadge      *VersionBadge
	ShowTitle         bool
	Title             string
	Banner            Banner
	Content           template.HTML
	EditURL           string
	LastUpdated       *LastUpdated
	Paginator         Paginator
	TOC               []*TOCNode
}

// HasMetadataRow reports whether the edit/last-updated row is rendered.
func (b Body) HasMetadataRow() bool {
	return b.EditURL != "" || b.LastUpdated != nil
}

// Page is a composed doc page.
type Page struct {
	Head   HeadTags
	Body   Body
	Labels Labels
}
