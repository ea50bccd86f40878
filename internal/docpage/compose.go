package docpage

import (
	"strings"
	"time"
)

// Options tunes presentation.
type Options struct {
	// Locale is a BCP 47 tag used for dates and, when Labels is nil, UI strings.
	Locale string
	// Location converts last-update timestamps before formatting. Nil means UTC.
	Location *time.Location
	Labels   *Labels
	// Development marks last-update data as simulated.
	Development bool
}

// Renderer composes doc pages for one site.
type Renderer struct {
	Site     SiteConfig
	Versions VersionSource
	URLs     URLResolver
	Options  Options
}

// NewRenderer creates a Renderer resolving URLs against site. versions may be nil,
// in which case no version UI is shown.
func NewRenderer(site SiteConfig, versions VersionSource, opts Options) *Renderer {
	return &Renderer{
		Site:     site,
		Versions: versions,
		URLs:     BaseURLResolver{SiteURL: site.URL, BaseURL: site.BaseURL},
		Options:  opts,
	}
}

// Compose builds the head tags and body of content.
func (r *Renderer) Compose(content Content) *Page {
	meta := content.Metadata()
	front := content.FrontMatter()
	labels := r.labels()

	return &Page{
		Head:   r.composeHead(meta, front, labels),
		Body:   r.composeBody(content, meta, front),
		Labels: labels,
	}
}

func (r *Renderer) labels() Labels {
	if r.Options.Labels != nil {
		return *r.Options.Labels
	}
	return LabelsFor(r.Options.Locale)
}

// PageTitle is "{title} {delimiter} {site title}", or the site title when the
// doc has no title.
func (r *Renderer) PageTitle(title string) string {
	if title == "" {
		return r.Site.Title
	}
	return title + " " + r.Site.TitleDelimiter + " " + r.Site.Title
}

func (r *Renderer) composeHead(meta PageMetadata, front FrontMatter, labels Labels) HeadTags {
	metaTitle := r.PageTitle(meta.Title)
	head := HeadTags{
		{Kind: TagTitle, Text: metaTitle},
		{Kind: TagMeta, Property: "og:title", Content: metaTitle},
	}

	if meta.Description != "" {
		head = append(head,
			HeadTag{Kind: TagMeta, Name: "description", Content: meta.Description},
			HeadTag{Kind: TagMeta, Property: "og:description", Content: meta.Description},
		)
	}
	if len(front.Keywords) > 0 {
		head = append(head, HeadTag{Kind: TagMeta, Name: "keywords", Content: strings.Join(front.Keywords, ",")})
	}
	if front.Image != "" {
		imageURL := front.Image
		if r.URLs != nil {
			imageURL = r.URLs.Resolve(front.Image, true)
		}
		head = append(head,
			HeadTag{Kind: TagMeta, Property: "og:image", Content: imageURL},
			HeadTag{Kind: TagMeta, Property: "twitter:image", Content: imageURL},
			HeadTag{Kind: TagMeta, Name: "twitter:image:alt", Content: labels.TwitterImageAltLabel + " " + meta.Title},
		)
	}
	if meta.Permalink != "" {
		pageURL := r.Site.URL + meta.Permalink
		head = append(head,
			HeadTag{Kind: TagMeta, Property: "og:url", Content: pageURL},
			HeadTag{Kind: TagLink, Rel: "canonical", Href: pageURL},
		)
	}
	return head
}

func (r *Renderer) composeBody(content Content, meta PageMetadata, front FrontMatter) Body {
	body := Body{
		NarrowColumn: !front.HideTableOfContents,
		ShowTitle:    !front.HideTitle,
		Title:        meta.Title,
		Banner:       SponsorBanner,
		Content:      content.Body(),
		EditURL:      meta.EditURL,
		LastUpdated:  r.lastUpdated(meta),
		Paginator:    Paginator{Previous: meta.Previous, Next: meta.Next},
	}
	body.VersionBadge, body.VersionSuggestion = r.versionInfo(meta)

	if toc := content.TOC(); !front.HideTableOfContents && len(toc) > 0 {
		body.TOC = NestTOC(toc)
	}
	return body
}

func (r *Renderer) lastUpdated(meta PageMetadata) *LastUpdated {
	if meta.LastUpdatedAt == 0 && meta.LastUpdatedBy == "" {
		return nil
	}
	lu := &LastUpdated{By: meta.LastUpdatedBy, Simulated: r.Options.Development}
	if meta.LastUpdatedAt != 0 {
		loc := r.Options.Location
		if loc == nil {
			loc = time.UTC
		}
		at := time.Unix(meta.LastUpdatedAt, 0).In(loc)
		lu.Date = FormatDate(at, r.Options.Locale)
		lu.DateTime = isoTimestamp(at)
	}
	return lu
}

// versionInfo returns the badge, shown when several versions exist and the
// active one is not the latest, and the suggestion banner, shown whenever the
// active version is not the latest.
func (r *Renderer) versionInfo(meta PageMetadata) (*VersionBadge, *VersionSuggestion) {
	if r.Versions == nil {
		return nil, nil
	}
	pluginID, ok := r.Versions.ActivePlugin(meta.Permalink)
	if !ok {
		return nil, nil
	}
	active, ok := r.Versions.ActiveVersion(pluginID, meta.Permalink)
	if !ok || active.IsLast {
		return nil, nil
	}
	versions := r.Versions.Versions(pluginID)

	var badge *VersionBadge
	if len(versions) > 1 {
		badge = &VersionBadge{Label: active.Label}
	}

	for _, latest := range versions {
		if !latest.IsLast {
			continue
		}
		return badge, &VersionSuggestion{
			Unreleased:      active.Name == CurrentVersionName,
			SiteTitle:       r.Site.Title,
			ActiveLabel:     active.Label,
			LatestLabel:     latest.Label,
			LatestPermalink: suggestedPermalink(latest, meta.UnversionedID),
		}
	}
	return badge, nil
}

// suggestedPermalink prefers the same doc in the latest version, then that
// version's main doc, then the version root.
func suggestedPermalink(latest Version, unversionedID string) string {
	if p, ok := latest.Docs[unversionedID]; ok {
		return p
	}
	if p, ok := latest.Docs[latest.MainDocID]; ok {
		return p
	}
	return latest.Path
}
