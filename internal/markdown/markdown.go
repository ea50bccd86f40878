// Package markdown renders doc bodies to HTML and extracts the heading outline
// used for the table of contents.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Options controls rendering.
type Options struct {
	// MinHeadingLevel and MaxHeadingLevel bound the headings collected for the
	// table of contents. Zero values mean 2 and 3.
	MinHeadingLevel int
	MaxHeadingLevel int
	// Unsafe skips HTML sanitizing and lets raw HTML in Markdown through.
	Unsafe bool
}

// Heading is one entry of the document outline.
type Heading struct {
	Text  string
	ID    string
	Level int
}

// Rendered is the result of rendering a Markdown body.
type Rendered struct {
	HTML     template.HTML
	Headings []Heading
	// Title is the text of the first level-1 heading.
	Title string
	// Excerpt is the plain text of the first paragraph.
	Excerpt string
}

// Renderer converts Markdown bodies. It is safe for concurrent use.
type Renderer struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	minLevel int
	maxLevel int
}

var headingIDPattern = regexp.MustCompile(`^[\p{L}\p{N}_:.\-]+$`)

// NewRenderer creates a Renderer from opts.
func NewRenderer(opts Options) *Renderer {
	minLevel, maxLevel := opts.MinHeadingLevel, opts.MaxHeadingLevel
	if minLevel <= 0 {
		minLevel = 2
	}
	if maxLevel <= 0 {
		maxLevel = 3
	}
	if maxLevel < minLevel {
		maxLevel = minLevel
	}

	rendererOpts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	var policy *bluemonday.Policy
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	} else {
		policy = bluemonday.UGCPolicy()
		policy.AllowAttrs("id").Matching(headingIDPattern).OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
		policy.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9 _\-]+$`)).OnElements("code", "a", "div", "hr", "ol", "sup", "section")
	}

	return &Renderer{
		md:       goldmark.New(rendererOpts...),
		policy:   policy,
		minLevel: minLevel,
		maxLevel: maxLevel,
	}
}

// Render parses body (frontmatter already removed) and renders it to HTML.
func (r *Renderer) Render(body []byte) (*Rendered, error) {
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	root := r.md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	out := &Rendered{}
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 && out.Title == "" {
				out.Title = plainText(node, body)
			}
			if node.Level >= r.minLevel && node.Level <= r.maxLevel {
				out.Headings = append(out.Headings, Heading{
					Text:  plainText(node, body),
					ID:    headingID(node),
					Level: node.Level,
				})
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.Paragraph:
			if out.Excerpt == "" && node.Parent() == root {
				out.Excerpt = plainText(node, body)
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, body, root); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	rendered := buf.Bytes()
	if r.policy != nil {
		rendered = r.policy.SanitizeBytes(rendered)
	}
	out.HTML = template.HTML(rendered) // #nosec G203 -- sanitized above unless Unsafe was requested
	return out, nil
}

func headingID(n *gmast.Heading) string {
	v, ok := n.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

// plainText concatenates the text segments below n, dropping markup.
func plainText(n gmast.Node, source []byte) string {
	var sb strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *gmast.String:
			sb.Write(t.Value)
		case *gmast.CodeSpan:
			for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
				if seg, ok := cc.(*gmast.Text); ok {
					sb.Write(seg.Segment.Value(source))
				}
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// headingIDs slugs heading text the way Docusaurus anchors do: lower-cased,
// letters and digits of any script kept, spaces turned into hyphens and
// repeats suffixed with -1, -2 and so on. One instance serves one document.
type headingIDs struct {
	seen map[string]bool
}

func newHeadingIDs() *headingIDs { return &headingIDs{seen: map[string]bool{}} }

func (h *headingIDs) Generate(value []byte, _ gmast.NodeKind) []byte {
	base := slugify(string(value))
	if base == "" {
		base = "heading"
	}
	id := base
	for i := 1; h.seen[id]; i++ {
		id = fmt.Sprintf("%s-%d", base, i)
	}
	h.seen[id] = true
	return []byte(id)
}

// Put records an explicitly assigned id.
func (h *headingIDs) Put(value []byte) { h.seen[string(value)] = true }

func slugify(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
