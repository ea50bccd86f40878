package docpage

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type suggestionData struct {
	Suggestion *VersionSuggestion
	Labels     Labels
}

var pageTemplates = template.Must(template.New("docpage").Funcs(template.FuncMap{
	"suggestionView": func(s *VersionSuggestion, l Labels) suggestionData {
		return suggestionData{Suggestion: s, Labels: l}
	},
}).ParseFS(templateFS, "templates/*.tmpl"))

// WriteHead writes the head elements of the page.
func (p *Page) WriteHead(w io.Writer) error {
	if err := pageTemplates.ExecuteTemplate(w, "head", p.Head); err != nil {
		return derrors.WrapError(err, derrors.CategoryRender, "render head tags").Build()
	}
	return nil
}

// WriteBody writes the article body markup.
func (p *Page) WriteBody(w io.Writer) error {
	if err := pageTemplates.ExecuteTemplate(w, "body", p); err != nil {
		return derrors.WrapError(err, derrors.CategoryRender, "render page body").
			WithContext("title", p.Body.Title).
			Build()
	}
	return nil
}

// HTML renders the head and body into template-safe fragments.
func (p *Page) HTML() (head, body template.HTML, err error) {
	var hb, bb bytes.Buffer
	if err := p.WriteHead(&hb); err != nil {
		return "", "", err
	}
	if err := p.WriteBody(&bb); err != nil {
		return "", "", err
	}
	// #nosec G203 -- produced by html/template
	return template.HTML(hb.String()), template.HTML(bb.String()), nil
}
