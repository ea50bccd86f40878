package site

import (
	"embed"
	"html/template"
	"io"

	"github.com/Freddy-Gong/react-native-website/internal/docpage"
	derrors "github.com/Freddy-Gong/react-native-website/internal/foundation/errors"
	"github.com/Freddy-Gong/react-native-website/internal/version"
)

//go:embed templates/layout.html.tmpl
var layoutFS embed.FS

var layoutTemplate = template.Must(template.ParseFS(layoutFS, "templates/layout.html.tmpl"))

type layoutData struct {
	Lang        string
	Generator   string
	Fingerprint string
	Head        template.HTML
	Body        template.HTML
}

// writeLayout wraps a composed page in the HTML document shell.
func writeLayout(w io.Writer, lang, fingerprint string, page *docpage.Page) error {
	head, body, err := page.HTML()
	if err != nil {
		return err
	}
	data := layoutData{Lang: lang, Generator: version.Version, Fingerprint: fingerprint, Head: head, Body: body}
	if err := layoutTemplate.Execute(w, data); err != nil {
		return derrors.WrapError(err, derrors.CategoryRender, "render page layout").Build()
	}
	return nil
}
