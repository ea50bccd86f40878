package docpage

import (
	"regexp"
	"strings"
)

var fullURLPattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.\-]*:|//)`)

// BaseURLResolver resolves paths against the site base URL.
type BaseURLResolver struct {
	SiteURL string
	BaseURL string
}

// Resolve returns path prefixed with the base URL, and with the site URL when
// absolute is set. Empty paths, fragments and full URLs are returned unchanged.
func (b BaseURLResolver) Resolve(path string, absolute bool) string {
	if path == "" || strings.HasPrefix(path, "#") || fullURLPattern.MatchString(path) {
		return path
	}

	base := b.BaseURL
	if base == "" {
		base = "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	var resolved string
	if base != "/" && strings.HasPrefix(path, base) {
		resolved = path
	} else {
		resolved = base + strings.TrimPrefix(path, "/")
	}
	if absolute {
		return strings.TrimSuffix(b.SiteURL, "/") + resolved
	}
	return resolved
}
