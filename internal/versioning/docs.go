package versioning

import (
	"fmt"
	"strings"

	"github.com/Freddy-Gong/react-native-website/internal/docpage"
)

// DocsOptions describes the versions of a docs plugin.
type DocsOptions struct {
	PluginID string
	// RoutePath is the URL path the docs are served from, base URL included.
	RoutePath string
	// Versions lists released versions, latest first.
	Versions              []string
	IncludeCurrentVersion bool
	// LastVersion overrides which released version is treated as latest.
	LastVersion  string
	CurrentLabel string
	// Labels overrides display labels by version name.
	Labels map[string]string
}

// NewDocsPlugin builds a plugin from opts.
//
// With released versions the latest is served at the route root, the current
// version at "<route>/next" and older ones at "<route>/<name>". Without
// released versions the current version is the latest and owns the root.
func NewDocsPlugin(opts DocsOptions) (*Plugin, error) {
	id := opts.PluginID
	if id == "" {
		id = DefaultPluginID
	}
	route := "/" + strings.Trim(opts.RoutePath, "/")

	seen := make(map[string]bool, len(opts.Versions))
	for _, name := range opts.Versions {
		switch {
		case name == "":
			return nil, fmt.Errorf("docs plugin %q: empty version name", id)
		case name == docpage.CurrentVersionName:
			return nil, fmt.Errorf("docs plugin %q: %q is reserved for the unreleased version", id, name)
		case seen[name]:
			return nil, fmt.Errorf("docs plugin %q: duplicate version %q", id, name)
		}
		seen[name] = true
	}
	if !opts.IncludeCurrentVersion && len(opts.Versions) == 0 {
		return nil, fmt.Errorf("docs plugin %q: no versions to build", id)
	}

	last := opts.LastVersion
	switch {
	case last == "" && len(opts.Versions) > 0:
		last = opts.Versions[0]
	case last == "":
		last = docpage.CurrentVersionName
	case last != docpage.CurrentVersionName && !seen[last]:
		return nil, fmt.Errorf("docs plugin %q: last version %q is not a released version", id, last)
	}

	label := func(name, fallback string) string {
		if l, ok := opts.Labels[name]; ok && l != "" {
			return l
		}
		return fallback
	}
	path := func(name string) string {
		switch {
		case name == last:
			return route
		case name == docpage.CurrentVersionName:
			return joinRoute(route, "next")
		default:
			return joinRoute(route, name)
		}
	}

	p := &Plugin{ID: id, RoutePath: route}
	if opts.IncludeCurrentVersion {
		currentLabel := opts.CurrentLabel
		if currentLabel == "" {
			currentLabel = "Next"
		}
		p.versions = append(p.versions, &docpage.Version{
			Name:   docpage.CurrentVersionName,
			Label:  label(docpage.CurrentVersionName, currentLabel),
			Path:   path(docpage.CurrentVersionName),
			IsLast: last == docpage.CurrentVersionName,
			Docs:   make(map[string]string),
		})
	}
	for _, name := range opts.Versions {
		p.versions = append(p.versions, &docpage.Version{
			Name:   name,
			Label:  label(name, name),
			Path:   path(name),
			IsLast: name == last,
			Docs:   make(map[string]string),
		})
	}
	return p, nil
}

func joinRoute(route, segment string) string {
	if route == "/" {
		return "/" + segment
	}
	return route + "/" + segment
}
