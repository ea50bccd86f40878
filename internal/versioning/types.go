// Package versioning tracks docs plugins and their versions, and answers which
// version serves a permalink.
package versioning

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Freddy-Gong/react-native-website/internal/docpage"
)

// DefaultPluginID is the id of the docs plugin configured by default.
const DefaultPluginID = "default"

// Plugin is one docs instance mounted at RoutePath.
type Plugin struct {
	ID        string
	RoutePath string
	versions  []*docpage.Version
}

// Version returns the version named name.
func (p *Plugin) Version(name string) (*docpage.Version, bool) {
	for _, v := range p.versions {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// LastVersion returns the latest released version.
func (p *Plugin) LastVersion() *docpage.Version {
	for _, v := range p.versions {
		if v.IsLast {
			return v
		}
	}
	return nil
}

// VersionNames lists the version names in display order.
func (p *Plugin) VersionNames() []string {
	names := make([]string, len(p.versions))
	for i, v := range p.versions {
		names[i] = v.Name
	}
	return names
}

// Registry holds the docs plugins of a site. It implements docpage.VersionSource.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]*Plugin)}
}

// AddPlugin registers p, replacing any plugin with the same id.
func (r *Registry) AddPlugin(p *Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[p.ID] = p
}

// Plugin returns the plugin with the given id.
func (r *Registry) Plugin(id string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	return p, ok
}

// AddDoc records the permalink of a doc within a version.
func (r *Registry) AddDoc(pluginID, versionName, unversionedID, permalink string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, err := r.versionLocked(pluginID, versionName)
	if err != nil {
		return err
	}
	if existing, ok := v.Docs[unversionedID]; ok && existing != permalink {
		return fmt.Errorf("duplicate doc id %q in version %q: %s and %s", unversionedID, versionName, existing, permalink)
	}
	v.Docs[unversionedID] = permalink
	return nil
}

// SetMainDoc sets the doc a version links to when a page has no counterpart.
func (r *Registry) SetMainDoc(pluginID, versionName, unversionedID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, err := r.versionLocked(pluginID, versionName)
	if err != nil {
		return err
	}
	v.MainDocID = unversionedID
	return nil
}

func (r *Registry) versionLocked(pluginID, versionName string) (*docpage.Version, error) {
	p, ok := r.plugins[pluginID]
	if !ok {
		return nil, fmt.Errorf("unknown docs plugin %q", pluginID)
	}
	v, ok := p.Version(versionName)
	if !ok {
		return nil, fmt.Errorf("unknown version %q of docs plugin %q", versionName, pluginID)
	}
	if v.Docs == nil {
		v.Docs = make(map[string]string)
	}
	return v, nil
}

// ActivePlugin returns the plugin with the longest route path containing permalink.
func (r *Registry) ActivePlugin(permalink string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	best, bestLen := "", -1
	for id, p := range r.plugins {
		if underPath(permalink, p.RoutePath) && len(p.RoutePath) > bestLen {
			best, bestLen = id, len(p.RoutePath)
		}
	}
	return best, bestLen >= 0
}

// Versions returns copies of the plugin's versions in display order.
func (r *Registry) Versions(pluginID string) []docpage.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[pluginID]
	if !ok {
		return nil
	}
	out := make([]docpage.Version, len(p.versions))
	for i, v := range p.versions {
		out[i] = *v
	}
	return out
}

// ActiveVersion returns the version with the longest path containing permalink.
func (r *Registry) ActiveVersion(pluginID, permalink string) (docpage.Version, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[pluginID]
	if !ok {
		return docpage.Version{}, false
	}
	var best *docpage.Version
	for _, v := range p.versions {
		if underPath(permalink, v.Path) && (best == nil || len(v.Path) > len(best.Path)) {
			best = v
		}
	}
	if best == nil {
		return docpage.Version{}, false
	}
	return *best, true
}

// underPath reports whether permalink equals base or lies below it.
func underPath(permalink, base string) bool {
	if base == "/" {
		return strings.HasPrefix(permalink, "/")
	}
	return permalink == base || strings.HasPrefix(permalink, base+"/")
}
