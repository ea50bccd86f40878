// Package editlink builds "edit this page" URLs for docs.
package editlink

import (
	"path"
	"strings"

	"github.com/Freddy-Gong/react-native-website/internal/docpage"
)

// Target identifies the doc to link to.
type Target struct {
	// Version is the version name of the doc; docpage.CurrentVersionName for docs/.
	Version string
	// RelPath is the source path relative to the version's content directory.
	RelPath string
	// CustomURL is the custom_edit_url frontmatter value.
	CustomURL string
	// HasCustomURL reports that custom_edit_url was present, even if empty.
	HasCustomURL bool
}

// Resolver joins a repository base URL with a doc's source path.
type Resolver struct {
	// BaseURL is the edit URL prefix, e.g. "https://github.com/org/site/edit/main/".
	BaseURL string
	// DocsDir is the repository path of the current version's content.
	DocsDir string
	// VersionedDir is the repository path holding version-<name> directories.
	VersionedDir string
	// EditCurrentVersion points every version's link at the current docs.
	EditCurrentVersion bool
}

// Resolve returns the edit URL for t, or "" when the page has no edit link.
func (r Resolver) Resolve(t Target) string {
	if t.HasCustomURL {
		return t.CustomURL
	}
	if r.BaseURL == "" || t.RelPath == "" {
		return ""
	}

	rel := strings.TrimPrefix(path.Clean("/"+filepathToSlash(t.RelPath)), "/")
	var dir string
	if t.Version == "" || t.Version == docpage.CurrentVersionName || r.EditCurrentVersion {
		dir = defaultString(r.DocsDir, "docs")
	} else {
		dir = path.Join(defaultString(r.VersionedDir, "versioned_docs"), "version-"+t.Version)
	}
	return strings.TrimSuffix(r.BaseURL, "/") + "/" + path.Join(dir, rel)
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func defaultString(s, def string) string {
	s = strings.Trim(filepathToSlash(s), "/")
	if s == "" || s == "." {
		return def
	}
	return s
}
