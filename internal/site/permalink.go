package site

import (
	"path"
	"strings"

	"github.com/Freddy-Gong/react-native-website/internal/docpage"
)

// docIDs derives the unversioned and versioned ids of a source file. The
// frontmatter id replaces the file name but keeps the directory.
func docIDs(relPath, frontmatterID, version string) (baseID, unversionedID, id string) {
	dir := path.Dir(relPath)
	baseID = frontmatterID
	if baseID == "" {
		baseID = strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))
	}
	unversionedID = baseID
	if dir != "." {
		unversionedID = dir + "/" + baseID
	}
	id = unversionedID
	if version != docpage.CurrentVersionName {
		id = "version-" + version + "/" + unversionedID
	}
	return baseID, unversionedID, id
}

// docPermalink places a doc under its version path. An absolute slug is
// taken from the version root, a relative one from the doc's directory.
func docPermalink(versionPath, relPath, baseID, slug string) string {
	dir := path.Dir(relPath)
	if dir == "." {
		dir = ""
	}
	var p string
	switch {
	case strings.HasPrefix(slug, "/"):
		p = path.Clean(slug)
	case slug != "":
		p = path.Join("/", dir, slug)
	default:
		p = path.Join("/", dir, baseID)
	}
	switch {
	case p == "/":
		return versionPath
	case versionPath == "/":
		return p
	default:
		return versionPath + p
	}
}

// routePath joins the site base URL and the docs route base path.
func routePath(baseURL, routeBase string) string {
	return path.Join("/", baseURL, routeBase)
}
