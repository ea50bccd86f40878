// Package site turns a versioned docs tree into a static site.
//
// A build loads every version's Markdown sources, derives ids, permalinks
// and navigation, registers the docs with the version registry and writes
// one index.html per doc through the page-shell layout. Output is rendered
// into a sibling staging directory and promoted once every page succeeded.
package site
