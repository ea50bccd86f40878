// Package docpage composes a single documentation article page.
//
// Compose turns a rendered doc (body HTML, metadata, frontmatter and heading
// outline) into head tags and a body model. It reads version information and
// URL resolution through narrow interfaces supplied by the host, so a
// Renderer is a pure function of its inputs. Page.WriteHead and
// Page.WriteBody serialize the result with the embedded templates.
//
// Every optional input follows the same rule: an absent field omits the tag
// or section it feeds, it is never an error.
package docpage
