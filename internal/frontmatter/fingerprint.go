package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
)

// Fingerprint returns the content fingerprint of a doc source: its
// frontmatter block and body, with CRLF line endings folded to LF so the
// value does not depend on checkout settings.
func Fingerprint(content []byte) (string, error) {
	raw, body, _, err := Split(content)
	if err != nil {
		return "", err
	}
	fm := strings.TrimSuffix(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	return mdfp.CalculateFingerprintFromParts(fm, strings.ReplaceAll(string(body), "\r\n", "\n")), nil
}
