// Package errors provides the classified error primitives used across docsite.
//
// A ClassifiedError carries a category (what kind of thing failed), a severity
// and a retry hint, plus free-form context. Errors are created with the fluent
// builder and presented to users through the CLI and HTTP adapters.
//
//	err := errors.ContentError("frontmatter is not valid YAML").
//		WithContext("path", relPath).
//		WithCause(yamlErr).
//		Build()
package errors
