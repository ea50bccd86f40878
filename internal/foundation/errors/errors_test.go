package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Builder sets fields", func(t *testing.T) {
		cause := stderrors.New("yaml: line 2: did not find expected key")
		err := ContentError("invalid frontmatter").
			WithContext("path", "docs/intro.md").
			WithCause(cause).
			Build()

		require.Equal(t, CategoryContent, err.Category())
		require.Equal(t, SeverityError, err.Severity())
		require.Equal(t, RetryUserAction, err.RetryStrategy())
		require.False(t, err.CanRetry())
		require.ErrorIs(t, err, cause)

		path, ok := err.Context().GetString("path")
		require.True(t, ok)
		require.Equal(t, "docs/intro.md", path)
	})

	t.Run("WithContext does not mutate the original", func(t *testing.T) {
		base := RenderError("template failed").Build()
		derived := base.WithContext("template", "body")

		_, ok := base.Context().Get("template")
		require.False(t, ok)
		v, ok := derived.Context().GetString("template")
		require.True(t, ok)
		require.Equal(t, "body", v)
	})

	t.Run("Found through wrapping", func(t *testing.T) {
		inner := NotFoundError("document not found").Build()
		wrapped := fmt.Errorf("render: %w", inner)

		require.True(t, HasCategory(wrapped, CategoryNotFound))
		require.Equal(t, CategoryNotFound, GetCategory(wrapped))
		require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	})
}

func TestCLIErrorAdapter(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{stderrors.New("plain"), 1},
		{ValidationError("bad flag").Build(), 2},
		{NotFoundError("missing").Build(), 3},
		{ConfigError("bad config").Build(), 7},
		{GitError("log failed").Build(), 8},
		{ContentError("bad doc").Build(), 11},
		{InternalError("boom").Build(), 10},
	}
	for _, tt := range tests {
		require.Equal(t, tt.code, adapter.ExitCodeFor(tt.err), "error: %v", tt.err)
	}

	t.Run("Non-verbose message includes path", func(t *testing.T) {
		err := ContentError("invalid frontmatter").WithContext("path", "docs/a.md").Build()
		require.Equal(t, "Error: invalid frontmatter (docs/a.md)", adapter.FormatError(err))
	})

	t.Run("Internal errors are hidden unless verbose", func(t *testing.T) {
		err := InternalError("nil renderer").Build()
		require.Contains(t, adapter.FormatError(err), "use -v")
		require.Contains(t, NewCLIErrorAdapter(true, nil).FormatError(err), "nil renderer")
	})

	t.Run("Report writes message", func(t *testing.T) {
		var buf bytes.Buffer
		code := adapter.Report(&buf, ConfigError("site.url is required").Build())
		require.Equal(t, 7, code)
		require.Contains(t, buf.String(), "site.url is required")
	})
}

func TestHTTPErrorAdapter(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	require.Equal(t, http.StatusOK, adapter.StatusCodeFor(nil))
	require.Equal(t, http.StatusNotFound, adapter.StatusCodeFor(NotFoundError("x").Build()))
	require.Equal(t, http.StatusUnprocessableEntity, adapter.StatusCodeFor(ContentError("x").Build()))
	require.Equal(t, http.StatusInternalServerError, adapter.StatusCodeFor(stderrors.New("x")))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/docs/intro/", nil)
	adapter.WriteErrorResponse(rec, req, FileSystemError("read failed").WithContext("path", "site/x").Build())

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"read failed","code":"filesystem","details":{"path":"site/x"},"retryable":true}`, rec.Body.String())
}
