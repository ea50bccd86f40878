package lastupdate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, repo *git.Repository, dir, rel, content, author string, when time.Time) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(rel)
	require.NoError(t, err)
	sig := &object.Signature{Name: author, Email: author + "@example.com", When: when}
	_, err = wt.Commit("update "+rel, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
}

func TestRepository_Lookup(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	first := time.Date(2021, 1, 1, 8, 0, 0, 0, time.UTC)
	second := time.Date(2021, 3, 15, 12, 30, 0, 0, time.UTC)
	commitFile(t, repo, dir, "docs/intro.md", "# Intro\n", "Alice", first)
	commitFile(t, repo, dir, "docs/guide.md", "# Guide\n", "Bob", second)

	r, err := Open(filepath.Join(dir, "docs"))
	require.NoError(t, err)

	info, err := r.Lookup(filepath.Join(dir, "docs", "intro.md"))
	require.NoError(t, err)
	require.Equal(t, first.Unix(), info.At.Unix())
	require.Equal(t, "Alice", info.By)

	info, err = r.Lookup(filepath.Join(dir, "docs", "guide.md"))
	require.NoError(t, err)
	require.Equal(t, second.Unix(), info.At.Unix())
	require.Equal(t, "Bob", info.By)

	commitFile(t, repo, dir, "docs/intro.md", "# Intro v2\n", "Carol", second.Add(time.Hour))
	info, err = r.Lookup(filepath.Join(dir, "docs", "intro.md"))
	require.NoError(t, err)
	require.Equal(t, "Alice", info.By, "lookups are cached per path")

	fresh, err := Open(dir)
	require.NoError(t, err)
	info, err = fresh.Lookup(filepath.Join(dir, "docs", "intro.md"))
	require.NoError(t, err)
	require.Equal(t, "Carol", info.By)
}

func TestRepository_LookupWithoutHistory(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)

	info, err := r.Lookup(filepath.Join(dir, "docs", "intro.md"))
	require.NoError(t, err)
	require.True(t, info.IsZero(), "empty repository")

	commitFile(t, repo, dir, "docs/intro.md", "# Intro\n", "Alice", time.Now())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "draft.md"), []byte("draft"), 0o600))

	info, err = r.Lookup(filepath.Join(dir, "docs", "draft.md"))
	require.NoError(t, err)
	require.True(t, info.IsZero(), "untracked file")

	info, err = r.Lookup(filepath.Join(filepath.Dir(dir), "elsewhere.md"))
	require.NoError(t, err)
	require.True(t, info.IsZero(), "file outside the repository")
}

func TestOpenOrNoop(t *testing.T) {
	src := OpenOrNoop(t.TempDir())
	require.IsType(t, Noop{}, src)

	info, err := src.Lookup("anything.md")
	require.NoError(t, err)
	require.True(t, info.IsZero())

	dir := t.TempDir()
	_, err = git.PlainInit(dir, false)
	require.NoError(t, err)
	require.IsType(t, &Repository{}, OpenOrNoop(dir))
}
