// Package lastupdate reports when a source file last changed and who changed it,
// based on git history.
package lastupdate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/Freddy-Gong/react-native-website/internal/logfields"
)

// Info describes the most recent change to a file. The zero value means unknown.
type Info struct {
	At time.Time
	By string
}

// IsZero reports whether no change information is known.
func (i Info) IsZero() bool { return i.At.IsZero() && i.By == "" }

// Source looks up change information for files.
type Source interface {
	Lookup(file string) (Info, error)
}

// Noop is a Source for trees outside version control.
type Noop struct{}

// Lookup always returns zero Info.
func (Noop) Lookup(string) (Info, error) { return Info{}, nil }

// Repository answers lookups from the git repository enclosing a directory.
type Repository struct {
	repo *git.Repository
	root string

	mu    sync.Mutex
	cache map[string]Info
}

// Open finds the repository containing dir, searching parent directories.
func Open(dir string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository for %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree for %s: %w", dir, err)
	}
	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	return &Repository{repo: repo, root: root, cache: make(map[string]Info)}, nil
}

// OpenOrNoop opens the repository containing dir, falling back to Noop when
// dir is not under version control.
func OpenOrNoop(dir string) Source {
	r, err := Open(dir)
	if err != nil {
		slog.Debug("No git repository, last update info disabled", logfields.Path(dir), logfields.Error(err))
		return Noop{}
	}
	return r
}

// Root returns the worktree root.
func (r *Repository) Root() string { return r.root }

// Lookup returns the committer time and author name of the latest commit
// touching file. Files outside the repository or without history yield
// zero Info.
func (r *Repository) Lookup(file string) (Info, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return Info{}, err
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Info{}, nil
	}
	rel = filepath.ToSlash(rel)

	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.cache[rel]; ok {
		return info, nil
	}
	info, err := r.lookup(rel)
	if err != nil {
		return Info{}, err
	}
	r.cache[rel] = info
	return info, nil
}

func (r *Repository) lookup(rel string) (Info, error) {
	if _, err := r.repo.Head(); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Info{}, nil
		}
		return Info{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := r.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return Info{}, fmt.Errorf("git log %s: %w", rel, err)
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, storer.ErrStop) {
			return Info{}, nil
		}
		return Info{}, fmt.Errorf("git log %s: %w", rel, err)
	}
	return Info{At: commit.Committer.When, By: commit.Author.Name}, nil
}
