// Package discovery finds git repositories below a set of root directories.
//
// Discovery is lazy: [Discoverer.Discover] returns an iterator that walks
// the filesystem only as far as the consumer ranges, so analysis of the
// first repositories can start while the walk is still running.
//
// Rules applied while walking:
//
//   - a ".git" directory or linked-worktree ".git" file marks a repository,
//     and the walk continues below it
//   - a submodule ".git" file excludes the directory and its subtree
//   - a repository nested in another is excluded, with its subtree, when
//     the enclosing repository ignores it
//   - ".git" directories are never descended
//   - every repository is yielded once, by its symlink-resolved path
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/gitoverit/internal/git"
	"github.com/raphi011/gitoverit/internal/log"
)

// IgnoreFunc reports whether any of paths, relative to repoPath and with a
// trailing slash, is ignored by the repository at repoPath.
type IgnoreFunc func(ctx context.Context, repoPath string, paths ...string) (bool, error)

// Discoverer walks roots for repositories. The zero value is ready to use.
type Discoverer struct {
	// Ignore overrides the ignore check. Nil uses [git.IsIgnored].
	Ignore IgnoreFunc
}

// entry is a directory visited during the walk.
type entry struct {
	path string
	kind git.Marker
}

// Discover returns the distinct repositories below roots, in walk order.
//
// Roots are visited in the given order. Missing roots and unreadable
// directories are skipped and logged at debug level. The walk stops when
// ctx is cancelled or the consumer stops ranging. The sequence can be
// ranged once.
func (d *Discoverer) Discover(ctx context.Context, roots []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		w := &walker{
			ctx:    ctx,
			ignore: d.ignoreFunc(),
			seen:   make(map[string]bool),
			yield:  yield,
		}
		for _, root := range roots {
			if !w.walkRoot(root) {
				return
			}
		}
	}
}

func (d *Discoverer) ignoreFunc() IgnoreFunc {
	if d != nil && d.Ignore != nil {
		return d.Ignore
	}
	return git.IsIgnored
}

// walker holds the state of one Discover iteration.
type walker struct {
	ctx    context.Context
	ignore IgnoreFunc
	seen   map[string]bool
	yield  func(string) bool

	// enclosing is the stack of repositories containing the current
	// directory, innermost last.
	enclosing []entry
}

// walkRoot walks one root. It returns false when the iteration must stop.
func (w *walker) walkRoot(root string) bool {
	logger := log.FromContext(w.ctx)

	canonical, err := canonicalize(root)
	if err != nil {
		logger.Debug("skipping root", "root", root, "err", err)
		return true
	}
	if info, err := os.Stat(canonical); err != nil || !info.IsDir() {
		logger.Debug("skipping root", "root", root, "reason", "not a directory")
		return true
	}

	stopped := false
	w.enclosing = w.enclosing[:0]

	_ = filepath.WalkDir(canonical, func(path string, d fs.DirEntry, err error) error {
		if w.ctx.Err() != nil {
			stopped = true
			return filepath.SkipAll
		}
		if err != nil {
			logger.Debug("skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}

		w.popTo(path)

		e := entry{path: path, kind: git.ClassifyMarker(path)}
		switch {
		case e.kind == git.SubmoduleMarker:
			logger.Debug("skipping submodule", "path", path)
			return filepath.SkipDir
		case !e.kind.IsRepo():
			return nil
		}

		if w.seen[path] {
			// already walked from an earlier root
			return filepath.SkipDir
		}

		if ignored, err := w.ignoredByEnclosing(path); err != nil {
			if w.ctx.Err() != nil {
				stopped = true
				return filepath.SkipAll
			}
			logger.Debug("ignore check failed", "path", path, "err", err)
		} else if ignored {
			logger.Debug("skipping ignored repository", "path", path)
			return filepath.SkipDir
		}

		w.seen[path] = true
		w.enclosing = append(w.enclosing, e)
		if !w.yield(path) {
			stopped = true
			return filepath.SkipAll
		}
		return nil
	})

	return !stopped
}

// popTo drops enclosing repositories that do not contain path.
func (w *walker) popTo(path string) {
	for len(w.enclosing) > 0 {
		top := w.enclosing[len(w.enclosing)-1].path
		if path != top && strings.HasPrefix(path, top+string(filepath.Separator)) {
			return
		}
		w.enclosing = w.enclosing[:len(w.enclosing)-1]
	}
}

// ignoredByEnclosing asks the nearest enclosing repository whether path, or
// any directory between it and path, is ignored.
func (w *walker) ignoredByEnclosing(path string) (bool, error) {
	if len(w.enclosing) == 0 {
		return false, nil
	}
	parent := w.enclosing[len(w.enclosing)-1].path

	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false, err
	}
	return w.ignore(w.ctx, parent, prefixes(rel)...)
}

// prefixes returns every leading directory of rel with a trailing slash:
// "a/b/c" gives "a/", "a/b/", "a/b/c/".
func prefixes(rel string) []string {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	out := make([]string, 0, len(parts))
	for i := range parts {
		out = append(out, strings.Join(parts[:i+1], "/")+"/")
	}
	return out
}

// canonicalize returns the absolute, symlink-resolved form of path.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s does not exist", path)
		}
		return "", err
	}
	return resolved, nil
}
