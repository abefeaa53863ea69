package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raphi011/gitoverit/internal/git"
)

// ActivityScope selects which files count towards a repository's latest
// activity time.
type ActivityScope string

const (
	// ScopeTracked considers tracked files only.
	ScopeTracked ActivityScope = "tracked"
	// ScopeAll also considers untracked files that are not ignored.
	ScopeAll ActivityScope = "all"
)

// ParseActivityScope validates a configured scope. Empty means tracked.
func ParseActivityScope(s string) (ActivityScope, error) {
	switch ActivityScope(strings.ToLower(s)) {
	case "", ScopeTracked:
		return ScopeTracked, nil
	case ScopeAll:
		return ScopeAll, nil
	}
	return "", fmt.Errorf("invalid activity scope %q: must be tracked or all", s)
}

// LatestMTime returns the most recent modification time among the files
// in scope, their parent directories and the worktree root itself.
// Files listed in the index but missing on disk are ignored. Symlinks are
// not followed.
func LatestMTime(ctx context.Context, worktree string, scope ActivityScope) (time.Time, error) {
	files, err := git.ListFiles(ctx, worktree, scope == ScopeAll)
	if err != nil {
		return time.Time{}, err
	}

	candidates := map[string]struct{}{".": {}}
	for _, f := range files {
		rel := filepath.Clean(filepath.FromSlash(f))
		for rel != "." && rel != string(filepath.Separator) {
			if _, ok := candidates[rel]; ok {
				break
			}
			candidates[rel] = struct{}{}
			rel = filepath.Dir(rel)
		}
	}

	var latest time.Time
	for rel := range candidates {
		info, err := os.Lstat(filepath.Join(worktree, rel))
		if err != nil {
			continue
		}
		if mt := info.ModTime(); mt.After(latest) {
			latest = mt
		}
	}
	return latest, nil
}
