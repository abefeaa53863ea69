package git

import (
	"os"
	"path/filepath"
	"strings"
)

// Marker classifies the ".git" entry of a directory.
type Marker int

const (
	// NoMarker means the directory has no ".git" entry.
	NoMarker Marker = iota
	// RepoMarker is a ".git" directory.
	RepoMarker
	// WorktreeMarker is a ".git" file of a linked worktree.
	WorktreeMarker
	// SubmoduleMarker is a ".git" file pointing into a superproject's
	// modules directory.
	SubmoduleMarker
)

// ClassifyMarker inspects dir/.git.
//
// A ".git" file holds "gitdir: <path>". Submodules point into
// "<super>/.git/modules/...", linked worktrees into "<main>/.git/worktrees/...".
func ClassifyMarker(dir string) Marker {
	gitPath := filepath.Join(dir, ".git")
	info, err := os.Stat(gitPath)
	if err != nil {
		return NoMarker
	}
	if info.IsDir() {
		return RepoMarker
	}
	if !info.Mode().IsRegular() {
		return NoMarker
	}

	content, err := os.ReadFile(gitPath)
	if err != nil {
		return NoMarker
	}
	if strings.Contains(string(content), "modules") {
		return SubmoduleMarker
	}
	return WorktreeMarker
}

// IsRepo reports whether the marker belongs to a repository that can be
// analyzed on its own.
func (m Marker) IsRepo() bool {
	return m == RepoMarker || m == WorktreeMarker
}
