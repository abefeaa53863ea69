// Package report defines the per-repository status report produced by a
// scan and the aggregation applied to the full set before rendering.
package report

import "time"

// UnknownCount marks an ahead/behind value that could not be determined.
const UnknownCount = -1

// RepoReport is the status of a single repository.
//
// A report only holds plain values so it can be handed across goroutines
// and serialized without touching the repository again. Build one with
// [Finalize] so Dirty always agrees with the counts.
type RepoReport struct {
	Path       string
	RemoteURL  string
	Upstream   string // tracking ref, e.g. "origin/main"; empty without upstream
	Branch     string
	Detached   bool
	Ahead      int
	Behind     int
	Staged     int
	Unstaged   int
	Untracked  int
	Conflicted int
	Stashes    int
	Submodules int // declared in .gitmodules; never makes a report dirty
	Additions  int
	Deletions  int
	Author     string // "Name <email>" of the latest commit
	CommitTime time.Time
	// LatestMTime is the most recent modification time across tracked
	// worktree files, used as an activity proxy.
	LatestMTime time.Time
	State       string // operation in progress, e.g. "rebasing"
	FetchError  string
	Error       string
	Dirty       bool
}

// Finalize derives Dirty from the counts and returns the completed report.
func Finalize(r RepoReport) RepoReport {
	r.Dirty = IsDirty(r)
	return r
}

// IsDirty reports whether r has any uncommitted change or unsynced commit.
// Unknown ahead/behind values do not make a report dirty.
func IsDirty(r RepoReport) bool {
	return r.Staged > 0 || r.Unstaged > 0 || r.Untracked > 0 || r.Conflicted > 0 ||
		r.Ahead > 0 || r.Behind > 0
}

// Failed reports whether fetching or analyzing the repository failed.
func (r RepoReport) Failed() bool {
	return r.FetchError != "" || r.Error != ""
}

// Failure builds the report for a repository whose analysis failed.
func Failure(path string, err error) RepoReport {
	return Finalize(RepoReport{
		Path:   path,
		Ahead:  UnknownCount,
		Behind: UnknownCount,
		Error:  err.Error(),
	})
}
