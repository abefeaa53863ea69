// Package analyze builds the status report of a single repository.
//
// [Analyzer.Analyze] runs a fixed sequence of git queries against one
// repository and never fails: problems are recorded on the returned
// report so one broken repository cannot take down a scan. Concurrent
// calls share no state, and every git process is tied to the context so
// cancelling it kills whatever is still running.
package analyze

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/raphi011/gitoverit/internal/git"
	"github.com/raphi011/gitoverit/internal/log"
	"github.com/raphi011/gitoverit/internal/report"
)

// DetachedPrefix starts the branch name reported for a detached HEAD,
// followed by the short commit hash.
const DetachedPrefix = "DETACHED@"

// DefaultRemote is preferred when the branch does not track a remote.
const DefaultRemote = "origin"

// Analyzer collects repository reports. The zero value scans tracked files
// for activity.
type Analyzer struct {
	Scope ActivityScope
}

// New creates an Analyzer with the given activity scope.
func New(scope ActivityScope) *Analyzer {
	return &Analyzer{Scope: scope}
}

// Analyze returns the report for the repository at path. With fetch set,
// every remote is fetched first; a fetch failure is recorded in FetchError
// and the rest of the analysis still runs. Any other failure, including a
// panic, ends the analysis and is recorded in Error alongside whatever was
// collected up to that point.
func (a *Analyzer) Analyze(ctx context.Context, path string, fetch bool) (r report.RepoReport) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			r = report.Failure(path, fmt.Errorf("panic during analysis: %v", p))
		}
		log.FromContext(ctx).Debug("analyzed repository", "path", path,
			"dirty", r.Dirty, "err", r.Error, "dur", time.Since(start).Round(time.Millisecond))
	}()

	r = report.RepoReport{
		Path:   path,
		Ahead:  report.UnknownCount,
		Behind: report.UnknownCount,
	}
	if err := a.collect(ctx, &r, fetch); err != nil {
		r.Error = err.Error()
	}
	return report.Finalize(r)
}

func (a *Analyzer) collect(ctx context.Context, r *report.RepoReport, fetch bool) error {
	path := r.Path

	remotes, err := git.Remotes(ctx, path)
	if err != nil {
		return err
	}

	if fetch {
		for _, remote := range remotes {
			if err := git.Fetch(ctx, path, remote); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				r.FetchError = fmt.Sprintf("fetch %s: %v", remote, err)
				break
			}
		}
	}

	st, err := git.Status(ctx, path)
	if err != nil {
		return err
	}
	if st.Skipped > 0 {
		log.FromContext(ctx).Debug("unrecognized status lines", "path", path, "count", st.Skipped)
	}
	r.Branch = st.Branch
	r.Ahead, r.Behind = st.Ahead, st.Behind
	r.Staged, r.Unstaged = st.Staged, st.Unstaged
	r.Untracked, r.Conflicted = st.Untracked, st.Conflicted
	if st.Upstream != git.Unknown {
		r.Upstream = st.Upstream
	}

	if st.Detached() {
		sha, err := git.ShortHead(ctx, path)
		if err != nil {
			return err
		}
		r.Branch = DetachedPrefix + sha
		r.Detached = true
	}

	if r.Stashes, err = git.StashCount(ctx, path); err != nil {
		return err
	}

	if r.Submodules, err = git.SubmoduleCount(ctx, path); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.FromContext(ctx).Debug("unreadable .gitmodules", "path", path, "err", err)
		r.Submodules = 0
	}

	if !st.NoCommits {
		if r.Author, r.CommitTime, err = git.LastCommit(ctx, path); err != nil {
			return err
		}
	}

	if r.LatestMTime, err = LatestMTime(ctx, path, a.Scope); err != nil {
		return err
	}

	if remote := primaryRemote(ctx, path, st, remotes); remote != "" {
		url, err := displayURL(ctx, path, remote)
		if err != nil {
			log.FromContext(ctx).Debug("no remote url", "path", path, "remote", remote, "err", err)
		}
		r.RemoteURL = url
	}

	if r.Additions, r.Deletions, err = git.DiffTotals(ctx, path); err != nil {
		return err
	}

	gitDir, err := git.GitDir(ctx, path)
	if err != nil {
		return err
	}
	r.State = git.InProgress(ctx, path, gitDir)

	return nil
}

// primaryRemote picks the remote whose URL represents the repository: the
// one the current branch tracks, else origin, else the first configured.
func primaryRemote(ctx context.Context, path string, st git.ParsedStatus, remotes []string) string {
	if len(remotes) == 0 {
		return ""
	}
	if st.HasHeader && !st.Detached() {
		if remote := git.BranchRemote(ctx, path, st.Branch); slices.Contains(remotes, remote) {
			return remote
		}
	}
	if slices.Contains(remotes, DefaultRemote) {
		return DefaultRemote
	}
	return remotes[0]
}

// displayURL returns the simplified fetch URL of remote, followed by the
// simplified push URL on a second line when that one differs.
func displayURL(ctx context.Context, path, remote string) (string, error) {
	fetchURL, pushURL, err := git.RemoteURLs(ctx, path, remote)
	if err != nil {
		return "", err
	}
	display := git.SimplifyURL(fetchURL)
	if pushURL != "" && pushURL != fetchURL {
		display += "\n" + git.SimplifyURL(pushURL)
	}
	return display, nil
}
