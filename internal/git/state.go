package git

import (
	"context"
	"os"
	"path/filepath"
)

// Operation names returned by [InProgress].
const (
	OpMerge      = "merging"
	OpRebase     = "rebasing"
	OpCherryPick = "cherry-picking"
	OpRevert     = "reverting"
	OpBisect     = "bisecting"
)

// sentinel is a file or directory git leaves in the git dir while an
// operation is in progress. Git does not always clean these up, so each one
// is confirmed before it is trusted.
type sentinel struct {
	name  string
	op    string
	valid func(ctx context.Context, repoPath, gitDir string) bool
}

var sentinels = []sentinel{
	{"MERGE_HEAD", OpMerge, refValid("MERGE_HEAD")},
	{"rebase-merge", OpRebase, rebaseValid},
	{"rebase-apply", OpRebase, rebaseValid},
	// REBASE_HEAD survives some aborted rebases; only the rebase
	// directories make it count.
	{"REBASE_HEAD", OpRebase, rebaseValid},
	{"CHERRY_PICK_HEAD", OpCherryPick, sequencerValid("CHERRY_PICK_HEAD")},
	{"REVERT_HEAD", OpRevert, sequencerValid("REVERT_HEAD")},
	{"BISECT_LOG", OpBisect, bisectValid},
}

// InProgress returns the operation left in progress in the repository, or
// "" when there is none. gitDir is the repository's git directory as
// returned by [GitDir].
func InProgress(ctx context.Context, repoPath, gitDir string) string {
	for _, s := range sentinels {
		if !exists(filepath.Join(gitDir, s.name)) {
			continue
		}
		if s.valid(ctx, repoPath, gitDir) {
			return s.op
		}
	}
	return ""
}

func refValid(ref string) func(context.Context, string, string) bool {
	return func(ctx context.Context, repoPath, _ string) bool {
		return RefExists(ctx, repoPath, ref)
	}
}

func rebaseValid(_ context.Context, _, gitDir string) bool {
	return isDir(filepath.Join(gitDir, "rebase-merge")) || isDir(filepath.Join(gitDir, "rebase-apply"))
}

// sequencerValid requires a non-empty sequencer todo list in addition to
// the ref itself.
func sequencerValid(ref string) func(context.Context, string, string) bool {
	return func(ctx context.Context, repoPath, gitDir string) bool {
		if !isDir(filepath.Join(gitDir, "sequencer")) {
			return false
		}
		info, err := os.Stat(filepath.Join(gitDir, "sequencer", "todo"))
		if err != nil || info.Size() == 0 {
			return false
		}
		return RefExists(ctx, repoPath, ref)
	}
}

func bisectValid(_ context.Context, _, gitDir string) bool {
	return exists(filepath.Join(gitDir, "BISECT_START"))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
