package git

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status runs `git status --porcelain=v1 --branch` in repoPath and parses it.
func Status(ctx context.Context, repoPath string) (ParsedStatus, error) {
	output, err := outputGit(ctx, repoPath, "status", "--porcelain=v1", "--branch")
	if err != nil {
		return ParsedStatus{}, fmt.Errorf("failed to get status: %w", err)
	}
	return ParseStatus(string(output)), nil
}

// ShortHead returns the abbreviated commit hash of HEAD.
func ShortHead(ctx context.Context, repoPath string) (string, error) {
	sha, err := outputGitString(ctx, repoPath, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return sha, nil
}

// RefExists reports whether ref resolves in the repository.
func RefExists(ctx context.Context, repoPath, ref string) bool {
	return runGit(ctx, repoPath, "rev-parse", "--verify", "--quiet", ref) == nil
}

// GitDir returns the absolute path of the repository's git directory. For
// linked worktrees this is the per-worktree directory under the main repo.
func GitDir(ctx context.Context, repoPath string) (string, error) {
	dir, err := outputGitString(ctx, repoPath, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to resolve git dir: %w", err)
	}
	return dir, nil
}

// LastCommit returns the author ("Name <email>") and commit time of HEAD.
// The repository must have at least one commit.
func LastCommit(ctx context.Context, repoPath string) (author string, committed time.Time, err error) {
	output, err := outputGitString(ctx, repoPath, "log", "-1", "--format=%an <%ae>%x00%ct")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to read last commit: %w", err)
	}

	author, ts, ok := strings.Cut(output, "\x00")
	if !ok {
		return "", time.Time{}, fmt.Errorf("unexpected log output %q", output)
	}
	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid commit timestamp %q: %w", ts, err)
	}
	return author, time.Unix(secs, 0), nil
}

// Remotes returns the configured remote names in git's order.
func Remotes(ctx context.Context, repoPath string) ([]string, error) {
	output, err := outputGitString(ctx, repoPath, "remote")
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return strings.Fields(output), nil
}

// BranchRemote returns the remote the branch tracks, or "" when the branch
// has no upstream configured.
func BranchRemote(ctx context.Context, repoPath, branch string) string {
	remote, err := configValue(ctx, repoPath, "branch."+branch+".remote")
	if err != nil {
		return ""
	}
	return remote
}

// RemoteURLs returns the fetch URL of remote and its push URL when one is
// configured separately. pushURL is "" when it is unset.
func RemoteURLs(ctx context.Context, repoPath, remote string) (fetchURL, pushURL string, err error) {
	fetchURL, err = configValue(ctx, repoPath, "remote."+remote+".url")
	if err != nil {
		return "", "", fmt.Errorf("remote %s has no url: %w", remote, err)
	}
	pushURL, _ = configValue(ctx, repoPath, "remote."+remote+".pushurl")
	return fetchURL, pushURL, nil
}

// configValue reads a single config key. Missing keys are an error.
func configValue(ctx context.Context, repoPath, key string) (string, error) {
	return outputGitString(ctx, repoPath, "config", "--get", key)
}

// Fetch updates remote-tracking refs for remote. Terminal credential prompts
// are disabled so an unattended scan cannot hang on authentication.
func Fetch(ctx context.Context, repoPath, remote string) error {
	return runGitEnv(ctx, repoPath, []string{"GIT_TERMINAL_PROMPT=0"}, "fetch", remote, "--quiet")
}

// ListFiles returns repository-relative paths of tracked files. With
// untracked set, untracked files that are not ignored are included too.
func ListFiles(ctx context.Context, repoPath string, untracked bool) ([]string, error) {
	args := []string{"ls-files", "-z", "--cached"}
	if untracked {
		args = append(args, "--others", "--exclude-standard")
	}

	output, err := outputGit(ctx, repoPath, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var files []string
	for _, f := range bytes.Split(output, []byte{0}) {
		if len(f) > 0 {
			files = append(files, string(f))
		}
	}
	return files, nil
}

// DiffTotals sums added and deleted lines of staged and unstaged changes.
// Binary files are not counted.
func DiffTotals(ctx context.Context, repoPath string) (additions, deletions int, err error) {
	for _, args := range [][]string{
		{"diff", "--numstat", "--cached"},
		{"diff", "--numstat"},
	} {
		output, err := outputGit(ctx, repoPath, args...)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to diff: %w", err)
		}
		a, d := parseNumstat(string(output))
		additions += a
		deletions += d
	}
	return additions, deletions, nil
}

// parseNumstat sums "<added>\t<deleted>\t<path>" lines. Binary entries
// ("-\t-\t<path>") are skipped.
func parseNumstat(output string) (additions, deletions int) {
	for line := range strings.Lines(output) {
		fields := strings.SplitN(strings.TrimSpace(line), "\t", 3)
		if len(fields) < 3 {
			continue
		}
		a, errA := strconv.Atoi(fields[0])
		d, errD := strconv.Atoi(fields[1])
		if errA != nil || errD != nil {
			continue
		}
		additions += a
		deletions += d
	}
	return additions, deletions
}
