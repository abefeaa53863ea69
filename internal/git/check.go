package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsIgnored reports whether any of paths (relative to repoPath) is excluded
// by the ignore rules of the repository at repoPath.
// Directory paths should carry a trailing slash so "dir/" patterns match.
func IsIgnored(ctx context.Context, repoPath string, paths ...string) (bool, error) {
	if len(paths) == 0 {
		return false, nil
	}

	// --quiet rejects more than one path; the exit status alone decides
	args := append([]string{"check-ignore", "--"}, paths...)
	_, err := outputGit(ctx, repoPath, args...)
	if err == nil {
		return true, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}

	// check-ignore exits 1 without output when nothing matched
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, fmt.Errorf("check-ignore in %s: %w", repoPath, err)
}
