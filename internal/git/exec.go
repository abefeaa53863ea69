package git

import (
	"context"
	"strings"

	"github.com/raphi011/gitoverit/internal/cmd"
)

// noOptionalLocks keeps read-only commands such as status from taking the
// index lock and rewriting the index while the user runs git.
const noOptionalLocks = "--no-optional-locks"

// gitArgs prepends the global options, and -C <dir> if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	global := []string{noOptionalLocks}
	if dir != "" {
		global = append(global, "-C", dir)
	}
	return append(global, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGitString is outputGit with surrounding whitespace trimmed.
func outputGitString(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := outputGit(ctx, dir, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// runGitEnv is runGit with extra environment variables.
func runGitEnv(ctx context.Context, dir string, env []string, args ...string) error {
	return cmd.RunContextEnv(ctx, "", env, "git", gitArgs(dir, args)...)
}
