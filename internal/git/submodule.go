package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// SubmoduleCount returns the number of submodules declared in the
// repository's .gitmodules. A missing file means none.
func SubmoduleCount(ctx context.Context, repoPath string) (int, error) {
	if _, err := os.Stat(filepath.Join(repoPath, ".gitmodules")); errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}

	output, err := outputGitString(ctx, repoPath,
		"config", "--file", ".gitmodules", "--get-regexp", `^submodule\..*\.path$`)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		// exit 1: no submodule entries
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read .gitmodules: %w", err)
	}
	if output == "" {
		return 0, nil
	}
	return strings.Count(output, "\n") + 1, nil
}
