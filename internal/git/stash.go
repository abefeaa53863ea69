package git

import (
	"context"
	"fmt"
	"strings"
)

// StashCount returns the number of entries in the repository's stash.
func StashCount(ctx context.Context, path string) (int, error) {
	output, err := outputGitString(ctx, path, "stash", "list")
	if err != nil {
		return 0, fmt.Errorf("failed to list stashes: %v", err)
	}
	if output == "" {
		return 0, nil
	}
	return strings.Count(output, "\n") + 1, nil
}
