package git

import (
	"context"
	"errors"
	"testing"
)

func TestCheckGit_Available(t *testing.T) {
	t.Parallel()
	// git must be available in CI and dev environments
	if err := CheckGit(); err != nil {
		t.Fatalf("CheckGit() = %v, want nil (git should be in PATH)", err)
	}
}

func TestErrGitNotFound_Sentinel(t *testing.T) {
	t.Parallel()
	// Verify ErrGitNotFound is a distinct sentinel error
	if !errors.Is(ErrGitNotFound, ErrGitNotFound) {
		t.Error("ErrGitNotFound should match itself with errors.Is")
	}
}

func TestIsIgnored(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	writeFile(t, repoPath, ".gitignore", "build/\n*.tmp\n")
	ctx := context.Background()

	tests := []struct {
		name  string
		paths []string
		want  bool
	}{
		{"ignored dir", []string{"build/"}, true},
		{"child of ignored dir", []string{"build/", "build/nested/"}, true},
		{"deep below ignored dir", []string{"build/", "build/cache/", "build/cache/repo/"}, true},
		{"only the innermost prefix ignored", []string{"src/", "src/gen/", "src/gen/scratch.tmp/"}, true},
		{"similar name not ignored", []string{"src/", "src/build-tools/"}, false},
		{"deep not ignored", []string{"src/", "src/a/", "src/a/b/"}, false},
		{"glob", []string{"scratch.tmp"}, true},
		{"not ignored", []string{"src/"}, false},
		{"no paths", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := IsIgnored(ctx, repoPath, tt.paths...)
			if err != nil {
				t.Fatalf("IsIgnored(%v) error: %v", tt.paths, err)
			}
			if got != tt.want {
				t.Errorf("IsIgnored(%v) = %v, want %v", tt.paths, got, tt.want)
			}
		})
	}
}

func TestIsIgnored_Cancelled(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := IsIgnored(ctx, repoPath, "x/"); !errors.Is(err, context.Canceled) {
		t.Errorf("IsIgnored on cancelled context = %v, want context.Canceled", err)
	}
}

func TestIsIgnored_NotARepo(t *testing.T) {
	t.Parallel()

	if _, err := IsIgnored(context.Background(), resolveTempDir(t), "x/"); err == nil {
		t.Error("IsIgnored outside a repository should fail")
	}
}
