package analyze

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/gitoverit/internal/git"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

func writeFile(t *testing.T, repoPath, name, content string) {
	t.Helper()
	path := filepath.Join(repoPath, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// setupTestRepo creates a git repo with main branch, initial commit, and git config.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	repoPath := filepath.Join(resolveTempDir(t), "test-repo")

	mustGit(t, "", "init", "-b", "main", repoPath)
	mustGit(t, repoPath, "config", "user.email", "test@test.com")
	mustGit(t, repoPath, "config", "user.name", "Test User")
	mustGit(t, repoPath, "config", "commit.gpgsign", "false")

	writeFile(t, repoPath, "README.md", "# test\n")
	mustGit(t, repoPath, "add", "README.md")
	mustGit(t, repoPath, "commit", "-m", "Initial commit")
	return repoPath
}

func TestAnalyze_Clean(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	r := New(ScopeTracked).Analyze(context.Background(), repoPath, false)

	if r.Error != "" {
		t.Fatalf("Error = %q", r.Error)
	}
	if r.Dirty {
		t.Errorf("clean repo reported dirty: %+v", r)
	}
	if r.Branch != "main" || r.Upstream != "" || r.Detached {
		t.Errorf("branch = %q upstream = %q detached = %v", r.Branch, r.Upstream, r.Detached)
	}
	if r.Ahead != 0 || r.Behind != 0 {
		t.Errorf("ahead/behind = %d/%d, want 0/0", r.Ahead, r.Behind)
	}
	if r.Author != "Test User <test@test.com>" {
		t.Errorf("Author = %q", r.Author)
	}
	if r.CommitTime.IsZero() || r.LatestMTime.IsZero() {
		t.Errorf("commit time %v, latest mtime %v should be set", r.CommitTime, r.LatestMTime)
	}
	if r.RemoteURL != "" || r.State != "" {
		t.Errorf("RemoteURL = %q State = %q, want empty", r.RemoteURL, r.State)
	}
}

func TestAnalyze_DirtyCounts(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	writeFile(t, repoPath, "a.txt", "a\n")
	writeFile(t, repoPath, "b.txt", "b\n")
	mustGit(t, repoPath, "add", "a.txt", "b.txt")
	mustGit(t, repoPath, "commit", "-m", "add files")

	writeFile(t, repoPath, "a.txt", "a\nmore\n")
	writeFile(t, repoPath, "b.txt", "changed\n")
	writeFile(t, repoPath, "new.txt", "untracked\n")

	r := New(ScopeTracked).Analyze(context.Background(), repoPath, false)
	if r.Error != "" {
		t.Fatalf("Error = %q", r.Error)
	}
	if r.Unstaged != 2 || r.Untracked != 1 || r.Staged != 0 || r.Conflicted != 0 {
		t.Errorf("counts staged=%d unstaged=%d untracked=%d conflicted=%d, want 0/2/1/0",
			r.Staged, r.Unstaged, r.Untracked, r.Conflicted)
	}
	if !r.Dirty {
		t.Error("Dirty = false, want true")
	}
	if r.Additions != 2 || r.Deletions != 1 {
		t.Errorf("diff = +%d -%d, want +2 -1", r.Additions, r.Deletions)
	}
}

func TestAnalyze_Detached(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	mustGit(t, repoPath, "checkout", "--detach", "HEAD")

	r := New(ScopeTracked).Analyze(context.Background(), repoPath, false)
	if !r.Detached || !strings.HasPrefix(r.Branch, DetachedPrefix) || len(r.Branch) <= len(DetachedPrefix) {
		t.Errorf("branch = %q detached = %v, want DETACHED@<sha>", r.Branch, r.Detached)
	}
}

func TestAnalyze_Submodules(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	writeFile(t, repoPath, ".gitmodules", "[submodule \"lib\"]\n\tpath = lib\n\turl = ../lib.git\n")
	mustGit(t, repoPath, "add", ".gitmodules")
	mustGit(t, repoPath, "commit", "-m", "declare submodule")

	r := New(ScopeTracked).Analyze(context.Background(), repoPath, false)
	if r.Error != "" {
		t.Fatalf("Error = %q", r.Error)
	}
	if r.Submodules != 1 {
		t.Errorf("Submodules = %d, want 1", r.Submodules)
	}
	if r.Dirty {
		t.Error("submodules alone should not make a report dirty")
	}
}

func TestAnalyze_EmptyRepository(t *testing.T) {
	t.Parallel()

	repoPath := filepath.Join(resolveTempDir(t), "empty")
	mustGit(t, "", "init", "-b", "main", repoPath)

	r := New(ScopeTracked).Analyze(context.Background(), repoPath, false)
	if r.Error != "" {
		t.Fatalf("Error = %q, want none for an empty repository", r.Error)
	}
	if r.Author != "" || !r.CommitTime.IsZero() {
		t.Errorf("author = %q commit time = %v, want zero values", r.Author, r.CommitTime)
	}
	if r.Branch != "main" {
		t.Errorf("Branch = %q, want main", r.Branch)
	}
}

func TestAnalyze_MissingPath(t *testing.T) {
	t.Parallel()

	r := New(ScopeTracked).Analyze(context.Background(), filepath.Join(resolveTempDir(t), "gone"), false)
	if r.Error == "" {
		t.Fatal("Error is empty for a missing repository")
	}
	if r.Ahead != -1 || r.Behind != -1 {
		t.Errorf("ahead/behind = %d/%d, want unknown", r.Ahead, r.Behind)
	}
	if r.Dirty {
		t.Error("failed report should not be dirty")
	}
}

func TestAnalyze_RemoteAndFetch(t *testing.T) {
	t.Parallel()

	tmp := resolveTempDir(t)
	repoPath := setupTestRepo(t)
	origin := filepath.Join(tmp, "origin.git")
	mustGit(t, "", "init", "--bare", "-b", "main", origin)
	mustGit(t, repoPath, "remote", "add", "origin", origin)
	mustGit(t, repoPath, "push", "-u", "origin", "main")
	mustGit(t, repoPath, "remote", "set-url", "--push", "origin", "git@github.com:owner/repo.git")

	r := New(ScopeTracked).Analyze(context.Background(), repoPath, true)
	if r.Error != "" || r.FetchError != "" {
		t.Fatalf("Error = %q FetchError = %q", r.Error, r.FetchError)
	}
	if r.Upstream != "origin/main" {
		t.Errorf("Upstream = %q, want origin/main", r.Upstream)
	}
	if want := origin + "\nssh+owner/repo"; r.RemoteURL != want {
		t.Errorf("RemoteURL = %q, want %q", r.RemoteURL, want)
	}

	// an unreachable second remote fails the fetch but not the analysis
	mustGit(t, repoPath, "remote", "add", "zz-broken", filepath.Join(tmp, "missing.git"))
	r = New(ScopeTracked).Analyze(context.Background(), repoPath, true)
	if r.FetchError == "" {
		t.Error("FetchError is empty for an unreachable remote")
	}
	if r.Error != "" || r.Branch != "main" {
		t.Errorf("analysis should continue after fetch failure: %+v", r)
	}
	if !r.Failed() {
		t.Error("Failed() = false with a fetch error")
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(ScopeTracked).Analyze(ctx, repoPath, false)
	if r.Error == "" {
		t.Error("Error is empty for a cancelled analysis")
	}
}

func TestPrimaryRemote(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	ctx := context.Background()
	st := git.ParsedStatus{Branch: "main", HasHeader: true}

	if got := primaryRemote(ctx, repoPath, st, nil); got != "" {
		t.Errorf("no remotes: got %q", got)
	}
	if got := primaryRemote(ctx, repoPath, st, []string{"backup", "origin"}); got != "origin" {
		t.Errorf("with origin: got %q, want origin", got)
	}
	if got := primaryRemote(ctx, repoPath, st, []string{"backup", "mirror"}); got != "backup" {
		t.Errorf("without origin: got %q, want backup", got)
	}

	mustGit(t, repoPath, "config", "branch.main.remote", "mirror")
	if got := primaryRemote(ctx, repoPath, st, []string{"backup", "mirror", "origin"}); got != "mirror" {
		t.Errorf("tracking: got %q, want mirror", got)
	}
}

func TestLatestMTime_Scope(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	old := time.Now().Add(-48 * time.Hour)
	for _, p := range []string{"README.md", "."} {
		if err := os.Chtimes(filepath.Join(repoPath, p), old, old); err != nil {
			t.Fatal(err)
		}
	}

	writeFile(t, repoPath, "scratch.txt", "new\n")
	// creating the file touched the root directory
	if err := os.Chtimes(repoPath, old, old); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	tracked, err := LatestMTime(ctx, repoPath, ScopeTracked)
	if err != nil {
		t.Fatalf("LatestMTime failed: %v", err)
	}
	if time.Since(tracked) < 47*time.Hour {
		t.Errorf("tracked scope picked up an untracked file: %v", tracked)
	}

	all, err := LatestMTime(ctx, repoPath, ScopeAll)
	if err != nil {
		t.Fatalf("LatestMTime failed: %v", err)
	}
	if time.Since(all) > time.Hour {
		t.Errorf("all scope = %v, want the untracked file's mtime", all)
	}
}

func TestLatestMTime_IncludesParentDirectories(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	writeFile(t, repoPath, "pkg/sub/file.go", "package sub\n")
	mustGit(t, repoPath, "add", ".")
	mustGit(t, repoPath, "commit", "-m", "add pkg")

	old := time.Now().Add(-48 * time.Hour)
	for _, p := range []string{"README.md", "pkg/sub/file.go", "pkg", "."} {
		if err := os.Chtimes(filepath.Join(repoPath, p), old, old); err != nil {
			t.Fatal(err)
		}
	}
	recent := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(filepath.Join(repoPath, "pkg", "sub"), recent, recent); err != nil {
		t.Fatal(err)
	}

	got, err := LatestMTime(context.Background(), repoPath, ScopeTracked)
	if err != nil {
		t.Fatalf("LatestMTime failed: %v", err)
	}
	if !got.Equal(recent) {
		t.Errorf("LatestMTime = %v, want %v from pkg/sub", got, recent)
	}
}

func TestParseActivityScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ActivityScope
		wantErr bool
	}{
		{"", ScopeTracked, false},
		{"tracked", ScopeTracked, false},
		{"ALL", ScopeAll, false},
		{"everything", "", true},
	}
	for _, tt := range tests {
		got, err := ParseActivityScope(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseActivityScope(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseActivityScope(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
