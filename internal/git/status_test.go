package git

import "testing"

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   ParsedStatus
	}{
		{
			name:   "clean tracking branch",
			output: "## main...origin/main\n",
			want:   ParsedStatus{Branch: "main", Upstream: "origin/main", HasHeader: true},
		},
		{
			name:   "ahead and behind",
			output: "## feature...origin/feature [ahead 2, behind 3]\n",
			want:   ParsedStatus{Branch: "feature", Upstream: "origin/feature", Ahead: 2, Behind: 3, HasHeader: true},
		},
		{
			name:   "behind only",
			output: "## main...upstream/main [behind 1]\n",
			want:   ParsedStatus{Branch: "main", Upstream: "upstream/main", Behind: 1, HasHeader: true},
		},
		{
			name:   "gone upstream",
			output: "## topic...origin/topic [gone]\n",
			want:   ParsedStatus{Branch: "topic", Upstream: "origin/topic", Gone: true, HasHeader: true},
		},
		{
			name:   "no upstream",
			output: "## local-only\n",
			want:   ParsedStatus{Branch: "local-only", HasHeader: true},
		},
		{
			name:   "detached",
			output: "## HEAD (no branch)\n",
			want:   ParsedStatus{Branch: DetachedBranch, HasHeader: true},
		},
		{
			name:   "no commits yet",
			output: "## No commits yet on main\n?? new.txt\n",
			want:   ParsedStatus{Branch: "main", NoCommits: true, HasHeader: true, Untracked: 1},
		},
		{
			name:   "initial commit on older git",
			output: "## Initial commit on master\n",
			want:   ParsedStatus{Branch: "master", NoCommits: true, HasHeader: true},
		},
		{
			name:   "two modified one untracked",
			output: "## main\n M a.txt\n M b.txt\n?? c.txt\n",
			want:   ParsedStatus{Branch: "main", HasHeader: true, Unstaged: 2, Untracked: 1},
		},
		{
			name:   "staged and unstaged on one record",
			output: "## main\nMM both.go\nA  added.go\n D removed.go\n",
			want:   ParsedStatus{Branch: "main", HasHeader: true, Staged: 2, Unstaged: 2},
		},
		{
			name:   "rename counted once",
			output: "## main\nR  old.go -> new.go\n",
			want:   ParsedStatus{Branch: "main", HasHeader: true, Staged: 1},
		},
		{
			name:   "conflicts",
			output: "## main\nUU a\nAA b\nDD c\nAU d\nUD e\n",
			want:   ParsedStatus{Branch: "main", HasHeader: true, Conflicted: 5},
		},
		{
			name:   "ignored not counted",
			output: "## main\n!! build/\n",
			want:   ParsedStatus{Branch: "main", HasHeader: true},
		},
		{
			name:   "garbage lines skipped",
			output: "## main\nhello world\nXY z\n?M bad\n",
			want:   ParsedStatus{Branch: "main", HasHeader: true, Skipped: 3},
		},
		{
			name:   "missing header",
			output: " M a.txt\n",
			want:   ParsedStatus{Branch: Unknown, Upstream: Unknown, Ahead: UnknownCount, Behind: UnknownCount, Unstaged: 1},
		},
		{
			name:   "empty output",
			output: "",
			want:   ParsedStatus{Branch: Unknown, Upstream: Unknown, Ahead: UnknownCount, Behind: UnknownCount},
		},
		{
			name:   "windows line endings",
			output: "## main...origin/main [ahead 1]\r\n M a.txt\r\n",
			want:   ParsedStatus{Branch: "main", Upstream: "origin/main", Ahead: 1, HasHeader: true, Unstaged: 1},
		},
		{
			name:   "second header skipped",
			output: "## main\n## other\n",
			want:   ParsedStatus{Branch: "main", HasHeader: true, Skipped: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseStatus(tt.output)
			if got != tt.want {
				t.Errorf("ParseStatus(%q)\n got = %+v\nwant = %+v", tt.output, got, tt.want)
			}
		})
	}
}

func TestParsedStatus_Detached(t *testing.T) {
	t.Parallel()

	if !ParseStatus("## HEAD (no branch)\n").Detached() {
		t.Error("detached header should report Detached() = true")
	}
	if ParseStatus("## main\n").Detached() {
		t.Error("branch header should report Detached() = false")
	}
}
