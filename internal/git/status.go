package git

import (
	"strconv"
	"strings"
)

// Unknown is reported for branch and upstream when the status output had no
// branch header.
const Unknown = "unknown"

// UnknownCount is reported for ahead/behind when they cannot be determined.
const UnknownCount = -1

// DetachedBranch is the branch name git prints for a detached HEAD.
const DetachedBranch = "HEAD (no branch)"

// ParsedStatus is the result of parsing `git status --porcelain=v1 --branch`.
//
// The four counts are disjoint per bucket, but a single record can count
// as both staged and unstaged (e.g. "MM").
type ParsedStatus struct {
	Branch     string
	Upstream   string // empty when the branch has no upstream
	Ahead      int
	Behind     int
	Gone       bool // upstream configured but deleted on the remote
	NoCommits  bool // HEAD points at an unborn branch
	HasHeader  bool
	Staged     int
	Unstaged   int
	Untracked  int
	Conflicted int
	Skipped    int // lines that were not recognized
}

// Detached reports whether the header described a detached HEAD.
func (s ParsedStatus) Detached() bool {
	return s.Branch == DetachedBranch
}

// ParseStatus parses short-format machine status output: an optional
// "## branch...upstream [ahead N, behind M]" header followed by XY records.
//
// Parsing never fails. Unrecognized lines are counted in Skipped and a
// missing header leaves branch, upstream and ahead/behind unknown.
func ParseStatus(output string) ParsedStatus {
	s := ParsedStatus{
		Branch:   Unknown,
		Upstream: Unknown,
		Ahead:    UnknownCount,
		Behind:   UnknownCount,
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		if header, ok := strings.CutPrefix(line, "## "); ok {
			if s.HasHeader {
				s.Skipped++
				continue
			}
			s.parseHeader(header)
			continue
		}

		if !s.addRecord(line) {
			s.Skipped++
		}
	}

	return s
}

// parseHeader fills branch tracking fields from the text after "## ".
func (s *ParsedStatus) parseHeader(header string) {
	s.HasHeader = true
	s.Upstream = ""
	s.Ahead = 0
	s.Behind = 0

	// Before the first commit: "No commits yet on main" (older git:
	// "Initial commit on main").
	for _, prefix := range []string{"No commits yet on ", "Initial commit on "} {
		if rest, ok := strings.CutPrefix(header, prefix); ok {
			s.NoCommits = true
			branch, upstream, _ := strings.Cut(rest, "...")
			s.Branch, s.Upstream = branch, upstream
			return
		}
	}

	if header == DetachedBranch {
		s.Branch = DetachedBranch
		return
	}

	branchPart, tracking := header, ""
	if idx := strings.Index(header, " ["); idx != -1 && strings.HasSuffix(header, "]") {
		branchPart, tracking = header[:idx], header[idx+2:len(header)-1]
	}

	if branch, upstream, ok := strings.Cut(branchPart, "..."); ok {
		s.Branch, s.Upstream = branch, upstream
	} else {
		s.Branch = branchPart
	}

	for _, part := range strings.Split(tracking, ", ") {
		field, value, _ := strings.Cut(strings.TrimSpace(part), " ")
		switch field {
		case "ahead":
			if n, err := strconv.Atoi(value); err == nil {
				s.Ahead = n
			}
		case "behind":
			if n, err := strconv.Atoi(value); err == nil {
				s.Behind = n
			}
		case "gone":
			s.Gone = true
		}
	}
}

// validCodes are the characters git uses in the X and Y status columns.
const validCodes = " MTADRCU?!"

// addRecord counts one "XY path" record. It returns false when the line is
// not a status record.
func (s *ParsedStatus) addRecord(line string) bool {
	if len(line) < 4 || line[2] != ' ' {
		return false
	}

	x, y := line[0], line[1]
	if !strings.ContainsRune(validCodes, rune(x)) || !strings.ContainsRune(validCodes, rune(y)) {
		return false
	}

	switch {
	case x == '?' && y == '?':
		s.Untracked++
	case x == '!' && y == '!':
		// ignored files are only listed with --ignored
	case x == '?' || y == '?' || x == '!' || y == '!' || (x == ' ' && y == ' '):
		return false
	case isConflict(x, y):
		s.Conflicted++
	default:
		// renames and copies are one record ("R  old -> new") and are
		// counted once under the bucket their code selects
		if x != ' ' {
			s.Staged++
		}
		if y != ' ' {
			s.Unstaged++
		}
	}
	return true
}

// isConflict reports whether an XY pair denotes an unmerged path.
func isConflict(x, y byte) bool {
	if x == 'U' || y == 'U' {
		return true
	}
	return (x == 'A' && y == 'A') || (x == 'D' && y == 'D')
}
