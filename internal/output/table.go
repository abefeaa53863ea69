package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/gitoverit/internal/format"
	"github.com/raphi011/gitoverit/internal/report"
	"github.com/raphi011/gitoverit/internal/ui/static"
	"github.com/raphi011/gitoverit/internal/ui/styles"
)

// ErrorMode controls how failed analyses appear in the table.
type ErrorMode string

const (
	// ErrorsHide drops repositories whose analysis failed.
	ErrorsHide ErrorMode = "hide"
	// ErrorsShort shows the first line of the error, truncated.
	ErrorsShort ErrorMode = "short"
	// ErrorsFull shows the complete error text.
	ErrorsFull ErrorMode = "full"
)

// shortErrorWidth is the longest error text shown in short mode.
const shortErrorWidth = 60

// ParseErrorMode validates a user supplied error mode.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch mode := ErrorMode(strings.ToLower(s)); mode {
	case ErrorsHide, ErrorsShort, ErrorsFull:
		return mode, nil
	}
	return "", fmt.Errorf("invalid errors mode %q: must be hide, short or full", s)
}

// TableOptions configures [RenderTable].
type TableOptions struct {
	Columns []Column  // DefaultColumns if nil
	Errors  ErrorMode // ErrorsShort if empty
	BaseDir string    // paths are shown relative to this directory
	Now     time.Time // reference for relative times; time.Now() if zero
}

// alertMarker flags an operation in progress or conflicts in the status
// column, and a failed fetch in the dir column.
const alertMarker = "!"

// RenderTable writes reports as a borderless table followed by a legend of
// the status abbreviations. Nothing is written when there is nothing to
// show.
func RenderTable(w io.Writer, reports []report.RepoReport, opts TableOptions) error {
	if opts.Columns == nil {
		opts.Columns = DefaultColumns
	}
	if opts.Errors == "" {
		opts.Errors = ErrorsShort
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if len(opts.Columns) == 0 {
		return nil
	}

	headers := make([]string, len(opts.Columns))
	for i, col := range opts.Columns {
		headers[i] = strings.ToUpper(string(col))
	}

	var rows [][]string
	var hasAlert, hasFetchError bool
	for _, r := range reports {
		if r.Error != "" && opts.Errors == ErrorsHide {
			continue
		}
		hasAlert = hasAlert || alerted(r)
		hasFetchError = hasFetchError || r.FetchError != ""

		row := make([]string, len(opts.Columns))
		for i, col := range opts.Columns {
			row[i] = cell(r, col, opts)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, static.RenderTable(headers, rows)); err != nil {
		return err
	}
	_, err := io.WriteString(w, legend(hasAlert, hasFetchError))
	return err
}

func cell(r report.RepoReport, col Column, opts TableOptions) string {
	switch col {
	case ColDir:
		dir := format.RelativePath(r.Path, opts.BaseDir)
		if r.FetchError != "" {
			return styles.AlertStyle.Render(alertMarker) + " " + dir
		}
		return dir
	case ColStatus:
		return statusCell(r, opts.Errors)
	case ColBranch:
		return orPlaceholder(r.Branch)
	case ColRemote:
		return orPlaceholder(r.Upstream)
	case ColURL:
		return orPlaceholder(r.RemoteURL)
	case ColIdent:
		return orPlaceholder(r.Author)
	case ColMTime:
		return format.RelativeTimeFrom(r.LatestMTime, opts.Now)
	case ColStash:
		if r.Stashes == 0 {
			return format.Placeholder
		}
		return strconv.Itoa(r.Stashes)
	}
	return ""
}

func statusCell(r report.RepoReport, mode ErrorMode) string {
	if r.Error != "" {
		return styles.ErrorStyle.Render(errorText(r.Error, mode))
	}

	text := StatusText(r, true)
	if r.FetchError != "" && mode != ErrorsHide {
		text += "\n" + styles.MutedStyle.Render(errorText(r.FetchError, mode))
	}
	return text
}

func errorText(msg string, mode ErrorMode) string {
	switch mode {
	case ErrorsFull:
		return strings.TrimSpace(msg)
	case ErrorsHide:
		return "error"
	default:
		return format.Truncate(format.FirstLine(msg), shortErrorWidth)
	}
}

// segment is one abbreviated part of the status column.
type segment struct {
	text  string
	style lipgloss.Style
}

// statusSegments abbreviates the state of r, e.g. "2m (+10/-3) 1u 2sub 3↑".
func statusSegments(r report.RepoReport) []segment {
	var segs []segment
	add := func(n int, suffix string, style lipgloss.Style) {
		if n > 0 {
			segs = append(segs, segment{strconv.Itoa(n) + suffix, style})
		}
	}

	add(r.Staged, "s", styles.StagedStyle)
	add(r.Unstaged, "m", styles.ModifiedStyle)
	if r.Additions > 0 || r.Deletions > 0 {
		segs = append(segs, segment{fmt.Sprintf("(+%d/-%d)", r.Additions, r.Deletions), styles.DiffStyle})
	}
	add(r.Untracked, "u", styles.UntrackedStyle)
	add(r.Conflicted, "c", styles.ConflictedStyle)
	add(r.Submodules, "sub", styles.SubmoduleStyle)
	add(r.Ahead, "↑", styles.AheadStyle)
	add(r.Behind, "↓", styles.BehindStyle)
	if alerted(r) {
		segs = append(segs, segment{alertMarker, styles.AlertStyle})
	}
	return segs
}

// StatusText renders the status column of r, "clean" when there is
// nothing to report.
func StatusText(r report.RepoReport, styled bool) string {
	segs := statusSegments(r)
	if len(segs) == 0 {
		if styled {
			return styles.CleanStyle.Render("clean")
		}
		return "clean"
	}

	parts := make([]string, len(segs))
	for i, s := range segs {
		if styled {
			parts[i] = s.style.Render(s.text)
		} else {
			parts[i] = s.text
		}
	}
	return strings.Join(parts, " ")
}

// alerted reports whether r needs attention before new work: a detached
// HEAD, an operation in progress or unresolved conflicts.
func alerted(r report.RepoReport) bool {
	return r.Detached || r.State != "" || r.Conflicted > 0
}

func legend(hasAlert, hasFetchError bool) string {
	entries := []string{
		"s staged", "m modified", "+/- lines added/removed", "u untracked",
		"c conflicted", "sub submodules", "↑ ahead", "↓ behind",
	}
	if hasAlert {
		entries = append(entries, "! detached HEAD, or merge, rebase, cherry-pick, revert, bisect or conflicts in progress")
	}
	if hasFetchError {
		entries = append(entries, "! before dir: fetch failed")
	}
	return styles.MutedStyle.Render(strings.Join(entries, "  ")) + "\n"
}

func orPlaceholder(s string) string {
	if s == "" {
		return format.Placeholder
	}
	return s
}
