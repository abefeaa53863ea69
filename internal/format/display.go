package format

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Placeholder is shown for values that are not available.
const Placeholder = "-"

// RelativePath returns path relative to base when path lies inside base,
// otherwise path unchanged. base itself becomes ".".
func RelativePath(path, base string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// RelativeTimeFrom formats t relative to now: "just now", "30s ago",
// "5m ago", "3h ago", "yesterday", "2d ago", and a date from a week on.
// The zero time renders as [Placeholder].
func RelativeTimeFrom(t, now time.Time) string {
	if t.IsZero() {
		return Placeholder
	}

	d := now.Sub(t)
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.In(now.Location()).Format("2006-01-02")
	}
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
	for line := range strings.Lines(s) {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// Truncate shortens s to at most limit runes, marking the cut with "…".
// A limit of zero or less disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
