package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SortKey selects the ordering applied by [Aggregate].
type SortKey string

const (
	// SortMTime orders by latest worktree activity, most recent first.
	SortMTime SortKey = "mtime"
	// SortAuthor orders by latest commit author, case-insensitive A to Z.
	SortAuthor SortKey = "author"
	// SortNone keeps arrival order.
	SortNone SortKey = "none"
)

// SortKeys lists the accepted sort keys in help order.
var SortKeys = []SortKey{SortMTime, SortAuthor, SortNone}

// ParseSortKey validates a user supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort %q: must be one of mtime, author, none", s)
}

// Options configures [Aggregate].
type Options struct {
	// Match keeps only reports whose path fuzzy-matches the query.
	Match string
	// DirtyOnly keeps only dirty reports.
	DirtyOnly bool
	// KeepFailed keeps reports with a fetch or analysis error even when
	// DirtyOnly would drop them.
	KeepFailed bool
	Sort       SortKey
	Reverse    bool
}

// Aggregate filters and orders reports. The input may arrive in any order;
// for the same set of reports the output is always the same, except with
// SortNone, which preserves (or reverses) arrival order.
//
// Equal sort keys are broken by path, ascending, in both directions.
func Aggregate(reports []RepoReport, opts Options) []RepoReport {
	out := make([]RepoReport, 0, len(reports))
	for _, r := range matching(reports, opts.Match) {
		if opts.DirtyOnly && !r.Dirty && !(opts.KeepFailed && r.Failed()) {
			continue
		}
		out = append(out, r)
	}

	switch opts.Sort {
	case SortMTime:
		sortBy(out, opts.Reverse, func(a, b RepoReport) int {
			// newest first
			return b.LatestMTime.Compare(a.LatestMTime)
		})
	case SortAuthor:
		sortBy(out, opts.Reverse, func(a, b RepoReport) int {
			return strings.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
		})
	default:
		if opts.Reverse {
			slices.Reverse(out)
		}
	}

	return out
}

// sortBy stable-sorts by cmp, inverted when reverse is set, with the path
// as tie-break that ignores reverse.
func sortBy(reports []RepoReport, reverse bool, cmp func(a, b RepoReport) int) {
	slices.SortStableFunc(reports, func(a, b RepoReport) int {
		c := cmp(a, b)
		if reverse {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
}

// reportSource adapts reports to fuzzy.Source over their paths.
type reportSource []RepoReport

func (s reportSource) String(i int) string { return s[i].Path }
func (s reportSource) Len() int            { return len(s) }

// matching returns the reports whose path fuzzy-matches query, in input
// order. An empty query matches everything.
func matching(reports []RepoReport, query string) []RepoReport {
	if query == "" {
		return reports
	}

	matches := fuzzy.FindFrom(query, reportSource(reports))
	keep := make([]bool, len(reports))
	for _, m := range matches {
		keep[m.Index] = true
	}

	out := make([]RepoReport, 0, len(matches))
	for i, r := range reports {
		if keep[i] {
			out = append(out, r)
		}
	}
	return out
}
