package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/raphi011/gitoverit/internal/report"
)

// jsonReport is the serialized form of a report. Optional strings and
// times are null when unknown.
type jsonReport struct {
	Path        string   `json:"path"`
	RemoteURL   *string  `json:"remote_url"`
	Upstream    *string  `json:"upstream"`
	Branch      string   `json:"branch"`
	Detached    bool     `json:"detached"`
	Ahead       int      `json:"ahead"`
	Behind      int      `json:"behind"`
	Staged      int      `json:"staged"`
	Unstaged    int      `json:"unstaged"`
	Untracked   int      `json:"untracked"`
	Conflicted  int      `json:"conflicted"`
	Stashes     int      `json:"stashes"`
	Submodules  int      `json:"submodules"`
	Additions   int      `json:"additions"`
	Deletions   int      `json:"deletions"`
	Author      *string  `json:"author"`
	CommitTime  *float64 `json:"commit_time"`
	LatestMTime *float64 `json:"latest_mtime"`
	State       *string  `json:"state"`
	Dirty       bool     `json:"dirty"`
	FetchError  *string  `json:"fetch_error"`
	Error       *string  `json:"error"`
}

// RenderJSON writes reports as an indented JSON array. Times are unix
// seconds with sub-second precision.
func RenderJSON(w io.Writer, reports []report.RepoReport) error {
	out := make([]jsonReport, len(reports))
	for i, r := range reports {
		out[i] = jsonReport{
			Path:        r.Path,
			RemoteURL:   optString(r.RemoteURL),
			Upstream:    optString(r.Upstream),
			Branch:      r.Branch,
			Detached:    r.Detached,
			Ahead:       r.Ahead,
			Behind:      r.Behind,
			Staged:      r.Staged,
			Unstaged:    r.Unstaged,
			Untracked:   r.Untracked,
			Conflicted:  r.Conflicted,
			Stashes:     r.Stashes,
			Submodules:  r.Submodules,
			Additions:   r.Additions,
			Deletions:   r.Deletions,
			Author:      optString(r.Author),
			CommitTime:  unixSeconds(r.CommitTime),
			LatestMTime: unixSeconds(r.LatestMTime),
			State:       optString(r.State),
			Dirty:       r.Dirty,
			FetchError:  optString(r.FetchError),
			Error:       optString(r.Error),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func unixSeconds(t time.Time) *float64 {
	if t.IsZero() {
		return nil
	}
	secs := float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
	return &secs
}
