package output

import (
	"fmt"
	"slices"
	"strings"
)

// Column names a column of the status table.
type Column string

// Table columns.
const (
	ColDir    Column = "dir"
	ColStatus Column = "status"
	ColBranch Column = "branch"
	ColRemote Column = "remote"
	ColURL    Column = "url"
	ColIdent  Column = "ident"
	ColMTime  Column = "mtime"
	ColStash  Column = "stash"
)

// DefaultColumns are shown when no column spec is given.
var DefaultColumns = []Column{ColDir, ColStatus, ColBranch, ColRemote, ColURL, ColIdent}

// AllColumns lists every known column, defaults first.
var AllColumns = append(slices.Clone(DefaultColumns), ColMTime, ColStash)

// ParseColumns applies a column spec to [DefaultColumns].
//
// The spec is a comma separated list processed left to right: "-" clears
// the list, "-name" removes a column and "name" appends it, moving it to
// the end if already present. The last mention of a column wins. Unknown
// names are an error.
func ParseColumns(spec string) ([]Column, error) {
	cols := slices.Clone(DefaultColumns)

	for token := range strings.SplitSeq(spec, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		switch {
		case token == "":
			continue
		case token == "-":
			cols = cols[:0]
		case strings.HasPrefix(token, "-"):
			col, err := parseColumn(token[1:])
			if err != nil {
				return nil, err
			}
			cols = slices.DeleteFunc(cols, func(c Column) bool { return c == col })
		default:
			col, err := parseColumn(token)
			if err != nil {
				return nil, err
			}
			cols = slices.DeleteFunc(cols, func(c Column) bool { return c == col })
			cols = append(cols, col)
		}
	}
	return cols, nil
}

func parseColumn(name string) (Column, error) {
	col := Column(name)
	if !slices.Contains(AllColumns, col) {
		names := make([]string, len(AllColumns))
		for i, c := range AllColumns {
			names[i] = string(c)
		}
		return "", fmt.Errorf("unknown column %q (available: %s)", name, strings.Join(names, ", "))
	}
	return col, nil
}
