package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/gitoverit/internal/analyze"
	"github.com/raphi011/gitoverit/internal/config"
	"github.com/raphi011/gitoverit/internal/discovery"
	"github.com/raphi011/gitoverit/internal/log"
	"github.com/raphi011/gitoverit/internal/output"
	"github.com/raphi011/gitoverit/internal/report"
	"github.com/raphi011/gitoverit/internal/scheduler"
	"github.com/raphi011/gitoverit/internal/ui/progress"
	"github.com/raphi011/gitoverit/internal/ui/styles"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
)

const autoWorkers = scheduler.AutoWorkers

// scanFlags holds the raw command line flags.
type scanFlags struct {
	fetch      bool
	format     string
	dirtyOnly  bool
	sort       string
	reverse    bool
	workers    int
	columns    string
	match      string
	errors     string
	configPath string
	verbose    bool
	quiet      bool
}

// scanOptions is the validated configuration of one scan.
type scanOptions struct {
	Roots     []string
	Fetch     bool
	Workers   int
	Scope     analyze.ActivityScope
	Format    string
	Aggregate report.Options
	Columns   []output.Column
	Errors    output.ErrorMode
	Theme     config.ThemeConfig
}

// resolveOptions merges flags over config. A flag wins when it was set on
// the command line; changed reports that. Every invalid value is reported.
func resolveOptions(cfg config.Config, f scanFlags, changed func(string) bool, args []string) (scanOptions, error) {
	pick := func(flag string, flagVal, cfgVal string) string {
		if changed(flag) || cfgVal == "" {
			return flagVal
		}
		return cfgVal
	}
	pickBool := func(flag string, flagVal, cfgVal bool) bool {
		if changed(flag) {
			return flagVal
		}
		return cfgVal
	}

	opts := scanOptions{
		Roots:   args,
		Fetch:   pickBool("fetch", f.fetch, cfg.Fetch),
		Workers: f.workers,
		Theme:   cfg.Theme,
	}
	if len(opts.Roots) == 0 {
		opts.Roots = cfg.Roots
	}
	if len(opts.Roots) == 0 {
		opts.Roots = []string{"."}
	}
	if !changed("workers") && cfg.Workers != nil {
		opts.Workers = *cfg.Workers
	}

	var errs *multierror.Error
	var err error

	if opts.Workers < autoWorkers {
		errs = multierror.Append(errs, fmt.Errorf("invalid workers %d: must be -1 (auto), 0 (sequential) or positive", opts.Workers))
	}

	switch opts.Format = strings.ToLower(f.format); opts.Format {
	case formatTable, formatJSON:
	default:
		errs = multierror.Append(errs, fmt.Errorf("invalid format %q: must be table or json", f.format))
	}

	if opts.Scope, err = analyze.ParseActivityScope(cfg.ActivityScope); err != nil {
		errs = multierror.Append(errs, err)
	}

	opts.Aggregate = report.Options{
		Match:     f.match,
		DirtyOnly: pickBool("dirty-only", f.dirtyOnly, cfg.DirtyOnly),
		Reverse:   pickBool("reverse", f.reverse, cfg.Reverse),
	}
	if opts.Aggregate.Sort, err = report.ParseSortKey(pick("sort", f.sort, cfg.Sort)); err != nil {
		errs = multierror.Append(errs, err)
	}

	if opts.Errors, err = output.ParseErrorMode(pick("errors", f.errors, cfg.Errors)); err != nil {
		errs = multierror.Append(errs, err)
	}
	opts.Aggregate.KeepFailed = opts.Errors != output.ErrorsHide

	if opts.Columns, err = output.ParseColumns(pick("columns", f.columns, cfg.Columns)); err != nil {
		errs = multierror.Append(errs, err)
	}

	return opts, errs.ErrorOrNil()
}

// showProgress reports whether the progress display should be drawn. It
// stays off with --quiet, and with --verbose so it does not tear debug lines.
func showProgress(quiet, verbose bool) bool {
	if quiet || verbose {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runScan discovers, analyzes and prints the repositories below opts.Roots.
func runScan(ctx context.Context, opts scanOptions, withProgress bool) error {
	logger := log.FromContext(ctx)
	start := time.Now()

	var listener scheduler.Listener = scheduler.NopListener{}
	if withProgress {
		listener = progress.NewTracker()
	}

	repos := (&discovery.Discoverer{}).Discover(ctx, opts.Roots)
	reports, err := scheduler.Run(ctx, repos, scheduler.Options{
		Analyzer: analyze.New(opts.Scope),
		Workers:  opts.Workers,
		Fetch:    opts.Fetch,
	}, listener)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Failed() {
			failed++
		}
	}
	logger.Debug("scan finished", "repos", len(reports), "failed", failed,
		"dur", time.Since(start).Round(time.Millisecond))

	reports = report.Aggregate(reports, opts.Aggregate)
	out := output.FromContext(ctx)

	if opts.Format == formatJSON {
		return output.RenderJSON(out.Writer(), reports)
	}

	if len(reports) == 0 {
		logger.Println("No repositories found")
		return nil
	}

	styles.Init(opts.Theme)
	return output.RenderTable(out.Writer(), reports, output.TableOptions{
		Columns: opts.Columns,
		Errors:  opts.Errors,
		BaseDir: workingDir(),
	})
}

// workingDir returns the canonical current directory, or "" if unknown.
func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(wd); err == nil {
		return resolved
	}
	return wd
}
