// Package scheduler runs repository analyses concurrently with discovery.
//
// Discovery runs in its own goroutine and feeds a channel. A single
// collecting loop in the caller's goroutine submits every repository the
// moment it is discovered, receives finished reports and drives the
// [Listener]. A weighted semaphore bounds how many analyses run at once;
// submission itself never blocks, so discovery is never held up by slow
// repositories.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/raphi011/gitoverit/internal/log"
	"github.com/raphi011/gitoverit/internal/report"
)

// ErrNoAnalyzer is returned by [Run] when Options.Analyzer is nil.
var ErrNoAnalyzer = errors.New("scheduler: no analyzer configured")

// Analyzer produces the report of one repository. It must not fail:
// problems belong on the report. Implementations are called from many
// goroutines at once.
type Analyzer interface {
	Analyze(ctx context.Context, path string, fetch bool) report.RepoReport
}

// AnalyzerFunc adapts a function to [Analyzer].
type AnalyzerFunc func(ctx context.Context, path string, fetch bool) report.RepoReport

// Analyze calls f.
func (f AnalyzerFunc) Analyze(ctx context.Context, path string, fetch bool) report.RepoReport {
	return f(ctx, path, fetch)
}

// Options configures [Run].
type Options struct {
	Analyzer Analyzer
	// Workers is the number of concurrent analyses. Sequential (0)
	// discovers everything first and then analyzes in discovery order.
	// Negative values are resolved with [ResolveWorkers].
	Workers int
	// Fetch is passed through to the analyzer.
	Fetch bool
}

// result is a finished analysis on its way to the collecting loop.
type result struct {
	path   string
	report report.RepoReport
}

// Run analyzes every repository yielded by repos and returns the reports
// in completion order.
//
// When ctx is cancelled, discovery and submission stop, running analyses
// are cancelled (killing their git processes), and Run returns an error
// wrapping ctx.Err() once every goroutine has exited.
func Run(ctx context.Context, repos iter.Seq[string], opts Options, l Listener) ([]report.RepoReport, error) {
	if l == nil {
		l = NopListener{}
	}
	defer l.Done()

	if opts.Analyzer == nil {
		return nil, ErrNoAnalyzer
	}

	workers := opts.Workers
	if workers < Sequential {
		workers = ResolveWorkers(workers, runtime.NumCPU())
	}
	log.FromContext(ctx).Debug("starting scan", "workers", workers, "fetch", opts.Fetch)

	if workers == Sequential {
		return runSequential(ctx, repos, opts, l)
	}
	return runParallel(ctx, repos, opts, workers, l)
}

func runSequential(ctx context.Context, repos iter.Seq[string], opts Options, l Listener) ([]report.RepoReport, error) {
	var paths []string
	for path := range repos {
		if ctx.Err() != nil {
			break
		}
		l.Discovering(path)
		paths = append(paths, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, aborted(err)
	}
	l.TotalKnown(len(paths))

	reports := make([]report.RepoReport, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, aborted(err)
		}
		reports = append(reports, analyze(ctx, opts, path))
		l.Completed(i+1, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, aborted(err)
	}
	return reports, nil
}

func runParallel(ctx context.Context, repos iter.Seq[string], opts Options, workers int, l Listener) ([]report.RepoReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	sem := semaphore.NewWeighted(int64(workers))

	discovered := make(chan string)
	results := make(chan result)

	g.Go(func() error {
		defer close(discovered)
		for path := range repos {
			select {
			case discovered <- path:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	submit := func(path string) {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			r := analyze(ctx, opts, path)
			select {
			case results <- result{path: path, report: r}:
			case <-ctx.Done():
			}
			return nil
		})
	}

	var reports []report.RepoReport
	submitted, pending := 0, 0
	incoming := discovered

	for incoming != nil || pending > 0 {
		select {
		case path, ok := <-incoming:
			if !ok {
				incoming = nil
				l.TotalKnown(submitted)
				continue
			}
			l.Discovering(path)
			submitted++
			pending++
			submit(path)

		case res := <-results:
			pending--
			reports = append(reports, res.report)
			l.Completed(len(reports), res.path)

		case <-ctx.Done():
		}

		if ctx.Err() != nil {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		cancel()
		_ = g.Wait()
		return nil, aborted(err)
	}
	_ = g.Wait() // goroutines never fail; reports carry errors
	return reports, nil
}

// analyze runs one analysis, turning a panic into a failed report.
func analyze(ctx context.Context, opts Options, path string) (r report.RepoReport) {
	defer func() {
		if p := recover(); p != nil {
			log.FromContext(ctx).Debug("analysis panicked", "path", path, "panic", p)
			r = report.Failure(path, fmt.Errorf("panic during analysis: %v", p))
		}
	}()
	return opts.Analyzer.Analyze(ctx, path, opts.Fetch)
}

func aborted(err error) error {
	return fmt.Errorf("scan aborted: %w", err)
}
