package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitoverit/internal/config"
	"github.com/raphi011/gitoverit/internal/git"
	"github.com/raphi011/gitoverit/internal/log"
	"github.com/raphi011/gitoverit/internal/output"
)

// exitAborted is the exit status after an interrupt, as for shells.
const exitAborted = 130

// newRootCmd builds the gitoverit command. The context passed to Execute
// must carry the output printer.
func newRootCmd() *cobra.Command {
	var (
		f   scanFlags
		cfg config.Config
	)

	cmd := &cobra.Command{
		Use:   "gitoverit [dirs...]",
		Short: "Show the status of every git repository below some directories",
		Long: `gitoverit finds git repositories below the given directories (or the
configured roots, or the current directory) and prints one line per
repository: uncommitted changes, unpushed and unpulled commits, branch,
remote and latest author.

Repositories are analyzed in parallel while the directory walk is still
running. Submodules and repositories ignored by their parent are skipped.`,
		Example: `  gitoverit ~/src
  gitoverit --dirty-only --sort author ~/src ~/work
  gitoverit --fetch -j 4 --columns=-ident,mtime
  gitoverit --format json | jq '.[] | select(.dirty)'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(os.Stderr, f.verbose, f.quiet)
			cmd.SetContext(log.WithLogger(cmd.Context(), logger))

			var err error
			if cfg, err = loadConfig(f.configPath); err != nil {
				return err
			}

			return git.CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cfg, f, cmd.Flags().Changed, args)
			if err != nil {
				return err
			}
			return runScan(cmd.Context(), opts, showProgress(f.quiet, f.verbose))
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.fetch, "fetch", false, "Fetch every remote before reading status")
	flags.StringVar(&f.format, "format", formatTable, "Output format: table or json")
	flags.BoolVar(&f.dirtyOnly, "dirty-only", false, "Only show repositories with changes or unsynced commits")
	flags.StringVar(&f.sort, "sort", config.DefaultSort, "Sort by mtime, author or none")
	flags.BoolVar(&f.reverse, "reverse", false, "Reverse the sort order")
	flags.IntVarP(&f.workers, "workers", "j", autoWorkers, "Parallel analyses (-1 = auto, 0 = sequential)")
	flags.StringVar(&f.columns, "columns", "", "Table columns, e.g. -ident,mtime (dir status branch remote url ident mtime stash)")
	flags.StringVar(&f.match, "match", "", "Only show repositories whose path fuzzy-matches the query")
	flags.StringVar(&f.errors, "errors", config.DefaultErrors, "Show failed repositories: hide, short or full")
	flags.StringVar(&f.configPath, "config", "", "Config file (default $"+config.EnvConfigPath+" or ~/.config/gitoverit/config.toml)")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Show git commands and timings")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Suppress progress and log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{formatTable, formatJSON}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("sort", cobra.FixedCompletions(config.ValidSortKeys, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("errors", cobra.FixedCompletions(config.ValidErrorModes, cobra.ShellCompDirectiveNoFileComp))

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// Execute runs the root command and exits with a non-zero status on failure.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Stdout for the report; colors are downsampled to what it supports
	ctx = output.WithPrinter(ctx, colorprofile.NewWriter(os.Stdout, os.Environ()))

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	cancel()

	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "gitoverit: aborted")
		os.Exit(exitAborted)
	}
	fmt.Fprintln(os.Stderr, err)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Run 'gitoverit -h' for help")
	os.Exit(1)
}
