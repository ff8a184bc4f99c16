package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"arrowgraph/internal/diag"
	"arrowgraph/internal/diagfmt"
	"arrowgraph/internal/driver"
	"arrowgraph/internal/observ"
	"arrowgraph/internal/source"
	"arrowgraph/internal/version"
)

var lintFormats = []string{"pretty", "json", "sarif", "short"}

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <file|directory|->",
	Short: "Report malformed lines and suspicious edges in diagram files",
	Long: `Lint a diagram file, every diagram file within a directory, or standard input ("-").
Exits with status 1 when any error diagnostic is reported`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	addLintFlags(lintCmd)
}

func addLintFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings and infos")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Bool("no-notes", false, "omit diagnostic notes from output")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse lint results for unchanged files from the disk cache")
	cmd.Flags().Int("context", 0, "source lines of context shown before each pretty diagnostic")
}

// lintRun is everything a lint invocation needs after flags are resolved.
type lintRun struct {
	rc        *runConfig
	format    string
	opts      driver.LintOptions
	ui        uiMode
	withNotes bool
	ctxLines  int
}

func runLint(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	run, err := resolveLintRun(cmd)
	if err != nil {
		return err
	}
	target := args[0]

	var (
		fs      *source.FileSet
		results []driver.LintResult
	)
	switch {
	case target == "-":
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		var res *driver.LintResult
		fs, res = driver.LintSource(cmd.Context(), "<stdin>", content, run.opts)
		results = []driver.LintResult{*res}
	default:
		st, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", target, err)
		}
		if st.IsDir() {
			fs, results, err = lintDirectory(cmd, target, run)
			if err != nil {
				return err
			}
		} else {
			var res *driver.LintResult
			fs, res, err = driver.LintFile(cmd.Context(), target, run.opts)
			if err != nil {
				return err
			}
			results = []driver.LintResult{*res}
		}
	}

	bag := diag.NewBag(0)
	cached := 0
	for _, res := range results {
		bag.Merge(res.Bag)
		if res.Cached {
			cached++
		}
	}
	bag.Sort()
	bag.Dedup()

	if err := writeLintOutput(cmd, run, bag, fs); err != nil {
		return err
	}

	if !run.rc.quiet && run.format == "pretty" {
		printLintSummary(cmd.ErrOrStderr(), bag, len(results), cached)
	}
	if run.rc.timings && !run.rc.quiet && run.format != "json" {
		printTimings(cmd.ErrOrStderr(), run.opts.Timer.Report())
	}
	if bag.HasErrors() {
		return errFindings
	}
	return nil
}

func resolveLintRun(cmd *cobra.Command) (*lintRun, error) {
	rc, err := loadRunConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg := rc.manifest.Config.Lint
	flags := cmd.Flags()

	format, err := rc.resolveFormat(cmd, lintFormats, "pretty")
	if err != nil {
		return nil, err
	}

	noWarnings, warningsAsErrors, jobs, useCache := cfg.NoWarnings, cfg.WarningsAsErrors, cfg.Jobs, cfg.Cache
	if flags.Changed("no-warnings") {
		if noWarnings, err = flags.GetBool("no-warnings"); err != nil {
			return nil, fmt.Errorf("failed to get no-warnings flag: %w", err)
		}
	}
	if flags.Changed("warnings-as-errors") {
		if warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
			return nil, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
	}
	if noWarnings && warningsAsErrors {
		return nil, fmt.Errorf("no-warnings and warnings-as-errors cannot be used together")
	}
	if flags.Changed("jobs") {
		if jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return nil, fmt.Errorf("--jobs must be >= 0, got %d", jobs)
		}
	}
	if flags.Changed("cache") {
		if useCache, err = flags.GetBool("cache"); err != nil {
			return nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}

	noNotes, err := flags.GetBool("no-notes")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-notes flag: %w", err)
	}
	ctxLines, err := flags.GetInt("context")
	if err != nil {
		return nil, fmt.Errorf("failed to get context flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return nil, err
	}

	run := &lintRun{
		rc:        rc,
		format:    format,
		ui:        mode,
		withNotes: !noNotes,
		ctxLines:  ctxLines,
		opts: driver.LintOptions{
			MaxDiagnostics: rc.maxDiagnostics,
			Jobs:           jobs,
			Extensions:     cfg.Extensions,
			Timer:          observ.NewTimer(),
		},
	}
	run.opts.NoWarnings = noWarnings
	run.opts.WarningsAsErrors = warningsAsErrors

	if useCache {
		cache, err := driver.OpenDiskCache("arrowgraph")
		if err != nil {
			// без кэша всё равно работаем
			if !rc.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: lint cache disabled: %v\n", err)
			}
		} else {
			run.opts.Cache = cache
		}
	}
	return run, nil
}

func lintDirectory(cmd *cobra.Command, dir string, run *lintRun) (*source.FileSet, []driver.LintResult, error) {
	// прогресс только поверх человекочитаемого вывода
	if run.format == "pretty" && !run.rc.quiet && run.ui.useTUI() {
		files, err := driver.ListDiagramFiles(dir, run.opts.Extensions)
		if err != nil {
			return nil, nil, err
		}
		if len(files) > 0 {
			return runLintWithUI(cmd.Context(), "linting "+dir, files, dir, run.opts)
		}
	}
	return driver.LintDir(cmd.Context(), dir, run.opts)
}

func writeLintOutput(cmd *cobra.Command, run *lintRun, bag *diag.Bag, fs *source.FileSet) error {
	out := cmd.OutOrStdout()
	switch run.format {
	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         run.rc.pathMode,
			IncludeNotes:     run.withNotes,
		}
		if run.rc.timings {
			report := run.opts.Timer.Report()
			opts.Timings = &report
		}
		return diagfmt.JSON(out, bag, fs, opts)
	case "sarif":
		return diagfmt.Sarif(out, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "arrowgraph",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
		})
	case "short":
		return diagfmt.Short(out, bag, fs, run.withNotes)
	default:
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:     run.rc.color,
			Context:   run.ctxLines,
			PathMode:  run.rc.pathMode,
			ShowNotes: run.withNotes,
		})
		return nil
	}
}

func printLintSummary(out io.Writer, bag *diag.Bag, files, cached int) {
	msg := fmt.Sprintf("%d file(s) checked: %d error(s), %d warning(s)",
		files, bag.Count(diag.SevError), bag.Count(diag.SevWarning))
	if cached > 0 {
		msg += fmt.Sprintf(", %d from cache", cached)
	}
	fmt.Fprintln(out, msg)
}
