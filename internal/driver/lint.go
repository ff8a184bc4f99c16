package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"arrowgraph/internal/diag"
	"arrowgraph/internal/lint"
	"arrowgraph/internal/observ"
	"arrowgraph/internal/source"
	"arrowgraph/internal/trace"
)

// DefaultExtensions are scanned by LintDir when LintOptions.Extensions is empty.
var DefaultExtensions = []string{".arrow"}

// LintOptions configure LintFile, LintSource and LintDir.
type LintOptions struct {
	lint.Options
	// MaxDiagnostics bounds each file's bag; <= 0 means unlimited.
	MaxDiagnostics int
	// Jobs bounds LintDir parallelism; <= 0 means GOMAXPROCS.
	Jobs       int
	Extensions []string
	Sink       EventSink
	// Timer receives load and lint durations when set.
	Timer *observ.Timer
	// Cache stores results by file content when set.
	Cache *DiskCache
}

// LintResult is the outcome for one file.
type LintResult struct {
	Path    string
	FileID  source.FileID
	Bag     *diag.Bag
	Summary lint.Summary
	// Cached is true when the result came from the disk cache.
	Cached bool
}

// LintFile loads and lints one file from disk.
func LintFile(ctx context.Context, path string, opts LintOptions) (*source.FileSet, *LintResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "lint")
	defer span.End(path)

	fs := source.NewFileSet()
	id, err := loadTimed(fs, path, opts.Timer)
	if err != nil {
		trace.Error(ctx, trace.ScopePass, "load", err)
		return fs, nil, fmt.Errorf("load %s: %w", path, err)
	}
	res := lintLoaded(ctx, fs.Get(id), opts)
	return fs, &res, nil
}

// LintSource lints in-memory content under a display name.
func LintSource(ctx context.Context, name string, content []byte, opts LintOptions) (*source.FileSet, *LintResult) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "lint")
	defer span.End(name)

	fs := source.NewFileSet()
	id := fs.AddBytes(name, content)
	res := lintLoaded(ctx, fs.Get(id), opts)
	return fs, &res
}

func loadTimed(fs *source.FileSet, path string, timer *observ.Timer) (source.FileID, error) {
	start := time.Now()
	id, err := fs.Load(path)
	if timer != nil {
		timer.Add("load", time.Since(start))
	}
	return id, err
}

// lintLoaded runs the lint pass on file, consulting the cache first.
func lintLoaded(ctx context.Context, file *source.File, opts LintOptions) LintResult {
	_, span := trace.Start(ctx, trace.ScopeFile, "file:"+file.Path)
	start := time.Now()

	res := LintResult{
		Path:   file.Path,
		FileID: file.ID,
	}

	var all *diag.Bag
	if cached, ok := opts.Cache.lookup(file, opts.Options); ok {
		all, res.Summary, res.Cached = cached.restore(file.ID), cached.summary(), true
	} else {
		all = diag.NewBag(0)
		res.Summary = lint.File(file, diag.BagReporter{Bag: all}, opts.Options)
		if err := opts.Cache.store(file, opts.Options, all, res.Summary); err != nil {
			trace.Error(ctx, trace.ScopeFile, "cache", err)
		}
	}

	res.Bag = diag.NewBag(opts.MaxDiagnostics)
	for _, d := range all.Items() {
		res.Bag.Add(d)
	}

	if opts.Timer != nil {
		opts.Timer.Add("lint", time.Since(start))
	}
	span.WithExtra("edges", strconv.Itoa(res.Summary.Edges)).
		WithExtra("diagnostics", strconv.Itoa(res.Bag.Len())).
		WithExtra("cached", strconv.FormatBool(res.Cached)).
		End("")
	return res
}

// ioDiagnostic describes a file that could not be read.
func ioDiagnostic(id source.FileID, path string, err error) *diag.Diagnostic {
	return diag.NewError(diag.IOLoadFileError, source.Span{File: id}, fmt.Sprintf("failed to load %s: %v", path, err))
}
