package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"arrowgraph/internal/diag"
	"arrowgraph/internal/source"
	"arrowgraph/internal/trace"
)

// ListDiagramFiles walks dir and returns files with one of exts, sorted.
func ListDiagramFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git и т.п.) пропускаем
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LintDir lints every diagram file under dir in parallel.
// Results follow the sorted file order. A file that cannot be read yields a
// result carrying an IO9001 diagnostic; only walk errors and cancellation
// fail the whole call.
func LintDir(ctx context.Context, dir string, opts LintOptions) (*source.FileSet, []LintResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "lint-dir")
	defer span.End(dir)

	files, err := ListDiagramFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	for _, path := range files {
		emit(opts.Sink, Event{File: path, Status: StatusQueued})
	}

	// Загрузка последовательная: FileSet не потокобезопасен.
	loadCtx, loadSpan := trace.Start(ctx, trace.ScopePass, "load")
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, err := loadTimed(fileSet, path, opts.Timer)
		if err != nil {
			trace.Error(loadCtx, trace.ScopeFile, "load", err)
			loadErrors[path] = err
			// пустая заглушка, чтобы у IO-диагностики было место
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = id
	}
	loadSpan.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	lintCtx, lintSpan := trace.Start(ctx, trace.ScopePass, "lint")
	defer lintSpan.End("")

	// каждая горутина пишет только в свой индекс
	results := make([]LintResult, len(files))
	g, gctx := errgroup.WithContext(lintCtx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(ioDiagnostic(fileIDs[path], path, loadErr))
				results[i] = LintResult{Path: path, FileID: fileIDs[path], Bag: bag}
				emit(opts.Sink, Event{File: path, Status: StatusError, Err: loadErr, Errors: 1})
				return nil
			}

			emit(opts.Sink, Event{File: path, Status: StatusWorking})
			start := time.Now()
			results[i] = lintLoaded(gctx, fileSet.Get(fileIDs[path]), opts)
			results[i].Path = path

			status := StatusDone
			errs := results[i].Bag.Count(diag.SevError)
			if errs > 0 {
				status = StatusError
			}
			emit(opts.Sink, Event{
				File:    path,
				Status:  status,
				Elapsed: time.Since(start),
				Errors:  errs,
				Cached:  results[i].Cached,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
