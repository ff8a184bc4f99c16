package driver

import (
	"context"
	"fmt"
	"strconv"

	"arrowgraph/internal/diagram"
	"arrowgraph/internal/observ"
	"arrowgraph/internal/source"
	"arrowgraph/internal/trace"
)

// ParseResult is the graph of one file together with where it came from.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Graph   diagram.Graph
	Timing  observ.Report
}

// ParseFile loads path from disk and parses it.
func ParseFile(ctx context.Context, path string) (*ParseResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "parse")
	defer span.End(path)

	timer := observ.NewTimer()
	fs := source.NewFileSet()

	idx := timer.Begin("load")
	id, err := fs.Load(path)
	timer.End(idx, "")
	if err != nil {
		trace.Error(ctx, trace.ScopePass, "load", err)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseLoaded(ctx, fs, fs.Get(id), timer), nil
}

// ParseSource parses in-memory content under a display name ("-" for stdin).
func ParseSource(ctx context.Context, name string, content []byte) *ParseResult {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "parse")
	defer span.End(name)

	fs := source.NewFileSet()
	id := fs.AddBytes(name, content)
	return parseLoaded(ctx, fs, fs.Get(id), observ.NewTimer())
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, timer *observ.Timer) *ParseResult {
	_, span := trace.Start(ctx, trace.ScopePass, "parse")
	idx := timer.Begin("parse")
	graph := diagram.Parse(string(file.Content))
	timer.End(idx, "")
	span.WithExtra("nodes", strconv.Itoa(len(graph.Nodes))).
		WithExtra("edges", strconv.Itoa(len(graph.Edges))).
		End("")

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Graph:   graph,
		Timing:  timer.Report(),
	}
}
