// Package trace records what the arrowgraph driver is doing: which files it
// loads, parses and lints, and how long each step takes.
//
// Enable it from the command line:
//
//	arrowgraph lint --trace=- --trace-level=detail ./diagrams
//
// Tracers travel on context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lint", 0)
//	defer span.End("")
//
// Levels: off, error, phase (driver + pass), detail (+ per-file), debug.
// Scopes: ScopeDriver is one CLI command, ScopePass is a phase such as
// "load" or "lint", ScopeFile is work on one diagram file.
package trace
