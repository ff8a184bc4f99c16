package lint

import (
	"arrowgraph/internal/diag"
	"arrowgraph/internal/source"
)

// Options tune which findings reach the reporter.
type Options struct {
	// NoWarnings drops warnings and infos. Syntax errors are always kept.
	NoWarnings bool
	// WarningsAsErrors promotes every warning to an error.
	WarningsAsErrors bool
}

// severityFilter applies Options on top of another reporter.
type severityFilter struct {
	next diag.Reporter
	opts Options
}

func (f severityFilter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if sev < diag.SevError && f.opts.NoWarnings {
		return
	}
	if sev == diag.SevWarning && f.opts.WarningsAsErrors {
		sev = diag.SevError
	}
	f.next.Report(code, sev, primary, msg, notes)
}
