// Package diag defines the diagnostic model shared by the lint pass, the
// driver and the output formatters.
//
// # Scope
//
// Package diag does no formatting and no IO. Rendering lives in
// internal/diagfmt; producing diagnostics is the job of internal/lint.
//
// # Data model
//
//   - Severity: Info, Warning, Error.
//   - Code: numeric identifier with a stable string form (SYN1002, LNT2001, IO9001).
//     SYN codes mark exactly the lines diagram.Parse skips.
//   - Message: short, actionable text.
//   - Primary: the source.Span the diagnostic points at.
//   - Notes: optional secondary spans, e.g. "first spelled here".
//
// # Emitting
//
// Producers talk to a Reporter. BagReporter collects into a bounded Bag and
// NopReporter drops everything. When a note is needed, chain
// ReportError/ReportWarning/ReportInfo with WithNote and Emit.
package diag
