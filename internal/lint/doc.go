// Package lint re-reads a diagram file line by line and reports what
// diagram.Parse silently skips, plus a few style checks.
//
// Syntax codes (SYN1xxx) are emitted exactly for the lines where
// diagram.IsValidLine returns false: both sides share diagram.Scan.
package lint
