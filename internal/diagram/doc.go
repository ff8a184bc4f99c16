// Package diagram parses arrow-notation text into a directed graph.
//
// The format is line oriented:
//
//	// comment
//	Start --> Process
//	Decision --> End : yes
//
// Each non-blank, non-comment line is one edge: a source identifier, one of the
// connectors from package connector, a target identifier and an optional label
// after ':'. Lines that do not match are skipped by Parse; IsValidLine and the
// lint pass report them instead.
//
// Identifiers are compared case-insensitively. The first spelling seen becomes
// the node's ID and Label, and edges always refer to that spelling.
//
// Everything here is a pure function of its input. Parse builds a fresh Registry
// per call, so independent inputs can be parsed from any number of goroutines.
package diagram
