// Package connector defines the closed set of edge connectors recognised by
// arrow-notation diagrams.
//
// Connectors are matched as literal byte sequences through a lookup table, never
// through a pattern engine, so "-.->" accepts only a literal dot.
package connector
