package diagram

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"arrowgraph/internal/connector"
)

// LineKind is the coarse classification of one input line.
type LineKind uint8

const (
	// LineBlank is empty after trimming.
	LineBlank LineKind = iota
	// LineComment starts with "//" after trimming.
	LineComment
	// LineCandidate is everything else and goes to the matcher.
	LineCandidate
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineCandidate:
		return "candidate"
	}
	return "unknown"
}

// Fault says where a candidate line stopped matching.
type Fault uint8

const (
	// FaultNone: the line matched, or was never a candidate.
	FaultNone Fault = iota
	// FaultMissingSource: the line does not start with an identifier.
	FaultMissingSource
	// FaultMissingConnector: no known connector follows the source.
	FaultMissingConnector
	// FaultMissingTarget: no identifier follows the connector.
	FaultMissingTarget
	// FaultTrailingText: something other than ':' follows the target.
	FaultTrailingText
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultMissingSource:
		return "missing source"
	case FaultMissingConnector:
		return "missing connector"
	case FaultMissingTarget:
		return "missing target"
	case FaultTrailingText:
		return "trailing text"
	}
	return "unknown"
}

// Match is a successfully matched edge line.
// Offsets are byte positions in the line passed to Scan or MatchLine.
type Match struct {
	Source    string
	Connector connector.Kind
	Target    string
	Label     string

	SourceAt    int
	ConnectorAt int
	TargetAt    int
	// SeparatorAt is the offset of ':' or -1 when the line has no label part.
	SeparatorAt int
	LabelAt     int
}

// HasSeparator reports whether the line carried a ':' label part, even an empty one.
func (m Match) HasSeparator() bool {
	return m.SeparatorAt >= 0
}

// LineResult is the outcome of scanning one line.
type LineResult struct {
	Kind  LineKind
	Match Match
	Fault Fault
	// FaultAt is the byte offset in the line where matching failed.
	FaultAt int
}

// OK reports whether the line is blank, a comment or a matched edge.
func (r LineResult) OK() bool {
	return r.Kind != LineCandidate || r.Fault == FaultNone
}

// Edge reports whether the line produced an edge.
func (r LineResult) Edge() bool {
	return r.Kind == LineCandidate && r.Fault == FaultNone
}

// Classify trims line and sorts it into blank, comment or candidate.
func Classify(line string) LineKind {
	return classifyTrimmed(strings.TrimSpace(line))
}

func classifyTrimmed(trimmed string) LineKind {
	switch {
	case trimmed == "":
		return LineBlank
	case strings.HasPrefix(trimmed, "//"):
		return LineComment
	default:
		return LineCandidate
	}
}

// MatchLine runs the edge matcher on one line.
// Blank and comment lines do not match.
func MatchLine(line string) (Match, bool) {
	res := Scan(line)
	if !res.Edge() {
		return Match{}, false
	}
	return res.Match, true
}

// Scan classifies line and, for candidates, matches the edge grammar
//
//	identifier WS? connector WS? identifier (WS? ':' WS? label)?
//
// Parse, IsValidLine and the lint pass all go through Scan.
func Scan(line string) LineResult {
	trimmed := strings.TrimSpace(line)
	kind := classifyTrimmed(trimmed)
	if kind != LineCandidate {
		return LineResult{Kind: kind}
	}
	base := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))

	m, fault, at := matchTrimmed(trimmed)
	if fault != FaultNone {
		return LineResult{Kind: kind, Fault: fault, FaultAt: base + at}
	}
	m.SourceAt += base
	m.ConnectorAt += base
	m.TargetAt += base
	m.LabelAt += base
	if m.SeparatorAt >= 0 {
		m.SeparatorAt += base
	}
	return LineResult{Kind: kind, Match: m}
}

func matchTrimmed(s string) (Match, Fault, int) {
	srcEnd := scanWord(s, 0)
	if srcEnd == 0 {
		return Match{}, FaultMissingSource, 0
	}

	connAt := skipSpace(s, srcEnd)
	kind, n := connector.Prefix(s[connAt:])
	if !kind.Valid() {
		return Match{}, FaultMissingConnector, connAt
	}

	tgtAt := skipSpace(s, connAt+n)
	tgtEnd := scanWord(s, tgtAt)
	if tgtEnd == tgtAt {
		return Match{}, FaultMissingTarget, tgtAt
	}

	m := Match{
		Source:      s[:srcEnd],
		Connector:   kind,
		Target:      s[tgtAt:tgtEnd],
		SourceAt:    0,
		ConnectorAt: connAt,
		TargetAt:    tgtAt,
		SeparatorAt: -1,
		LabelAt:     len(s),
	}

	sep := skipSpace(s, tgtEnd)
	if sep == len(s) {
		return m, FaultNone, 0
	}
	if s[sep] != ':' {
		return Match{}, FaultTrailingText, sep
	}
	// s уже обрезана справа, поэтому достаточно пропустить пробелы слева
	labelAt := skipSpace(s, sep+1)
	m.SeparatorAt = sep
	m.LabelAt = labelAt
	m.Label = s[labelAt:]
	return m, FaultNone, 0
}

// scanWord returns the end offset of the run of word characters starting at i.
func scanWord(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isWordRune(r, size) {
			break
		}
		i += size
	}
	return i
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// isWordRune accepts letters, decimal digits, non-spacing marks and connector
// punctuation ('_' among them). Invalid UTF-8 never counts.
func isWordRune(r rune, size int) bool {
	if r == utf8.RuneError && size <= 1 {
		return false
	}
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return unicode.Is(unicode.Nd, r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Pc, r)
}
