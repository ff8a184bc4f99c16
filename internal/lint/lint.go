package lint

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"arrowgraph/internal/connector"
	"arrowgraph/internal/diag"
	"arrowgraph/internal/diagram"
	"arrowgraph/internal/source"
)

// Summary counts what the pass saw and carries the graph it built on the way.
type Summary struct {
	Lines    int
	Blank    int
	Comments int
	Edges    int
	Invalid  int
	Graph    diagram.Graph
}

type edgeKey struct {
	source, target string
	conn           connector.Kind
	label          string
}

type checker struct {
	file    *source.File
	rep     diag.Reporter
	builder *diagram.Builder
	// first occurrence of every folded identifier
	firstSeen map[string]source.Span
	edges     map[edgeKey]source.Span
}

// File lints every line of file and reports findings to r.
// r may be nil, in which case only the Summary is useful.
func File(file *source.File, r diag.Reporter, opts Options) Summary {
	if r == nil {
		r = diag.NopReporter{}
	}
	c := &checker{
		file:      file,
		rep:       severityFilter{next: r, opts: opts},
		builder:   diagram.NewBuilder(),
		firstSeen: make(map[string]source.Span),
		edges:     make(map[edgeKey]source.Span),
	}

	var sum Summary
	if file == nil {
		sum.Graph = c.builder.Graph()
		return sum
	}
	count := file.LineCount()
	// trailing newline leaves an empty last line that is not worth counting
	if len(file.Content) > 0 && file.Content[len(file.Content)-1] == '\n' {
		count--
	}
	for n := uint32(1); n <= count; n++ {
		lineSpan := file.LineSpan(n)
		line := file.GetLine(n)
		res := c.builder.Add(line)
		sum.Lines++
		switch {
		case res.Kind == diagram.LineBlank:
			sum.Blank++
		case res.Kind == diagram.LineComment:
			sum.Comments++
		case res.Edge():
			sum.Edges++
			c.checkEdge(line, lineSpan, res.Match)
		default:
			sum.Invalid++
			c.reportFault(line, lineSpan, res)
		}
	}
	sum.Graph = c.builder.Graph()
	return sum
}

func (c *checker) reportFault(line string, lineSpan source.Span, res diagram.LineResult) {
	at := res.FaultAt
	found := describe(line, at)
	primary := lineSpan.Sub(offset(at), offset(at+tokenWidth(line, at)))

	switch res.Fault {
	case diagram.FaultMissingSource:
		diag.ReportError(c.rep, diag.SynMissingSource, primary,
			fmt.Sprintf("expected node identifier at start of line, found %s", found)).Emit()
	case diagram.FaultMissingConnector:
		diag.ReportError(c.rep, diag.SynMissingConnector, primary,
			fmt.Sprintf("expected connector (%s), found %s", strings.Join(connector.Tokens(), ", "), found)).Emit()
	case diagram.FaultMissingTarget:
		diag.ReportError(c.rep, diag.SynMissingTarget, primary,
			fmt.Sprintf("expected target identifier after connector, found %s", found)).Emit()
	case diagram.FaultTrailingText:
		// всё от позиции ошибки до конца строки
		end := len(strings.TrimRightFunc(line, unicode.IsSpace))
		primary = lineSpan.Sub(offset(at), offset(end))
		diag.ReportError(c.rep, diag.SynTrailingText, primary,
			fmt.Sprintf("unexpected %s after target; labels start with ':'", found)).Emit()
	}
}

func (c *checker) checkEdge(line string, lineSpan source.Span, m diagram.Match) {
	srcSpan := lineSpan.Sub(offset(m.SourceAt), offset(m.SourceAt+len(m.Source)))
	tgtSpan := lineSpan.Sub(offset(m.TargetAt), offset(m.TargetAt+len(m.Target)))
	c.checkIdent(m.Source, srcSpan)
	c.checkIdent(m.Target, tgtSpan)

	if m.HasSeparator() && m.Label == "" {
		sepSpan := lineSpan.Sub(offset(m.SeparatorAt), offset(m.SeparatorAt+1))
		diag.ReportWarning(c.rep, diag.LintEmptyLabel, sepSpan,
			"empty label after ':'; the edge is treated as unlabelled").Emit()
	}

	reg := c.builder.Registry()
	key := edgeKey{
		source: reg.Key(m.Source),
		target: reg.Key(m.Target),
		conn:   m.Connector,
		label:  m.Label,
	}
	edgeSpan := lineSpan.Sub(offset(m.SourceAt), offset(len(strings.TrimRightFunc(line, unicode.IsSpace))))
	if first, ok := c.edges[key]; ok {
		diag.ReportInfo(c.rep, diag.LintDuplicateEdge, edgeSpan,
			fmt.Sprintf("duplicate edge %s %s %s", m.Source, m.Connector.Token(), m.Target)).
			WithNote(first, "first defined here").
			Emit()
		return
	}
	c.edges[key] = edgeSpan
}

// checkIdent runs after the builder has registered id, so Lookup always succeeds.
func (c *checker) checkIdent(id string, sp source.Span) {
	reg := c.builder.Registry()
	key := reg.Key(id)
	first, seen := c.firstSeen[key]
	if !seen {
		c.firstSeen[key] = sp
		return
	}
	node, ok := reg.Lookup(id)
	if !ok || node.ID == id {
		return
	}
	diag.ReportWarning(c.rep, diag.LintCaseMismatch, sp,
		fmt.Sprintf("%q refers to node %q declared with different casing", id, node.ID)).
		WithNote(first, fmt.Sprintf("%q first spelled here", node.ID)).
		Emit()
}

// tokenWidth is the byte length of the non-space run at i, at least one rune.
func tokenWidth(line string, i int) int {
	if i >= len(line) {
		return 0
	}
	j := i
	for j < len(line) {
		r, size := utf8.DecodeRuneInString(line[j:])
		if unicode.IsSpace(r) {
			break
		}
		j += size
	}
	if j == i {
		_, size := utf8.DecodeRuneInString(line[i:])
		j += size
	}
	return j - i
}

func describe(line string, i int) string {
	if i >= len(strings.TrimRightFunc(line, unicode.IsSpace)) {
		return "end of line"
	}
	return fmt.Sprintf("%q", line[i:i+tokenWidth(line, i)])
}

func offset(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("line offset overflow: %w", err))
	}
	return v
}
