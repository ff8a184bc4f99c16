package diagram

import "strings"

// Parse converts arrow-notation text into a Graph.
//
// The text is split on '\n'. Blank lines, comments and lines that do not match
// the edge grammar contribute nothing. Parse never fails: the worst case is a
// graph with no nodes and no edges.
func Parse(text string) Graph {
	b := NewBuilder()
	for _, line := range strings.Split(text, "\n") {
		b.Add(line)
	}
	return b.Graph()
}

// buildEdge registers source then target and returns the edge with canonical ids.
func buildEdge(reg *Registry, m Match) Edge {
	src := reg.Ensure(m.Source)
	tgt := reg.Ensure(m.Target)
	return Edge{
		SourceID:  src,
		TargetID:  tgt,
		Connector: m.Connector,
		Label:     m.Label,
	}
}

// Builder accumulates edges one line at a time. It backs incremental callers
// (the lint pass, editors) that need the per-line results Parse discards.
type Builder struct {
	reg   *Registry
	edges []Edge
}

func NewBuilder() *Builder {
	return &Builder{reg: NewRegistry(), edges: make([]Edge, 0)}
}

// Add scans one line, records its edge when it matches and returns the scan result.
func (b *Builder) Add(line string) LineResult {
	res := Scan(line)
	if res.Edge() {
		b.edges = append(b.edges, buildEdge(b.reg, res.Match))
	}
	return res
}

// Registry exposes the builder's node registry for identity queries.
func (b *Builder) Registry() *Registry {
	return b.reg
}

// Graph snapshots the current state. Later Add calls do not affect the returned value.
func (b *Builder) Graph() Graph {
	edges := make([]Edge, len(b.edges))
	copy(edges, b.edges)
	return Graph{Nodes: b.reg.Nodes(), Edges: edges}
}
