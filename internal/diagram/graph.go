package diagram

import (
	"golang.org/x/text/cases"

	"arrowgraph/internal/connector"
)

// Node is one diagram vertex.
type Node struct {
	ID    string `json:"id" msgpack:"id"`
	Label string `json:"label" msgpack:"label"`
}

// Edge connects two nodes by their canonical IDs.
// An empty Label means the edge has no label.
type Edge struct {
	SourceID  string         `json:"source" msgpack:"source"`
	TargetID  string         `json:"target" msgpack:"target"`
	Connector connector.Kind `json:"connector" msgpack:"connector"`
	Label     string         `json:"label,omitempty" msgpack:"label,omitempty"`
}

func (e Edge) HasLabel() bool {
	return e.Label != ""
}

// Graph is the result of one Parse call.
// Nodes keep first-reference order; Edges keep line order and may repeat.
type Graph struct {
	Nodes []Node `json:"nodes" msgpack:"nodes"`
	Edges []Edge `json:"edges" msgpack:"edges"`
}

// Node finds a node by identifier using the same case-insensitive rule as the parser.
func (g Graph) Node(id string) (Node, bool) {
	fold := cases.Fold()
	key := fold.String(id)
	for _, n := range g.Nodes {
		if fold.String(n.ID) == key {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesFrom returns the edges whose source is id, in line order.
func (g Graph) EdgesFrom(id string) []Edge {
	n, ok := g.Node(id)
	if !ok {
		return nil
	}
	var out []Edge
	for _, e := range g.Edges {
		if e.SourceID == n.ID {
			out = append(out, e)
		}
	}
	return out
}

// Empty reports whether nothing was parsed.
func (g Graph) Empty() bool {
	return len(g.Nodes) == 0 && len(g.Edges) == 0
}
