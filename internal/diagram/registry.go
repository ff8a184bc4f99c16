package diagram

import (
	"golang.org/x/text/cases"
)

// Registry deduplicates node identifiers case-insensitively while remembering
// the order and spelling in which they were first seen. Keys use full Unicode
// case folding, so Straße and STRASSE name the same node.
//
// A Registry is not safe for concurrent use; Parse creates one per call.
type Registry struct {
	fold  cases.Caser
	index map[string]int // folded id -> position in nodes
	nodes []Node
}

func NewRegistry() *Registry {
	return &Registry{
		fold:  cases.Fold(),
		index: make(map[string]int),
	}
}

// Key returns the folded form used for identity comparisons.
func (r *Registry) Key(id string) string {
	return r.fold.String(id)
}

// Ensure registers id if no node with the same folded key exists and returns
// the canonical (first-seen) spelling.
func (r *Registry) Ensure(id string) string {
	key := r.fold.String(id)
	if i, ok := r.index[key]; ok {
		return r.nodes[i].ID
	}
	r.index[key] = len(r.nodes)
	r.nodes = append(r.nodes, Node{ID: id, Label: id})
	return id
}

// Lookup returns the node registered under id's folded key.
func (r *Registry) Lookup(id string) (Node, bool) {
	i, ok := r.index[r.fold.String(id)]
	if !ok {
		return Node{}, false
	}
	return r.nodes[i], true
}

func (r *Registry) Len() int {
	return len(r.nodes)
}

// Nodes returns a copy of the registered nodes in insertion order.
func (r *Registry) Nodes() []Node {
	out := make([]Node, len(r.nodes))
	copy(out, r.nodes)
	return out
}
