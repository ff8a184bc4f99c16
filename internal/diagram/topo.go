package diagram

import "slices"

// Topo is a topological view of a graph's directed edges.
type Topo struct {
	// Order lists acyclic nodes so that every directed edge points forward.
	Order []string `json:"order"`
	// Batches groups Order into waves with no edges between members.
	Batches [][]string `json:"batches"`
	Cyclic  bool       `json:"cyclic"`
	// Cycles holds nodes that sit on or behind a cycle, in node order.
	Cycles []string `json:"cycles,omitempty"`
}

// Toposort orders g by Kahn's algorithm. Only single-headed connectors
// (-->, -.->, ==>) constrain the order; --- and <--> do not. Ties keep node
// order, so the result is deterministic.
func Toposort(g Graph) *Topo {
	index := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		index[n.ID] = i
	}
	out := make([][]int, len(g.Nodes))
	indeg := make([]int, len(g.Nodes))
	for _, e := range g.Edges {
		if !e.Connector.Directed() {
			continue
		}
		from, okFrom := index[e.SourceID]
		to, okTo := index[e.TargetID]
		if !okFrom || !okTo {
			continue
		}
		out[from] = append(out[from], to)
		indeg[to]++
	}

	topo := &Topo{
		Order:   make([]string, 0, len(g.Nodes)),
		Batches: make([][]string, 0),
	}
	current := make([]int, 0, len(g.Nodes))
	for i := range g.Nodes {
		if indeg[i] == 0 {
			current = append(current, i)
		}
	}

	for len(current) > 0 {
		batch := make([]string, 0, len(current))
		var next []int
		for _, i := range current {
			batch = append(batch, g.Nodes[i].ID)
			topo.Order = append(topo.Order, g.Nodes[i].ID)
			for _, to := range out[i] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		topo.Batches = append(topo.Batches, batch)
		slices.Sort(next)
		current = next
	}

	if len(topo.Order) != len(g.Nodes) {
		topo.Cyclic = true
		for i, n := range g.Nodes {
			if indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, n.ID)
			}
		}
	}
	return topo
}
