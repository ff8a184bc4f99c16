package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"

	"arrowgraph/internal/diagram"
)

// GraphOpts configures GraphPretty.
type GraphOpts struct {
	Color bool
	// Order appends the topological batches of the directed edges.
	Order bool
}

// GraphPretty prints nodes then edges, one per line:
//
//	nodes (2):
//	  Start
//	  Stop
//	edges (1):
//	  Start --> Stop : go
func GraphPretty(w io.Writer, g diagram.Graph, opts GraphOpts) error {
	head := color.New(color.Bold)
	conn := color.New(color.FgCyan)
	label := color.New(color.FgGreen)
	for _, c := range []*color.Color{head, conn, label} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if _, err := fmt.Fprintf(w, "%s\n", head.Sprintf("nodes (%d):", len(g.Nodes))); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		if _, err := fmt.Fprintf(w, "  %s\n", n.ID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n", head.Sprintf("edges (%d):", len(g.Edges))); err != nil {
		return err
	}
	for _, e := range g.Edges {
		line := fmt.Sprintf("  %s %s %s", e.SourceID, conn.Sprint(e.Connector.Token()), e.TargetID)
		if e.HasLabel() {
			line += " : " + label.Sprint(e.Label)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if !opts.Order {
		return nil
	}

	topo := diagram.Toposort(g)
	if _, err := fmt.Fprintf(w, "%s\n", head.Sprintf("order (%d):", len(topo.Batches))); err != nil {
		return err
	}
	for i, batch := range topo.Batches {
		if _, err := fmt.Fprintf(w, "  %d: %s\n", i+1, strings.Join(batch, " ")); err != nil {
			return err
		}
	}
	if topo.Cyclic {
		if _, err := fmt.Fprintf(w, "%s %s\n", head.Sprint("cycle:"), strings.Join(topo.Cycles, " ")); err != nil {
			return err
		}
	}
	return nil
}

// GraphJSON writes g as indented JSON; connectors appear as their literal tokens.
func GraphJSON(w io.Writer, g diagram.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

// GraphMsgpack writes g in MessagePack for rendering layers that consume it.
func GraphMsgpack(w io.Writer, g diagram.Graph) error {
	return msgpack.NewEncoder(w).Encode(g)
}

// DecodeGraphMsgpack reads a graph written by GraphMsgpack.
// Missing node or edge arrays decode as empty slices.
func DecodeGraphMsgpack(r io.Reader) (diagram.Graph, error) {
	var g diagram.Graph
	if err := msgpack.NewDecoder(r).Decode(&g); err != nil {
		return diagram.Graph{}, fmt.Errorf("decode graph: %w", err)
	}
	if g.Nodes == nil {
		g.Nodes = []diagram.Node{}
	}
	if g.Edges == nil {
		g.Edges = []diagram.Edge{}
	}
	return g, nil
}
