package diagram_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"arrowgraph/internal/connector"
	"arrowgraph/internal/diagram"
)

const sampleFlowchart = `// Sample flowchart
Start --> Process
Process --- End
Decision <--> Both
Maybe -.-> Perhaps
Important ==> Critical
Decision --> End : yes`

func nodes(ids ...string) []diagram.Node {
	out := make([]diagram.Node, len(ids))
	for i, id := range ids {
		out[i] = diagram.Node{ID: id, Label: id}
	}
	return out
}

func TestParseConnectorRoundTrip(t *testing.T) {
	for _, k := range connector.All() {
		t.Run(k.String(), func(t *testing.T) {
			g := diagram.Parse("A " + k.Token() + " B")
			want := diagram.Graph{
				Nodes: nodes("A", "B"),
				Edges: []diagram.Edge{{SourceID: "A", TargetID: "B", Connector: k}},
			}
			if diff := cmp.Diff(want, g); diff != "" {
				t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLabel(t *testing.T) {
	g := diagram.Parse("Decision --> End : yes")
	if len(g.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(g.Edges))
	}
	if got := g.Edges[0].Label; got != "yes" {
		t.Fatalf("label = %q, want %q", got, "yes")
	}

	g = diagram.Parse("A --> B")
	if g.Edges[0].HasLabel() {
		t.Fatalf("unexpected label %q", g.Edges[0].Label)
	}
}

func TestParseLabelForms(t *testing.T) {
	cases := []struct {
		in    string
		label string
	}{
		{"A --> B:yes", "yes"},
		{"A --> B :   two words  ", "two words"},
		{"A-->B: a: b", "a: b"},
		{"A --> B\t:\tok", "ok"},
		{"A --> B :", ""},
		{"A --> B:   ", ""},
	}
	for _, tc := range cases {
		g := diagram.Parse(tc.in)
		if len(g.Edges) != 1 {
			t.Fatalf("%q: expected 1 edge, got %d", tc.in, len(g.Edges))
		}
		if got := g.Edges[0].Label; got != tc.label {
			t.Errorf("%q: label = %q, want %q", tc.in, got, tc.label)
		}
	}
}

func TestParseIgnoresCommentsAndBlanks(t *testing.T) {
	withComment := diagram.Parse("// note\nA --> B")
	plain := diagram.Parse("A --> B")
	if diff := cmp.Diff(plain, withComment); diff != "" {
		t.Fatalf("comment changed result (-want +got):\n%s", diff)
	}

	withBlank := diagram.Parse("A --> B\n\nB --> C")
	noBlank := diagram.Parse("A --> B\nB --> C")
	if diff := cmp.Diff(noBlank, withBlank); diff != "" {
		t.Fatalf("blank line changed result (-want +got):\n%s", diff)
	}
	if len(withBlank.Nodes) != 3 || len(withBlank.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges", len(withBlank.Nodes), len(withBlank.Edges))
	}
}

func TestParseDeduplicatesNodes(t *testing.T) {
	g := diagram.Parse("A --> B\nB --> C\nA --> C")
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes))
	}
	if len(g.Edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(g.Edges))
	}
}

func TestParseCaseInsensitiveIdentity(t *testing.T) {
	g := diagram.Parse("Start --> end\nSTART --> End\nstart -.-> END : again")
	want := diagram.Graph{
		Nodes: nodes("Start", "end"),
		Edges: []diagram.Edge{
			{SourceID: "Start", TargetID: "end", Connector: connector.Arrow},
			{SourceID: "Start", TargetID: "end", Connector: connector.Arrow},
			{SourceID: "Start", TargetID: "end", Connector: connector.Dotted, Label: "again"},
		},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}

	n, ok := g.Node("START")
	if !ok || n.Label != "Start" {
		t.Fatalf("Node(START) = %+v, %v", n, ok)
	}
	if got := len(g.EdgesFrom("sTaRt")); got != 3 {
		t.Fatalf("EdgesFrom = %d edges", got)
	}
}

func TestParseUnicodeCaseFolding(t *testing.T) {
	g := diagram.Parse("Éclair --> Ωmega\néCLAIR --> ωMEGA\nEclair --> Ωmega")
	// É и E без диакритики: разные узлы
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %+v", g.Nodes)
	}
	if g.Edges[1].SourceID != "Éclair" || g.Edges[1].TargetID != "Ωmega" {
		t.Fatalf("second edge = %+v", g.Edges[1])
	}
}

func TestParseSkipsInvalidLines(t *testing.T) {
	g := diagram.Parse("not a valid line\nA --> B")
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
}

func TestParseEmpty(t *testing.T) {
	g := diagram.Parse("")
	if !g.Empty() {
		t.Fatalf("expected empty graph, got %+v", g)
	}
	if g.Nodes == nil || g.Edges == nil {
		t.Fatal("empty graph must carry empty, non-nil slices")
	}
}

func TestParseCompositeScenario(t *testing.T) {
	g := diagram.Parse(sampleFlowchart)

	wantNodes := nodes("Start", "Process", "End", "Decision", "Both", "Maybe", "Perhaps", "Important", "Critical")
	if diff := cmp.Diff(wantNodes, g.Nodes); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
	wantEdges := []diagram.Edge{
		{SourceID: "Start", TargetID: "Process", Connector: connector.Arrow},
		{SourceID: "Process", TargetID: "End", Connector: connector.Line},
		{SourceID: "Decision", TargetID: "Both", Connector: connector.BiArrow},
		{SourceID: "Maybe", TargetID: "Perhaps", Connector: connector.Dotted},
		{SourceID: "Important", TargetID: "Critical", Connector: connector.Thick},
		{SourceID: "Decision", TargetID: "End", Connector: connector.Arrow, Label: "yes"},
	}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Fatalf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCRLFInput(t *testing.T) {
	crlf := diagram.Parse("A --> B : one\r\nB --> C\r\n")
	lf := diagram.Parse("A --> B : one\nB --> C\n")
	if diff := cmp.Diff(lf, crlf); diff != "" {
		t.Fatalf("CRLF input differs (-want +got):\n%s", diff)
	}
}

func TestParseTotality(t *testing.T) {
	inputs := []string{
		"\x00\xff\xfe",
		"-->",
		"A -->",
		"--> B",
		":",
		"A --> B --> C",
		strings.Repeat("A --> B\n", 1000),
		"\xc3\x28 --> B",
		"A -x-> B",
		"A <-- B",
		"\n\n\n",
	}
	for _, in := range inputs {
		g := diagram.Parse(in)
		for _, e := range g.Edges {
			if _, ok := g.Node(e.SourceID); !ok {
				t.Fatalf("%q: dangling source %q", in, e.SourceID)
			}
			if _, ok := g.Node(e.TargetID); !ok {
				t.Fatalf("%q: dangling target %q", in, e.TargetID)
			}
		}
	}
}

func TestParseIsIndependentAcrossCalls(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]diagram.Graph, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = diagram.Parse(sampleFlowchart)
		}(i)
	}
	wg.Wait()
	for i := 1; i < len(results); i++ {
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Fatalf("concurrent parse %d differs:\n%s", i, diff)
		}
	}
}

func TestBuilderSnapshot(t *testing.T) {
	b := diagram.NewBuilder()
	b.Add("A --> B")
	first := b.Graph()
	b.Add("B --> C")

	if len(first.Edges) != 1 || len(first.Nodes) != 2 {
		t.Fatalf("snapshot mutated: %+v", first)
	}
	if got := b.Graph(); len(got.Edges) != 2 || len(got.Nodes) != 3 {
		t.Fatalf("builder state: %+v", got)
	}
}
