package diagram_test

import (
	"strings"
	"testing"

	"arrowgraph/internal/diagram"
)

func TestIsValidLine(t *testing.T) {
	valid := []string{
		"",
		"   ",
		"// anything goes here",
		"A --> B",
		"A---B",
		"  A <--> B  ",
		"A -.-> B : dotted",
		"A ==> B:x",
		"A --> B :",
	}
	invalid := []string{
		"not a valid line",
		"A -> B",
		"A --> ",
		"A --> B extra",
		"A -x-> B",
		"# hash comment",
	}
	for _, line := range valid {
		if !diagram.IsValidLine(line) {
			t.Errorf("IsValidLine(%q) = false, want true", line)
		}
	}
	for _, line := range invalid {
		if diagram.IsValidLine(line) {
			t.Errorf("IsValidLine(%q) = true, want false", line)
		}
	}
}

// Each line on its own must contribute an edge exactly when it is a valid candidate.
func TestValidatorAgreesWithParse(t *testing.T) {
	corpus := strings.Split(sampleFlowchart+`

not a valid line
A -> B
A --> B : label
A --> B :
  // indented comment
X --> Y Z
Q<-->R`, "\n")

	for _, line := range corpus {
		kind := diagram.Classify(line)
		edges := len(diagram.Parse(line).Edges)
		valid := diagram.IsValidLine(line)

		switch {
		case kind != diagram.LineCandidate:
			if !valid || edges != 0 {
				t.Errorf("%q: %v line valid=%v edges=%d", line, kind, valid, edges)
			}
		case edges == 1:
			if !valid {
				t.Errorf("%q: parsed as edge but rejected by validator", line)
			}
		default:
			if valid {
				t.Errorf("%q: skipped by Parse but accepted by validator", line)
			}
		}
	}

	// the whole document: edges equal the number of valid candidate lines
	want := 0
	for _, line := range corpus {
		if diagram.Classify(line) == diagram.LineCandidate && diagram.IsValidLine(line) {
			want++
		}
	}
	if got := len(diagram.Parse(strings.Join(corpus, "\n")).Edges); got != want {
		t.Fatalf("document edges = %d, want %d", got, want)
	}
}
