package connector_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"arrowgraph/internal/connector"
)

func TestLookupRoundTrip(t *testing.T) {
	for _, k := range connector.All() {
		got, ok := connector.Lookup(k.Token())
		if !ok || got != k {
			t.Fatalf("Lookup(%q) = %v, %v; want %v", k.Token(), got, ok, k)
		}
	}
	if _, ok := connector.Lookup("->"); ok {
		t.Fatal("\"->\" must not be a connector")
	}
}

func TestPrefixIsLiteral(t *testing.T) {
	cases := []struct {
		in   string
		want connector.Kind
		n    int
	}{
		{"--> B", connector.Arrow, 3},
		{"---B", connector.Line, 3},
		{"<--> B", connector.BiArrow, 4},
		{"-.-> B", connector.Dotted, 4},
		{"==> B", connector.Thick, 3},
		{"-x-> B", connector.Invalid, 0},
		{"-,-> B", connector.Invalid, 0},
		{"<-- B", connector.Invalid, 0},
		{"=> B", connector.Invalid, 0},
		{"", connector.Invalid, 0},
	}
	for _, tc := range cases {
		k, n := connector.Prefix(tc.in)
		if k != tc.want || n != tc.n {
			t.Errorf("Prefix(%q) = %v, %d; want %v, %d", tc.in, k, n, tc.want, tc.n)
		}
	}
}

func TestNoTokenIsPrefixOfAnother(t *testing.T) {
	toks := connector.Tokens()
	for i, a := range toks {
		for j, b := range toks {
			if i != j && len(a) <= len(b) && b[:len(a)] == a {
				t.Fatalf("%q is a prefix of %q", a, b)
			}
		}
	}
}

func TestTextEncoding(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]connector.Kind{"c": connector.Dotted, "b": connector.BiArrow}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != `{"b":"<-->","c":"-.->"}`+"\n" {
		t.Fatalf("unexpected json %s", got)
	}

	var k connector.Kind
	if err := k.UnmarshalText([]byte("thick")); err != nil || k != connector.Thick {
		t.Fatalf("UnmarshalText by name: %v, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("<-->")); err != nil || k != connector.BiArrow {
		t.Fatalf("UnmarshalText by token: %v, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("~~>")); err == nil {
		t.Fatal("expected error for unknown connector")
	}
	if _, err := connector.Invalid.MarshalText(); err == nil {
		t.Fatal("Invalid must not marshal")
	}
}

func TestDirected(t *testing.T) {
	if connector.Line.Directed() || connector.BiArrow.Directed() {
		t.Fatal("Line and BiArrow are not single-headed")
	}
	if !connector.Arrow.Directed() || !connector.Dotted.Directed() || !connector.Thick.Directed() {
		t.Fatal("Arrow, Dotted and Thick are directed")
	}
}
