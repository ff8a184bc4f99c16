package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"arrowgraph/internal/diag"
	"arrowgraph/internal/source"
)

func sampleBag(t *testing.T) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	content := []byte("Start --> Check\nCheck -> Retry\ncheck --> Done\n")
	id := fs.Add("/home/user/project/flows/test.arrow", content, 0)

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynMissingConnector, source.Span{File: id, Start: 22, End: 24}, "expected connector"))
	bag.Add(diag.New(diag.SevWarning, diag.LintCaseMismatch, source.Span{File: id, Start: 31, End: 36}, "casing differs").
		WithNote(source.Span{File: id, Start: 10, End: 15}, "first spelled here"))
	return fs, bag
}

func TestPathModes(t *testing.T) {
	fs, bag := sampleBag(t)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/flows/test.arrow:2:7"},
		{"Relative path", PathModeRelative, "\nflows/test.arrow:3:1"},
		{"Basename only", PathModeBasename, "test.arrow:2:7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR SYN1002") {
				t.Errorf("expected severity and code, got:\n%s", output)
			}
		})
	}
}

func TestPrettyLayout(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeRelative, ShowNotes: true})

	want := strings.Join([]string{
		"flows/test.arrow:2:7: ERROR SYN1002: expected connector",
		" 2 | Check -> Retry",
		"   |       ^~",
		"",
		"flows/test.arrow:3:1: WARNING LNT2002: casing differs",
		" 3 | check --> Done",
		"   | ^~~~~",
		"  note: flows/test.arrow:1:11: first spelled here",
		" 1 | Start --> Check",
		"   |           ^~~~~",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected pretty output:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestPrettyContextAndDropped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("ctx.arrow", []byte("A --> B\nB --> C\nC ->\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynMissingConnector, source.Span{File: id, Start: 18, End: 20}, "bad"))
	bag.Add(diag.NewError(diag.SynMissingConnector, source.Span{File: id, Start: 0, End: 1}, "dropped"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	out := buf.String()
	if !strings.Contains(out, " 2 | B --> C\n 3 | C ->\n") {
		t.Fatalf("missing context lines:\n%s", out)
	}
	if !strings.Contains(out, "1 more diagnostic(s) not shown") {
		t.Fatalf("missing dropped summary:\n%s", out)
	}
}

func TestPrettyEmptySpanAtLineEnd(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("eol.arrow", []byte("A -->"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynMissingTarget, source.Span{File: id, Start: 5, End: 5}, "missing target"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "   |      ^\n") {
		t.Fatalf("caret not at end of line:\n%q", buf.String())
	}
}

func TestPadToWideRunes(t *testing.T) {
	if got := padTo("東京 "); got != "     " {
		t.Fatalf("padTo(wide) = %q", got)
	}
	if got := padTo("\tA "); got != "\t  " {
		t.Fatalf("padTo(tab) = %q", got)
	}
	if got := underline("東京"); got != "^~~~" {
		t.Fatalf("underline(wide) = %q", got)
	}
}

func TestPrettyColor(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("expected ANSI escapes with Color enabled")
	}
}
