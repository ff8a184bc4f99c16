package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("flow.arrow", []byte("A --> B"), 0)
	id2 := fs.Add("flow.arrow", []byte("A --> C"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", id1, id2)
	}

	latest, ok := fs.GetLatest("./flow.arrow")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "A --> B" {
		t.Fatalf("old version lost, got %q", got)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestGetUnknownID(t *testing.T) {
	fs := NewFileSet()
	if f := fs.Get(3); f != nil {
		t.Fatalf("expected nil for unknown id, got %+v", f)
	}
	start, end := fs.Resolve(Span{File: 3})
	if start != (LineCol{}) || end != (LineCol{}) {
		t.Fatalf("expected zero positions, got %v %v", start, end)
	}
}

func TestLineIndexAndLines(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte("a\n\nbc\n"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Fatal("expected FileVirtual flag")
	}
	if f.Path != "<stdin>" {
		t.Fatalf("virtual name was rewritten: %q", f.Path)
	}
	if got, want := f.LineCount(), uint32(4); got != want {
		t.Fatalf("LineCount = %d, want %d", got, want)
	}

	cases := []struct {
		line uint32
		text string
		span Span
	}{
		{1, "a", Span{File: id, Start: 0, End: 1}},
		{2, "", Span{File: id, Start: 2, End: 2}},
		{3, "bc", Span{File: id, Start: 3, End: 5}},
		{4, "", Span{File: id, Start: 6, End: 6}},
		{5, "", Span{File: id, Start: 6, End: 6}},
		{0, "", Span{File: id, Start: 6, End: 6}},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.text {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.text)
		}
		if got := f.LineSpan(tc.line); got != tc.span {
			t.Errorf("LineSpan(%d) = %v, want %v", tc.line, got, tc.span)
		}
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("r.arrow", []byte("A --> B\nСтарт --> C"), 0)

	start, end := fs.Resolve(Span{File: id, Start: 8, End: 18})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Fatalf("start = %+v", start)
	}
	// колонки считаются в байтах
	if end != (LineCol{Line: 2, Col: 11}) {
		t.Fatalf("end = %+v", end)
	}

	nl, _ := fs.Resolve(Span{File: id, Start: 7, End: 7})
	if nl != (LineCol{Line: 1, Col: 8}) {
		t.Fatalf("newline position = %+v", nl)
	}
}

func TestText(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("t.arrow", []byte("Start --> End"), 0)
	f := fs.Get(id)

	if got := f.Text(Span{File: id, Start: 6, End: 9}); got != "-->" {
		t.Fatalf("Text = %q", got)
	}
	if got := f.Text(Span{File: id, Start: 6, End: 99}); got != "" {
		t.Fatalf("out of range Text = %q", got)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "win.arrow")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("A --> B\r\nB --> C\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got, want := string(f.Content), "A --> B\nB --> C\n"; got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if got := f.FormatPath("relative", dir); got != "win.arrow" {
		t.Fatalf("relative path = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "win.arrow" {
		t.Fatalf("basename = %q", got)
	}
}

func TestAddBytesMatchesLoad(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("A --> B\r\nB --> C\r\n")...)
	path := filepath.Join(t.TempDir(), "win.arrow")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	loaded, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	piped := fs.Get(fs.AddBytes("<stdin>", raw))
	if got, want := string(piped.Content), string(fs.Get(loaded).Content); got != want {
		t.Fatalf("stdin content = %q, file content = %q", got, want)
	}
	if piped.Flags&FileVirtual == 0 || piped.Flags&FileHadBOM == 0 || piped.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", piped.Flags)
	}

	kept := fs.Get(fs.AddVirtual("<raw>", raw))
	if len(kept.Content) != len(raw) {
		t.Fatal("AddVirtual must keep content byte for byte")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.arrow")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if fs.Len() != 0 {
		t.Fatal("failed load must not add a file")
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if !changed || string(out) != "a\rb\nc" {
		t.Fatalf("got %q, %v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Fatalf("got %q, %v", out, changed)
	}
}

func TestSpanHelpers(t *testing.T) {
	s := Span{File: 1, Start: 10, End: 20}
	if s.Len() != 10 || s.Empty() {
		t.Fatalf("bad span basics: %v", s)
	}
	if got := s.Sub(2, 5); got != (Span{File: 1, Start: 12, End: 15}) {
		t.Fatalf("Sub = %v", got)
	}
	if got := s.Sub(8, 50); got != (Span{File: 1, Start: 18, End: 20}) {
		t.Fatalf("clamped Sub = %v", got)
	}
	if got := s.Cover(Span{File: 1, Start: 5, End: 12}); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := s.Cover(Span{File: 2, Start: 0, End: 99}); got != s {
		t.Fatalf("cross-file Cover changed span: %v", got)
	}
}
