package diag

import (
	"testing"

	"arrowgraph/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 4 {
		b.Add(NewError(SynMissingTarget, sp(uint32(i), uint32(i+1)), "x"))
	}
	if b.Len() != 2 || b.Dropped() != 2 {
		t.Fatalf("Len=%d Dropped=%d", b.Len(), b.Dropped())
	}

	unlimited := NewBag(0)
	for range 100 {
		unlimited.Add(NewError(SynMissingTarget, sp(0, 1), "x"))
	}
	if unlimited.Len() != 100 {
		t.Fatalf("unlimited bag kept %d", unlimited.Len())
	}
	if b.Add(nil) {
		t.Fatal("nil diagnostic must be rejected")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, LintEmptyLabel, sp(5, 6), "empty"))
	b.Add(NewError(SynTrailingText, sp(5, 6), "trailing"))
	b.Add(NewError(SynMissingSource, sp(0, 1), "source"))
	b.Add(NewError(SynMissingSource, sp(0, 1), "source"))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items", b.Len())
	}
	b.Sort()
	got := []Code{b.Items()[0].Code, b.Items()[1].Code, b.Items()[2].Code}
	want := []Code{SynMissingSource, SynTrailingText, LintEmptyLabel}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBagSeverityQueries(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevInfo, LintDuplicateEdge, sp(0, 1), "dup"))
	if b.HasWarnings() || b.HasErrors() {
		t.Fatal("info must not count as warning or error")
	}
	b.Add(New(SevWarning, LintEmptyLabel, sp(0, 1), "empty"))
	if !b.HasWarnings() || b.HasErrors() {
		t.Fatal("warning state wrong")
	}
	b.Transform(func(d *Diagnostic) {
		if d.Severity == SevWarning {
			d.Severity = SevError
		}
	})
	if !b.HasErrors() || b.Count(SevError) != 1 {
		t.Fatal("Transform did not promote warning")
	}
	b.Filter(func(d *Diagnostic) bool { return d.Severity != SevInfo })
	if b.Len() != 1 {
		t.Fatalf("Filter left %d", b.Len())
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynMissingSource, sp(0, 1), "a"))
	other := NewBag(2)
	other.Add(NewError(SynMissingSource, sp(1, 2), "b"))
	other.Add(NewError(SynMissingSource, sp(2, 3), "c"))

	a.Merge(other)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("Len=%d Cap=%d", a.Len(), a.Cap())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		SynMissingConnector: "SYN1002",
		LintCaseMismatch:    "LNT2002",
		IOLoadFileError:     "IO9001",
		UnknownCode:         "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if !SynTrailingText.IsSyntax() || LintEmptyLabel.IsSyntax() || SynInfo.IsSyntax() {
		t.Fatal("IsSyntax classification wrong")
	}
	if Code(4242).Title() != "Unknown error" {
		t.Fatal("unknown code title")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportWarning(BagReporter{Bag: bag}, LintCaseMismatch, sp(4, 5), "case").
		WithNote(sp(0, 1), "first here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("bag = %+v", bag.Items())
	}
	if got := b.Diagnostic().Code; got != LintCaseMismatch {
		t.Fatalf("Diagnostic().Code = %v", got)
	}
}

func TestParseSeverity(t *testing.T) {
	if s, err := ParseSeverity("Warn"); err != nil || s != SevWarning {
		t.Fatalf("ParseSeverity(Warn) = %v, %v", s, err)
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Fatal("expected error")
	}
}
