package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"arrowgraph/internal/driver"
)

func newTestModel(files ...string) *progressModel {
	ch := make(chan driver.Event)
	return NewProgressModel("lint", files, ch).(*progressModel)
}

func TestApplyEventCountsFinishedOnce(t *testing.T) {
	m := newTestModel("a.arrow", "b.arrow")

	m.Update(eventMsg{File: "a.arrow", Status: driver.StatusWorking})
	if m.finished != 0 || m.percent() != 0.25 {
		t.Fatalf("finished=%d percent=%v", m.finished, m.percent())
	}
	m.Update(eventMsg{File: "a.arrow", Status: driver.StatusError, Errors: 2})
	m.Update(eventMsg{File: "a.arrow", Status: driver.StatusError, Errors: 2})
	m.Update(eventMsg{File: "unknown.arrow", Status: driver.StatusDone})
	if m.finished != 1 || m.errors != 1 {
		t.Fatalf("finished=%d errors=%d", m.finished, m.errors)
	}
	m.Update(eventMsg{File: "b.arrow", Status: driver.StatusDone, Cached: true})
	if m.percent() != 1 {
		t.Fatalf("percent = %v", m.percent())
	}

	view := m.View()
	for _, want := range []string{"(2/2)", "a.arrow", "2 error(s)", "(cached)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestDoneQuits(t *testing.T) {
	m := newTestModel("a.arrow")
	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatal("doneMsg must mark the model done and quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if !strings.HasPrefix(stripANSI(m.View()), "done: ") {
		t.Fatalf("view = %q", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("flows/very/long/path.arrow", 10); got != "flows/v..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("東京東京", 5); runeWidth(got) > 5 {
		t.Fatalf("truncate wide = %q", got)
	}
}

func TestEmptyModelView(t *testing.T) {
	if v := newTestModel().View(); v != "" {
		t.Fatalf("view = %q", v)
	}
}
