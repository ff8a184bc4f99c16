package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"arrowgraph/internal/diag"
	"arrowgraph/internal/source"
)

type palette struct {
	enabled bool
	err     *color.Color
	warn    *color.Color
	info    *color.Color
	note    *color.Color
	gutter  *color.Color
	bold    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		enabled: enabled,
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		note:    color.New(color.FgBlue, color.Bold),
		gutter:  color.New(color.FgBlue),
		bold:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   3 | Check -> Retry
//	     |       ^~
//
// затем заметки в том же виде, если включены.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeHeader(w, p, fs, d, opts)
		writeSnippet(w, p, fs, d.Primary, p.severity(d.Severity), opts.Context)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			loc := location(fs, n.Span, opts.PathMode)
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), loc, n.Msg)
			writeSnippet(w, p, fs, n.Span, p.note, 0)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostic(s) not shown (limit %d)\n", dropped, bag.Cap())
	}
}

func writeHeader(w io.Writer, p palette, fs *source.FileSet, d *diag.Diagnostic, opts PrettyOpts) {
	sev := p.severity(d.Severity)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.bold.Sprint(location(fs, d.Primary, opts.PathMode)),
		sev.Sprint(d.Severity.String()),
		sev.Sprint(d.Code.ID()),
		d.Message)
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, f, mode), start.Line, start.Col)
}

// writeSnippet prints the line holding sp (plus context lines above it)
// and underlines the span. Spans crossing a newline are cut at the line end.
func writeSnippet(w io.Writer, p palette, fs *source.FileSet, sp source.Span, mark *color.Color, context int) {
	f := fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, _ := fs.Resolve(sp)
	first := start.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	width := len(fmt.Sprint(start.Line))

	for n := first; n <= start.Line; n++ {
		line := strings.TrimRight(f.GetLine(n), "\r")
		fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprintf("%*d", width, n), p.gutter.Sprint("|"), line)
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	end := col + int(sp.Len())
	if end > len(line) {
		end = len(line)
	}
	fmt.Fprintf(w, " %s %s %s%s\n",
		strings.Repeat(" ", width), p.gutter.Sprint("|"),
		padTo(line[:col]),
		mark.Sprint(underline(line[col:end])))
}

// padTo returns whitespace that lines up under prefix, keeping tabs and
// accounting for wide runes.
func padTo(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func underline(text string) string {
	n := runewidth.StringWidth(text)
	if n <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", n-1)
}
