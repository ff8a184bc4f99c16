package diagfmt

import (
	"fmt"
	"io"

	"arrowgraph/internal/diag"
	"arrowgraph/internal/source"
)

// Short prints one line per diagnostic, sorted, paths relative to the
// FileSet base:
//
//	error SYN1002 flows/a.arrow:3:7 expected connector ...
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, withNotes bool) error {
	out := diag.FormatGoldenDiagnostics(bag.Items(), fs, withNotes)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
