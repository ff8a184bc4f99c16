package diag

import (
	"arrowgraph/internal/source"
)

// Note adds context at a secondary location.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
