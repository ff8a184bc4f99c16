package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// синтаксис строки-ребра
	SynInfo             Code = 1000
	SynMissingSource    Code = 1001
	SynMissingConnector Code = 1002
	SynMissingTarget    Code = 1003
	SynTrailingText     Code = 1004

	// стиль и согласованность
	LintInfo          Code = 2000
	LintEmptyLabel    Code = 2001
	LintCaseMismatch  Code = 2002
	LintDuplicateEdge Code = 2003

	// ввод-вывод
	IOInfo          Code = 9000
	IOLoadFileError Code = 9001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	SynInfo:             "Syntax information",
	SynMissingSource:    "Edge line must start with a node identifier",
	SynMissingConnector: "Unknown or missing connector",
	SynMissingTarget:    "Missing target identifier after connector",
	SynTrailingText:     "Unexpected text after target identifier",
	LintInfo:            "Lint information",
	LintEmptyLabel:      "Empty edge label",
	LintCaseMismatch:    "Identifier casing differs from first occurrence",
	LintDuplicateEdge:   "Duplicate edge",
	IOInfo:              "I/O information",
	IOLoadFileError:     "Failed to load file",
}

// ID is the stable textual identifier, e.g. "SYN1002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsSyntax reports whether c marks a line the parser skips.
func (c Code) IsSyntax() bool {
	return c > SynInfo && c < LintInfo
}
