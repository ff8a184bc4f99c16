package diagram

// IsValidLine reports whether line would be accepted by Parse: blank lines,
// comments and matched edges are valid; any other line is not.
// It needs no registry state and is safe to call per keystroke.
func IsValidLine(line string) bool {
	return Scan(line).OK()
}
