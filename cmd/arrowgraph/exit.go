package main

import "fmt"

// exitError ends the process with code without printing anything more;
// the command has already reported why.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var errFindings = exitError{code: 1}
