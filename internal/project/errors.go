package project

import (
	"errors"
	"fmt"
)

// ErrManifest marks every configuration problem; test with errors.Is.
var ErrManifest = errors.New("invalid configuration")

// ManifestError points at the file (or "environment") holding a bad value.
type ManifestError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *ManifestError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrManifest, e.Err}
	}
	return []error{ErrManifest}
}

func manifestErr(path, format string, args ...any) *ManifestError {
	return &ManifestError{Path: path, Msg: fmt.Sprintf(format, args...)}
}
