package source

import (
	"errors"
	"fmt"
)

// Extraction failure kinds. Test with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrRead              = errors.New("read failed")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrParse             = errors.New("parse error")
)

// Error is an extraction failure for a specific path.
type Error struct {
	Kind error  // One of the Err kinds above
	Path string // Offending file path
	Err  error  // Underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}
