package types

import (
	"errors"
	"fmt"
)

// IOError is the single failure class of the conversion pipeline. It covers an
// unreadable or undecodable source and an unwritable target.
type IOError struct {
	// Op is the failed operation: "open", "read", "decode", "write", "close".
	Op string

	// Path is the file the operation was applied to.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause so errors.Is(err, fs.ErrNotExist) works.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError wraps err, or returns nil when err is nil.
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// IsIOError reports whether err or anything it wraps is an *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
