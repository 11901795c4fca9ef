package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline operations.
var (
	// ErrConfig indicates invalid pipeline options.
	ErrConfig = errors.New("invalid configuration")

	// ErrFormat indicates malformed input records.
	ErrFormat = errors.New("malformed record")

	// ErrIO indicates a failure reading input or writing output.
	ErrIO = errors.New("i/o failure")
)

// FormatError reports a data row that does not have exactly two columns.
type FormatError struct {
	Line    int // 1-based input line where the row starts
	Columns int // observed column count
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: expected 2 cols (src, tgt), received %d", e.Line, e.Columns)
}

// Unwrap lets errors.Is match ErrFormat.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// Error wraps pipeline errors with the operation and path involved.
type Error struct {
	Op   string // "open", "create", "read", "write"
	Path string // file path, empty for streams
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrIO, err)}
}
