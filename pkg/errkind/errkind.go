package errkind

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a failure so callers and tests can tell failures apart
// even though the CLI reports all of them with the same exit status.
type Kind string

const (
	KindUnknown         Kind = "unknown"
	FileNotFound        Kind = "file_not_found"
	ReadFailure         Kind = "read_failure"
	ParseFailure        Kind = "parse_failure"
	SolutionReadFailure Kind = "solution_read_failure"
	Usage               Kind = "usage"
	ExportFailure       Kind = "export_failure"
)

// Error is a classified failure for a single file operation
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a classified error
func New(kind Kind, op, path string, cause error) error {
	return &Error{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  cause,
	}
}

// NewUsage creates a usage error with a plain message
func NewUsage(message string) error {
	return &Error{Kind: Usage, Err: errors.New(message)}
}

// KindOf returns the kind of the outermost classified error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FromOpen classifies an error returned while opening or reading a file:
// a missing file is FileNotFound, anything else is ReadFailure.
func FromOpen(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return New(FileNotFound, op, path, err)
	}
	return New(ReadFailure, op, path, err)
}
