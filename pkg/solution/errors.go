package solution

import "errors"

var (
	// ErrInvalidHeader is returned when the file format header is missing or malformed
	ErrInvalidHeader = errors.New("missing or invalid solution file header")

	// ErrUnsupportedVersion is returned for solution formats older than 7.00
	ErrUnsupportedVersion = errors.New("unsupported solution file format version")

	// ErrInvalidProjectLine is returned when a Project(...) line does not match the grammar
	ErrInvalidProjectLine = errors.New("invalid project line")

	// ErrUnterminatedProject is returned when a Project block has no EndProject
	ErrUnterminatedProject = errors.New("project block missing EndProject")
)
