package dependencies

import "errors"

var (
	// ErrUnrecognizedTarget is returned when a path is neither a solution nor a project file
	ErrUnrecognizedTarget = errors.New("unrecognized target file extension")

	// ErrUnsupportedCombination is returned for an unknown target kind or mode
	ErrUnsupportedCombination = errors.New("unsupported target and mode combination")
)
