package project

import "errors"

var (
	// ErrMissingInclude is returned when a ProjectReference or PackageReference
	// element has no Include attribute
	ErrMissingInclude = errors.New("missing Include attribute")

	// ErrNoRootElement is returned when the document has no root element
	ErrNoRootElement = errors.New("document has no root element")
)
