package export

import "errors"

var (
	// ErrUnknownFormat is returned for an export format other than json, csv or txt
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrInvalidDestination is returned for a malformed s3:// destination
	ErrInvalidDestination = errors.New("invalid object destination")

	// ErrNoObjectStore is returned when an s3:// destination is given but no object store is configured
	ErrNoObjectStore = errors.New("object storage is not configured")
)
