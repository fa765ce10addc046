package archive

import "errors"

var (
	// ErrDecode is returned when an archive cannot be deserialized.
	ErrDecode = errors.New("archive decode failed")

	// ErrMissingField is returned when a required entry is absent.
	ErrMissingField = errors.New("missing archive field")

	// ErrShape is returned when an entry has the wrong dimensions.
	ErrShape = errors.New("unexpected shape")
)
