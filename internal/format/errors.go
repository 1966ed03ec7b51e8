package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadType indicates a container whose type field is not an icon.
	ErrBadType = errors.New("format: not an icon container")
	// ErrOutOfBounds indicates an entry referencing bytes past the end of the file.
	ErrOutOfBounds = errors.New("format: image data out of bounds")
	// ErrEmptyImage indicates a directory entry declaring a zero-byte image.
	ErrEmptyImage = errors.New("format: zero-size image entry")
	// ErrNoImages indicates a container with an empty directory.
	ErrNoImages = errors.New("format: container has no images")
)
