package artifact

import "errors"

var (
	// ErrInvalidContainer is returned when the container header or framing is invalid
	ErrInvalidContainer = errors.New("invalid artifact container")

	// ErrUnsupportedVersion is returned for container versions this package cannot read
	ErrUnsupportedVersion = errors.New("unsupported artifact version")

	// ErrCorruptRecord is returned when the artifact record cannot be decoded
	ErrCorruptRecord = errors.New("corrupt artifact record")

	// ErrUnsupportedCompression is returned for unknown compression tags
	ErrUnsupportedCompression = errors.New("unsupported compression")

	errIncompressible = errors.New("data is incompressible")
)
