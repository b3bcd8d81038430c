package serialization

import "errors"

// Sentinel errors returned by the reader.
var (
	ErrBadMagic           = errors.New("serialization: not a .dlnd file")
	ErrVersionUnsupported = errors.New("serialization: unsupported format version")
	ErrChecksumMismatch   = errors.New("serialization: checksum mismatch, file is corrupt")
)
