package serialization

import "crypto/sha256"

// computeChecksum returns the SHA-256 digest of the tensor data section.
func computeChecksum(data []byte) [ChecksumSize]byte {
	return sha256.Sum256(data)
}

// validateChecksum compares a computed digest against the stored one.
func validateChecksum(computed, stored [ChecksumSize]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}
