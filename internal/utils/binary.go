package utils

import "bytes"

// binarySniffLength bounds how much of a file is inspected for NUL bytes.
const binarySniffLength = 8000

// LooksBinary reports whether content appears to be binary data.
// Like git, it looks for a NUL byte within the first binarySniffLength bytes.
func LooksBinary(content []byte) bool {
	sample := content
	if len(sample) > binarySniffLength {
		sample = sample[:binarySniffLength]
	}
	return bytes.IndexByte(sample, 0) >= 0
}
