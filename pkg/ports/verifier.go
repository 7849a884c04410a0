package ports

// Verifier is the verification collaborator: a decoder used only to assert
// round-trip correctness of produced output. It never participates in the
// primary encode path.
type Verifier interface {
	// ReconstructJPEG decodes a transcoded bitstream back to the original
	// JPEG bytes for byte-for-byte comparison.
	ReconstructJPEG(data []byte) ([]byte, error)

	// DecodePixels decodes the bitstream to a dense pixel buffer in the
	// given layout for byte-for-byte comparison against the pre-encode
	// buffer.
	DecodePixels(data []byte, format PixelFormat) ([]byte, error)
}
