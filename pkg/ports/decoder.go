package ports

// ImageFormat identifies the container format of an input image.
type ImageFormat string

const (
	FormatJPEG    ImageFormat = "jpeg"
	FormatPNG     ImageFormat = "png"
	FormatGIF     ImageFormat = "gif"
	FormatWebP    ImageFormat = "webp"
	FormatTIFF    ImageFormat = "tiff"
	FormatBMP     ImageFormat = "bmp"
	FormatUnknown ImageFormat = "unknown"
)

// DecodedImage is a dense, interleaved pixel buffer plus the color metadata
// needed to describe it to the encoder.
type DecodedImage struct {
	Format ImageFormat

	Width  int
	Height int

	// NumChannels is the interleaved channel count of Pixels:
	// 1 (gray), 2 (gray+alpha), 3 (RGB) or 4 (RGBA).
	NumChannels uint32
	HasAlpha    bool
	Gray        bool

	// BitsPerSample is the native bit depth of the source (8 or 16).
	BitsPerSample int

	// SampleFormat describes the representation of Pixels. Multi-byte
	// samples are in native byte order.
	SampleFormat SampleFormat

	// ICCProfile is the embedded color profile, or nil when the source
	// carries none.
	ICCProfile []byte

	// Pixels is the dense buffer, rows top to bottom with no padding.
	Pixels []byte
}

// ImageDecoder is the decode collaborator: it identifies input containers and
// produces dense pixel buffers for the pixel encoding path.
type ImageDecoder interface {
	// DetectFormat sniffs the container format from the first bytes of data.
	DetectFormat(data []byte) ImageFormat

	// Decode decodes data into a dense pixel buffer.
	Decode(data []byte) (*DecodedImage, error)
}
