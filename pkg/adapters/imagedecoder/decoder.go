// Package imagedecoder provides the pixel decode collaborator: it sniffs the
// container format of an input image and decodes it to a dense interleaved
// pixel buffer for the pixel encoding path.
package imagedecoder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/user/jxlpack/pkg/ports"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoder implements ports.ImageDecoder using the stdlib image registry plus
// the x/image format packages.
type Decoder struct{}

// New creates a new Decoder.
func New() *Decoder {
	return &Decoder{}
}

// DetectFormat sniffs the container format from magic bytes.
func (d *Decoder) DetectFormat(data []byte) ports.ImageFormat {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return ports.FormatJPEG
	case len(data) >= 8 && bytes.Equal(data[:8], []byte("\x89PNG\r\n\x1a\n")):
		return ports.FormatPNG
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return ports.FormatGIF
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return ports.FormatWebP
	case len(data) >= 4 && (bytes.Equal(data[:4], []byte("II*\x00")) || bytes.Equal(data[:4], []byte("MM\x00*"))):
		return ports.FormatTIFF
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return ports.FormatBMP
	default:
		return ports.FormatUnknown
	}
}

// Decode decodes data into a dense pixel buffer with the source's native bit
// depth and channel count.
func (d *Decoder) Decode(data []byte) (*ports.DecodedImage, error) {
	format := d.DetectFormat(data)

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imagedecoder: %w", err)
	}

	bounds := img.Bounds()
	out := &ports.DecodedImage{
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	if format == ports.FormatJPEG {
		out.ICCProfile = jpegICCProfile(data)
	}

	switch src := img.(type) {
	case *image.Gray:
		out.Gray = true
		out.NumChannels = 1
		out.BitsPerSample = 8
		out.SampleFormat = ports.SampleU8
		out.Pixels = packRows(src.Pix, src.Stride, bounds, 1)
	case *image.Gray16:
		out.Gray = true
		out.NumChannels = 1
		out.BitsPerSample = 16
		out.SampleFormat = ports.SampleU16
		out.Pixels = repackU16(packRows(src.Pix, src.Stride, bounds, 2))
	case *image.YCbCr:
		out.NumChannels = 3
		out.BitsPerSample = 8
		out.SampleFormat = ports.SampleU8
		out.Pixels = ycbcrToRGB(src)
	case *image.CMYK:
		out.NumChannels = 3
		out.BitsPerSample = 8
		out.SampleFormat = ports.SampleU8
		out.Pixels = cmykToRGB(src)
	case *image.NRGBA:
		fillRGBA8(out, src.Pix, src.Stride, bounds, src.Opaque())
	case *image.NRGBA64:
		fillRGBA16(out, src.Pix, src.Stride, bounds, src.Opaque())
	default:
		// Premultiplied, paletted and exotic models go through a
		// non-premultiplied copy first.
		nrgba := image.NewNRGBA(bounds)
		draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)
		fillRGBA8(out, nrgba.Pix, nrgba.Stride, bounds, nrgba.Opaque())
	}

	return out, nil
}

// packRows copies the image rows into a dense buffer without stride padding.
func packRows(pix []byte, stride int, bounds image.Rectangle, bytesPerPixel int) []byte {
	width := bounds.Dx() * bytesPerPixel
	height := bounds.Dy()
	if stride == width {
		dense := make([]byte, width*height)
		copy(dense, pix[:width*height])
		return dense
	}
	dense := make([]byte, 0, width*height)
	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+width]
		dense = append(dense, row...)
	}
	return dense
}

// repackU16 converts big-endian sample pairs (the stdlib layout) to native
// byte order in place.
func repackU16(pix []byte) []byte {
	for i := 0; i+1 < len(pix); i += 2 {
		binary.NativeEndian.PutUint16(pix[i:], uint16(pix[i])<<8|uint16(pix[i+1]))
	}
	return pix
}

func fillRGBA8(out *ports.DecodedImage, pix []byte, stride int, bounds image.Rectangle, opaque bool) {
	out.BitsPerSample = 8
	out.SampleFormat = ports.SampleU8
	if opaque {
		out.NumChannels = 3
		out.Pixels = dropAlpha(packRows(pix, stride, bounds, 4), 4, 1)
		return
	}
	out.HasAlpha = true
	out.NumChannels = 4
	out.Pixels = packRows(pix, stride, bounds, 4)
}

func fillRGBA16(out *ports.DecodedImage, pix []byte, stride int, bounds image.Rectangle, opaque bool) {
	out.BitsPerSample = 16
	out.SampleFormat = ports.SampleU16
	dense := repackU16(packRows(pix, stride, bounds, 8))
	if opaque {
		out.NumChannels = 3
		out.Pixels = dropAlpha(dense, 8, 2)
		return
	}
	out.HasAlpha = true
	out.NumChannels = 4
	out.Pixels = dense
}

// dropAlpha strips the trailing alpha channel from an interleaved RGBA
// buffer. pixelBytes is the full pixel size, alphaBytes the alpha size.
func dropAlpha(pix []byte, pixelBytes, alphaBytes int) []byte {
	keep := pixelBytes - alphaBytes
	dense := make([]byte, 0, len(pix)/pixelBytes*keep)
	for i := 0; i+pixelBytes <= len(pix); i += pixelBytes {
		dense = append(dense, pix[i:i+keep]...)
	}
	return dense
}

func ycbcrToRGB(src *image.YCbCr) []byte {
	bounds := src.Bounds()
	dense := make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			yi := src.YOffset(x, y)
			ci := src.COffset(x, y)
			r, g, b := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
			dense = append(dense, r, g, b)
		}
	}
	return dense
}

func cmykToRGB(src *image.CMYK) []byte {
	bounds := src.Bounds()
	dense := make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := src.PixOffset(x, y)
			r, g, b := color.CMYKToRGB(src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3])
			dense = append(dense, r, g, b)
		}
	}
	return dense
}

// Ensure Decoder implements ports.ImageDecoder
var _ ports.ImageDecoder = (*Decoder)(nil)
