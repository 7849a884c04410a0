package imagedecoder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/user/jxlpack/pkg/ports"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want ports.ImageFormat
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, ports.FormatJPEG},
		{"png", []byte("\x89PNG\r\n\x1a\nrest"), ports.FormatPNG},
		{"gif87", []byte("GIF87a...."), ports.FormatGIF},
		{"gif89", []byte("GIF89a...."), ports.FormatGIF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), ports.FormatWebP},
		{"tiff le", []byte("II*\x00data"), ports.FormatTIFF},
		{"tiff be", []byte("MM\x00*data"), ports.FormatTIFF},
		{"bmp", []byte("BM\x00\x00\x00\x00"), ports.FormatBMP},
		{"empty", nil, ports.FormatUnknown},
		{"text", []byte("hello world"), ports.FormatUnknown},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DetectFormat(tt.data); got != tt.want {
				t.Errorf("DetectFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_OpaquePNGDropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		src.SetNRGBA(i%2, i/2, color.NRGBA{R: uint8(10 * i), G: 20, B: 30, A: 255})
	}

	img, err := New().Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if img.Format != ports.FormatPNG {
		t.Errorf("expected png format, got %q", img.Format)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Errorf("expected 2x2, got %dx%d", img.Width, img.Height)
	}
	if img.HasAlpha || img.NumChannels != 3 {
		t.Errorf("expected opaque 3-channel output, got %d channels (alpha=%v)", img.NumChannels, img.HasAlpha)
	}
	if len(img.Pixels) != 2*2*3 {
		t.Fatalf("expected 12 pixel bytes, got %d", len(img.Pixels))
	}
	if img.Pixels[0] != 0 || img.Pixels[1] != 20 || img.Pixels[2] != 30 {
		t.Errorf("unexpected first pixel: %v", img.Pixels[:3])
	}
}

func TestDecode_TransparentPNGKeepsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 128})

	img, err := New().Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !img.HasAlpha || img.NumChannels != 4 {
		t.Errorf("expected 4-channel output with alpha, got %d (alpha=%v)", img.NumChannels, img.HasAlpha)
	}
	if len(img.Pixels) != 2*4 {
		t.Fatalf("expected 8 pixel bytes, got %d", len(img.Pixels))
	}
	if img.Pixels[7] != 128 {
		t.Errorf("expected second alpha 128, got %d", img.Pixels[7])
	}
}

func TestDecode_GrayPNG(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 1))
	src.SetGray(0, 0, color.Gray{Y: 0})
	src.SetGray(1, 0, color.Gray{Y: 128})
	src.SetGray(2, 0, color.Gray{Y: 255})

	img, err := New().Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !img.Gray || img.NumChannels != 1 || img.BitsPerSample != 8 {
		t.Errorf("expected 8-bit grayscale, got %+v", img)
	}
	if !bytes.Equal(img.Pixels, []byte{0, 128, 255}) {
		t.Errorf("unexpected pixels %v", img.Pixels)
	}
}

func TestDecode_Gray16PNG(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 2, 1))
	src.SetGray16(0, 0, color.Gray16{Y: 0x1234})
	src.SetGray16(1, 0, color.Gray16{Y: 0xFFFF})

	img, err := New().Decode(encodePNG(t, src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if img.BitsPerSample != 16 || img.SampleFormat != ports.SampleU16 {
		t.Errorf("expected 16-bit samples, got %d bits, format %d", img.BitsPerSample, img.SampleFormat)
	}
	if len(img.Pixels) != 4 {
		t.Fatalf("expected 4 pixel bytes, got %d", len(img.Pixels))
	}
}

func TestDecode_JPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}

	img, err := New().Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if img.Format != ports.FormatJPEG {
		t.Errorf("expected jpeg format, got %q", img.Format)
	}
	if img.NumChannels != 3 || img.BitsPerSample != 8 {
		t.Errorf("expected 3x8-bit channels, got %dx%d", img.NumChannels, img.BitsPerSample)
	}
	if len(img.Pixels) != 8*8*3 {
		t.Errorf("expected %d pixel bytes, got %d", 8*8*3, len(img.Pixels))
	}
	if img.ICCProfile != nil {
		t.Error("expected no ICC profile in a stdlib-encoded JPEG")
	}
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := New().Decode([]byte("not an image")); err == nil {
		t.Error("expected an error for undecodable data")
	}
}

// buildJPEGWithICC assembles a minimal marker sequence carrying profile split
// across two APP2 segments. It is only structurally a JPEG, enough for the
// segment walker.
func buildJPEGWithICC(profile []byte) []byte {
	half := len(profile) / 2
	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8})
	writeAPP2 := func(seq, count byte, chunk []byte) {
		payload := append(append([]byte("ICC_PROFILE\x00"), seq, count), chunk...)
		out.Write([]byte{0xFF, 0xE2, byte((len(payload) + 2) >> 8), byte(len(payload) + 2)})
		out.Write(payload)
	}
	writeAPP2(1, 2, profile[:half])
	writeAPP2(2, 2, profile[half:])
	out.Write([]byte{0xFF, 0xDA, 0x00, 0x02})
	return out.Bytes()
}

func TestJPEGICCProfile_Reassembly(t *testing.T) {
	profile := bytes.Repeat([]byte{0xAB, 0xCD, 0xEF}, 20)

	got := jpegICCProfile(buildJPEGWithICC(profile))
	if !bytes.Equal(got, profile) {
		t.Errorf("reassembled profile differs: got %d bytes, want %d", len(got), len(profile))
	}
}

func TestJPEGICCProfile_Missing(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}

	if got := jpegICCProfile(buf.Bytes()); got != nil {
		t.Errorf("expected nil for a profile-less JPEG, got %d bytes", len(got))
	}
}

func TestJPEGICCProfile_IncompleteChunks(t *testing.T) {
	profile := bytes.Repeat([]byte{0x11}, 10)
	data := buildJPEGWithICC(profile)

	// Strip everything after the first APP2 segment; the declared count of 2
	// chunks is then never satisfied.
	firstLen := 2 + 2 + 2 + len("ICC_PROFILE\x00") + 2 + len(profile)/2
	truncated := append([]byte(nil), data[:firstLen]...)
	truncated = append(truncated, 0xFF, 0xDA, 0x00, 0x02)

	if got := jpegICCProfile(truncated); got != nil {
		t.Errorf("expected nil for incomplete chunk set, got %d bytes", len(got))
	}
}
