package mocks

import (
	"github.com/user/jxlpack/pkg/ports"
)

// ImageDecoder is a mock implementation of ports.ImageDecoder.
type ImageDecoder struct {
	DetectFormatFunc func(data []byte) ports.ImageFormat
	DecodeFunc       func(data []byte) (*ports.DecodedImage, error)

	DetectCalls int
	DecodeCalls int
}

func (m *ImageDecoder) DetectFormat(data []byte) ports.ImageFormat {
	m.DetectCalls++
	if m.DetectFormatFunc != nil {
		return m.DetectFormatFunc(data)
	}
	return ports.FormatUnknown
}

func (m *ImageDecoder) Decode(data []byte) (*ports.DecodedImage, error) {
	m.DecodeCalls++
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	return &ports.DecodedImage{
		Format:        ports.FormatPNG,
		Width:         2,
		Height:        2,
		NumChannels:   3,
		BitsPerSample: 8,
		SampleFormat:  ports.SampleU8,
		Pixels:        make([]byte, 2*2*3),
	}, nil
}

// Ensure ImageDecoder implements ports.ImageDecoder
var _ ports.ImageDecoder = (*ImageDecoder)(nil)
