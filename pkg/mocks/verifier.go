package mocks

import (
	"github.com/user/jxlpack/pkg/ports"
)

// Verifier is a mock implementation of ports.Verifier.
type Verifier struct {
	ReconstructJPEGFunc func(data []byte) ([]byte, error)
	DecodePixelsFunc    func(data []byte, format ports.PixelFormat) ([]byte, error)

	ReconstructCalls int
	DecodePixelCalls int
}

func (m *Verifier) ReconstructJPEG(data []byte) ([]byte, error) {
	m.ReconstructCalls++
	if m.ReconstructJPEGFunc != nil {
		return m.ReconstructJPEGFunc(data)
	}
	return nil, nil
}

func (m *Verifier) DecodePixels(data []byte, format ports.PixelFormat) ([]byte, error) {
	m.DecodePixelCalls++
	if m.DecodePixelsFunc != nil {
		return m.DecodePixelsFunc(data, format)
	}
	return nil, nil
}

// Ensure Verifier implements ports.Verifier
var _ ports.Verifier = (*Verifier)(nil)
