// Package jxlverifier provides round-trip verification using the libjxl
// decoder. It is only ever used to compare produced output against the
// pre-encode data, never in the primary encode path.
package jxlverifier

/*
#cgo !windows pkg-config: libjxl
#cgo windows CFLAGS: -IC:/vcpkg/installed/x64-windows-static/include
#cgo windows LDFLAGS: -LC:/vcpkg/installed/x64-windows-static/lib -ljxl -static
#include <jxl/decode.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/user/jxlpack/pkg/ports"
)

// Verifier implements ports.Verifier with a fresh libjxl decoder per call.
type Verifier struct{}

// New creates a new Verifier.
func New() *Verifier {
	return &Verifier{}
}

// ReconstructJPEG decodes a transcoded bitstream back to the original JPEG
// bytes using the embedded reconstruction metadata.
func (v *Verifier) ReconstructJPEG(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("jxlverifier: empty input")
	}
	dec := C.JxlDecoderCreate(nil)
	if dec == nil {
		return nil, fmt.Errorf("jxlverifier: decoder allocation failed")
	}
	defer C.JxlDecoderDestroy(dec)

	if st := C.JxlDecoderSubscribeEvents(dec,
		C.JXL_DEC_JPEG_RECONSTRUCTION|C.JXL_DEC_FULL_IMAGE); st != C.JXL_DEC_SUCCESS {
		return nil, fmt.Errorf("jxlverifier: subscribe events: status %d", int(st))
	}
	C.JxlDecoderSetInput(dec, (*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data)))
	C.JxlDecoderCloseInput(dec)

	var out []byte
	chunk := make([]byte, 1<<20)
	bufSet := false
	setBuf := func() error {
		st := C.JxlDecoderSetJPEGBuffer(dec, (*C.uint8_t)(unsafe.Pointer(&chunk[0])), C.size_t(len(chunk)))
		if st != C.JXL_DEC_SUCCESS {
			return fmt.Errorf("jxlverifier: set jpeg buffer: status %d", int(st))
		}
		bufSet = true
		return nil
	}
	releaseBuf := func() {
		if !bufSet {
			return
		}
		remaining := int(C.JxlDecoderReleaseJPEGBuffer(dec))
		out = append(out, chunk[:len(chunk)-remaining]...)
		bufSet = false
	}

	for {
		switch st := C.JxlDecoderProcessInput(dec); st {
		case C.JXL_DEC_JPEG_RECONSTRUCTION:
			if err := setBuf(); err != nil {
				return nil, err
			}
		case C.JXL_DEC_JPEG_NEED_MORE_OUTPUT:
			releaseBuf()
			if err := setBuf(); err != nil {
				return nil, err
			}
		case C.JXL_DEC_FULL_IMAGE:
			// Pixels are not produced while a JPEG buffer is active.
		case C.JXL_DEC_SUCCESS:
			releaseBuf()
			if len(out) == 0 {
				return nil, fmt.Errorf("jxlverifier: no JPEG reconstruction data in bitstream")
			}
			return out, nil
		default:
			return nil, fmt.Errorf("jxlverifier: reconstruct jpeg: status %d", int(st))
		}
	}
}

// DecodePixels decodes the bitstream into a dense pixel buffer in the given
// layout.
func (v *Verifier) DecodePixels(data []byte, format ports.PixelFormat) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("jxlverifier: empty input")
	}
	dec := C.JxlDecoderCreate(nil)
	if dec == nil {
		return nil, fmt.Errorf("jxlverifier: decoder allocation failed")
	}
	defer C.JxlDecoderDestroy(dec)

	if st := C.JxlDecoderSubscribeEvents(dec,
		C.JXL_DEC_BASIC_INFO|C.JXL_DEC_FULL_IMAGE); st != C.JXL_DEC_SUCCESS {
		return nil, fmt.Errorf("jxlverifier: subscribe events: status %d", int(st))
	}
	C.JxlDecoderSetInput(dec, (*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data)))
	C.JxlDecoderCloseInput(dec)

	pf := C.JxlPixelFormat{
		num_channels: C.uint32_t(format.NumChannels),
		data_type:    dataType(format.DataType),
		endianness:   C.JXL_NATIVE_ENDIAN,
		align:        0,
	}

	var pixels []byte
	for {
		switch st := C.JxlDecoderProcessInput(dec); st {
		case C.JXL_DEC_BASIC_INFO:
			// Only needed to drive the event loop forward.
		case C.JXL_DEC_NEED_IMAGE_OUT_BUFFER:
			var size C.size_t
			if st := C.JxlDecoderImageOutBufferSize(dec, &pf, &size); st != C.JXL_DEC_SUCCESS {
				return nil, fmt.Errorf("jxlverifier: image out buffer size: status %d", int(st))
			}
			pixels = make([]byte, int(size))
			if st := C.JxlDecoderSetImageOutBuffer(dec, &pf,
				unsafe.Pointer(&pixels[0]), size); st != C.JXL_DEC_SUCCESS {
				return nil, fmt.Errorf("jxlverifier: set image out buffer: status %d", int(st))
			}
		case C.JXL_DEC_FULL_IMAGE:
			// Buffer is filled; wait for the final success status.
		case C.JXL_DEC_SUCCESS:
			if pixels == nil {
				return nil, fmt.Errorf("jxlverifier: no image in bitstream")
			}
			return pixels, nil
		default:
			return nil, fmt.Errorf("jxlverifier: decode pixels: status %d", int(st))
		}
	}
}

func dataType(format ports.SampleFormat) C.JxlDataType {
	switch format {
	case ports.SampleU16:
		return C.JXL_TYPE_UINT16
	case ports.SampleF16:
		return C.JXL_TYPE_FLOAT16
	case ports.SampleF32:
		return C.JXL_TYPE_FLOAT
	default:
		return C.JXL_TYPE_UINT8
	}
}

// Ensure Verifier implements ports.Verifier
var _ ports.Verifier = (*Verifier)(nil)
