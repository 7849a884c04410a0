// Package jxlengine provides the JPEG XL encoder engine using libjxl.
package jxlengine

/*
#cgo !windows pkg-config: libjxl
#cgo windows CFLAGS: -IC:/vcpkg/installed/x64-windows-static/include
#cgo windows LDFLAGS: -LC:/vcpkg/installed/x64-windows-static/lib -ljxl -static
#include <jxl/encode.h>
#include <jxl/parallel_runner.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

// Defined in runner.go via cgo export.
extern JxlParallelRetCode jxlpackParallelRun(void* runner_opaque, void* jpegxl_opaque,
    JxlParallelRunInit init, JxlParallelRunFunction func,
    uint32_t start_range, uint32_t end_range);

static JxlEncoderStatus set_runner(JxlEncoder* enc, uintptr_t handle) {
    return JxlEncoderSetParallelRunner(enc, jxlpackParallelRun, (void*)handle);
}

// JxlColorEncodingSetToSRGB fills white point, primaries and gamma; the
// transfer function is overridden afterwards for the linear variant.
static void srgb_color_encoding(JxlColorEncoding* enc, int is_gray, int linear, int intent) {
    JxlColorEncodingSetToSRGB(enc, is_gray);
    if (linear) {
        enc->transfer_function = JXL_TRANSFER_FUNCTION_LINEAR;
    }
    enc->rendering_intent = (JxlRenderingIntent)intent;
}
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"unsafe"

	"github.com/user/jxlpack/pkg/ports"
)

// Engine implements ports.Engine on top of the libjxl encoder API. One
// Engine backs exactly one encode; it is not reusable after Destroy.
type Engine struct {
	enc    *C.JxlEncoder
	runner cgo.Handle
}

// New allocates a fresh libjxl encoder handle.
func New() (ports.Engine, error) {
	enc := C.JxlEncoderCreate(nil)
	if enc == nil {
		return nil, fmt.Errorf("jxlengine: encoder allocation failed")
	}
	return &Engine{enc: enc}, nil
}

func mapStatus(st C.JxlEncoderStatus) ports.EngineStatus {
	switch st {
	case C.JXL_ENC_SUCCESS:
		return ports.EngineSuccess
	case C.JXL_ENC_NEED_MORE_OUTPUT:
		return ports.EngineNeedMoreOutput
	default:
		return ports.EngineError
	}
}

func settingsPtr(ref ports.SettingsRef) *C.JxlEncoderFrameSettings {
	return (*C.JxlEncoderFrameSettings)(unsafe.Pointer(uintptr(ref)))
}

// SetParallelRunner installs the Go runner behind libjxl's parallel-for
// callback. The runner is reached from C through a cgo handle.
func (e *Engine) SetParallelRunner(runner ports.ParallelRunner) ports.EngineStatus {
	if e.runner != 0 {
		e.runner.Delete()
		e.runner = 0
	}
	var handle C.uintptr_t
	if runner != nil {
		e.runner = cgo.NewHandle(runner)
		handle = C.uintptr_t(e.runner)
	}
	return mapStatus(C.set_runner(e.enc, handle))
}

func (e *Engine) SetBasicInfo(info ports.BasicInfo) ports.EngineStatus {
	var ci C.JxlBasicInfo
	C.JxlEncoderInitBasicInfo(&ci)
	ci.xsize = C.uint32_t(info.Width)
	ci.ysize = C.uint32_t(info.Height)
	ci.bits_per_sample = C.uint32_t(info.BitsPerSample)
	ci.exponent_bits_per_sample = C.uint32_t(info.ExponentBitsPerSample)
	ci.num_color_channels = C.uint32_t(info.NumColorChannels)
	if info.AlphaBits > 0 {
		ci.alpha_bits = C.uint32_t(info.AlphaBits)
		ci.num_extra_channels = 1
	}
	if info.UsesOriginalProfile {
		ci.uses_original_profile = C.JXL_TRUE
	}
	return mapStatus(C.JxlEncoderSetBasicInfo(e.enc, &ci))
}

func (e *Engine) SetColorEncoding(enc ports.ColorEncoding) ports.EngineStatus {
	var ce C.JxlColorEncoding
	isGray := C.int(0)
	if enc.Space == ports.ColorSpaceGray {
		isGray = 1
	}
	linear := C.int(0)
	if enc.Transfer == ports.TransferLinear {
		linear = 1
	}
	C.srgb_color_encoding(&ce, isGray, linear, C.int(intentValue(enc.Intent)))
	return mapStatus(C.JxlEncoderSetColorEncoding(e.enc, &ce))
}

func intentValue(intent ports.RenderingIntent) int {
	switch intent {
	case ports.IntentRelative:
		return C.JXL_RENDERING_INTENT_RELATIVE
	case ports.IntentSaturation:
		return C.JXL_RENDERING_INTENT_SATURATION
	case ports.IntentAbsolute:
		return C.JXL_RENDERING_INTENT_ABSOLUTE
	default:
		return C.JXL_RENDERING_INTENT_PERCEPTUAL
	}
}

func (e *Engine) SetICCProfile(icc []byte) ports.EngineStatus {
	if len(icc) == 0 {
		return ports.EngineError
	}
	return mapStatus(C.JxlEncoderSetICCProfile(e.enc,
		(*C.uint8_t)(unsafe.Pointer(&icc[0])), C.size_t(len(icc))))
}

func (e *Engine) StoreJPEGMetadata(store bool) ports.EngineStatus {
	if store {
		// Reconstruction metadata lives in the container format.
		if st := C.JxlEncoderUseContainer(e.enc, C.JXL_TRUE); st != C.JXL_ENC_SUCCESS {
			return mapStatus(st)
		}
		return mapStatus(C.JxlEncoderStoreJPEGMetadata(e.enc, C.JXL_TRUE))
	}
	return mapStatus(C.JxlEncoderStoreJPEGMetadata(e.enc, C.JXL_FALSE))
}

func (e *Engine) CreateSettings(source ports.SettingsRef) ports.SettingsRef {
	fs := C.JxlEncoderFrameSettingsCreate(e.enc, settingsPtr(source))
	return ports.SettingsRef(uintptr(unsafe.Pointer(fs)))
}

func optionID(opt ports.FrameOption) C.JxlEncoderFrameSettingId {
	switch opt {
	case ports.OptionEffort:
		return C.JXL_ENC_FRAME_SETTING_EFFORT
	case ports.OptionDecodingSpeed:
		return C.JXL_ENC_FRAME_SETTING_DECODING_SPEED
	case ports.OptionResponsive:
		return C.JXL_ENC_FRAME_SETTING_RESPONSIVE
	case ports.OptionProgressiveDC:
		return C.JXL_ENC_FRAME_SETTING_PROGRESSIVE_DC
	case ports.OptionProgressiveAC:
		return C.JXL_ENC_FRAME_SETTING_PROGRESSIVE_AC
	case ports.OptionQProgressiveAC:
		return C.JXL_ENC_FRAME_SETTING_QPROGRESSIVE_AC
	case ports.OptionModular:
		return C.JXL_ENC_FRAME_SETTING_MODULAR
	default:
		return C.JXL_ENC_FRAME_SETTING_FILL_ENUM
	}
}

func (e *Engine) SetOption(settings ports.SettingsRef, opt ports.FrameOption, value int64) ports.EngineStatus {
	return mapStatus(C.JxlEncoderFrameSettingsSetOption(settingsPtr(settings), optionID(opt), C.int64_t(value)))
}

func (e *Engine) SetFloatOption(settings ports.SettingsRef, opt ports.FrameOption, value float32) ports.EngineStatus {
	return mapStatus(C.JxlEncoderFrameSettingsSetFloatOption(settingsPtr(settings), optionID(opt), C.float(value)))
}

func (e *Engine) SetFrameLossless(settings ports.SettingsRef, lossless bool) ports.EngineStatus {
	v := C.JxlBool(C.JXL_FALSE)
	if lossless {
		v = C.JXL_TRUE
	}
	return mapStatus(C.JxlEncoderSetFrameLossless(settingsPtr(settings), v))
}

func (e *Engine) SetFrameDistance(settings ports.SettingsRef, distance float32) ports.EngineStatus {
	return mapStatus(C.JxlEncoderSetFrameDistance(settingsPtr(settings), C.float(distance)))
}

func (e *Engine) SetFrameHeader(settings ports.SettingsRef, header ports.FrameHeader) ports.EngineStatus {
	var fh C.JxlFrameHeader
	C.JxlEncoderInitFrameHeader(&fh)
	fh.duration = C.uint32_t(header.Duration)
	fh.timecode = C.uint32_t(header.Timecode)
	if header.IsLast {
		fh.is_last = C.JXL_TRUE
	}
	if st := C.JxlEncoderSetFrameHeader(settingsPtr(settings), &fh); st != C.JXL_ENC_SUCCESS {
		return mapStatus(st)
	}
	if header.Name != "" {
		cname := C.CString(header.Name)
		defer C.free(unsafe.Pointer(cname))
		return mapStatus(C.JxlEncoderSetFrameName(settingsPtr(settings), cname))
	}
	return ports.EngineSuccess
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

func (e *Engine) AddImageFrame(settings ports.SettingsRef, format ports.PixelFormat, pixels []byte) ports.EngineStatus {
	if len(pixels) == 0 {
		return ports.EngineError
	}
	pf := C.JxlPixelFormat{
		num_channels: C.uint32_t(format.NumChannels),
		data_type:    dataType(format.DataType),
		endianness:   C.JXL_NATIVE_ENDIAN,
		align:        0,
	}
	// The engine copies what it needs during the call; pixels is only
	// referenced for its duration.
	return mapStatus(C.JxlEncoderAddImageFrame(settingsPtr(settings), &pf,
		unsafe.Pointer(&pixels[0]), C.size_t(len(pixels))))
}

func (e *Engine) AddJPEGFrame(settings ports.SettingsRef, jpeg []byte) ports.EngineStatus {
	if len(jpeg) == 0 {
		return ports.EngineError
	}
	return mapStatus(C.JxlEncoderAddJPEGFrame(settingsPtr(settings),
		(*C.uint8_t)(unsafe.Pointer(&jpeg[0])), C.size_t(len(jpeg))))
}

func (e *Engine) CloseFrames() {
	C.JxlEncoderCloseFrames(e.enc)
}

func (e *Engine) CloseInput() {
	C.JxlEncoderCloseInput(e.enc)
}

func (e *Engine) ProcessOutput(buf []byte) (int, ports.EngineStatus) {
	if len(buf) == 0 {
		return 0, ports.EngineNeedMoreOutput
	}
	nextOut := (*C.uint8_t)(unsafe.Pointer(&buf[0]))
	availOut := C.size_t(len(buf))
	st := C.JxlEncoderProcessOutput(e.enc, &nextOut, &availOut)
	return len(buf) - int(availOut), mapStatus(st)
}

func (e *Engine) LastError() ports.EngineErrorCode {
	switch C.JxlEncoderGetError(e.enc) {
	case C.JXL_ENC_ERR_OK:
		return ports.EngineErrOK
	case C.JXL_ENC_ERR_OOM:
		return ports.EngineErrOutOfMemory
	case C.JXL_ENC_ERR_JBRD:
		return ports.EngineErrJPEGReconstruction
	case C.JXL_ENC_ERR_BAD_INPUT:
		return ports.EngineErrBadInput
	case C.JXL_ENC_ERR_API_USAGE:
		return ports.EngineErrAPIUsage
	case C.JXL_ENC_ERR_NOT_SUPPORTED:
		return ports.EngineErrNotSupported
	default:
		return ports.EngineErrGeneric
	}
}

// Destroy frees the encoder and with it every frame-settings object it
// allocated.
func (e *Engine) Destroy() {
	if e.enc != nil {
		C.JxlEncoderDestroy(e.enc)
		e.enc = nil
	}
	if e.runner != 0 {
		e.runner.Delete()
		e.runner = 0
	}
}

// Ensure Engine implements ports.Engine
var _ ports.Engine = (*Engine)(nil)
