// Package ports defines the interface boundaries between the encoding core
// and its collaborators: the codec engine, the parallel runner, the image
// decoder, the verification decoder and the host environment.
package ports

// EngineStatus is the tri-state result of engine calls that participate in
// the streaming protocol.
type EngineStatus int

const (
	// EngineSuccess indicates the operation completed. For ProcessOutput it
	// means no more output will ever be produced for this encoder.
	EngineSuccess EngineStatus = iota
	// EngineError indicates the operation failed; the precise cause is left
	// in LastError.
	EngineError
	// EngineNeedMoreOutput indicates the output buffer was exhausted and
	// ProcessOutput must be called again.
	EngineNeedMoreOutput
)

// EngineErrorCode is the engine's sticky "last error" value. Failures set it;
// later successful calls do not clear it, so it is only meaningful right after
// a call that reported EngineError.
type EngineErrorCode int

const (
	EngineErrOK EngineErrorCode = iota
	EngineErrGeneric
	EngineErrOutOfMemory
	// EngineErrJPEGReconstruction means the engine cannot produce a
	// losslessly reconstructible transcode for this JPEG input.
	EngineErrJPEGReconstruction
	EngineErrBadInput
	EngineErrAPIUsage
	EngineErrNotSupported
)

// SettingsRef is an opaque handle to one frame-settings object inside the
// engine. The zero value means "no settings object".
type SettingsRef uintptr

// FrameOption identifies an integer frame-settings knob.
type FrameOption int

const (
	// OptionEffort is the encode effort tier, 1 (fastest) to 11 (slowest).
	OptionEffort FrameOption = iota
	// OptionDecodingSpeed trades quality for decode speed, 0 to 4.
	OptionDecodingSpeed
	// OptionResponsive enables progressive (responsive) modular encoding.
	OptionResponsive
	// OptionProgressiveDC is the number of low-frequency passes, 0 to 2.
	OptionProgressiveDC
	// OptionProgressiveAC enables spectral progression of high frequencies.
	OptionProgressiveAC
	// OptionQProgressiveAC enables quantization progression of high frequencies.
	OptionQProgressiveAC
	// OptionModular forces modular (true) or VarDCT (false) mode.
	OptionModular
)

// SampleFormat is the pixel sample representation, always in native byte order.
type SampleFormat int

const (
	SampleU8 SampleFormat = iota
	SampleU16
	SampleF16
	SampleF32
)

// PixelFormat declares the memory layout of an interleaved pixel buffer.
type PixelFormat struct {
	NumChannels uint32
	DataType    SampleFormat
}

// BasicInfo carries the global image properties of one encode.
type BasicInfo struct {
	Width                 uint32
	Height                uint32
	BitsPerSample         uint32
	ExponentBitsPerSample uint32
	NumColorChannels      uint32
	AlphaBits             uint32
	UsesOriginalProfile   bool
}

// ColorSpace identifies the color model of a ColorEncoding.
type ColorSpace int

const (
	ColorSpaceRGB ColorSpace = iota
	ColorSpaceGray
)

// TransferFunction identifies the tone curve of a ColorEncoding.
type TransferFunction int

const (
	TransferSRGB TransferFunction = iota
	TransferLinear
)

// RenderingIntent is the ICC rendering intent of a ColorEncoding.
type RenderingIntent int

const (
	IntentPerceptual RenderingIntent = iota
	IntentRelative
	IntentSaturation
	IntentAbsolute
)

// ColorEncoding is a named color description (as opposed to a raw ICC blob).
// White point and primaries are fixed to D65/sRGB.
type ColorEncoding struct {
	Space    ColorSpace
	Transfer TransferFunction
	Intent   RenderingIntent
}

// FrameHeader is the optional structural header of one frame.
type FrameHeader struct {
	// Duration in animation ticks; zero for still images.
	Duration uint32
	// Timecode in SMPTE units when the animation uses timecodes.
	Timecode uint32
	// Name is the frame name stored in the bitstream (may be empty).
	Name string
	// IsLast marks the final frame of the image.
	IsLast bool
}

// Engine is the operation set of the wrapped streaming codec engine. One
// Engine instance backs exactly one encode session; it is not reusable after
// Destroy. Calls that return EngineStatus leave the failure cause in
// LastError on EngineError.
type Engine interface {
	// SetParallelRunner installs the work-distribution callback. Must be
	// called before any other operation.
	SetParallelRunner(runner ParallelRunner) EngineStatus

	SetBasicInfo(info BasicInfo) EngineStatus
	SetColorEncoding(enc ColorEncoding) EngineStatus
	SetICCProfile(icc []byte) EngineStatus

	// StoreJPEGMetadata controls whether JPEG reconstruction metadata is
	// written so a transcoded frame can be restored byte-for-byte.
	StoreJPEGMetadata(store bool) EngineStatus

	// CreateSettings allocates a frame-settings object. A zero source means
	// engine defaults; a nonzero source clones that object's configuration.
	// Returns zero when the engine cannot allocate.
	CreateSettings(source SettingsRef) SettingsRef

	SetOption(settings SettingsRef, opt FrameOption, value int64) EngineStatus
	SetFloatOption(settings SettingsRef, opt FrameOption, value float32) EngineStatus
	SetFrameLossless(settings SettingsRef, lossless bool) EngineStatus
	SetFrameDistance(settings SettingsRef, distance float32) EngineStatus
	SetFrameHeader(settings SettingsRef, header FrameHeader) EngineStatus

	// AddImageFrame submits raw pixels. The buffer is only referenced for
	// the duration of the call.
	AddImageFrame(settings SettingsRef, format PixelFormat, pixels []byte) EngineStatus

	// AddJPEGFrame submits a JPEG bitstream for lossless transcoding.
	AddJPEGFrame(settings SettingsRef, jpeg []byte) EngineStatus

	CloseFrames()
	CloseInput()

	// ProcessOutput writes as much pending output as fits into buf and
	// returns the byte count with EngineSuccess (all output produced),
	// EngineNeedMoreOutput (call again) or EngineError.
	ProcessOutput(buf []byte) (int, EngineStatus)

	LastError() EngineErrorCode

	// Destroy frees the engine and every settings object it allocated.
	Destroy()
}
