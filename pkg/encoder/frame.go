package encoder

import (
	"errors"

	"github.com/user/jxlpack/pkg/ports"
)

// FrameSubmission is a short-lived, single-use binding of one settings object
// to one frame payload. At most one submission call may succeed; any second
// call fails with ErrAPIUsage regardless of the first call's outcome.
type FrameSubmission struct {
	session *Session
	ref     ports.SettingsRef
	used    bool
}

// consume marks the submission used on the first call of either kind.
func (f *FrameSubmission) consume(op string) error {
	if f.used {
		return usageErr(op, "frame already submitted")
	}
	f.used = true
	return nil
}

// Pixels submits a raw pixel payload. The buffer must stay valid and
// unmodified for the duration of the call; the engine does not take
// ownership.
func (f *FrameSubmission) Pixels(numChannels uint32, format ports.SampleFormat, pixels []byte) error {
	if err := f.consume("add image frame"); err != nil {
		return err
	}
	st := f.session.engine.AddImageFrame(f.ref, ports.PixelFormat{
		NumChannels: numChannels,
		DataType:    format,
	}, pixels)
	return f.session.check("add image frame", st)
}

// JPEG submits an existing JPEG bitstream for structural, pixel-lossless
// repackaging without decoding to samples. Rejection of a particular
// bitstream (ErrBadInput or ErrJPEGReconstruction) is an expected outcome;
// callers fall back to the pixel path.
func (f *FrameSubmission) JPEG(data []byte) error {
	if err := f.consume("add jpeg frame"); err != nil {
		return err
	}
	return f.session.check("add jpeg frame", f.session.engine.AddJPEGFrame(f.ref, data))
}

// IsTranscodeRejection reports whether err is the expected, recoverable
// rejection of a JPEG transcode attempt rather than a fatal failure.
func IsTranscodeRejection(err error) bool {
	return errors.Is(err, ErrBadInput) || errors.Is(err, ErrJPEGReconstruction)
}
