// Package orchestrator decides, per input image, whether to losslessly
// transcode an existing JPEG bitstream or re-encode from decoded pixels,
// drives the encoder session through that choice and optionally verifies the
// produced output against the source.
package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/user/jxlpack/pkg/encoder"
	"github.com/user/jxlpack/pkg/ports"
)

// ErrVerification marks a round-trip mismatch between the produced output
// and the source data. It is a data-integrity failure, distinct from any
// engine error.
var ErrVerification = errors.New("verification mismatch")

// EngineFactory allocates a fresh engine handle for one session.
type EngineFactory func() (ports.Engine, error)

// Config contains the user-facing encoding parameters for one input.
type Config struct {
	// Distance is the quality knob; nil selects the default, which depends
	// on Modular (modular defaults to lossless). Values below 0.01 mean
	// lossless.
	Distance *float64

	// Effort is the encode effort tier, 1-11.
	Effort encoder.Effort

	// Progressive is the progressive intensity: 0 disables progressive
	// encoding, higher values add more passes.
	Progressive int

	// Modular forces modular mode even for lossy distances.
	Modular bool

	// FromPixels forces pixel re-encoding of JPEG inputs that would
	// otherwise be transcoded.
	FromPixels bool

	// DecodingSpeed trades quality for decode speed, tier 0-4.
	DecodingSpeed int

	// Verify re-decodes the output and compares it byte-for-byte against
	// the pre-encode data.
	Verify bool

	// PullBufferSize is the output drain buffer size in bytes.
	PullBufferSize int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Effort:         encoder.Squirrel,
		PullBufferSize: 64 * 1024,
	}
}

// Result reports what one encode produced.
type Result struct {
	// Data is the complete encoded bitstream.
	Data []byte

	// IsTranscoded is true when the input JPEG was structurally repackaged
	// without decoding to pixels.
	IsTranscoded bool

	// Verified is true when verification ran and passed.
	Verified bool

	Format      ports.ImageFormat
	Width       int
	Height      int
	InputBytes  int
	OutputBytes int
}

// Orchestrator runs the transcode-or-encode decision for single inputs. One
// engine (and so one session) is created per input; the pool behind runner is
// shared across inputs.
type Orchestrator struct {
	newEngine EngineFactory
	runner    ports.ParallelRunner
	decoder   ports.ImageDecoder
	verifier  ports.Verifier
	logger    ports.Logger
}

// New creates a new Orchestrator.
func New(
	newEngine EngineFactory,
	runner ports.ParallelRunner,
	decoder ports.ImageDecoder,
	verifier ports.Verifier,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		newEngine: newEngine,
		runner:    runner,
		decoder:   decoder,
		verifier:  verifier,
		logger:    logger,
	}
}

// Encode encodes one input image according to config.
func (o *Orchestrator) Encode(ctx context.Context, input []byte, config Config) (Result, error) {
	result := Result{
		Format:     o.decoder.DetectFormat(input),
		InputBytes: len(input),
	}

	distance := 1.0
	if config.Modular {
		distance = 0
	}
	if config.Distance != nil {
		distance = *config.Distance
	}
	isLossless := distance < 0.01
	if isLossless {
		distance = 0
	}
	isModular := isLossless || config.Modular

	// Transcoding is attempted only for JPEG sources not forced to pixels.
	attemptTranscode := result.Format == ports.FormatJPEG && !config.FromPixels

	engine, err := o.newEngine()
	if err != nil {
		return result, fmt.Errorf("create engine: %w", err)
	}
	session, err := encoder.NewSession(engine, o.runner)
	if err != nil {
		return result, fmt.Errorf("create session: %w", err)
	}
	defer session.Close()

	// Settings must be final before the frame referencing them is
	// submitted, and the transcode outcome is not known yet, so everything
	// is applied up front. On fallback the same key is reused: nothing in
	// it is pixel-specific.
	key, err := session.CreateSettings(func(fs *encoder.FrameSettings) error {
		if err := fs.SetDistance(float32(distance)); err != nil {
			return err
		}
		if err := fs.SetEffort(config.Effort); err != nil {
			return err
		}
		if isModular {
			if err := fs.SetModular(encoder.ToggleOn); err != nil {
				return err
			}
		}
		if config.DecodingSpeed > 0 {
			if err := fs.SetDecodingSpeed(config.DecodingSpeed); err != nil {
				return err
			}
		}
		if !attemptTranscode && config.Progressive > 0 {
			if err := deriveProgressive(config.Progressive, isModular).apply(fs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("configure settings: %w", err)
	}

	if attemptTranscode {
		o.logger.Debug("Attempting JPEG transcode")
		if err := session.StoreJPEGMetadata(true); err != nil {
			return result, fmt.Errorf("store jpeg metadata: %w", err)
		}
		sub, err := session.BeginFrame(key)
		if err != nil {
			return result, fmt.Errorf("begin transcode frame: %w", err)
		}
		switch err := sub.JPEG(input); {
		case err == nil:
			result.IsTranscoded = true
		case encoder.IsTranscodeRejection(err):
			// Expected for arithmetic-coded or otherwise unsupported JPEG
			// internals; the settings key stays valid for the pixel path.
			o.logger.Warn(l10n.F("Transcode rejected, re-encoding from pixels: %s", err))
		default:
			return result, fmt.Errorf("transcode frame: %w", err)
		}
	}

	var preEncode *ports.DecodedImage
	if !result.IsTranscoded {
		if err := session.StoreJPEGMetadata(false); err != nil {
			return result, fmt.Errorf("store jpeg metadata: %w", err)
		}

		img, err := o.decoder.Decode(input)
		if err != nil {
			return result, fmt.Errorf("decode input: %w", err)
		}
		preEncode = img
		result.Width = img.Width
		result.Height = img.Height
		o.logger.Debug("Decoded %s input: %dx%d, %d channels, %d bits",
			string(img.Format), img.Width, img.Height, img.NumChannels, img.BitsPerSample)

		if err := session.SetBasicInfo(basicInfoFor(img, isLossless)); err != nil {
			return result, fmt.Errorf("set basic info: %w", err)
		}
		if img.ICCProfile != nil {
			if err := session.SetICCProfile(img.ICCProfile); err != nil {
				return result, fmt.Errorf("set icc profile: %w", err)
			}
		} else {
			color := encoder.SRGB(ports.IntentRelative)
			if img.Gray {
				color = encoder.GraySRGB(ports.IntentRelative)
			}
			if err := session.SetColorEncoding(color); err != nil {
				return result, fmt.Errorf("set color encoding: %w", err)
			}
		}

		sub, err := session.BeginFrame(key)
		if err != nil {
			return result, fmt.Errorf("begin pixel frame: %w", err)
		}
		if err := sub.Pixels(img.NumChannels, img.SampleFormat, img.Pixels); err != nil {
			return result, fmt.Errorf("pixel frame: %w", err)
		}
	}

	session.CloseInput()

	output, err := o.drain(ctx, session, config.PullBufferSize)
	if err != nil {
		return result, err
	}
	result.Data = output
	result.OutputBytes = len(output)

	if config.Verify {
		if err := o.verify(input, output, preEncode, result.IsTranscoded); err != nil {
			return result, err
		}
		result.Verified = true
	}

	return result, nil
}

// drain repeatedly pulls output into a reusable buffer until the session
// reports that none remains.
func (o *Orchestrator) drain(ctx context.Context, session *encoder.Session, bufSize int) ([]byte, error) {
	if bufSize < encoder.MinPullBuffer {
		bufSize = DefaultConfig().PullBufferSize
	}
	buf := make([]byte, bufSize)
	var out bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		status, err := session.PullOutput(buf)
		if err != nil {
			return nil, fmt.Errorf("pull output: %w", err)
		}
		out.Write(buf[:status.BytesWritten])
		if !status.NeedMoreOutput {
			return out.Bytes(), nil
		}
	}
}

// verify re-decodes output with a fresh decoder instance and compares it
// byte-for-byte against the pre-encode data.
func (o *Orchestrator) verify(input, output []byte, preEncode *ports.DecodedImage, transcoded bool) error {
	o.logger.Debug("Verifying output (%d bytes)", len(output))

	if transcoded {
		restored, err := o.verifier.ReconstructJPEG(output)
		if err != nil {
			return fmt.Errorf("verify transcode: %w", err)
		}
		if !bytes.Equal(restored, input) {
			return fmt.Errorf("verify transcode: reconstructed JPEG differs from source: %w", ErrVerification)
		}
		return nil
	}

	format := ports.PixelFormat{
		NumChannels: preEncode.NumChannels,
		DataType:    preEncode.SampleFormat,
	}
	pixels, err := o.verifier.DecodePixels(output, format)
	if err != nil {
		return fmt.Errorf("verify pixels: %w", err)
	}
	if !bytes.Equal(pixels, preEncode.Pixels) {
		return fmt.Errorf("verify pixels: round-tripped pixels differ from source: %w", ErrVerification)
	}
	return nil
}

// basicInfoFor maps decoded image metadata onto the engine's global image
// properties.
func basicInfoFor(img *ports.DecodedImage, lossless bool) ports.BasicInfo {
	info := ports.BasicInfo{
		Width:               uint32(img.Width),
		Height:              uint32(img.Height),
		BitsPerSample:       uint32(img.BitsPerSample),
		NumColorChannels:    3,
		UsesOriginalProfile: lossless,
	}
	if img.Gray {
		info.NumColorChannels = 1
	}
	if img.HasAlpha {
		info.AlphaBits = uint32(img.BitsPerSample)
	}
	switch img.SampleFormat {
	case ports.SampleF16:
		info.ExponentBitsPerSample = 5
	case ports.SampleF32:
		info.ExponentBitsPerSample = 8
	}
	return info
}
