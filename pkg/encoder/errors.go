// Package encoder wraps a streaming, stateful JPEG XL codec engine in a
// session model: global image configuration, frame-settings objects resolved
// through keys, single-use frame submissions and a pull-based output protocol.
package encoder

import (
	"errors"
	"fmt"

	"github.com/user/jxlpack/pkg/ports"
)

// The closed error taxonomy of the engine. Every engine failure maps onto
// exactly one of these sentinels; codes outside the known set map to
// ErrUnknown and must not be mistaken for any other kind.
var (
	ErrOutOfMemory        = errors.New("out of memory")
	ErrJPEGReconstruction = errors.New("cannot produce JPEG bitstream reconstruction data")
	ErrAPIUsage           = errors.New("wrong API usage")
	ErrBadInput           = errors.New("bad input")
	ErrNotSupported       = errors.New("not supported")
	ErrUnknown            = errors.New("unknown engine error")
)

// mapEngineCode translates the engine's sticky error code into the closed
// taxonomy. Returns nil for EngineErrOK.
func mapEngineCode(code ports.EngineErrorCode) error {
	switch code {
	case ports.EngineErrOK:
		return nil
	case ports.EngineErrOutOfMemory:
		return ErrOutOfMemory
	case ports.EngineErrJPEGReconstruction:
		return ErrJPEGReconstruction
	case ports.EngineErrAPIUsage:
		return ErrAPIUsage
	case ports.EngineErrBadInput:
		return ErrBadInput
	case ports.EngineErrNotSupported:
		return ErrNotSupported
	default:
		return ErrUnknown
	}
}

// check inspects the status an engine call returned and, only on failure,
// reads the engine's sticky error state. The error state survives later
// successful calls, so it must never be consulted unless the call itself
// reported failure.
func (s *Session) check(op string, st ports.EngineStatus) error {
	if st != ports.EngineError {
		return nil
	}
	if err := mapEngineCode(s.engine.LastError()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	// Failure status without an error code.
	return fmt.Errorf("%s: %w", op, ErrUnknown)
}

func usageErr(op, detail string) error {
	return fmt.Errorf("%s: %s: %w", op, detail, ErrAPIUsage)
}

func wrapErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
