package encoder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/user/jxlpack/pkg/mocks"
	"github.com/user/jxlpack/pkg/ports"
)

func TestFrameSubmission_Pixels(t *testing.T) {
	session, engine := newTestSession(t)
	defer session.Close()

	key, _ := session.CreateSettings(nil)
	sub, err := session.BeginFrame(key)
	if err != nil {
		t.Fatalf("BeginFrame failed: %v", err)
	}

	pixels := []byte{1, 2, 3, 4, 5, 6}
	if err := sub.Pixels(3, ports.SampleU8, pixels); err != nil {
		t.Fatalf("Pixels failed: %v", err)
	}

	if len(engine.ImageFrameCalls) != 1 {
		t.Fatalf("expected 1 image frame call, got %d", len(engine.ImageFrameCalls))
	}
	call := engine.ImageFrameCalls[0]
	if call.Format.NumChannels != 3 || call.Format.DataType != ports.SampleU8 {
		t.Errorf("unexpected pixel format: %+v", call.Format)
	}
	if len(call.Pixels) != len(pixels) {
		t.Errorf("expected %d pixel bytes, got %d", len(pixels), len(call.Pixels))
	}
}

func TestFrameSubmission_SingleUse(t *testing.T) {
	session, engine := newTestSession(t)
	defer session.Close()

	key, _ := session.CreateSettings(nil)
	sub, err := session.BeginFrame(key)
	if err != nil {
		t.Fatalf("BeginFrame failed: %v", err)
	}

	if err := sub.JPEG([]byte{0xFF, 0xD8}); err != nil {
		t.Fatalf("JPEG failed: %v", err)
	}

	// Any second submission fails without reaching the engine.
	if err := sub.JPEG([]byte{0xFF, 0xD8}); !errors.Is(err, ErrAPIUsage) {
		t.Errorf("expected ErrAPIUsage on repeated JPEG, got %v", err)
	}
	if err := sub.Pixels(3, ports.SampleU8, []byte{1, 2, 3}); !errors.Is(err, ErrAPIUsage) {
		t.Errorf("expected ErrAPIUsage on mixed second submission, got %v", err)
	}
	if len(engine.JPEGFrameCalls) != 1 || len(engine.ImageFrameCalls) != 0 {
		t.Errorf("expected exactly one engine submission, got %d jpeg, %d image",
			len(engine.JPEGFrameCalls), len(engine.ImageFrameCalls))
	}
}

func TestFrameSubmission_ConsumedEvenOnFailure(t *testing.T) {
	engine := &mocks.Engine{
		AddJPEGFrameFunc: func(ports.SettingsRef, []byte) ports.EngineStatus {
			return ports.EngineError
		},
		FailWith: ports.EngineErrJPEGReconstruction,
	}
	session, err := NewSession(engine, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	key, _ := session.CreateSettings(nil)
	sub, _ := session.BeginFrame(key)

	if err := sub.JPEG([]byte{0xFF, 0xD8}); !errors.Is(err, ErrJPEGReconstruction) {
		t.Fatalf("expected ErrJPEGReconstruction, got %v", err)
	}

	// The failed attempt consumed the submission.
	if err := sub.JPEG([]byte{0xFF, 0xD8}); !errors.Is(err, ErrAPIUsage) {
		t.Errorf("expected ErrAPIUsage after failed first submission, got %v", err)
	}
	if len(engine.JPEGFrameCalls) != 1 {
		t.Errorf("expected 1 engine call, got %d", len(engine.JPEGFrameCalls))
	}
}

func TestIsTranscodeRejection(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("add jpeg frame: %w", ErrBadInput), true},
		{fmt.Errorf("add jpeg frame: %w", ErrJPEGReconstruction), true},
		{fmt.Errorf("add jpeg frame: %w", ErrOutOfMemory), false},
		{ErrAPIUsage, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsTranscodeRejection(tt.err); got != tt.want {
			t.Errorf("IsTranscodeRejection(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
