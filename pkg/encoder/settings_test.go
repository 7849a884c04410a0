package encoder

import (
	"errors"
	"testing"

	"github.com/user/jxlpack/pkg/mocks"
	"github.com/user/jxlpack/pkg/ports"
)

// configure runs one setter against a fresh settings object and returns the
// setter's error together with the engine for call inspection.
func configure(t *testing.T, apply func(*FrameSettings) error) (*mocks.Engine, error) {
	t.Helper()
	session, engine := newTestSession(t)
	defer session.Close()

	key, err := session.CreateSettings(nil)
	if err != nil {
		t.Fatalf("CreateSettings failed: %v", err)
	}
	return engine, session.UpdateSettings(key, apply)
}

func TestSetDistance_LosslessTrapdoor(t *testing.T) {
	tests := []struct {
		name         string
		distance     float32
		wantLossless bool
	}{
		{"zero", 0, true},
		{"below threshold", 0.009, true},
		{"at threshold", 0.01, false},
		{"visually lossless", 1.0, false},
		{"lossy", 4.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := configure(t, func(fs *FrameSettings) error {
				return fs.SetDistance(tt.distance)
			})
			if err != nil {
				t.Fatalf("SetDistance(%g) failed: %v", tt.distance, err)
			}

			if tt.wantLossless {
				if len(engine.LosslessCalls) != 1 {
					t.Errorf("expected the lossless switch, got %d calls", len(engine.LosslessCalls))
				}
				if len(engine.DistanceCalls) != 0 {
					t.Errorf("expected no distance call, got %v", engine.DistanceCalls)
				}
			} else {
				if len(engine.DistanceCalls) != 1 || engine.DistanceCalls[0] != tt.distance {
					t.Errorf("expected distance call %g, got %v", tt.distance, engine.DistanceCalls)
				}
				if len(engine.LosslessCalls) != 0 {
					t.Errorf("expected no lossless call, got %d", len(engine.LosslessCalls))
				}
			}
		})
	}
}

func TestSetEffort_Range(t *testing.T) {
	for _, e := range []Effort{0, 12, -1} {
		engine, err := configure(t, func(fs *FrameSettings) error {
			return fs.SetEffort(e)
		})
		if !errors.Is(err, ErrAPIUsage) {
			t.Errorf("SetEffort(%d): expected ErrAPIUsage, got %v", int(e), err)
		}
		if len(engine.OptionCalls) != 0 {
			t.Errorf("SetEffort(%d): expected no engine call on invalid input", int(e))
		}
	}

	engine, err := configure(t, func(fs *FrameSettings) error {
		return fs.SetEffort(TectonicPlate)
	})
	if err != nil {
		t.Fatalf("SetEffort failed: %v", err)
	}
	if engine.OptionCalls[0].Value != 11 {
		t.Errorf("expected effort 11, got %d", engine.OptionCalls[0].Value)
	}
}

func TestEffort_String(t *testing.T) {
	if got := Squirrel.String(); got != "squirrel" {
		t.Errorf("expected squirrel, got %q", got)
	}
	if got := Effort(42).String(); got != "42" {
		t.Errorf("expected 42, got %q", got)
	}
}

func TestParseEffort(t *testing.T) {
	tests := []struct {
		in      string
		want    Effort
		wantErr bool
	}{
		{"1", Lightning, false},
		{"11", TectonicPlate, false},
		{"7", Squirrel, false},
		{"0", 0, true},
		{"12", 0, true},
		{"kitten", Kitten, false},
		{" Glacier ", Glacier, false},
		{"tectonic_plate", TectonicPlate, false},
		{"warp", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseEffort(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrAPIUsage) {
				t.Errorf("ParseEffort(%q): expected ErrAPIUsage, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEffort(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEffort(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToggleSetters(t *testing.T) {
	setters := []struct {
		name   string
		apply  func(*FrameSettings, Toggle) error
		option ports.FrameOption
	}{
		{"modular", (*FrameSettings).SetModular, ports.OptionModular},
		{"modular progressive", (*FrameSettings).SetModularProgressive, ports.OptionResponsive},
		{"progressive ac", (*FrameSettings).SetProgressiveAC, ports.OptionProgressiveAC},
		{"qprogressive ac", (*FrameSettings).SetQProgressiveAC, ports.OptionQProgressiveAC},
	}

	for _, setter := range setters {
		t.Run(setter.name, func(t *testing.T) {
			// Each tri-state value is forwarded verbatim, -1 included.
			for _, v := range []Toggle{ToggleDefault, ToggleOff, ToggleOn} {
				engine, err := configure(t, func(fs *FrameSettings) error {
					return setter.apply(fs, v)
				})
				if err != nil {
					t.Fatalf("%s(%d) failed: %v", setter.name, v, err)
				}
				call := engine.OptionCalls[0]
				if call.Option != setter.option || call.Value != int64(v) {
					t.Errorf("%s(%d): unexpected call %+v", setter.name, v, call)
				}
			}

			_, err := configure(t, func(fs *FrameSettings) error {
				return setter.apply(fs, Toggle(2))
			})
			if !errors.Is(err, ErrAPIUsage) {
				t.Errorf("%s(2): expected ErrAPIUsage, got %v", setter.name, err)
			}
		})
	}
}

func TestSetProgressiveDC_Range(t *testing.T) {
	for _, passes := range []int{ProgressiveDCDefault, 0, 1, 2} {
		engine, err := configure(t, func(fs *FrameSettings) error {
			return fs.SetProgressiveDC(passes)
		})
		if err != nil {
			t.Fatalf("SetProgressiveDC(%d) failed: %v", passes, err)
		}
		if engine.OptionCalls[0].Value != int64(passes) {
			t.Errorf("SetProgressiveDC(%d): got value %d", passes, engine.OptionCalls[0].Value)
		}
	}

	for _, passes := range []int{-2, 3} {
		if _, err := configure(t, func(fs *FrameSettings) error {
			return fs.SetProgressiveDC(passes)
		}); !errors.Is(err, ErrAPIUsage) {
			t.Errorf("SetProgressiveDC(%d): expected ErrAPIUsage, got %v", passes, err)
		}
	}
}

func TestSetDecodingSpeed_Range(t *testing.T) {
	for _, tier := range []int{0, 4} {
		if _, err := configure(t, func(fs *FrameSettings) error {
			return fs.SetDecodingSpeed(tier)
		}); err != nil {
			t.Errorf("SetDecodingSpeed(%d) failed: %v", tier, err)
		}
	}
	for _, tier := range []int{-1, 5} {
		if _, err := configure(t, func(fs *FrameSettings) error {
			return fs.SetDecodingSpeed(tier)
		}); !errors.Is(err, ErrAPIUsage) {
			t.Errorf("SetDecodingSpeed(%d): expected ErrAPIUsage, got %v", tier, err)
		}
	}
}

func TestSetFrameHeader(t *testing.T) {
	header := ports.FrameHeader{Duration: 100, Name: "cover", IsLast: true}
	engine, err := configure(t, func(fs *FrameSettings) error {
		return fs.SetFrameHeader(header)
	})
	if err != nil {
		t.Fatalf("SetFrameHeader failed: %v", err)
	}
	if len(engine.FrameHeaderCalls) != 1 || engine.FrameHeaderCalls[0] != header {
		t.Errorf("unexpected frame header calls: %+v", engine.FrameHeaderCalls)
	}
}

func TestColorEncodingConstructors(t *testing.T) {
	srgb := SRGB(ports.IntentPerceptual)
	if srgb.Space != ports.ColorSpaceRGB || srgb.Transfer != ports.TransferSRGB {
		t.Errorf("unexpected SRGB encoding: %+v", srgb)
	}

	linear := SRGBLinear(ports.IntentRelative)
	if linear.Transfer != ports.TransferLinear || linear.Intent != ports.IntentRelative {
		t.Errorf("unexpected SRGBLinear encoding: %+v", linear)
	}

	gray := GraySRGB(ports.IntentRelative)
	if gray.Space != ports.ColorSpaceGray || gray.Transfer != ports.TransferSRGB {
		t.Errorf("unexpected GraySRGB encoding: %+v", gray)
	}
}
