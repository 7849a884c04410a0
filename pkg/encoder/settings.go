package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/jxlpack/pkg/ports"
)

// losslessDistance is the threshold below which a requested distance means
// lossless encoding.
const losslessDistance = 0.01

// SettingsKey is a weak reference to one frame-settings object: the identity
// of the owning session plus an index into its settings sequence. Keys are
// copyable and comparable, carry no ownership, and are only valid against the
// session that produced them.
type SettingsKey struct {
	session uint64
	index   int
}

// ForSession reports whether the key was produced by s.
func (k SettingsKey) ForSession(s *Session) bool {
	return k.session == s.id
}

// Toggle is a tri-state option value. The engine itself defines an "unset"
// state distinct from on and off, encoded out-of-band as -1.
type Toggle int

const (
	ToggleDefault Toggle = -1
	ToggleOff     Toggle = 0
	ToggleOn      Toggle = 1
)

func (t Toggle) valid() bool {
	return t == ToggleDefault || t == ToggleOff || t == ToggleOn
}

// Effort is the encode effort tier, 1 (fastest) to 11 (slowest), with the
// engine's preset names.
type Effort int

const (
	Lightning     Effort = 1
	Thunder       Effort = 2
	Falcon        Effort = 3
	Cheetah       Effort = 4
	Hare          Effort = 5
	Wombat        Effort = 6
	Squirrel      Effort = 7
	Kitten        Effort = 8
	Tortoise      Effort = 9
	Glacier       Effort = 10
	TectonicPlate Effort = 11
)

var effortNames = map[Effort]string{
	Lightning:     "lightning",
	Thunder:       "thunder",
	Falcon:        "falcon",
	Cheetah:       "cheetah",
	Hare:          "hare",
	Wombat:        "wombat",
	Squirrel:      "squirrel",
	Kitten:        "kitten",
	Tortoise:      "tortoise",
	Glacier:       "glacier",
	TectonicPlate: "tectonic_plate",
}

// String returns the preset name, or the numeric value if out of range.
func (e Effort) String() string {
	if name, ok := effortNames[e]; ok {
		return name
	}
	return strconv.Itoa(int(e))
}

// Valid reports whether e is within the engine's 1 to 11 range.
func (e Effort) Valid() bool {
	return e >= Lightning && e <= TectonicPlate
}

// ParseEffort parses an effort tier from a preset name or a number.
func ParseEffort(s string) (Effort, error) {
	if n, err := strconv.Atoi(s); err == nil {
		e := Effort(n)
		if !e.Valid() {
			return 0, usageErr("parse effort", fmt.Sprintf("%d outside 1..11", n))
		}
		return e, nil
	}
	want := strings.ToLower(strings.TrimSpace(s))
	for e, name := range effortNames {
		if name == want {
			return e, nil
		}
	}
	return 0, usageErr("parse effort", fmt.Sprintf("unknown preset %q", s))
}

// FrameSettings is a resolved, mutable view of one settings object. It is
// only valid during the configuration callback that received it; hold the
// SettingsKey instead of retaining this value.
type FrameSettings struct {
	session *Session
	ref     ports.SettingsRef
}

func (f *FrameSettings) setOption(op string, opt ports.FrameOption, value int64) error {
	return f.session.check(op, f.session.engine.SetOption(f.ref, opt, value))
}

// SetEffort sets the effort tier.
func (f *FrameSettings) SetEffort(e Effort) error {
	if !e.Valid() {
		return usageErr("set effort", fmt.Sprintf("%d outside 1..11", int(e)))
	}
	return f.setOption("set effort", ports.OptionEffort, int64(e))
}

// SetDistance sets the quality knob. Any distance below 0.01 engages the
// engine's dedicated lossless switch instead of its distance setting; there
// is no way to undo lossless through a later distance call.
func (f *FrameSettings) SetDistance(distance float32) error {
	if distance < losslessDistance {
		return f.session.check("set lossless", f.session.engine.SetFrameLossless(f.ref, true))
	}
	return f.session.check("set distance", f.session.engine.SetFrameDistance(f.ref, distance))
}

// SetModular forces modular mode on or off, or restores the engine default.
func (f *FrameSettings) SetModular(t Toggle) error {
	if !t.valid() {
		return usageErr("set modular", "value outside tri-state")
	}
	return f.setOption("set modular", ports.OptionModular, int64(t))
}

// SetModularProgressive toggles responsive (progressive) modular encoding.
func (f *FrameSettings) SetModularProgressive(t Toggle) error {
	if !t.valid() {
		return usageErr("set modular progressive", "value outside tri-state")
	}
	return f.setOption("set modular progressive", ports.OptionResponsive, int64(t))
}

// ProgressiveDCDefault leaves the low-frequency pass count to the engine.
const ProgressiveDCDefault = -1

// SetProgressiveDC sets the number of low-frequency progressive passes: 0, 1
// or 2, or ProgressiveDCDefault.
func (f *FrameSettings) SetProgressiveDC(passes int) error {
	if passes != ProgressiveDCDefault && (passes < 0 || passes > 2) {
		return usageErr("set progressive dc", fmt.Sprintf("%d outside 0..2", passes))
	}
	return f.setOption("set progressive dc", ports.OptionProgressiveDC, int64(passes))
}

// SetProgressiveAC toggles spectral progression of high-frequency data.
func (f *FrameSettings) SetProgressiveAC(t Toggle) error {
	if !t.valid() {
		return usageErr("set progressive ac", "value outside tri-state")
	}
	return f.setOption("set progressive ac", ports.OptionProgressiveAC, int64(t))
}

// SetQProgressiveAC toggles quantization progression of high-frequency data.
func (f *FrameSettings) SetQProgressiveAC(t Toggle) error {
	if !t.valid() {
		return usageErr("set qprogressive ac", "value outside tri-state")
	}
	return f.setOption("set qprogressive ac", ports.OptionQProgressiveAC, int64(t))
}

// SetDecodingSpeed trades quality for decode speed, tier 0 (best quality) to
// 4 (fastest decode).
func (f *FrameSettings) SetDecodingSpeed(tier int) error {
	if tier < 0 || tier > 4 {
		return usageErr("set decoding speed", fmt.Sprintf("%d outside 0..4", tier))
	}
	return f.setOption("set decoding speed", ports.OptionDecodingSpeed, int64(tier))
}

// SetFrameHeader sets the structural frame header.
func (f *FrameSettings) SetFrameHeader(header ports.FrameHeader) error {
	return f.session.check("set frame header", f.session.engine.SetFrameHeader(f.ref, header))
}

// SRGB returns the named sRGB color description for the given intent.
func SRGB(intent ports.RenderingIntent) ports.ColorEncoding {
	return ports.ColorEncoding{
		Space:    ports.ColorSpaceRGB,
		Transfer: ports.TransferSRGB,
		Intent:   intent,
	}
}

// SRGBLinear returns the linear-transfer sRGB color description.
func SRGBLinear(intent ports.RenderingIntent) ports.ColorEncoding {
	return ports.ColorEncoding{
		Space:    ports.ColorSpaceRGB,
		Transfer: ports.TransferLinear,
		Intent:   intent,
	}
}

// GraySRGB returns the grayscale sRGB-transfer color description.
func GraySRGB(intent ports.RenderingIntent) ports.ColorEncoding {
	return ports.ColorEncoding{
		Space:    ports.ColorSpaceGray,
		Transfer: ports.TransferSRGB,
		Intent:   intent,
	}
}
