package encoder

import (
	"sync/atomic"

	"github.com/user/jxlpack/pkg/ports"
)

// MinPullBuffer is the smallest output buffer the engine can make forward
// progress with. PullOutput returns immediately for anything smaller.
const MinPullBuffer = 32

// CloseState tracks the session's one-way input shutdown.
type CloseState int

const (
	// Open accepts frame submissions.
	Open CloseState = iota
	// FramesClosed accepts no further frames but input metadata may follow.
	FramesClosed
	// InputClosed accepts nothing; only output remains.
	InputClosed
)

// sessionSeq issues process-wide session identities so a SettingsKey can
// detect resolution against the wrong session.
var sessionSeq atomic.Uint64

// Session owns one engine handle and the frame-settings objects derived from
// it. The engine frees every settings object when the session is destroyed,
// so settings are only ever reachable through keys resolved against the
// owning session. A Session must not be shared across goroutines; when
// encoding many inputs concurrently, each input gets its own Session.
type Session struct {
	engine    ports.Engine
	id        uint64
	settings  []ports.SettingsRef
	state     CloseState
	destroyed bool
}

// NewSession creates a session around engine and installs runner as its
// work-distribution callback before any other engine call.
func NewSession(engine ports.Engine, runner ports.ParallelRunner) (*Session, error) {
	if engine == nil {
		return nil, usageErr("new session", "nil engine")
	}
	s := &Session{
		engine: engine,
		id:     sessionSeq.Add(1),
	}
	st := engine.SetParallelRunner(runner)
	if err := s.check("set parallel runner", st); err != nil {
		engine.Destroy()
		return nil, err
	}
	return s, nil
}

// ID identifies this session; keys carry it to detect ownership mismatches.
func (s *Session) ID() uint64 { return s.id }

// State reports the session's close state.
func (s *Session) State() CloseState { return s.state }

// SetBasicInfo declares the global image properties. Must be called before
// any frame is submitted; the engine rejects out-of-order calls.
func (s *Session) SetBasicInfo(info ports.BasicInfo) error {
	return s.check("set basic info", s.engine.SetBasicInfo(info))
}

// SetColorEncoding declares a named color description.
func (s *Session) SetColorEncoding(enc ports.ColorEncoding) error {
	return s.check("set color encoding", s.engine.SetColorEncoding(enc))
}

// SetICCProfile declares the color description from raw ICC profile bytes.
func (s *Session) SetICCProfile(icc []byte) error {
	return s.check("set icc profile", s.engine.SetICCProfile(icc))
}

// StoreJPEGMetadata controls whether the output carries JPEG reconstruction
// metadata for the transcode path.
func (s *Session) StoreJPEGMetadata(store bool) error {
	return s.check("store jpeg metadata", s.engine.StoreJPEGMetadata(store))
}

// CreateSettings allocates a frame-settings object with engine defaults,
// hands it to configure, and returns its key. When configure fails the whole
// operation fails and no key is returned.
func (s *Session) CreateSettings(configure func(*FrameSettings) error) (SettingsKey, error) {
	return s.newSettings("create settings", 0, configure)
}

// DeriveSettings allocates a frame-settings object that inherits the full
// configuration of the object source refers to, then applies configure as
// incremental overrides.
func (s *Session) DeriveSettings(source SettingsKey, configure func(*FrameSettings) error) (SettingsKey, error) {
	ref, err := s.resolve("derive settings", source)
	if err != nil {
		return SettingsKey{}, err
	}
	return s.newSettings("derive settings", ref, configure)
}

// UpdateSettings applies configure to an existing settings object. Settings
// must be final before a frame referencing them is submitted.
func (s *Session) UpdateSettings(key SettingsKey, configure func(*FrameSettings) error) error {
	ref, err := s.resolve("update settings", key)
	if err != nil {
		return err
	}
	return configure(&FrameSettings{session: s, ref: ref})
}

func (s *Session) newSettings(op string, source ports.SettingsRef, configure func(*FrameSettings) error) (SettingsKey, error) {
	ref := s.engine.CreateSettings(source)
	if ref == 0 {
		return SettingsKey{}, wrapErr(op, ErrOutOfMemory)
	}
	s.settings = append(s.settings, ref)
	key := SettingsKey{session: s.id, index: len(s.settings) - 1}
	if configure != nil {
		if err := configure(&FrameSettings{session: s, ref: ref}); err != nil {
			return SettingsKey{}, err
		}
	}
	return key, nil
}

// resolve validates key ownership and returns the live handle. Index lookup
// is O(1); indices never change for the lifetime of the session.
func (s *Session) resolve(op string, key SettingsKey) (ports.SettingsRef, error) {
	if key.session != s.id {
		return 0, usageErr(op, "settings key belongs to another session")
	}
	if key.index < 0 || key.index >= len(s.settings) {
		return 0, usageErr(op, "settings key out of range")
	}
	return s.settings[key.index], nil
}

// BeginFrame resolves key and yields a single-use frame submission bound to
// it. Frames may only begin while the session is Open.
func (s *Session) BeginFrame(key SettingsKey) (*FrameSubmission, error) {
	if s.state != Open {
		return nil, usageErr("begin frame", "frames already closed")
	}
	ref, err := s.resolve("begin frame", key)
	if err != nil {
		return nil, err
	}
	return &FrameSubmission{session: s, ref: ref}, nil
}

// CloseFrames declares that no further frames will be submitted. Idempotent;
// a no-op once input is fully closed.
func (s *Session) CloseFrames() {
	if s.state != Open {
		return
	}
	s.engine.CloseFrames()
	s.state = FramesClosed
}

// CloseInput declares the input complete, implicitly closing frames. After
// this only output pulling remains. Idempotent.
func (s *Session) CloseInput() {
	if s.state == InputClosed {
		return
	}
	s.engine.CloseInput()
	s.state = InputClosed
}

// OutputStatus reports the outcome of one PullOutput call.
type OutputStatus struct {
	// BytesWritten is the number of bytes written into the caller's buffer.
	BytesWritten int
	// NeedMoreOutput is true while the engine has (or may have) more output;
	// the caller must call PullOutput again with a drained buffer.
	NeedMoreOutput bool
}

// PullOutput drains pending engine output into buf. Each call makes bounded
// progress and returns: it loops until the engine reports completion, fails,
// or fewer than MinPullBuffer bytes of capacity remain. A buffer smaller than
// MinPullBuffer is reported as zero bytes written with more output needed,
// without touching the engine.
func (s *Session) PullOutput(buf []byte) (OutputStatus, error) {
	if len(buf) < MinPullBuffer {
		return OutputStatus{BytesWritten: 0, NeedMoreOutput: true}, nil
	}

	written := 0
	needMore := true
	for len(buf)-written >= MinPullBuffer {
		n, status := s.engine.ProcessOutput(buf[written:])
		written += n
		if status == ports.EngineSuccess {
			needMore = false
			break
		}
		if status == ports.EngineError {
			if err := mapEngineCode(s.engine.LastError()); err != nil {
				return OutputStatus{}, wrapErr("process output", err)
			}
			// The engine reported failure without an error code.
			return OutputStatus{}, wrapErr("process output", ErrBadInput)
		}
	}

	return OutputStatus{BytesWritten: written, NeedMoreOutput: needMore}, nil
}

// Close destroys the engine handle, invalidating every settings object the
// session created. Safe to call more than once.
func (s *Session) Close() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	// Frees all frame settings as well.
	s.engine.Destroy()
}
