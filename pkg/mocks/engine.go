// Package mocks provides mock implementations of the ports for testing.
package mocks

import (
	"github.com/user/jxlpack/pkg/ports"
)

// OptionCall records one SetOption invocation.
type OptionCall struct {
	Ref    ports.SettingsRef
	Option ports.FrameOption
	Value  int64
}

// ImageFrameCall records one AddImageFrame invocation.
type ImageFrameCall struct {
	Ref    ports.SettingsRef
	Format ports.PixelFormat
	Pixels []byte
}

// Engine is a mock implementation of ports.Engine. With no Func fields set it
// behaves like a well-behaved engine: settings allocation hands out
// sequential refs, every operation succeeds and ProcessOutput immediately
// reports completion.
type Engine struct {
	SetParallelRunnerFunc func(runner ports.ParallelRunner) ports.EngineStatus
	SetBasicInfoFunc      func(info ports.BasicInfo) ports.EngineStatus
	SetColorEncodingFunc  func(enc ports.ColorEncoding) ports.EngineStatus
	SetICCProfileFunc     func(icc []byte) ports.EngineStatus
	StoreJPEGMetadataFunc func(store bool) ports.EngineStatus
	CreateSettingsFunc    func(source ports.SettingsRef) ports.SettingsRef
	SetOptionFunc         func(settings ports.SettingsRef, opt ports.FrameOption, value int64) ports.EngineStatus
	SetFloatOptionFunc    func(settings ports.SettingsRef, opt ports.FrameOption, value float32) ports.EngineStatus
	SetFrameLosslessFunc  func(settings ports.SettingsRef, lossless bool) ports.EngineStatus
	SetFrameDistanceFunc  func(settings ports.SettingsRef, distance float32) ports.EngineStatus
	SetFrameHeaderFunc    func(settings ports.SettingsRef, header ports.FrameHeader) ports.EngineStatus
	AddImageFrameFunc     func(settings ports.SettingsRef, format ports.PixelFormat, pixels []byte) ports.EngineStatus
	AddJPEGFrameFunc      func(settings ports.SettingsRef, jpeg []byte) ports.EngineStatus
	ProcessOutputFunc     func(buf []byte) (int, ports.EngineStatus)
	LastErrorFunc         func() ports.EngineErrorCode

	// Recorded calls.
	Runner            ports.ParallelRunner
	BasicInfos        []ports.BasicInfo
	ColorEncodings    []ports.ColorEncoding
	ICCProfiles       [][]byte
	StoreJPEGCalls    []bool
	CreateSourceRefs  []ports.SettingsRef
	OptionCalls       []OptionCall
	LosslessCalls     []ports.SettingsRef
	DistanceCalls     []float32
	FrameHeaderCalls  []ports.FrameHeader
	ImageFrameCalls   []ImageFrameCall
	JPEGFrameCalls    [][]byte
	CloseFramesCalled bool
	CloseInputCalled  bool
	Destroyed         bool

	// FailWith is the error code a failing call (a scripted Func returning
	// EngineError) leaves in the sticky last-error state.
	FailWith ports.EngineErrorCode

	nextRef   ports.SettingsRef
	lastError ports.EngineErrorCode
}

// status updates the sticky last-error state the way the engine does: a
// failing call (a scripted Func returning EngineError) records FailWith (or a
// generic code) and later successful calls do not clear it.
func (m *Engine) status(st ports.EngineStatus) ports.EngineStatus {
	if st == ports.EngineError {
		m.lastError = m.FailWith
		if m.lastError == ports.EngineErrOK {
			m.lastError = ports.EngineErrGeneric
		}
	}
	return st
}

func (m *Engine) SetParallelRunner(runner ports.ParallelRunner) ports.EngineStatus {
	m.Runner = runner
	if m.SetParallelRunnerFunc != nil {
		return m.status(m.SetParallelRunnerFunc(runner))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) SetBasicInfo(info ports.BasicInfo) ports.EngineStatus {
	m.BasicInfos = append(m.BasicInfos, info)
	if m.SetBasicInfoFunc != nil {
		return m.status(m.SetBasicInfoFunc(info))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) SetColorEncoding(enc ports.ColorEncoding) ports.EngineStatus {
	m.ColorEncodings = append(m.ColorEncodings, enc)
	if m.SetColorEncodingFunc != nil {
		return m.status(m.SetColorEncodingFunc(enc))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) SetICCProfile(icc []byte) ports.EngineStatus {
	m.ICCProfiles = append(m.ICCProfiles, icc)
	if m.SetICCProfileFunc != nil {
		return m.status(m.SetICCProfileFunc(icc))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) StoreJPEGMetadata(store bool) ports.EngineStatus {
	m.StoreJPEGCalls = append(m.StoreJPEGCalls, store)
	if m.StoreJPEGMetadataFunc != nil {
		return m.status(m.StoreJPEGMetadataFunc(store))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) CreateSettings(source ports.SettingsRef) ports.SettingsRef {
	m.CreateSourceRefs = append(m.CreateSourceRefs, source)
	if m.CreateSettingsFunc != nil {
		return m.CreateSettingsFunc(source)
	}
	m.nextRef++
	return m.nextRef
}

func (m *Engine) SetOption(settings ports.SettingsRef, opt ports.FrameOption, value int64) ports.EngineStatus {
	m.OptionCalls = append(m.OptionCalls, OptionCall{Ref: settings, Option: opt, Value: value})
	if m.SetOptionFunc != nil {
		return m.status(m.SetOptionFunc(settings, opt, value))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) SetFloatOption(settings ports.SettingsRef, opt ports.FrameOption, value float32) ports.EngineStatus {
	if m.SetFloatOptionFunc != nil {
		return m.status(m.SetFloatOptionFunc(settings, opt, value))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) SetFrameLossless(settings ports.SettingsRef, lossless bool) ports.EngineStatus {
	if lossless {
		m.LosslessCalls = append(m.LosslessCalls, settings)
	}
	if m.SetFrameLosslessFunc != nil {
		return m.status(m.SetFrameLosslessFunc(settings, lossless))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) SetFrameDistance(settings ports.SettingsRef, distance float32) ports.EngineStatus {
	m.DistanceCalls = append(m.DistanceCalls, distance)
	if m.SetFrameDistanceFunc != nil {
		return m.status(m.SetFrameDistanceFunc(settings, distance))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) SetFrameHeader(settings ports.SettingsRef, header ports.FrameHeader) ports.EngineStatus {
	m.FrameHeaderCalls = append(m.FrameHeaderCalls, header)
	if m.SetFrameHeaderFunc != nil {
		return m.status(m.SetFrameHeaderFunc(settings, header))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) AddImageFrame(settings ports.SettingsRef, format ports.PixelFormat, pixels []byte) ports.EngineStatus {
	m.ImageFrameCalls = append(m.ImageFrameCalls, ImageFrameCall{Ref: settings, Format: format, Pixels: pixels})
	if m.AddImageFrameFunc != nil {
		return m.status(m.AddImageFrameFunc(settings, format, pixels))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) AddJPEGFrame(settings ports.SettingsRef, jpeg []byte) ports.EngineStatus {
	m.JPEGFrameCalls = append(m.JPEGFrameCalls, jpeg)
	if m.AddJPEGFrameFunc != nil {
		return m.status(m.AddJPEGFrameFunc(settings, jpeg))
	}
	return m.status(ports.EngineSuccess)
}

func (m *Engine) CloseFrames() {
	m.CloseFramesCalled = true
}

func (m *Engine) CloseInput() {
	m.CloseInputCalled = true
}

func (m *Engine) ProcessOutput(buf []byte) (int, ports.EngineStatus) {
	if m.ProcessOutputFunc != nil {
		n, st := m.ProcessOutputFunc(buf)
		return n, m.status(st)
	}
	return 0, m.status(ports.EngineSuccess)
}

func (m *Engine) LastError() ports.EngineErrorCode {
	if m.LastErrorFunc != nil {
		return m.LastErrorFunc()
	}
	return m.lastError
}

func (m *Engine) Destroy() {
	m.Destroyed = true
}

// Ensure Engine implements ports.Engine
var _ ports.Engine = (*Engine)(nil)
