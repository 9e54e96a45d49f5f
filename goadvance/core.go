package goadvance

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/pxlsplat/goadvance/goadvance/audio"
	"github.com/pxlsplat/goadvance/goadvance/cpu"
	"github.com/pxlsplat/goadvance/goadvance/debug"
	"github.com/pxlsplat/goadvance/goadvance/input"
	"github.com/pxlsplat/goadvance/goadvance/input/action"
	"github.com/pxlsplat/goadvance/goadvance/input/event"
	"github.com/pxlsplat/goadvance/goadvance/memory"
	"github.com/pxlsplat/goadvance/goadvance/timing"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

// DebuggerState represents the current debugger mode
type DebuggerState int

const (
	DebuggerRunning   DebuggerState = iota // Normal execution
	DebuggerPaused                         // Paused, waiting for commands
	DebuggerStep                           // Execute one dot then pause
	DebuggerStepFrame                      // Execute one frame then pause
)

// AGB is the board: it owns the memory unit, the video core and the CPU/APU
// collaborators, and ticks the CPU and the video core in lockstep one dot at
// a time (the silent APU is not ticked). It is the
// single driver — no goroutines touch the components, so the register block
// and framebuffer see accesses strictly in program order.
type AGB struct {
	cpu *cpu.CPU
	gpu *video.GPU
	apu *audio.APU
	mem *memory.MMU

	input   *input.Manager
	limiter timing.Limiter

	// Debugger state
	debuggerState  DebuggerState
	debuggerMutex  sync.RWMutex
	stepRequested  bool
	frameRequested bool
	dotCount       uint64
	frameCount     uint64
}

func (e *AGB) init(mem *memory.MMU) {
	e.mem = mem
	e.cpu = cpu.New(mem)
	e.gpu = video.New(mem)
	e.apu = audio.New()
	e.limiter = timing.NewNoOpLimiter()

	e.input = input.NewManager(mem)
	e.input.On(action.EmulatorPauseToggle, event.Press, e.togglePause)
	e.input.On(action.EmulatorStepFrame, event.Press, e.DebuggerStepFrame)
	e.input.On(action.EmulatorStep, event.Press, e.DebuggerStepDot)
	e.bindAudioActions()
}

// New creates a new board with an empty cartridge slot.
func New() *AGB {
	e := &AGB{}
	e.init(memory.New())
	return e
}

// NewWithFile creates a new board and loads the ROM file specified into it.
func NewWithFile(path string) (*AGB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	cart := memory.NewCartridgeWithData(data)
	slog.Debug("Loaded ROM data", "size", len(data), "title", cart.Title(), "code", cart.GameCode())
	if !cart.VerifyHeaderChecksum() {
		slog.Warn("ROM header checksum mismatch", "title", cart.Title())
	}

	e := &AGB{}
	e.init(memory.NewWithCartridge(cart))
	return e, nil
}

// Step advances the CPU and the video core by one dot (the silent APU has no
// per-dot work), then delivers any enabled
// pending interrupt to the CPU. A video error (an unsupported mode in
// DISPCNT) aborts the step and surfaces to the caller.
func (e *AGB) Step() error {
	e.cpu.Tick()
	if err := e.gpu.Step(); err != nil {
		slog.Error("Video core fault", "error", err, "line", e.gpu.CurrentLine())
		return err
	}
	e.dotCount++

	// The video core only requests into IF; whether anything is serviced
	// is gated here by IME and the IE mask, from the CPU's side.
	io := &e.mem.IO
	if io.IME&1 != 0 {
		if pending := io.IE & io.IF; pending != 0 {
			e.cpu.RaiseIRQ()
			io.IF &^= pending
		}
	}

	return nil
}

// runFrame steps until VCOUNT wraps back to zero, i.e. one full frame.
func (e *AGB) runFrame() error {
	sawNonzero := false
	for {
		if err := e.Step(); err != nil {
			return err
		}
		if e.mem.IO.Vcount != 0 {
			sawNonzero = true
		} else if sawNonzero {
			e.frameCount++
			return nil
		}
	}
}

// RunUntilFrame advances emulation according to the debugger state: a full
// frame when running, nothing while paused, one dot or one frame for the
// step modes.
func (e *AGB) RunUntilFrame() error {
	e.debuggerMutex.RLock()
	state := e.debuggerState
	e.debuggerMutex.RUnlock()

	if state == DebuggerPaused {
		return nil
	}

	if state == DebuggerStep {
		e.debuggerMutex.Lock()
		requested := e.stepRequested
		e.stepRequested = false
		e.debuggerMutex.Unlock()

		if requested {
			if err := e.Step(); err != nil {
				return err
			}
			slog.Debug("Dot step executed", "dots", e.dotCount, "vcount", e.mem.IO.Vcount)
			e.SetDebuggerState(DebuggerPaused)
		}
		return nil
	}

	if state == DebuggerStepFrame {
		e.debuggerMutex.Lock()
		requested := e.frameRequested
		e.frameRequested = false
		e.debuggerMutex.Unlock()

		if requested {
			if err := e.runFrame(); err != nil {
				return err
			}
			slog.Debug("Frame step completed", "frame", e.frameCount, "dots", e.dotCount)
			e.SetDebuggerState(DebuggerPaused)
		}
		return nil
	}

	// Normal execution (DebuggerRunning)
	if err := e.runFrame(); err != nil {
		return err
	}
	if e.frameCount%60 == 0 {
		slog.Debug("Frame completed", "frame", e.frameCount, "pc", fmt.Sprintf("0x%08X", e.cpu.GetPC()))
	}
	e.limiter.WaitForNextFrame()
	return nil
}

// Reset returns the board to power-on state, keeping the loaded cartridge.
func (e *AGB) Reset() {
	e.mem.Reset()
	e.gpu.Reset()
	e.cpu.Reset()
	e.dotCount = 0
	e.frameCount = 0
	slog.Info("Board reset")
}

func (e *AGB) GetCurrentFrame() *video.FrameBuffer {
	return e.gpu.GetFrameBuffer()
}

// HandleAction routes an input action: pad controls to the keypad register,
// everything else to the registered emulator callbacks.
func (e *AGB) HandleAction(act action.Action, pressed bool) {
	evt := event.Release
	if pressed {
		evt = event.Press
	}
	e.input.Trigger(act, evt)
}

// SetFrameLimiter installs the pacing strategy used after each frame.
func (e *AGB) SetFrameLimiter(limiter timing.Limiter) {
	e.limiter = limiter
}

// ResetFrameTiming resets the limiter clock, useful after a pause.
func (e *AGB) ResetFrameTiming() {
	e.limiter.Reset()
}

// ExtractDebugData gathers a complete read-only snapshot for debug displays.
func (e *AGB) ExtractDebugData() *debug.CompleteDebugData {
	io := &e.mem.IO

	return &debug.CompleteDebugData{
		Video: &debug.VideoRegisterState{
			Dispcnt:  io.Dispcnt,
			Dispstat: io.Dispstat,
			Vcount:   io.Vcount,
			BGCnt:    io.BGCnt,
		},
		CPU: &debug.CPUState{
			PC:     e.cpu.GetPC(),
			Cycles: e.cpu.Cycles(),
			IRQs:   e.cpu.IRQCount(),
		},
		Background:      debug.ExtractBackgroundData(e.mem),
		Palettes:        debug.ExtractPaletteData(e.mem),
		DebuggerState:   debug.DebuggerState(e.GetDebuggerState()),
		InterruptEnable: io.IE,
		InterruptFlags:  io.IF,
		FrameCount:      e.frameCount,
	}
}

func (e *AGB) togglePause() {
	if e.GetDebuggerState() == DebuggerPaused {
		e.DebuggerResume()
	} else {
		e.DebuggerPause()
	}
}

func (e *AGB) bindAudioActions() {
	toggles := []action.Action{
		action.AudioToggleChannel1, action.AudioToggleChannel2,
		action.AudioToggleChannel3, action.AudioToggleChannel4,
	}
	solos := []action.Action{
		action.AudioSoloChannel1, action.AudioSoloChannel2,
		action.AudioSoloChannel3, action.AudioSoloChannel4,
	}
	for i, act := range toggles {
		channel := i + 1
		e.input.On(act, event.Press, func() { e.apu.ToggleChannel(channel) })
	}
	for i, act := range solos {
		channel := i + 1
		e.input.On(act, event.Press, func() { e.apu.SoloChannel(channel) })
	}
	e.input.On(action.AudioShowStatus, event.Press, func() {
		ch1, ch2, ch3, ch4 := e.apu.GetChannelStatus()
		slog.Info("Audio channels", "ch1", ch1, "ch2", ch2, "ch3", ch3, "ch4", ch4)
	})
}

// Debugger control methods
func (e *AGB) SetDebuggerState(state DebuggerState) {
	e.debuggerMutex.Lock()
	defer e.debuggerMutex.Unlock()
	e.debuggerState = state
	slog.Debug("Debugger state changed", "state", state)
}

func (e *AGB) GetDebuggerState() DebuggerState {
	e.debuggerMutex.RLock()
	defer e.debuggerMutex.RUnlock()
	return e.debuggerState
}

func (e *AGB) DebuggerPause() {
	e.SetDebuggerState(DebuggerPaused)
	slog.Info("Emulator paused")
}

func (e *AGB) DebuggerResume() {
	e.SetDebuggerState(DebuggerRunning)
	slog.Info("Emulator resumed")
}

// DebuggerStepDot requests a single dot of execution.
func (e *AGB) DebuggerStepDot() {
	e.debuggerMutex.Lock()
	defer e.debuggerMutex.Unlock()
	e.stepRequested = true
	e.debuggerState = DebuggerStep
	slog.Info("Dot step requested")
}

func (e *AGB) DebuggerStepFrame() {
	e.debuggerMutex.Lock()
	defer e.debuggerMutex.Unlock()
	e.frameRequested = true
	e.debuggerState = DebuggerStepFrame
	slog.Info("Frame step requested")
}

func (e *AGB) GetFrameCount() uint64 {
	return e.frameCount
}

func (e *AGB) GetDotCount() uint64 {
	return e.dotCount
}

func (e *AGB) GetMMU() *memory.MMU {
	return e.mem
}

func (e *AGB) GetAPU() *audio.APU {
	return e.apu
}

func (e *AGB) GetCPU() *cpu.CPU {
	return e.cpu
}
