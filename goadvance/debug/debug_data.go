package debug

// VideoRegisterState is the display register snapshot debug panels show.
type VideoRegisterState struct {
	Dispcnt  uint16
	Dispstat uint16
	Vcount   uint16
	BGCnt    [4]uint16
}

// CPUState carries the collaborator CPU's observable state.
type CPUState struct {
	PC     uint32
	Cycles uint64
	IRQs   uint64
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStep
	DebuggerStepFrame
)

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	Video           *VideoRegisterState
	CPU             *CPUState
	VRAM            *VRAMData
	Background      *BackgroundVisualizer
	Palettes        *PaletteVisualizer
	DebuggerState   DebuggerState
	InterruptEnable uint16
	InterruptFlags  uint16
	FrameCount      uint64
}
