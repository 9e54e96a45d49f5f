package goadvance

import (
	"github.com/pxlsplat/goadvance/goadvance/debug"
	"github.com/pxlsplat/goadvance/goadvance/input/action"
	"github.com/pxlsplat/goadvance/goadvance/timing"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

// Emulator is the interface backends drive a board through.
type Emulator interface {
	RunUntilFrame() error
	GetCurrentFrame() *video.FrameBuffer
	HandleAction(act action.Action, pressed bool)
	ExtractDebugData() *debug.CompleteDebugData
	SetFrameLimiter(limiter timing.Limiter)
	ResetFrameTiming()
}

var _ Emulator = (*AGB)(nil)
