package video

import (
	"fmt"
	"log/slog"

	"github.com/pxlsplat/goadvance/goadvance/addr"
	"github.com/pxlsplat/goadvance/goadvance/bit"
	"github.com/pxlsplat/goadvance/goadvance/memory"
)

// GPUState represents the PPU's current timing phase. The low two bits of
// DISPSTAT mirror it: 00 during the visible scanline, 10 in H-Blank, 01 in
// V-Blank.
type GPUState int

const (
	// scanlineState: the visible part of a line is being scanned out.
	scanlineState GPUState = iota
	// hblankState: horizontal retrace between visible lines.
	hblankState
	// vblankState: vertical retrace, lines 160-226 (VCOUNT resets to 0 on
	// reaching 227).
	vblankState
)

// Dot timing. A visible line is 960 ticks of drawing followed by 272 of
// H-Blank; a V-Blank line takes the same 1232 ticks undivided.
const (
	scanlineTicks   = 960
	hblankTicks     = 272
	vblankLineTicks = scanlineTicks + hblankTicks

	// VisibleLines is the number of drawn scanlines per frame.
	VisibleLines = 160
	// TotalLines counts visible plus V-Blank lines.
	TotalLines = 228

	// TicksPerFrame is the nominal dot count of one hardware frame. The
	// emulated frame runs one line shorter while the 227 wrap is kept.
	TicksPerFrame = TotalLines * vblankLineTicks
)

// DISPSTAT bit positions.
const (
	dispstatVBlankFlag      = 0
	dispstatHBlankFlag      = 1
	dispstatVCounterFlag    = 2
	dispstatVBlankIrqFlag   = 3
	dispstatHBlankIrqFlag   = 4
	dispstatVCounterIrqFlag = 5
)

// GPU is the video core: the scanline compositor plus the three-state timing
// machine that drives it. It is stepped one dot at a time by the board, in
// lockstep with the other components, and is the exclusive writer of its
// owned register fields (DISPSTAT bits 0-2, VCOUNT, IF bits 0-2) and the
// framebuffer for the duration of each Step call.
type GPU struct {
	mmu         *memory.MMU
	framebuffer *FrameBuffer

	state         GPUState
	ticks         int
	scanlineReady bool

	// Scanline scratch buffers, reused to avoid per-line allocation.
	lineFull    [maxVirtualWidth]uint32
	lineVisible [FramebufferWidth]uint32
}

func New(mmu *memory.MMU) *GPU {
	g := &GPU{
		mmu:         mmu,
		framebuffer: NewFrameBuffer(),
		state:       scanlineState,
	}

	slog.Debug("GPU initialized",
		"DISPCNT", fmt.Sprintf("0x%04X", mmu.IO.Dispcnt),
		"mode", mmu.IO.Dispcnt&7)

	return g
}

func (g *GPU) GetFrameBuffer() *FrameBuffer {
	return g.framebuffer
}

// ScanlineReady reports whether the step that just ran composited a line.
// It is true for exactly one step per visible line; the line is VCOUNT.
func (g *GPU) ScanlineReady() bool {
	return g.scanlineReady
}

// CurrentLine returns the scanline the timing machine is on.
func (g *GPU) CurrentLine() int {
	return int(g.mmu.IO.Vcount)
}

// Reset returns every field the video core owns to its power-on value:
// timing state, framebuffer, VCOUNT, the DISPSTAT status bits and the video
// bits of IF. Registers owned by the CPU side are left untouched.
func (g *GPU) Reset() {
	g.state = scanlineState
	g.ticks = 0
	g.scanlineReady = false
	g.framebuffer.Clear()

	io := &g.mmu.IO
	io.Vcount = 0
	io.Dispstat &^= 0x7
	io.IF &^= uint16(addr.VBlankInterrupt | addr.HBlankInterrupt | addr.VCounterInterrupt)
}

// Step advances the video core by one dot. All side effects of a phase
// transition land in the same step: the step that enters H-Blank also sets
// the status bit, requests the H-Blank interrupt, composites the line and
// raises the scanline-ready flag.
func (g *GPU) Step() error {
	io := &g.mmu.IO
	lyc := io.Dispstat >> 8
	vcounterIrqEnable := bit.IsSet16(dispstatVCounterIrqFlag, io.Dispstat)

	g.ticks++
	g.scanlineReady = false

	// V-Counter match status tracks the comparison continuously.
	io.Dispstat = bit.Reset16(dispstatVCounterFlag, io.Dispstat)
	if io.Vcount == lyc {
		io.Dispstat = bit.Set16(dispstatVCounterFlag, io.Dispstat)
	}

	switch g.state {
	case scanlineState:
		if g.ticks >= scanlineTicks {
			io.Dispstat = io.Dispstat&^3 | 1<<dispstatHBlankFlag
			g.state = hblankState

			if bit.IsSet16(dispstatHBlankIrqFlag, io.Dispstat) {
				g.mmu.RequestInterrupt(addr.HBlankInterrupt)
			}

			if err := g.renderScanline(int(io.Vcount)); err != nil {
				return err
			}
			g.scanlineReady = true
			g.ticks = 0
		}
	case hblankState:
		if g.ticks >= hblankTicks {
			io.Dispstat = bit.Reset16(dispstatHBlankFlag, io.Dispstat)
			io.Vcount++

			if io.Vcount == lyc && vcounterIrqEnable {
				g.mmu.RequestInterrupt(addr.VCounterInterrupt)
			}

			if io.Vcount == VisibleLines {
				io.Dispstat = io.Dispstat&^3 | 1<<dispstatVBlankFlag
				g.state = vblankState
			} else {
				g.state = scanlineState
			}
			g.ticks = 0
		}
	case vblankState:
		if g.ticks >= vblankLineTicks {
			io.Vcount++

			if io.Vcount == lyc && vcounterIrqEnable {
				g.mmu.RequestInterrupt(addr.VCounterInterrupt)
			}

			if io.Vcount == VisibleLines+1 && bit.IsSet16(dispstatVBlankIrqFlag, io.Dispstat) {
				g.mmu.RequestInterrupt(addr.VBlankInterrupt)
			}

			// Hardware is documented to wrap VCOUNT at line 228; 227 is
			// kept from observed behavior pending verification.
			if io.Vcount >= TotalLines-1 {
				g.state = scanlineState
				io.Dispstat &^= 3
				io.Vcount = 0
			}
			g.ticks = 0
		}
	}

	return nil
}
