package video

import (
	"fmt"

	"github.com/pxlsplat/goadvance/goadvance/bit"
)

// Display control register bits consumed by the compositor.
//
//	Bits 0-2:  video mode
//	Bit  4:    bitmap page selector (modes 4 and 5)
//	Bit  7:    forced blank
//	Bits 8-11: BG0..BG3 enable
const (
	dispcntPageFlag        = 4
	dispcntForcedBlankFlag = 7
	dispcntBGEnableBase    = 8
)

const bitmapPageOffset = 0xA000

// renderScanline composites one display line into the framebuffer row.
//
// In text mode the enabled backgrounds draw back to front: priority 3 first,
// and within a priority tier BG3 through BG0, so that lower priority values
// and lower BG numbers end up in front. The first layer drawn forms the
// opaque backdrop (its palette-0 pixels keep their color); every later layer
// skips its transparent pixels.
//
// Bitmap modes render on BG2 only. When BG2 is disabled the row keeps its
// previous contents; the framebuffer is never proactively cleared.
func (g *GPU) renderScanline(line int) error {
	if line < 0 || line >= FramebufferHeight {
		return InternalInvariantError{Detail: fmt.Sprintf("scanline %d out of range", line)}
	}

	io := &g.mmu.IO
	row := g.framebuffer.Row(uint(line))

	if bit.IsSet16(dispcntForcedBlankFlag, io.Dispcnt) {
		for i := range row {
			row[i] = ForcedBlankColor
		}
		return nil
	}

	mode := int(io.Dispcnt & 7)
	switch mode {
	case 0:
		g.renderTextBackgrounds(line, row)
	case 3:
		g.renderBitmap16(line, row)
	case 4:
		g.renderBitmap256(line, row)
	case 5:
		g.renderBitmapSmall(line, row)
	default:
		return InvalidVideoModeError{Mode: mode}
	}

	return nil
}

func (g *GPU) bgEnabled(n int) bool {
	return bit.IsSet16(uint8(dispcntBGEnableBase+n), g.mmu.IO.Dispcnt)
}

// renderTextBackgrounds composites mode 0: up to four tiled layers.
func (g *GPU) renderTextBackgrounds(line int, row []uint32) {
	io := &g.mmu.IO
	vram, pal := g.mmu.VRAM(), g.mmu.PAL()

	backdrop := true
	for priority := 3; priority >= 0; priority-- {
		for n := 3; n >= 0; n-- {
			if !g.bgEnabled(n) || int(io.BGCnt[n]&3) != priority {
				continue
			}

			renderTextLine(vram, pal, io.BGCnt[n], line,
				int(io.BGHofs[n]), int(io.BGVofs[n]),
				!backdrop, &g.lineFull, g.lineVisible[:])
			backdrop = false

			for i, px := range g.lineVisible {
				if px != Transparent {
					row[i] = px
				}
			}
		}
	}
}

// renderBitmap16 composites mode 3: a full-screen direct-color bitmap.
func (g *GPU) renderBitmap16(line int, row []uint32) {
	if !g.bgEnabled(2) {
		return
	}

	vram := g.mmu.VRAM()
	offset := uint32(line) * FramebufferWidth * 2
	for x := range row {
		row[x] = DecodeRGB15(bit.Combine(vram[offset+1], vram[offset]))
		offset += 2
	}
}

// renderBitmap256 composites mode 4: a full-screen paletted bitmap with two
// selectable pages.
func (g *GPU) renderBitmap256(line int, row []uint32) {
	if !g.bgEnabled(2) {
		return
	}

	vram, pal := g.mmu.VRAM(), g.mmu.PAL()
	page := g.bitmapPage()
	offset := page + uint32(line)*FramebufferWidth
	for x := range row {
		row[x] = ReadPaletteEntry(pal, BGPaletteBase, int(vram[offset+uint32(x)]))
	}
}

// Mode 5 bitmap dimensions.
const (
	bitmapSmallWidth  = 160
	bitmapSmallHeight = 128
)

// renderBitmapSmall composites mode 5: a 160x128 direct-color bitmap with two
// pages. The area outside the bitmap is filled with palette entry 0.
func (g *GPU) renderBitmapSmall(line int, row []uint32) {
	if !g.bgEnabled(2) {
		return
	}

	vram, pal := g.mmu.VRAM(), g.mmu.PAL()
	fill := ReadPaletteEntry(pal, BGPaletteBase, 0)

	if line >= bitmapSmallHeight {
		for x := range row {
			row[x] = fill
		}
		return
	}

	offset := g.bitmapPage() + uint32(line)*bitmapSmallWidth*2
	for x := range row {
		if x < bitmapSmallWidth {
			row[x] = DecodeRGB15(bit.Combine(vram[offset+1], vram[offset]))
			offset += 2
		} else {
			row[x] = fill
		}
	}
}

func (g *GPU) bitmapPage() uint32 {
	if bit.IsSet16(dispcntPageFlag, g.mmu.IO.Dispcnt) {
		return bitmapPageOffset
	}
	return 0
}
