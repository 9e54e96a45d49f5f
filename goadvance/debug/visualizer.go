package debug

import (
	"fmt"

	"github.com/pxlsplat/goadvance/goadvance/addr"
	"github.com/pxlsplat/goadvance/goadvance/bit"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

// BackgroundInfo is the decoded state of one text-mode background layer.
type BackgroundInfo struct {
	Enabled   bool
	Priority  int
	CharBlock int
	MapBlock  int
	Colors256 bool
	Width     int
	Height    int
	ScrollX   int
	ScrollY   int
}

// BackgroundVisualizer reports the layer setup the compositor will see on
// the next scanline.
type BackgroundVisualizer struct {
	Mode        int
	ForcedBlank bool
	BitmapPage  int
	Backgrounds [4]BackgroundInfo
}

// PaletteVisualizer exposes all 512 palette entries decoded to ARGB.
type PaletteVisualizer struct {
	BG  [256]uint32
	OBJ [256]uint32
}

// ExtractBackgroundData reads the display and background registers through
// the bus and decodes them for inspection.
func ExtractBackgroundData(reader MemoryReader) *BackgroundVisualizer {
	dispcnt := reader.Read16(addr.IOBase + addr.DISPCNT)

	vis := &BackgroundVisualizer{
		Mode:        int(dispcnt & 7),
		ForcedBlank: bit.IsSet16(7, dispcnt),
	}
	if bit.IsSet16(4, dispcnt) {
		vis.BitmapPage = 1
	}

	bgcntAddrs := []uint32{addr.BG0CNT, addr.BG1CNT, addr.BG2CNT, addr.BG3CNT}
	hofsAddrs := []uint32{addr.BG0HOFS, addr.BG1HOFS, addr.BG2HOFS, addr.BG3HOFS}
	vofsAddrs := []uint32{addr.BG0VOFS, addr.BG1VOFS, addr.BG2VOFS, addr.BG3VOFS}

	for n := 0; n < 4; n++ {
		bgcnt := reader.Read16(addr.IOBase + bgcntAddrs[n])

		info := BackgroundInfo{
			Enabled:   bit.IsSet16(uint8(8+n), dispcnt),
			Priority:  int(bgcnt & 3),
			CharBlock: int(bit.ExtractBits16(bgcnt, 3, 2)),
			MapBlock:  int(bit.ExtractBits16(bgcnt, 12, 8)),
			Colors256: bit.IsSet16(7, bgcnt),
			ScrollX:   int(reader.Read16(addr.IOBase+hofsAddrs[n]) & 0x1FF),
			ScrollY:   int(reader.Read16(addr.IOBase+vofsAddrs[n]) & 0x1FF),
		}

		switch bgcnt >> 14 {
		case 0:
			info.Width, info.Height = 256, 256
		case 1:
			info.Width, info.Height = 512, 256
		case 2:
			info.Width, info.Height = 256, 512
		case 3:
			info.Width, info.Height = 512, 512
		}

		vis.Backgrounds[n] = info
	}

	return vis
}

// ExtractPaletteData decodes the full palette RAM through the bus.
func ExtractPaletteData(reader MemoryReader) *PaletteVisualizer {
	vis := &PaletteVisualizer{}

	for i := 0; i < 256; i++ {
		vis.BG[i] = video.DecodeRGB15(reader.Read16(addr.PAL + uint32(i)*2))
		vis.OBJ[i] = video.DecodeRGB15(reader.Read16(addr.PAL + 0x200 + uint32(i)*2))
	}

	return vis
}

// FormatSummary describes the display state for status lines.
func (bv *BackgroundVisualizer) FormatSummary() string {
	enabled := ""
	for n, info := range bv.Backgrounds {
		if info.Enabled {
			enabled += fmt.Sprintf("BG%d ", n)
		}
	}
	if enabled == "" {
		enabled = "none "
	}
	return fmt.Sprintf("Mode %d | Layers: %s| Page %d", bv.Mode, enabled, bv.BitmapPage)
}
