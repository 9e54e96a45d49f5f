package video

import "github.com/pxlsplat/goadvance/goadvance/bit"

// Text-mode backgrounds are built from 8x8 tiles. VRAM is carved into
// 16 KiB tile-pixel blocks and 2 KiB tile-map blocks; a background control
// register picks one of each.
//
// A map entry is 16 bits, little-endian, two bytes per tile:
//
//	Bits 0-9:   tile number
//	Bit  10:    horizontal flip
//	Bit  11:    vertical flip
//	Bits 12-15: palette number (16-color mode only)
//
// Tiles come in two pixel formats. In 16-color mode a tile row is 4 bytes,
// each byte holding two 4 bit palette indices, low nibble leftmost. In
// 256-color mode a row is 8 bytes of direct palette indices.
const (
	tileBlockSize = 0x4000
	mapBlockSize  = 0x800

	// maxVirtualWidth is the widest text background (screen size 1 or 3).
	maxVirtualWidth = 512
)

const tileLineWidth = 8

// bgControl is the decoded form of a BGnCNT register.
type bgControl struct {
	priority  int
	tileBase  uint32
	mapBase   uint32
	colors256 bool
	width     int
	height    int
}

func decodeBGControl(bgcnt uint16) bgControl {
	ctl := bgControl{
		priority:  int(bgcnt & 3),
		tileBase:  uint32(bit.ExtractBits16(bgcnt, 3, 2)) * tileBlockSize,
		mapBase:   uint32(bit.ExtractBits16(bgcnt, 12, 8)) * mapBlockSize,
		colors256: bit.IsSet16(7, bgcnt),
	}

	switch bgcnt >> 14 {
	case 0:
		ctl.width, ctl.height = 256, 256
	case 1:
		ctl.width, ctl.height = 512, 256
	case 2:
		ctl.width, ctl.height = 256, 512
	case 3:
		ctl.width, ctl.height = 512, 512
	}

	return ctl
}

// decodeTileLine4bpp decodes one 8 pixel row of a 16-color tile into out.
// A row is 4 bytes; each byte carries two pixels, low nibble first. Index 0
// decodes to Transparent unless the layer is the opaque backdrop.
func decodeTileLine4bpp(vram, pal []byte, tileBase, paletteBase uint32, number, line int, transparent bool, out *[tileLineWidth]uint32) {
	offset := tileBase + uint32(number)*32 + uint32(line)*4

	for i := 0; i < 4; i++ {
		value := vram[offset+uint32(i)]
		left := int(value & 0xF)
		right := int(value >> 4)

		out[i*2] = Transparent
		out[i*2+1] = Transparent

		if left != 0 || !transparent {
			out[i*2] = ReadPaletteEntry(pal, paletteBase, left)
		}
		if right != 0 || !transparent {
			out[i*2+1] = ReadPaletteEntry(pal, paletteBase, right)
		}
	}
}

// decodeTileLine8bpp decodes one 8 pixel row of a 256-color tile into out.
// A row is 8 bytes of direct palette indices.
func decodeTileLine8bpp(vram, pal []byte, tileBase uint32, number, line int, transparent bool, out *[tileLineWidth]uint32) {
	offset := tileBase + uint32(number)*64 + uint32(line)*8

	for i := 0; i < tileLineWidth; i++ {
		index := int(vram[offset+uint32(i)])

		out[i] = Transparent
		if index != 0 || !transparent {
			out[i] = ReadPaletteEntry(pal, BGPaletteBase, index)
		}
	}
}

// renderTextLine renders one scanline of a text-mode background into visible
// (240 pixels). full is scratch space for the virtual-width line; both
// buffers are reused across calls so no allocation happens per scanline.
//
// With transparent set, palette index 0 becomes Transparent so the
// compositor can let lower layers show through. The bottom-most drawn layer
// passes transparent=false and its index-0 pixels become the opaque backdrop.
func renderTextLine(vram, pal []byte, bgcnt uint16, line, scrollX, scrollY int, transparent bool, full *[maxVirtualWidth]uint32, visible []uint32) {
	ctl := decodeBGControl(bgcnt)

	wrapY := (line + scrollY) % ctl.height
	row := wrapY / tileLineWidth
	tileLine := wrapY % tileLineWidth

	// Two bytes per map entry, width/8 entries per row.
	offset := ctl.mapBase + uint32(ctl.width/4*row)

	var tile [tileLineWidth]uint32
	for x := 0; x < ctl.width/tileLineWidth; x++ {
		entry := bit.Combine(vram[offset+1], vram[offset])
		number := int(entry & 0x3FF)

		// Vertical flip applies to this tile only.
		entryLine := tileLine
		if bit.IsSet16(11, entry) {
			entryLine = tileLineWidth - 1 - tileLine
		}

		if ctl.colors256 {
			decodeTileLine8bpp(vram, pal, ctl.tileBase, number, entryLine, transparent, &tile)
		} else {
			paletteBase := uint32(entry>>12) * 0x20
			decodeTileLine4bpp(vram, pal, ctl.tileBase, paletteBase, number, entryLine, transparent, &tile)
		}

		if bit.IsSet16(10, entry) {
			for i := 0; i < tileLineWidth; i++ {
				full[x*tileLineWidth+tileLineWidth-1-i] = tile[i]
			}
		} else {
			for i := 0; i < tileLineWidth; i++ {
				full[x*tileLineWidth+i] = tile[i]
			}
		}

		offset += 2
	}

	// Copy the visible slice out of the virtual line, wrapping horizontally.
	for i := 0; i < FramebufferWidth; i++ {
		visible[i] = full[(scrollX+i)%ctl.width]
	}
}
