package video

import "github.com/pxlsplat/goadvance/goadvance/bit"

// Palette RAM layout: 512 little-endian 15 bit entries, backgrounds in the
// first half, sprites in the second.
const (
	// BGPaletteBase is the byte offset of the background palette.
	BGPaletteBase = 0x000
	// OBJPaletteBase is the byte offset of the sprite palette.
	OBJPaletteBase = 0x200
)

// ForcedBlankColor fills every pixel while DISPCNT bit 7 holds the LCD blank.
// It is the all-white 15 bit color pushed through the same channel scaling as
// every other pixel, i.e. DecodeRGB15(0x7FFF).
var ForcedBlankColor = DecodeRGB15(0x7FFF)

// DecodeRGB15 expands a 15 bit color (bits 0-4 red, 5-9 green, 10-14 blue)
// into 32 bit ARGB. Each 5 bit channel is scaled by 8; alpha is always 0xFF.
// Bit 15 is unused on hardware and ignored here.
func DecodeRGB15(color uint16) uint32 {
	return 0xFF000000 |
		uint32(color&0x1F)*8<<16 |
		uint32(color>>5&0x1F)*8<<8 |
		uint32(color>>10&0x1F)*8
}

// ReadPaletteEntry decodes palette entry index relative to paletteBase,
// reading the two little-endian bytes that hold it.
func ReadPaletteEntry(pal []byte, paletteBase uint32, index int) uint32 {
	offset := paletteBase + uint32(index)*2
	return DecodeRGB15(bit.Combine(pal[offset+1], pal[offset]))
}
