package video

import "testing"

func TestDecodeRGB15(t *testing.T) {
	tests := []struct {
		name     string
		color    uint16
		expected uint32
	}{
		{"Black", 0x0000, 0xFF000000},
		{"White", 0x7FFF, 0xFFF8F8F8},
		{"Red only", 0x001F, 0xFFF80000},
		{"Green only", 0x03E0, 0xFF00F800},
		{"Blue only", 0x7C00, 0xFF0000F8},
		{"Mid gray", 0x4210, 0xFF808080},
		{"Unused bit 15 ignored", 0x8000, 0xFF000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeRGB15(tt.color); got != tt.expected {
				t.Errorf("DecodeRGB15(0x%04X) = %08X, want %08X", tt.color, got, tt.expected)
			}
		})
	}
}

func TestDecodeRGB15ChannelScaling(t *testing.T) {
	// Every decoded pixel must be fully opaque with each channel a multiple
	// of 8, since 5 bit channels are expanded by a plain shift.
	for _, color := range []uint16{0x0000, 0x7FFF, 0x1234, 0x5A5A, 0x0421, 0x7BDE} {
		argb := DecodeRGB15(color)
		if argb>>24 != 0xFF {
			t.Errorf("DecodeRGB15(0x%04X) alpha = 0x%02X, want 0xFF", color, argb>>24)
		}
		for shift := 0; shift <= 16; shift += 8 {
			if channel := (argb >> shift) & 0xFF; channel%8 != 0 {
				t.Errorf("DecodeRGB15(0x%04X) channel at bit %d = %d, not a multiple of 8", color, shift, channel)
			}
		}
	}
}

func TestReadPaletteEntry(t *testing.T) {
	pal := make([]byte, 0x400)

	// Entry 1 of the background palette: little-endian 0x001F (red).
	pal[2] = 0x1F
	pal[3] = 0x00
	if got := ReadPaletteEntry(pal, BGPaletteBase, 1); got != 0xFFF80000 {
		t.Errorf("BG entry 1 = %08X, want FFF80000", got)
	}

	// Entry 3 of the sprite palette half.
	pal[OBJPaletteBase+6] = 0xE0
	pal[OBJPaletteBase+7] = 0x03
	if got := ReadPaletteEntry(pal, OBJPaletteBase, 3); got != 0xFF00F800 {
		t.Errorf("OBJ entry 3 = %08X, want FF00F800", got)
	}
}

func TestForcedBlankColor(t *testing.T) {
	if ForcedBlankColor != 0xFFF8F8F8 {
		t.Errorf("ForcedBlankColor = %08X, want FFF8F8F8", ForcedBlankColor)
	}
}
