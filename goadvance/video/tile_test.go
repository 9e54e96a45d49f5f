package video

import "testing"

// writePAL stores a 15 bit color as a little-endian palette entry.
func writePAL(pal []byte, index int, color uint16) {
	pal[index*2] = byte(color)
	pal[index*2+1] = byte(color >> 8)
}

func TestDecodeBGControl(t *testing.T) {
	tests := []struct {
		name          string
		bgcnt         uint16
		priority      int
		tileBase      uint32
		mapBase       uint32
		colors256     bool
		width, height int
	}{
		{"All zero", 0x0000, 0, 0, 0, false, 256, 256},
		{"Priority 3", 0x0003, 3, 0, 0, false, 256, 256},
		{"Tile block 2", 0x0008, 0, 0x8000, 0, false, 256, 256},
		{"Map block 31", 0x1F00, 0, 0, 31 * 0x800, false, 256, 256},
		{"256 colors", 0x0080, 0, 0, 0, true, 256, 256},
		{"Size 1", 0x4000, 0, 0, 0, false, 512, 256},
		{"Size 2", 0x8000, 0, 0, 0, false, 256, 512},
		{"Size 3", 0xC000, 0, 0, 0, false, 512, 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctl := decodeBGControl(tt.bgcnt)
			if ctl.priority != tt.priority {
				t.Errorf("priority = %d, want %d", ctl.priority, tt.priority)
			}
			if ctl.tileBase != tt.tileBase {
				t.Errorf("tileBase = 0x%X, want 0x%X", ctl.tileBase, tt.tileBase)
			}
			if ctl.mapBase != tt.mapBase {
				t.Errorf("mapBase = 0x%X, want 0x%X", ctl.mapBase, tt.mapBase)
			}
			if ctl.colors256 != tt.colors256 {
				t.Errorf("colors256 = %v, want %v", ctl.colors256, tt.colors256)
			}
			if ctl.width != tt.width || ctl.height != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", ctl.width, ctl.height, tt.width, tt.height)
			}
		})
	}
}

func TestDecodeTileLine4bpp(t *testing.T) {
	vram := make([]byte, 0x18000)
	pal := make([]byte, 0x400)
	writePAL(pal, 0, 0x7FFF) // white
	writePAL(pal, 1, 0x001F) // red
	writePAL(pal, 2, 0x03E0) // green

	// One row of tile 0: pixel indices 1,2,0,0,1,1,2,2.
	// Low nibble is the left pixel of each byte pair.
	vram[0] = 0x21
	vram[1] = 0x00
	vram[2] = 0x11
	vram[3] = 0x22

	red := DecodeRGB15(0x001F)
	green := DecodeRGB15(0x03E0)
	white := DecodeRGB15(0x7FFF)

	var out [8]uint32
	decodeTileLine4bpp(vram, pal, 0, 0, 0, 0, true, &out)

	expected := [8]uint32{red, green, Transparent, Transparent, red, red, green, green}
	if out != expected {
		t.Errorf("transparent decode = %v, want %v", out, expected)
	}

	// With transparent=false, index 0 shows palette color 0.
	decodeTileLine4bpp(vram, pal, 0, 0, 0, 0, false, &out)
	expected[2] = white
	expected[3] = white
	if out != expected {
		t.Errorf("opaque decode = %v, want %v", out, expected)
	}
}

func TestDecodeTileLine4bppPaletteBank(t *testing.T) {
	vram := make([]byte, 0x18000)
	pal := make([]byte, 0x400)
	writePAL(pal, 1, 0x001F)    // bank 0 entry 1: red
	writePAL(pal, 16+1, 0x03E0) // bank 1 entry 1: green

	// Row of all index 1.
	for i := 0; i < 4; i++ {
		vram[i] = 0x11
	}

	var out [8]uint32
	decodeTileLine4bpp(vram, pal, 0, 0, 0, 0, true, &out)
	if out[0] != DecodeRGB15(0x001F) {
		t.Errorf("bank 0 pixel = %08X, want red", out[0])
	}

	decodeTileLine4bpp(vram, pal, 0, 1*0x20, 0, 0, true, &out)
	if out[0] != DecodeRGB15(0x03E0) {
		t.Errorf("bank 1 pixel = %08X, want green", out[0])
	}
}

func TestDecodeTileLine8bpp(t *testing.T) {
	vram := make([]byte, 0x18000)
	pal := make([]byte, 0x400)
	writePAL(pal, 0, 0x7FFF)
	writePAL(pal, 200, 0x001F)

	// Tile 1, row 3: 8 direct indices.
	base := uint32(1*64 + 3*8)
	vram[base] = 200
	vram[base+1] = 0

	var out [8]uint32
	decodeTileLine8bpp(vram, pal, 0, 1, 3, true, &out)

	if out[0] != DecodeRGB15(0x001F) {
		t.Errorf("pixel 0 = %08X, want red", out[0])
	}
	if out[1] != Transparent {
		t.Errorf("pixel 1 = %08X, want transparent", out[1])
	}

	decodeTileLine8bpp(vram, pal, 0, 1, 3, false, &out)
	if out[1] != DecodeRGB15(0x7FFF) {
		t.Errorf("opaque pixel 1 = %08X, want white", out[1])
	}
}

// textLineFixture builds zeroed VRAM and a PAL whose entries 0-8 hold distinct
// raw colors. With the map all zero every entry points at tile 0; each test
// writes the tile rows and map entries it needs.
func textLineFixture() (vram, pal []byte) {
	vram = make([]byte, 0x18000)
	pal = make([]byte, 0x400)
	for i := 0; i < 9; i++ {
		writePAL(pal, i, uint16(i)) // distinct raw colors
	}
	return vram, pal
}

func TestRenderTextLineHorizontalFlip(t *testing.T) {
	vram, pal := textLineFixture()

	// Tile 0 row 0: indices 1..8 left to right.
	vram[0] = 0x21
	vram[1] = 0x43
	vram[2] = 0x65
	vram[3] = 0x87

	// Map block 1 (bgcnt map index 1): first entry tile 0 unflipped, second
	// entry tile 0 with horizontal flip (bit 10).
	mapBase := 0x800
	vram[mapBase+0] = 0x00
	vram[mapBase+1] = 0x00
	vram[mapBase+2] = 0x00
	vram[mapBase+3] = 0x04 // bit 10

	var full [maxVirtualWidth]uint32
	visible := make([]uint32, FramebufferWidth)
	renderTextLine(vram, pal, 0x0100, 0, 0, 0, false, &full, visible)

	for i := 0; i < 8; i++ {
		want := ReadPaletteEntry(pal, 0, i+1)
		if visible[i] != want {
			t.Errorf("pixel %d = %08X, want index %d", i, visible[i], i+1)
		}
		// Second tile renders the same row mirrored.
		if visible[8+i] != ReadPaletteEntry(pal, 0, 8-i) {
			t.Errorf("flipped pixel %d = %08X, want index %d", 8+i, visible[8+i], 8-i)
		}
	}
}

func TestRenderTextLineVerticalFlip(t *testing.T) {
	vram, pal := textLineFixture()

	// Tile 0: row 0 all index 1, row 7 all index 2.
	for i := 0; i < 4; i++ {
		vram[i] = 0x11
		vram[7*4+i] = 0x22
	}

	// Map entries: tile 0 plain, then tile 0 with vertical flip (bit 11).
	mapBase := 0x800
	vram[mapBase+3] = 0x08 // bit 11

	var full [maxVirtualWidth]uint32
	visible := make([]uint32, FramebufferWidth)
	renderTextLine(vram, pal, 0x0100, 0, 0, 0, false, &full, visible)

	if visible[0] != ReadPaletteEntry(pal, 0, 1) {
		t.Errorf("plain tile shows row 0: got %08X", visible[0])
	}
	if visible[8] != ReadPaletteEntry(pal, 0, 2) {
		t.Errorf("flipped tile shows row 7: got %08X", visible[8])
	}
	// The flip must not leak into the third tile.
	if visible[16] != ReadPaletteEntry(pal, 0, 1) {
		t.Errorf("flip leaked into the next tile: got %08X", visible[16])
	}
}

func TestRenderTextLineScrollWrap(t *testing.T) {
	vram, pal := textLineFixture()
	writePAL(pal, 1, 0x001F) // red
	writePAL(pal, 2, 0x03E0) // green

	// Tile 0 all index 1, tile 1 all index 2.
	for row := 0; row < 8; row++ {
		for i := 0; i < 4; i++ {
			vram[row*4+i] = 0x11
			vram[32+row*4+i] = 0x22
		}
	}

	// 512 wide background (size 1), map block 8. Columns 496-511 (map
	// entries 62 and 63) use tile 1, everything else tile 0.
	mapBase := 8 * 0x800
	vram[mapBase+62*2] = 0x01
	vram[mapBase+63*2] = 0x01

	var full [maxVirtualWidth]uint32
	visible := make([]uint32, FramebufferWidth)
	renderTextLine(vram, pal, 0x4800, 0, 500, 0, false, &full, visible)

	green := DecodeRGB15(0x03E0)
	red := DecodeRGB15(0x001F)

	// Pixels 0-11 come from virtual columns 500-511, then wrap to column 0.
	for i := 0; i < 12; i++ {
		if visible[i] != green {
			t.Errorf("pixel %d = %08X, want green (columns 500-511)", i, visible[i])
		}
	}
	for _, i := range []int{12, 100, 239} {
		if visible[i] != red {
			t.Errorf("pixel %d = %08X, want red (wrapped)", i, visible[i])
		}
	}
}

func TestRenderTextLineVerticalScrollWrap(t *testing.T) {
	vram, pal := textLineFixture()
	writePAL(pal, 1, 0x001F)

	// Tile 0: only row 5 carries index 1.
	for i := 0; i < 4; i++ {
		vram[5*4+i] = 0x11
	}

	var full [maxVirtualWidth]uint32
	visible := make([]uint32, FramebufferWidth)

	// Height 256, line 3 + scroll 258 wraps to row 5 of tile row 0.
	renderTextLine(vram, pal, 0x0100, 3, 0, 258, false, &full, visible)
	if visible[0] != DecodeRGB15(0x001F) {
		t.Errorf("pixel = %08X, want red from wrapped row", visible[0])
	}

	// One line later the hit row is 6, which is blank (color 0).
	renderTextLine(vram, pal, 0x0100, 4, 0, 258, false, &full, visible)
	if visible[0] != DecodeRGB15(0) {
		t.Errorf("pixel = %08X, want backdrop black", visible[0])
	}
}

func TestRenderTextLineTransparency(t *testing.T) {
	vram, pal := textLineFixture()
	writePAL(pal, 0, 0x7FFF)

	var full [maxVirtualWidth]uint32
	visible := make([]uint32, FramebufferWidth)

	// All-zero tiles: a transparent layer yields only Transparent pixels,
	// the backdrop layer yields opaque color 0.
	renderTextLine(vram, pal, 0, 0, 0, 0, true, &full, visible)
	for i, px := range visible {
		if px != Transparent {
			t.Fatalf("pixel %d = %08X, want transparent", i, px)
		}
	}

	renderTextLine(vram, pal, 0, 0, 0, 0, false, &full, visible)
	for i, px := range visible {
		if px != 0xFFF8F8F8 {
			t.Fatalf("pixel %d = %08X, want opaque white", i, px)
		}
	}
}
