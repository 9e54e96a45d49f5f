package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pxlsplat/goadvance/goadvance/addr"
	"github.com/pxlsplat/goadvance/goadvance/memory"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

func writePalette(mmu *memory.MMU, index int, color uint16) {
	mmu.Write16(addr.PAL+uint32(index)*2, color)
}

func TestExtractVRAMData4bpp(t *testing.T) {
	mmu := memory.New()
	writePalette(mmu, 1, 0x001F)
	writePalette(mmu, 2, 0x03E0)

	// Tile 5 of block 0, row 0: indices 1,2 then zeros.
	mmu.Write(addr.VRAM+5*32, 0x21)

	data, err := ExtractVRAMData(mmu, 0, false, 0)
	require.NoError(t, err)

	assert.Len(t, data.TilePatterns, Tiles4bppPerBlock)
	tile := data.TilePatterns[5]
	assert.Equal(t, 5, tile.Index)
	assert.Equal(t, video.DecodeRGB15(0x001F), tile.Pixels[0][0])
	assert.Equal(t, video.DecodeRGB15(0x03E0), tile.Pixels[0][1])
	assert.Equal(t, video.DecodeRGB15(0), tile.Pixels[0][2])
}

func TestExtractVRAMData4bppPaletteBank(t *testing.T) {
	mmu := memory.New()
	writePalette(mmu, 16+1, 0x7C00) // bank 1, entry 1: blue

	mmu.Write(addr.VRAM, 0x11)

	data, err := ExtractVRAMData(mmu, 0, false, 1)
	require.NoError(t, err)
	assert.Equal(t, video.DecodeRGB15(0x7C00), data.TilePatterns[0].Pixels[0][0])
}

func TestExtractVRAMData8bpp(t *testing.T) {
	mmu := memory.New()
	writePalette(mmu, 200, 0x001F)

	// Tile 3 of block 2, row 1, pixel 4.
	base := addr.VRAM + 2*CharBlockSize + 3*64
	mmu.Write(base+1*8+4, 200)

	data, err := ExtractVRAMData(mmu, 2, true, 0)
	require.NoError(t, err)

	assert.Len(t, data.TilePatterns, Tiles8bppPerBlock)
	assert.Equal(t, video.DecodeRGB15(0x001F), data.TilePatterns[3].Pixels[1][4])
}

func TestExtractVRAMDataBlockOutOfRange(t *testing.T) {
	mmu := memory.New()

	_, err := ExtractVRAMData(mmu, 4, false, 0)
	assert.Error(t, err)
	_, err = ExtractVRAMData(mmu, -1, false, 0)
	assert.Error(t, err)
}

func TestGetTileGrid(t *testing.T) {
	mmu := memory.New()

	data, err := ExtractVRAMData(mmu, 0, true, 0)
	require.NoError(t, err)

	grid := data.GetTileGrid()
	assert.Len(t, grid, Tiles8bppPerBlock/TilesPerRow)
	assert.Len(t, grid[0], TilesPerRow)
	assert.Equal(t, TilesPerRow, grid[1][0].Index, "grid is row-major")
}

func TestFormatSummary(t *testing.T) {
	mmu := memory.New()

	data, err := ExtractVRAMData(mmu, 1, false, 0)
	require.NoError(t, err)
	assert.Contains(t, data.FormatSummary(), "Char Block 1")
	assert.Contains(t, data.FormatSummary(), "4bpp")
}
