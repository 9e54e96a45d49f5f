package debug

import (
	"fmt"

	"github.com/pxlsplat/goadvance/goadvance/addr"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

const (
	TilePixelWidth  = 8
	TilePixelHeight = 8

	// CharBlockCount is the number of 16 KiB tile-pixel blocks in VRAM
	// usable by backgrounds.
	CharBlockCount = 4
	// CharBlockSize is the byte size of one tile-pixel block.
	CharBlockSize = 0x4000

	// Tiles4bppPerBlock is how many 32 byte tiles fit in a block.
	Tiles4bppPerBlock = CharBlockSize / 32
	// Tiles8bppPerBlock is how many 64 byte tiles fit in a block.
	Tiles8bppPerBlock = CharBlockSize / 64

	TilesPerRow = 16
)

// TilePattern is one decoded 8x8 tile, ready for display.
type TilePattern struct {
	Index  int
	Pixels [TilePixelHeight][TilePixelWidth]uint32
}

// VRAMData is a decoded view of one tile-pixel block.
type VRAMData struct {
	CharBlock    int
	Colors256    bool
	TilePatterns []TilePattern
}

// ExtractVRAMData decodes every tile of a character block through the bus,
// in the chosen color depth. 16-color tiles use the given palette bank.
func ExtractVRAMData(reader MemoryReader, charBlock int, colors256 bool, paletteBank int) (*VRAMData, error) {
	if charBlock < 0 || charBlock >= CharBlockCount {
		return nil, fmt.Errorf("character block %d out of range", charBlock)
	}

	data := &VRAMData{
		CharBlock: charBlock,
		Colors256: colors256,
	}

	count := Tiles4bppPerBlock
	if colors256 {
		count = Tiles8bppPerBlock
	}

	base := addr.VRAM + uint32(charBlock)*CharBlockSize
	data.TilePatterns = make([]TilePattern, count)
	for i := range data.TilePatterns {
		if colors256 {
			data.TilePatterns[i] = decodeTile8bpp(reader, base, i)
		} else {
			data.TilePatterns[i] = decodeTile4bpp(reader, base, i, paletteBank)
		}
	}

	return data, nil
}

func decodeTile4bpp(reader MemoryReader, blockBase uint32, number, paletteBank int) TilePattern {
	tile := TilePattern{Index: number}
	paletteBase := addr.PAL + uint32(paletteBank)*0x20

	offset := blockBase + uint32(number)*32
	for y := 0; y < TilePixelHeight; y++ {
		for i := 0; i < 4; i++ {
			value := reader.Read(offset + uint32(y*4+i))
			left := uint32(value & 0xF)
			right := uint32(value >> 4)
			tile.Pixels[y][i*2] = video.DecodeRGB15(reader.Read16(paletteBase + left*2))
			tile.Pixels[y][i*2+1] = video.DecodeRGB15(reader.Read16(paletteBase + right*2))
		}
	}
	return tile
}

func decodeTile8bpp(reader MemoryReader, blockBase uint32, number int) TilePattern {
	tile := TilePattern{Index: number}

	offset := blockBase + uint32(number)*64
	for y := 0; y < TilePixelHeight; y++ {
		for x := 0; x < TilePixelWidth; x++ {
			index := uint32(reader.Read(offset + uint32(y*8+x)))
			tile.Pixels[y][x] = video.DecodeRGB15(reader.Read16(addr.PAL + index*2))
		}
	}
	return tile
}

// GetTileGrid arranges the decoded tiles in display rows of 16.
func (data *VRAMData) GetTileGrid() [][]TilePattern {
	rows := (len(data.TilePatterns) + TilesPerRow - 1) / TilesPerRow
	grid := make([][]TilePattern, rows)

	for row := 0; row < rows; row++ {
		grid[row] = make([]TilePattern, TilesPerRow)
		for col := 0; col < TilesPerRow; col++ {
			index := row*TilesPerRow + col
			if index < len(data.TilePatterns) {
				grid[row][col] = data.TilePatterns[index]
			}
		}
	}

	return grid
}

// FormatSummary describes the decoded block for status lines.
func (data *VRAMData) FormatSummary() string {
	depth := "4bpp"
	if data.Colors256 {
		depth = "8bpp"
	}
	return fmt.Sprintf("Char Block %d [%s] | %d tiles", data.CharBlock, depth, len(data.TilePatterns))
}
