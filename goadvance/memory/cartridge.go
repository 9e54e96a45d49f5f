package memory

import "strings"

// GBA cartridge header layout. Unlike earlier Nintendo handhelds there is no
// banking hardware: the ROM is flat-addressed behind the 32 bit bus.
const (
	entryPointAddress     = 0x000
	logoAddress           = 0x004
	titleAddress          = 0x0A0
	gameCodeAddress       = 0x0AC
	makerCodeAddress      = 0x0B0
	versionNumberAddress  = 0x0BC
	headerChecksumAddress = 0x0BD

	titleLength    = 12
	gameCodeLength = 4
	headerLength   = 0xC0
)

type Cartridge struct {
	data           []byte
	title          string
	gameCode       string
	version        uint8
	headerChecksum uint8
}

// NewCartridge creates an empty cartridge, useful only for debugging purposes.
// All reads through it float high, like an empty slot.
func NewCartridge() *Cartridge {
	return &Cartridge{}
}

// NewCartridgeWithData initializes a new Cartridge from a slice of bytes.
func NewCartridgeWithData(bytes []byte) *Cartridge {
	cart := &Cartridge{
		data: make([]byte, len(bytes)),
	}
	copy(cart.data, bytes)

	if len(bytes) >= headerLength {
		cart.title = strings.TrimRight(string(bytes[titleAddress:titleAddress+titleLength]), "\x00")
		cart.gameCode = string(bytes[gameCodeAddress : gameCodeAddress+gameCodeLength])
		cart.version = bytes[versionNumberAddress]
		cart.headerChecksum = bytes[headerChecksumAddress]
	}

	return cart
}

// Title returns the game title from the cartridge header.
func (c *Cartridge) Title() string {
	return c.title
}

// GameCode returns the four character game code from the header.
func (c *Cartridge) GameCode() string {
	return c.gameCode
}

// Size returns the ROM size in bytes.
func (c *Cartridge) Size() int {
	return len(c.data)
}

// VerifyHeaderChecksum recomputes the complement checksum over header bytes
// 0xA0-0xBC and compares it with the stored value.
func (c *Cartridge) VerifyHeaderChecksum() bool {
	if len(c.data) < headerLength {
		return false
	}
	sum := byte(0)
	for _, b := range c.data[titleAddress:headerChecksumAddress] {
		sum -= b
	}
	sum -= 0x19
	return sum == c.headerChecksum
}

// ReadByte reads a byte at the specified ROM offset. Reads past the end of
// the ROM return 0xFF, like an unconnected bus line.
func (c *Cartridge) ReadByte(offset uint32) uint8 {
	if offset >= uint32(len(c.data)) {
		return 0xFF
	}
	return c.data[offset]
}
