package addr

// Memory region base addresses. The GBA maps every component into a flat
// 32 bit address space; the upper byte selects the region.
const (
	// EWRAM is the start of external work RAM (256 KiB, 16 bit bus).
	EWRAM uint32 = 0x02000000
	// IWRAM is the start of internal work RAM (32 KiB, 32 bit bus).
	IWRAM uint32 = 0x03000000
	// IOBase is the start of the memory mapped I/O register block.
	IOBase uint32 = 0x04000000
	// PAL is the start of palette RAM (1 KiB: 256 BG + 256 OBJ entries).
	PAL uint32 = 0x05000000
	// VRAM is the start of video RAM (96 KiB).
	VRAM uint32 = 0x06000000
	// OAM is the start of object attribute memory (1 KiB).
	OAM uint32 = 0x07000000
	// ROM is the start of the cartridge ROM mirror (wait state 0).
	ROM uint32 = 0x08000000
)

// Region sizes in bytes.
const (
	EWRAMSize = 0x40000
	IWRAMSize = 0x8000
	PALSize   = 0x400
	VRAMSize  = 0x18000
	OAMSize   = 0x400
)

// Display registers, as offsets from IOBase.
const (
	// DISPCNT is the display control register.
	// Bits 0-2 select the video mode, bit 4 the bitmap page, bit 7 forces
	// the screen blank, bits 8-11 enable BG0..BG3.
	DISPCNT uint32 = 0x00
	// DISPSTAT is the display status register.
	// Bits 0-2 are status (V-Blank, H-Blank, V-Counter match), bits 3-5
	// the matching IRQ enables, bits 8-15 the V-Counter compare value.
	DISPSTAT uint32 = 0x04
	// VCOUNT holds the current scanline (readonly for the CPU).
	VCOUNT uint32 = 0x06
)

// Background registers, as offsets from IOBase. Each background has a
// control register and a pair of scroll registers.
const (
	BG0CNT  uint32 = 0x08
	BG1CNT  uint32 = 0x0A
	BG2CNT  uint32 = 0x0C
	BG3CNT  uint32 = 0x0E
	BG0HOFS uint32 = 0x10
	BG0VOFS uint32 = 0x12
	BG1HOFS uint32 = 0x14
	BG1VOFS uint32 = 0x16
	BG2HOFS uint32 = 0x18
	BG2VOFS uint32 = 0x1A
	BG3HOFS uint32 = 0x1C
	BG3VOFS uint32 = 0x1E
)

// Keypad registers, as offsets from IOBase.
const (
	// KEYINPUT is the key status register. One bit per key, active low.
	KEYINPUT uint32 = 0x130
	// KEYCNT is the key interrupt control register.
	KEYCNT uint32 = 0x132
)

// Interrupt registers, as offsets from IOBase.
const (
	// IE is the interrupt enable mask.
	IE uint32 = 0x200
	// IF is the interrupt request flags register. Components OR bits in,
	// the CPU acknowledges by writing 1s.
	IF uint32 = 0x202
	// IME is the interrupt master enable register.
	IME uint32 = 0x208
)

// Interrupt is an enum that represents one of the interrupt sources the
// emulated components can raise.
type Interrupt uint16

const (
	// VBlankInterrupt is fired when the display enters vertical blank.
	VBlankInterrupt Interrupt = 1
	// HBlankInterrupt is fired when a scanline enters horizontal blank.
	HBlankInterrupt Interrupt = 1 << 1
	// VCounterInterrupt is fired when VCOUNT matches the DISPSTAT compare value.
	VCounterInterrupt Interrupt = 1 << 2
	// KeypadInterrupt is fired when a key selected in KEYCNT is pressed.
	KeypadInterrupt Interrupt = 1 << 12
)
