package memory

import (
	"fmt"
	"log/slog"

	"github.com/pxlsplat/goadvance/goadvance/addr"
)

type memRegion uint8

const (
	regionUnused memRegion = iota
	regionEWRAM
	regionIWRAM
	regionIO
	regionPAL
	regionVRAM
	regionOAM
	regionROM
)

// MMU maps the GBA's flat 32 bit address space onto its backing stores: work
// RAM, the I/O register block, palette RAM, VRAM, OAM and cartridge ROM.
//
// All components share a single MMU and are stepped in lockstep by the board,
// so accesses are serialized in program order and no locking is needed.
type MMU struct {
	// IO is the shared register block. The video core and keypad hold a
	// borrow of it for the duration of a step.
	IO IO

	ewram []byte
	iwram []byte
	pal   []byte
	vram  []byte
	oam   []byte

	cart      *Cartridge
	regionMap [16]memRegion

	keypad Keypad
}

// New creates a memory unit with no cartridge loaded. Equivalent to powering
// on the console with an empty slot.
func New() *MMU {
	mmu := &MMU{
		ewram: make([]byte, addr.EWRAMSize),
		iwram: make([]byte, addr.IWRAMSize),
		pal:   make([]byte, addr.PALSize),
		vram:  make([]byte, addr.VRAMSize),
		oam:   make([]byte, addr.OAMSize),
		cart:  NewCartridge(),
	}
	mmu.IO.Reset()
	initRegionMap(mmu)
	return mmu
}

// NewWithCartridge creates a memory unit with the provided cartridge mapped
// into the ROM region.
func NewWithCartridge(cart *Cartridge) *MMU {
	mmu := New()
	mmu.cart = cart
	return mmu
}

func initRegionMap(m *MMU) {
	m.regionMap[0x2] = regionEWRAM
	m.regionMap[0x3] = regionIWRAM
	m.regionMap[0x4] = regionIO
	m.regionMap[0x5] = regionPAL
	m.regionMap[0x6] = regionVRAM
	m.regionMap[0x7] = regionOAM
	// ROM is mirrored across three wait state regions.
	m.regionMap[0x8] = regionROM
	m.regionMap[0xA] = regionROM
	m.regionMap[0xC] = regionROM
}

// Reset zeroes every memory region and register, as at power-on. The loaded
// cartridge is kept.
func (m *MMU) Reset() {
	clear(m.ewram)
	clear(m.iwram)
	clear(m.pal)
	clear(m.vram)
	clear(m.oam)
	m.IO.Reset()
	m.keypad.Reset()
	m.IO.Keyinput = m.keypad.Register()
}

// RequestInterrupt ORs the flag bit for the chosen interrupt into IF.
// This is a unidirectional signal; the CPU acknowledges separately.
func (m *MMU) RequestInterrupt(interrupt addr.Interrupt) {
	m.IO.IF |= uint16(interrupt)
}

func (m *MMU) Read(address uint32) byte {
	switch m.regionMap[(address>>24)&0xF] {
	case regionEWRAM:
		return m.ewram[address&(addr.EWRAMSize-1)]
	case regionIWRAM:
		return m.iwram[address&(addr.IWRAMSize-1)]
	case regionIO:
		return m.IO.readByte(address & 0x3FF)
	case regionPAL:
		return m.pal[address&(addr.PALSize-1)]
	case regionVRAM:
		return m.vram[vramOffset(address)]
	case regionOAM:
		return m.oam[address&(addr.OAMSize-1)]
	case regionROM:
		return m.cart.ReadByte(address & 0x01FFFFFF)
	default:
		// Open bus. Real hardware returns stale prefetch data; zero is
		// close enough for everything in scope.
		return 0
	}
}

func (m *MMU) Write(address uint32, value byte) {
	switch m.regionMap[(address>>24)&0xF] {
	case regionEWRAM:
		m.ewram[address&(addr.EWRAMSize-1)] = value
	case regionIWRAM:
		m.iwram[address&(addr.IWRAMSize-1)] = value
	case regionIO:
		m.IO.writeByte(address&0x3FF, value)
	case regionPAL:
		m.pal[address&(addr.PALSize-1)] = value
	case regionVRAM:
		m.vram[vramOffset(address)] = value
	case regionOAM:
		m.oam[address&(addr.OAMSize-1)] = value
	case regionROM:
		slog.Warn("Writing to ROM", "addr", fmt.Sprintf("0x%08X", address), "value", fmt.Sprintf("0x%02X", value))
	default:
		// Writes to unmapped space are dropped.
	}
}

// Read16 reads a little-endian 16 bit value. The GBA bus is 16 bit wide for
// most regions, so this is the natural register access size.
func (m *MMU) Read16(address uint32) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// Write16 writes a little-endian 16 bit value.
func (m *MMU) Write16(address uint32, value uint16) {
	m.Write(address, byte(value))
	m.Write(address+1, byte(value>>8))
}

// Read32 reads a little-endian 32 bit value, used by the CPU fetch path.
func (m *MMU) Read32(address uint32) uint32 {
	return uint32(m.Read16(address)) | uint32(m.Read16(address+2))<<16
}

// vramOffset folds an address into the 96 KiB VRAM array. VRAM mirrors every
// 128 KiB, with the upper 32 KiB of each mirror repeating the 64-96 KiB block.
func vramOffset(address uint32) uint32 {
	offset := address & 0x1FFFF
	if offset >= addr.VRAMSize {
		offset -= 0x8000
	}
	return offset
}

// PAL returns the raw palette RAM bytes. The video core reads these directly;
// callers must not resize the slice.
func (m *MMU) PAL() []byte {
	return m.pal
}

// VRAM returns the raw video RAM bytes.
func (m *MMU) VRAM() []byte {
	return m.vram
}

// OAM returns the raw object attribute memory bytes. Allocated for
// completeness; the rendering subset in scope never reads it.
func (m *MMU) OAM() []byte {
	return m.oam
}

// Cartridge returns the currently mapped cartridge.
func (m *MMU) Cartridge() *Cartridge {
	return m.cart
}

// KeyPress marks a key as held, refreshes KEYINPUT and raises the keypad
// interrupt when the KEYCNT condition is met.
func (m *MMU) KeyPress(key Key) {
	m.keypad.Press(key)
	m.IO.Keyinput = m.keypad.Register()
	if m.keypad.InterruptPending(m.IO.Keycnt) {
		m.RequestInterrupt(addr.KeypadInterrupt)
	}
}

// KeyRelease marks a key as released and refreshes KEYINPUT.
func (m *MMU) KeyRelease(key Key) {
	m.keypad.Release(key)
	m.IO.Keyinput = m.keypad.Register()
}
