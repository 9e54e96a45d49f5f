package memory

import (
	"github.com/pxlsplat/goadvance/goadvance/addr"
)

// IO is the memory mapped register block shared between the CPU, DMA and the
// video core. Registers are 16 bit; the bus exposes them byte-wise.
//
// Ownership follows the hardware: the video core writes DISPSTAT bits 0-2,
// VCOUNT and the low bits of IF; everything else belongs to the CPU side.
type IO struct {
	// Dispcnt is the display control register.
	Dispcnt uint16
	// Dispstat is the display status register.
	Dispstat uint16
	// Vcount is the current scanline, written by the video core only.
	Vcount uint16
	// BGCnt holds the BG0CNT..BG3CNT background control registers.
	BGCnt [4]uint16
	// BGHofs and BGVofs hold the background scroll registers. Only the low
	// 9 bits are significant on hardware.
	BGHofs [4]uint16
	BGVofs [4]uint16
	// Keyinput is the key status register, one bit per key, active low.
	Keyinput uint16
	// Keycnt is the key interrupt control register.
	Keycnt uint16
	// IE is the interrupt enable mask.
	IE uint16
	// IF holds pending interrupt requests. Components OR bits in; the CPU
	// acknowledges by writing 1s, which clears them.
	IF uint16
	// IME is the interrupt master enable.
	IME uint16
}

// Reset returns every register to its power-on value. All keys read as
// released (bits high).
func (io *IO) Reset() {
	*io = IO{Keyinput: 0x03FF}
}

// readByte returns one byte of a register, given its offset from the I/O base.
// Unmapped offsets read as zero, matching open-bus-as-zero behavior.
func (io *IO) readByte(offset uint32) byte {
	reg, hi := io.locate(offset)
	if reg == nil {
		return 0
	}
	if hi {
		return byte(*reg >> 8)
	}
	return byte(*reg)
}

// writeByte stores one byte of a register. VCOUNT and KEYINPUT are readonly
// from the bus; IF has acknowledge (write-1-to-clear) semantics.
func (io *IO) writeByte(offset uint32, value byte) {
	base := offset &^ 1
	if base == addr.VCOUNT || base == addr.KEYINPUT {
		return
	}

	reg, hi := io.locate(offset)
	if reg == nil {
		return
	}

	if base == addr.IF {
		if hi {
			*reg &^= uint16(value) << 8
		} else {
			*reg &^= uint16(value)
		}
		return
	}

	if hi {
		*reg = (*reg & 0x00FF) | (uint16(value) << 8)
	} else {
		*reg = (*reg & 0xFF00) | uint16(value)
	}
}

// locate maps a byte offset to the register containing it and whether the
// offset addresses its high byte.
func (io *IO) locate(offset uint32) (*uint16, bool) {
	hi := offset&1 == 1
	switch offset &^ 1 {
	case addr.DISPCNT:
		return &io.Dispcnt, hi
	case addr.DISPSTAT:
		return &io.Dispstat, hi
	case addr.VCOUNT:
		return &io.Vcount, hi
	case addr.BG0CNT:
		return &io.BGCnt[0], hi
	case addr.BG1CNT:
		return &io.BGCnt[1], hi
	case addr.BG2CNT:
		return &io.BGCnt[2], hi
	case addr.BG3CNT:
		return &io.BGCnt[3], hi
	case addr.BG0HOFS:
		return &io.BGHofs[0], hi
	case addr.BG0VOFS:
		return &io.BGVofs[0], hi
	case addr.BG1HOFS:
		return &io.BGHofs[1], hi
	case addr.BG1VOFS:
		return &io.BGVofs[1], hi
	case addr.BG2HOFS:
		return &io.BGHofs[2], hi
	case addr.BG2VOFS:
		return &io.BGVofs[2], hi
	case addr.BG3HOFS:
		return &io.BGHofs[3], hi
	case addr.BG3VOFS:
		return &io.BGVofs[3], hi
	case addr.KEYINPUT:
		return &io.Keyinput, hi
	case addr.KEYCNT:
		return &io.Keycnt, hi
	case addr.IE:
		return &io.IE, hi
	case addr.IF:
		return &io.IF, hi
	case addr.IME:
		return &io.IME, hi
	}
	return nil, false
}
