package cpu

import (
	"log/slog"

	"github.com/pxlsplat/goadvance/goadvance/addr"
	"github.com/pxlsplat/goadvance/goadvance/memory"
)

// IRQ exception vector of the ARM7TDMI.
const irqVector = 0x00000018

// CPU is a deliberately thin ARM7TDMI-shaped collaborator. It keeps the bus
// and interrupt contract alive from the processor's side — fetching through
// the MMU, vectoring on IRQ — without decoding or executing instructions.
// Instruction-level emulation is out of scope for this core.
type CPU struct {
	mmu *memory.MMU

	pc     uint32
	cycles uint64
	irqs   uint64
}

func New(mmu *memory.MMU) *CPU {
	return &CPU{
		mmu: mmu,
		pc:  addr.ROM,
	}
}

// Tick performs one fetch cycle: read the word at PC, advance, wrap at the
// end of the ROM. Returns the cycles consumed (always one in this stub; a
// real core would return the instruction's cost).
func (c *CPU) Tick() int {
	if rom := c.mmu.Cartridge(); rom != nil && rom.Size() >= 4 {
		c.mmu.Read32(c.pc)
		c.pc += 4
		if c.pc >= addr.ROM+uint32(rom.Size()) {
			c.pc = addr.ROM
		}
	}
	c.cycles++
	return 1
}

// RaiseIRQ models interrupt entry: the core jumps to the IRQ vector. The
// board calls this when IME is set and IE&IF is non-zero.
func (c *CPU) RaiseIRQ() {
	c.irqs++
	c.pc = irqVector
	slog.Debug("CPU interrupt entry", "irqs", c.irqs, "pending", c.mmu.IO.IE&c.mmu.IO.IF)
}

// Reset returns the core to the cartridge entry point.
func (c *CPU) Reset() {
	c.pc = addr.ROM
	c.cycles = 0
	c.irqs = 0
}

// GetPC returns the current program counter.
func (c *CPU) GetPC() uint32 {
	return c.pc
}

// Cycles returns the total cycles consumed since reset.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// IRQCount returns how many interrupt entries have occurred.
func (c *CPU) IRQCount() uint64 {
	return c.irqs
}
