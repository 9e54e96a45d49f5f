package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pxlsplat/goadvance/goadvance/addr"
	"github.com/pxlsplat/goadvance/goadvance/memory"
)

func TestTickAdvancesThroughROM(t *testing.T) {
	rom := make([]byte, 16)
	mmu := memory.NewWithCartridge(memory.NewCartridgeWithData(rom))
	cpu := New(mmu)

	assert.Equal(t, addr.ROM, cpu.GetPC())

	cycles := cpu.Tick()
	assert.Equal(t, 1, cycles)
	assert.Equal(t, addr.ROM+4, cpu.GetPC())

	// PC wraps at the end of the ROM.
	for i := 0; i < 3; i++ {
		cpu.Tick()
	}
	assert.Equal(t, addr.ROM, cpu.GetPC())
	assert.Equal(t, uint64(4), cpu.Cycles())
}

func TestTickWithoutROM(t *testing.T) {
	cpu := New(memory.New())

	// An empty slot still consumes cycles, the PC just stays put.
	pc := cpu.GetPC()
	cpu.Tick()
	assert.Equal(t, pc, cpu.GetPC())
	assert.Equal(t, uint64(1), cpu.Cycles())
}

func TestRaiseIRQVectors(t *testing.T) {
	rom := make([]byte, 16)
	mmu := memory.NewWithCartridge(memory.NewCartridgeWithData(rom))
	cpu := New(mmu)

	cpu.Tick()
	cpu.RaiseIRQ()

	assert.Equal(t, uint32(irqVector), cpu.GetPC())
	assert.Equal(t, uint64(1), cpu.IRQCount())
}

func TestReset(t *testing.T) {
	rom := make([]byte, 16)
	mmu := memory.NewWithCartridge(memory.NewCartridgeWithData(rom))
	cpu := New(mmu)

	cpu.Tick()
	cpu.RaiseIRQ()
	cpu.Reset()

	assert.Equal(t, addr.ROM, cpu.GetPC())
	assert.Zero(t, cpu.Cycles())
	assert.Zero(t, cpu.IRQCount())
}
