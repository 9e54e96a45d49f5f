package memory

import (
	"testing"

	"github.com/pxlsplat/goadvance/goadvance/addr"
)

func TestRegionReadWrite(t *testing.T) {
	tests := []struct {
		name    string
		address uint32
	}{
		{"EWRAM", addr.EWRAM + 0x1234},
		{"IWRAM", addr.IWRAM + 0x100},
		{"PAL", addr.PAL + 0x3FE},
		{"VRAM", addr.VRAM + 0x17FFF},
		{"OAM", addr.OAM + 0x200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mmu := New()
			mmu.Write(tt.address, 0xA5)
			if got := mmu.Read(tt.address); got != 0xA5 {
				t.Errorf("read back 0x%02X, want 0xA5", got)
			}
		})
	}
}

func TestIORegisterAccess(t *testing.T) {
	mmu := New()

	mmu.Write16(addr.IOBase+addr.DISPCNT, 0x0403)
	if mmu.IO.Dispcnt != 0x0403 {
		t.Errorf("Dispcnt = 0x%04X, want 0x0403", mmu.IO.Dispcnt)
	}
	if got := mmu.Read16(addr.IOBase + addr.DISPCNT); got != 0x0403 {
		t.Errorf("Read16(DISPCNT) = 0x%04X, want 0x0403", got)
	}

	mmu.Write16(addr.IOBase+addr.BG2CNT, 0x1F83)
	if mmu.IO.BGCnt[2] != 0x1F83 {
		t.Errorf("BGCnt[2] = 0x%04X, want 0x1F83", mmu.IO.BGCnt[2])
	}

	// Byte granularity: writing the high byte leaves the low byte alone.
	mmu.Write(addr.IOBase+addr.BG0HOFS, 0x34)
	mmu.Write(addr.IOBase+addr.BG0HOFS+1, 0x01)
	if mmu.IO.BGHofs[0] != 0x0134 {
		t.Errorf("BGHofs[0] = 0x%04X, want 0x0134", mmu.IO.BGHofs[0])
	}
}

func TestVcountReadonlyFromBus(t *testing.T) {
	mmu := New()
	mmu.IO.Vcount = 42
	mmu.Write16(addr.IOBase+addr.VCOUNT, 0xFFFF)
	if mmu.IO.Vcount != 42 {
		t.Errorf("Vcount changed by bus write: 0x%04X", mmu.IO.Vcount)
	}
}

func TestInterruptFlagAcknowledge(t *testing.T) {
	mmu := New()
	mmu.RequestInterrupt(addr.VBlankInterrupt)
	mmu.RequestInterrupt(addr.HBlankInterrupt)
	if mmu.IO.IF != 0x0003 {
		t.Fatalf("IF = 0x%04X, want 0x0003", mmu.IO.IF)
	}

	// Writing a 1 acknowledges (clears) that bit, leaving others pending.
	mmu.Write16(addr.IOBase+addr.IF, 0x0001)
	if mmu.IO.IF != 0x0002 {
		t.Errorf("IF after ack = 0x%04X, want 0x0002", mmu.IO.IF)
	}
}

func TestVRAMMirroring(t *testing.T) {
	mmu := New()
	// The 64-96 KiB block repeats in the upper 32 KiB of the 128 KiB mirror.
	mmu.Write(addr.VRAM+0x10000, 0x77)
	if got := mmu.Read(addr.VRAM + 0x18000); got != 0x77 {
		t.Errorf("mirror read = 0x%02X, want 0x77", got)
	}
}

func TestROMReads(t *testing.T) {
	data := make([]byte, 0x200)
	for i := range data {
		data[i] = byte(i)
	}
	mmu := NewWithCartridge(NewCartridgeWithData(data))

	if got := mmu.Read(addr.ROM + 0x42); got != 0x42 {
		t.Errorf("ROM read = 0x%02X, want 0x42", got)
	}
	// Past the end of the ROM the bus floats high.
	if got := mmu.Read(addr.ROM + 0x1000); got != 0xFF {
		t.Errorf("out of range ROM read = 0x%02X, want 0xFF", got)
	}
}

func TestResetClearsOwnedState(t *testing.T) {
	mmu := New()
	mmu.Write(addr.VRAM, 0x11)
	mmu.Write(addr.PAL, 0x22)
	mmu.IO.Dispcnt = 0x0100
	mmu.IO.Vcount = 99

	mmu.Reset()

	if mmu.Read(addr.VRAM) != 0 || mmu.Read(addr.PAL) != 0 {
		t.Error("memory not cleared by reset")
	}
	if mmu.IO.Dispcnt != 0 || mmu.IO.Vcount != 0 {
		t.Error("registers not cleared by reset")
	}
	if mmu.IO.Keyinput != 0x03FF {
		t.Errorf("Keyinput = 0x%04X, want 0x03FF (all released)", mmu.IO.Keyinput)
	}
}
