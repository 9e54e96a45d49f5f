package integration

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pxlsplat/goadvance/goadvance"
	"github.com/pxlsplat/goadvance/goadvance/backend"
	"github.com/pxlsplat/goadvance/goadvance/backend/headless"
	"github.com/pxlsplat/goadvance/goadvance/input/action"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

// buildROM assembles a minimal flat ROM with a valid header.
func buildROM(t *testing.T) string {
	t.Helper()

	rom := make([]byte, 0x4000)
	copy(rom[0xA0:], "INTEGRATION")
	copy(rom[0xAC:], "AITE")

	sum := byte(0)
	for _, b := range rom[0xA0:0xBD] {
		sum -= b
	}
	rom[0xBD] = sum - 0x19

	path := filepath.Join(t.TempDir(), "integration.gba")
	require.NoError(t, os.WriteFile(path, rom, 0644))
	return path
}

func TestLoadROMAndRunFrames(t *testing.T) {
	emu, err := goadvance.NewWithFile(buildROM(t))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, emu.RunUntilFrame())
	}

	assert.Equal(t, uint64(3), emu.GetFrameCount())
	assert.Equal(t, "INTEGRATION", emu.GetMMU().Cartridge().Title())
}

func TestMissingROMFails(t *testing.T) {
	_, err := goadvance.NewWithFile("/nonexistent/rom.gba")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHeadlessRunWithSnapshots(t *testing.T) {
	emu, err := goadvance.NewWithFile(buildROM(t))
	require.NoError(t, err)

	// Mode 4 bitmap: fill page 0 with palette index 1 (red).
	mmu := emu.GetMMU()
	mmu.IO.Dispcnt = 4 | 1<<10
	mmu.Write16(0x05000002, 0x001F)
	for i := uint32(0); i < video.FramebufferSize; i++ {
		mmu.Write(0x06000000+i, 1)
	}

	dir := t.TempDir()
	snapshotConfig, err := headless.CreateSnapshotConfig(2, dir, "it.gba")
	require.NoError(t, err)

	h := headless.New(4, snapshotConfig)
	require.NoError(t, h.Init(backend.BackendConfig{DebugProvider: emu}))

	quit := false
	for !quit {
		require.NoError(t, emu.RunUntilFrame())

		events, err := h.Update(emu.GetCurrentFrame())
		require.NoError(t, err)
		for _, evt := range events {
			if evt.Action == action.EmulatorQuit {
				quit = true
			}
		}
	}
	require.NoError(t, h.Cleanup())

	// The rendered frame carries the bitmap color.
	assert.Equal(t, video.DecodeRGB15(0x001F), emu.GetCurrentFrame().GetPixel(0, 0))

	// Snapshots landed on frames 2 and 4, and decode as 240x160 PNGs.
	matches, err := filepath.Glob(filepath.Join(dir, "it_frame_*.png"))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	f, err := os.Open(matches[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, video.FramebufferWidth, img.Bounds().Dx())
	assert.Equal(t, video.FramebufferHeight, img.Bounds().Dy())
}

func TestDebugDataThroughEmulatorInterface(t *testing.T) {
	emu, err := goadvance.NewWithFile(buildROM(t))
	require.NoError(t, err)

	var provider backend.DebugDataProvider = emu
	data := provider.ExtractDebugData()
	require.NotNil(t, data)
	assert.NotNil(t, data.Video)
	assert.NotNil(t, data.Palettes)
}
