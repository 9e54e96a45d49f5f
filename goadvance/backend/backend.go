package backend

import (
	"github.com/pxlsplat/goadvance/goadvance/audio"
	"github.com/pxlsplat/goadvance/goadvance/debug"
	"github.com/pxlsplat/goadvance/goadvance/input/action"
	"github.com/pxlsplat/goadvance/goadvance/input/event"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

// InputEvent represents an input event from a backend
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// Backend represents a complete emulator platform (rendering + input + audio)
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, SDL window, etc.)
// - Capturing platform-specific input events and returning them as InputEvents
// - Handling backend-specific features (snapshots, debug panels)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update handles rendering the frame and collecting platform events.
	// The frame is a read-only borrow of the video core's framebuffer,
	// valid until the board runs its next step.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// DebugDataProvider is a minimal interface for backends that need debug
// information without seeing the whole Emulator surface.
type DebugDataProvider interface {
	// ExtractDebugData returns complete debug data for visualization.
	// Returns nil if no debug data is available.
	ExtractDebugData() *debug.CompleteDebugData
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title         string
	Scale         int
	VSync         bool
	Fullscreen    bool
	ShowDebug     bool              // Backends may ignore unsupported features
	DebugProvider DebugDataProvider // Optional: For backends with debug features
	Audio         audio.Provider    // Optional: For backends with audio output
}
