//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/pxlsplat/goadvance/goadvance/backend"
	"github.com/pxlsplat/goadvance/goadvance/input/action"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

// Backend stub for when SDL2 is not available
type Backend struct{}

// New creates a stub SDL2 backend that returns an error
func New() *Backend {
	return &Backend{}
}

// Init returns an error indicating SDL2 is not available
func (s *Backend) Init(config backend.BackendConfig) error {
	return fmt.Errorf("SDL2 backend not available - build with -tags sdl2 to enable")
}

// Update returns an error
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	return nil, fmt.Errorf("SDL2 backend not available")
}

// Cleanup does nothing
func (s *Backend) Cleanup() error {
	return nil
}

// HandleAction does nothing
func (s *Backend) HandleAction(act action.Action) {
	// No-op
}
