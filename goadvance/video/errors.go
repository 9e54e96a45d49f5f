package video

import "fmt"

// InvalidVideoModeError reports a guest program selecting a display mode
// outside the supported set. Modes 1 and 2 (affine) are not implemented;
// modes 6 and 7 do not exist on hardware. The core fails fast rather than
// guessing at output.
type InvalidVideoModeError struct {
	Mode int
}

func (e InvalidVideoModeError) Error() string {
	return fmt.Sprintf("invalid video mode %d: cannot render", e.Mode)
}

// InternalInvariantError reports a condition the core's own arithmetic should
// have made impossible, such as a scanline index outside the display. It
// always indicates a bug in the video core, never in the guest.
type InternalInvariantError struct {
	Detail string
}

func (e InternalInvariantError) Error() string {
	return "video core invariant violated: " + e.Detail
}
