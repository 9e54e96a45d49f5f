package display

// RGBA pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
	// FullAlpha is the alpha value for fully opaque pixels
	FullAlpha = 255
)

// Backend scaling and window constants
const (
	// DefaultPixelScale is the default scaling factor for GBA pixels
	DefaultPixelScale = 3
	// DefaultWindowWidth is the default window width (GBA width * scale)
	DefaultWindowWidth = 240 * DefaultPixelScale // 720
	// DefaultWindowHeight is the default window height (GBA height * scale)
	DefaultWindowHeight = 160 * DefaultPixelScale // 480
)
