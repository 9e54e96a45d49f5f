package video

const (
	// FramebufferWidth is the visible width of the GBA LCD in pixels.
	FramebufferWidth = 240
	// FramebufferHeight is the visible height of the GBA LCD in pixels.
	FramebufferHeight = 160
	// FramebufferSize is the pixel count of a full frame.
	FramebufferSize = FramebufferWidth * FramebufferHeight
)

// Transparent marks a pixel a layer did not cover. The compositor skips these
// when blending, so a composited row never holds 0 (an opaque black is
// 0xFF000000); a new or cleared framebuffer holds 0 until a row is drawn.
const Transparent uint32 = 0

// FrameBuffer holds one frame of 32 bit ARGB pixels, row-major. It is owned
// by the video core: the compositor writes rows into it during a step and
// hosts read it between steps via ToSlice, never through a copy.
type FrameBuffer struct {
	width  uint
	height uint
	buffer []uint32
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		width:  FramebufferWidth,
		height: FramebufferHeight,
		buffer: make([]uint32, FramebufferSize),
	}
}

func (fb *FrameBuffer) GetPixel(x, y uint) uint32 {
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y uint, color uint32) {
	fb.buffer[y*fb.width+x] = color
}

// ToSlice returns the backing pixel slice. Callers borrow it read-only
// between steps; the next composited line may overwrite any row.
func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}

// Row returns the pixels of one scanline.
func (fb *FrameBuffer) Row(y uint) []uint32 {
	start := y * fb.width
	return fb.buffer[start : start+fb.width]
}

// Clear resets the framebuffer to all-transparent.
func (fb *FrameBuffer) Clear() {
	for i := range fb.buffer {
		fb.buffer[i] = Transparent
	}
}

// ToRGBA returns the frame as packed RGBA bytes, the layout image encoders
// and texture uploads expect.
func (fb *FrameBuffer) ToRGBA() []byte {
	data := make([]byte, len(fb.buffer)*4)
	for i, pixel := range fb.buffer {
		data[i*4] = byte(pixel >> 16)   // R
		data[i*4+1] = byte(pixel >> 8)  // G
		data[i*4+2] = byte(pixel)       // B
		data[i*4+3] = byte(pixel >> 24) // A
	}
	return data
}
