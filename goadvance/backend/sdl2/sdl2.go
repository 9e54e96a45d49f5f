//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/pxlsplat/goadvance/goadvance/audio"
	"github.com/pxlsplat/goadvance/goadvance/backend"
	"github.com/pxlsplat/goadvance/goadvance/debug"
	"github.com/pxlsplat/goadvance/goadvance/display"
	"github.com/pxlsplat/goadvance/goadvance/input/action"
	"github.com/pxlsplat/goadvance/goadvance/input/event"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

const (
	windowWidth  = display.DefaultWindowWidth
	windowHeight = display.DefaultWindowHeight

	audioBufferSamples = 1024
)

// Backend implements the Backend interface using SDL2 bindings.
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed renderer, see build tags (sdl2)
type Backend struct {
	window        *sdl.Window
	renderer      *sdl.Renderer
	texture       *sdl.Texture
	running       bool
	config        backend.BackendConfig
	debugProvider backend.DebugDataProvider

	// Snapshot state
	currentFrame *video.FrameBuffer

	// Audio
	audioDevice   sdl.AudioDeviceID
	audioProvider audio.Provider

	pixelBuffer []byte
	eventBuffer []backend.InputEvent
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config
	s.debugProvider = config.DebugProvider
	s.audioProvider = config.Audio

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		windowWidth,
		windowHeight,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %v", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %v", err)
	}
	s.texture = texture

	s.window.Show()

	s.pixelBuffer = make([]byte, video.FramebufferWidth*video.FramebufferHeight*display.RGBABytesPerPixel)
	s.eventBuffer = make([]backend.InputEvent, 0, 10)
	s.running = true

	if s.audioProvider != nil {
		if err := s.initAudio(); err != nil {
			slog.Warn("Failed to initialize audio", "error", err)
		}
	}

	slog.Info("SDL2 backend initialized")
	return nil
}

// Update renders a frame and processes events
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	s.eventBuffer = s.eventBuffer[:0]

	for evt := sdl.PollEvent(); evt != nil; evt = sdl.PollEvent() {
		if inputEvents := s.handleEvent(evt); inputEvents != nil {
			s.eventBuffer = append(s.eventBuffer, inputEvents...)
		}
	}

	if !s.running {
		return s.eventBuffer, nil
	}

	s.currentFrame = frame
	s.renderFrame(frame)

	if s.audioDevice != 0 && s.audioProvider != nil {
		s.queueAudioSamples()
	}

	return s.eventBuffer, nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.audioDevice != 0 {
		sdl.CloseAudioDevice(s.audioDevice)
	}
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

// HandleAction processes backend-specific actions
func (s *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(s.currentFrame)
	}
}

func (s *Backend) initAudio() error {
	spec := sdl.AudioSpec{
		Freq:     audio.SampleRate,
		Format:   sdl.AUDIO_S16SYS,
		Channels: 1,
		Samples:  audioBufferSamples,
	}

	device, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		return err
	}

	s.audioDevice = device
	sdl.PauseAudioDevice(device, false)
	return nil
}

func (s *Backend) queueAudioSamples() {
	// Keep roughly one buffer queued; the stub provider yields silence.
	queued := sdl.GetQueuedAudioSize(s.audioDevice)
	if queued >= audioBufferSamples*2 {
		return
	}

	samples := s.audioProvider.GetSamples(audioBufferSamples)
	buf := make([]byte, len(samples)*2)
	for i, sample := range samples {
		buf[i*2] = byte(sample)
		buf[i*2+1] = byte(sample >> 8)
	}
	if err := sdl.QueueAudio(s.audioDevice, buf); err != nil {
		slog.Debug("Audio queue failed", "error", err)
	}
}

func (s *Backend) handleEvent(evt sdl.Event) []backend.InputEvent {
	switch e := evt.(type) {
	case *sdl.QuitEvent:
		s.running = false
		return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			return s.handleKeyDown(e.Keysym.Sym, e.Repeat)
		} else if e.Type == sdl.KEYUP {
			return s.handleKeyUp(e.Keysym.Sym)
		}
	}

	return nil
}

// keyMapping maps SDL2 keys to actions
var keyMapping = map[sdl.Keycode]action.Action{
	// Emulator controls
	sdl.K_F9:     action.EmulatorSnapshot,
	sdl.K_F10:    action.EmulatorDebugToggle,
	sdl.K_F11:    action.EmulatorDebugUpdate,
	sdl.K_ESCAPE: action.EmulatorQuit,
	sdl.K_SPACE:  action.EmulatorPauseToggle,
	sdl.K_f:      action.EmulatorStepFrame,
	sdl.K_n:      action.EmulatorStep,

	// Audio debugging
	sdl.K_F1: action.AudioToggleChannel1,
	sdl.K_F2: action.AudioToggleChannel2,
	sdl.K_F3: action.AudioToggleChannel3,
	sdl.K_F4: action.AudioToggleChannel4,
	sdl.K_F5: action.AudioShowStatus,

	// GBA controls
	sdl.K_z:         action.PadButtonA,
	sdl.K_x:         action.PadButtonB,
	sdl.K_a:         action.PadButtonL,
	sdl.K_s:         action.PadButtonR,
	sdl.K_RETURN:    action.PadButtonStart,
	sdl.K_BACKSPACE: action.PadButtonSelect,
	sdl.K_UP:        action.PadUp,
	sdl.K_DOWN:      action.PadDown,
	sdl.K_LEFT:      action.PadLeft,
	sdl.K_RIGHT:     action.PadRight,
}

func (s *Backend) handleKeyDown(key sdl.Keycode, repeat uint8) []backend.InputEvent {
	if act, exists := keyMapping[key]; exists {
		// For initial press, send Press event
		// For held keys (repeat > 0), send Hold event
		if repeat == 0 {
			return []backend.InputEvent{{Action: act, Type: event.Press}}
		}
		return []backend.InputEvent{{Action: act, Type: event.Hold}}
	}
	return nil
}

func (s *Backend) handleKeyUp(key sdl.Keycode) []backend.InputEvent {
	if act, exists := keyMapping[key]; exists {
		// Only pad controls carry a Release event
		if action.GetInfo(act).Category == action.CategoryGameInput {
			return []backend.InputEvent{{Action: act, Type: event.Release}}
		}
	}
	return nil
}

// renderFrame streams the framebuffer into the texture. The framebuffer's
// 0xAARRGGBB words match ARGB8888 on little-endian hosts byte for byte.
func (s *Backend) renderFrame(frame *video.FrameBuffer) {
	frameData := frame.ToSlice()

	for i, pixel := range frameData {
		idx := i * display.RGBABytesPerPixel
		s.pixelBuffer[idx] = byte(pixel)
		s.pixelBuffer[idx+1] = byte(pixel >> 8)
		s.pixelBuffer[idx+2] = byte(pixel >> 16)
		s.pixelBuffer[idx+3] = byte(pixel >> 24)
	}

	s.texture.Update(nil, unsafe.Pointer(&s.pixelBuffer[0]), video.FramebufferWidth*display.RGBABytesPerPixel)

	s.renderer.SetDrawColor(0, 0, 0, display.FullAlpha)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}
