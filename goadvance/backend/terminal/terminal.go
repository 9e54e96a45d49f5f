package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pxlsplat/goadvance/goadvance/backend"
	"github.com/pxlsplat/goadvance/goadvance/backend/terminal/render"
	"github.com/pxlsplat/goadvance/goadvance/debug"
	"github.com/pxlsplat/goadvance/goadvance/input"
	"github.com/pxlsplat/goadvance/goadvance/input/action"
	"github.com/pxlsplat/goadvance/goadvance/input/event"
	"github.com/pxlsplat/goadvance/goadvance/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	registerHeight = 13
	minTermWidth   = 100
	minTermHeight  = 40
)

// Key expiry timeout - slightly longer than typical key repeat interval
const keyTimeout = 100 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal
// rendering. The framebuffer draws with half-block characters, two pixels
// per cell, using tcell's 24 bit colors since the frames are true color.
type Backend struct {
	screen     tcell.Screen
	running    bool
	logBuffer  *render.LogBuffer
	logLevel   slog.Level
	config     backend.BackendConfig
	eventQueue []backend.InputEvent // Collect events to return

	keyStates  map[action.Action]time.Time // Last time each key was pressed
	activeKeys map[action.Action]bool      // Keys active in previous frame

	// For accessing emulator state
	debugProvider backend.DebugDataProvider

	// Snapshot state
	currentFrame *video.FrameBuffer // Store current frame for snapshot generation
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		logLevel: slog.LevelInfo,
	}
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.debugProvider = config.DebugProvider
	t.eventQueue = make([]backend.InputEvent, 0)
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	t.screen = screen
	t.running = true

	// Route logs into the side panel instead of stderr
	t.logBuffer = render.NewLogBuffer(100)
	handler := render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)
	slog.SetDefault(slog.New(handler))

	slog.Info("Terminal backend initialized")
	if config.ShowDebug {
		slog.Debug("Debug mode enabled")
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Set up signal handling for graceful shutdown
	go t.handleSignals()

	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	now := time.Now()

	// Poll for input events synchronously
	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	// Track which keys are currently active this frame
	currentlyActive := make(map[action.Action]bool)

	// Check all tracked keys and generate appropriate events
	for act, lastPressed := range t.keyStates {
		info := action.GetInfo(act)

		// Skip non-game inputs (they're handled via eventQueue)
		if info.Category != action.CategoryGameInput {
			continue
		}

		if now.Sub(lastPressed) < keyTimeout {
			currentlyActive[act] = true

			if !t.activeKeys[act] {
				slog.Debug("Key press", "action", info.Description)
				events = append(events, backend.InputEvent{Action: act, Type: event.Press})
			} else {
				events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
			}
		} else {
			// Key has expired - remove it
			delete(t.keyStates, act)
		}
	}

	// Check for released keys (were active last frame but not this frame)
	for act := range t.activeKeys {
		if !currentlyActive[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive

	// Add non-game input events (pause, debug, etc)
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	if !t.running {
		return events, nil
	}

	t.currentFrame = frame
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(t.currentFrame)
	case action.EmulatorDebugToggle:
		t.config.ShowDebug = !t.config.ShowDebug
		if t.config.ShowDebug {
			slog.Info("Debug display enabled")
		} else {
			slog.Info("Debug display disabled")
		}
	case action.EmulatorDebugUpdate:
		t.screen.Sync()
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	<-signals
	t.running = false
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:     "Enter",
	tcell.KeyBackspace: "Backspace",
	tcell.KeyUp:        "Up",
	tcell.KeyDown:      "Down",
	tcell.KeyLeft:      "Left",
	tcell.KeyRight:     "Right",
	tcell.KeyEscape:    "Escape",
	tcell.KeyF1:        "F1",
	tcell.KeyF2:        "F2",
	tcell.KeyF3:        "F3",
	tcell.KeyF4:        "F4",
	tcell.KeyF5:        "F5",
	tcell.KeyF9:        "F9",
	tcell.KeyF10:       "F10",
	tcell.KeyF11:       "F11",
}

// tcellRuneNameMap converts runes to key names used in default mappings
var tcellRuneNameMap = map[rune]string{
	'z': "z",
	'x': "x",
	'a': "a",
	's': "s",
	'p': "p",
	'f': "f",
	'n': "n",
	'q': "q",
	' ': "Space",
	'1': "1",
	'2': "2",
	'3': "3",
	'4': "4",
	'+': "+",
	'=': "=",
	'-': "-",
	'_': "_",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)

	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}

	mapping[tcell.KeyCtrlC] = action.EmulatorQuit

	return mapping
}

// buildRuneMapping creates the rune mapping from default mappings
func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)

	for r, keyName := range tcellRuneNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[r] = act
		}
	}

	return mapping
}

var keyMapping = buildKeyMapping()
var runeMapping = buildRuneMapping()

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	if act, exists := keyMapping[ev.Key()]; exists {
		t.dispatchAction(act, now)
		return
	}

	if ev.Key() == tcell.KeyRune {
		if act, exists := runeMapping[ev.Rune()]; exists {
			t.dispatchAction(act, now)
		}
	}
}

func (t *Backend) dispatchAction(act action.Action, now time.Time) {
	if act == action.EmulatorQuit {
		t.running = false
	}

	info := action.GetInfo(act)
	if info.Category == action.CategoryGameInput {
		// Terminals auto-repeat rather than report held keys, so d-pad
		// directions displace each other to stay exclusive.
		if act == action.PadUp || act == action.PadDown ||
			act == action.PadLeft || act == action.PadRight {
			delete(t.keyStates, action.PadUp)
			delete(t.keyStates, action.PadDown)
			delete(t.keyStates, action.PadLeft)
			delete(t.keyStates, action.PadRight)
		}
		t.keyStates[act] = now
	} else {
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
	}
}

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel
	switch direction {
	case -1:
		switch t.logLevel {
		case slog.LevelDebug:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelError
		}
	case 1:
		switch t.logLevel {
		case slog.LevelError:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelDebug
		}
	}
	if oldLevel != t.logLevel {
		slog.Info("Log filter changed", "from", oldLevel, "to", t.logLevel)
	}
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		t.screen.Clear()
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		for i, ch := range msg {
			t.screen.SetContent(i, termHeight/2, ch, nil, style)
		}
		return
	}

	t.screen.Clear()

	dividerX := width + 2
	rightPanelX := dividerX + 1
	rightPanelWidth := termWidth - rightPanelX
	if rightPanelWidth < 0 {
		rightPanelWidth = 0
	}

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawFrame(frame)

	logsY := 1
	if t.config.ShowDebug && t.debugProvider != nil {
		t.drawRegisters(rightPanelX, 1, rightPanelWidth, termHeight)
		logsY = registerHeight + 2
	}
	t.drawLogs(rightPanelX, logsY, rightPanelWidth, termHeight)
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight; y++ {
		if dividerX < termWidth {
			t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
		}
	}

	title := " Game Boy Advance "
	for i, ch := range title {
		if i+1 < dividerX {
			t.screen.SetContent(1+i, 0, ch, nil, titleStyle)
		}
	}

	if t.config.ShowDebug {
		registerEndY := registerHeight + 1
		if registerEndY < termHeight {
			for x := dividerX + 1; x < termWidth; x++ {
				t.screen.SetContent(x, registerEndY, '─', nil, borderStyle)
			}
			t.screen.SetContent(dividerX, registerEndY, '├', nil, borderStyle)
		}

		title = " Display Registers "
		startX := dividerX + 2
		for i, ch := range title {
			if startX+i < termWidth {
				t.screen.SetContent(startX+i, 0, ch, nil, titleStyle)
			}
		}
	}

	helpText := " F10=debug view SPACE=pause N=dot F=frame F9=snapshot | Logs: +/- filter "
	for i, ch := range helpText {
		if i < termWidth {
			t.screen.SetContent(i, termHeight-1, ch, nil, borderStyle)
		}
	}
}

// drawFrame draws the framebuffer two rows per cell with '▀': the upper
// pixel colors the foreground, the lower one the background.
func (t *Backend) drawFrame(frame *video.FrameBuffer) {
	frameData := frame.ToSlice()
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := frameData[y*width+x]
			bottom := top
			if y+1 < height {
				bottom = frameData[(y+1)*width+x]
			}

			fg := tcell.NewRGBColor(render.SplitARGB(top))
			bg := tcell.NewRGBColor(render.SplitARGB(bottom))
			style := tcell.StyleDefault.Foreground(fg).Background(bg)
			t.screen.SetContent(x, y/2+1, '▀', nil, style)
		}
	}
}

func (t *Backend) drawRegisters(startX, startY, width, termHeight int) {
	debugData := t.debugProvider.ExtractDebugData()
	if debugData == nil || debugData.Video == nil {
		return
	}
	if width <= 0 || startY >= termHeight {
		return
	}

	statusStr := "RUNNING"
	switch debugData.DebuggerState {
	case debug.DebuggerPaused:
		statusStr = "PAUSED"
	case debug.DebuggerStep:
		statusStr = "STEP"
	case debug.DebuggerStepFrame:
		statusStr = "FRAME"
	}

	v := debugData.Video
	lines := []string{
		fmt.Sprintf("Status: %s  Frame: %d", statusStr, debugData.FrameCount),
		fmt.Sprintf("DISPCNT: 0x%04X  (mode %d)", v.Dispcnt, v.Dispcnt&7),
		fmt.Sprintf("DISPSTAT: 0x%04X  VCOUNT: %d", v.Dispstat, v.Vcount),
		fmt.Sprintf("BG0CNT: 0x%04X  BG1CNT: 0x%04X", v.BGCnt[0], v.BGCnt[1]),
		fmt.Sprintf("BG2CNT: 0x%04X  BG3CNT: 0x%04X", v.BGCnt[2], v.BGCnt[3]),
		fmt.Sprintf("IE: 0x%04X  IF: 0x%04X", debugData.InterruptEnable, debugData.InterruptFlags),
	}
	if debugData.CPU != nil {
		lines = append(lines,
			fmt.Sprintf("PC: 0x%08X  IRQs: %d", debugData.CPU.PC, debugData.CPU.IRQs),
			fmt.Sprintf("Cycles: %d", debugData.CPU.Cycles))
	}
	if debugData.Background != nil {
		lines = append(lines, debugData.Background.FormatSummary())
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines {
		y := startY + i
		if y >= termHeight || y >= startY+registerHeight {
			break
		}
		if len(line) > width {
			line = line[:width]
		}
		for j, ch := range line {
			t.screen.SetContent(startX+j, y, ch, nil, style)
		}
	}
}

func (t *Backend) drawLogs(startX, startY, width, termHeight int) {
	if t.logBuffer == nil || width <= 0 {
		return
	}

	maxLines := termHeight - startY - 1
	if maxLines <= 0 {
		return
	}

	entries := t.logBuffer.GetRecent(maxLines)
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)

	shown := 0
	for _, entry := range entries {
		if entry.Level < t.logLevel {
			continue
		}
		line := render.FormatLogEntry(entry)
		if len(line) > width {
			line = line[:width]
		}
		y := startY + shown
		if y >= termHeight-1 {
			break
		}
		for j, ch := range line {
			t.screen.SetContent(startX+j, y, ch, nil, style)
		}
		shown++
	}
}
