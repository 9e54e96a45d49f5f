package input

import (
	"time"

	"github.com/pxlsplat/goadvance/goadvance/input/action"
	"github.com/pxlsplat/goadvance/goadvance/input/event"
	"github.com/pxlsplat/goadvance/goadvance/memory"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// KeypadWriter is the slice of the memory unit the manager drives: pad
// actions become KEYINPUT updates.
type KeypadWriter interface {
	KeyPress(key memory.Key)
	KeyRelease(key memory.Key)
}

// Manager handles input actions and their associated callbacks
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	keypad        KeypadWriter
}

func NewManager(keypad KeypadWriter) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		keypad:        keypad,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	if m.lastTriggered[act] == nil {
		m.lastTriggered[act] = make(map[event.Type]time.Time)
	}

	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	// Debounce Press and Release events for actions flagged Debounce (never
	// the pad controls)
	if info := action.GetInfo(act); info.Debounce && (evt == event.Press || evt == event.Release) {
		now := time.Now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		lastTime := m.lastTriggered[act][evt]
		if now.Sub(lastTime) < debounceDuration {
			return
		}
		m.lastTriggered[act][evt] = now
	}

	// Pad controls are written straight to the keypad register
	if m.keypad != nil {
		if key, ok := padKey(act); ok {
			switch evt {
			case event.Press:
				m.keypad.KeyPress(key)
			case event.Release:
				m.keypad.KeyRelease(key)
			}
			return
		}
	}

	// Other emulator actions
	if m.handlers[act] != nil && len(m.handlers[act][evt]) > 0 {
		for _, callback := range m.handlers[act][evt] {
			callback()
		}
	}
}

// padKey maps pad actions to keypad keys.
func padKey(act action.Action) (memory.Key, bool) {
	switch act {
	case action.PadButtonA:
		return memory.KeyA, true
	case action.PadButtonB:
		return memory.KeyB, true
	case action.PadButtonL:
		return memory.KeyL, true
	case action.PadButtonR:
		return memory.KeyR, true
	case action.PadButtonStart:
		return memory.KeyStart, true
	case action.PadButtonSelect:
		return memory.KeySelect, true
	case action.PadUp:
		return memory.KeyUp, true
	case action.PadDown:
		return memory.KeyDown, true
	case action.PadLeft:
		return memory.KeyLeft, true
	case action.PadRight:
		return memory.KeyRight, true
	default:
		return 0, false
	}
}
