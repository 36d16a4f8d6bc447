package term

import (
	"slices"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/deepdive/internal/render"
)

type eventKind int

const (
	evKeyDown eventKind = iota
	evKeyUp
	evMove
	evLock
)

type event struct {
	kind   eventKind
	name   string
	dx, dy float64
	locked bool
}

// InputManager turns terminal events into the sink's key and pointer calls.
// Key releases are synthesized when a key has not repeated for the hold
// timeout.
type InputManager struct {
	mu      sync.Mutex
	pending []event
	held    map[string]time.Time

	hold  time.Duration
	scale float64

	locked       bool
	haveLast     bool
	lastX, lastY int
}

// NewInputManager creates a manager with the given hold timeout and mouse
// scale.
func NewInputManager(hold time.Duration, scale float64) *InputManager {
	return &InputManager{held: make(map[string]time.Time), hold: hold, scale: scale}
}

// KeyName maps a terminal key event to the game's key name, or "" for keys
// the game ignores.
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "arrowup"
	case tcell.KeyDown:
		return "arrowdown"
	case tcell.KeyLeft:
		return "arrowleft"
	case tcell.KeyRight:
		return "arrowright"
	case tcell.KeyEscape:
		return "escape"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return string(unicode.ToLower(r))
		}
	}
	return ""
}

func (m *InputManager) keyEvent(ev *tcell.EventKey, now time.Time) {
	name := KeyName(ev)
	if name == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, down := m.held[name]; !down {
		m.pending = append(m.pending, event{kind: evKeyDown, name: name})
	}
	m.held[name] = now
}

// expire releases keys not seen within the hold timeout.
func (m *InputManager) expire(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var gone []string
	for name, seen := range m.held {
		if now.Sub(seen) > m.hold {
			gone = append(gone, name)
		}
	}
	slices.Sort(gone)
	for _, name := range gone {
		delete(m.held, name)
		m.pending = append(m.pending, event{kind: evKeyUp, name: name})
	}
}

// mouseEvent locks the pointer on the first left click and reports cell
// motion as look deltas while locked.
func (m *InputManager) mouseEvent(ev *tcell.EventMouse) {
	x, y := ev.Position()
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.Buttons()&tcell.Button1 != 0 && !m.locked {
		m.locked = true
		m.haveLast = false
		m.pending = append(m.pending, event{kind: evLock, locked: true})
	}
	if m.locked && m.haveLast {
		dx, dy := x-m.lastX, y-m.lastY
		if dx != 0 || dy != 0 {
			m.pending = append(m.pending, event{kind: evMove, dx: float64(dx) * m.scale, dy: float64(dy) * m.scale})
		}
	}
	m.lastX, m.lastY, m.haveLast = x, y, true
}

// Poll forwards queued events to sink in arrival order.
func (m *InputManager) Poll(sink render.InputSink) {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, ev := range batch {
		switch ev.kind {
		case evKeyDown:
			sink.KeyDown(ev.name)
		case evKeyUp:
			sink.KeyUp(ev.name)
		case evMove:
			sink.MouseMove(ev.dx, ev.dy)
		case evLock:
			sink.SetPointerLock(ev.locked)
		}
	}
}

// PointerLocked reports whether mouse motion is being captured.
func (m *InputManager) PointerLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}

// ReleasePointer stops capturing mouse motion.
func (m *InputManager) ReleasePointer() {
	m.mu.Lock()
	m.locked = false
	m.haveLast = false
	m.mu.Unlock()
}
