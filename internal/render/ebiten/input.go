package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/deepdive/internal/render"
)

// keyNames maps the keys the game listens to onto backend-neutral names.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
	ebiten.KeyC:          "c",
	ebiten.KeyE:          "e",
	ebiten.KeyF:          "f",
	ebiten.KeyI:          "i",
	ebiten.KeyP:          "p",
	ebiten.KeyArrowUp:    "arrowup",
	ebiten.KeyArrowDown:  "arrowdown",
	ebiten.KeyArrowLeft:  "arrowleft",
	ebiten.KeyArrowRight: "arrowright",
	ebiten.KeySpace:      "space",
	ebiten.KeyShiftLeft:  "shift",
	ebiten.KeyShiftRight: "shift",
	ebiten.KeyEscape:     "escape",
	ebiten.KeyEnter:      "enter",
	ebiten.KeyTab:        "tab",
	ebiten.KeyDigit1:     "1",
	ebiten.KeyDigit2:     "2",
	ebiten.KeyDigit3:     "3",
	ebiten.KeyDigit4:     "4",
	ebiten.KeyDigit5:     "5",
	ebiten.KeyDigit6:     "6",
	ebiten.KeyDigit7:     "7",
	ebiten.KeyDigit8:     "8",
	ebiten.KeyDigit9:     "9",
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct {
	keys     []ebiten.Key
	touchIDs []ebiten.TouchID

	captured     bool
	lastX, lastY int
}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// Poll forwards this frame's key transitions, captured mouse motion and
// touches to sink. A left click captures the cursor; losing window focus
// releases it.
func (m *EbitenInputManager) Poll(sink render.InputSink) {
	m.keys = inpututil.AppendJustPressedKeys(m.keys[:0])
	for _, k := range m.keys {
		if name, ok := keyNames[k]; ok {
			sink.KeyDown(name)
		}
	}
	m.keys = inpututil.AppendJustReleasedKeys(m.keys[:0])
	for _, k := range m.keys {
		if name, ok := keyNames[k]; ok {
			sink.KeyUp(name)
		}
	}

	if !ebiten.IsFocused() && m.captured {
		m.ReleasePointer()
		sink.SetPointerLock(false)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !m.captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		m.captured = true
		m.lastX, m.lastY = ebiten.CursorPosition()
		sink.SetPointerLock(true)
	}

	if m.captured {
		if ebiten.CursorMode() != ebiten.CursorModeCaptured {
			// The platform released the cursor (e.g. escape in a browser).
			m.captured = false
			sink.SetPointerLock(false)
		} else {
			x, y := ebiten.CursorPosition()
			if dx, dy := x-m.lastX, y-m.lastY; dx != 0 || dy != 0 {
				sink.MouseMove(float64(dx), float64(dy))
			}
			m.lastX, m.lastY = x, y
		}
	}

	m.touchIDs = inpututil.AppendJustPressedTouchIDs(m.touchIDs[:0])
	for _, id := range m.touchIDs {
		x, y := ebiten.TouchPosition(id)
		sink.TouchStart(int(id), float64(x), float64(y))
	}
	m.touchIDs = ebiten.AppendTouchIDs(m.touchIDs[:0])
	for _, id := range m.touchIDs {
		x, y := ebiten.TouchPosition(id)
		sink.TouchMove(int(id), float64(x), float64(y))
	}
	m.touchIDs = inpututil.AppendJustReleasedTouchIDs(m.touchIDs[:0])
	for _, id := range m.touchIDs {
		sink.TouchEnd(int(id))
	}
}

// PointerLocked reports whether the cursor is captured.
func (m *EbitenInputManager) PointerLocked() bool {
	return m.captured
}

// ReleasePointer shows the cursor again.
func (m *EbitenInputManager) ReleasePointer() {
	if m.captured {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		m.captured = false
	}
}
