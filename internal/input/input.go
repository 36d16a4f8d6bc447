// Package input folds keyboard, mouse and touch events into a single movement
// intent plus a queue of discrete commands. Backends translate their native
// events into the string key names used here.
package input

import (
	"math"
	"strings"
)

// Intent is the normalized per-tick movement request. Each axis is in [-1, 1]:
// Forward is +forward/-back, Strafe is +right/-left, Vertical is +up/-down.
type Intent struct {
	Forward  float64
	Strafe   float64
	Vertical float64
}

// Zero reports whether the intent requests no movement.
func (i Intent) Zero() bool {
	return i.Forward == 0 && i.Strafe == 0 && i.Vertical == 0
}

// Finite reports whether every axis is a real number.
func (i Intent) Finite() bool {
	return finite(i.Forward) && finite(i.Strafe) && finite(i.Vertical)
}

// Action is a discrete command produced by a key press or UI button.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionBack      // escape / menu
	ActionCollect   // collect resource or open the fabricator
	ActionUse       // use the item in the selected quick slot
	ActionInventory // toggle inventory panel
	ActionPDA       // toggle PDA log
	ActionSlot      // select quick slot Command.Slot
)

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionConfirm:
		return "confirm"
	case ActionBack:
		return "back"
	case ActionCollect:
		return "collect"
	case ActionUse:
		return "use"
	case ActionInventory:
		return "inventory"
	case ActionPDA:
		return "pda"
	case ActionSlot:
		return "slot"
	default:
		return "none"
	}
}

// Command is a queued action. Slot is only meaningful for ActionSlot and is
// 0-based.
type Command struct {
	Action Action
	Slot   int
}

// Movement key bindings. Both WASD and arrows move; arrows also navigate menus.
var (
	forwardKeys = []string{"w", "arrowup"}
	backKeys    = []string{"s", "arrowdown"}
	leftKeys    = []string{"a", "arrowleft"}
	rightKeys   = []string{"d", "arrowright"}
	upKeys      = []string{"space"}
	downKeys    = []string{"shift", "c"}
)

// keyActions maps fresh key presses to commands.
var keyActions = map[string]Action{
	"arrowup":    ActionUp,
	"arrowdown":  ActionDown,
	"arrowleft":  ActionLeft,
	"arrowright": ActionRight,
	"enter":      ActionConfirm,
	"escape":     ActionBack,
	"e":          ActionCollect,
	"f":          ActionUse,
	"i":          ActionInventory,
	"tab":        ActionPDA,
	"p":          ActionPDA,
}

// aliases normalizes names different backends report for the same key.
var aliases = map[string]string{
	" ":          "space",
	"esc":        "escape",
	"return":     "enter",
	"up":         "arrowup",
	"down":       "arrowdown",
	"left":       "arrowleft",
	"right":      "arrowright",
	"shiftleft":  "shift",
	"shiftright": "shift",
}

// NormalizeKey lowercases a key name and maps backend-specific aliases.
func NormalizeKey(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	if name == " " {
		k = " "
	}
	if a, ok := aliases[k]; ok {
		return a
	}
	return k
}

// Config tunes touch handling.
type Config struct {
	// JoystickZone is the fraction of the screen width (from the left) where a
	// touch starts the movement joystick; the rest is look-drag.
	JoystickZone float64 `json:"joystick_zone"`

	// JoystickRadius is the drag distance in pixels that maps to full deflection.
	JoystickRadius float64 `json:"joystick_radius"`

	// DragScale converts look-drag pixels into mouse-equivalent deltas.
	DragScale float64 `json:"drag_scale"`
}

// DefaultConfig returns the stock touch layout.
func DefaultConfig() Config {
	return Config{JoystickZone: 0.4, JoystickRadius: 60, DragScale: 1.5}
}

type touch struct {
	joystick      bool
	startX, lastX float64
	startY, lastY float64
}

// Aggregator accumulates device events between ticks. It is not safe for
// concurrent use; backends feed it from the update goroutine.
type Aggregator struct {
	cfg Config

	keys   map[string]bool
	locked bool

	lookX, lookY float64

	joyX, joyY float64
	touches    map[int]*touch

	commands []Command

	width, height int
}

// NewAggregator creates an aggregator with no keys held.
func NewAggregator(cfg Config) *Aggregator {
	if cfg.JoystickRadius <= 0 {
		cfg.JoystickRadius = DefaultConfig().JoystickRadius
	}
	return &Aggregator{
		cfg:     cfg,
		keys:    make(map[string]bool),
		touches: make(map[int]*touch),
	}
}

// SetViewport records the screen size used to split touch zones.
func (a *Aggregator) SetViewport(w, h int) {
	a.width, a.height = w, h
}

// KeyDown marks a key as held. Repeated KeyDown without KeyUp is a no-op so
// auto-repeat neither doubles movement nor re-fires commands.
func (a *Aggregator) KeyDown(name string) {
	k := NormalizeKey(name)
	if k == "" || a.keys[k] {
		return
	}
	a.keys[k] = true

	if k >= "1" && k <= "9" && len(k) == 1 {
		a.commands = append(a.commands, Command{Action: ActionSlot, Slot: int(k[0] - '1')})
		return
	}
	if act, ok := keyActions[k]; ok {
		a.commands = append(a.commands, Command{Action: act})
	}
}

// KeyUp releases a key.
func (a *Aggregator) KeyUp(name string) {
	delete(a.keys, NormalizeKey(name))
}

// Held reports whether a key is currently down.
func (a *Aggregator) Held(name string) bool {
	return a.keys[NormalizeKey(name)]
}

// SetPointerLock records whether relative mouse movement is being captured.
func (a *Aggregator) SetPointerLock(locked bool) {
	a.locked = locked
}

// PointerLocked reports whether mouse look is active.
func (a *Aggregator) PointerLocked() bool {
	return a.locked
}

// MouseMove accumulates a relative mouse delta. Deltas are dropped unless the
// pointer is locked, and non-finite deltas are discarded.
func (a *Aggregator) MouseMove(dx, dy float64) {
	if !a.locked || !finite(dx) || !finite(dy) {
		return
	}
	a.lookX += dx
	a.lookY += dy
}

// LookDrag accumulates a touch look delta. Unlike MouseMove it does not need
// pointer lock.
func (a *Aggregator) LookDrag(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	a.lookX += dx * a.cfg.DragScale
	a.lookY += dy * a.cfg.DragScale
}

// Touch sets the joystick vector directly. Components are clamped to [-1, 1];
// x is strafe (+right) and y is screen-down (so -1 is forward).
func (a *Aggregator) Touch(jx, jy float64) {
	if !finite(jx) || !finite(jy) {
		return
	}
	a.joyX = clampUnit(jx)
	a.joyY = clampUnit(jy)
}

// TouchStart begins tracking a finger. Touches in the joystick zone drive
// movement; the rest drag the camera.
func (a *Aggregator) TouchStart(id int, x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	joy := a.width > 0 && x < float64(a.width)*a.cfg.JoystickZone
	a.touches[id] = &touch{joystick: joy, startX: x, startY: y, lastX: x, lastY: y}
}

// TouchMove updates a tracked finger.
func (a *Aggregator) TouchMove(id int, x, y float64) {
	t, ok := a.touches[id]
	if !ok || !finite(x) || !finite(y) {
		return
	}
	if t.joystick {
		dx, dy := x-t.startX, y-t.startY
		r := a.cfg.JoystickRadius
		if d := math.Hypot(dx, dy); d > r {
			dx, dy = dx/d*r, dy/d*r
		}
		a.Touch(dx/r, dy/r)
	} else {
		a.LookDrag(x-t.lastX, y-t.lastY)
	}
	t.lastX, t.lastY = x, y
}

// TouchEnd stops tracking a finger, recentering the joystick if it was one.
func (a *Aggregator) TouchEnd(id int) {
	t, ok := a.touches[id]
	if !ok {
		return
	}
	if t.joystick {
		a.joyX, a.joyY = 0, 0
	}
	delete(a.touches, id)
}

// Action queues a command from a UI button.
func (a *Aggregator) Action(cmd Command) {
	if cmd.Action == ActionNone {
		return
	}
	a.commands = append(a.commands, cmd)
}

// Intent combines held keys and the joystick into one normalized vector.
func (a *Aggregator) Intent() Intent {
	in := Intent{
		Forward:  axis(a.keys, forwardKeys, backKeys) - a.joyY,
		Strafe:   axis(a.keys, rightKeys, leftKeys) + a.joyX,
		Vertical: axis(a.keys, upKeys, downKeys),
	}
	in.Forward = clampUnit(in.Forward)
	in.Strafe = clampUnit(in.Strafe)
	return in
}

// TakeLook returns the accumulated look delta and resets it.
func (a *Aggregator) TakeLook() (dx, dy float64) {
	dx, dy = a.lookX, a.lookY
	a.lookX, a.lookY = 0, 0
	return dx, dy
}

// TakeCommands returns queued commands in arrival order and clears the queue.
func (a *Aggregator) TakeCommands() []Command {
	cmds := a.commands
	a.commands = nil
	return cmds
}

// Release drops every held key, touch and pending delta. Called when the game
// loses focus or leaves the playing state so nothing stays stuck down.
func (a *Aggregator) Release() {
	clear(a.keys)
	clear(a.touches)
	a.joyX, a.joyY = 0, 0
	a.lookX, a.lookY = 0, 0
}

func axis(keys map[string]bool, pos, neg []string) float64 {
	v := 0.0
	if anyHeld(keys, pos) {
		v++
	}
	if anyHeld(keys, neg) {
		v--
	}
	return v
}

func anyHeld(keys map[string]bool, names []string) bool {
	for _, n := range names {
		if keys[n] {
			return true
		}
	}
	return false
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
