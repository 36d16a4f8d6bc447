package game

// State is the top-level screen the game is showing.
type State int

const (
	StateMenu State = iota
	StateSettings
	StatePlaying
	StatePDA
	StateFabricator
	StateInventory
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateSettings:
		return "settings"
	case StatePlaying:
		return "playing"
	case StatePDA:
		return "pda"
	case StateFabricator:
		return "fabricator"
	case StateInventory:
		return "inventory"
	default:
		return "unknown"
	}
}

// Trigger is an event that may move the state machine.
type Trigger int

const (
	TriggerStart Trigger = iota
	TriggerOpenSettings
	TriggerApplySettings
	TriggerEscape
	TriggerTogglePDA
	TriggerOpenFabricator
	TriggerToggleInventory
	TriggerClose
)

func (t Trigger) String() string {
	switch t {
	case TriggerStart:
		return "start"
	case TriggerOpenSettings:
		return "open-settings"
	case TriggerApplySettings:
		return "apply-settings"
	case TriggerEscape:
		return "escape"
	case TriggerTogglePDA:
		return "toggle-pda"
	case TriggerOpenFabricator:
		return "open-fabricator"
	case TriggerToggleInventory:
		return "toggle-inventory"
	case TriggerClose:
		return "close"
	default:
		return "unknown"
	}
}

type edge struct {
	from State
	on   Trigger
}

// transitions lists every legal move. Anything else is ignored.
var transitions = map[edge]State{
	{StateMenu, TriggerStart}:        StatePlaying,
	{StateMenu, TriggerOpenSettings}: StateSettings,

	{StateSettings, TriggerApplySettings}: StateMenu,
	{StateSettings, TriggerEscape}:        StateMenu,
	{StateSettings, TriggerClose}:         StateMenu,

	{StatePlaying, TriggerEscape}:          StateMenu,
	{StatePlaying, TriggerTogglePDA}:       StatePDA,
	{StatePlaying, TriggerOpenFabricator}:  StateFabricator,
	{StatePlaying, TriggerToggleInventory}: StateInventory,

	{StatePDA, TriggerTogglePDA}: StatePlaying,
	{StatePDA, TriggerEscape}:    StatePlaying,
	{StatePDA, TriggerClose}:     StatePlaying,

	{StateFabricator, TriggerEscape}: StatePlaying,
	{StateFabricator, TriggerClose}:  StatePlaying,

	{StateInventory, TriggerToggleInventory}: StatePlaying,
	{StateInventory, TriggerEscape}:          StatePlaying,
	{StateInventory, TriggerClose}:           StatePlaying,
}

// Next returns the state reached from s on t, and whether the move is legal.
func Next(s State, t Trigger) (State, bool) {
	to, ok := transitions[edge{s, t}]
	if !ok {
		return s, false
	}
	return to, true
}

// Simulates reports whether the world advances while in s.
func (s State) Simulates() bool {
	return s == StatePlaying
}
