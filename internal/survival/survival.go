// Package survival runs the once-per-second vital signs: oxygen drain and
// recovery, suffocation and starvation damage, and the alerts they raise.
package survival

import (
	"math"

	"chosenoffset.com/deepdive/internal/player"
)

// Alert is a one-shot notification raised by the clock.
type Alert int

const (
	AlertLowOxygen Alert = iota
	AlertOxygenRestored
	AlertSuffocating
	AlertDeath
)

func (a Alert) String() string {
	switch a {
	case AlertLowOxygen:
		return "low-oxygen"
	case AlertOxygenRestored:
		return "oxygen-restored"
	case AlertSuffocating:
		return "suffocating"
	case AlertDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Config holds survival tuning. Rates are per tick (one tick per second).
type Config struct {
	SubmergedBelow    float64 `json:"submerged_below"` // y below this drains oxygen
	OxygenDrain       float64 `json:"oxygen_drain"`
	OxygenRegen       float64 `json:"oxygen_regen"`
	LowOxygen         float64 `json:"low_oxygen"`
	SuffocationDamage float64 `json:"suffocation_damage"`
	StarvationDamage  float64 `json:"starvation_damage"`
}

// DefaultConfig returns the stock rates.
func DefaultConfig() Config {
	return Config{
		SubmergedBelow:    -2,
		OxygenDrain:       1,
		OxygenRegen:       2,
		LowOxygen:         30,
		SuffocationDamage: 5,
		StarvationDamage:  1,
	}
}

// Clock applies survival rules on each tick.
type Clock struct {
	cfg Config

	lowArmed   bool
	suffocated bool
	dead       bool

	// OnAlert is called synchronously from Tick.
	OnAlert func(Alert)
}

// NewClock creates a clock with alerts armed.
func NewClock(cfg Config) *Clock {
	return &Clock{cfg: cfg, lowArmed: true}
}

// Config returns the active tuning.
func (c *Clock) Config() Config { return c.cfg }

// Submerged reports whether p is deep enough to be breathing from the tank.
func (c *Clock) Submerged(p *player.State) bool {
	return p.Pos.Y() < c.cfg.SubmergedBelow
}

// Tick advances one survival second.
func (c *Clock) Tick(p *player.State) {
	if p == nil || c.dead {
		return
	}
	s := &p.Stats

	if c.Submerged(p) {
		s.Oxygen = math.Max(0, s.Oxygen-c.cfg.OxygenDrain)
	} else {
		s.Oxygen = math.Min(s.MaxOxygen, s.Oxygen+c.cfg.OxygenRegen)
	}

	switch {
	case s.Oxygen < c.cfg.LowOxygen && c.lowArmed:
		c.lowArmed = false
		c.emit(AlertLowOxygen)
	case s.Oxygen >= c.cfg.LowOxygen && !c.lowArmed:
		c.lowArmed = true
		c.emit(AlertOxygenRestored)
	}

	damage := 0.0
	if s.Oxygen <= 0 {
		if !c.suffocated {
			c.suffocated = true
			c.emit(AlertSuffocating)
		}
		damage += c.cfg.SuffocationDamage
	} else {
		c.suffocated = false
	}
	if s.Hunger <= 0 {
		damage += c.cfg.StarvationDamage
	}
	if s.Thirst <= 0 {
		damage += c.cfg.StarvationDamage
	}

	if damage > 0 {
		s.Health = math.Max(0, s.Health-damage)
		if s.Health == 0 {
			c.dead = true
			c.emit(AlertDeath)
		}
	}
}

// Reset re-arms every alert, for a new session or respawn.
func (c *Clock) Reset() {
	c.lowArmed = true
	c.suffocated = false
	c.dead = false
}

func (c *Clock) emit(a Alert) {
	if c.OnAlert != nil {
		c.OnAlert(a)
	}
}
