// Package physics advances the player one fixed tick at a time: camera
// relative swimming, seabed collision and the surface cap.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deepdive/internal/input"
	"chosenoffset.com/deepdive/internal/player"
	"chosenoffset.com/deepdive/internal/world/terrain"
)

// TickInterval is the fixed movement step.
const TickInterval = 16 // milliseconds

// Seabed is the terrain surface the integrator collides with.
type Seabed interface {
	HeightAt(x, z float64) (float64, terrain.Material)
	ClampToBounds(x, z float64) (float64, float64)
}

// Config holds the movement tuning.
type Config struct {
	UnderwaterSpeed float64 `json:"underwater_speed"` // units per tick
	SurfaceSpeed    float64 `json:"surface_speed"`
	SpeedScale      float64 `json:"speed_scale"`

	Clearance           float64 `json:"clearance"`
	MinY                float64 `json:"min_y"`
	SurfaceY            float64 `json:"surface_y"`
	AboveWaterAllowance float64 `json:"above_water_allowance"`
	StrictAscend        bool    `json:"strict_ascend"` // ascend only while underwater

	HungerPerMove float64 `json:"hunger_per_move"`
	ThirstPerMove float64 `json:"thirst_per_move"`
	HandPhaseStep float64 `json:"hand_phase_step"`

	MouseSensitivity float64 `json:"mouse_sensitivity"`
	PitchMin         float64 `json:"pitch_min"`
	PitchMax         float64 `json:"pitch_max"`
	InvertY          bool    `json:"invert_y"`
}

// DefaultConfig returns the stock swim feel.
func DefaultConfig() Config {
	return Config{
		UnderwaterSpeed:  0.15,
		SurfaceSpeed:     0.10,
		SpeedScale:       1,
		Clearance:        1.5,
		MinY:             -300,
		SurfaceY:         0,
		HungerPerMove:    0.02,
		ThirstPerMove:    0.03,
		HandPhaseStep:    0.15,
		MouseSensitivity: 0.002,
		PitchMin:         -1.4,
		PitchMax:         1.4,
	}
}

// Outcome summarizes what a tick did.
type Outcome int

const (
	OutcomeIdle Outcome = iota
	OutcomeMoved
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeRejected:
		return "rejected"
	default:
		return "idle"
	}
}

// Result reports the effect of one Step.
type Result struct {
	Outcome Outcome
	Moved   bool       // position changed
	Clamped bool       // pushed up by the seabed
	Capped  bool       // held down by the surface or MinY
	Bounded bool       // x/z pulled back inside the world
	Delta   mgl64.Vec3 // applied displacement
}

// Integrator applies intents to a player.
type Integrator struct {
	cfg Config
	bed Seabed
}

// New creates an integrator colliding against bed.
func New(cfg Config, bed Seabed) *Integrator {
	if cfg.SpeedScale == 0 {
		cfg.SpeedScale = 1
	}
	if cfg.PitchMin > cfg.PitchMax {
		cfg.PitchMin, cfg.PitchMax = cfg.PitchMax, cfg.PitchMin
	}
	return &Integrator{cfg: cfg, bed: bed}
}

// Config returns the active tuning.
func (in *Integrator) Config() Config { return in.cfg }

// Step advances p by one tick of intent. It never fails: a non-finite intent
// or player position leaves p untouched and reports OutcomeRejected.
func (in *Integrator) Step(p *player.State, intent input.Intent) Result {
	if p == nil || !intent.Finite() || !finiteVec(p.Pos) || !finite(p.Rot.Yaw) {
		return Result{Outcome: OutcomeRejected}
	}

	cfg := in.cfg
	underwater := p.Pos.Y() < cfg.SurfaceY
	speed := cfg.SurfaceSpeed
	if underwater {
		speed = cfg.UnderwaterSpeed
	}
	speed *= cfg.SpeedScale

	fwd, right := p.Rot.Forward(), p.Rot.Right()
	f, s, v := clampUnit(intent.Forward), clampUnit(intent.Strafe), clampUnit(intent.Vertical)

	dx := (fwd.X()*f + right.X()*s) * speed
	dz := (fwd.Y()*f + right.Y()*s) * speed
	dy := 0.0
	if v > 0 && (underwater || !cfg.StrictAscend) {
		dy = v * speed
	} else if v < 0 {
		dy = v * speed
	}

	var res Result
	x, y, z := p.Pos.X()+dx, p.Pos.Y()+dy, p.Pos.Z()+dz

	if in.bed != nil {
		bx, bz := in.bed.ClampToBounds(x, z)
		res.Bounded = bx != x || bz != z
		x, z = bx, bz
	}

	if ceiling := cfg.SurfaceY + cfg.AboveWaterAllowance; y > ceiling {
		y = ceiling
		res.Capped = true
	}
	if y < cfg.MinY {
		y = cfg.MinY
		res.Capped = true
	}

	if in.bed != nil {
		ground, _ := in.bed.HeightAt(x, z)
		if y-ground < cfg.Clearance {
			y = ground + cfg.Clearance
			res.Clamped = true
		}
	}

	next := mgl64.Vec3{x, y, z}
	res.Delta = next.Sub(p.Pos)
	if next == p.Pos {
		res.Outcome = OutcomeIdle
		return res
	}

	p.Pos = next
	res.Moved = true
	res.Outcome = OutcomeMoved

	p.Stats.Hunger = math.Max(0, p.Stats.Hunger-cfg.HungerPerMove)
	p.Stats.Thirst = math.Max(0, p.Stats.Thirst-cfg.ThirstPerMove)
	if p.Pos.Y() < cfg.SurfaceY {
		p.HandPhase += cfg.HandPhaseStep
	}
	return res
}

// Look turns the camera by a pointer delta. Yaw grows with dx; pitch follows
// dy (inverted unless InvertY) and is clamped. Non-finite deltas are ignored
// and reported as false.
func (in *Integrator) Look(p *player.State, dx, dy float64) bool {
	if p == nil || !finite(dx) || !finite(dy) {
		return false
	}
	sens := in.cfg.MouseSensitivity
	p.Rot.Yaw += dx * sens
	if in.cfg.InvertY {
		p.Rot.Pitch += dy * sens
	} else {
		p.Rot.Pitch -= dy * sens
	}
	p.Rot.Pitch = mgl64.Clamp(p.Rot.Pitch, in.cfg.PitchMin, in.cfg.PitchMax)
	return true
}

func clampUnit(v float64) float64 {
	return mgl64.Clamp(v, -1, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
