// Package player holds the diver's camera pose and vital stats.
package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation is the camera orientation in radians. Yaw is unbounded; pitch is
// kept within the integrator's limits.
type Rotation struct {
	Yaw   float64
	Pitch float64
}

// Forward returns the planar unit vector the camera faces, as (x, z).
func (r Rotation) Forward() mgl64.Vec2 {
	return mgl64.Vec2{math.Sin(r.Yaw), math.Cos(r.Yaw)}
}

// Right returns the planar unit vector to the camera's right, as (x, z).
func (r Rotation) Right() mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(r.Yaw), -math.Sin(r.Yaw)}
}

// Stats are the survival meters, each in [0, 100] except oxygen which is
// bounded by MaxOxygen.
type Stats struct {
	Health    float64
	Oxygen    float64
	MaxOxygen float64
	Hunger    float64
	Thirst    float64
}

// DefaultStats returns full meters.
func DefaultStats() Stats {
	return Stats{Health: 100, Oxygen: 100, MaxOxygen: 100, Hunger: 100, Thirst: 100}
}

// State is everything that changes about the player every tick.
type State struct {
	Pos   mgl64.Vec3 // x, y (signed depth, negative underwater), z
	Rot   Rotation
	Stats Stats

	// HandPhase drives the first-person hand animation.
	HandPhase float64

	// SelectedSlot is the active quick slot, 0-based.
	SelectedSlot int
}

// New creates a player at pos with full stats.
func New(pos mgl64.Vec3) *State {
	return &State{Pos: pos, Stats: DefaultStats()}
}

// Underwater reports whether the camera is below the surface.
func (s *State) Underwater() bool {
	return s.Pos.Y() < 0
}

// Depth returns how far below the surface the player is, in metres.
func (s *State) Depth() float64 {
	return math.Max(0, -s.Pos.Y())
}

// Alive reports whether health is above zero.
func (s *State) Alive() bool {
	return s.Stats.Health > 0
}
