// Package settings holds the user-facing options (graphics tier, volume and
// field of view) that the renderer and integrator read every tick.
package settings

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
)

// Tier is the graphics quality level. Tiers are ordered: Low < Medium < High < Ultra.
type Tier int

const (
	Low Tier = iota
	Medium
	High
	Ultra
)

var tierNames = [...]string{"low", "medium", "high", "ultra"}

// String returns the lowercase tier name.
func (t Tier) String() string {
	if t < Low || t > Ultra {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier converts a tier name (case-insensitive) into a Tier.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return Low, fmt.Errorf("unknown graphics tier %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Next returns the next higher tier, saturating at Ultra.
func (t Tier) Next() Tier {
	if t >= Ultra {
		return Ultra
	}
	return t + 1
}

// Prev returns the next lower tier, saturating at Low.
func (t Tier) Prev() Tier {
	if t <= Low {
		return Low
	}
	return t - 1
}

// Profile is the per-tier render budget.
type Profile struct {
	ColumnStride   int     // Screen columns covered by one ray
	RenderDistance float64 // World units before a ray gives up
	MarchSteps     int     // Fixed increments per ray
	Particles      int     // Floating particles drawn underwater
}

// Profile returns the render budget for the tier. Coarser strides and shorter
// rays at lower tiers trade resolution for cost.
func (t Tier) Profile() Profile {
	var p Profile
	switch t {
	case Low:
		p = Profile{ColumnStride: 8, RenderDistance: 25, Particles: 40}
	case Medium:
		p = Profile{ColumnStride: 4, RenderDistance: 35, Particles: 40}
	case High:
		p = Profile{ColumnStride: 2, RenderDistance: 45, Particles: 60}
	default:
		p = Profile{ColumnStride: 1, RenderDistance: 55, Particles: 100}
	}
	p.MarchSteps = int(math.Floor(p.RenderDistance * 1.5))
	return p
}

// Field of view limits in radians.
var (
	MinFOV = 60 * math.Pi / 180
	MaxFOV = 120 * math.Pi / 180
)

// Settings are mutated only by explicit user action and take effect on the
// next render tick.
type Settings struct {
	Graphics Tier    `json:"graphics"`
	Volume   int     `json:"volume"` // 0-100
	FOV      float64 `json:"fov"`    // Radians
}

// Default returns the settings a fresh install starts with.
func Default() Settings {
	return Settings{
		Graphics: Medium,
		Volume:   70,
		FOV:      75 * math.Pi / 180,
	}
}

// Normalized returns a copy with every field clamped into its valid range.
// Non-finite FOV values fall back to the default.
func (s Settings) Normalized() Settings {
	if s.Graphics < Low {
		s.Graphics = Low
	}
	if s.Graphics > Ultra {
		s.Graphics = Ultra
	}
	s.Volume = max(0, min(100, s.Volume))
	if math.IsNaN(s.FOV) || math.IsInf(s.FOV, 0) {
		s.FOV = Default().FOV
	}
	s.FOV = math.Max(MinFOV, math.Min(MaxFOV, s.FOV))
	return s
}

// FOVDegrees returns the field of view rounded to whole degrees.
func (s Settings) FOVDegrees() int {
	return int(math.Round(s.FOV * 180 / math.Pi))
}

// WithFOVDegrees returns a copy with the field of view set from degrees.
func (s Settings) WithFOVDegrees(deg int) Settings {
	s.FOV = float64(deg) * math.Pi / 180
	return s.Normalized()
}

// Profile is shorthand for s.Graphics.Profile().
func (s Settings) Profile() Profile {
	return s.Graphics.Profile()
}

// Load reads settings from a JSON file, returning defaults when it does not exist.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read settings: %w", err)
	}

	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse settings: %w", err)
	}
	return s.Normalized(), nil
}

// Validate reports the first field outside its valid range.
func (s Settings) Validate() error {
	switch {
	case s.Graphics < Low || s.Graphics > Ultra:
		return fmt.Errorf("graphics tier %d out of range", int(s.Graphics))
	case s.Volume < 0 || s.Volume > 100:
		return fmt.Errorf("volume %d out of range [0,100]", s.Volume)
	case math.IsNaN(s.FOV) || s.FOV < MinFOV || s.FOV > MaxFOV:
		return fmt.Errorf("fov %.1f° out of range [60,120]", s.FOV*180/math.Pi)
	}
	return nil
}

// Save writes the settings as indented JSON.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s.Normalized(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
