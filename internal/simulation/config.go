// Package simulation gathers the tuning for every subsystem into one file so a
// session can be reshaped without recompiling.
package simulation

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"chosenoffset.com/deepdive/internal/audio"
	"chosenoffset.com/deepdive/internal/input"
	"chosenoffset.com/deepdive/internal/interaction"
	"chosenoffset.com/deepdive/internal/physics"
	"chosenoffset.com/deepdive/internal/render/raycast"
	"chosenoffset.com/deepdive/internal/survival"
	"chosenoffset.com/deepdive/internal/world/entity"
	"chosenoffset.com/deepdive/internal/world/terrain"
)

// Config holds all simulation rules for a session.
type Config struct {
	// World generation
	Terrain  terrain.Config        `json:"terrain"`
	Populate entity.PopulateConfig `json:"populate"`
	Wander   entity.WanderConfig   `json:"wander"`

	// Per-tick rules
	Movement    physics.Config     `json:"movement"`
	Survival    survival.Config    `json:"survival"`
	Interaction interaction.Config `json:"interaction"`

	// Presentation
	Render raycast.Config `json:"render"`
	Input  input.Config   `json:"input"`
	Audio  audio.Config   `json:"audio"`

	// Tick rates
	Timing TimingConfig `json:"timing"`

	// Spawn point (x, y, z)
	Spawn [3]float64 `json:"spawn"`
}

// TimingConfig sets how often each fixed-rate system runs.
type TimingConfig struct {
	Movement time.Duration `json:"movement"`
	Survival time.Duration `json:"survival"`
	Wander   time.Duration `json:"wander"`
}

// DefaultConfig returns the stock landing-site session.
func DefaultConfig() *Config {
	return &Config{
		Terrain:     terrain.DefaultConfig(),
		Populate:    entity.DefaultPopulateConfig(),
		Wander:      entity.DefaultWanderConfig(),
		Movement:    physics.DefaultConfig(),
		Survival:    survival.DefaultConfig(),
		Interaction: interaction.DefaultConfig(),
		Render:      raycast.DefaultConfig(),
		Input:       input.DefaultConfig(),
		Audio:       audio.DefaultConfig(),
		Timing: TimingConfig{
			Movement: physics.TickInterval * time.Millisecond,
			Survival: time.Second,
			Wander:   100 * time.Millisecond,
		},
		Spawn: [3]float64{60, -2, 55},
	}
}

// LoadConfig loads simulation config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would stall or break a session.
func (c *Config) Validate() error {
	if err := c.Terrain.Validate(); err != nil {
		return fmt.Errorf("invalid terrain config: %w", err)
	}
	if c.Timing.Movement <= 0 || c.Timing.Survival <= 0 || c.Timing.Wander <= 0 {
		return fmt.Errorf("tick intervals must be positive, got %+v", c.Timing)
	}
	if c.Movement.PitchMin > c.Movement.PitchMax {
		return fmt.Errorf("pitch range is inverted: [%v, %v]", c.Movement.PitchMin, c.Movement.PitchMax)
	}
	if c.Movement.MinY > c.Movement.SurfaceY {
		return fmt.Errorf("min depth %v is above the surface %v", c.Movement.MinY, c.Movement.SurfaceY)
	}
	return nil
}

// ApplyEnv overrides selected fields from DEEPDIVE_* environment variables.
// Unparseable values are skipped.
func (c *Config) ApplyEnv() {
	if v, ok := envInt("DEEPDIVE_SEED"); ok {
		c.Terrain.Seed = int64(v)
	}
	if v, ok := envFloat("DEEPDIVE_SPEED_SCALE"); ok && v > 0 {
		c.Movement.SpeedScale = v
	}
	if v, ok := envFloat("DEEPDIVE_OXYGEN_DRAIN"); ok && v >= 0 {
		c.Survival.OxygenDrain = v
	}
	if v, ok := envFloat("DEEPDIVE_SENSITIVITY"); ok && v > 0 {
		c.Movement.MouseSensitivity = v
	}
	if v, ok := os.LookupEnv("DEEPDIVE_INVERT_Y"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Movement.InvertY = b
		}
	}
	c.Audio = c.Audio.ApplyEnv()
}

func envInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func envFloat(key string) (float64, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}
