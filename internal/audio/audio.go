// Package audio plays short synthesized cues for game events. Playback is
// fire-and-forget: callers never wait on or hear back from the device.
package audio

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Kind names a sound cue.
type Kind string

const (
	Collect  Kind = "collect"
	Use      Kind = "use"
	Craft    Kind = "craft"
	Alert    Kind = "alert"
	Deny     Kind = "deny"
	Splash   Kind = "splash"
	Death    Kind = "death"
	MenuMove Kind = "menu"
)

// Kinds lists every cue in a stable order.
var Kinds = []Kind{Collect, Use, Craft, Alert, Deny, Splash, Death, MenuMove}

// Player is the sound capability handed to the game.
type Player interface {
	Play(kind Kind)
	SetVolume(percent int)
	Close()
}

// Null discards every cue. It is used when audio is disabled or the device
// could not be opened.
type Null struct{}

func (Null) Play(Kind)     {}
func (Null) SetVolume(int) {}
func (Null) Close()        {}

// Config controls the output device.
type Config struct {
	Enabled    bool          `json:"enabled"`
	SampleRate int           `json:"sample_rate"`
	Buffer     time.Duration `json:"buffer"`
	Volume     float64       `json:"volume"` // master, 0-1
}

// DefaultConfig returns the stock device settings.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		SampleRate: 44100,
		Buffer:     100 * time.Millisecond,
		Volume:     0.7,
	}
}

// ApplyEnv overrides fields from DEEPDIVE_AUDIO_* environment variables.
// Malformed values are ignored.
func (c Config) ApplyEnv() Config {
	if v := os.Getenv("DEEPDIVE_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := os.Getenv("DEEPDIVE_AUDIO_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Volume = volumeFraction(n)
		}
	}
	if v := os.Getenv("DEEPDIVE_AUDIO_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SampleRate = n
		}
	}
	return c
}

// New opens the speaker. When audio is disabled it returns Null. When the
// device fails to open it logs, returns Null and the error so the game keeps
// running silently.
func New(cfg Config) (Player, error) {
	if !cfg.Enabled {
		return Null{}, nil
	}
	p, err := newSpeakerPlayer(cfg)
	if err != nil {
		log.Printf("Audio disabled: %v", err)
		return Null{}, fmt.Errorf("failed to initialize audio: %w", err)
	}
	return p, nil
}

// volumeFraction converts a 0-100 percentage to a 0-1 gain.
func volumeFraction(percent int) float64 {
	return float64(max(0, min(100, percent))) / 100
}
