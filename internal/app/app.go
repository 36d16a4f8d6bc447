// Package app loads configuration and runs the game on a render backend.
// The cmd binaries only pick the backend.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"chosenoffset.com/deepdive/internal/audio"
	"chosenoffset.com/deepdive/internal/game"
	"chosenoffset.com/deepdive/internal/render"
	"chosenoffset.com/deepdive/internal/settings"
	"chosenoffset.com/deepdive/internal/simulation"
)

func tierNames() []string {
	out := make([]string, 0, 4)
	for t := settings.Low; t <= settings.Ultra; t++ {
		out = append(out, t.String())
	}
	return out
}

// Load resolves the simulation config and user settings: file first, then
// DEEPDIVE_* environment, then flags.
func Load(o *Options) (*simulation.Config, settings.Settings, error) {
	cfg, err := simulation.LoadConfig(o.ConfigPath)
	if err != nil {
		return nil, settings.Settings{}, err
	}
	cfg.ApplyEnv()
	if o.Seed != 0 {
		cfg.Terrain.Seed = o.Seed
	}
	if o.Mute {
		cfg.Audio.Enabled = false
	}

	set, err := settings.Load(o.SettingsPath)
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
		set = settings.Default()
	}
	if o.Graphics != "" {
		tier, err := settings.ParseTier(o.Graphics)
		if err != nil {
			return nil, settings.Settings{}, err
		}
		set.Graphics = tier
	}
	return cfg, set, nil
}

// OpenLog redirects the standard logger to path. It returns a closer for the
// file, or a no-op when path is empty.
func OpenLog(path string) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// Run builds the game manager on b and blocks until the player quits.
func Run(o *Options, b render.Backend, title string) error {
	cfg, set, err := Load(o)
	if err != nil {
		return err
	}

	sound, err := audio.New(cfg.Audio)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	m := game.NewManager(b.Renderer, b.Input, cfg, set, sound, o.Width, o.Height)
	m.SettingsPath = o.SettingsPath
	defer m.Close()

	b.Engine.SetWindowSize(o.Width, o.Height)
	b.Engine.SetWindowTitle(title)
	b.Engine.SetWindowResizable(true)

	log.Printf("Starting game: seed %d, graphics %s", cfg.Terrain.Seed, set.Graphics)
	if err := b.Engine.RunGame(m); err != nil && !errors.Is(err, render.ErrTerminated) {
		return err
	}
	log.Println("Game exited")
	return nil
}
