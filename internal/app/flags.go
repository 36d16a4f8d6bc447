package app

import (
	"flag"
	"strings"
)

// Options represents the command-line parameters shared by every frontend.
type Options struct {
	ConfigPath   string
	SettingsPath string
	LogPath      string

	Seed     int64
	Graphics string
	Width    int
	Height   int
	Mute     bool
}

// NewOptions returns Options populated with sensible defaults.
func NewOptions() *Options {
	return &Options{
		ConfigPath:   "deepdive.json",
		SettingsPath: "settings.json",
		Width:        1280,
		Height:       800,
	}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "simulation tuning file (JSON)")
	fs.StringVar(&o.SettingsPath, "settings", o.SettingsPath, "user settings file (JSON), saved on apply")
	fs.StringVar(&o.LogPath, "log", o.LogPath, "write logs to this file instead of stderr")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "world seed (0 keeps the configured seed)")
	fs.StringVar(&o.Graphics, "graphics", o.Graphics, "graphics tier override: "+strings.Join(tierNames(), ", "))
	fs.IntVar(&o.Width, "width", o.Width, "window width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "window height in pixels")
	fs.BoolVar(&o.Mute, "mute", o.Mute, "disable audio")
}
