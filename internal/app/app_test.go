package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/deepdive/internal/render"
	"chosenoffset.com/deepdive/internal/render/rendertest"
	"chosenoffset.com/deepdive/internal/settings"
)

func TestBindParsesFlags(t *testing.T) {
	o := NewOptions()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o.Bind(fs)

	if err := fs.Parse([]string{"-seed", "99", "-graphics", "ultra", "-mute", "-width", "640"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
	if o.Seed != 99 || o.Graphics != "ultra" || !o.Mute || o.Width != 640 {
		t.Errorf("Expected flags applied, got %+v", o)
	}
	if o.Height != 800 {
		t.Errorf("Expected default height 800, got %d", o.Height)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	o := NewOptions()
	o.ConfigPath = filepath.Join(dir, "missing.json")
	o.SettingsPath = filepath.Join(dir, "settings.json")
	o.Seed = 1234
	o.Graphics = "low"
	o.Mute = true

	cfg, set, err := Load(o)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if cfg.Terrain.Seed != 1234 {
		t.Errorf("Expected seed 1234, got %d", cfg.Terrain.Seed)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled by -mute")
	}
	if set.Graphics != settings.Low {
		t.Errorf("Expected low graphics, got %v", set.Graphics)
	}

	o.Graphics = "potato"
	if _, _, err := Load(o); err == nil {
		t.Error("Expected error for unknown tier")
	}
}

func TestLoadRejectsBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepdive.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	o := NewOptions()
	o.ConfigPath = path
	if _, _, err := Load(o); err == nil {
		t.Error("Expected error for malformed config")
	}
}

// quitEngine runs one update that selects Quit.
type quitEngine struct {
	title string
	ran   bool
}

func (e *quitEngine) SetWindowSize(width, height int)   {}
func (e *quitEngine) SetWindowTitle(title string)       { e.title = title }
func (e *quitEngine) SetWindowResizable(resizable bool) {}

func (e *quitEngine) RunGame(g render.Game) error {
	e.ran = true
	g.Layout(640, 480)
	return g.Update()
}

type quitInput struct{}

func (quitInput) Poll(sink render.InputSink) {
	for _, k := range []string{"arrowup", "enter"} {
		sink.KeyDown(k)
		sink.KeyUp(k)
	}
}

func (quitInput) PointerLocked() bool { return false }
func (quitInput) ReleasePointer()     {}

func TestRunQuitsCleanly(t *testing.T) {
	dir := t.TempDir()
	o := NewOptions()
	o.ConfigPath = filepath.Join(dir, "deepdive.json")
	o.SettingsPath = filepath.Join(dir, "settings.json")
	o.Mute = true

	eng := &quitEngine{}
	b := render.Backend{Renderer: rendertest.NewRenderer(), Input: quitInput{}, Engine: eng}
	if err := Run(o, b, "DeepDive"); err != nil {
		t.Fatalf("Expected clean exit, got %v", err)
	}
	if !eng.ran || eng.title != "DeepDive" {
		t.Errorf("Expected engine to run with title, got %+v", eng)
	}
}
