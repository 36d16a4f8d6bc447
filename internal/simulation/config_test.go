package simulation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got %v", err)
	}
	if cfg.Terrain.Size != DefaultConfig().Terrain.Size {
		t.Errorf("Expected default terrain size, got %d", cfg.Terrain.Size)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	data := `{"survival": {"oxygen_drain": 0.5}, "movement": {"invert_y": true}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Survival.OxygenDrain != 0.5 {
		t.Errorf("Expected oxygen drain 0.5, got %v", cfg.Survival.OxygenDrain)
	}
	if !cfg.Movement.InvertY {
		t.Error("Expected invert_y from file")
	}
	if cfg.Survival.LowOxygen != 30 {
		t.Errorf("Expected untouched fields to keep defaults, got low oxygen %v", cfg.Survival.LowOxygen)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"terrain": `},
		{"zero terrain", `{"terrain": {"size": 0}}`},
		{"inverted pitch", `{"movement": {"pitch_min": 1, "pitch_max": -1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sim.json")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DEEPDIVE_SEED", "99")
	t.Setenv("DEEPDIVE_OXYGEN_DRAIN", "0.25")
	t.Setenv("DEEPDIVE_SPEED_SCALE", "-3")
	t.Setenv("DEEPDIVE_INVERT_Y", "true")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Terrain.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", cfg.Terrain.Seed)
	}
	if cfg.Survival.OxygenDrain != 0.25 {
		t.Errorf("Expected drain 0.25, got %v", cfg.Survival.OxygenDrain)
	}
	if cfg.Movement.SpeedScale != 1 {
		t.Errorf("Expected negative speed scale ignored, got %v", cfg.Movement.SpeedScale)
	}
	if !cfg.Movement.InvertY {
		t.Error("Expected invert from env")
	}
}
