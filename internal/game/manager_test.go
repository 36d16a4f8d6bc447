package game

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deepdive/internal/render"
	"chosenoffset.com/deepdive/internal/render/rendertest"
	"chosenoffset.com/deepdive/internal/settings"
	"chosenoffset.com/deepdive/internal/simulation"
	"chosenoffset.com/deepdive/internal/world/entity"
)

// scriptedInput presses queued keys on the next Poll.
type scriptedInput struct {
	pending  []string
	locked   bool
	released int
}

func (s *scriptedInput) press(keys ...string) { s.pending = append(s.pending, keys...) }

func (s *scriptedInput) Poll(sink render.InputSink) {
	sink.SetPointerLock(s.locked)
	for _, k := range s.pending {
		sink.KeyDown(k)
		sink.KeyUp(k)
	}
	s.pending = nil
}

func (s *scriptedInput) PointerLocked() bool { return s.locked }

func (s *scriptedInput) ReleasePointer() {
	s.locked = false
	s.released++
}

func newTestManager(t *testing.T) (*Manager, *scriptedInput, *recorder) {
	t.Helper()
	cfg := simulation.DefaultConfig()
	cfg.Timing.Movement = time.Hour
	cfg.Timing.Wander = time.Hour
	in := &scriptedInput{}
	rec := &recorder{}
	m := NewManager(rendertest.NewRenderer(), in, cfg, settings.Default(), rec, 640, 480)
	return m, in, rec
}

func step(t *testing.T, m *Manager, in *scriptedInput, keys ...string) {
	t.Helper()
	in.press(keys...)
	if err := m.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
}

func TestStartAndEscape(t *testing.T) {
	m, in, _ := newTestManager(t)

	step(t, m, in, "enter")
	if m.State != StatePlaying {
		t.Fatalf("Expected playing, got %v", m.State)
	}
	if m.Session == nil || !m.Session.Running() {
		t.Fatal("Expected a running session")
	}

	in.locked = true
	step(t, m, in, "escape")
	if m.State != StateMenu {
		t.Errorf("Expected menu, got %v", m.State)
	}
	if m.Session.Running() {
		t.Error("Expected session stopped in the menu")
	}
	if in.released != 1 || in.locked {
		t.Error("Expected pointer released when leaving play")
	}
	if m.Input().PointerLocked() {
		t.Error("Expected input state to agree the pointer is unlocked")
	}

	first := m.Session
	step(t, m, in, "enter")
	if m.Session != first {
		t.Error("Expected the same dive to resume")
	}
}

func TestQuitTerminates(t *testing.T) {
	m, in, _ := newTestManager(t)
	in.press("arrowup", "enter")

	if err := m.Update(); !errors.Is(err, render.ErrTerminated) {
		t.Errorf("Expected ErrTerminated, got %v", err)
	}
}

func TestSettingsApply(t *testing.T) {
	m, in, rec := newTestManager(t)
	m.SettingsPath = filepath.Join(t.TempDir(), "settings.json")

	step(t, m, in, "arrowdown", "enter")
	if m.State != StateSettings {
		t.Fatalf("Expected settings, got %v", m.State)
	}

	// Volume row, one step down, then Apply.
	step(t, m, in, "arrowdown", "arrowleft", "arrowdown", "arrowdown", "enter")
	if m.State != StateMenu {
		t.Fatalf("Expected menu after apply, got %v", m.State)
	}
	if m.Settings.Volume != 60 || rec.volume != 60 {
		t.Errorf("Expected volume 60 applied, got settings %d player %d", m.Settings.Volume, rec.volume)
	}

	saved, err := settings.Load(m.SettingsPath)
	if err != nil || saved.Volume != 60 {
		t.Errorf("Expected saved volume 60, got %+v (%v)", saved, err)
	}
}

func TestOverlaysPauseTheDive(t *testing.T) {
	m, in, _ := newTestManager(t)
	step(t, m, in, "enter")

	step(t, m, in, "tab")
	if m.State != StatePDA || m.Session.Running() {
		t.Fatalf("Expected paused PDA, got %v running=%v", m.State, m.Session.Running())
	}
	step(t, m, in, "tab")
	if m.State != StatePlaying || !m.Session.Running() {
		t.Fatalf("Expected playing again, got %v", m.State)
	}

	step(t, m, in, "i")
	if m.State != StateInventory {
		t.Fatalf("Expected inventory, got %v", m.State)
	}
	step(t, m, in, "escape")
	if m.State != StatePlaying {
		t.Errorf("Expected escape to close the inventory, got %v", m.State)
	}
}

func TestFabricatorFromPod(t *testing.T) {
	m, in, _ := newTestManager(t)
	step(t, m, in, "enter")

	pod, ok := m.Session.Entities().Landmark(entity.EscapePod)
	if !ok {
		t.Fatal("Expected an escape pod")
	}
	m.Session.player.Pos = mgl64.Vec3{pod.Pos.X() + 1, 0, pod.Pos.Z()}
	for _, e := range m.Session.Entities().Near(m.Session.Position(), 5) {
		if e.Kind == entity.KindResource {
			m.Session.Entities().Remove(e.ID)
		}
	}

	step(t, m, in, "e")
	if m.State != StateFabricator {
		t.Fatalf("Expected fabricator, got %v", m.State)
	}

	m.Session.Inventory().Add("metal", 1)
	// Second recipe is the knife: one metal.
	step(t, m, in, "arrowdown", "enter")
	if m.Session.Inventory().Count("knife") != 1 {
		t.Errorf("Expected a knife, got %s", m.Session.Inventory())
	}
	step(t, m, in, "escape")
	if m.State != StatePlaying {
		t.Errorf("Expected playing after closing, got %v", m.State)
	}
}

func TestDrawPlayingTagsStages(t *testing.T) {
	m, in, _ := newTestManager(t)
	step(t, m, in, "enter")

	img := rendertest.NewImage(640, 480)
	m.Draw(img)

	if len(img.Tagged("hud")) == 0 {
		t.Error("Expected HUD ops")
	}
	if len(img.Tagged("background")) == 0 {
		t.Error("Expected background ops")
	}
	if m.LastFrame().Columns == 0 {
		t.Error("Expected raycast columns")
	}
}

func TestLayoutTracksWindow(t *testing.T) {
	m, _, _ := newTestManager(t)
	w, h := m.Layout(1024, 768)
	if w != 1024 || h != 768 || m.ScreenWidth != 1024 {
		t.Errorf("Expected 1024x768, got %dx%d", w, h)
	}
}
