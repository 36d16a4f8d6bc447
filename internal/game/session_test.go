package game

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deepdive/internal/audio"
	"chosenoffset.com/deepdive/internal/crafting"
	"chosenoffset.com/deepdive/internal/interaction"
	"chosenoffset.com/deepdive/internal/simulation"
	"chosenoffset.com/deepdive/internal/world/entity"
)

type recorder struct {
	played []audio.Kind
	volume int
}

func (r *recorder) Play(k audio.Kind) { r.played = append(r.played, k) }
func (r *recorder) SetVolume(v int)   { r.volume = v }
func (r *recorder) Close()            {}

func (r *recorder) count(k audio.Kind) int {
	n := 0
	for _, p := range r.played {
		if p == k {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	cfg := simulation.DefaultConfig()
	// Keep the integrator out of the way so tests control position.
	cfg.Timing.Movement = time.Hour
	cfg.Timing.Wander = time.Hour
	rec := &recorder{}
	s, err := NewSession(cfg, nil, rec)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return s, rec
}

func TestLandingMessage(t *testing.T) {
	s, _ := newTestSession(t)

	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message at start, got %d", len(msgs))
	}
	if msgs[0].Sender != SenderAurora {
		t.Errorf("Expected sender %s, got %s", SenderAurora, msgs[0].Sender)
	}
}

func TestCollectScenario(t *testing.T) {
	s, rec := newTestSession(t)
	s.player.Pos = mgl64.Vec3{155, -10, 155}
	id := s.entities.Add(entity.Entity{Type: entity.Metal, Pos: mgl64.Vec3{156, -10, 155}})
	before := s.entities.Len()

	if c := s.Candidate(); c.Kind != interaction.PromptCollect {
		t.Fatalf("Expected collect prompt, got %v", c.Kind)
	}

	p, ok := s.Collect()
	if !ok || p.Entity.ID != id {
		t.Fatalf("Expected to collect entity %d, got %+v ok=%v", id, p.Entity, ok)
	}
	if got := s.Inventory().Count("metal"); got != 1 {
		t.Errorf("Expected 1 metal, got %d", got)
	}
	if got := s.entities.Len(); got != before-1 {
		t.Errorf("Expected %d entities, got %d", before-1, got)
	}
	if rec.count(audio.Collect) != 1 {
		t.Errorf("Expected one collect cue, got %v", rec.played)
	}
	msgs := s.Messages()
	if last := msgs[len(msgs)-1]; last.Sender != SenderPDA {
		t.Errorf("Expected PDA pickup message, got %+v", last)
	}

	if _, ok := s.Collect(); ok {
		t.Error("Expected second collect to find nothing")
	}
}

func TestTenSecondsSubmerged(t *testing.T) {
	s, _ := newTestSession(t)
	s.player.Pos = mgl64.Vec3{155, -10, 155}

	s.Start()
	for i := 0; i < 10; i++ {
		s.Advance(time.Second)
	}

	if got := s.Stats().Oxygen; got != 90 {
		t.Errorf("Expected oxygen 90 after 10 ticks, got %v", got)
	}
	if s.Elapsed() != 10*time.Second {
		t.Errorf("Expected 10s elapsed, got %v", s.Elapsed())
	}
}

func TestStoppedSessionDoesNotDrain(t *testing.T) {
	s, _ := newTestSession(t)
	s.player.Pos = mgl64.Vec3{155, -10, 155}

	s.Start()
	s.Advance(time.Second)
	s.Stop()
	s.Advance(5 * time.Second)

	if got := s.Stats().Oxygen; got != 99 {
		t.Errorf("Expected oxygen 99 with the session stopped, got %v", got)
	}
	if s.Running() {
		t.Error("Expected session to be stopped")
	}
}

func TestLowOxygenAlertPostsMessage(t *testing.T) {
	s, rec := newTestSession(t)
	s.player.Pos = mgl64.Vec3{155, -10, 155}
	s.player.Stats.Oxygen = 30

	s.Start()
	s.Advance(time.Second)

	if rec.count(audio.Alert) != 1 {
		t.Fatalf("Expected one alert cue, got %v", rec.played)
	}
	msgs := s.Messages()
	if last := msgs[len(msgs)-1]; last.Sender != SenderPDA || last.At != time.Second {
		t.Errorf("Expected PDA alert at 1s, got %+v", last)
	}
}

func TestCraftTankRaisesCapacity(t *testing.T) {
	s, rec := newTestSession(t)
	s.Inventory().Add("metal", 3)

	r, err := s.Craft("tank")
	if err != nil {
		t.Fatalf("Failed to craft tank: %v", err)
	}
	if got := s.Stats().MaxOxygen; got != 100+r.OxygenBonus {
		t.Errorf("Expected max oxygen %v, got %v", 100+r.OxygenBonus, got)
	}
	if s.Inventory().Count("metal") != 0 || s.Inventory().Count("tank") != 1 {
		t.Errorf("Expected metal consumed and one tank, got %s", s.Inventory())
	}
	if rec.count(audio.Craft) != 1 {
		t.Errorf("Expected craft cue, got %v", rec.played)
	}

	_, err = s.Craft("tank")
	if !errors.Is(err, crafting.ErrMissingIngredients) {
		t.Errorf("Expected missing ingredients, got %v", err)
	}
	if rec.count(audio.Deny) != 1 {
		t.Errorf("Expected deny cue, got %v", rec.played)
	}
}

func TestCraftSecondTankDoesNotStackCapacity(t *testing.T) {
	s, rec := newTestSession(t)
	s.Inventory().Add("metal", 6)

	r, err := s.Craft("tank")
	if err != nil {
		t.Fatalf("Failed to craft tank: %v", err)
	}
	_, err = s.Craft("tank")
	if !errors.Is(err, crafting.ErrInventoryFull) {
		t.Fatalf("Expected inventory full, got %v", err)
	}
	if got := s.Stats().MaxOxygen; got != 100+r.OxygenBonus {
		t.Errorf("Expected max oxygen %v, got %v", 100+r.OxygenBonus, got)
	}
	if got := s.Inventory().Count("metal"); got != 3 {
		t.Errorf("Expected 3 metal kept, got %d", got)
	}
	if rec.count(audio.Deny) != 1 {
		t.Errorf("Expected deny cue, got %v", rec.played)
	}
}

func TestSelectSlotIgnoresOutOfRange(t *testing.T) {
	s, _ := newTestSession(t)

	s.SelectSlot(3)
	s.SelectSlot(42)
	s.SelectSlot(-1)
	if got := s.Player().SelectedSlot; got != 3 {
		t.Errorf("Expected slot 3, got %d", got)
	}
}

func TestMessageLogIsBounded(t *testing.T) {
	s, _ := newTestSession(t)
	for i := 0; i < MaxMessages+10; i++ {
		s.notify(SenderPDA, "ping")
	}
	if got := len(s.Messages()); got != MaxMessages {
		t.Errorf("Expected %d messages, got %d", MaxMessages, got)
	}
}
